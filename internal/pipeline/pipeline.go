// Package pipeline wires resume parsing, query building, the search
// fan-out and ranking into a single request flow.
package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/devanksh/jobfinder/internal/match"
	"github.com/devanksh/jobfinder/internal/query"
	"github.com/devanksh/jobfinder/internal/resume"
	"github.com/devanksh/jobfinder/internal/search"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Fetcher is the job-search collaborator contract the pipeline relies on:
// results are capped at maxResults and every posting has a usable apply link.
type Fetcher interface {
	Search(ctx context.Context, q string, maxResults int) ([]*search.Posting, error)
}

// Options bound the pipeline's result counts and external-call latencies.
type Options struct {
	MaxResultsPerQuery int
	MaxJobs            int
	SearchTimeout      time.Duration
	RefineTimeout      time.Duration
}

const (
	defaultMaxResultsPerQuery = 20
	defaultSearchTimeout      = 15 * time.Second
	defaultRefineTimeout      = 30 * time.Second
)

// Report is the response payload assembled per request.
type Report struct {
	ParsedResume    *resume.Profile         `json:"parsed_resume"`
	QueriesUsed     []string                `json:"job_queries_used"`
	RecommendedJobs []*match.Recommendation `json:"recommended_jobs"`
}

type Pipeline struct {
	fetcher   Fetcher
	extractor *resume.Extractor
	logger    *zap.Logger
	opts      Options
}

func New(fetcher Fetcher, extractor *resume.Extractor, logger *zap.Logger, opts Options) *Pipeline {
	if opts.MaxResultsPerQuery <= 0 {
		opts.MaxResultsPerQuery = defaultMaxResultsPerQuery
	}
	if opts.MaxJobs <= 0 {
		opts.MaxJobs = match.DefaultMaxJobs
	}
	if opts.SearchTimeout <= 0 {
		opts.SearchTimeout = defaultSearchTimeout
	}
	if opts.RefineTimeout <= 0 {
		opts.RefineTimeout = defaultRefineTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Pipeline{
		fetcher:   fetcher,
		extractor: extractor,
		logger:    logger,
		opts:      opts,
	}
}

// Run executes the pipeline for the resume at path.
func (p *Pipeline) Run(ctx context.Context, path string) *Report {
	return p.RunText(ctx, resume.Text(path))
}

// RunReader executes the pipeline for an uploaded resume without a
// temp-file round trip. The name is used only for format dispatch.
func (p *Pipeline) RunReader(ctx context.Context, r io.ReaderAt, size int64, name string) *Report {
	return p.RunText(ctx, resume.TextFromReader(r, size, name))
}

// RunText executes the pipeline over already extracted resume text. Nothing
// past this point is fatal: an unparseable resume degrades to defaults and
// a provider outage degrades to an empty recommendation list.
func (p *Pipeline) RunText(ctx context.Context, text string) *Report {
	if text == "" {
		p.logger.Warn("no text extracted from resume", zap.String("hint", "only .pdf and .docx are supported"))
	}

	refineCtx, cancel := context.WithTimeout(ctx, p.opts.RefineTimeout)
	profile := p.extractor.Extract(refineCtx, text)
	cancel()

	p.logger.Info("resume parsed",
		zap.String("role", profile.Role),
		zap.String("experience", profile.Experience),
		zap.Int("skills", len(profile.Skills)),
	)

	queries := query.Build(profile)

	p.logger.Info("starting the search", zap.Strings("queries", queries))

	postings := p.fanOut(ctx, queries)
	unique := match.Deduplicate(postings)
	recommendations := match.Rank(unique, profile.Skills, p.opts.MaxJobs)

	p.logger.Info("search completed",
		zap.Int("fetched", len(postings)),
		zap.Int("unique", len(unique)),
		zap.Int("recommended", len(recommendations)),
	)

	return &Report{
		ParsedResume:    profile,
		QueriesUsed:     queries,
		RecommendedJobs: recommendations,
	}
}

// fanOut issues one search per query and concatenates the results in query
// order, so the first-seen-wins deduplication stays deterministic even
// though the fetches run in parallel. A failed query contributes nothing
// and never aborts the batch.
func (p *Pipeline) fanOut(ctx context.Context, queries []string) []*search.Posting {
	results := make([][]*search.Posting, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	for i, q := range queries {
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(gctx, p.opts.SearchTimeout)
			defer cancel()

			postings, err := p.fetcher.Search(callCtx, q, p.opts.MaxResultsPerQuery)
			if err != nil {
				p.logger.Warn("query fetch failed",
					zap.String("query", q),
					zap.Error(err),
				)
				return nil
			}

			results[i] = postings
			return nil
		})
	}
	// Fetch errors are absorbed per query; Wait only orders the merge.
	_ = g.Wait()

	var merged []*search.Posting
	for _, postings := range results {
		merged = append(merged, postings...)
	}

	return merged
}
