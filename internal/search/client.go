// Package search implements the job-search collaborator on top of the
// SerpAPI google_jobs engine.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const (
	apiURL = "https://serpapi.com"

	searchPath    = "/search"
	engine        = "google_jobs"
	defaultRegion = "India"
)

type Client struct {
	HTTPClient *http.Client
	APIURL     string
	Region     string

	apiKey string
	logger *zap.Logger
}

func New(logger *zap.Logger, apiKey, region string) *Client {
	if region == "" {
		region = defaultRegion
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		APIURL: apiURL,
		Region: region,
		apiKey: apiKey,
		logger: logger,
	}
}

// searchResponse is the subset of the provider payload the pipeline needs.
// Items are kept loosely typed and decoded per-item so one malformed entry
// cannot poison the whole page.
type searchResponse struct {
	JobsResults []map[string]any `json:"jobs_results"`
	Error       string           `json:"error"`
}

type providerJob struct {
	Title        string `json:"title"`
	CompanyName  string `json:"company_name"`
	Location     string `json:"location"`
	Salary       string `json:"salary"`
	Description  string `json:"description"`
	ApplyOptions []struct {
		Link string `json:"link"`
	} `json:"apply_options"`
	RelatedLinks []struct {
		Link string `json:"link"`
	} `json:"related_links"`
}

// Search returns at most maxResults postings for the query. Every returned
// posting carries an apply link: a direct apply option is preferred, a
// related link is accepted as fallback, and postings with neither are
// dropped here so they never enter the pipeline.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]*Posting, error) {
	q := url.Values{}
	q.Set("engine", engine)
	q.Set("q", query)
	q.Set("location", c.Region)
	q.Set("api_key", c.apiKey)

	response, err := c.getSearch(ctx, q)
	if err != nil {
		return nil, err
	}

	postings := make([]*Posting, 0, len(response.JobsResults))
	for _, item := range response.JobsResults {
		var job providerJob
		if err := decodeItem(item, &job); err != nil {
			c.logger.Debug("skipping undecodable job result", zap.Error(err))
			continue
		}

		link := job.applyLink()
		if link == "" {
			continue
		}

		posting := &Posting{
			Title:       job.Title,
			Company:     job.CompanyName,
			Location:    job.Location,
			Salary:      job.Salary,
			Description: job.Description,
			Link:        link,
		}
		if posting.Location == "" {
			posting.Location = c.Region
		}
		if posting.Salary == "" {
			posting.Salary = "Not disclosed"
		}

		postings = append(postings, posting)
		if maxResults > 0 && len(postings) >= maxResults {
			break
		}
	}

	c.logger.Debug("search completed",
		zap.String("query", query),
		zap.Int("results", len(response.JobsResults)),
		zap.Int("postings", len(postings)),
	)

	return postings, nil
}

func (c *Client) getSearch(ctx context.Context, q url.Values) (*searchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIURL+searchPath, nil)
	if err != nil {
		return nil, err
	}
	req.URL.RawQuery = q.Encode()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var response searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, err
	}

	if response.Error != "" {
		return nil, fmt.Errorf("provider error: %s", response.Error)
	}

	return &response, nil
}

func decodeItem(item map[string]any, target *providerJob) error {
	cfg := &mapstructure.DecoderConfig{
		Result:  target,
		TagName: "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	return decoder.Decode(item)
}

func (j *providerJob) applyLink() string {
	if len(j.ApplyOptions) > 0 && j.ApplyOptions[0].Link != "" {
		return j.ApplyOptions[0].Link
	}
	if len(j.RelatedLinks) > 0 && j.RelatedLinks[0].Link != "" {
		return j.RelatedLinks[0].Link
	}
	return ""
}
