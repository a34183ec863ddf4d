package resume

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/devanksh/jobfinder/internal/ai"

	"go.uber.org/zap"
)

// sectionHeader marks the boundaries used for section isolation. Only the
// spans following a SKILLS/PROJECTS/TECHNOLOGIES header are scanned for
// keywords; EXPERIENCE acts as a boundary but its span is not retained.
var sectionHeader = regexp.MustCompile(`(?i)SKILLS|PROJECTS|TECHNOLOGIES|EXPERIENCE`)

// Extractor derives a Profile from raw resume text using whole-word keyword
// matching over a fixed vocabulary, optionally refined by an AI collaborator.
type Extractor struct {
	vocabulary []string
	refiner    ai.Refiner
	logger     *zap.Logger
}

// NewExtractor creates an Extractor. A nil or empty vocabulary falls back to
// DefaultVocabulary; a nil refiner disables the refinement stage.
func NewExtractor(vocabulary []string, refiner ai.Refiner, logger *zap.Logger) *Extractor {
	if len(vocabulary) == 0 {
		vocabulary = DefaultVocabulary
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Extractor{
		vocabulary: vocabulary,
		refiner:    refiner,
		logger:     logger,
	}
}

// Extract builds a Profile from the resume text. Refinement failures are
// absorbed: job search must not block on AI availability, so the keyword
// results plus default role/experience are used instead.
func (e *Extractor) Extract(ctx context.Context, text string) *Profile {
	relevant := relevantText(text)

	skills := make(map[string]struct{})
	for _, term := range e.vocabulary {
		if term = strings.TrimSpace(term); term == "" {
			continue
		}
		if matchWholeWord(term, relevant) {
			skills[term] = struct{}{}
		}
	}

	profile := &Profile{
		Role:       DefaultRole,
		Experience: DefaultExperience,
	}

	e.refine(ctx, relevant, profile, skills)

	profile.Skills = make([]string, 0, len(skills))
	for skill := range skills {
		profile.Skills = append(profile.Skills, skill)
	}
	sort.Strings(profile.Skills)

	return profile
}

func (e *Extractor) refine(ctx context.Context, relevant string, profile *Profile, skills map[string]struct{}) {
	if e.refiner == nil {
		return
	}

	refinement, err := e.refiner.Refine(ctx, relevant)
	if err != nil {
		e.logger.Debug("skipping resume refinement", zap.Error(err))
		return
	}

	if role := strings.TrimSpace(refinement.Role); role != "" {
		profile.Role = role
	}
	if experience := strings.TrimSpace(refinement.Experience); experience != "" {
		profile.Experience = experience
	}

	// The refiner cannot introduce skill names outside the vocabulary.
	admitted := 0
	for _, skill := range refinement.Skills {
		skill = strings.TrimSpace(skill)
		if e.inVocabulary(skill) {
			skills[skill] = struct{}{}
			admitted++
		}
	}

	e.logger.Debug("resume refinement merged",
		zap.String("role", profile.Role),
		zap.String("experience", profile.Experience),
		zap.Int("skills_returned", len(refinement.Skills)),
		zap.Int("skills_admitted", admitted),
	)
}

func (e *Extractor) inVocabulary(skill string) bool {
	for _, term := range e.vocabulary {
		if term == skill {
			return true
		}
	}
	return false
}

// relevantText returns the concatenated spans that follow a
// SKILLS/PROJECTS/TECHNOLOGIES header, up to the next section header or the
// end of the document. A resume without such headers yields an empty string
// and the keyword stage finds nothing.
func relevantText(text string) string {
	headers := sectionHeader.FindAllStringIndex(text, -1)

	var b strings.Builder
	for i, header := range headers {
		name := strings.ToUpper(text[header[0]:header[1]])
		if name == "EXPERIENCE" {
			continue
		}

		end := len(text)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}
		b.WriteString(text[header[1]:end])
	}

	return b.String()
}

func matchWholeWord(term, text string) bool {
	pattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
	if err != nil {
		return false
	}
	return pattern.MatchString(text)
}
