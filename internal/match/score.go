// Package match scores, deduplicates and ranks job postings against an
// extracted skill set.
package match

import (
	"math"
	"regexp"
	"strings"
)

// Score computes the 0-100 relevance of jobText for the skill set: the
// rounded percentage of skills occurring as a whole word in the text.
// Word-boundary semantics matter: "Java" must not match inside
// "JavaScript". An empty skill set or empty text scores 0.
func Score(skills []string, jobText string) int {
	return newScorer(skills).score(jobText)
}

// scorer holds one compiled pattern per skill so that a batch of postings
// can be scored without recompiling the skill set for each one.
type scorer struct {
	patterns []*regexp.Regexp
}

func newScorer(skills []string) *scorer {
	s := &scorer{patterns: make([]*regexp.Regexp, 0, len(skills))}
	for _, skill := range skills {
		s.patterns = append(s.patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(strings.ToLower(skill))+`\b`))
	}
	return s
}

func (s *scorer) score(jobText string) int {
	if len(s.patterns) == 0 || jobText == "" {
		return 0
	}

	jobText = strings.ToLower(jobText)

	matched := 0
	for _, pattern := range s.patterns {
		if pattern.MatchString(jobText) {
			matched++
		}
	}

	// Half-to-even, so 62.5 rounds to 62 rather than 63.
	return int(math.RoundToEven(float64(matched) / float64(len(s.patterns)) * 100))
}
