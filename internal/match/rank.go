package match

import (
	"sort"

	"github.com/devanksh/jobfinder/internal/search"
)

// DefaultMaxJobs caps how many postings are recommended per request.
const DefaultMaxJobs = 25

// scoreFloor is the minimum score shown to the user. A posting that matched
// zero skill words still surfaces with a nominal 10 instead of a
// discouraging "0% match"; the unfloored value is kept in RawScore.
const scoreFloor = 10

// Recommendation is a scored posting in the shape of the response payload.
type Recommendation struct {
	Title      string `json:"title"`
	Company    string `json:"company"`
	Location   string `json:"location"`
	Salary     string `json:"salary"`
	MatchScore int    `json:"match_score"`
	RawScore   int    `json:"raw_score"`
	Link       string `json:"link"`
}

// Deduplicate drops postings whose identity was already seen, preserving
// input order. First occurrence wins: later duplicates are discarded
// entirely, even when their other fields differ.
func Deduplicate(postings []*search.Posting) []*search.Posting {
	seen := make(map[string]struct{}, len(postings))
	unique := make([]*search.Posting, 0, len(postings))

	for _, posting := range postings {
		key := posting.Identity()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, posting)
	}

	return unique
}

// Rank scores the candidate stream and returns at most max recommendations
// sorted by score descending. The cap is applied twice on purpose: once
// while scanning candidates in stream order, which fixes the set of
// postings in contention, and once after the sort. Collapsing the two steps
// into a single cap-after-sort changes which postings survive when scores
// tie or fetch order varies.
func Rank(postings []*search.Posting, skills []string, max int) []*Recommendation {
	if max <= 0 {
		max = DefaultMaxJobs
	}

	sc := newScorer(skills)

	recommendations := make([]*Recommendation, 0, max)
	for _, posting := range postings {
		if len(recommendations) >= max {
			break
		}

		raw := sc.score(posting.Title + " " + posting.Description)
		score := raw
		if score < scoreFloor {
			score = scoreFloor
		}

		recommendations = append(recommendations, &Recommendation{
			Title:      posting.Title,
			Company:    posting.Company,
			Location:   posting.Location,
			Salary:     posting.Salary,
			MatchScore: score,
			RawScore:   raw,
			Link:       posting.Link,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].MatchScore > recommendations[j].MatchScore
	})

	if len(recommendations) > max {
		recommendations = recommendations[:max]
	}

	return recommendations
}
