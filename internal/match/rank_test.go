package match

import (
	"fmt"
	"testing"

	"github.com/devanksh/jobfinder/internal/search"
)

func TestDeduplicateFirstWins(t *testing.T) {
	t.Parallel()

	postings := []*search.Posting{
		{Title: "Backend Developer", Company: "Acme", Link: "https://jobs.acme.example/1"},
		{Title: "Frontend Developer", Company: "Acme", Link: "https://jobs.acme.example/2"},
		{Title: "Backend Developer", Company: "Acme", Link: "https://board.example/other-link"},
	}

	unique := Deduplicate(postings)

	if len(unique) != 2 {
		t.Fatalf("expected 2 unique postings, got %d", len(unique))
	}

	// The first occurrence survives, including its link.
	if unique[0].Link != "https://jobs.acme.example/1" {
		t.Fatalf("expected first occurrence to win, got link %s", unique[0].Link)
	}
}

func TestDeduplicateKeepsDistinctIdentities(t *testing.T) {
	t.Parallel()

	postings := []*search.Posting{
		{Title: "Developer", Company: "Acme"},
		{Title: "Developer", Company: "Globex"},
	}

	if got := len(Deduplicate(postings)); got != 2 {
		t.Fatalf("expected both postings kept, got %d", got)
	}
}

func TestRankAppliesFloorAndSorts(t *testing.T) {
	t.Parallel()

	postings := []*search.Posting{
		{Title: "Clerk", Company: "Acme", Description: "no technical content"},
		{Title: "Python Developer", Company: "Globex", Description: "Python and MySQL"},
		{Title: "DBA", Company: "Initech", Description: "MySQL administration"},
	}

	ranked := Rank(postings, []string{"Python", "MySQL"}, 25)

	if len(ranked) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(ranked))
	}

	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].MatchScore < ranked[i].MatchScore {
			t.Fatalf("expected descending scores, got %d before %d", ranked[i-1].MatchScore, ranked[i].MatchScore)
		}
	}

	if ranked[0].Company != "Globex" || ranked[0].MatchScore != 100 {
		t.Fatalf("expected full match first, got %+v", ranked[0])
	}

	for _, rec := range ranked {
		if rec.MatchScore < 10 {
			t.Fatalf("expected every emitted score >= 10, got %d", rec.MatchScore)
		}
	}

	// The zero-match posting surfaces with the nominal floor but keeps its
	// true score for analytics.
	last := ranked[len(ranked)-1]
	if last.MatchScore != 10 || last.RawScore != 0 {
		t.Fatalf("expected floored zero-match posting, got match=%d raw=%d", last.MatchScore, last.RawScore)
	}
}

func TestRankCapsCandidateStreamBeforeSorting(t *testing.T) {
	t.Parallel()

	// 30 unique postings; the last five would score highest, but they arrive
	// after the candidate cap and must not be considered.
	postings := make([]*search.Posting, 0, 30)
	for i := 0; i < 30; i++ {
		posting := &search.Posting{
			Title:   fmt.Sprintf("Role %d", i),
			Company: fmt.Sprintf("Company %d", i),
		}
		if i >= 25 {
			posting.Description = "Python MySQL"
		}
		postings = append(postings, posting)
	}

	ranked := Rank(postings, []string{"Python", "MySQL"}, 25)

	if len(ranked) != 25 {
		t.Fatalf("expected 25 recommendations, got %d", len(ranked))
	}

	for _, rec := range ranked {
		if rec.RawScore != 0 {
			t.Fatalf("posting %q entered contention past the candidate cap", rec.Title)
		}
	}
}

func TestRankScoresAgreeWithScore(t *testing.T) {
	t.Parallel()

	// Rank compiles the skill patterns once for the whole batch; every
	// posting must still get the same score Score would give it alone.
	skills := []string{"C", "Java", "Python", "React", "MySQL", "Docker", "Git", "Flask"}
	postings := []*search.Posting{
		{Title: "Python Developer", Company: "Acme", Description: "Python and MySQL"},
		{Title: "Fullstack", Company: "Globex", Description: "React, Flask, Git, MySQL and Python"},
		{Title: "Clerk", Company: "Initech", Description: "filing"},
	}

	ranked := Rank(postings, skills, 25)

	byIdentity := make(map[string]int, len(ranked))
	for _, rec := range ranked {
		byIdentity[rec.Title+"|"+rec.Company] = rec.RawScore
	}

	for _, posting := range postings {
		want := Score(skills, posting.Title+" "+posting.Description)
		if got := byIdentity[posting.Identity()]; got != want {
			t.Fatalf("posting %q: expected raw score %d, got %d", posting.Title, want, got)
		}
	}
}

func TestRankEmptyInput(t *testing.T) {
	t.Parallel()

	if got := Rank(nil, []string{"Java"}, 25); len(got) != 0 {
		t.Fatalf("expected no recommendations, got %d", len(got))
	}
}
