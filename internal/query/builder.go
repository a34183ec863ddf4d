// Package query derives job-search query strings from a resume profile
// using fixed category rules.
package query

import "github.com/devanksh/jobfinder/internal/resume"

var (
	frontend = []string{"HTML", "CSS", "JavaScript", "React"}
	backend  = []string{"Java", "Python", "Node.js", "Flask"}
	database = []string{"MySQL", "MongoDB"}
)

const fallbackQuery = "Software Developer Fresher"

// Build evaluates every category rule against the profile's skills and
// returns the distinct queries that fired, in rule order. The rules are not
// mutually exclusive. A profile matching no rule yields the single fallback
// query, so the result is never empty.
func Build(profile *resume.Profile) []string {
	skills := toSet(profile.Skills)

	var queries []string

	hasFrontend := intersects(skills, frontend)
	hasBackend := intersects(skills, backend)

	if hasFrontend {
		queries = append(queries, "Frontend Developer")
	}
	if hasBackend {
		queries = append(queries, "Backend Developer")
	}
	if hasFrontend && hasBackend {
		queries = append(queries, "Full Stack Developer")
	}
	if _, ok := skills["Java"]; ok {
		queries = append(queries, "Java Developer Fresher")
	}
	if _, ok := skills["Python"]; ok {
		queries = append(queries, "Python Developer Fresher")
	}
	if intersects(skills, database) {
		queries = append(queries, "Software Developer Database")
	}

	if len(queries) == 0 {
		queries = append(queries, fallbackQuery)
	}

	return distinct(queries)
}

func toSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		set[skill] = struct{}{}
	}
	return set
}

func intersects(skills map[string]struct{}, category []string) bool {
	for _, skill := range category {
		if _, ok := skills[skill]; ok {
			return true
		}
	}
	return false
}

func distinct(queries []string) []string {
	seen := make(map[string]struct{}, len(queries))
	result := make([]string, 0, len(queries))
	for _, q := range queries {
		if _, ok := seen[q]; ok {
			continue
		}
		seen[q] = struct{}{}
		result = append(result, q)
	}
	return result
}
