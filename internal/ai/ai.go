// Package ai defines the optional resume-refinement collaborator. Providers
// are pluggable; every caller must treat a refinement failure as non-fatal.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	_ "embed"
)

//go:embed prompt.md
var promptTemplate string

// Refinement is the structured payload a provider is expected to return.
// The field names mirror the JSON keys of the parsed-resume contract.
type Refinement struct {
	Role       string   `json:"Job Role"`
	Skills     []string `json:"Skills"`
	Experience string   `json:"Experience Level"`
}

// Refiner extracts a Refinement from resume text via an external model.
type Refiner interface {
	Refine(ctx context.Context, resumeText string) (*Refinement, error)
}

// BuildPrompt renders the extraction prompt for the given resume text.
func BuildPrompt(resumeText string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Extract Job Role, Skills and Experience Level as JSON.\n\nResume:\n{{RESUME}}"
	}
	return strings.ReplaceAll(template, "{{RESUME}}", resumeText)
}

// ParseRefinement decodes a model response into a Refinement, tolerating
// markdown code fences around the JSON object.
func ParseRefinement(raw string) (*Refinement, error) {
	cleaned := extractJSON(raw)

	var refinement Refinement
	if err := json.Unmarshal([]byte(cleaned), &refinement); err != nil {
		return nil, fmt.Errorf("parse refinement response: %w", err)
	}

	return &refinement, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
