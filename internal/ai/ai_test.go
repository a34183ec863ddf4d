package ai

import (
	"reflect"
	"strings"
	"testing"
)

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	prompt := BuildPrompt("SKILLS: Python, MySQL")

	if !strings.Contains(prompt, "SKILLS: Python, MySQL") {
		t.Fatalf("expected resume text inside the prompt")
	}
	if strings.Contains(prompt, "{{RESUME}}") {
		t.Fatalf("expected the placeholder to be replaced")
	}
	if !strings.Contains(prompt, "Job Role") {
		t.Fatalf("expected the JSON schema in the prompt")
	}
}

func TestParseRefinement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		expect  *Refinement
		wantErr bool
	}{
		{
			name: "plain json",
			raw:  `{"Job Role": "Backend Developer", "Skills": ["Python", "Flask"], "Experience Level": "Fresher"}`,
			expect: &Refinement{
				Role:       "Backend Developer",
				Skills:     []string{"Python", "Flask"},
				Experience: "Fresher",
			},
		},
		{
			name: "fenced json",
			raw: "```json\n" +
				`{"Job Role": "Data Engineer", "Skills": ["Python"], "Experience Level": "2 years"}` +
				"\n```",
			expect: &Refinement{
				Role:       "Data Engineer",
				Skills:     []string{"Python"},
				Experience: "2 years",
			},
		},
		{
			name: "fenced without language tag",
			raw:  "```\n{\"Job Role\": \"Developer\", \"Skills\": [], \"Experience Level\": \"\"}\n```",
			expect: &Refinement{
				Role:   "Developer",
				Skills: []string{},
			},
		},
		{
			name:    "not json",
			raw:     "I could not find any skills in this resume.",
			wantErr: true,
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseRefinement(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expect) {
				t.Fatalf("expected %+v, got %+v", tt.expect, got)
			}
		})
	}
}
