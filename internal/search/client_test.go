package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(zap.NewNop(), "test-key", "")
	client.APIURL = server.URL

	return client, server
}

func TestSearchNormalizesPostings(t *testing.T) {
	payload := `{
		"jobs_results": [
			{
				"title": "Backend Developer",
				"company_name": "Acme",
				"location": "Remote",
				"salary": "10 LPA",
				"description": "Python and MySQL",
				"apply_options": [{"title": "Apply", "link": "https://apply.example/1"}]
			},
			{
				"title": "Frontend Developer",
				"company_name": "Globex",
				"related_links": [{"link": "https://related.example/2"}]
			},
			{
				"title": "No Link Role",
				"company_name": "Initech"
			}
		]
	}`

	var query, location, apiKey string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query().Get("q")
		location = r.URL.Query().Get("location")
		apiKey = r.URL.Query().Get("api_key")
		w.Write([]byte(payload))
	})

	postings, err := client.Search(context.Background(), "Backend Developer", 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if query != "Backend Developer" || location != "India" || apiKey != "test-key" {
		t.Fatalf("unexpected request parameters: q=%q location=%q api_key=%q", query, location, apiKey)
	}

	// The posting without any apply link never enters the pipeline.
	if len(postings) != 2 {
		t.Fatalf("expected 2 postings, got %d", len(postings))
	}

	first := postings[0]
	if first.Link != "https://apply.example/1" {
		t.Fatalf("expected direct apply link to be preferred, got %s", first.Link)
	}

	second := postings[1]
	if second.Link != "https://related.example/2" {
		t.Fatalf("expected related link fallback, got %s", second.Link)
	}
	if second.Location != "India" {
		t.Fatalf("expected region default location, got %q", second.Location)
	}
	if second.Salary != "Not disclosed" {
		t.Fatalf("expected default salary, got %q", second.Salary)
	}
}

func TestSearchCapsResults(t *testing.T) {
	payload := `{
		"jobs_results": [
			{"title": "A", "company_name": "X", "apply_options": [{"link": "https://a"}]},
			{"title": "B", "company_name": "Y", "apply_options": [{"link": "https://b"}]},
			{"title": "C", "company_name": "Z", "apply_options": [{"link": "https://c"}]}
		]
	}`

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(payload))
	})

	postings, err := client.Search(context.Background(), "Developer", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(postings) != 2 {
		t.Fatalf("expected results capped at 2, got %d", len(postings))
	}
}

func TestSearchProviderError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"error": "Your searches have run out"}`))
	})

	if _, err := client.Search(context.Background(), "Developer", 20); err == nil {
		t.Fatalf("expected provider error to surface")
	}
}

func TestSearchBadStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	if _, err := client.Search(context.Background(), "Developer", 20); err == nil {
		t.Fatalf("expected error on non-200 status")
	}
}

func TestSearchEmptyResults(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"jobs_results": []}`))
	})

	postings, err := client.Search(context.Background(), "Developer", 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(postings) != 0 {
		t.Fatalf("expected no postings, got %d", len(postings))
	}
}

func TestPostingIdentity(t *testing.T) {
	t.Parallel()

	posting := &Posting{Title: "Backend Developer", Company: "Acme"}
	if got := posting.Identity(); got != "Backend Developer|Acme" {
		t.Fatalf("unexpected identity: %q", got)
	}
}
