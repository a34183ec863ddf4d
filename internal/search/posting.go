package search

// Posting is a single normalized job listing returned by the search
// provider. Postings without a usable apply link never leave the client.
type Posting struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Salary      string `json:"salary"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link"`
}

// Identity is the deduplication key: two postings sharing a title and a
// company are the same job regardless of other field differences.
func (p *Posting) Identity() string {
	return p.Title + "|" + p.Company
}
