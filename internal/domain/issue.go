package domain

// Label is an issue label; only the name matters for scoring.
type Label struct {
	Name string `json:"name"`
}

// Issue is a read-only candidate from the GitHub issue search. PullRequest
// is set when the search result is actually a PR; the ranking pipeline
// filters those out since issues and PRs share one search endpoint.
type Issue struct {
	ID            int64   `json:"id"`
	Number        int     `json:"number"`
	Title         string  `json:"title"`
	Body          string  `json:"body"`
	HTMLURL       string  `json:"html_url"`
	RepositoryURL string  `json:"repository_url"`
	Comments      int     `json:"comments"`
	Labels        []Label `json:"labels"`
	CreatedAt     string  `json:"created_at"`
	PullRequest   *struct {
		URL string `json:"url"`
	} `json:"pull_request,omitempty"`
}

// LabelNames returns the label names in declaration order.
func (i *Issue) LabelNames() []string {
	names := make([]string, 0, len(i.Labels))
	for _, l := range i.Labels {
		names = append(names, l.Name)
	}
	return names
}

// ScoredIssue is an ephemeral ranking result for one issue.
type ScoredIssue struct {
	Issue       Issue       `json:"issue"`
	Score       float64     `json:"score"`
	Difficulty  string      `json:"difficulty"`
	Explanation Explanation `json:"explanation"`
}
