package domain

import "context"

// License as reported by the GitHub API; presence is all scoring needs.
type License struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Repository is a read-only candidate record owned by the data-fetch
// collaborator. Raw string timestamps are kept so unparseable values can
// degrade gracefully during scoring.
type Repository struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	FullName        string   `json:"full_name"`
	Description     string   `json:"description"`
	HTMLURL         string   `json:"html_url"`
	Language        string   `json:"language"`
	Topics          []string `json:"topics"`
	StargazersCount int      `json:"stargazers_count"`
	ForksCount      int      `json:"forks_count"`
	WatchersCount   int      `json:"watchers_count"`
	OpenIssuesCount int      `json:"open_issues_count"`
	Size            int      `json:"size"`
	HasWiki         bool     `json:"has_wiki"`
	HasPages        bool     `json:"has_pages"`
	HasIssues       bool     `json:"has_issues"`
	Archived        bool     `json:"archived"`
	License         *License `json:"license"`
	DefaultBranch   string   `json:"default_branch"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

// Component score names used in ScoredRepository.ComponentScores.
const (
	ComponentSkillMatch       = "skill_match"
	ComponentActivity         = "activity"
	ComponentBeginnerFriendly = "beginner_friendliness"
	ComponentGrowthPotential  = "growth_potential"
)

// ScoredRepository is an ephemeral ranking result, created per call and
// never persisted.
type ScoredRepository struct {
	Repository      Repository         `json:"repository"`
	Score           float64            `json:"score"`
	ComponentScores map[string]float64 `json:"component_scores"`
	Explanation     Explanation        `json:"explanation"`
}

// RepoRecommendationOptions narrows the repository candidate search.
type RepoRecommendationOptions struct {
	Limit        int
	MinStars     int
	Languages    []string
	ExcludeRepos []string
}

// IssueRecommendationOptions narrows the issue candidate search.
type IssueRecommendationOptions struct {
	Limit      int
	Difficulty string
	Labels     []string
}

type RecommendationUsecase interface {
	RecommendRepositories(ctx context.Context, profile *SkillProfile, opts RepoRecommendationOptions) ([]ScoredRepository, error)
	RecommendIssues(ctx context.Context, profile *SkillProfile, opts IssueRecommendationOptions) ([]ScoredIssue, error)
}
