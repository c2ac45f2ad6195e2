package domain

import "context"

// ContributionType classifies the kind of contribution a file invites.
type ContributionType string

const (
	ContributionFeature       ContributionType = "feature"
	ContributionRefactor      ContributionType = "refactor"
	ContributionTests         ContributionType = "tests"
	ContributionDocumentation ContributionType = "documentation"
)

// FileInfo describes one file of a repository tree.
type FileInfo struct {
	Path       string `json:"path"`
	Name       string `json:"name"`
	Language   string `json:"language,omitempty"`
	Size       int    `json:"size"`
	URL        string `json:"url"`
	ContentURL string `json:"content_url"`
}

// ScoredFile is an ephemeral file recommendation.
type ScoredFile struct {
	File             FileInfo         `json:"file"`
	Score            float64          `json:"score"`
	ContributionType ContributionType `json:"contribution_type"`
	Suggestions      []string         `json:"suggestions"`
	Difficulty       string           `json:"difficulty"`
	EstimatedTime    string           `json:"estimated_time"`
	MatchingSkills   []string         `json:"matching_skills"`
}

type FileUsecase interface {
	RecommendFiles(ctx context.Context, owner, repo string, skills []string, branch string, limit int) ([]ScoredFile, error)
}
