package domain

// Explanation is the human-readable rationale attached to every scored
// candidate. Summary clauses are joined with " • " in a fixed order;
// absent clauses are omitted, never replaced with placeholders.
type Explanation struct {
	Summary               string   `json:"summary"`
	MatchingSkills        []string `json:"matching_skills"`
	LearningOpportunities []string `json:"learning_opportunities"`
	ConfidenceScore       float64  `json:"confidence_score"`
	EstimatedTime         string   `json:"estimated_time,omitempty"`
}
