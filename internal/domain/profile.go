package domain

import (
	"context"
	"sort"
	"strings"
)

// Experience levels assigned by the profiling heuristic.
const (
	ExperienceBeginner     = "beginner"
	ExperienceIntermediate = "intermediate"
	ExperienceAdvanced     = "advanced"
)

// SkillProfile is the normalized representation of a user's languages,
// technical keywords, experience level and activity level. It is built once
// per user, is immutable after construction and may be cached by the caller.
type SkillProfile struct {
	Languages       map[string]float64 `json:"languages"`
	TechnicalSkills []string           `json:"technical_skills"`
	ExperienceLevel string             `json:"experience_level"`
	ActivityScore   float64            `json:"activity_score"`
	TotalRepos      int                `json:"total_repos"`
	TotalCommits    int                `json:"total_commits"`
	AccountAgeDays  int                `json:"account_age_days"`
	IsColdStart     bool               `json:"is_cold_start"`
}

// TopLanguages returns up to n language names ordered by weight descending,
// names ascending on equal weight so the ordering is deterministic.
func (p *SkillProfile) TopLanguages(n int) []string {
	names := make([]string, 0, len(p.Languages))
	for name := range p.Languages {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		wi, wj := p.Languages[names[i]], p.Languages[names[j]]
		if wi != wj {
			return wi > wj
		}
		return names[i] < names[j]
	})
	if n >= 0 && len(names) > n {
		names = names[:n]
	}
	return names
}

// FlattenText renders the profile as a space-joined blob of language names
// and technical skills for text-similarity matching.
func (p *SkillProfile) FlattenText() string {
	parts := append(p.TopLanguages(-1), p.TechnicalSkills...)
	return strings.Join(parts, " ")
}

type ProfileUsecase interface {
	BuildSkillProfile(ctx context.Context, username string) (*SkillProfile, error)
}
