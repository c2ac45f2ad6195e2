// Package scoring holds the pure, stateless scoring functions of the
// recommendation core. Every exported score lies in [0,1].
package scoring

import (
	"math"
	"strings"
	"time"

	"go-oscrec-backend/internal/domain"
)

// Default weights of the final repository score.
const (
	WeightSkill    = 0.4
	WeightActivity = 0.2
	WeightBeginner = 0.2
	WeightGrowth   = 0.2
)

// starsCeiling normalizes the logarithmic star score; ~100k stars maps to 1.
const starsCeiling = 100000

// RepoActivityScore computes min(1, log(stars+1)/log(100000)) * recencyBoost
// where recencyBoost = 1/(1+daysSinceUpdate/30). An unparseable update
// timestamp degrades the boost to 0.5.
func RepoActivityScore(repo domain.Repository, now time.Time) float64 {
	starsScore := math.Log(float64(repo.StargazersCount)+1) / math.Log(starsCeiling)
	starsScore = math.Min(1, starsScore)

	recencyBoost := 0.5
	if updatedAt, err := time.Parse(time.RFC3339, repo.UpdatedAt); err == nil {
		days := now.Sub(updatedAt).Hours() / 24
		if days < 0 {
			days = 0
		}
		recencyBoost = 1 / (1 + days/30)
	}

	return clamp01(starsScore * recencyBoost)
}

// BeginnerFriendlinessScore is an additive checklist capped at 1.0. The
// final +0.2 stands in for a contributing-guide check that cannot be
// verified from the available candidate data; it stays a constant addend.
func BeginnerFriendlinessScore(repo domain.Repository) float64 {
	score := 0.0

	if repo.Description != "" {
		score += 0.1
	}
	if len(repo.Topics) > 0 {
		score += 0.1
	}
	if repo.HasWiki || repo.HasPages {
		score += 0.2
	}
	// Open-issue sweet spot: enough to pick from, not overwhelming.
	if repo.OpenIssuesCount >= 5 && repo.OpenIssuesCount <= 100 {
		score += 0.2
	} else if repo.OpenIssuesCount > 0 {
		score += 0.1
	}
	if repo.License != nil {
		score += 0.1
	}
	if repo.Size < 50000 {
		score += 0.1
	}
	score += 0.2

	return clamp01(score)
}

// GrowthPotentialScore estimates learning potential from forks, watchers,
// topic coverage and open issues.
func GrowthPotentialScore(repo domain.Repository) float64 {
	score := 0.0

	if repo.ForksCount > 10 {
		score += 0.3
	} else if repo.ForksCount > 0 {
		score += 0.15
	}

	if repo.WatchersCount > 50 {
		score += 0.2
	} else if repo.WatchersCount > 0 {
		score += 0.1
	}

	if len(repo.Topics) >= 3 {
		score += 0.3
	} else if len(repo.Topics) > 0 {
		score += 0.15
	}

	if repo.OpenIssuesCount > 5 {
		score += 0.2
	} else if repo.OpenIssuesCount > 0 {
		score += 0.1
	}

	return clamp01(score)
}

// WeightedRepoScore combines the component scores into the final score.
// A nil weights map applies the defaults; supplied weights are taken as-is
// and need not sum to 1.
func WeightedRepoScore(skillMatch, activity, beginner, growth float64, weights map[string]float64) float64 {
	w := func(key string, fallback float64) float64 {
		if weights == nil {
			return fallback
		}
		if v, ok := weights[key]; ok {
			return v
		}
		return fallback
	}
	final := skillMatch*w("skill", WeightSkill) +
		activity*w("activity", WeightActivity) +
		beginner*w("beginner", WeightBeginner) +
		growth*w("growth", WeightGrowth)
	return clamp01(final)
}

// IssueScore computes 0.3 + 0.7*skillMatch with label boosts: +0.1 for
// "good first issue", +0.05 for "help wanted".
func IssueScore(skillMatch float64, labels []string) float64 {
	score := 0.3 + 0.7*skillMatch
	for _, label := range labels {
		switch strings.ToLower(label) {
		case "good first issue":
			score += 0.1
		case "help wanted":
			score += 0.05
		}
	}
	return clamp01(score)
}

var (
	beginnerLabels     = []string{"good first issue", "beginner", "easy", "starter"}
	intermediateLabels = []string{"intermediate", "medium"}
	advancedLabels     = []string{"advanced", "hard", "expert", "complex"}
)

// IssueDifficulty classifies by explicit difficulty labels first (beginner,
// then intermediate, then advanced sets), falling back to comment-count
// thresholds when no label matches.
func IssueDifficulty(labels []string, comments int) string {
	lowered := make([]string, len(labels))
	for i, l := range labels {
		lowered[i] = strings.ToLower(l)
	}
	contains := func(set []string) bool {
		for _, l := range lowered {
			for _, s := range set {
				if l == s {
					return true
				}
			}
		}
		return false
	}

	if contains(beginnerLabels) {
		return domain.ExperienceBeginner
	}
	if contains(intermediateLabels) {
		return domain.ExperienceIntermediate
	}
	if contains(advancedLabels) {
		return domain.ExperienceAdvanced
	}

	switch {
	case comments <= 5:
		return domain.ExperienceBeginner
	case comments <= 15:
		return domain.ExperienceIntermediate
	default:
		return domain.ExperienceAdvanced
	}
}

// IssueTimeEstimate maps difficulty to a fixed time-range string.
func IssueTimeEstimate(difficulty string) string {
	switch difficulty {
	case domain.ExperienceBeginner:
		return "1-3 hours"
	case domain.ExperienceIntermediate:
		return "4-8 hours"
	case domain.ExperienceAdvanced:
		return "8+ hours"
	default:
		return "2-4 hours"
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
