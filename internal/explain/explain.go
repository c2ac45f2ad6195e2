// Package explain assembles deterministic, human-readable rationales for
// scored candidates from the same inputs the scoring engine used.
package explain

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"go-oscrec-backend/internal/domain"
)

// clauseSeparator joins summary clauses in their fixed order.
const clauseSeparator = " • "

const (
	maxMatchingSkills        = 5
	maxLearningOpportunities = 3
)

// issueLearningLabels is the small fixed vocabulary matched against issue
// labels to derive learning opportunities.
var issueLearningLabels = []string{"testing", "documentation", "ci", "docker", "api"}

// MatchingSkills identifies which of the user's skills a repository touches:
// the primary language, topics overlapping languages or technical skills,
// and technical skills mentioned in the description. At most 5 are kept, in
// discovery order.
func MatchingSkills(userLanguages map[string]float64, userSkills []string, repoLanguage string, repoTopics []string, repoDescription string) []string {
	var matching []string
	seen := map[string]bool{}
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			matching = append(matching, s)
		}
	}

	if repoLanguage != "" {
		if _, ok := userLanguages[repoLanguage]; ok {
			add(repoLanguage)
		}
	}

	for _, topic := range repoTopics {
		topicClean := strings.ToLower(strings.ReplaceAll(topic, "-", " "))
		for lang := range userLanguages {
			langLower := strings.ToLower(lang)
			if strings.Contains(topicClean, langLower) || strings.Contains(langLower, topicClean) {
				add(topic)
			}
		}
		for _, skill := range userSkills {
			skillLower := strings.ToLower(skill)
			if strings.Contains(skillLower, topicClean) || strings.Contains(topicClean, skillLower) {
				add(topic)
			}
		}
	}

	if repoDescription != "" {
		descLower := strings.ToLower(repoDescription)
		for _, skill := range userSkills {
			if strings.Contains(descLower, strings.ToLower(skill)) {
				add(skill)
			}
		}
	}

	if len(matching) > maxMatchingSkills {
		matching = matching[:maxMatchingSkills]
	}
	return matching
}

// Repository builds the explanation for a repository recommendation.
// Clause order: skill match, beginner friendliness, activity, learning
// opportunities, community size.
func Repository(profile *domain.SkillProfile, repo domain.Repository, skillMatch, activity, beginner, growth float64, matchingSkills []string) domain.Explanation {
	var parts []string

	if len(matchingSkills) > 0 {
		top := matchingSkills
		if len(top) > 3 {
			top = top[:3]
		}
		if len(top) == 1 {
			parts = append(parts, fmt.Sprintf("Matches your %s skills", top[0]))
		} else {
			parts = append(parts, fmt.Sprintf("Matches your skills in %s", strings.Join(top, ", ")))
		}
	}

	if beginner > 0.5 {
		parts = append(parts, "Contains beginner-friendly issues and good documentation")
	} else if beginner > 0.3 {
		parts = append(parts, "Has beginner-friendly issues available")
	}

	if activity > 0.6 {
		parts = append(parts, "Actively maintained with recent updates")
	} else if activity > 0.4 {
		parts = append(parts, "Regularly updated")
	}

	var learning []string
	if repo.Language != "" {
		if _, known := profile.Languages[repo.Language]; !known {
			learning = append(learning, repo.Language)
		}
	}
	knownSkills := map[string]bool{}
	for _, s := range profile.TechnicalSkills {
		knownSkills[s] = true
	}
	topics := repo.Topics
	if len(topics) > 3 {
		topics = topics[:3]
	}
	for _, topic := range topics {
		if !knownSkills[topic] {
			learning = append(learning, titleCase(strings.ReplaceAll(topic, "-", " ")))
		}
	}
	if len(learning) > maxLearningOpportunities {
		learning = learning[:maxLearningOpportunities]
	}
	if len(learning) > 0 {
		shown := learning
		if len(shown) > 2 {
			shown = shown[:2]
		}
		parts = append(parts, fmt.Sprintf("Opportunity to learn %s", strings.Join(shown, ", ")))
	}

	if repo.StargazersCount > 10000 {
		parts = append(parts, "Strong community support")
	} else if repo.StargazersCount > 1000 {
		parts = append(parts, "Active community")
	}

	return domain.Explanation{
		Summary:               strings.Join(parts, clauseSeparator),
		MatchingSkills:        matchingSkills,
		LearningOpportunities: learning,
		ConfidenceScore:       round2(skillMatch),
	}
}

// Issue builds the explanation for an issue recommendation. Clause order:
// skill match, good-first-issue callout, difficulty, discussion level,
// learning opportunities from the label vocabulary.
func Issue(profile *domain.SkillProfile, issue domain.Issue, skillMatch float64, matchingSkills []string, difficulty, estimatedTime string) domain.Explanation {
	var parts []string

	if len(matchingSkills) > 0 {
		shown := matchingSkills
		if len(shown) > 2 {
			shown = shown[:2]
		}
		parts = append(parts, fmt.Sprintf("Matches your %s skills", strings.Join(shown, ", ")))
	}

	labels := issue.LabelNames()
	for _, label := range labels {
		if strings.ToLower(label) == "good first issue" {
			parts = append(parts, "Tagged as good first issue")
			break
		}
	}

	switch difficulty {
	case domain.ExperienceBeginner:
		parts = append(parts, "Suitable for beginners")
	case domain.ExperienceIntermediate:
		parts = append(parts, "Intermediate level challenge")
	}

	switch {
	case issue.Comments == 0:
		parts = append(parts, "Fresh issue - be the first to contribute!")
	case issue.Comments <= 3:
		parts = append(parts, "Has some discussion and guidance")
	default:
		parts = append(parts, "Active discussion with maintainer guidance")
	}

	var learning []string
	seen := map[string]bool{}
	for _, label := range labels {
		labelLower := strings.ToLower(label)
		for _, vocab := range issueLearningLabels {
			if strings.Contains(labelLower, vocab) && !seen[vocab] {
				seen[vocab] = true
				learning = append(learning, titleCase(vocab))
			}
		}
	}
	if len(learning) > maxLearningOpportunities {
		learning = learning[:maxLearningOpportunities]
	}
	if len(learning) > 0 {
		shown := learning
		if len(shown) > 2 {
			shown = shown[:2]
		}
		parts = append(parts, fmt.Sprintf("Learn about %s", strings.Join(shown, ", ")))
	}

	return domain.Explanation{
		Summary:               strings.Join(parts, clauseSeparator),
		MatchingSkills:        matchingSkills,
		LearningOpportunities: learning,
		ConfidenceScore:       round2(skillMatch),
		EstimatedTime:         estimatedTime,
	}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
