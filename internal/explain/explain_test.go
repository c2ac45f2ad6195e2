package explain_test

import (
	"strings"
	"testing"

	"go-oscrec-backend/internal/domain"
	"go-oscrec-backend/internal/explain"

	"github.com/stretchr/testify/assert"
)

func testProfile() *domain.SkillProfile {
	return &domain.SkillProfile{
		Languages:       map[string]float64{"Python": 0.7, "JavaScript": 0.3},
		TechnicalSkills: []string{"api", "docker"},
		ExperienceLevel: domain.ExperienceBeginner,
	}
}

func TestMatchingSkills(t *testing.T) {
	t.Run("Should pick up the primary language first", func(t *testing.T) {
		skills := explain.MatchingSkills(testProfile().Languages, testProfile().TechnicalSkills,
			"Python", nil, "")
		assert.Equal(t, []string{"Python"}, skills)
	})

	t.Run("Should match topics against languages and skills", func(t *testing.T) {
		skills := explain.MatchingSkills(testProfile().Languages, testProfile().TechnicalSkills,
			"", []string{"python", "docker"}, "")
		assert.Contains(t, skills, "python")
		assert.Contains(t, skills, "docker")
	})

	t.Run("Should match skills mentioned in the description", func(t *testing.T) {
		skills := explain.MatchingSkills(testProfile().Languages, testProfile().TechnicalSkills,
			"", nil, "A REST API toolkit")
		assert.Contains(t, skills, "api")
	})

	t.Run("Should cap at five skills without duplicates", func(t *testing.T) {
		languages := map[string]float64{"Go": 1}
		userSkills := []string{"api", "docker", "redis", "testing", "ci", "graphql"}
		skills := explain.MatchingSkills(languages, userSkills,
			"Go", nil, "api docker redis testing ci graphql")
		assert.Len(t, skills, 5)
	})
}

func TestRepositoryExplanation(t *testing.T) {
	repo := domain.Repository{
		FullName:        "octo/cat",
		Language:        "Python",
		Topics:          []string{"machine-learning", "api"},
		StargazersCount: 25000,
	}

	t.Run("Should join clauses in fixed order", func(t *testing.T) {
		exp := explain.Repository(testProfile(), repo, 0.8, 0.7, 0.6, 0.5, []string{"Python"})
		clauses := strings.Split(exp.Summary, " • ")

		assert.Equal(t, "Matches your Python skills", clauses[0])
		assert.Equal(t, "Contains beginner-friendly issues and good documentation", clauses[1])
		assert.Equal(t, "Actively maintained with recent updates", clauses[2])
		assert.Contains(t, clauses[3], "Opportunity to learn")
		assert.Equal(t, "Strong community support", clauses[4])
	})

	t.Run("Should title-case topic learning opportunities", func(t *testing.T) {
		exp := explain.Repository(testProfile(), repo, 0.5, 0, 0, 0, nil)
		assert.Contains(t, exp.LearningOpportunities, "Machine Learning")
	})

	t.Run("Should title-case topics starting with multibyte runes", func(t *testing.T) {
		accented := domain.Repository{Language: "Python", Topics: []string{"état-machine"}}
		exp := explain.Repository(testProfile(), accented, 0.5, 0, 0, 0, nil)
		assert.Contains(t, exp.LearningOpportunities, "État Machine")
	})

	t.Run("Should not list known languages as learning opportunities", func(t *testing.T) {
		exp := explain.Repository(testProfile(), repo, 0.5, 0, 0, 0, nil)
		assert.NotContains(t, exp.LearningOpportunities, "Python")
	})

	t.Run("Should round the confidence score", func(t *testing.T) {
		exp := explain.Repository(testProfile(), repo, 0.876, 0, 0, 0, nil)
		assert.Equal(t, 0.88, exp.ConfidenceScore)
	})

	t.Run("Should soften claims at lower component scores", func(t *testing.T) {
		exp := explain.Repository(testProfile(), domain.Repository{StargazersCount: 5000}, 0.2, 0.5, 0.4, 0, nil)
		assert.Contains(t, exp.Summary, "Has beginner-friendly issues available")
		assert.Contains(t, exp.Summary, "Regularly updated")
		assert.Contains(t, exp.Summary, "Active community")
	})
}

func TestIssueExplanation(t *testing.T) {
	issue := domain.Issue{
		Title:    "Add integration tests",
		Comments: 0,
		Labels:   []domain.Label{{Name: "good first issue"}, {Name: "testing"}},
	}

	t.Run("Should call out good first issues", func(t *testing.T) {
		exp := explain.Issue(testProfile(), issue, 0.5, []string{"Python"}, domain.ExperienceBeginner, "1-3 hours")
		assert.Contains(t, exp.Summary, "Tagged as good first issue")
		assert.Contains(t, exp.Summary, "Suitable for beginners")
		assert.Contains(t, exp.Summary, "Fresh issue - be the first to contribute!")
		assert.Equal(t, "1-3 hours", exp.EstimatedTime)
	})

	t.Run("Should derive learning opportunities from the label vocabulary", func(t *testing.T) {
		exp := explain.Issue(testProfile(), issue, 0.5, nil, domain.ExperienceBeginner, "1-3 hours")
		assert.Contains(t, exp.LearningOpportunities, "Testing")
	})

	t.Run("Should describe discussion level by comment count", func(t *testing.T) {
		some := issue
		some.Comments = 2
		exp := explain.Issue(testProfile(), some, 0.5, nil, domain.ExperienceIntermediate, "4-8 hours")
		assert.Contains(t, exp.Summary, "Has some discussion and guidance")
		assert.Contains(t, exp.Summary, "Intermediate level challenge")

		busy := issue
		busy.Comments = 12
		exp = explain.Issue(testProfile(), busy, 0.5, nil, domain.ExperienceAdvanced, "8+ hours")
		assert.Contains(t, exp.Summary, "Active discussion with maintainer guidance")
	})
}
