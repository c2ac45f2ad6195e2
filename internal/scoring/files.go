package scoring

import (
	"path/filepath"
	"strings"

	"go-oscrec-backend/internal/domain"
)

// languageByExtension maps file extensions to language names.
var languageByExtension = map[string]string{
	".py":    "Python",
	".js":    "JavaScript",
	".jsx":   "JavaScript",
	".ts":    "TypeScript",
	".tsx":   "TypeScript",
	".java":  "Java",
	".cpp":   "C++",
	".c":     "C",
	".go":    "Go",
	".rs":    "Rust",
	".rb":    "Ruby",
	".php":   "PHP",
	".swift": "Swift",
	".kt":    "Kotlin",
	".md":    "Markdown",
	".html":  "HTML",
	".css":   "CSS",
	".scss":  "SCSS",
	".sql":   "SQL",
	".sh":    "Shell",
	".yaml":  "YAML",
	".yml":   "YAML",
	".json":  "JSON",
}

// FileLanguage infers the language of a file from its extension; empty when
// the extension is unknown.
func FileLanguage(path string) string {
	return languageByExtension[strings.ToLower(filepath.Ext(path))]
}

// FileAnalysis classifies a file by contribution type, difficulty and time
// estimate.
type FileAnalysis struct {
	ContributionType domain.ContributionType
	Suggestions      []string
	Difficulty       string
	EstimatedTime    string
}

// AnalyzeFile classifies by path substring first (tests, docs), then by
// size: files over 1KB invite refactoring, smaller ones new features.
// Difficulty follows size thresholds alone.
func AnalyzeFile(path string, size int) FileAnalysis {
	var analysis FileAnalysis

	lower := strings.ToLower(path)
	switch {
	case strings.Contains(lower, "test") || strings.Contains(lower, "spec"):
		analysis.ContributionType = domain.ContributionTests
		analysis.Suggestions = []string{"Add more test cases", "Improve test coverage"}
	case strings.HasSuffix(path, ".md") || strings.Contains(path, "README"):
		analysis.ContributionType = domain.ContributionDocumentation
		analysis.Suggestions = []string{"Improve documentation", "Add examples and usage instructions"}
	case size > 1000:
		analysis.ContributionType = domain.ContributionRefactor
		analysis.Suggestions = []string{"Refactor for better readability", "Split into smaller modules"}
	default:
		analysis.ContributionType = domain.ContributionFeature
		analysis.Suggestions = []string{"Add new features", "Implement missing functionality"}
	}

	switch {
	case size < 500:
		analysis.Difficulty = domain.ExperienceBeginner
		analysis.EstimatedTime = "30min - 1hr"
	case size < 2000:
		analysis.Difficulty = domain.ExperienceIntermediate
		analysis.EstimatedTime = "1-2 hours"
	default:
		analysis.Difficulty = domain.ExperienceAdvanced
		analysis.EstimatedTime = "2-4 hours"
	}

	return analysis
}

// FileSkillMatch scores a file against the user's skills: +0.6 exact
// language match, +0.3 when any skill substring appears in the path,
// +0.1 for common contribution areas, capped at 1.0.
func FileSkillMatch(path, language string, skills []string) float64 {
	score := 0.0

	if language != "" {
		for _, skill := range skills {
			if skill == language {
				score += 0.6
				break
			}
		}
	}

	lower := strings.ToLower(path)
	for _, skill := range skills {
		if skill != "" && strings.Contains(lower, strings.ToLower(skill)) {
			score += 0.3
			break
		}
	}

	for _, keyword := range []string{"test", "doc", "example"} {
		if strings.Contains(lower, keyword) {
			score += 0.1
			break
		}
	}

	return clamp01(score)
}
