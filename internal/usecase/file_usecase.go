package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"go-oscrec-backend/internal/domain"
	"go-oscrec-backend/internal/scoring"
	"go-oscrec-backend/pkg/logger"
)

// Tree entries larger than this are never recommended; big generated or
// binary blobs are poor first contributions.
const maxFileSize = 100000

// excludedPathPatterns filters out dependency dirs, build output and
// generated or minified artifacts.
var excludedPathPatterns = []string{
	"node_modules/", "vendor/", "__pycache__/", ".git/",
	"dist/", "build/", "target/", "bin/",
	".min.js", ".min.css", "package-lock.json", "yarn.lock",
}

type fileUsecase struct {
	github  domain.GitHubGateway
	cache   domain.Cache
	treeTTL time.Duration
}

func NewFileUsecase(github domain.GitHubGateway, cache domain.Cache, treeTTL time.Duration) domain.FileUsecase {
	return &fileUsecase{
		github:  github,
		cache:   cache,
		treeTTL: treeTTL,
	}
}

func (u *fileUsecase) RecommendFiles(ctx context.Context, owner, repo string, skills []string, branch string, limit int) ([]domain.ScoredFile, error) {
	entries, err := u.fetchTree(ctx, owner, repo, branch)
	if err != nil {
		return nil, err
	}

	displayBranch := branch
	if displayBranch == "" {
		displayBranch = "main"
	}

	var scored []domain.ScoredFile
	for _, entry := range entries {
		if excludedPath(entry.Path) || entry.Size > maxFileSize {
			continue
		}

		language := scoring.FileLanguage(entry.Path)
		score := scoring.FileSkillMatch(entry.Path, language, skills)
		if score <= 0 {
			continue
		}

		analysis := scoring.AnalyzeFile(entry.Path, entry.Size)
		scored = append(scored, domain.ScoredFile{
			File: domain.FileInfo{
				Path:       entry.Path,
				Name:       baseName(entry.Path),
				Language:   language,
				Size:       entry.Size,
				URL:        fmt.Sprintf("https://github.com/%s/%s/blob/%s/%s", owner, repo, displayBranch, entry.Path),
				ContentURL: entry.URL,
			},
			Score:            score,
			ContributionType: analysis.ContributionType,
			Suggestions:      analysis.Suggestions,
			Difficulty:       analysis.Difficulty,
			EstimatedTime:    analysis.EstimatedTime,
			MatchingSkills:   fileMatchingSkills(entry.Path, language, skills),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > limit {
		scored = scored[:limit]
	}

	logger.Log.Info("File recommendations ranked",
		"repo", owner+"/"+repo, "candidates", len(entries), "results", len(scored))
	return scored, nil
}

// fetchTree returns the repository blob listing, cached for the configured
// TTL so repeated requests against the same repo skip the tree endpoint.
func (u *fileUsecase) fetchTree(ctx context.Context, owner, repo, branch string) ([]domain.TreeEntry, error) {
	branchKey := branch
	if branchKey == "" {
		branchKey = "default"
	}
	cacheKey := fmt.Sprintf("repo_tree:%s/%s:%s", owner, repo, branchKey)

	if raw, ok := u.cache.Get(ctx, cacheKey, u.treeTTL); ok {
		var cached []domain.TreeEntry
		if err := json.Unmarshal(raw, &cached); err == nil {
			logger.Log.Debug("Using cached repo tree", "key", cacheKey)
			return cached, nil
		}
	}

	entries, err := u.github.GetRepoTree(ctx, owner, repo, branch)
	if err != nil {
		return nil, err
	}

	if raw, marshalErr := json.Marshal(entries); marshalErr == nil {
		u.cache.Set(ctx, cacheKey, raw)
	}
	return entries, nil
}

func excludedPath(path string) bool {
	for _, pattern := range excludedPathPatterns {
		if strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}

// fileMatchingSkills lists the requested skills the file's language or path
// reflects.
func fileMatchingSkills(path, language string, skills []string) []string {
	pathLower := strings.ToLower(path)
	languageLower := strings.ToLower(language)

	var matching []string
	for _, skill := range skills {
		skillLower := strings.ToLower(skill)
		if skillLower == languageLower || strings.Contains(pathLower, skillLower) {
			matching = append(matching, skill)
		}
	}
	return matching
}

func baseName(path string) string {
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
