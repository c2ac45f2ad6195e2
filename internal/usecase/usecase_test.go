package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-oscrec-backend/internal/domain"
	"go-oscrec-backend/internal/usecase"
	"go-oscrec-backend/pkg/apperror"
	"go-oscrec-backend/pkg/logger"
	"go-oscrec-backend/pkg/textsim"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func init() {
	logger.Init(false)
}

// Mock GitHub gateway
type MockGitHub struct {
	mock.Mock
}

func (m *MockGitHub) GetUser(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockGitHub) GetUserRepos(ctx context.Context, username string) ([]domain.Repository, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Repository), args.Error(1)
}

func (m *MockGitHub) GetUserEvents(ctx context.Context, username string) ([]domain.Event, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *MockGitHub) SearchRepositories(ctx context.Context, query, sort, order string, perPage int) ([]domain.Repository, error) {
	args := m.Called(ctx, query, sort, order, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Repository), args.Error(1)
}

func (m *MockGitHub) SearchIssues(ctx context.Context, query, sort, order string, perPage int) ([]domain.Issue, error) {
	args := m.Called(ctx, query, sort, order, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Issue), args.Error(1)
}

func (m *MockGitHub) GetRepoLanguages(ctx context.Context, owner, repo string) (map[string]int64, error) {
	args := m.Called(ctx, owner, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockGitHub) GetRepoTree(ctx context.Context, owner, repo, branch string) ([]domain.TreeEntry, error) {
	args := m.Called(ctx, owner, repo, branch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TreeEntry), args.Error(1)
}

// Mock cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, ttl time.Duration) ([]byte, bool) {
	args := m.Called(ctx, key, ttl)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]byte), args.Bool(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte) {
	m.Called(ctx, key, value)
}

func newProfilingUC(github *MockGitHub, cache *MockCache) domain.ProfileUsecase {
	return usecase.NewProfilingUsecase(github, cache, textsim.New(0), validator.New(), 5*time.Minute)
}

func TestBuildSkillProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject invalid usernames before any fetch", func(t *testing.T) {
		uc := newProfilingUC(new(MockGitHub), new(MockCache))

		for _, bad := range []string{"", "-leading", "spa ce", "exclaim!"} {
			_, err := uc.BuildSkillProfile(ctx, bad)
			assert.Error(t, err)
			var appErr *apperror.AppError
			assert.True(t, errors.As(err, &appErr))
			assert.Equal(t, 400, appErr.Code)
		}
	})

	t.Run("Should fail for users with zero public repos", func(t *testing.T) {
		github := new(MockGitHub)
		cache := new(MockCache)
		cache.On("Get", mock.Anything, "user_profile:ghost", mock.Anything).Return(nil, false)
		github.On("GetUser", mock.Anything, "ghost").Return(&domain.User{Login: "ghost", PublicRepos: 0}, nil)
		github.On("GetUserRepos", mock.Anything, "ghost").Return([]domain.Repository{}, nil)

		_, err := newProfilingUC(github, cache).BuildSkillProfile(ctx, "ghost")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "insufficient data")
	})

	t.Run("Should synthesize a default profile for sparse accounts", func(t *testing.T) {
		github := new(MockGitHub)
		cache := new(MockCache)
		cache.On("Get", mock.Anything, "user_profile:newbie", mock.Anything).Return(nil, false)
		cache.On("Set", mock.Anything, "user_profile:newbie", mock.Anything).Return()
		github.On("GetUser", mock.Anything, "newbie").Return(&domain.User{Login: "newbie", PublicRepos: 2}, nil)
		github.On("GetUserRepos", mock.Anything, "newbie").Return([]domain.Repository{
			{Name: "hello", Language: "Python"},
			{Name: "world", Language: "Python"},
		}, nil)

		profile, err := newProfilingUC(github, cache).BuildSkillProfile(ctx, "newbie")
		assert.NoError(t, err)
		assert.True(t, profile.IsColdStart)
		assert.InDelta(t, 0.5, profile.Languages["Python"], 1e-9)
		assert.InDelta(t, 0.5, profile.Languages["JavaScript"], 1e-9)
		assert.Equal(t, domain.ExperienceBeginner, profile.ExperienceLevel)
		assert.Equal(t, 0.3, profile.ActivityScore)
		assert.Contains(t, profile.TechnicalSkills, "beginner-friendly")
	})

	t.Run("Should build a standard profile from repositories", func(t *testing.T) {
		github := new(MockGitHub)
		cache := new(MockCache)
		cache.On("Get", mock.Anything, "user_profile:gopher", mock.Anything).Return(nil, false)
		cache.On("Set", mock.Anything, "user_profile:gopher", mock.Anything).Return()
		github.On("GetUser", mock.Anything, "gopher").Return(&domain.User{
			Login:       "gopher",
			PublicRepos: 12,
			Followers:   30,
			CreatedAt:   "2020-01-01T00:00:00Z",
		}, nil)
		github.On("GetUserRepos", mock.Anything, "gopher").Return([]domain.Repository{
			{Name: "svc", Language: "Go", Size: 3000, Description: "REST api with docker", UpdatedAt: time.Now().UTC().Format(time.RFC3339)},
			{Name: "web", Language: "JavaScript", Size: 1000, Topics: []string{"react"}},
			{Name: "bare", Language: "Go", Size: 0},
		}, nil)
		github.On("GetUserEvents", mock.Anything, "gopher").Return(nil, errors.New("events unavailable"))

		profile, err := newProfilingUC(github, cache).BuildSkillProfile(ctx, "gopher")
		assert.NoError(t, err)
		assert.False(t, profile.IsColdStart)
		// Size of zero falls back to the 1000 proxy: Go 4000 of 5000 total.
		assert.InDelta(t, 0.8, profile.Languages["Go"], 1e-9)
		assert.InDelta(t, 0.2, profile.Languages["JavaScript"], 1e-9)
		assert.Equal(t, 12, profile.TotalRepos)
		assert.Equal(t, 150, profile.TotalCommits)
		assert.Greater(t, profile.AccountAgeDays, 2000)
		assert.Contains(t, profile.TechnicalSkills, "Api")
		assert.Contains(t, profile.TechnicalSkills, "react")
	})

	t.Run("Should serve cached profiles without fetching", func(t *testing.T) {
		github := new(MockGitHub)
		cache := new(MockCache)
		cached, _ := json.Marshal(&domain.SkillProfile{
			Languages:       map[string]float64{"Rust": 1},
			ExperienceLevel: domain.ExperienceAdvanced,
		})
		cache.On("Get", mock.Anything, "user_profile:ferris", mock.Anything).Return(cached, true)

		profile, err := newProfilingUC(github, cache).BuildSkillProfile(ctx, "ferris")
		assert.NoError(t, err)
		assert.Equal(t, domain.ExperienceAdvanced, profile.ExperienceLevel)
		github.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
	})
}

func TestRecommendRepositories(t *testing.T) {
	ctx := context.Background()
	profile := &domain.SkillProfile{
		Languages:       map[string]float64{"Go": 1},
		TechnicalSkills: []string{"cli"},
		ExperienceLevel: domain.ExperienceBeginner,
	}
	now := time.Now().UTC().Format(time.RFC3339)

	t.Run("Should rank candidates by score descending", func(t *testing.T) {
		github := new(MockGitHub)
		github.On("SearchRepositories", mock.Anything, "language:Go stars:>=100 archived:false", "stars", "desc", 30).
			Return([]domain.Repository{
				{FullName: "low/bar", Language: "Go", StargazersCount: 120, UpdatedAt: "garbage"},
				{FullName: "high/foo", Language: "Go", Description: "A cli toolkit", Topics: []string{"go", "cli", "tools"},
					StargazersCount: 40000, ForksCount: 900, WatchersCount: 300, OpenIssuesCount: 40,
					License: &domain.License{Key: "mit"}, HasWiki: true, UpdatedAt: now},
			}, nil)

		uc := usecase.NewRecommendationUsecase(github, textsim.New(0))
		scored, err := uc.RecommendRepositories(ctx, profile, domain.RepoRecommendationOptions{Limit: 10, MinStars: 100})
		assert.NoError(t, err)
		assert.Len(t, scored, 2)
		assert.Equal(t, "high/foo", scored[0].Repository.FullName)
		assert.GreaterOrEqual(t, scored[0].Score, scored[1].Score)
		assert.Contains(t, scored[0].ComponentScores, domain.ComponentSkillMatch)
	})

	t.Run("Should match skills on language, topics and description only", func(t *testing.T) {
		github := new(MockGitHub)
		github.On("SearchRepositories", mock.Anything, "language:Go stars:>=100 archived:false", "stars", "desc", 30).
			Return([]domain.Repository{
				{FullName: "octo/gocli", Name: "go cli", UpdatedAt: now},
				{FullName: "octo/toolkit", Name: "toolkit", Language: "Go", Topics: []string{"cli"}, UpdatedAt: now},
			}, nil)

		uc := usecase.NewRecommendationUsecase(github, textsim.New(0))
		scored, err := uc.RecommendRepositories(ctx, profile, domain.RepoRecommendationOptions{Limit: 10, MinStars: 100})
		assert.NoError(t, err)
		assert.Len(t, scored, 2)

		byName := map[string]domain.ScoredRepository{}
		for _, s := range scored {
			byName[s.Repository.FullName] = s
		}
		// A name-only overlap must not count as a skill match.
		assert.Equal(t, 0.0, byName["octo/gocli"].ComponentScores[domain.ComponentSkillMatch])
		assert.Greater(t, byName["octo/toolkit"].ComponentScores[domain.ComponentSkillMatch], 0.0)
	})

	t.Run("Should drop excluded and deduplicate across languages", func(t *testing.T) {
		github := new(MockGitHub)
		shared := domain.Repository{FullName: "octo/cat", Language: "Go", StargazersCount: 5000, UpdatedAt: now}
		github.On("SearchRepositories", mock.Anything, "language:Go stars:>=100 archived:false", "stars", "desc", 30).
			Return([]domain.Repository{shared, {FullName: "skip/me", Language: "Go", StargazersCount: 200, UpdatedAt: now}}, nil)
		github.On("SearchRepositories", mock.Anything, "language:Python stars:>=100 archived:false", "stars", "desc", 30).
			Return([]domain.Repository{shared}, nil)

		uc := usecase.NewRecommendationUsecase(github, textsim.New(0))
		scored, err := uc.RecommendRepositories(ctx, profile, domain.RepoRecommendationOptions{
			Limit:        10,
			MinStars:     100,
			Languages:    []string{"Go", "Python"},
			ExcludeRepos: []string{"skip/me"},
		})
		assert.NoError(t, err)
		assert.Len(t, scored, 1)
		assert.Equal(t, "octo/cat", scored[0].Repository.FullName)
	})

	t.Run("Should surface search failures", func(t *testing.T) {
		github := new(MockGitHub)
		github.On("SearchRepositories", mock.Anything, mock.Anything, "stars", "desc", 30).
			Return(nil, errors.New("boom"))

		uc := usecase.NewRecommendationUsecase(github, textsim.New(0))
		_, err := uc.RecommendRepositories(ctx, profile, domain.RepoRecommendationOptions{Limit: 10, MinStars: 100})
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
	})
}

func TestRecommendIssues(t *testing.T) {
	ctx := context.Background()
	profile := &domain.SkillProfile{
		Languages:       map[string]float64{"Python": 1},
		ExperienceLevel: domain.ExperienceBeginner,
	}

	t.Run("Should filter out pull requests", func(t *testing.T) {
		github := new(MockGitHub)
		pr := domain.Issue{Title: "Sneaky PR", PullRequest: &struct {
			URL string `json:"url"`
		}{URL: "https://example.com/pr/1"}}
		github.On("SearchIssues", mock.Anything, mock.Anything, "created", "desc", 50).
			Return([]domain.Issue{
				{Title: "Fix python docs", Labels: []domain.Label{{Name: "good first issue"}}, Comments: 1},
				pr,
			}, nil)

		uc := usecase.NewRecommendationUsecase(github, textsim.New(0))
		scored, err := uc.RecommendIssues(ctx, profile, domain.IssueRecommendationOptions{Limit: 10, Difficulty: domain.ExperienceBeginner})
		assert.NoError(t, err)
		assert.Len(t, scored, 1)
		assert.Equal(t, "Fix python docs", scored[0].Issue.Title)
		assert.Equal(t, domain.ExperienceBeginner, scored[0].Difficulty)
		assert.Equal(t, "1-3 hours", scored[0].Explanation.EstimatedTime)
	})

	t.Run("Should include beginner clauses in the search query", func(t *testing.T) {
		github := new(MockGitHub)
		var captured string
		github.On("SearchIssues", mock.Anything, mock.Anything, "created", "desc", 50).
			Run(func(args mock.Arguments) { captured = args.String(1) }).
			Return([]domain.Issue{}, nil)

		uc := usecase.NewRecommendationUsecase(github, textsim.New(0))
		_, err := uc.RecommendIssues(ctx, profile, domain.IssueRecommendationOptions{Limit: 10, Difficulty: domain.ExperienceBeginner})
		assert.NoError(t, err)
		assert.Contains(t, captured, "is:issue")
		assert.Contains(t, captured, "is:open")
		assert.Contains(t, captured, `label:"good first issue"`)
		assert.Contains(t, captured, "language:Python")
		assert.Contains(t, captured, "comments:<10")
	})

	t.Run("Should let explicit labels replace the default label clause", func(t *testing.T) {
		github := new(MockGitHub)
		var captured string
		github.On("SearchIssues", mock.Anything, mock.Anything, "created", "desc", 50).
			Run(func(args mock.Arguments) { captured = args.String(1) }).
			Return([]domain.Issue{}, nil)

		uc := usecase.NewRecommendationUsecase(github, textsim.New(0))
		_, err := uc.RecommendIssues(ctx, profile, domain.IssueRecommendationOptions{
			Limit:      10,
			Difficulty: domain.ExperienceIntermediate,
			Labels:     []string{"bug"},
		})
		assert.NoError(t, err)
		assert.Contains(t, captured, `label:"bug"`)
		assert.NotContains(t, captured, "good first issue")
		assert.NotContains(t, captured, "comments:<10")
	})
}

func TestRecommendFiles(t *testing.T) {
	ctx := context.Background()

	t.Run("Should score, filter and sort tree entries", func(t *testing.T) {
		github := new(MockGitHub)
		cache := new(MockCache)
		cache.On("Get", mock.Anything, "repo_tree:octo/cat:default", mock.Anything).Return(nil, false)
		cache.On("Set", mock.Anything, "repo_tree:octo/cat:default", mock.Anything).Return()
		github.On("GetRepoTree", mock.Anything, "octo", "cat", "").Return([]domain.TreeEntry{
			{Path: "node_modules/pkg/index.js", Type: "blob", Size: 100},
			{Path: "src/utils/helpers.py", Type: "blob", Size: 300},
			{Path: "src/huge_generated.py", Type: "blob", Size: 200000},
			{Path: "README.md", Type: "blob", Size: 150},
		}, nil)

		uc := usecase.NewFileUsecase(github, cache, 10*time.Minute)
		scored, err := uc.RecommendFiles(ctx, "octo", "cat", []string{"Python"}, "", 10)
		assert.NoError(t, err)
		assert.Len(t, scored, 1)
		assert.Equal(t, "src/utils/helpers.py", scored[0].File.Path)
		assert.Equal(t, "helpers.py", scored[0].File.Name)
		assert.Equal(t, "Python", scored[0].File.Language)
		assert.InDelta(t, 0.6, scored[0].Score, 1e-9)
		assert.Equal(t, domain.ExperienceBeginner, scored[0].Difficulty)
		assert.Equal(t, "30min - 1hr", scored[0].EstimatedTime)
		assert.Equal(t, []string{"Python"}, scored[0].MatchingSkills)
		assert.Contains(t, scored[0].File.URL, "https://github.com/octo/cat/blob/main/src/utils/helpers.py")
	})

	t.Run("Should serve cached trees without refetching", func(t *testing.T) {
		github := new(MockGitHub)
		cache := new(MockCache)
		cached, _ := json.Marshal([]domain.TreeEntry{{Path: "app.py", Type: "blob", Size: 100}})
		cache.On("Get", mock.Anything, "repo_tree:octo/cat:dev", mock.Anything).Return(cached, true)

		uc := usecase.NewFileUsecase(github, cache, 10*time.Minute)
		scored, err := uc.RecommendFiles(ctx, "octo", "cat", []string{"Python"}, "dev", 10)
		assert.NoError(t, err)
		assert.Len(t, scored, 1)
		github.AssertNotCalled(t, "GetRepoTree", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHealthUsecase(t *testing.T) {
	t.Run("Should report the in-memory cache when no pinger is wired", func(t *testing.T) {
		status := usecase.NewHealthUsecase(nil).Check(context.Background())
		assert.Equal(t, "ok", status["status"])
		assert.Equal(t, "memory", status["cache"])
	})
}
