package v1_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	v1 "go-oscrec-backend/internal/delivery/http/v1"
	"go-oscrec-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockProfileUC struct {
	mock.Mock
}

func (m *MockProfileUC) BuildSkillProfile(ctx context.Context, username string) (*domain.SkillProfile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SkillProfile), args.Error(1)
}

type MockRecommendationUC struct {
	mock.Mock
}

func (m *MockRecommendationUC) RecommendRepositories(ctx context.Context, profile *domain.SkillProfile, opts domain.RepoRecommendationOptions) ([]domain.ScoredRepository, error) {
	args := m.Called(ctx, profile, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScoredRepository), args.Error(1)
}

func (m *MockRecommendationUC) RecommendIssues(ctx context.Context, profile *domain.SkillProfile, opts domain.IssueRecommendationOptions) ([]domain.ScoredIssue, error) {
	args := m.Called(ctx, profile, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScoredIssue), args.Error(1)
}

func TestRecommendIssuesDifficultyDefault(t *testing.T) {
	gin.SetMode(gin.TestMode)

	setup := func(profileUC *MockProfileUC, recUC *MockRecommendationUC) *gin.Engine {
		r := gin.New()
		v1.NewRecommendationHandler(r.Group("/v1"), profileUC, recUC, 50)
		return r
	}

	t.Run("Should default to beginner regardless of the profile level", func(t *testing.T) {
		profileUC := new(MockProfileUC)
		recUC := new(MockRecommendationUC)
		profileUC.On("BuildSkillProfile", mock.Anything, "gopher").Return(&domain.SkillProfile{
			Languages:       map[string]float64{"Go": 1},
			ExperienceLevel: domain.ExperienceAdvanced,
		}, nil)

		var captured domain.IssueRecommendationOptions
		recUC.On("RecommendIssues", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { captured = args.Get(2).(domain.IssueRecommendationOptions) }).
			Return([]domain.ScoredIssue{}, nil)

		router := setup(profileUC, recUC)
		req := httptest.NewRequest(http.MethodPost, "/v1/recommend-issues",
			strings.NewReader(`{"username":"gopher"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.ExperienceBeginner, captured.Difficulty)
	})

	t.Run("Should pass an explicit difficulty through unchanged", func(t *testing.T) {
		profileUC := new(MockProfileUC)
		recUC := new(MockRecommendationUC)
		profileUC.On("BuildSkillProfile", mock.Anything, "gopher").Return(&domain.SkillProfile{
			Languages: map[string]float64{"Go": 1},
		}, nil)

		var captured domain.IssueRecommendationOptions
		recUC.On("RecommendIssues", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { captured = args.Get(2).(domain.IssueRecommendationOptions) }).
			Return([]domain.ScoredIssue{}, nil)

		router := setup(profileUC, recUC)
		req := httptest.NewRequest(http.MethodPost, "/v1/recommend-issues",
			strings.NewReader(`{"username":"gopher","difficulty":"advanced"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.ExperienceAdvanced, captured.Difficulty)
	})
}
