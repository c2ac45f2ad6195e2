package v1

import (
	"net/http"

	"go-oscrec-backend/internal/delivery/http/response"
	"go-oscrec-backend/internal/domain"
	"go-oscrec-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const (
	defaultRecommendationLimit = 10
	defaultMinStars            = 100
)

type RecommendationHandler struct {
	profileUC        domain.ProfileUsecase
	recommendationUC domain.RecommendationUsecase
	maxLimit         int
}

// NewRecommendationHandler registers the repository and issue
// recommendation routes
func NewRecommendationHandler(rg *gin.RouterGroup, profileUC domain.ProfileUsecase, recommendationUC domain.RecommendationUsecase, maxLimit int) {
	handler := &RecommendationHandler{
		profileUC:        profileUC,
		recommendationUC: recommendationUC,
		maxLimit:         maxLimit,
	}

	rg.POST("/recommend-repos", handler.RecommendRepositories)
	rg.POST("/recommend-issues", handler.RecommendIssues)
}

type RecommendReposRequest struct {
	Username     string   `json:"username" binding:"required"`
	Limit        int      `json:"limit"`
	MinStars     int      `json:"min_stars"`
	Languages    []string `json:"languages"`
	ExcludeRepos []string `json:"exclude_repos"`
}

type RecommendIssuesRequest struct {
	Username   string   `json:"username" binding:"required"`
	Limit      int      `json:"limit"`
	Difficulty string   `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Labels     []string `json:"labels"`
}

// RankedRepository pairs a scored repository with its 1-based rank.
type RankedRepository struct {
	Rank int `json:"rank"`
	domain.ScoredRepository
}

// RankedIssue pairs a scored issue with its 1-based rank.
type RankedIssue struct {
	Rank int `json:"rank"`
	domain.ScoredIssue
}

// RecommendRepositories godoc
// @Summary      Recommend Repositories
// @Description  Rank open-source repositories against a user's skill profile
// @Tags         recommendations
// @Accept       json
// @Produce      json
// @Param        request  body      RecommendReposRequest  true  "Recommendation options"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      503      {object}  response.Response
// @Router       /recommend-repos [post]
func (h *RecommendationHandler) RecommendRepositories(c *gin.Context) {
	var req RecommendReposRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	profile, err := h.profileUC.BuildSkillProfile(c.Request.Context(), req.Username)
	if err != nil {
		c.Error(err)
		return
	}

	opts := domain.RepoRecommendationOptions{
		Limit:        h.clampLimit(req.Limit),
		MinStars:     req.MinStars,
		Languages:    req.Languages,
		ExcludeRepos: req.ExcludeRepos,
	}
	if opts.MinStars <= 0 {
		opts.MinStars = defaultMinStars
	}

	scored, err := h.recommendationUC.RecommendRepositories(c.Request.Context(), profile, opts)
	if err != nil {
		c.Error(err)
		return
	}

	ranked := make([]RankedRepository, len(scored))
	for i, s := range scored {
		ranked[i] = RankedRepository{Rank: i + 1, ScoredRepository: s}
	}

	response.Success(c, http.StatusOK, "Repository recommendations generated", gin.H{
		"username":        req.Username,
		"is_cold_start":   profile.IsColdStart,
		"recommendations": ranked,
	})
}

// RecommendIssues godoc
// @Summary      Recommend Issues
// @Description  Rank open issues a user could contribute to
// @Tags         recommendations
// @Accept       json
// @Produce      json
// @Param        request  body      RecommendIssuesRequest  true  "Recommendation options"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      503      {object}  response.Response
// @Router       /recommend-issues [post]
func (h *RecommendationHandler) RecommendIssues(c *gin.Context) {
	var req RecommendIssuesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	profile, err := h.profileUC.BuildSkillProfile(c.Request.Context(), req.Username)
	if err != nil {
		c.Error(err)
		return
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = domain.ExperienceBeginner
	}

	scored, err := h.recommendationUC.RecommendIssues(c.Request.Context(), profile, domain.IssueRecommendationOptions{
		Limit:      h.clampLimit(req.Limit),
		Difficulty: difficulty,
		Labels:     req.Labels,
	})
	if err != nil {
		c.Error(err)
		return
	}

	ranked := make([]RankedIssue, len(scored))
	for i, s := range scored {
		ranked[i] = RankedIssue{Rank: i + 1, ScoredIssue: s}
	}

	response.Success(c, http.StatusOK, "Issue recommendations generated", gin.H{
		"username":        req.Username,
		"difficulty":      difficulty,
		"recommendations": ranked,
	})
}

func (h *RecommendationHandler) clampLimit(limit int) int {
	if limit <= 0 {
		return defaultRecommendationLimit
	}
	if limit > h.maxLimit {
		return h.maxLimit
	}
	return limit
}
