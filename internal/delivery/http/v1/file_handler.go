package v1

import (
	"net/http"
	"regexp"

	"go-oscrec-backend/internal/delivery/http/response"
	"go-oscrec-backend/internal/domain"
	"go-oscrec-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// Profile signals used when matching files.
const (
	fileSkillLanguages = 5
	fileSkillKeywords  = 5
)

var repoPathPattern = regexp.MustCompile(`^([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+)$`)

type FileHandler struct {
	profileUC domain.ProfileUsecase
	fileUC    domain.FileUsecase
	maxLimit  int
}

// NewFileHandler registers the file recommendation route
func NewFileHandler(rg *gin.RouterGroup, profileUC domain.ProfileUsecase, fileUC domain.FileUsecase, maxLimit int) {
	handler := &FileHandler{
		profileUC: profileUC,
		fileUC:    fileUC,
		maxLimit:  maxLimit,
	}

	rg.POST("/recommend-files", handler.RecommendFiles)
}

type RecommendFilesRequest struct {
	Username   string `json:"username" binding:"required"`
	Repository string `json:"repository" binding:"required"`
	Branch     string `json:"branch"`
	Limit      int    `json:"limit"`
}

// RecommendFiles godoc
// @Summary      Recommend Files
// @Description  Rank files of a repository a user could start contributing to
// @Tags         recommendations
// @Accept       json
// @Produce      json
// @Param        request  body      RecommendFilesRequest  true  "Target repository and user"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      503      {object}  response.Response
// @Router       /recommend-files [post]
func (h *FileHandler) RecommendFiles(c *gin.Context) {
	var req RecommendFilesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	match := repoPathPattern.FindStringSubmatch(req.Repository)
	if match == nil {
		c.Error(apperror.BadRequest("Repository must be in owner/repo format"))
		return
	}
	owner, repo := match[1], match[2]

	profile, err := h.profileUC.BuildSkillProfile(c.Request.Context(), req.Username)
	if err != nil {
		c.Error(err)
		return
	}

	skills := profile.TopLanguages(fileSkillLanguages)
	technical := profile.TechnicalSkills
	if len(technical) > fileSkillKeywords {
		technical = technical[:fileSkillKeywords]
	}
	skills = append(skills, technical...)

	limit := req.Limit
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}
	if limit > h.maxLimit {
		limit = h.maxLimit
	}

	scored, err := h.fileUC.RecommendFiles(c.Request.Context(), owner, repo, skills, req.Branch, limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "File recommendations generated", gin.H{
		"username":        req.Username,
		"repository":      req.Repository,
		"recommendations": scored,
	})
}
