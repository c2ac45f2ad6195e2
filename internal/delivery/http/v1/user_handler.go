package v1

import (
	"net/http"

	"go-oscrec-backend/internal/delivery/http/response"
	"go-oscrec-backend/internal/domain"
	"go-oscrec-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	profileUC domain.ProfileUsecase
}

// NewUserHandler registers the profile analysis routes
func NewUserHandler(rg *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &UserHandler{
		profileUC: profileUC,
	}

	rg.POST("/analyze-user", handler.AnalyzeUser)
	rg.GET("/skill-profile/:username", handler.GetSkillProfile)
}

type AnalyzeUserRequest struct {
	Username string `json:"username" binding:"required"`
}

// AnalyzeUser godoc
// @Summary      Analyze GitHub User
// @Description  Build a skill profile from a user's public GitHub activity
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user  body      AnalyzeUserRequest  true  "GitHub username"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      503   {object}  response.Response
// @Router       /analyze-user [post]
func (h *UserHandler) AnalyzeUser(c *gin.Context) {
	var req AnalyzeUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	profile, err := h.profileUC.BuildSkillProfile(c.Request.Context(), req.Username)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Skill profile created", profile)
}

// GetSkillProfile godoc
// @Summary      Get Skill Profile
// @Description  Return the (possibly cached) skill profile for a username
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "GitHub username"
// @Success      200       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Failure      503       {object}  response.Response
// @Router       /skill-profile/{username} [get]
func (h *UserHandler) GetSkillProfile(c *gin.Context) {
	profile, err := h.profileUC.BuildSkillProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Skill profile retrieved", profile)
}
