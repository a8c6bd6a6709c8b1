package v1

import (
	"net/http"

	"clinic-portal-backend/internal/delivery/http/middleware"
	"clinic-portal-backend/internal/delivery/http/response"
	"clinic-portal-backend/internal/domain"
	"clinic-portal-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

func NewProfileHandler(protected *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}

	profiles := protected.Group("/profiles")
	{
		profiles.GET("/me", handler.Me)
		profiles.POST("", handler.Create)
		profiles.PATCH("/me", handler.Update)
	}
}

// Me godoc
// @Summary      Get own profile
// @Description  Return the profile variant matching the account's role
// @Tags         profiles
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /profiles/me [get]
// @Security     BearerAuth
func (h *ProfileHandler) Me(c *gin.Context) {
	actor := middleware.Actor(c)
	if actor == nil {
		c.Error(apperror.Unauthorized("Authentication required"))
		return
	}

	profile, err := h.profileUC.Resolve(c.Request.Context(), actor)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile", profile)
}

// Create godoc
// @Summary      Create own profile
// @Description  Create the role-matched profile for the authenticated account. One profile per account.
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /profiles [post]
// @Security     BearerAuth
func (h *ProfileHandler) Create(c *gin.Context) {
	actor := middleware.Actor(c)
	if actor == nil {
		c.Error(apperror.Unauthorized("Authentication required"))
		return
	}

	profile := &domain.Profile{Kind: actor.Role.ProfileKind()}
	switch profile.Kind {
	case domain.KindClinic:
		var body domain.ClinicProfile
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Error(apperror.BadRequest(err.Error()))
			return
		}
		profile.Clinic = &body
	case domain.KindEmployer:
		var body domain.EmployerProfile
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Error(apperror.BadRequest(err.Error()))
			return
		}
		profile.Employer = &body
	case domain.KindJobSeeker:
		var body domain.JobSeekerProfile
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Error(apperror.BadRequest(err.Error()))
			return
		}
		profile.JobSeeker = &body
	default:
		c.Error(apperror.BadRequest("This account type does not have a profile"))
		return
	}

	created, err := h.profileUC.Create(c.Request.Context(), actor, profile)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Profile created", created)
}

// Update godoc
// @Summary      Update own profile
// @Description  Partially update the role-matched profile; omitted fields are left unchanged
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /profiles/me [patch]
// @Security     BearerAuth
func (h *ProfileHandler) Update(c *gin.Context) {
	actor := middleware.Actor(c)
	if actor == nil {
		c.Error(apperror.Unauthorized("Authentication required"))
		return
	}

	patch := &domain.ProfilePatch{}
	switch actor.Role.ProfileKind() {
	case domain.KindClinic:
		var body domain.ClinicProfilePatch
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Error(apperror.BadRequest(err.Error()))
			return
		}
		patch.Clinic = &body
	case domain.KindEmployer:
		var body domain.EmployerProfilePatch
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Error(apperror.BadRequest(err.Error()))
			return
		}
		patch.Employer = &body
	case domain.KindJobSeeker:
		var body domain.JobSeekerProfilePatch
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Error(apperror.BadRequest(err.Error()))
			return
		}
		patch.JobSeeker = &body
	default:
		c.Error(apperror.BadRequest("This account type does not have a profile"))
		return
	}

	updated, err := h.profileUC.Update(c.Request.Context(), actor, patch)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", updated)
}
