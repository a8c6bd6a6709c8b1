package v1

import (
	"net/http"

	"clinic-portal-backend/internal/delivery/http/middleware"
	"clinic-portal-backend/internal/delivery/http/response"
	"clinic-portal-backend/internal/domain"
	"clinic-portal-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

func NewApplicationHandler(protected *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	jobs := protected.Group("/jobs")
	{
		jobs.POST("/:id/apply", handler.Apply)
		jobs.GET("/:id/applications", handler.ListForJob)
	}

	applications := protected.Group("/applications")
	{
		applications.GET("/me", handler.ListMine)
		applications.GET("/:id", handler.GetDetails)
		applications.PATCH("/:id/status", handler.UpdateStatus)
	}
}

type ApplyRequest struct {
	CoverLetter string `json:"cover_letter"`
	ResumePath  string `json:"resume_path"`
}

type UpdateStatusRequest struct {
	Status string  `json:"status" binding:"required"`
	Notes  *string `json:"notes"`
}

// Apply godoc
// @Summary      Apply to a job
// @Description  Submit an application to an active job (job seekers only, once per job)
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id     path      int           true  "Job ID"
// @Param        apply  body      ApplyRequest  true  "Application JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /jobs/{id}/apply [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	actor := middleware.Actor(c)
	jobID, err := parseIDParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	app, err := h.applicationUC.Apply(c.Request.Context(), actor, jobID, req.CoverLetter, req.ResumePath)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted", app)
}

// ListMine godoc
// @Summary      List own applications
// @Description  All applications submitted by the authenticated account, newest first
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /applications/me [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	actor := middleware.Actor(c)
	if actor == nil {
		c.Error(apperror.Unauthorized("Authentication required"))
		return
	}

	apps, err := h.applicationUC.MyApplications(c.Request.Context(), actor)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "My applications", apps)
}

// GetDetails godoc
// @Summary      Get application details
// @Description  One application, visible to its applicant and staff
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetDetails(c *gin.Context) {
	actor := middleware.Actor(c)
	id, err := parseIDParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	app, err := h.applicationUC.GetApplication(c.Request.Context(), actor, id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application details", app)
}

// ListForJob godoc
// @Summary      List applications for a job
// @Description  Every application to a posting, for the posting's owner or staff
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	actor := middleware.Actor(c)
	jobID, err := parseIDParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	apps, err := h.applicationUC.ListForJob(c.Request.Context(), actor, jobID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications for job", apps)
}

// UpdateStatus godoc
// @Summary      Update application status
// @Description  Move an application to reviewed, shortlisted, rejected, or accepted (staff only)
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id      path      int                  true  "Application ID"
// @Param        status  body      UpdateStatusRequest  true  "New status and optional notes"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id}/status [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	actor := middleware.Actor(c)
	id, err := parseIDParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.applicationUC.UpdateStatus(c.Request.Context(), actor, id, req.Status, req.Notes); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application status updated", nil)
}
