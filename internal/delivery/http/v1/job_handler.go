package v1

import (
	"net/http"
	"strconv"
	"time"

	"clinic-portal-backend/internal/delivery/http/middleware"
	"clinic-portal-backend/internal/delivery/http/response"
	"clinic-portal-backend/internal/domain"
	"clinic-portal-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	jobs := protected.Group("/jobs")
	{
		jobs.GET("", handler.List)
		jobs.GET("/:id", handler.GetDetails)
		jobs.POST("", handler.Create)
		jobs.PUT("/:id", handler.Update)
		jobs.DELETE("/:id", handler.Delete)
		jobs.PATCH("/:id/active", handler.SetActive)
	}

	my := protected.Group("/my")
	{
		my.GET("/jobs", handler.ListMine)
	}
}

type JobRequest struct {
	Title               string   `json:"title" binding:"required"`
	Description         string   `json:"description" binding:"required"`
	Requirements        string   `json:"requirements"`
	Location            string   `json:"location" binding:"required"`
	JobType             string   `json:"job_type" binding:"required,oneof=full_time part_time contract internship remote"`
	Salary              *float64 `json:"salary" binding:"omitempty,gte=0"`
	Company             string   `json:"company"`
	ApplicationDeadline *string  `json:"application_deadline"` // YYYY-MM-DD
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func (r *JobRequest) toDomain() (*domain.Job, error) {
	job := &domain.Job{
		Title:        r.Title,
		Description:  r.Description,
		Requirements: r.Requirements,
		Location:     r.Location,
		JobType:      r.JobType,
		Salary:       r.Salary,
		Company:      r.Company,
	}
	if r.ApplicationDeadline != nil && *r.ApplicationDeadline != "" {
		deadline, err := time.Parse("2006-01-02", *r.ApplicationDeadline)
		if err != nil {
			return nil, apperror.BadRequest("Application deadline must be in YYYY-MM-DD format")
		}
		job.ApplicationDeadline = &deadline
	}
	return job, nil
}

// Create godoc
// @Summary      Create a job posting
// @Description  Create a new job posting (clinics and employers only)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      JobRequest  true  "Job JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	actor := middleware.Actor(c)
	if actor == nil {
		c.Error(apperror.Unauthorized("Authentication required"))
		return
	}

	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	job, err := req.toDomain()
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.jobUC.CreateJob(c.Request.Context(), actor, job); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job created", job)
}

// List godoc
// @Summary      List job postings
// @Description  Active jobs with optional search; staff may include inactive postings
// @Tags         jobs
// @Produce      json
// @Param        page              query  int     false  "Page number"
// @Param        page_size         query  int     false  "Page size"
// @Param        search            query  string  false  "Search in title, location, company"
// @Param        include_inactive  query  bool    false  "Include inactive jobs (staff only)"
// @Success      200  {object}  response.Response
// @Router       /jobs [get]
// @Security     BearerAuth
func (h *JobHandler) List(c *gin.Context) {
	actor := middleware.Actor(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	includeInactive := c.Query("include_inactive") == "true"
	search := c.Query("search")

	jobs, total, err := h.jobUC.ListJobs(c.Request.Context(), actor, includeInactive, search, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job list", response.Paginated{
		Items:    jobs,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// ListMine godoc
// @Summary      List own job postings
// @Description  All postings owned by the authenticated account, active and inactive
// @Tags         jobs
// @Produce      json
// @Param        page       query  int  false  "Page number"
// @Param        page_size  query  int  false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /my/jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListMine(c *gin.Context) {
	actor := middleware.Actor(c)
	if actor == nil {
		c.Error(apperror.Unauthorized("Authentication required"))
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	jobs, total, err := h.jobUC.ListMyJobs(c.Request.Context(), actor, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "My job list", response.Paginated{
		Items:    jobs,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// GetDetails godoc
// @Summary      Get job details
// @Description  One posting with poster email and application count
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
// @Security     BearerAuth
func (h *JobHandler) GetDetails(c *gin.Context) {
	actor := middleware.Actor(c)
	id, err := parseIDParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	job, err := h.jobUC.GetJob(c.Request.Context(), actor, id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job details", job)
}

// Update godoc
// @Summary      Update a job posting
// @Description  Replace the mutable fields of an owned posting
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      int         true  "Job ID"
// @Param        job  body      JobRequest  true  "Job JSON"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	actor := middleware.Actor(c)
	id, err := parseIDParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	job, err := req.toDomain()
	if err != nil {
		c.Error(err)
		return
	}
	job.ID = id

	if err := h.jobUC.UpdateJob(c.Request.Context(), actor, job); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job updated", job)
}

// Delete godoc
// @Summary      Delete a job posting
// @Description  Owners deactivate their posting; admins remove it permanently
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	actor := middleware.Actor(c)
	id, err := parseIDParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.jobUC.DeleteJob(c.Request.Context(), actor, id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deleted", nil)
}

// SetActive godoc
// @Summary      Activate or deactivate a job posting
// @Description  Toggle a posting's visibility in public listings
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id      path      int               true  "Job ID"
// @Param        active  body      SetActiveRequest  true  "Desired state"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/active [patch]
// @Security     BearerAuth
func (h *JobHandler) SetActive(c *gin.Context) {
	actor := middleware.Actor(c)
	id, err := parseIDParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	job, err := h.jobUC.SetJobActive(c.Request.Context(), actor, id, *req.Active)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job visibility updated", job)
}

func parseIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperror.BadRequest("Invalid ID format")
	}
	return id, nil
}
