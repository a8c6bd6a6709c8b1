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

type AdminHandler struct {
	adminUC domain.AdminUsecase
}

func NewAdminHandler(protected *gin.RouterGroup, adminUC domain.AdminUsecase) {
	handler := &AdminHandler{adminUC: adminUC}

	admin := protected.Group("/admin")
	{
		admin.GET("/stats", handler.Stats)
		admin.GET("/stats/registrations", handler.Registrations)
		admin.GET("/accounts", handler.ListAccounts)
		admin.GET("/accounts/export", handler.ExportAccounts)
		admin.GET("/accounts/:id", handler.GetAccount)
		admin.POST("/accounts/:id/toggle-active", handler.ToggleActive)
		admin.DELETE("/accounts/:id", handler.DeleteAccount)
	}
}

// Stats godoc
// @Summary      Dashboard statistics
// @Description  Aggregate counts for accounts, profiles, jobs, and applications (staff only)
// @Tags         admin
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /admin/stats [get]
// @Security     BearerAuth
func (h *AdminHandler) Stats(c *gin.Context) {
	actor := middleware.Actor(c)
	stats, err := h.adminUC.GetStats(c.Request.Context(), actor)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Dashboard statistics", stats)
}

// Registrations godoc
// @Summary      Registration series
// @Description  Daily signup counts for the trailing 31 days, zero-filled (staff only)
// @Tags         admin
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /admin/stats/registrations [get]
// @Security     BearerAuth
func (h *AdminHandler) Registrations(c *gin.Context) {
	actor := middleware.Actor(c)
	series, err := h.adminUC.RegistrationSeries(c.Request.Context(), actor)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Registration series", series)
}

// ListAccounts godoc
// @Summary      List accounts
// @Description  Filtered, paginated account listing (staff only)
// @Tags         admin
// @Produce      json
// @Param        role       query  string  false  "Filter by role"
// @Param        is_active  query  bool    false  "Filter by active flag"
// @Param        search     query  string  false  "Search in email and username"
// @Param        page       query  int     false  "Page number"
// @Param        page_size  query  int     false  "Page size"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /admin/accounts [get]
// @Security     BearerAuth
func (h *AdminHandler) ListAccounts(c *gin.Context) {
	actor := middleware.Actor(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := domain.AccountFilter{
		Role:   c.Query("role"),
		Search: c.Query("search"),
	}
	if raw := c.Query("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			c.Error(apperror.BadRequest("is_active must be true or false"))
			return
		}
		filter.IsActive = &active
	}

	accounts, total, err := h.adminUC.ListAccounts(c.Request.Context(), actor, filter, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Account list", response.Paginated{
		Items:    accounts,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// GetAccount godoc
// @Summary      Account details
// @Description  One account with its resolved profile, if any (staff only)
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Account ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/accounts/{id} [get]
// @Security     BearerAuth
func (h *AdminHandler) GetAccount(c *gin.Context) {
	actor := middleware.Actor(c)
	detail, err := h.adminUC.GetAccountDetail(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Account details", detail)
}

// ToggleActive godoc
// @Summary      Toggle account activation
// @Description  Flip an account's active flag; toggling twice restores the original state (staff only)
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Account ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/accounts/{id}/toggle-active [post]
// @Security     BearerAuth
func (h *AdminHandler) ToggleActive(c *gin.Context) {
	actor := middleware.Actor(c)
	active, err := h.adminUC.ToggleAccountActive(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Account activation toggled", gin.H{"is_active": active})
}

// DeleteAccount godoc
// @Summary      Delete an account
// @Description  Permanently remove an account and its profile, postings, and applications (staff only)
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Account ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/accounts/{id} [delete]
// @Security     BearerAuth
func (h *AdminHandler) DeleteAccount(c *gin.Context) {
	actor := middleware.Actor(c)
	if err := h.adminUC.DeleteAccount(c.Request.Context(), actor, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Account deleted", nil)
}

// ExportAccounts godoc
// @Summary      Export accounts as CSV
// @Description  Download every account as a CSV file (staff only)
// @Tags         admin
// @Produce      text/csv
// @Success      200  {string}  string  "CSV payload"
// @Failure      403  {object}  response.Response
// @Router       /admin/accounts/export [get]
// @Security     BearerAuth
func (h *AdminHandler) ExportAccounts(c *gin.Context) {
	actor := middleware.Actor(c)

	filename := "accounts-" + time.Now().UTC().Format("2006-01-02") + ".csv"
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.adminUC.ExportAccountsCSV(c.Request.Context(), actor, c.Writer); err != nil {
		// Reset the download headers before the error body goes out.
		c.Header("Content-Type", "application/json")
		c.Header("Content-Disposition", "")
		c.Error(err)
		return
	}
	c.Status(http.StatusOK)
}
