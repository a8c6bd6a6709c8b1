package v1

import (
	"net/http"

	"clinic-portal-backend/internal/delivery/http/response"
	"clinic-portal-backend/internal/domain"
	"clinic-portal-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, limiter gin.HandlerFunc) {
	handler := &ContactHandler{contactUC: contactUC}
	public.POST("/contact", limiter, handler.Submit)
}

// Submit godoc
// @Summary      Submit the contact form
// @Description  Forward a visitor message to the site operators by email
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        message  body      domain.ContactMessage  true  "Contact message"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var msg domain.ContactMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.contactUC.Submit(c.Request.Context(), &msg); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Message sent", nil)
}
