package v1

import (
	"net/http"
	"time"

	"clinic-portal-backend/config"
	"clinic-portal-backend/internal/delivery/http/middleware"
	"clinic-portal-backend/internal/delivery/http/response"
	"clinic-portal-backend/internal/domain"
	"clinic-portal-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
	config *config.Config
}

func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, authUC domain.AuthUsecase, cfg *config.Config, loginLimiter gin.HandlerFunc) {
	handler := &AuthHandler{
		authUC: authUC,
		config: cfg,
	}

	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/register", loginLimiter, handler.Register)
		publicAuth.POST("/login", loginLimiter, handler.Login)
	}

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.POST("/logout", handler.Logout)
		protectedAuth.POST("/change-password", handler.ChangePassword)
		protectedAuth.GET("/me", handler.Me)
	}
}

type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Username        string `json:"username" binding:"omitempty,max=100"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
	Role            string `json:"role" binding:"required,oneof=clinic employer job_seeker"`
	AgreeToTerms    bool   `json:"agree_to_terms" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// Register godoc
// @Summary      Account registration
// @Description  Register a new clinic, employer, or job seeker account and sign it in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register  body      RegisterRequest  true  "Registration Details"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid role"))
		return
	}

	account, token, err := h.authUC.Register(c.Request.Context(), domain.RegisterInput{
		Email:        req.Email,
		Username:     req.Username,
		Password:     req.Password,
		Role:         role,
		AgreeToTerms: req.AgreeToTerms,
	})
	if err != nil {
		c.Error(err)
		return
	}

	h.setAuthCookie(c, token)
	response.Success(c, http.StatusCreated, "Registration successful", gin.H{
		"account": account,
		"token":   token,
	})
}

// Login godoc
// @Summary      Account login
// @Description  Authenticate with email and password, returns a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Credentials"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	account, token, err := h.authUC.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	h.setAuthCookie(c, token)
	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"account": account,
		"token":   token,
	})
}

// Logout godoc
// @Summary      Logout
// @Description  Revoke the presented token and clear the auth cookie
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/logout [post]
// @Security     BearerAuth
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString(string(domain.KeyTokenJTI))
	expiresAt, _ := c.Get(string(domain.KeyTokenExp))
	exp, _ := expiresAt.(time.Time)

	if err := h.authUC.Logout(c.Request.Context(), jti, exp); err != nil {
		c.Error(err)
		return
	}

	c.SetCookie("auth_token", "", -1, "/", "", true, true)
	response.Success(c, http.StatusOK, "Logged out", nil)
}

// ChangePassword godoc
// @Summary      Change password
// @Description  Verify the current password, set a new one, and reissue the token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        change  body      ChangePasswordRequest  true  "Passwords"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/change-password [post]
// @Security     BearerAuth
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	actor := middleware.Actor(c)
	if actor == nil {
		c.Error(apperror.Unauthorized("Authentication required"))
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	jti := c.GetString(string(domain.KeyTokenJTI))
	expiresAt, _ := c.Get(string(domain.KeyTokenExp))
	exp, _ := expiresAt.(time.Time)

	token, err := h.authUC.ChangePassword(c.Request.Context(), actor, req.OldPassword, req.NewPassword, jti, exp)
	if err != nil {
		c.Error(err)
		return
	}

	h.setAuthCookie(c, token)
	response.Success(c, http.StatusOK, "Password changed", gin.H{"token": token})
}

// Me godoc
// @Summary      Current account
// @Description  Return the authenticated account
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	actor := middleware.Actor(c)
	if actor == nil {
		c.Error(apperror.Unauthorized("Authentication required"))
		return
	}
	response.Success(c, http.StatusOK, "Current account", actor)
}

func (h *AuthHandler) setAuthCookie(c *gin.Context, token string) {
	maxAge := int(h.config.TokenTTL().Seconds())
	c.SetCookie("auth_token", token, maxAge, "/", "", true, true)
}
