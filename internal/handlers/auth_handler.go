package handlers

import (
	"net/http"

	"reelboard_backend/internal/middleware"
	"reelboard_backend/internal/services"
	"reelboard_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

const sessionCookieMaxAge = 7 * 24 * 3600

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// RegisterRoutes регистрирует маршруты аутентификации
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.GET("/verify", h.Verify)
		auth.POST("/register", h.Register)
		auth.POST("/logout", h.Logout)
	}

	me := rg.Group("/auth")
	me.Use(middleware.AuthMiddleware(h.authService))
	{
		me.GET("/me", h.Me)
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.RequestLogin(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, http.StatusOK, resp)
}

func (h *AuthHandler) Verify(c *gin.Context) {
	email := c.Query("email")
	token := c.Query("token")

	user, session, err := h.authService.VerifyLogin(
		c.Request.Context(), email, token, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// httpOnly cookie на 7 дней
	c.SetCookie(middleware.SessionCookie, session.ID, sessionCookieMaxAge, "/", "", false, true)
	h.OK(c, http.StatusOK, dto.NewUserResponse(user))
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, http.StatusCreated, dto.NewUserResponse(user))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.SessionToken(c)); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// Сбрасываем cookie
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	h.OK(c, http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	h.OK(c, http.StatusOK, dto.NewUserResponse(user))
}
