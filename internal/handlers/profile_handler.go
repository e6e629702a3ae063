package handlers

import (
	"net/http"

	"reelboard_backend/internal/middleware"
	"reelboard_backend/internal/services"
	"reelboard_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
	authService    services.AuthService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService, authService services.AuthService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
		authService:    authService,
	}
}

// RegisterRoutes регистрирует маршруты профилей.
// Чтение публично (с опциональной сессией: владельцы и админы видят
// скрытое), запись требует входа.
func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	profiles := rg.Group("/profiles")
	profiles.Use(middleware.OptionalAuthMiddleware(h.authService))
	{
		profiles.GET("", h.List)
		profiles.GET("/:id", h.Get)
	}

	authed := rg.Group("/profiles")
	authed.Use(middleware.AuthMiddleware(h.authService))
	{
		authed.PUT("/:id", h.Update)
		authed.POST("/:id/ratings", h.Rate)
	}
}

func (h *ProfileHandler) List(c *gin.Context) {
	profiles, err := h.profileService.List(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, http.StatusOK, profiles)
}

func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profileService.Get(c.Request.Context(), c.Param("id"), middleware.CurrentUser(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, http.StatusOK, profile)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.Update(c.Request.Context(), c.Param("id"), middleware.CurrentUser(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, http.StatusOK, profile)
}

func (h *ProfileHandler) Rate(c *gin.Context) {
	var req dto.RateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.profileService.Rate(c.Request.Context(), c.Param("id"), middleware.CurrentUser(c), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, http.StatusCreated, gin.H{"message": "Rating saved"})
}
