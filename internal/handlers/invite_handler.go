package handlers

import (
	"net/http"
	"time"

	"reelboard_backend/internal/middleware"
	"reelboard_backend/internal/services"
	"reelboard_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type InviteHandler struct {
	*BaseHandler
	inviteService services.InviteService
	authService   services.AuthService
}

func NewInviteHandler(base *BaseHandler, inviteService services.InviteService, authService services.AuthService) *InviteHandler {
	return &InviteHandler{
		BaseHandler:   base,
		inviteService: inviteService,
		authService:   authService,
	}
}

// RegisterRoutes регистрирует маршруты инвайтов
func (h *InviteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invites := rg.Group("/invites")

	// Валидация кода публична: регистрация еще не пройдена
	invites.PUT("", h.Validate)

	authed := invites.Group("")
	authed.Use(middleware.AuthMiddleware(h.authService))
	{
		authed.GET("", h.List)
		authed.POST("", h.Create)
	}
}

func (h *InviteHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	invites, err := h.inviteService.ListForUser(c.Request.Context(), user)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, http.StatusOK, invites)
}

func (h *InviteHandler) Create(c *gin.Context) {
	var req dto.CreateInvitesRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.inviteService.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, http.StatusCreated, resp)
}

func (h *InviteHandler) Validate(c *gin.Context) {
	var req dto.ValidateInviteRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	inv, err := h.inviteService.Validate(c.Request.Context(), req.Code)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, http.StatusOK, dto.NewInviteResponse(inv, time.Now()))
}
