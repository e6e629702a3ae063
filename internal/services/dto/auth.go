package dto

import (
	"time"

	"reelboard_backend/internal/models"
)

type LoginRequest struct {
	Email string `json:"email" binding:"required" validate:"required,email"`
}

type LoginResponse struct {
	// Ссылка возвращается только в development-окружении
	MagicLink string `json:"magic_link,omitempty"`
	Message   string `json:"message"`
}

type RegisterRequest struct {
	Email      string          `json:"email" binding:"required" validate:"required,email"`
	Role       models.UserRole `json:"role" validate:"omitempty,oneof=creator creator_pro producer"`
	InviteCode string          `json:"invite_code,omitempty"`
}

type UserResponse struct {
	ID             string                  `json:"id"`
	Email          string                  `json:"email"`
	Role           models.UserRole         `json:"role"`
	IsVerified     bool                    `json:"is_verified"`
	Tier           models.SubscriptionTier `json:"tier"`
	InviteQuota    models.InviteQuota      `json:"invite_quota"`
	InviteUsage    models.InviteQuota      `json:"invite_usage"`
	QuotaLastReset *time.Time              `json:"quota_last_reset,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
}

func NewUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		Role:           u.Role,
		IsVerified:     u.IsVerified,
		Tier:           u.Tier,
		InviteQuota:    u.InviteQuota,
		InviteUsage:    u.InviteUsage,
		QuotaLastReset: u.QuotaLastReset,
		CreatedAt:      u.CreatedAt,
	}
}
