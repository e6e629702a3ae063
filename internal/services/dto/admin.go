package dto

import (
	"time"

	"reelboard_backend/internal/models"
)

type ChangeRoleRequest struct {
	Role models.UserRole `json:"role" binding:"required" validate:"required,oneof=admin creator creator_pro producer"`
}

type SetVerifiedRequest struct {
	IsVerified *bool `json:"is_verified" binding:"required" validate:"required"`
}

type SetSubscriptionRequest struct {
	Tier      models.SubscriptionTier   `json:"tier" binding:"required" validate:"required,oneof=free pro studio"`
	Status    models.SubscriptionStatus `json:"status" validate:"omitempty,oneof=active expired cancelled"`
	ExpiresAt *time.Time                `json:"expires_at,omitempty"`
}

type UpdateSettingsRequest struct {
	RoleQuotas *models.RoleQuotaTable  `json:"role_quotas,omitempty"`
	Paywall    *models.PaywallSettings `json:"paywall,omitempty"`
}

type StatsResponse struct {
	TotalUsers    int                         `json:"total_users"`
	UsersByRole   map[models.UserRole]int     `json:"users_by_role"`
	VerifiedUsers int                         `json:"verified_users"`
	TotalProfiles int                         `json:"total_profiles"`
	TotalInvites  int                         `json:"total_invites"`
	InvitesByUse  map[models.InviteStatus]int `json:"invites_by_status"`
}
