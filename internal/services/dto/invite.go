package dto

import (
	"time"

	"reelboard_backend/internal/models"
)

type CreateInvitesRequest struct {
	Type  models.InviteType `json:"type" binding:"required" validate:"required,oneof=creator production producer"`
	Count int               `json:"count" validate:"omitempty,min=1,max=50"`
}

type ValidateInviteRequest struct {
	Code string `json:"code" binding:"required" validate:"required,min=4"`
}

type InviteResponse struct {
	ID        string              `json:"id"`
	Code      string              `json:"code"`
	Type      models.InviteType   `json:"type"`
	Status    models.InviteStatus `json:"status"`
	ExpiresAt time.Time           `json:"expires_at"`
	CreatedAt time.Time           `json:"created_at"`

	RedeemedEmail string     `json:"redeemed_email,omitempty"`
	RedeemedAt    *time.Time `json:"redeemed_at,omitempty"`
}

func NewInviteResponse(inv *models.Invite, now time.Time) *InviteResponse {
	return &InviteResponse{
		ID:            inv.ID,
		Code:          inv.Code,
		Type:          inv.Type,
		Status:        inv.EffectiveStatus(now),
		ExpiresAt:     inv.ExpiresAt,
		CreatedAt:     inv.CreatedAt,
		RedeemedEmail: inv.RedeemedEmail,
		RedeemedAt:    inv.RedeemedAt,
	}
}

type CreateInvitesResponse struct {
	Invites   []*InviteResponse  `json:"invites"`
	Requested int                `json:"requested"`
	Created   int                `json:"created"`
	Remaining int                `json:"remaining"`
	Usage     models.InviteQuota `json:"usage"`
}
