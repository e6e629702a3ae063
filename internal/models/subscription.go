package models

import "time"

// Subscription - подписка пользователя. ID совпадает с ID пользователя.
// Создается бесплатной при регистрации, тариф меняет только админ.
type Subscription struct {
	BaseModel
	Tier      SubscriptionTier   `json:"tier"`
	Status    SubscriptionStatus `json:"status"`
	StartedAt time.Time          `json:"started_at"`
	ExpiresAt *time.Time         `json:"expires_at,omitempty"`
}

func NewFreeSubscription(userID string, now time.Time) *Subscription {
	return &Subscription{
		BaseModel: BaseModel{ID: userID, CreatedAt: now, UpdatedAt: now},
		Tier:      SubscriptionTierFree,
		Status:    SubscriptionStatusActive,
		StartedAt: now,
	}
}
