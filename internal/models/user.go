package models

import "time"

type User struct {
	BaseModel
	Email      string           `json:"email"`
	Role       UserRole         `json:"role"`
	IsVerified bool             `json:"is_verified"`
	Tier       SubscriptionTier `json:"tier"`

	// Квота и счетчики использования держат все три бакета всегда:
	// инвариант консистентности с ролью проверяется при смене роли
	InviteQuota InviteQuota `json:"invite_quota"`
	InviteUsage InviteQuota `json:"invite_usage"`

	// Коды инвайтов, выпущенных этим пользователем
	InviteCodes []string `json:"invite_codes,omitempty"`

	QuotaLastReset *time.Time `json:"quota_last_reset,omitempty"`
}
