package models

import "time"

type Invite struct {
	BaseModel
	Code      string       `json:"code"`
	Type      InviteType   `json:"type"`
	CreatedBy string       `json:"created_by"`
	ExpiresAt time.Time    `json:"expires_at"`
	Status    InviteStatus `json:"status"`

	// Заполняются при погашении
	RedeemedBy    string     `json:"redeemed_by,omitempty"`
	RedeemedEmail string     `json:"redeemed_email,omitempty"`
	RedeemedAt    *time.Time `json:"redeemed_at,omitempty"`
}

// Expired - истечение проверяется сравнением таймстампов при чтении,
// записи никто явно не удаляет
func (i *Invite) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// EffectiveStatus возвращает статус с учетом истечения по времени
func (i *Invite) EffectiveStatus(now time.Time) InviteStatus {
	if i.Status == InviteStatusActive && i.Expired(now) {
		return InviteStatusExpired
	}
	return i.Status
}
