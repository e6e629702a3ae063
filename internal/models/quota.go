package models

import "time"

// InviteQuota - тройка лимитов по типам инвайтов.
// Нулевое значение валидно и означает "ни одного инвайта".
type InviteQuota struct {
	Creator    int `json:"creator"`
	Production int `json:"production"`
	Producer   int `json:"producer"`
}

func (q InviteQuota) Get(t InviteType) int {
	switch t {
	case InviteTypeProduction:
		return q.Production
	case InviteTypeProducer:
		return q.Producer
	default:
		return q.Creator
	}
}

func (q *InviteQuota) Add(t InviteType, n int) {
	switch t {
	case InviteTypeProduction:
		q.Production += n
	case InviteTypeProducer:
		q.Producer += n
	default:
		q.Creator += n
	}
}

// BaseQuota - статическая таблица лимитов по ролям.
// Producer не раздает инвайты вовсе.
func BaseQuota(role UserRole) InviteQuota {
	switch role {
	case UserRoleAdmin:
		return InviteQuota{Creator: 100, Production: 100, Producer: 100}
	case UserRoleCreator:
		return InviteQuota{Creator: 5, Production: 0, Producer: 10}
	case UserRoleCreatorPro:
		return InviteQuota{Creator: 10, Production: 5, Producer: 20}
	default:
		return InviteQuota{}
	}
}

// monthsBetween считает разницу в КАЛЕНДАРНЫХ месяцах по номерам месяцев,
// а не по прошедшим дням: 31 января -> 1 февраля = 1 месяц.
func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()-from.Month())
}

// ApplyQuotaReset сбрасывает счетчики, если с последнего сброса прошел
// полный календарный месяц. Точка отсчета - QuotaLastReset, либо дата
// создания аккаунта, если сброса еще не было. Возвращает true, если
// сброс произошел (пользователя нужно сохранить).
func (u *User) ApplyQuotaReset(base InviteQuota, now time.Time) bool {
	since := u.CreatedAt
	if u.QuotaLastReset != nil {
		since = *u.QuotaLastReset
	}

	if monthsBetween(since, now) < 1 {
		return false
	}

	u.InviteUsage = InviteQuota{}
	u.InviteQuota = base
	reset := now
	u.QuotaLastReset = &reset
	return true
}

// RemainingInvites - сколько инвайтов типа t еще можно выпустить
func (u *User) RemainingInvites(t InviteType) int {
	remaining := u.InviteQuota.Get(t) - u.InviteUsage.Get(t)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CanCreateInvite - проверка used < quota для типа t
func (u *User) CanCreateInvite(t InviteType) bool {
	return u.InviteUsage.Get(t) < u.InviteQuota.Get(t)
}
