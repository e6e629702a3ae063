package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBaseQuota(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role UserRole
		want InviteQuota
	}{
		{UserRoleAdmin, InviteQuota{Creator: 100, Production: 100, Producer: 100}},
		{UserRoleCreator, InviteQuota{Creator: 5, Production: 0, Producer: 10}},
		{UserRoleCreatorPro, InviteQuota{Creator: 10, Production: 5, Producer: 20}},
		{UserRoleProducer, InviteQuota{}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BaseQuota(tt.role), "роль %s", tt.role)
	}
}

func TestMonthsBetween(t *testing.T) {
	t.Parallel()

	jan31 := time.Date(2024, time.January, 31, 12, 0, 0, 0, time.UTC)
	feb1 := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	dec15 := time.Date(2023, time.December, 15, 0, 0, 0, 0, time.UTC)

	// Разница по НОМЕРАМ месяцев, а не по прошедшим дням
	assert.Equal(t, 1, monthsBetween(jan31, feb1))
	assert.Equal(t, 0, monthsBetween(feb1, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2, monthsBetween(dec15, feb1))
	assert.Equal(t, 13, monthsBetween(jan31, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)))
}

func TestApplyQuotaReset(t *testing.T) {
	t.Parallel()

	base := BaseQuota(UserRoleCreator)
	lastReset := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)

	user := &User{
		BaseModel:      BaseModel{ID: "u1", CreatedAt: lastReset},
		Role:           UserRoleCreator,
		InviteQuota:    base,
		InviteUsage:    InviteQuota{Creator: 4, Producer: 2},
		QuotaLastReset: &lastReset,
	}

	// В том же календарном месяце сброса нет
	same := time.Date(2024, time.January, 31, 23, 0, 0, 0, time.UTC)
	assert.False(t, user.ApplyQuotaReset(base, same))
	assert.Equal(t, 4, user.InviteUsage.Creator)

	// Наступил следующий календарный месяц - счетчики обнуляются
	next := time.Date(2024, time.February, 1, 0, 30, 0, 0, time.UTC)
	assert.True(t, user.ApplyQuotaReset(base, next))
	assert.Equal(t, InviteQuota{}, user.InviteUsage)
	assert.Equal(t, base, user.InviteQuota)
	assert.Equal(t, next, *user.QuotaLastReset)

	// Повторный вызов в том же месяце - no-op
	assert.False(t, user.ApplyQuotaReset(base, next.Add(24*time.Hour)))
}

func TestApplyQuotaReset_NoResetYet(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	user := &User{
		BaseModel:   BaseModel{ID: "u2", CreatedAt: created},
		Role:        UserRoleCreator,
		InviteQuota: BaseQuota(UserRoleCreator),
		InviteUsage: InviteQuota{Creator: 1},
	}

	// Точка отсчета - дата создания аккаунта
	assert.False(t, user.ApplyQuotaReset(BaseQuota(UserRoleCreator), created.AddDate(0, 0, 20)))
	assert.True(t, user.ApplyQuotaReset(BaseQuota(UserRoleCreator), created.AddDate(0, 1, 0)))
	assert.NotNil(t, user.QuotaLastReset)
}

func TestRemainingInvites(t *testing.T) {
	t.Parallel()

	user := &User{
		InviteQuota: InviteQuota{Creator: 5, Producer: 10},
		InviteUsage: InviteQuota{Creator: 3, Producer: 12},
	}

	assert.Equal(t, 2, user.RemainingInvites(InviteTypeCreator))
	// Перерасход (например, после понижения квоты) не уходит в минус
	assert.Equal(t, 0, user.RemainingInvites(InviteTypeProducer))
	assert.Equal(t, 0, user.RemainingInvites(InviteTypeProduction))

	assert.True(t, user.CanCreateInvite(InviteTypeCreator))
	assert.False(t, user.CanCreateInvite(InviteTypeProducer))
	assert.False(t, user.CanCreateInvite(InviteTypeProduction))
}

func TestRoleForInviteType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, UserRoleCreator, RoleForInviteType(InviteTypeCreator))
	assert.Equal(t, UserRoleCreatorPro, RoleForInviteType(InviteTypeProduction))
	assert.Equal(t, UserRoleProducer, RoleForInviteType(InviteTypeProducer))
}
