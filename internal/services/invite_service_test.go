package services_test

import (
	"context"
	"testing"
	"time"

	"reelboard_backend/internal/apperrors"
	"reelboard_backend/internal/models"
	"reelboard_backend/internal/services"
	"reelboard_backend/internal/services/dto"
	"reelboard_backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCreator(t *testing.T, st store.Store, id string, quota models.InviteQuota) *models.User {
	t.Helper()
	now := time.Now()
	user := &models.User{
		BaseModel:   models.BaseModel{ID: id, CreatedAt: now, UpdatedAt: now},
		Email:       id + "@example.com",
		Role:        models.UserRoleCreator,
		InviteQuota: quota,
	}
	require.NoError(t, st.PutUser(context.Background(), user))
	return user
}

func TestInviteCreate_TruncatesToRemaining(t *testing.T) {
	t.Parallel()

	// Подготовка: у креатора осталось 2 creator-инвайта
	st := store.NewMemoryStore()
	svc := services.NewInviteService(st)
	ctx := context.Background()
	newCreator(t, st, "u1", models.InviteQuota{Creator: 2, Producer: 5})

	// Запросили 3 - создалось ровно 2
	resp, err := svc.Create(ctx, "u1", &dto.CreateInvitesRequest{Type: models.InviteTypeCreator, Count: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Requested)
	assert.Equal(t, 2, resp.Created)
	assert.Len(t, resp.Invites, 2)
	assert.Equal(t, 0, resp.Remaining)
	assert.Equal(t, 2, resp.Usage.Creator)

	// Счетчик и коды сохранились на пользователе
	user, err := st.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, user.InviteUsage.Creator)
	assert.Len(t, user.InviteCodes, 2)

	// Квота выбрана - следующий запрос упирается в лимит
	_, err = svc.Create(ctx, "u1", &dto.CreateInvitesRequest{Type: models.InviteTypeCreator, Count: 1})
	assert.ErrorIs(t, err, apperrors.ErrQuotaExceeded)

	// Другой бакет квоты не затронут
	resp, err = svc.Create(ctx, "u1", &dto.CreateInvitesRequest{Type: models.InviteTypeProducer, Count: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Created)
}

func TestInviteCreate_ResetsQuotaAfterCalendarMonth(t *testing.T) {
	t.Parallel()

	st := store.NewMemoryStore()
	svc := services.NewInviteService(st)
	ctx := context.Background()

	user := newCreator(t, st, "u1", models.InviteQuota{Creator: 1})
	user.InviteUsage = models.InviteQuota{Creator: 1}
	lastReset := time.Now().AddDate(0, -2, 0)
	user.QuotaLastReset = &lastReset
	require.NoError(t, st.PutUser(ctx, user))

	// Старый период закончился: счетчики сбрасываются и инвайт выдается
	resp, err := svc.Create(ctx, "u1", &dto.CreateInvitesRequest{Type: models.InviteTypeCreator, Count: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Created)

	got, err := st.GetUser(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got.QuotaLastReset)
	assert.True(t, got.QuotaLastReset.After(lastReset))
}

func TestInviteCreate_UsesAdminQuotaTable(t *testing.T) {
	t.Parallel()

	st := store.NewMemoryStore()
	svc := services.NewInviteService(st)
	ctx := context.Background()

	// Админ переопределил таблицу квот
	settings := models.DefaultAdminSettings()
	settings.RoleQuotas.Creator = models.InviteQuota{Creator: 7}
	require.NoError(t, st.PutSettings(ctx, settings))

	assert.Equal(t, models.InviteQuota{Creator: 7}, svc.BaseQuotaFor(ctx, models.UserRoleCreator))
	// Роль без переопределения получает статическую таблицу
	assert.Equal(t, models.BaseQuota(models.UserRoleAdmin), svc.BaseQuotaFor(ctx, models.UserRoleAdmin))
}

func TestInviteValidateAndRedeem(t *testing.T) {
	t.Parallel()

	st := store.NewMemoryStore()
	svc := services.NewInviteService(st)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, st.PutInvite(ctx, &models.Invite{
		BaseModel: models.BaseModel{ID: "i1", CreatedAt: now},
		Code:      "GOOD-CODE",
		Type:      models.InviteTypeProducer,
		CreatedBy: "admin",
		ExpiresAt: now.Add(time.Hour),
		Status:    models.InviteStatusActive,
	}))

	inv, err := svc.Validate(ctx, "good-code")
	require.NoError(t, err)
	assert.Equal(t, models.InviteTypeProducer, inv.Type)

	// Погашение фиксирует кем и когда
	redeemed, err := svc.Redeem(ctx, "GOOD-CODE", "u9", "u9@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.InviteStatusUsed, redeemed.Status)
	assert.Equal(t, "u9", redeemed.RedeemedBy)
	require.NotNil(t, redeemed.RedeemedAt)

	// Повторное погашение отбивается, состояние не меняется
	_, err = svc.Redeem(ctx, "GOOD-CODE", "u10", "u10@example.com")
	assert.ErrorIs(t, err, apperrors.ErrInviteUsed)
	again, err := st.GetInvite(ctx, "GOOD-CODE")
	require.NoError(t, err)
	assert.Equal(t, "u9", again.RedeemedBy)
}

func TestInviteValidate_Errors(t *testing.T) {
	t.Parallel()

	st := store.NewMemoryStore()
	svc := services.NewInviteService(st)
	ctx := context.Background()
	now := time.Now()

	_, err := svc.Validate(ctx, "NO-SUCH")
	assert.ErrorIs(t, err, apperrors.ErrInviteNotFound)

	require.NoError(t, st.PutInvite(ctx, &models.Invite{
		BaseModel: models.BaseModel{ID: "i2", CreatedAt: now.Add(-48 * time.Hour)},
		Code:      "OLD-CODE",
		Type:      models.InviteTypeCreator,
		ExpiresAt: now.Add(-time.Hour),
		Status:    models.InviteStatusActive,
	}))
	_, err = svc.Validate(ctx, "OLD-CODE")
	assert.ErrorIs(t, err, apperrors.ErrInviteExpired)
}

func TestInviteListForUser_SkipsEvicted(t *testing.T) {
	t.Parallel()

	st := store.NewMemoryStore()
	svc := services.NewInviteService(st)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, st.PutInvite(ctx, &models.Invite{
		BaseModel: models.BaseModel{ID: "i1", CreatedAt: now},
		Code:      "KEPT-CODE",
		Type:      models.InviteTypeCreator,
		CreatedBy: "u1",
		ExpiresAt: now.Add(time.Hour),
		Status:    models.InviteStatusActive,
	}))

	user := &models.User{
		BaseModel:   models.BaseModel{ID: "u1"},
		InviteCodes: []string{"KEPT-CODE", "GONE-CODE"},
	}

	// Запись, выпавшая из хранилища по TTL, просто пропускается
	invites, err := svc.ListForUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, invites, 1)
	assert.Equal(t, "KEPT-CODE", invites[0].Code)
}
