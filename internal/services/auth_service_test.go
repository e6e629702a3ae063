package services_test

import (
	"context"
	"testing"
	"time"

	"reelboard_backend/internal/apperrors"
	"reelboard_backend/internal/auth"
	"reelboard_backend/internal/models"
	"reelboard_backend/internal/services"
	"reelboard_backend/internal/services/dto"
	"reelboard_backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret  = "unit-test-secret"
	testBaseURL = "http://localhost:4000"
)

// captureProvider запоминает последнее отправленное письмо
type captureProvider struct {
	to   string
	link string
}

func (p *captureProvider) SendMagicLink(to, link string) error {
	p.to = to
	p.link = link
	return nil
}

func newAuthFixture(t *testing.T) (services.AuthService, *store.MemoryStore, *captureProvider) {
	t.Helper()
	st := store.NewMemoryStore()
	limiter := auth.NewRateLimiter()
	t.Cleanup(limiter.Stop)
	provider := &captureProvider{}
	invites := services.NewInviteService(st)
	svc := services.NewAuthService(st, invites, provider, limiter, testSecret, testBaseURL, true)
	return svc, st, provider
}

func TestRequestLogin(t *testing.T) {
	t.Parallel()

	svc, st, provider := newAuthFixture(t)
	ctx := context.Background()
	st.Seed()

	// Незарегистрированный email не получает линк
	_, err := svc.RequestLogin(ctx, &dto.LoginRequest{Email: "nobody@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	// Мусорный email отбивается до похода в хранилище
	_, err = svc.RequestLogin(ctx, &dto.LoginRequest{Email: "not-an-email"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidEmail)

	resp, err := svc.RequestLogin(ctx, &dto.LoginRequest{Email: store.FixtureAdminEmail})
	require.NoError(t, err)

	// dev-режим дублирует линк в ответе, письмо ушло туда же
	assert.NotEmpty(t, resp.MagicLink)
	assert.Equal(t, store.FixtureAdminEmail, provider.to)
	assert.Equal(t, resp.MagicLink, provider.link)
	assert.Contains(t, resp.MagicLink, testBaseURL+"/api/v1/auth/verify?email=")
}

func TestRequestLogin_RateLimited(t *testing.T) {
	t.Parallel()

	svc, st, _ := newAuthFixture(t)
	ctx := context.Background()
	st.Seed()

	req := &dto.LoginRequest{Email: store.FixtureAdminEmail}
	for i := 0; i < 5; i++ {
		_, err := svc.RequestLogin(ctx, req)
		require.NoError(t, err, "запрос %d", i+1)
	}

	_, err := svc.RequestLogin(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrRateLimited)

	// Лимит считается на email: сосед не задет
	_, err = svc.RequestLogin(ctx, &dto.LoginRequest{Email: store.FixtureCreatorEmail})
	assert.NoError(t, err)
}

func TestVerifyLogin_CreatesSession(t *testing.T) {
	t.Parallel()

	svc, st, _ := newAuthFixture(t)
	ctx := context.Background()
	st.Seed()

	token := auth.MagicLinkToken(store.FixtureAdminEmail, testSecret)
	user, session, err := svc.VerifyLogin(ctx, store.FixtureAdminEmail, token, "go-test", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, store.FixtureAdminID, user.ID)
	assert.Equal(t, user.ID, session.UserID)
	assert.True(t, session.ExpiresAt.After(time.Now().Add(6*24*time.Hour)))

	// Id сессии - непрозрачный случайный hex-токен
	assert.Len(t, session.ID, 64)
	assert.Regexp(t, "^[0-9a-f]+$", session.ID)

	// Сессия резолвится обратно в пользователя
	current, err := svc.CurrentUser(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, current.ID)

	// Битый токен не проходит
	_, _, err = svc.VerifyLogin(ctx, store.FixtureAdminEmail, "deadbeef", "go-test", "127.0.0.1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestCurrentUser_ExpiredSessionIsDeleted(t *testing.T) {
	t.Parallel()

	svc, st, _ := newAuthFixture(t)
	ctx := context.Background()
	st.Seed()

	now := time.Now()
	require.NoError(t, st.PutSession(ctx, &models.Session{
		ID:        "stale-session",
		UserID:    store.FixtureAdminID,
		CreatedAt: now.Add(-8 * 24 * time.Hour),
		ExpiresAt: now.Add(-time.Hour),
	}))

	_, err := svc.CurrentUser(ctx, "stale-session")
	assert.ErrorIs(t, err, apperrors.ErrSessionExpired)

	// Просроченная сессия удаляется лениво при чтении
	_, err = st.GetSession(ctx, "stale-session")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Повторное обращение уже "нет сессии"
	_, err = svc.CurrentUser(ctx, "stale-session")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = svc.CurrentUser(ctx, "")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestLogout(t *testing.T) {
	t.Parallel()

	svc, st, _ := newAuthFixture(t)
	ctx := context.Background()
	st.Seed()

	require.NoError(t, svc.Logout(ctx, store.FixtureAdminSession))
	_, err := svc.CurrentUser(ctx, store.FixtureAdminSession)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	// Logout без сессии - no-op
	assert.NoError(t, svc.Logout(ctx, ""))
}

func TestRegister_WithInvite(t *testing.T) {
	t.Parallel()

	svc, st, _ := newAuthFixture(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, st.PutInvite(ctx, &models.Invite{
		BaseModel: models.BaseModel{ID: "i1", CreatedAt: now},
		Code:      "PROD-CODE",
		Type:      models.InviteTypeProduction,
		CreatedBy: "admin",
		ExpiresAt: now.Add(time.Hour),
		Status:    models.InviteStatusActive,
	}))

	// Роль из инвайта перекрывает роль из запроса
	user, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:      "New.User@Example.com",
		Role:       models.UserRoleCreator,
		InviteCode: "prod-code",
	})
	require.NoError(t, err)
	assert.Equal(t, "new.user@example.com", user.Email)
	assert.Equal(t, models.UserRoleCreatorPro, user.Role)
	assert.True(t, user.IsVerified)
	assert.Equal(t, models.BaseQuota(models.UserRoleCreatorPro), user.InviteQuota)

	// Инвайт погашен на нового пользователя
	inv, err := st.GetInvite(ctx, "PROD-CODE")
	require.NoError(t, err)
	assert.Equal(t, models.InviteStatusUsed, inv.Status)
	assert.Equal(t, user.ID, inv.RedeemedBy)

	// Профиль и бесплатная подписка созданы
	profile, err := st.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new.user", profile.DisplayName)
	assert.True(t, profile.IsPro)

	sub, err := st.GetSubscription(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionTierFree, sub.Tier)

	// Повторная регистрация того же email
	_, err = svc.Register(ctx, &dto.RegisterRequest{Email: "new.user@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegister_WithoutInvite(t *testing.T) {
	t.Parallel()

	svc, st, _ := newAuthFixture(t)
	ctx := context.Background()

	// Без инвайта и роли регистрируется невалидированный creator
	user, err := svc.Register(ctx, &dto.RegisterRequest{Email: "solo@example.com"})
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleCreator, user.Role)
	assert.False(t, user.IsVerified)

	_, err = st.GetProfile(ctx, user.ID)
	assert.NoError(t, err)

	// Продюсер профиля не получает
	producer, err := svc.Register(ctx, &dto.RegisterRequest{
		Email: "producer@example.com",
		Role:  models.UserRoleProducer,
	})
	require.NoError(t, err)
	_, err = st.GetProfile(ctx, producer.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Админом через регистрацию стать нельзя
	_, err = svc.Register(ctx, &dto.RegisterRequest{
		Email: "boss@example.com",
		Role:  models.UserRoleAdmin,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidUserRole)
}

func TestRegister_BadInvite(t *testing.T) {
	t.Parallel()

	svc, st, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:      "late@example.com",
		InviteCode: "NO-SUCH",
	})
	assert.ErrorIs(t, err, apperrors.ErrInviteNotFound)

	// Пользователь не создан
	_, err = st.GetUserByEmail(ctx, "late@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
