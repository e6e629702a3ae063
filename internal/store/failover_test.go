package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"reelboard_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransport = errors.New("connection refused")

// flakyStore эмулирует основное хранилище с рубильником доступности
type flakyStore struct {
	*MemoryStore
	down bool
}

func (f *flakyStore) err() error {
	if f.down {
		return errTransport
	}
	return nil
}

func (f *flakyStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	if f.down {
		return nil, errTransport
	}
	return f.MemoryStore.GetUser(ctx, id)
}

func (f *flakyStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.down {
		return nil, errTransport
	}
	return f.MemoryStore.GetUserByEmail(ctx, email)
}

func (f *flakyStore) PutUser(ctx context.Context, u *models.User) error {
	if f.down {
		return errTransport
	}
	return f.MemoryStore.PutUser(ctx, u)
}

func (f *flakyStore) GetInvite(ctx context.Context, code string) (*models.Invite, error) {
	if f.down {
		return nil, errTransport
	}
	return f.MemoryStore.GetInvite(ctx, code)
}

func (f *flakyStore) GetSession(ctx context.Context, id string) (*models.Session, error) {
	if f.down {
		return nil, errTransport
	}
	return f.MemoryStore.GetSession(ctx, id)
}

func (f *flakyStore) PutSession(ctx context.Context, s *models.Session) error {
	if err := f.err(); err != nil {
		return err
	}
	return f.MemoryStore.PutSession(ctx, s)
}

func (f *flakyStore) Ping(ctx context.Context) error {
	return f.err()
}

func TestFailover_UsesPrimaryWhenHealthy(t *testing.T) {
	t.Parallel()

	primary := &flakyStore{MemoryStore: NewMemoryStore()}
	fallback := NewMemoryStore()
	f := NewFailover(primary, fallback)
	ctx := context.Background()

	user := &models.User{
		BaseModel: models.BaseModel{ID: "u1", CreatedAt: time.Now()},
		Email:     "a@example.com",
		Role:      models.UserRoleCreator,
	}
	require.NoError(t, f.PutUser(ctx, user))

	// Запись ушла в primary, fallback пустой
	_, err := primary.MemoryStore.GetUser(ctx, "u1")
	assert.NoError(t, err)
	_, err = fallback.GetUser(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFailover_FallsBackOnTransportError(t *testing.T) {
	t.Parallel()

	primary := &flakyStore{MemoryStore: NewMemoryStore()}
	fallback := NewMemoryStore()
	fallback.Seed()
	f := NewFailover(primary, fallback)
	ctx := context.Background()

	primary.down = true

	// Чтение уходит в fallback и находит фикстуру
	admin, err := f.GetUserByEmail(ctx, FixtureAdminEmail)
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleAdmin, admin.Role)

	// Запись в деградированном режиме тоже приземляется в fallback
	require.NoError(t, f.PutUser(ctx, &models.User{
		BaseModel: models.BaseModel{ID: "u2"},
		Email:     "b@example.com",
		Role:      models.UserRoleProducer,
	}))
	got, err := fallback.GetUser(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleProducer, got.Role)
}

// Redis падает не только на старте: fallback должен быть засеян заранее,
// чтобы сбой посреди работы сразу давал рабочий деградированный режим
func TestFailover_MidRunOutageServesFixtures(t *testing.T) {
	t.Parallel()

	primary := &flakyStore{MemoryStore: NewMemoryStore()}
	fallback := NewMemoryStore()
	fallback.Seed()
	f := NewFailover(primary, fallback)
	ctx := context.Background()

	// Здоровый период: запросы обслуживает primary
	require.NoError(t, f.PutUser(ctx, &models.User{
		BaseModel: models.BaseModel{ID: "u1", CreatedAt: time.Now()},
		Email:     "live@example.com",
		Role:      models.UserRoleCreator,
	}))
	require.NoError(t, f.Ping(ctx))

	// Primary умирает посреди работы
	primary.down = true

	// Фикстурный админ, инвайт и сессия доступны в деградированном режиме
	admin, err := f.GetUserByEmail(ctx, FixtureAdminEmail)
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleAdmin, admin.Role)

	inv, err := f.GetInvite(ctx, FixtureInviteCode)
	require.NoError(t, err)
	assert.Equal(t, models.InviteStatusActive, inv.Status)

	sess, err := f.GetSession(ctx, FixtureAdminSession)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, sess.UserID)
}

func TestFailover_NotFoundIsNotAFailure(t *testing.T) {
	t.Parallel()

	primary := &flakyStore{MemoryStore: NewMemoryStore()}
	fallback := NewMemoryStore()
	fallback.Seed()
	f := NewFailover(primary, fallback)
	ctx := context.Background()

	// Primary жив и отвечает "не найдено": в fallback не ходим,
	// иначе фикстуры маскировали бы реальное отсутствие данных
	_, err := f.GetUserByEmail(ctx, FixtureAdminEmail)
	assert.ErrorIs(t, err, ErrNotFound)
}
