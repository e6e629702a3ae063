package store

import (
	"context"
	"errors"
	"time"

	"reelboard_backend/internal/models"
)

// ErrNotFound возвращается, когда сущности нет. Отсутствие записи - это
// НЕ отказ хранилища: failover не должен на него реагировать.
var ErrNotFound = errors.New("store: not found")

// Префиксы ключей по сущностям
const (
	userPrefix         = "user:"
	userEmailPrefix    = "user_email:"
	sessionPrefix      = "session:"
	profilePrefix      = "profile:"
	invitePrefix       = "invite:"
	ratingPrefix       = "rating:"
	subscriptionPrefix = "subscription:"
	settingsKey        = "admin_settings"
)

// TTL записей. Каждая запись обновляет срок жизни.
const (
	EntityTTL  = 30 * 24 * time.Hour
	SessionTTL = 7 * 24 * time.Hour
)

// Store - типизированный доступ к сущностям поверх key-value сервиса.
// Реализации: RedisStore (основное хранилище), MemoryStore (fallback),
// Failover (обертка основное-плюс-fallback).
type Store interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	PutUser(ctx context.Context, u *models.User) error
	AllUsers(ctx context.Context) ([]*models.User, error)

	GetSession(ctx context.Context, id string) (*models.Session, error)
	PutSession(ctx context.Context, s *models.Session) error
	DeleteSession(ctx context.Context, id string) error

	GetProfile(ctx context.Context, id string) (*models.CreatorProfile, error)
	PutProfile(ctx context.Context, p *models.CreatorProfile) error
	AllProfiles(ctx context.Context) ([]*models.CreatorProfile, error)

	GetInvite(ctx context.Context, code string) (*models.Invite, error)
	PutInvite(ctx context.Context, inv *models.Invite) error
	AllInvites(ctx context.Context) ([]*models.Invite, error)

	PutRating(ctx context.Context, r *models.Rating) error
	RatingsForProfile(ctx context.Context, profileID string) ([]*models.Rating, error)

	GetSubscription(ctx context.Context, userID string) (*models.Subscription, error)
	PutSubscription(ctx context.Context, sub *models.Subscription) error

	GetSettings(ctx context.Context) (*models.AdminSettings, error)
	PutSettings(ctx context.Context, s *models.AdminSettings) error

	Ping(ctx context.Context) error
}
