package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"reelboard_backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisStore - адаптер поверх удаленного key-value сервиса.
// Все значения хранятся как JSON, каждая запись продлевает TTL.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// DialRedis разбирает URL вида redis://host:port/db и создает клиент
func DialRedis(url, password string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	return redis.NewClient(opts), nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// ----------------------------------------------------------------------------
// Внутренние помощники
// ----------------------------------------------------------------------------

func (s *RedisStore) getJSON(ctx context.Context, key string, dest interface{}) error {
	raw, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		return err
	}
	return json.Unmarshal([]byte(raw), dest)
}

func (s *RedisStore) setJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, raw, ttl).Err()
}

// keysByPrefix перечисляет все ключи под префиксом через SCAN.
// O(n) по всему пространству ключей, без пагинации - терпимо только
// на малых объемах (см. AllUsers/AllProfiles/AllInvites).
func (s *RedisStore) keysByPrefix(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *RedisStore) mgetJSON(ctx context.Context, keys []string, each func(raw []byte) error) error {
	if len(keys) == 0 {
		return nil
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return err
	}
	for _, v := range vals {
		str, ok := v.(string)
		if !ok {
			// Ключ исчез между SCAN и MGET (истек TTL) - пропускаем
			continue
		}
		if err := each([]byte(str)); err != nil {
			return err
		}
	}
	return nil
}

// ----------------------------------------------------------------------------
// Пользователи
// ----------------------------------------------------------------------------

func (s *RedisStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.getJSON(ctx, userPrefix+id, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail идет через вторичный индекс user_email:<email> -> id
func (s *RedisStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	id, err := s.client.Get(ctx, userEmailPrefix+normalizeEmail(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.GetUser(ctx, id)
}

// PutUser пишет пользователя и синхронно обновляет email-индекс
func (s *RedisStore) PutUser(ctx context.Context, u *models.User) error {
	if err := s.setJSON(ctx, userPrefix+u.ID, u, EntityTTL); err != nil {
		return err
	}
	return s.client.Set(ctx, userEmailPrefix+normalizeEmail(u.Email), u.ID, EntityTTL).Err()
}

func (s *RedisStore) AllUsers(ctx context.Context) ([]*models.User, error) {
	keys, err := s.keysByPrefix(ctx, userPrefix)
	if err != nil {
		return nil, err
	}
	var users []*models.User
	err = s.mgetJSON(ctx, keys, func(raw []byte) error {
		var u models.User
		if err := json.Unmarshal(raw, &u); err != nil {
			return err
		}
		users = append(users, &u)
		return nil
	})
	return users, err
}

// ----------------------------------------------------------------------------
// Сессии
// ----------------------------------------------------------------------------

func (s *RedisStore) GetSession(ctx context.Context, id string) (*models.Session, error) {
	var sess models.Session
	if err := s.getJSON(ctx, sessionPrefix+id, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisStore) PutSession(ctx context.Context, sess *models.Session) error {
	return s.setJSON(ctx, sessionPrefix+sess.ID, sess, SessionTTL)
}

func (s *RedisStore) DeleteSession(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionPrefix+id).Err()
}

// ----------------------------------------------------------------------------
// Профили
// ----------------------------------------------------------------------------

func (s *RedisStore) GetProfile(ctx context.Context, id string) (*models.CreatorProfile, error) {
	var p models.CreatorProfile
	if err := s.getJSON(ctx, profilePrefix+id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *RedisStore) PutProfile(ctx context.Context, p *models.CreatorProfile) error {
	return s.setJSON(ctx, profilePrefix+p.ID, p, EntityTTL)
}

func (s *RedisStore) AllProfiles(ctx context.Context) ([]*models.CreatorProfile, error) {
	keys, err := s.keysByPrefix(ctx, profilePrefix)
	if err != nil {
		return nil, err
	}
	var profiles []*models.CreatorProfile
	err = s.mgetJSON(ctx, keys, func(raw []byte) error {
		var p models.CreatorProfile
		if err := json.Unmarshal(raw, &p); err != nil {
			return err
		}
		profiles = append(profiles, &p)
		return nil
	})
	return profiles, err
}

// ----------------------------------------------------------------------------
// Инвайты: ключ - человекочитаемый код (он уникален)
// ----------------------------------------------------------------------------

func (s *RedisStore) GetInvite(ctx context.Context, code string) (*models.Invite, error) {
	var inv models.Invite
	if err := s.getJSON(ctx, invitePrefix+strings.ToUpper(code), &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *RedisStore) PutInvite(ctx context.Context, inv *models.Invite) error {
	return s.setJSON(ctx, invitePrefix+strings.ToUpper(inv.Code), inv, EntityTTL)
}

func (s *RedisStore) AllInvites(ctx context.Context) ([]*models.Invite, error) {
	keys, err := s.keysByPrefix(ctx, invitePrefix)
	if err != nil {
		return nil, err
	}
	var invites []*models.Invite
	err = s.mgetJSON(ctx, keys, func(raw []byte) error {
		var inv models.Invite
		if err := json.Unmarshal(raw, &inv); err != nil {
			return err
		}
		invites = append(invites, &inv)
		return nil
	})
	return invites, err
}

// ----------------------------------------------------------------------------
// Оценки: ключ rating:<profileID>:<raterID>, одна оценка на автора
// ----------------------------------------------------------------------------

func (s *RedisStore) PutRating(ctx context.Context, r *models.Rating) error {
	return s.setJSON(ctx, ratingPrefix+r.ProfileID+":"+r.RaterID, r, EntityTTL)
}

func (s *RedisStore) RatingsForProfile(ctx context.Context, profileID string) ([]*models.Rating, error) {
	keys, err := s.keysByPrefix(ctx, ratingPrefix+profileID+":")
	if err != nil {
		return nil, err
	}
	var ratings []*models.Rating
	err = s.mgetJSON(ctx, keys, func(raw []byte) error {
		var r models.Rating
		if err := json.Unmarshal(raw, &r); err != nil {
			return err
		}
		ratings = append(ratings, &r)
		return nil
	})
	return ratings, err
}

// ----------------------------------------------------------------------------
// Подписки и настройки
// ----------------------------------------------------------------------------

func (s *RedisStore) GetSubscription(ctx context.Context, userID string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := s.getJSON(ctx, subscriptionPrefix+userID, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *RedisStore) PutSubscription(ctx context.Context, sub *models.Subscription) error {
	return s.setJSON(ctx, subscriptionPrefix+sub.ID, sub, EntityTTL)
}

func (s *RedisStore) GetSettings(ctx context.Context) (*models.AdminSettings, error) {
	var settings models.AdminSettings
	if err := s.getJSON(ctx, settingsKey, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *RedisStore) PutSettings(ctx context.Context, settings *models.AdminSettings) error {
	// Настройки - синглтон, без TTL
	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, settingsKey, raw, 0).Err()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
