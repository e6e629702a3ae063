package store

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"reelboard_backend/internal/models"
)

// MemoryStore - процессный in-memory заменитель key-value сервиса.
// Используется как fallback, когда основное хранилище недоступно:
// состояние не переживает рестарт и не разделяется между инстансами,
// поэтому годится только для деградированного режима.
//
// Значения хранятся сериализованными в JSON под теми же ключами, что и в
// основном хранилище - чтение всегда отдает копию, а не общий указатель.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string][]byte
	seeded bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (m *MemoryStore) get(key string, dest interface{}) error {
	m.mu.RLock()
	raw, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(raw, dest)
}

func (m *MemoryStore) set(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) setPlain(key, value string) {
	m.mu.Lock()
	m.data[key] = []byte(value)
	m.mu.Unlock()
}

func (m *MemoryStore) keysByPrefix(prefix string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys
}

// ----------------------------------------------------------------------------
// Пользователи
// ----------------------------------------------------------------------------

func (m *MemoryStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := m.get(userPrefix+id, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (m *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	raw, ok := m.data[userEmailPrefix+normalizeEmail(email)]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return m.GetUser(ctx, string(raw))
}

func (m *MemoryStore) PutUser(ctx context.Context, u *models.User) error {
	if err := m.set(userPrefix+u.ID, u); err != nil {
		return err
	}
	m.setPlain(userEmailPrefix+normalizeEmail(u.Email), u.ID)
	return nil
}

func (m *MemoryStore) AllUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	for _, key := range m.keysByPrefix(userPrefix) {
		var u models.User
		if err := m.get(key, &u); err != nil {
			continue
		}
		users = append(users, &u)
	}
	return users, nil
}

// ----------------------------------------------------------------------------
// Сессии
// ----------------------------------------------------------------------------

func (m *MemoryStore) GetSession(ctx context.Context, id string) (*models.Session, error) {
	var s models.Session
	if err := m.get(sessionPrefix+id, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *MemoryStore) PutSession(ctx context.Context, s *models.Session) error {
	return m.set(sessionPrefix+s.ID, s)
}

func (m *MemoryStore) DeleteSession(ctx context.Context, id string) error {
	m.mu.Lock()
	delete(m.data, sessionPrefix+id)
	m.mu.Unlock()
	return nil
}

// ----------------------------------------------------------------------------
// Профили
// ----------------------------------------------------------------------------

func (m *MemoryStore) GetProfile(ctx context.Context, id string) (*models.CreatorProfile, error) {
	var p models.CreatorProfile
	if err := m.get(profilePrefix+id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *MemoryStore) PutProfile(ctx context.Context, p *models.CreatorProfile) error {
	return m.set(profilePrefix+p.ID, p)
}

func (m *MemoryStore) AllProfiles(ctx context.Context) ([]*models.CreatorProfile, error) {
	var profiles []*models.CreatorProfile
	for _, key := range m.keysByPrefix(profilePrefix) {
		var p models.CreatorProfile
		if err := m.get(key, &p); err != nil {
			continue
		}
		profiles = append(profiles, &p)
	}
	return profiles, nil
}

// ----------------------------------------------------------------------------
// Инвайты
// ----------------------------------------------------------------------------

func (m *MemoryStore) GetInvite(ctx context.Context, code string) (*models.Invite, error) {
	var inv models.Invite
	if err := m.get(invitePrefix+strings.ToUpper(code), &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (m *MemoryStore) PutInvite(ctx context.Context, inv *models.Invite) error {
	return m.set(invitePrefix+strings.ToUpper(inv.Code), inv)
}

func (m *MemoryStore) AllInvites(ctx context.Context) ([]*models.Invite, error) {
	var invites []*models.Invite
	for _, key := range m.keysByPrefix(invitePrefix) {
		var inv models.Invite
		if err := m.get(key, &inv); err != nil {
			continue
		}
		invites = append(invites, &inv)
	}
	return invites, nil
}

// ----------------------------------------------------------------------------
// Оценки
// ----------------------------------------------------------------------------

func (m *MemoryStore) PutRating(ctx context.Context, r *models.Rating) error {
	return m.set(ratingPrefix+r.ProfileID+":"+r.RaterID, r)
}

func (m *MemoryStore) RatingsForProfile(ctx context.Context, profileID string) ([]*models.Rating, error) {
	var ratings []*models.Rating
	for _, key := range m.keysByPrefix(ratingPrefix + profileID + ":") {
		var r models.Rating
		if err := m.get(key, &r); err != nil {
			continue
		}
		ratings = append(ratings, &r)
	}
	return ratings, nil
}

// ----------------------------------------------------------------------------
// Подписки и настройки
// ----------------------------------------------------------------------------

func (m *MemoryStore) GetSubscription(ctx context.Context, userID string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := m.get(subscriptionPrefix+userID, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (m *MemoryStore) PutSubscription(ctx context.Context, sub *models.Subscription) error {
	return m.set(subscriptionPrefix+sub.ID, sub)
}

func (m *MemoryStore) GetSettings(ctx context.Context) (*models.AdminSettings, error) {
	var settings models.AdminSettings
	if err := m.get(settingsKey, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (m *MemoryStore) PutSettings(ctx context.Context, settings *models.AdminSettings) error {
	return m.set(settingsKey, settings)
}
