package store

import (
	"context"
	"errors"

	"reelboard_backend/internal/logger"
	"reelboard_backend/internal/models"
)

// Failover - Store, который ходит в основное хранилище и при транспортной
// ошибке повторяет операцию против in-memory fallback. ErrNotFound отказом
// не считается и пробрасывается как есть.
//
// Записи, ушедшие в fallback, не доедут до основного хранилища - это
// осознанная цена деградированного режима.
type Failover struct {
	primary  Store
	fallback Store
}

func NewFailover(primary, fallback Store) *Failover {
	return &Failover{primary: primary, fallback: fallback}
}

// failed: любая ошибка кроме "не найдено" - сигнал уйти в fallback
func failed(err error) bool {
	return err != nil && !errors.Is(err, ErrNotFound)
}

func (f *Failover) note(ctx context.Context, op string, err error) {
	logger.CtxWarn(ctx, "primary store unavailable, falling back to memory",
		"op", op, "error", err.Error())
}

func (f *Failover) Ping(ctx context.Context) error {
	return f.primary.Ping(ctx)
}

func (f *Failover) GetUser(ctx context.Context, id string) (*models.User, error) {
	u, err := f.primary.GetUser(ctx, id)
	if failed(err) {
		f.note(ctx, "GetUser", err)
		return f.fallback.GetUser(ctx, id)
	}
	return u, err
}

func (f *Failover) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := f.primary.GetUserByEmail(ctx, email)
	if failed(err) {
		f.note(ctx, "GetUserByEmail", err)
		return f.fallback.GetUserByEmail(ctx, email)
	}
	return u, err
}

func (f *Failover) PutUser(ctx context.Context, u *models.User) error {
	if err := f.primary.PutUser(ctx, u); failed(err) {
		f.note(ctx, "PutUser", err)
		return f.fallback.PutUser(ctx, u)
	}
	return nil
}

func (f *Failover) AllUsers(ctx context.Context) ([]*models.User, error) {
	users, err := f.primary.AllUsers(ctx)
	if failed(err) {
		f.note(ctx, "AllUsers", err)
		return f.fallback.AllUsers(ctx)
	}
	return users, err
}

func (f *Failover) GetSession(ctx context.Context, id string) (*models.Session, error) {
	s, err := f.primary.GetSession(ctx, id)
	if failed(err) {
		f.note(ctx, "GetSession", err)
		return f.fallback.GetSession(ctx, id)
	}
	return s, err
}

func (f *Failover) PutSession(ctx context.Context, s *models.Session) error {
	if err := f.primary.PutSession(ctx, s); failed(err) {
		f.note(ctx, "PutSession", err)
		return f.fallback.PutSession(ctx, s)
	}
	return nil
}

func (f *Failover) DeleteSession(ctx context.Context, id string) error {
	if err := f.primary.DeleteSession(ctx, id); failed(err) {
		f.note(ctx, "DeleteSession", err)
		return f.fallback.DeleteSession(ctx, id)
	}
	return nil
}

func (f *Failover) GetProfile(ctx context.Context, id string) (*models.CreatorProfile, error) {
	p, err := f.primary.GetProfile(ctx, id)
	if failed(err) {
		f.note(ctx, "GetProfile", err)
		return f.fallback.GetProfile(ctx, id)
	}
	return p, err
}

func (f *Failover) PutProfile(ctx context.Context, p *models.CreatorProfile) error {
	if err := f.primary.PutProfile(ctx, p); failed(err) {
		f.note(ctx, "PutProfile", err)
		return f.fallback.PutProfile(ctx, p)
	}
	return nil
}

func (f *Failover) AllProfiles(ctx context.Context) ([]*models.CreatorProfile, error) {
	profiles, err := f.primary.AllProfiles(ctx)
	if failed(err) {
		f.note(ctx, "AllProfiles", err)
		return f.fallback.AllProfiles(ctx)
	}
	return profiles, err
}

func (f *Failover) GetInvite(ctx context.Context, code string) (*models.Invite, error) {
	inv, err := f.primary.GetInvite(ctx, code)
	if failed(err) {
		f.note(ctx, "GetInvite", err)
		return f.fallback.GetInvite(ctx, code)
	}
	return inv, err
}

func (f *Failover) PutInvite(ctx context.Context, inv *models.Invite) error {
	if err := f.primary.PutInvite(ctx, inv); failed(err) {
		f.note(ctx, "PutInvite", err)
		return f.fallback.PutInvite(ctx, inv)
	}
	return nil
}

func (f *Failover) AllInvites(ctx context.Context) ([]*models.Invite, error) {
	invites, err := f.primary.AllInvites(ctx)
	if failed(err) {
		f.note(ctx, "AllInvites", err)
		return f.fallback.AllInvites(ctx)
	}
	return invites, err
}

func (f *Failover) PutRating(ctx context.Context, r *models.Rating) error {
	if err := f.primary.PutRating(ctx, r); failed(err) {
		f.note(ctx, "PutRating", err)
		return f.fallback.PutRating(ctx, r)
	}
	return nil
}

func (f *Failover) RatingsForProfile(ctx context.Context, profileID string) ([]*models.Rating, error) {
	ratings, err := f.primary.RatingsForProfile(ctx, profileID)
	if failed(err) {
		f.note(ctx, "RatingsForProfile", err)
		return f.fallback.RatingsForProfile(ctx, profileID)
	}
	return ratings, err
}

func (f *Failover) GetSubscription(ctx context.Context, userID string) (*models.Subscription, error) {
	sub, err := f.primary.GetSubscription(ctx, userID)
	if failed(err) {
		f.note(ctx, "GetSubscription", err)
		return f.fallback.GetSubscription(ctx, userID)
	}
	return sub, err
}

func (f *Failover) PutSubscription(ctx context.Context, sub *models.Subscription) error {
	if err := f.primary.PutSubscription(ctx, sub); failed(err) {
		f.note(ctx, "PutSubscription", err)
		return f.fallback.PutSubscription(ctx, sub)
	}
	return nil
}

func (f *Failover) GetSettings(ctx context.Context) (*models.AdminSettings, error) {
	settings, err := f.primary.GetSettings(ctx)
	if failed(err) {
		f.note(ctx, "GetSettings", err)
		return f.fallback.GetSettings(ctx)
	}
	return settings, err
}

func (f *Failover) PutSettings(ctx context.Context, settings *models.AdminSettings) error {
	if err := f.primary.PutSettings(ctx, settings); failed(err) {
		f.note(ctx, "PutSettings", err)
		return f.fallback.PutSettings(ctx, settings)
	}
	return nil
}
