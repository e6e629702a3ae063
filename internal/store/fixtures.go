package store

import (
	"context"
	"time"

	"reelboard_backend/internal/models"
)

// Фиксированные фикстуры деградированного режима: позволяют руками
// потыкать API, когда основное хранилище лежит.
const (
	FixtureAdminID      = "fixture-admin"
	FixtureAdminEmail   = "admin@reelboard.dev"
	FixtureAdminSession = "dev-admin-session"
	FixtureCreatorID    = "fixture-creator"
	FixtureCreatorEmail = "creator@reelboard.dev"
	FixtureInviteCode   = "WELCOME-CREATOR"
)

// Seed наполняет хранилище фикстурами. Идемпотентен: повторные вызовы
// ничего не делают (guard-флаг).
func (m *MemoryStore) Seed() {
	m.mu.Lock()
	if m.seeded {
		m.mu.Unlock()
		return
	}
	m.seeded = true
	m.mu.Unlock()

	ctx := context.Background()
	now := time.Now()

	admin := &models.User{
		BaseModel:   models.BaseModel{ID: FixtureAdminID, CreatedAt: now, UpdatedAt: now},
		Email:       FixtureAdminEmail,
		Role:        models.UserRoleAdmin,
		IsVerified:  true,
		Tier:        models.SubscriptionTierStudio,
		InviteQuota: models.BaseQuota(models.UserRoleAdmin),
	}
	_ = m.PutUser(ctx, admin)
	_ = m.PutSubscription(ctx, models.NewFreeSubscription(admin.ID, now))

	creator := &models.User{
		BaseModel:   models.BaseModel{ID: FixtureCreatorID, CreatedAt: now, UpdatedAt: now},
		Email:       FixtureCreatorEmail,
		Role:        models.UserRoleCreator,
		IsVerified:  true,
		Tier:        models.SubscriptionTierFree,
		InviteQuota: models.BaseQuota(models.UserRoleCreator),
	}
	_ = m.PutUser(ctx, creator)
	_ = m.PutSubscription(ctx, models.NewFreeSubscription(creator.ID, now))
	_ = m.PutProfile(ctx, &models.CreatorProfile{
		BaseModel:       models.BaseModel{ID: creator.ID, CreatedAt: now, UpdatedAt: now},
		DisplayName:     "Demo Creator",
		Bio:             "Монтаж, цветокоррекция, шортсы",
		Specializations: []string{"editing", "color"},
		Tools:           []string{"Premiere Pro", "DaVinci Resolve"},
		IsVisible:       true,
	})

	// Фиксированный тестовый инвайт
	_ = m.PutInvite(ctx, &models.Invite{
		BaseModel: models.BaseModel{ID: "fixture-invite", CreatedAt: now, UpdatedAt: now},
		Code:      FixtureInviteCode,
		Type:      models.InviteTypeCreator,
		CreatedBy: admin.ID,
		ExpiresAt: now.Add(EntityTTL),
		Status:    models.InviteStatusActive,
	})

	// Готовая админская сессия для интерактивной отладки
	_ = m.PutSession(ctx, &models.Session{
		ID:        FixtureAdminSession,
		UserID:    admin.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(SessionTTL),
	})

	_ = m.PutSettings(ctx, models.DefaultAdminSettings())
}
