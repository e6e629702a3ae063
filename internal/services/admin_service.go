package services

import (
	"context"
	"time"

	"reelboard_backend/internal/apperrors"
	"reelboard_backend/internal/logger"
	"reelboard_backend/internal/models"
	"reelboard_backend/internal/services/dto"
	"reelboard_backend/internal/store"
)

type AdminService interface {
	ListUsers(ctx context.Context) ([]*dto.UserResponse, error)
	GetUser(ctx context.Context, id string) (*dto.UserResponse, error)
	ChangeRole(ctx context.Context, id string, role models.UserRole) (*dto.UserResponse, error)
	SetVerified(ctx context.Context, id string, verified bool) (*dto.UserResponse, error)
	SetSubscription(ctx context.Context, id string, req *dto.SetSubscriptionRequest) (*models.Subscription, error)
	Stats(ctx context.Context) (*dto.StatsResponse, error)
	GetSettings(ctx context.Context) (*models.AdminSettings, error)
	UpdateSettings(ctx context.Context, actorID string, req *dto.UpdateSettingsRequest) (*models.AdminSettings, error)
}

type AdminServiceImpl struct {
	store store.Store
}

func NewAdminService(st store.Store) AdminService {
	return &AdminServiceImpl{store: st}
}

func (s *AdminServiceImpl) ListUsers(ctx context.Context) ([]*dto.UserResponse, error) {
	users, err := s.store.AllUsers(ctx)
	if err != nil {
		return nil, apperrors.StoreError(err)
	}
	result := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, dto.NewUserResponse(u))
	}
	return result, nil
}

func (s *AdminServiceImpl) getUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.StoreError(err)
	}
	return user, nil
}

func (s *AdminServiceImpl) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// ChangeRole меняет роль и перестраивает квоту под базу новой роли.
// Счетчики использования обнуляются: все три бакета всегда присутствуют,
// консистентность роли и формы квоты - инвариант.
func (s *AdminServiceImpl) ChangeRole(ctx context.Context, id string, role models.UserRole) (*dto.UserResponse, error) {
	if !models.ValidRole(role) {
		return nil, apperrors.ErrInvalidUserRole
	}

	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.Role = role
	user.InviteQuota = s.baseQuotaFor(ctx, role)
	user.InviteUsage = models.InviteQuota{}
	user.QuotaLastReset = &now
	user.UpdatedAt = now

	if err := s.store.PutUser(ctx, user); err != nil {
		return nil, apperrors.StoreError(err)
	}
	logger.CtxInfo(ctx, "user role changed", "user_id", id, "role", role)
	return dto.NewUserResponse(user), nil
}

func (s *AdminServiceImpl) baseQuotaFor(ctx context.Context, role models.UserRole) models.InviteQuota {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return models.BaseQuota(role)
	}
	return settings.QuotaFor(role)
}

func (s *AdminServiceImpl) SetVerified(ctx context.Context, id string, verified bool) (*dto.UserResponse, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.IsVerified = verified
	user.UpdatedAt = time.Now()
	if err := s.store.PutUser(ctx, user); err != nil {
		return nil, apperrors.StoreError(err)
	}
	return dto.NewUserResponse(user), nil
}

// SetSubscription меняет тариф пользователя и синхронизирует поле Tier
// на самом пользователе (две независимые записи, без транзакции)
func (s *AdminServiceImpl) SetSubscription(ctx context.Context, id string, req *dto.SetSubscriptionRequest) (*models.Subscription, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sub, err := s.store.GetSubscription(ctx, id)
	if err != nil {
		if !apperrors.Is(err, store.ErrNotFound) {
			return nil, apperrors.StoreError(err)
		}
		sub = models.NewFreeSubscription(id, now)
	}

	sub.Tier = req.Tier
	if req.Status != "" {
		sub.Status = req.Status
	}
	sub.ExpiresAt = req.ExpiresAt
	sub.UpdatedAt = now

	if err := s.store.PutSubscription(ctx, sub); err != nil {
		return nil, apperrors.StoreError(err)
	}

	user.Tier = req.Tier
	user.UpdatedAt = now
	if err := s.store.PutUser(ctx, user); err != nil {
		return nil, apperrors.StoreError(err)
	}
	return sub, nil
}

func (s *AdminServiceImpl) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	users, err := s.store.AllUsers(ctx)
	if err != nil {
		return nil, apperrors.StoreError(err)
	}
	profiles, err := s.store.AllProfiles(ctx)
	if err != nil {
		return nil, apperrors.StoreError(err)
	}
	invites, err := s.store.AllInvites(ctx)
	if err != nil {
		return nil, apperrors.StoreError(err)
	}

	stats := &dto.StatsResponse{
		TotalUsers:    len(users),
		UsersByRole:   make(map[models.UserRole]int),
		TotalProfiles: len(profiles),
		TotalInvites:  len(invites),
		InvitesByUse:  make(map[models.InviteStatus]int),
	}
	for _, u := range users {
		stats.UsersByRole[u.Role]++
		if u.IsVerified {
			stats.VerifiedUsers++
		}
	}
	now := time.Now()
	for _, inv := range invites {
		stats.InvitesByUse[inv.EffectiveStatus(now)]++
	}
	return stats, nil
}

// GetSettings отдает сохраненные настройки, либо дефолтные, если их еще нет
func (s *AdminServiceImpl) GetSettings(ctx context.Context) (*models.AdminSettings, error) {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return models.DefaultAdminSettings(), nil
		}
		return nil, apperrors.StoreError(err)
	}
	return settings, nil
}

func (s *AdminServiceImpl) UpdateSettings(ctx context.Context, actorID string, req *dto.UpdateSettingsRequest) (*models.AdminSettings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if req.RoleQuotas != nil {
		settings.RoleQuotas = *req.RoleQuotas
	}
	if req.Paywall != nil {
		settings.Paywall = *req.Paywall
	}
	settings.UpdatedAt = time.Now()
	settings.UpdatedBy = actorID

	if err := s.store.PutSettings(ctx, settings); err != nil {
		return nil, apperrors.StoreError(err)
	}
	logger.CtxInfo(ctx, "admin settings updated", "updated_by", actorID)
	return settings, nil
}
