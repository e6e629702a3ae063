package services

import (
	"context"
	"errors"
	"time"

	"reelboard_backend/internal/apperrors"
	"reelboard_backend/internal/auth"
	"reelboard_backend/internal/logger"
	"reelboard_backend/internal/models"
	"reelboard_backend/internal/services/dto"
	"reelboard_backend/internal/store"

	"github.com/google/uuid"
)

type InviteService interface {
	ListForUser(ctx context.Context, user *models.User) ([]*dto.InviteResponse, error)
	Create(ctx context.Context, userID string, req *dto.CreateInvitesRequest) (*dto.CreateInvitesResponse, error)
	Validate(ctx context.Context, code string) (*models.Invite, error)
	Redeem(ctx context.Context, code, redeemerID, redeemerEmail string) (*models.Invite, error)
	BaseQuotaFor(ctx context.Context, role models.UserRole) models.InviteQuota
}

type InviteServiceImpl struct {
	store store.Store
}

func NewInviteService(st store.Store) InviteService {
	return &InviteServiceImpl{store: st}
}

const inviteLifetime = 30 * 24 * time.Hour

var errCodeCollision = errors.New("invite code collision retries exhausted")

// BaseQuotaFor - действующая базовая квота роли: таблица из AdminSettings,
// если она сохранена, иначе статическая таблица
func (s *InviteServiceImpl) BaseQuotaFor(ctx context.Context, role models.UserRole) models.InviteQuota {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return models.BaseQuota(role)
	}
	return settings.QuotaFor(role)
}

// ListForUser возвращает инвайты, выпущенные пользователем
func (s *InviteServiceImpl) ListForUser(ctx context.Context, user *models.User) ([]*dto.InviteResponse, error) {
	now := time.Now()
	invites := make([]*dto.InviteResponse, 0, len(user.InviteCodes))
	for _, code := range user.InviteCodes {
		inv, err := s.store.GetInvite(ctx, code)
		if err != nil {
			if apperrors.Is(err, store.ErrNotFound) {
				// Запись истекла по TTL в хранилище - пропускаем
				continue
			}
			return nil, apperrors.StoreError(err)
		}
		invites = append(invites, dto.NewInviteResponse(inv, now))
	}
	return invites, nil
}

// Create выпускает инвайты в пределах остатка квоты. Запрошенное количество
// молча усекается до остатка: запросили N, осталось K < N - создается ровно K.
// Ошибка возвращается только когда остатка нет совсем.
//
// Инкремент счетчика использования и записи инвайтов - независимые записи без
// транзакции: падение между ними оставит расхождение (известный пробел).
func (s *InviteServiceImpl) Create(ctx context.Context, userID string, req *dto.CreateInvitesRequest) (*dto.CreateInvitesResponse, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.StoreError(err)
	}

	now := time.Now()
	base := s.BaseQuotaFor(ctx, user.Role)
	if user.ApplyQuotaReset(base, now) {
		logger.CtxInfo(ctx, "invite quota reset", "user_id", user.ID, "role", user.Role)
	}

	if !user.CanCreateInvite(req.Type) {
		return nil, apperrors.ErrQuotaExceeded
	}

	requested := req.Count
	if requested <= 0 {
		requested = 1
	}
	remaining := user.RemainingInvites(req.Type)
	toCreate := requested
	if toCreate > remaining {
		toCreate = remaining
	}

	created := make([]*dto.InviteResponse, 0, toCreate)
	for i := 0; i < toCreate; i++ {
		inv, err := s.newInvite(ctx, user.ID, req.Type, now)
		if err != nil {
			return nil, err
		}
		user.InviteCodes = append(user.InviteCodes, inv.Code)
		created = append(created, dto.NewInviteResponse(inv, now))
	}

	// Счетчик растет ровно на количество реально созданных инвайтов
	user.InviteUsage.Add(req.Type, len(created))
	user.UpdatedAt = now
	if err := s.store.PutUser(ctx, user); err != nil {
		return nil, apperrors.StoreError(err)
	}

	return &dto.CreateInvitesResponse{
		Invites:   created,
		Requested: requested,
		Created:   len(created),
		Remaining: user.RemainingInvites(req.Type),
		Usage:     user.InviteUsage,
	}, nil
}

// newInvite создает и сохраняет один инвайт, перегенерируя код при коллизии
func (s *InviteServiceImpl) newInvite(ctx context.Context, creatorID string, t models.InviteType, now time.Time) (*models.Invite, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code, err := auth.GenerateInviteCode()
		if err != nil {
			return nil, apperrors.InternalError(err)
		}

		_, err = s.store.GetInvite(ctx, code)
		if err == nil {
			continue // коллизия кода
		}
		if !apperrors.Is(err, store.ErrNotFound) {
			return nil, apperrors.StoreError(err)
		}

		inv := &models.Invite{
			BaseModel: models.BaseModel{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
			Code:      code,
			Type:      t,
			CreatedBy: creatorID,
			ExpiresAt: now.Add(inviteLifetime),
			Status:    models.InviteStatusActive,
		}
		if err := s.store.PutInvite(ctx, inv); err != nil {
			return nil, apperrors.StoreError(err)
		}
		return inv, nil
	}
	return nil, apperrors.InternalError(errCodeCollision)
}

// Validate проверяет, что код существует, не использован и не истек
func (s *InviteServiceImpl) Validate(ctx context.Context, code string) (*models.Invite, error) {
	inv, err := s.store.GetInvite(ctx, code)
	if err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ErrInviteNotFound
		}
		return nil, apperrors.StoreError(err)
	}

	switch inv.EffectiveStatus(time.Now()) {
	case models.InviteStatusUsed:
		return nil, apperrors.ErrInviteUsed
	case models.InviteStatusExpired:
		return nil, apperrors.ErrInviteExpired
	}
	return inv, nil
}

// Redeem гасит инвайт: read-modify-write без оптимистической блокировки.
// Конкурентное погашение одного кода - гонка: победит первая запись, вторая
// перезапишет ее не заметив конфликта. Хранилищу нужен условный write
// (CAS по статусу), чтобы гарантировать не-более-одного погашения.
func (s *InviteServiceImpl) Redeem(ctx context.Context, code, redeemerID, redeemerEmail string) (*models.Invite, error) {
	inv, err := s.Validate(ctx, code)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	inv.Status = models.InviteStatusUsed
	inv.RedeemedBy = redeemerID
	inv.RedeemedEmail = redeemerEmail
	inv.RedeemedAt = &now
	inv.UpdatedAt = now

	if err := s.store.PutInvite(ctx, inv); err != nil {
		return nil, apperrors.StoreError(err)
	}
	return inv, nil
}
