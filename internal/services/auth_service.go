package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"reelboard_backend/internal/apperrors"
	"reelboard_backend/internal/auth"
	"reelboard_backend/internal/email"
	"reelboard_backend/internal/logger"
	"reelboard_backend/internal/models"
	"reelboard_backend/internal/services/dto"
	"reelboard_backend/internal/store"

	"github.com/google/uuid"
)

type AuthService interface {
	RequestLogin(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	VerifyLogin(ctx context.Context, email, token, userAgent, ip string) (*models.User, *models.Session, error)
	CurrentUser(ctx context.Context, sessionID string) (*models.User, error)
	Logout(ctx context.Context, sessionID string) error
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error)
}

type AuthServiceImpl struct {
	store         store.Store
	invites       InviteService
	emailProvider email.Provider
	limiter       *auth.RateLimiter
	secret        string
	baseURL       string
	devMode       bool
}

func NewAuthService(
	st store.Store,
	invites InviteService,
	emailProvider email.Provider,
	limiter *auth.RateLimiter,
	secret, baseURL string,
	devMode bool,
) AuthService {
	return &AuthServiceImpl{
		store:         st,
		invites:       invites,
		emailProvider: emailProvider,
		limiter:       limiter,
		secret:        secret,
		baseURL:       baseURL,
		devMode:       devMode,
	}
}

const (
	loginRateLimit  = 5
	loginRateWindow = 15 * time.Minute
	sessionLifetime = 7 * 24 * time.Hour

	// 32 байта энтропии - 64 hex-символа в токене сессии
	sessionTokenBytes = 32
)

// RequestLogin выдает магик-линк для существующего пользователя
func (s *AuthServiceImpl) RequestLogin(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	normalized := strings.ToLower(strings.TrimSpace(req.Email))
	if !auth.ValidEmail(normalized) {
		return nil, apperrors.ErrInvalidEmail
	}

	if !s.limiter.Allow("login:"+normalized, loginRateLimit, loginRateWindow) {
		return nil, apperrors.ErrRateLimited
	}

	if _, err := s.store.GetUserByEmail(ctx, normalized); err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.StoreError(err)
	}

	token := auth.MagicLinkToken(normalized, s.secret)
	link := fmt.Sprintf("%s/api/v1/auth/verify?email=%s&token=%s",
		s.baseURL, url.QueryEscape(normalized), token)

	if err := s.emailProvider.SendMagicLink(normalized, link); err != nil {
		// Недоставленное письмо не валит запрос: линк уже в логе
		logger.CtxWithError(ctx, "failed to deliver magic link", err, "email", normalized)
	}

	resp := &dto.LoginResponse{Message: "Magic link issued, check your inbox"}
	if s.devMode {
		resp.MagicLink = link
	}
	return resp, nil
}

// VerifyLogin проверяет токен и создает сессию на 7 дней
func (s *AuthServiceImpl) VerifyLogin(ctx context.Context, emailAddr, token, userAgent, ip string) (*models.User, *models.Session, error) {
	normalized := strings.ToLower(strings.TrimSpace(emailAddr))

	if !auth.VerifyMagicLinkToken(normalized, token, s.secret) {
		return nil, nil, apperrors.ErrInvalidToken
	}

	user, err := s.store.GetUserByEmail(ctx, normalized)
	if err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return nil, nil, apperrors.ErrUserNotFound
		}
		return nil, nil, apperrors.StoreError(err)
	}

	// Сессия - непрозрачный случайный токен, а не угадываемый id
	sessionID, err := auth.GenerateToken(sessionTokenBytes)
	if err != nil {
		return nil, nil, apperrors.InternalError(err)
	}

	now := time.Now()
	session := &models.Session{
		ID:        sessionID,
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionLifetime),
		UserAgent: userAgent,
		IP:        ip,
	}
	if err := s.store.PutSession(ctx, session); err != nil {
		return nil, nil, apperrors.StoreError(err)
	}

	logger.CtxInfo(ctx, "session created", "user_id", user.ID, "session_id", session.ID)
	return user, session, nil
}

// CurrentUser резолвит пользователя по сессии. Просроченная сессия лениво
// удаляется при чтении и считается отсутствующей - пути продления нет,
// нужен новый магик-линк.
func (s *AuthServiceImpl) CurrentUser(ctx context.Context, sessionID string) (*models.User, error) {
	if sessionID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, apperrors.StoreError(err)
	}

	if session.Expired(time.Now()) {
		_ = s.store.DeleteSession(ctx, sessionID)
		return nil, apperrors.ErrSessionExpired
	}

	user, err := s.store.GetUser(ctx, session.UserID)
	if err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, apperrors.StoreError(err)
	}
	return user, nil
}

func (s *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.store.DeleteSession(ctx, sessionID); err != nil {
		return apperrors.StoreError(err)
	}
	return nil
}

// Register создает пользователя, опционально погасив инвайт.
// Роль из инвайта имеет приоритет над ролью из запроса.
func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(req.Email))
	if !auth.ValidEmail(normalized) {
		return nil, apperrors.ErrInvalidEmail
	}

	role := req.Role
	if role == "" {
		role = models.UserRoleCreator
	}
	if !models.ValidRegistrationRole(role) {
		return nil, apperrors.ErrInvalidUserRole
	}

	if _, err := s.store.GetUserByEmail(ctx, normalized); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !apperrors.Is(err, store.ErrNotFound) {
		return nil, apperrors.StoreError(err)
	}

	var invite *models.Invite
	if req.InviteCode != "" {
		inv, err := s.invites.Validate(ctx, req.InviteCode)
		if err != nil {
			return nil, err
		}
		invite = inv
		role = models.RoleForInviteType(inv.Type)
	}

	now := time.Now()
	user := &models.User{
		BaseModel:   models.BaseModel{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
		Email:       normalized,
		Role:        role,
		IsVerified:  invite != nil, // пришедшие по инвайту считаются проверенными
		Tier:        models.SubscriptionTierFree,
		InviteQuota: s.invites.BaseQuotaFor(ctx, role),
	}
	if err := s.store.PutUser(ctx, user); err != nil {
		return nil, apperrors.StoreError(err)
	}

	if err := s.store.PutSubscription(ctx, models.NewFreeSubscription(user.ID, now)); err != nil {
		logger.CtxWithError(ctx, "failed to create free subscription", err, "user_id", user.ID)
	}

	if models.IsCreatorRole(role) {
		profile := &models.CreatorProfile{
			BaseModel:   models.BaseModel{ID: user.ID, CreatedAt: now, UpdatedAt: now},
			DisplayName: displayNameFromEmail(normalized),
			IsVisible:   true,
			IsPro:       role == models.UserRoleCreatorPro,
		}
		if err := s.store.PutProfile(ctx, profile); err != nil {
			logger.CtxWithError(ctx, "failed to create creator profile", err, "user_id", user.ID)
		}
	}

	if invite != nil {
		if _, err := s.invites.Redeem(ctx, invite.Code, user.ID, user.Email); err != nil {
			// Пользователь уже создан; неудачное погашение только логируем
			logger.CtxWithError(ctx, "failed to redeem invite", err, "code", invite.Code)
		}
	}

	logger.CtxInfo(ctx, "user registered", "user_id", user.ID, "role", user.Role, "invited", invite != nil)
	return user, nil
}

func displayNameFromEmail(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
