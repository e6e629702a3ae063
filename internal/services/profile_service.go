package services

import (
	"context"
	"time"

	"reelboard_backend/internal/apperrors"
	"reelboard_backend/internal/models"
	"reelboard_backend/internal/services/dto"
	"reelboard_backend/internal/store"

	"github.com/google/uuid"
)

type ProfileService interface {
	List(ctx context.Context, actor *models.User) ([]*dto.ProfileResponse, error)
	Get(ctx context.Context, id string, actor *models.User) (*dto.ProfileResponse, error)
	Update(ctx context.Context, id string, actor *models.User, req *dto.UpdateProfileRequest) (*models.CreatorProfile, error)
	Rate(ctx context.Context, profileID string, rater *models.User, req *dto.RateProfileRequest) error
}

type ProfileServiceImpl struct {
	store store.Store
}

func NewProfileService(st store.Store) ProfileService {
	return &ProfileServiceImpl{store: st}
}

func isAdmin(u *models.User) bool {
	return u != nil && u.Role == models.UserRoleAdmin
}

// List возвращает видимые профили; админ видит и скрытые
func (s *ProfileServiceImpl) List(ctx context.Context, actor *models.User) ([]*dto.ProfileResponse, error) {
	profiles, err := s.store.AllProfiles(ctx)
	if err != nil {
		return nil, apperrors.StoreError(err)
	}

	result := make([]*dto.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		if !p.IsVisible && !isAdmin(actor) {
			continue
		}
		ratings, err := s.store.RatingsForProfile(ctx, p.ID)
		if err != nil {
			return nil, apperrors.StoreError(err)
		}
		result = append(result, dto.NewProfileResponse(p, ratings))
	}
	return result, nil
}

// Get отдает профиль по id. Если профиля нет, а владелец существует и имеет
// креаторскую роль - профиль лениво создается при первом чтении.
func (s *ProfileServiceImpl) Get(ctx context.Context, id string, actor *models.User) (*dto.ProfileResponse, error) {
	profile, err := s.store.GetProfile(ctx, id)
	if err != nil {
		if !apperrors.Is(err, store.ErrNotFound) {
			return nil, apperrors.StoreError(err)
		}
		profile, err = s.createLazily(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	owner := actor != nil && actor.ID == profile.ID
	if !profile.IsVisible && !owner && !isAdmin(actor) {
		return nil, apperrors.ErrProfileNotFound
	}

	ratings, err := s.store.RatingsForProfile(ctx, profile.ID)
	if err != nil {
		return nil, apperrors.StoreError(err)
	}
	return dto.NewProfileResponse(profile, ratings), nil
}

func (s *ProfileServiceImpl) createLazily(ctx context.Context, userID string) (*models.CreatorProfile, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.StoreError(err)
	}
	if !models.IsCreatorRole(user.Role) {
		return nil, apperrors.ErrProfileNotFound
	}

	now := time.Now()
	profile := &models.CreatorProfile{
		BaseModel:   models.BaseModel{ID: user.ID, CreatedAt: now, UpdatedAt: now},
		DisplayName: displayNameFromEmail(user.Email),
		IsVisible:   true,
		IsPro:       user.Role == models.UserRoleCreatorPro,
	}
	if err := s.store.PutProfile(ctx, profile); err != nil {
		return nil, apperrors.StoreError(err)
	}
	return profile, nil
}

// Update меняет профиль. Право на запись: владелец или админ.
func (s *ProfileServiceImpl) Update(ctx context.Context, id string, actor *models.User, req *dto.UpdateProfileRequest) (*models.CreatorProfile, error) {
	if actor == nil || (actor.ID != id && !isAdmin(actor)) {
		return nil, apperrors.ErrForbidden
	}

	profile, err := s.store.GetProfile(ctx, id)
	if err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.StoreError(err)
	}

	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Specializations != nil {
		profile.Specializations = req.Specializations
	}
	if req.Tools != nil {
		profile.Tools = req.Tools
	}
	if req.Clients != nil {
		profile.Clients = req.Clients
	}
	if req.Portfolio != nil {
		profile.Portfolio = req.Portfolio
	}
	if req.Achievements != nil {
		profile.Achievements = req.Achievements
	}
	if req.Badges != nil {
		profile.Badges = req.Badges
	}
	if req.Contacts != nil {
		profile.Contacts = *req.Contacts
	}
	if req.IsVisible != nil {
		profile.IsVisible = *req.IsVisible
	}
	if req.IsPro != nil && *req.IsPro != profile.IsPro {
		if err := s.checkProToggle(ctx, actor, *req.IsPro); err != nil {
			return nil, err
		}
		profile.IsPro = *req.IsPro
	}

	profile.UpdatedAt = time.Now()
	if err := s.store.PutProfile(ctx, profile); err != nil {
		return nil, apperrors.StoreError(err)
	}
	return profile, nil
}

// checkProToggle: включение pro-флага гейтится переключателями paywall,
// админ их обходит
func (s *ProfileServiceImpl) checkProToggle(ctx context.Context, actor *models.User, enable bool) error {
	if !enable || isAdmin(actor) {
		return nil
	}
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			settings = models.DefaultAdminSettings()
		} else {
			return apperrors.StoreError(err)
		}
	}
	if settings.Paywall.Enabled && !settings.Paywall.ProUpgradeEnabled {
		return apperrors.ErrPaywallDisabled
	}
	return nil
}

// Rate пишет оценку профиля. Одна оценка на автора: повторная перезаписывает.
func (s *ProfileServiceImpl) Rate(ctx context.Context, profileID string, rater *models.User, req *dto.RateProfileRequest) error {
	if rater == nil {
		return apperrors.ErrUnauthorized
	}
	if rater.ID == profileID {
		return apperrors.NewForbiddenError("Cannot rate your own profile")
	}

	profile, err := s.store.GetProfile(ctx, profileID)
	if err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return apperrors.ErrProfileNotFound
		}
		return apperrors.StoreError(err)
	}
	if !profile.IsVisible && !isAdmin(rater) {
		return apperrors.ErrProfileNotFound
	}

	now := time.Now()
	rating := &models.Rating{
		BaseModel: models.BaseModel{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
		ProfileID: profileID,
		RaterID:   rater.ID,
		Score:     req.Score,
		Comment:   req.Comment,
	}
	if err := s.store.PutRating(ctx, rating); err != nil {
		return apperrors.StoreError(err)
	}
	return nil
}
