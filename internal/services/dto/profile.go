package dto

import (
	"reelboard_backend/internal/models"
)

type UpdateProfileRequest struct {
	DisplayName     *string                 `json:"display_name,omitempty" validate:"omitempty,min=1,max=120"`
	Bio             *string                 `json:"bio,omitempty" validate:"omitempty,max=2000"`
	Specializations []string                `json:"specializations,omitempty" validate:"omitempty,max=20"`
	Tools           []string                `json:"tools,omitempty" validate:"omitempty,max=30"`
	Clients         []string                `json:"clients,omitempty" validate:"omitempty,max=50"`
	Portfolio       []models.PortfolioItem  `json:"portfolio,omitempty" validate:"omitempty,max=50"`
	Achievements    []string                `json:"achievements,omitempty" validate:"omitempty,max=30"`
	Badges          []string                `json:"badges,omitempty" validate:"omitempty,max=20"`
	Contacts        *models.ContactInfo     `json:"contacts,omitempty"`
	IsVisible       *bool                   `json:"is_visible,omitempty"`
	IsPro           *bool                   `json:"is_pro,omitempty"`
}

type RateProfileRequest struct {
	Score   int    `json:"score" binding:"required" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}

type ProfileResponse struct {
	models.CreatorProfile
	RatingAvg   float64 `json:"rating_avg"`
	RatingCount int     `json:"rating_count"`
}

func NewProfileResponse(p *models.CreatorProfile, ratings []*models.Rating) *ProfileResponse {
	resp := &ProfileResponse{CreatorProfile: *p}
	resp.RatingCount = len(ratings)
	if len(ratings) > 0 {
		total := 0
		for _, r := range ratings {
			total += r.Score
		}
		resp.RatingAvg = float64(total) / float64(len(ratings))
	}
	return resp
}
