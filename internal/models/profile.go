package models

import "time"

// CreatorProfile - публичная карточка креатора. ID совпадает с ID пользователя.
type CreatorProfile struct {
	BaseModel
	DisplayName     string           `json:"display_name"`
	Bio             string           `json:"bio,omitempty"`
	Specializations []string         `json:"specializations,omitempty"`
	Tools           []string         `json:"tools,omitempty"`
	Clients         []string         `json:"clients,omitempty"`
	Portfolio       []PortfolioItem  `json:"portfolio,omitempty"`
	Achievements    []string         `json:"achievements,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	Badges          []string         `json:"badges,omitempty"`
	Contacts        ContactInfo      `json:"contacts"`
	IsVisible       bool             `json:"is_visible"`
	IsPro           bool             `json:"is_pro"`
}

type PortfolioItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Kind  string `json:"kind,omitempty"` // "video", "reel", "link"
}

type Recommendation struct {
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type ContactInfo struct {
	Telegram string `json:"telegram,omitempty"`
	Website  string `json:"website,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Rating - оценка профиля креатора. Одна оценка на пару (профиль, автор),
// повторная запись перезаписывает предыдущую.
type Rating struct {
	BaseModel
	ProfileID string `json:"profile_id"`
	RaterID   string `json:"rater_id"`
	Score     int    `json:"score"` // 1..5
	Comment   string `json:"comment,omitempty"`
}
