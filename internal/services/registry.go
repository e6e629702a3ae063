package services

import "reelboard_backend/internal/email"

// ServiceContainer собирает все сервисы для передачи в хэндлеры
type ServiceContainer struct {
	AuthService    AuthService
	InviteService  InviteService
	ProfileService ProfileService
	AdminService   AdminService
	EmailService   email.Provider
}
