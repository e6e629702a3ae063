package handlers

// AppHandlers собирает все HTTP-хэндлеры приложения
type AppHandlers struct {
	AuthHandler    *AuthHandler
	InviteHandler  *InviteHandler
	ProfileHandler *ProfileHandler
	AdminHandler   *AdminHandler
}
