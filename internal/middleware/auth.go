package middleware

import (
	"reelboard_backend/internal/apperrors"
	"reelboard_backend/internal/logger"
	"reelboard_backend/internal/models"
	"reelboard_backend/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "session"
	SessionHeader = "X-Session-Token"

	ctxUserKey   = "user"
	ctxUserIDKey = "userID"
	ctxRoleKey   = "role"
)

// SessionToken извлекает токен сессии из cookie или доверенного заголовка
func SessionToken(c *gin.Context) string {
	if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
		return token
	}
	return c.GetHeader(SessionHeader)
}

// AuthMiddleware - middleware проверки сессии. Резолвит пользователя один
// раз и кладет его в контекст для хэндлеров ниже по цепочке.
func AuthMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionToken(c)
		if token == "" {
			c.Abort()
			apperrors.HandleError(c, apperrors.ErrUnauthorized)
			return
		}

		user, err := authService.CurrentUser(c.Request.Context(), token)
		if err != nil {
			var appErr *apperrors.AppError
			if !apperrors.As(err, &appErr) {
				appErr = apperrors.InternalError(err)
			}
			c.Abort()
			apperrors.HandleError(c, appErr)
			return
		}

		setUser(c, user)
		c.Next()
	}
}

// OptionalAuthMiddleware резолвит пользователя, если сессия есть, но не
// требует ее: публичные маршруты с разным поведением для своих
func OptionalAuthMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := SessionToken(c); token != "" {
			if user, err := authService.CurrentUser(c.Request.Context(), token); err == nil {
				setUser(c, user)
			}
		}
		c.Next()
	}
}

func setUser(c *gin.Context, user *models.User) {
	c.Set(ctxUserKey, user)
	c.Set(ctxUserIDKey, user.ID)
	c.Set(ctxRoleKey, user.Role)
	c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), user.ID))
}

// RequireRoles - middleware для проверки нескольких возможных ролей.
// Авторизация по ролям централизована здесь, а не в хэндлерах.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		roleVal, exists := c.Get(ctxRoleKey)
		if !exists {
			c.Abort()
			apperrors.HandleError(c, apperrors.ErrForbidden)
			return
		}

		role, ok := roleVal.(models.UserRole)
		if !ok {
			roleStr, isString := roleVal.(string)
			if !isString {
				c.Abort()
				apperrors.HandleError(c, apperrors.ErrForbidden)
				return
			}
			role = models.UserRole(roleStr)
		}

		if !roleSet[role] {
			c.Abort()
			apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied: insufficient role"))
			return
		}

		c.Next()
	}
}

// AdminMiddleware - сокращение для админских групп
func AdminMiddleware() gin.HandlerFunc {
	return RequireRoles(models.UserRoleAdmin)
}

// CurrentUser извлекает пользователя из контекста (nil если не залогинен)
func CurrentUser(c *gin.Context) *models.User {
	val, exists := c.Get(ctxUserKey)
	if !exists {
		return nil
	}
	user, ok := val.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return ""
	}
	id, ok := userID.(string)
	if !ok {
		return ""
	}
	return id
}
