package middleware

import (
	"net/http"
	"strings"

	"reelboard_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Фиксированный список префиксов страниц, требующих входа
var protectedPagePrefixes = []string{
	"/dashboard",
	"/invites",
	"/profile/edit",
	"/admin",
}

// Страницы, с которых залогиненных уводим
var authPages = []string{
	"/login",
	"/register",
}

// PageGuardMiddleware - редиректы для HTML-навигации: неаутентифицированных
// уводит с защищенных страниц на /login, аутентифицированных - со страниц
// входа на /dashboard. JSON API этим не затрагивается.
func PageGuardMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || !wantsHTML(c) {
			c.Next()
			return
		}

		path := c.Request.URL.Path
		authed := false
		if token := SessionToken(c); token != "" {
			if _, err := authService.CurrentUser(c.Request.Context(), token); err == nil {
				authed = true
			}
		}

		if !authed && hasPrefix(path, protectedPagePrefixes) {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		if authed && hasPrefix(path, authPages) {
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}

		c.Next()
	}
}

func wantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}

func hasPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
