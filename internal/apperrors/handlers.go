package apperrors

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse - стандартный конверт ответа об ошибке:
// {"success": false, "error": {...}}
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   *AppError `json:"error"`
}

// HandleError - обработка ошибок для Gin контекста
func HandleError(c *gin.Context, err *AppError) {
	c.JSON(err.HTTPCode, ErrorResponse{Success: false, Error: err})
}
