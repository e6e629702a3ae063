package apperrors

// Коды ошибок сгруппированные по доменам
const (
	// Аутентификация и авторизация
	CodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	CodeForbidden      ErrorCode = "FORBIDDEN"
	CodeInvalidToken   ErrorCode = "INVALID_TOKEN"
	CodeSessionExpired ErrorCode = "SESSION_EXPIRED"
	CodeRateLimited    ErrorCode = "RATE_LIMITED"

	// Валидация
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeInvalidEmail     ErrorCode = "INVALID_EMAIL"
	CodeInvalidUserRole  ErrorCode = "INVALID_USER_ROLE"

	// Ресурсы
	CodeUserNotFound    ErrorCode = "USER_NOT_FOUND"
	CodeProfileNotFound ErrorCode = "PROFILE_NOT_FOUND"
	CodeInviteNotFound  ErrorCode = "INVITE_NOT_FOUND"
	CodeNotFound        ErrorCode = "NOT_FOUND"

	// Бизнес-логика
	CodeEmailAlreadyExists ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeInviteUsed         ErrorCode = "INVITE_USED"
	CodeInviteExpired      ErrorCode = "INVITE_EXPIRED"
	CodeQuotaExceeded      ErrorCode = "QUOTA_EXCEEDED"
	CodePaywallDisabled    ErrorCode = "PAYWALL_DISABLED"

	// Системные ошибки
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeStoreError    ErrorCode = "STORE_ERROR"
)
