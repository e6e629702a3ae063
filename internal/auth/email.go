package auth

import "regexp"

// Простая проверка формы local@domain.tld, без попытки покрыть весь RFC
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
