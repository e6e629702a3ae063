package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// Магик-линк токен детерминирован: hash(hash(email) + минутный таймстамп +
// секрет сервера). Проверка не хранит состояния - она перебирает текущее и
// 10 предыдущих минутных окон, так что токен живет до 10 минут. Окна
// привязаны к границам минут стенных часов, а не к моменту выдачи: токен,
// выданный на 59-й секунде, в худшем случае протухает меньше чем за секунду.
const magicLinkWindows = 10

func minuteWindow(t time.Time) int64 {
	return t.Unix() / 60
}

func magicToken(email, secret string, window int64) string {
	emailHash := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
	sum := sha256.Sum256([]byte(hex.EncodeToString(emailHash[:]) + strconv.FormatInt(window, 10) + secret))
	return hex.EncodeToString(sum[:])
}

// MagicLinkToken выдает токен для текущего минутного окна
func MagicLinkToken(email, secret string) string {
	return magicLinkTokenAt(email, secret, time.Now())
}

func magicLinkTokenAt(email, secret string, now time.Time) string {
	return magicToken(email, secret, minuteWindow(now))
}

// VerifyMagicLinkToken принимает токен, выданный в одном из последних
// десяти минутных окон, и отвергает все остальное
func VerifyMagicLinkToken(email, token, secret string) bool {
	return verifyMagicLinkTokenAt(email, token, secret, time.Now())
}

func verifyMagicLinkTokenAt(email, token, secret string, now time.Time) bool {
	current := minuteWindow(now)
	for i := int64(0); i <= magicLinkWindows; i++ {
		candidate := magicToken(email, secret, current-i)
		if subtle.ConstantTimeCompare([]byte(candidate), []byte(token)) == 1 {
			return true
		}
	}
	return false
}
