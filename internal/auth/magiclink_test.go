package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testSecret = "unit-test-secret"

func TestMagicLinkToken_RoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.June, 1, 12, 30, 45, 0, time.UTC)
	token := magicLinkTokenAt("user@example.com", testSecret, now)

	assert.True(t, verifyMagicLinkTokenAt("user@example.com", token, testSecret, now))

	// Email нормализуется: регистр и пробелы не влияют
	assert.True(t, verifyMagicLinkTokenAt("  USER@Example.COM ", token, testSecret, now))
}

func TestMagicLinkToken_WindowTolerance(t *testing.T) {
	t.Parallel()

	issued := time.Date(2024, time.June, 1, 12, 0, 59, 0, time.UTC)
	token := magicLinkTokenAt("user@example.com", testSecret, issued)

	// Токен принимается в течение десяти минутных окон после выдачи
	assert.True(t, verifyMagicLinkTokenAt("user@example.com", token, testSecret, issued.Add(5*time.Minute)))
	assert.True(t, verifyMagicLinkTokenAt("user@example.com", token, testSecret, issued.Add(10*time.Minute)))

	// Одиннадцатое окно - уже протух
	assert.False(t, verifyMagicLinkTokenAt("user@example.com", token, testSecret, issued.Add(11*time.Minute)))
}

func TestMagicLinkToken_Rejects(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	token := magicLinkTokenAt("user@example.com", testSecret, now)

	// Чужой email
	assert.False(t, verifyMagicLinkTokenAt("other@example.com", token, testSecret, now))
	// Чужой секрет
	assert.False(t, verifyMagicLinkTokenAt("user@example.com", token, "wrong-secret", now))
	// Токен из будущего окна не принимается
	future := magicLinkTokenAt("user@example.com", testSecret, now.Add(2*time.Minute))
	assert.False(t, verifyMagicLinkTokenAt("user@example.com", future, testSecret, now))
	// Мусор
	assert.False(t, verifyMagicLinkTokenAt("user@example.com", "deadbeef", testSecret, now))
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	// length байт энтропии - 2*length hex-символов
	token, err := GenerateToken(32)
	assert.NoError(t, err)
	assert.Len(t, token, 64)
	assert.Regexp(t, "^[0-9a-f]+$", token)

	short, err := GenerateToken(8)
	assert.NoError(t, err)
	assert.Len(t, short, 16)

	other, err := GenerateToken(32)
	assert.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestGenerateInviteCode_Format(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateInviteCode()
		assert.NoError(t, err)
		assert.Len(t, code, 9)
		assert.Equal(t, byte('-'), code[4])
		for _, r := range code {
			if r == '-' {
				continue
			}
			assert.Contains(t, inviteAlphabet, string(r))
		}
		seen[code] = true
	}
	// Коллизии на сотне кодов статистически исключены
	assert.Len(t, seen, 100)
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidEmail("user@example.com"))
	assert.True(t, ValidEmail("first.last+tag@sub.example.io"))

	assert.False(t, ValidEmail(""))
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail("user@localhost"))
	assert.False(t, ValidEmail("@example.com"))
}
