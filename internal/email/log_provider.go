package email

import "reelboard_backend/internal/logger"

// LogProvider пишет magic link в лог вместо отправки письма.
// Дефолтный провайдер: SMTP включается только конфигом.
type LogProvider struct{}

func NewLogProvider() *LogProvider {
	return &LogProvider{}
}

func (p *LogProvider) SendMagicLink(to, link string) error {
	logger.Info("magic link issued (email delivery disabled)", "to", to, "link", link)
	return nil
}
