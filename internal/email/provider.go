package email

// Provider определяет интерфейс для доставки писем со ссылкой для входа.
// Сама доставка - внешняя забота: по умолчанию ссылка просто логируется.
type Provider interface {
	// SendMagicLink отправляет письмо со ссылкой для входа
	SendMagicLink(to, link string) error
}
