package email

// Provider определяет интерфейс для отправки email
type Provider interface {
	// Send отправляет email сообщение
	Send(email *Email) error

	// Validate проверяет конфигурацию провайдера
	Validate() error

	// Close закрывает соединение с провайдером
	Close() error
}
