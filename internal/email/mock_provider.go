package email

import "sync"

// MockProvider - провайдер для dev-окружения и тестов: письма складываются
// в память вместо отправки.
type MockProvider struct {
	mu   sync.Mutex
	Sent []Email
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Send(email *Email) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Sent = append(p.Sent, *email)
	return nil
}

func (p *MockProvider) Validate() error { return nil }

func (p *MockProvider) Close() error { return nil }

// SentCount - сколько писем "отправлено".
func (p *MockProvider) SentCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Sent)
}
