package events

import "context"

// NoopPublisher заглушка для окружений без брокера (события отключены в конфиге)
type NoopPublisher struct{}

// NewNoopPublisher создает заглушку publisher'а
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

// Publish ничего не делает
func (p *NoopPublisher) Publish(_ context.Context, _ Event) error {
	return nil
}

// Close ничего не делает
func (p *NoopPublisher) Close() error {
	return nil
}
