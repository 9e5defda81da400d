package repository

import (
	"context"

	"github.com/itinerary-service/internal/domain"
)

// StreamRepository - работа с Redis Streams для событий инвалидации
type StreamRepository interface {
	// CreateConsumerGroup создаёт consumer group для стрима (идемпотентно)
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// ConsumeBatch читает до count непрочитанных сообщений без блокировки
	ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error)

	// AckMessage подтверждает обработку сообщения
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// PublishToStream публикует сообщение в стрим (JSON в поле "data")
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
