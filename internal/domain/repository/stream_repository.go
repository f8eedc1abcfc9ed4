package repository

import (
	"context"

	"github.com/partner-crm/internal/domain"
)

// StreamRepository is the queue behind the fire-and-forget county assignment:
// the API publishes events after the entity write commits, the worker
// consumes them through a consumer group so failures stay observable and
// unfinished work survives a restart.
type StreamRepository interface {
	// PublishToStream appends a JSON-serialized event to the stream.
	PublishToStream(ctx context.Context, stream string, data interface{}) error

	// CreateConsumerGroup creates the consumer group, tolerating "already
	// exists".
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// ConsumeStream delivers messages on a channel until ctx is cancelled.
	ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	// AckMessage acknowledges a processed message.
	AckMessage(ctx context.Context, stream, group, messageID string) error
}
