package assignment

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/partner-crm/internal/domain"
	"github.com/partner-crm/internal/domain/repository"
	"github.com/partner-crm/internal/usecase"
	"github.com/partner-crm/internal/worker"
	"go.uber.org/zap"
)

// retryDelay spaces out attempts on a failing message.
const retryDelay = 2 * time.Second

// CountyWorker consumes county-assign events and runs the geocoding
// pipeline for each. Messages are acknowledged once handled; a message
// that keeps failing is acknowledged after maxRetries so it cannot wedge
// the stream.
type CountyWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	assignmentUC *usecase.AssignmentUseCase
	consumerName string
	maxRetries   int
}

func NewCountyWorker(
	streamRepo repository.StreamRepository,
	assignmentUC *usecase.AssignmentUseCase,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *CountyWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &CountyWorker{
		BaseWorker:   worker.NewBaseWorker("county-assignment", consumerGroup, logger),
		streamRepo:   streamRepo,
		assignmentUC: assignmentUC,
		consumerName: consumerName,
		maxRetries:   maxRetries,
	}
}

// Start runs the consume loop until Stop or context cancellation.
func (w *CountyWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting CountyWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamCountyAssign, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	msgChan, err := w.streamRepo.ConsumeStream(ctx, domain.StreamCountyAssign, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to start stream consumer: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-msgChan:
			if !ok {
				logger.Info("Stream channel closed")
				return nil
			}
			w.handleMessage(ctx, msg)
		}
	}
}

// handleMessage parses and processes one event. A message that cannot be
// parsed is acknowledged immediately so it does not stall the group.
func (w *CountyWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()

	var event domain.CountyAssignEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Warn("Failed to parse message, skipping",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		w.ack(ctx, msg.ID)
		return
	}

	var lastErr error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		lastErr = w.assignmentUC.ProcessEvent(ctx, event)
		if lastErr == nil {
			logger.Debug("Event processed",
				zap.String("message_id", msg.ID),
				zap.String("entity_type", string(event.EntityType)),
				zap.String("entity_id", event.EntityID.String()))
			w.ack(ctx, msg.ID)
			return
		}

		logger.Warn("Event processing failed",
			zap.String("message_id", msg.ID),
			zap.Int("attempt", attempt),
			zap.Error(lastErr))

		select {
		case <-ctx.Done():
			return
		case <-time.After(retryDelay):
		}
	}

	logger.Error("Giving up on event after retries",
		zap.String("message_id", msg.ID),
		zap.String("entity_id", event.EntityID.String()),
		zap.Int("max_retries", w.maxRetries),
		zap.Error(lastErr))
	w.ack(ctx, msg.ID)
}

func (w *CountyWorker) ack(ctx context.Context, messageID string) {
	if err := w.streamRepo.AckMessage(ctx, domain.StreamCountyAssign, w.ConsumerGroup(), messageID); err != nil {
		w.Logger().Error("Failed to ack message",
			zap.String("message_id", messageID),
			zap.Error(err))
	}
}
