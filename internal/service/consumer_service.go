package service

import (
	"context"
	"encoding/json"
	"time"

	"tutorai-be/internal/constant"
	"tutorai-be/internal/dto"
	"tutorai-be/internal/pkg/logger"
	"tutorai-be/pkg/storage"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// activityStats is the stored shape of the activityStats key.
type activityStats struct {
	QuestionsAsked int        `json:"questionsAsked"`
	FailedAnswers  int        `json:"failedAnswers"`
	PdfsUploaded   int        `json:"pdfsUploaded"`
	LastActivity   *time.Time `json:"lastActivity,omitempty"`
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	backend    storage.Backend
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	backend storage.Backend,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		backend:    backend,
		logger:     logger,
	}
}

// Consume subscribes and processes messages in the background until ctx ends.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.ActivityEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ACTIVITY", "Failed to unmarshal activity event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack()
		return
	}
	if payload.UserId == "" {
		msg.Ack()
		return
	}

	adapter := storage.NewAdapter(cs.backend, payload.UserId, cs.logger)
	ctx := context.Background()
	stats, _ := storage.Load[activityStats](ctx, adapter, storage.KeyActivityStats)

	switch payload.Type {
	case constant.EventQuestionAnswered:
		stats.QuestionsAsked++
		if failed, _ := payload.Data["failed"].(bool); failed {
			stats.FailedAnswers++
		}
	case constant.EventPdfUploaded:
		stats.PdfsUploaded++
	default:
		cs.logger.Warn("ACTIVITY", "Ignoring unknown activity event", map[string]interface{}{
			"type": payload.Type,
		})
		msg.Ack()
		return
	}

	at := payload.OccurredAt
	stats.LastActivity = &at
	adapter.Save(ctx, storage.KeyActivityStats, stats)
	msg.Ack()
}
