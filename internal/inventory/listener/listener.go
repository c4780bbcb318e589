package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/auth"
	"github.com/fekuna/omnipos-pos-service/internal/inventory"
	"github.com/fekuna/omnipos-pos-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const EventStockReceived = "StockReceived"

// MessageReader is satisfied by *broker.KafkaConsumer.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// StockListener books supplier deliveries published by purchasing into main stock.
type StockListener struct {
	consumer MessageReader
	uc       inventory.UseCase
	logger   logger.ZapLogger
	backoff  time.Duration
}

func NewStockListener(consumer MessageReader, uc inventory.UseCase, logger logger.ZapLogger) *StockListener {
	return &StockListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
		backoff:  time.Second,
	}
}

func (l *StockListener) Start(ctx context.Context) {
	l.logger.Info("Starting stock receipt Kafka listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping stock receipt Kafka listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(l.backoff)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type StockReceivedEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   StockPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type StockPayload struct {
	Reference string           `json:"reference"`
	Items     []dto.StockEntry `json:"items"`
}

func (l *StockListener) processMessage(ctx context.Context, value []byte) {
	var event StockReceivedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != EventStockReceived {
		return
	}

	l.logger.Info("Processing StockReceived event",
		zap.String("event_id", event.EventID), zap.String("reference", event.Payload.Reference))

	ctx = auth.WithUserID(ctx, "system")
	_, err := l.uc.AddItems(ctx, &dto.AddItemsInput{
		Tier:      model.TierMain,
		Items:     event.Payload.Items,
		Reference: event.Payload.Reference,
	})
	if err != nil {
		l.logger.Error("Failed to book stock receipt",
			zap.String("event_id", event.EventID),
			zap.String("reference", event.Payload.Reference),
			zap.Error(err),
		)
	}
}
