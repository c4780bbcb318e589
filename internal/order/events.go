package order

import (
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/model"
)

const (
	EventOrderCreated   = "OrderCreated"
	EventOrderUpdated   = "OrderUpdated"
	EventOrderCancelled = "OrderCancelled"
	EventOrderInvoiced  = "OrderInvoiced"
)

// Event is published once per committed order change, keyed by order code.
type Event struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   *model.Order `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}
