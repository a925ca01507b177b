package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const EventTypeInventoryLowStock = "inventory.low_stock"

type LowStockEvent struct {
	BaseEvent
	ItemID      string `json:"item_id"`
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	MinQuantity int    `json:"min_quantity"`
}

func NewLowStockEvent(itemID, sku, name string, quantity, minQuantity int) *LowStockEvent {
	return &LowStockEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeInventoryLowStock,
			Timestamp: time.Now().UTC(),
			Data: map[string]interface{}{
				"item_id":      itemID,
				"sku":          sku,
				"name":         name,
				"quantity":     quantity,
				"min_quantity": minQuantity,
			},
		},
		ItemID:      itemID,
		SKU:         sku,
		Name:        name,
		Quantity:    quantity,
		MinQuantity: minQuantity,
	}
}

// LowStockLogger logs every low-stock event it receives.
func LowStockLogger(logger *slog.Logger) Handler {
	return func(_ context.Context, event Event) error {
		e, ok := event.(*LowStockEvent)
		if !ok {
			return nil
		}
		logger.Warn("inventory item at or below minimum quantity",
			"item_id", e.ItemID,
			"sku", e.SKU,
			"quantity", e.Quantity,
			"min_quantity", e.MinQuantity)
		return nil
	}
}
