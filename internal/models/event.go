package models

import "time"

// ProductEventType names what happened to a product.
type ProductEventType string

const (
	ProductCreated             ProductEventType = "product.created"
	ProductUpdated             ProductEventType = "product.updated"
	ProductAvailabilityChanged ProductEventType = "product.availability_changed"
	ProductDeleted             ProductEventType = "product.deleted"
)

// ProductEvent is published after every successful product mutation.
type ProductEvent struct {
	Type       ProductEventType `json:"type"`
	ProductID  uint             `json:"product_id"`
	Product    *Product         `json:"product,omitempty"` // nil for deletions
	OccurredAt time.Time        `json:"occurred_at"`
}

// NewProductEvent builds an event stamped with the current time.
func NewProductEvent(eventType ProductEventType, id uint, product *Product) ProductEvent {
	return ProductEvent{
		Type:       eventType,
		ProductID:  id,
		Product:    product,
		OccurredAt: time.Now().UTC(),
	}
}
