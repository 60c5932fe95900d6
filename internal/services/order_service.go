package services

import (
	"context"
	"time"

	"hngpack/internal/models"
	"hngpack/internal/repositories"
	logx "hngpack/pkg/logger"
)

// OrderEventPublisher sends order events to a message broker.
type OrderEventPublisher interface {
	PublishOrderCreated(event any) error
}

// OrderCreatedEvent is published after an order has been stored.
type OrderCreatedEvent struct {
	Event     string       `json:"event"`
	OrderID   string       `json:"order_id"`
	Order     models.Order `json:"order"`
	CreatedAt time.Time    `json:"created_at"`
}

// OrderService handles business logic related to orders.
type OrderService struct {
	repo      repositories.DocumentRepository
	publisher OrderEventPublisher
}

// NewOrderService creates a new OrderService. repo and publisher may be nil.
func NewOrderService(repo repositories.DocumentRepository, publisher OrderEventPublisher) *OrderService {
	return &OrderService{
		repo:      repo,
		publisher: publisher,
	}
}

// CreateOrder stores the order as submitted and returns its identifier.
// A failed event publication is logged and does not fail the order.
func (s *OrderService) CreateOrder(ctx context.Context, order models.Order) (string, error) {
	if s.repo == nil {
		return "", repositories.ErrDatabaseUnavailable
	}

	id, err := s.repo.CreateDocument(ctx, models.OrderCollection, order)
	if err != nil {
		return "", err
	}

	if s.publisher != nil {
		event := OrderCreatedEvent{
			Event:     "order.created",
			OrderID:   id,
			Order:     order,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.publisher.PublishOrderCreated(event); err != nil {
			logx.Warn().Err(err).Str("order_id", id).Msg("failed to publish order created event")
		}
	}
	return id, nil
}
