package services_test

import (
	"context"
	"errors"
	"testing"

	"hngpack/internal/models"
	"hngpack/internal/repositories"
	"hngpack/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestOrderService_CreateOrder(t *testing.T) {
	mockRepo := new(MockDocumentRepository)
	mockPub := new(MockPublisher)
	service := services.NewOrderService(mockRepo, mockPub)

	order := models.Order{"product_id": "abc", "quantity": float64(2)}

	mockRepo.On("CreateDocument", mock.Anything, "order", order).Return("order-1", nil).Once()
	mockPub.On("PublishOrderCreated", mock.MatchedBy(func(e services.OrderCreatedEvent) bool {
		return e.Event == "order.created" && e.OrderID == "order-1" && e.Order["product_id"] == "abc" && !e.CreatedAt.IsZero()
	})).Return(nil).Once()

	id, err := service.CreateOrder(context.Background(), order)

	assert.NoError(t, err)
	assert.Equal(t, "order-1", id)
	mockRepo.AssertExpectations(t)
	mockPub.AssertExpectations(t)
}

func TestOrderService_CreateOrder_PublishFailureIgnored(t *testing.T) {
	mockRepo := new(MockDocumentRepository)
	mockPub := new(MockPublisher)
	service := services.NewOrderService(mockRepo, mockPub)

	order := models.Order{}
	mockRepo.On("CreateDocument", mock.Anything, "order", order).Return("order-2", nil).Once()
	mockPub.On("PublishOrderCreated", mock.Anything).Return(errors.New("broker down")).Once()

	id, err := service.CreateOrder(context.Background(), order)

	assert.NoError(t, err)
	assert.Equal(t, "order-2", id)
	mockPub.AssertExpectations(t)
}

func TestOrderService_CreateOrder_StoreFailure(t *testing.T) {
	mockRepo := new(MockDocumentRepository)
	mockPub := new(MockPublisher)
	service := services.NewOrderService(mockRepo, mockPub)

	order := models.Order{"quantity": float64(1)}
	mockRepo.On("CreateDocument", mock.Anything, "order", order).Return("", errors.New("write concern error")).Once()

	_, err := service.CreateOrder(context.Background(), order)

	assert.EqualError(t, err, "write concern error")
	mockPub.AssertNotCalled(t, "PublishOrderCreated", mock.Anything)
}

func TestOrderService_CreateOrder_NoDatabase(t *testing.T) {
	service := services.NewOrderService(nil, nil)

	_, err := service.CreateOrder(context.Background(), models.Order{"quantity": float64(1)})

	assert.ErrorIs(t, err, repositories.ErrDatabaseUnavailable)
}

func TestOrderService_CreateOrder_WithoutPublisher(t *testing.T) {
	repo := repositories.NewMockDocumentRepository("packaging")
	service := services.NewOrderService(repo, nil)

	id, err := service.CreateOrder(context.Background(), models.Order{"items": []any{"box"}})
	assert.NoError(t, err)

	docs, err := repo.GetDocuments(context.Background(), "order")
	assert.NoError(t, err)
	if assert.Len(t, docs, 1) {
		assert.Equal(t, id, docs[0]["_id"])
	}
}
