package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hngpack/internal/config"
	"hngpack/internal/models"
	"hngpack/internal/repositories"
	"hngpack/internal/services"
	logx "hngpack/pkg/logger"
)

// MockRabbitMQClient is a mock implementation of the order event publisher.
type MockRabbitMQClient struct {
	mock.Mock
}

func (m *MockRabbitMQClient) PublishOrderCreated(event any) error {
	args := m.Called(event)
	return args.Error(0)
}

func TestMain(m *testing.M) {
	logx.Init(logx.Options{Production: true, Output: io.Discard})
	os.Exit(m.Run())
}

func newTestConfig(t *testing.T, values map[string]string) *config.Config {
	t.Helper()

	v := viper.New()
	v.SetDefault(config.KeyPort, "8000")
	for k, val := range values {
		v.Set(k, val)
	}
	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	return cfg
}

func TestNewApp_Routes(t *testing.T) {
	app := NewApp(newTestConfig(t, nil), nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"HNG PACKAGING SOLUTION backend is running"}`, string(body))
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))

	req = httptest.NewRequest(http.MethodGet, "/api/products", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var products []models.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
	assert.Equal(t, models.DefaultCatalog(), products)
}

func TestNewApp_CORS(t *testing.T) {
	app := NewApp(newTestConfig(t, nil), nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set(fiber.HeaderOrigin, "http://localhost:3000")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}

func TestNewApp_DiagnosticsReadConfig(t *testing.T) {
	cfg := newTestConfig(t, map[string]string{
		config.KeyDatabaseURL:  "memory://",
		config.KeyDatabaseName: "packaging",
	})
	app := NewApp(cfg, repositories.NewMockDocumentRepository("packaging"), nil)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var d models.Diagnostics
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&d))
	assert.Equal(t, models.BackendRunning, d.Backend)
	assert.Equal(t, models.DatabaseWorking, d.Database)
	assert.Equal(t, models.EnvSet, d.DatabaseURL)
	assert.Equal(t, models.EnvSet, d.DatabaseName)
}

func TestNewApp_OrderPublishesEvent(t *testing.T) {
	mockMQ := new(MockRabbitMQClient)
	mockMQ.On("PublishOrderCreated", mock.MatchedBy(func(e services.OrderCreatedEvent) bool {
		return e.Event == "order.created" && e.Order["sku"] == "BOX-25"
	})).Return(nil).Once()

	app := NewApp(newTestConfig(t, nil), repositories.NewMockDocumentRepository("packaging"), mockMQ)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"sku":"BOX-25","quantity":3}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out models.OrderResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.OrderPlacedMessage, out.Message)
	mockMQ.AssertExpectations(t)
}

func TestNewApp_PublishFailureKeepsOrder(t *testing.T) {
	mockMQ := new(MockRabbitMQClient)
	mockMQ.On("PublishOrderCreated", mock.Anything).Return(errors.New("channel closed"))

	repo := repositories.NewMockDocumentRepository("packaging")
	app := NewApp(newTestConfig(t, nil), repo, mockMQ)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"sku":"TAPE-6"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	orders, err := repo.GetDocuments(context.Background(), models.OrderCollection)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestNewApp_RecoversPanics(t *testing.T) {
	app := NewApp(newTestConfig(t, nil), nil, nil)
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"detail":"boom"}`, string(body))
}

func TestLogOrderEvent(t *testing.T) {
	assert.NoError(t, logOrderEvent(amqp.Delivery{Body: []byte(`{"event":"order.created","order_id":"abc"}`)}))
	assert.NoError(t, logOrderEvent(amqp.Delivery{Body: []byte(`not json`)}))
}
