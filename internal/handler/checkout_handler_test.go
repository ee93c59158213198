package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightprep/studycal-api/internal/dto"
	"github.com/brightprep/studycal-api/internal/models"
	appErrors "github.com/brightprep/studycal-api/pkg/errors"
)

type checkoutServiceMock struct {
	order      *dto.OrderResponse
	program    *models.StudyProgram
	programErr error
	createErr  error
	webhookErr error
	webhooks   []dto.PaymentWebhookRequest
}

func (m *checkoutServiceMock) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.order, nil
}

func (m *checkoutServiceMock) GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	if m.order == nil {
		return nil, appErrors.ErrNotFound
	}
	return m.order, nil
}

func (m *checkoutServiceMock) GetOrderProgram(ctx context.Context, id string) (*models.StudyProgram, error) {
	if m.programErr != nil {
		return nil, m.programErr
	}
	if m.program == nil {
		return nil, appErrors.ErrNotFound
	}
	return m.program, nil
}

func (m *checkoutServiceMock) HandleWebhook(ctx context.Context, req dto.PaymentWebhookRequest) error {
	if m.webhookErr != nil {
		return m.webhookErr
	}
	m.webhooks = append(m.webhooks, req)
	return nil
}

func TestCheckoutHandlerCreateOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &checkoutServiceMock{order: &dto.OrderResponse{ID: "order-1", Status: models.OrderStatusPending, PaymentURL: "https://pay.example/1"}}
	handler := NewCheckoutHandler(mock)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(dto.CreateOrderRequest{Request: dto.GenerateProgramRequest{
		ExamType: "YKS", ExamDate: "2026-06-20", StudentName: "Ada", Email: "ada@example.com",
	}})
	req, _ := http.NewRequest(http.MethodPost, "/checkout/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.CreateOrder(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "https://pay.example/1")
}

func TestCheckoutHandlerCreateOrderInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCheckoutHandler(&checkoutServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/checkout/orders", bytes.NewReader([]byte(`{`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.CreateOrder(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutHandlerGetOrderNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCheckoutHandler(&checkoutServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/checkout/orders/missing", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.GetOrder(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckoutHandlerGetOrderProgramUnpaid(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCheckoutHandler(&checkoutServiceMock{programErr: appErrors.ErrPaymentRequired})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/checkout/orders/order-1/program", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "order-1"}}

	handler.GetOrderProgram(c)
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
}

func TestCheckoutHandlerGetOrderProgramPaid(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCheckoutHandler(&checkoutServiceMock{program: &models.StudyProgram{ID: "prog-1", ExamType: "YKS"}})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/checkout/orders/order-1/program", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "order-1"}}

	handler.GetOrderProgram(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "prog-1")
}

func TestCheckoutHandlerWebhook(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &checkoutServiceMock{}
	handler := NewCheckoutHandler(mock)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(dto.PaymentWebhookRequest{OrderID: "order-1", Status: "succeeded", Signature: "sig"})
	req, _ := http.NewRequest(http.MethodPost, "/checkout/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Webhook(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, mock.webhooks, 1)
	assert.Equal(t, "order-1", mock.webhooks[0].OrderID)
}

func TestCheckoutHandlerWebhookBadSignature(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCheckoutHandler(&checkoutServiceMock{webhookErr: appErrors.Clone(appErrors.ErrUnauthorized, "invalid webhook signature")})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(dto.PaymentWebhookRequest{OrderID: "order-1", Status: "succeeded", Signature: "forged"})
	req, _ := http.NewRequest(http.MethodPost, "/checkout/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Webhook(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
