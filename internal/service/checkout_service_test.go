package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightprep/studycal-api/internal/dto"
	"github.com/brightprep/studycal-api/internal/models"
	appErrors "github.com/brightprep/studycal-api/pkg/errors"
)

type orderStoreStub struct {
	orders map[string]*models.Order
}

func newOrderStoreStub() *orderStoreStub {
	return &orderStoreStub{orders: make(map[string]*models.Order)}
}

func (s *orderStoreStub) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = "order-1"
	}
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	s.orders[order.ID] = order
	return nil
}

func (s *orderStoreStub) GetByID(ctx context.Context, id string) (*models.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	return order, nil
}

func (s *orderStoreStub) MarkPaid(ctx context.Context, id, providerRef string) error {
	order, ok := s.orders[id]
	if !ok {
		return appErrors.ErrNotFound
	}
	if order.Status != models.OrderStatusPending {
		return appErrors.ErrConflict
	}
	order.Status = models.OrderStatusPaid
	order.ProviderRef = providerRef
	return nil
}

func (s *orderStoreStub) MarkFailed(ctx context.Context, id, providerRef string) error {
	order, ok := s.orders[id]
	if !ok {
		return appErrors.ErrNotFound
	}
	if order.Status != models.OrderStatusPending {
		return appErrors.ErrConflict
	}
	order.Status = models.OrderStatusFailed
	order.ProviderRef = providerRef
	return nil
}

func (s *orderStoreStub) AttachProgram(ctx context.Context, id, programID string) error {
	order, ok := s.orders[id]
	if !ok {
		return appErrors.ErrNotFound
	}
	order.ProgramID = &programID
	return nil
}

type gatewayStub struct {
	url string
	err error
}

func (g gatewayStub) CreatePaymentURL(ctx context.Context, order *models.Order) (string, error) {
	return g.url, g.err
}

type programRunnerStub struct {
	program *models.StudyProgram
	err     error
	calls   int
}

func (r *programRunnerStub) Generate(ctx context.Context, req dto.GenerateProgramRequest) (*models.StudyProgram, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.program, nil
}

func (r *programRunnerStub) Get(ctx context.Context, id string) (*models.StudyProgram, error) {
	if r.program == nil || r.program.ID != id {
		return nil, appErrors.ErrNotFound
	}
	return r.program, nil
}

const testWebhookSecret = "secret"

func signWebhook(orderID, status string) string {
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	mac.Write([]byte(orderID + "|" + status))
	return hex.EncodeToString(mac.Sum(nil))
}

func newTestCheckoutService(store *orderStoreStub, runner *programRunnerStub) *CheckoutService {
	return NewCheckoutService(store, gatewayStub{url: "https://pay.example/1"}, runner, nil, CheckoutConfig{
		Currency:      "TRY",
		PriceCents:    19900,
		WebhookSecret: testWebhookSecret,
	})
}

func TestCheckoutCreateOrder(t *testing.T) {
	store := newOrderStoreStub()
	svc := newTestCheckoutService(store, &programRunnerStub{})

	resp, err := svc.CreateOrder(context.Background(), dto.CreateOrderRequest{
		Request: dto.GenerateProgramRequest{
			ExamType:    "YKS",
			ExamDate:    "2026-06-20",
			StudentName: "Ada",
			Email:       "ada@example.com",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, resp.Status)
	assert.Equal(t, int64(19900), resp.AmountCents)
	assert.Equal(t, "https://pay.example/1", resp.PaymentURL)

	stored := store.orders[resp.ID]
	require.NotNil(t, stored)
	var genReq dto.GenerateProgramRequest
	require.NoError(t, json.Unmarshal(stored.Request, &genReq))
	assert.Equal(t, "ada@example.com", genReq.Email)
}

func TestCheckoutWebhookPaidTriggersGeneration(t *testing.T) {
	store := newOrderStoreStub()
	runner := &programRunnerStub{program: &models.StudyProgram{ID: "prog-1"}}
	svc := newTestCheckoutService(store, runner)

	resp, err := svc.CreateOrder(context.Background(), dto.CreateOrderRequest{
		Request: dto.GenerateProgramRequest{ExamType: "YKS", ExamDate: "2026-06-20", StudentName: "Ada", Email: "ada@example.com"},
	})
	require.NoError(t, err)

	err = svc.HandleWebhook(context.Background(), dto.PaymentWebhookRequest{
		OrderID:    resp.ID,
		ProviderID: "pay-1",
		Status:     "succeeded",
		Signature:  signWebhook(resp.ID, "succeeded"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, runner.calls)

	order := store.orders[resp.ID]
	assert.Equal(t, models.OrderStatusPaid, order.Status)
	require.NotNil(t, order.ProgramID)
	assert.Equal(t, "prog-1", *order.ProgramID)
}

func TestCheckoutWebhookDuplicateIsIdempotent(t *testing.T) {
	store := newOrderStoreStub()
	runner := &programRunnerStub{program: &models.StudyProgram{ID: "prog-1"}}
	svc := newTestCheckoutService(store, runner)

	resp, err := svc.CreateOrder(context.Background(), dto.CreateOrderRequest{
		Request: dto.GenerateProgramRequest{ExamType: "YKS", ExamDate: "2026-06-20", StudentName: "Ada", Email: "ada@example.com"},
	})
	require.NoError(t, err)

	webhook := dto.PaymentWebhookRequest{
		OrderID:    resp.ID,
		ProviderID: "pay-1",
		Status:     "succeeded",
		Signature:  signWebhook(resp.ID, "succeeded"),
	}
	require.NoError(t, svc.HandleWebhook(context.Background(), webhook))
	require.NoError(t, svc.HandleWebhook(context.Background(), webhook))
	assert.Equal(t, 1, runner.calls, "generation runs once")
}

func TestCheckoutGetOrderProgram(t *testing.T) {
	store := newOrderStoreStub()
	runner := &programRunnerStub{program: &models.StudyProgram{ID: "prog-1"}}
	svc := newTestCheckoutService(store, runner)

	resp, err := svc.CreateOrder(context.Background(), dto.CreateOrderRequest{
		Request: dto.GenerateProgramRequest{ExamType: "YKS", ExamDate: "2026-06-20", StudentName: "Ada", Email: "ada@example.com"},
	})
	require.NoError(t, err)

	_, err = svc.GetOrderProgram(context.Background(), resp.ID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPaymentRequired.Code, appErrors.FromError(err).Code)

	require.NoError(t, svc.HandleWebhook(context.Background(), dto.PaymentWebhookRequest{
		OrderID:    resp.ID,
		ProviderID: "pay-1",
		Status:     "succeeded",
		Signature:  signWebhook(resp.ID, "succeeded"),
	}))

	program, err := svc.GetOrderProgram(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "prog-1", program.ID)
}

func TestCheckoutWebhookRejectsBadSignature(t *testing.T) {
	store := newOrderStoreStub()
	svc := newTestCheckoutService(store, &programRunnerStub{})

	err := svc.HandleWebhook(context.Background(), dto.PaymentWebhookRequest{
		OrderID:   "order-1",
		Status:    "succeeded",
		Signature: "forged",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestCheckoutWebhookFailedPayment(t *testing.T) {
	store := newOrderStoreStub()
	runner := &programRunnerStub{}
	svc := newTestCheckoutService(store, runner)

	resp, err := svc.CreateOrder(context.Background(), dto.CreateOrderRequest{
		Request: dto.GenerateProgramRequest{ExamType: "YKS", ExamDate: "2026-06-20", StudentName: "Ada", Email: "ada@example.com"},
	})
	require.NoError(t, err)

	err = svc.HandleWebhook(context.Background(), dto.PaymentWebhookRequest{
		OrderID:   resp.ID,
		Status:    "failed",
		Signature: signWebhook(resp.ID, "failed"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusFailed, store.orders[resp.ID].Status)
	assert.Equal(t, 0, runner.calls)
}
