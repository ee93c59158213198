package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/brightprep/studycal-api/internal/dto"
	"github.com/brightprep/studycal-api/internal/models"
	appErrors "github.com/brightprep/studycal-api/pkg/errors"
)

type orderStore interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	MarkPaid(ctx context.Context, id, providerRef string) error
	MarkFailed(ctx context.Context, id, providerRef string) error
	AttachProgram(ctx context.Context, id, programID string) error
}

// PaymentGateway abstracts the payment provider. The production wiring talks
// to the provider's hosted checkout; tests inject a stub.
type PaymentGateway interface {
	CreatePaymentURL(ctx context.Context, order *models.Order) (string, error)
}

type programRunner interface {
	Generate(ctx context.Context, req dto.GenerateProgramRequest) (*models.StudyProgram, error)
	Get(ctx context.Context, id string) (*models.StudyProgram, error)
}

// CheckoutConfig carries pricing and webhook verification settings.
type CheckoutConfig struct {
	Currency      string
	PriceCents    int64
	WebhookSecret string
}

// CheckoutService sells program generations: it creates pending orders,
// verifies payment webhooks, and triggers generation once an order is paid.
type CheckoutService struct {
	orders   orderStore
	gateway  PaymentGateway
	programs programRunner
	logger   *zap.Logger
	cfg      CheckoutConfig
}

// NewCheckoutService constructs the checkout service.
func NewCheckoutService(orders orderStore, gateway PaymentGateway, programs programRunner, logger *zap.Logger, cfg CheckoutConfig) *CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Currency == "" {
		cfg.Currency = "TRY"
	}
	return &CheckoutService{
		orders:   orders,
		gateway:  gateway,
		programs: programs,
		logger:   logger,
		cfg:      cfg,
	}
}

// CreateOrder persists a pending order holding the generation request and
// returns the provider's payment URL.
func (s *CheckoutService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	payload, err := json.Marshal(req.Request)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode generation request")
	}

	order := &models.Order{
		Email:       req.Request.Email,
		StudentName: req.Request.StudentName,
		ExamType:    req.Request.ExamType,
		AmountCents: s.cfg.PriceCents,
		Currency:    s.cfg.Currency,
		Request:     payload,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create order")
	}

	paymentURL, err := s.gateway.CreatePaymentURL(ctx, order)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to initialise payment")
	}

	return &dto.OrderResponse{
		ID:          order.ID,
		Status:      order.Status,
		AmountCents: order.AmountCents,
		Currency:    order.Currency,
		PaymentURL:  paymentURL,
		CreatedAt:   order.CreatedAt,
	}, nil
}

// GetOrder exposes order status to the client polling after checkout.
func (s *CheckoutService) GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.OrderResponse{
		ID:          order.ID,
		Status:      order.Status,
		AmountCents: order.AmountCents,
		Currency:    order.Currency,
		ProgramID:   order.ProgramID,
		CreatedAt:   order.CreatedAt,
	}, nil
}

// GetOrderProgram returns the program bought through the order. Unpaid orders
// get a payment-required error so the buyer's polling client can keep waiting.
func (s *CheckoutService) GetOrderProgram(ctx context.Context, id string) (*models.StudyProgram, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPaid {
		return nil, appErrors.Clone(appErrors.ErrPaymentRequired, "order has not been paid yet")
	}
	if order.ProgramID == nil || *order.ProgramID == "" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "program is not ready yet")
	}
	return s.programs.Get(ctx, *order.ProgramID)
}

// HandleWebhook verifies the provider signature and settles the order. A
// succeeded payment triggers program generation from the stored request;
// duplicate webhooks hit the PENDING guard and return cleanly.
func (s *CheckoutService) HandleWebhook(ctx context.Context, req dto.PaymentWebhookRequest) error {
	if !s.verifySignature(req) {
		return appErrors.Clone(appErrors.ErrUnauthorized, "invalid webhook signature")
	}

	if req.Status != "succeeded" {
		if err := s.orders.MarkFailed(ctx, req.OrderID, req.ProviderID); err != nil {
			if appErrors.FromError(err).Code == appErrors.ErrConflict.Code {
				return nil
			}
			return err
		}
		return nil
	}

	if err := s.orders.MarkPaid(ctx, req.OrderID, req.ProviderID); err != nil {
		if appErrors.FromError(err).Code == appErrors.ErrConflict.Code {
			s.logger.Info("duplicate payment webhook ignored", zap.String("order_id", req.OrderID))
			return nil
		}
		return err
	}

	order, err := s.orders.GetByID(ctx, req.OrderID)
	if err != nil {
		return err
	}

	var genReq dto.GenerateProgramRequest
	if err := json.Unmarshal(order.Request, &genReq); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "stored generation request is corrupt")
	}

	program, err := s.programs.Generate(ctx, genReq)
	if err != nil {
		s.logger.Error("generation after payment failed",
			zap.String("order_id", order.ID),
			zap.Error(err),
		)
		return err
	}

	if err := s.orders.AttachProgram(ctx, order.ID, program.ID); err != nil {
		s.logger.Warn("failed to attach program to order",
			zap.String("order_id", order.ID),
			zap.String("program_id", program.ID),
			zap.Error(err),
		)
	}
	return nil
}

// verifySignature checks the HMAC the provider computes over orderId|status.
func (s *CheckoutService) verifySignature(req dto.PaymentWebhookRequest) bool {
	if s.cfg.WebhookSecret == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(s.cfg.WebhookSecret))
	mac.Write([]byte(req.OrderID + "|" + req.Status))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(req.Signature))
}
