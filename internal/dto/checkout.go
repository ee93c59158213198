package dto

import (
	"time"

	"github.com/brightprep/studycal-api/internal/models"
)

// CreateOrderRequest captures POST /checkout/orders payload. The embedded
// generation request is stored with the order and executed once payment
// confirmation arrives.
type CreateOrderRequest struct {
	Request GenerateProgramRequest `json:"request" validate:"required"`
}

// OrderResponse is returned after order creation and on status reads.
type OrderResponse struct {
	ID          string             `json:"id"`
	Status      models.OrderStatus `json:"status"`
	AmountCents int64              `json:"amountCents"`
	Currency    string             `json:"currency"`
	PaymentURL  string             `json:"paymentUrl,omitempty"`
	ProgramID   *string            `json:"programId,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// PaymentWebhookRequest is the payment provider's callback payload.
type PaymentWebhookRequest struct {
	OrderID    string `json:"orderId" validate:"required"`
	ProviderID string `json:"providerId"`
	Status     string `json:"status" validate:"required,oneof=succeeded failed"`
	Signature  string `json:"signature" validate:"required"`
}
