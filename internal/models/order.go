package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// OrderStatus tracks the checkout lifecycle of a program purchase.
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "PENDING"
	OrderStatusPaid    OrderStatus = "PAID"
	OrderStatusFailed  OrderStatus = "FAILED"
)

// Order records one program purchase. The generation request is stored as
// JSON so the paid webhook can run generation without the client resending it.
type Order struct {
	ID          string         `db:"id" json:"id"`
	Email       string         `db:"email" json:"email"`
	StudentName string         `db:"student_name" json:"student_name"`
	ExamType    string         `db:"exam_type" json:"exam_type"`
	AmountCents int64          `db:"amount_cents" json:"amount_cents"`
	Currency    string         `db:"currency" json:"currency"`
	Status      OrderStatus    `db:"status" json:"status"`
	ProviderRef string         `db:"provider_ref" json:"provider_ref"`
	ProgramID   *string        `db:"program_id" json:"program_id,omitempty"`
	Request     types.JSONText `db:"request" json:"-"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
	PaidAt      *time.Time     `db:"paid_at" json:"paid_at,omitempty"`
}
