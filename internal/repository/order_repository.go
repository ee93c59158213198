package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/brightprep/studycal-api/internal/models"
	appErrors "github.com/brightprep/studycal-api/pkg/errors"
)

// OrderRepository persists checkout orders.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository constructs the repository.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, email, student_name, exam_type, amount_cents, currency, status, provider_ref, program_id, request, created_at, updated_at, paid_at`

// Create inserts a new order row with generated defaults.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	now := time.Now().UTC()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now

	const query = `INSERT INTO orders (id, email, student_name, exam_type, amount_cents, currency, status, provider_ref, program_id, request, created_at, updated_at, paid_at)
VALUES (:id, :email, :student_name, :exam_type, :amount_cents, :currency, :status, :provider_ref, :program_id, :request, :created_at, :updated_at, :paid_at)`
	if _, err := r.db.NamedExecContext(ctx, query, order); err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// GetByID returns an order row by its identifier.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)
	var order models.Order
	if err := r.db.GetContext(ctx, &order, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &order, nil
}

// MarkPaid transitions a pending order to PAID and records the provider ref.
// Returns ErrConflict when the order is not pending, which keeps webhook
// retries idempotent.
func (r *OrderRepository) MarkPaid(ctx context.Context, id, providerRef string) error {
	const query = `UPDATE orders
SET status = $1, provider_ref = $2, paid_at = $3, updated_at = $3
WHERE id = $4 AND status = $5`
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query, models.OrderStatusPaid, providerRef, now, id, models.OrderStatusPending)
	if err != nil {
		return fmt.Errorf("mark order paid: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark order paid: %w", err)
	}
	if affected == 0 {
		return appErrors.ErrConflict
	}
	return nil
}

// MarkFailed transitions a pending order to FAILED.
func (r *OrderRepository) MarkFailed(ctx context.Context, id, providerRef string) error {
	const query = `UPDATE orders
SET status = $1, provider_ref = $2, updated_at = $3
WHERE id = $4 AND status = $5`
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query, models.OrderStatusFailed, providerRef, now, id, models.OrderStatusPending)
	if err != nil {
		return fmt.Errorf("mark order failed: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark order failed: %w", err)
	}
	if affected == 0 {
		return appErrors.ErrConflict
	}
	return nil
}

// AttachProgram links the generated program id to a paid order.
func (r *OrderRepository) AttachProgram(ctx context.Context, id, programID string) error {
	const query = `UPDATE orders SET program_id = $1, updated_at = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, programID, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("attach program to order: %w", err)
	}
	return nil
}
