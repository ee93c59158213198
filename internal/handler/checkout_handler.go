package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightprep/studycal-api/internal/dto"
	"github.com/brightprep/studycal-api/internal/models"
	appErrors "github.com/brightprep/studycal-api/pkg/errors"
	"github.com/brightprep/studycal-api/pkg/response"
)

type checkoutService interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error)
	GetOrderProgram(ctx context.Context, id string) (*models.StudyProgram, error)
	HandleWebhook(ctx context.Context, req dto.PaymentWebhookRequest) error
}

// CheckoutHandler exposes the paid checkout flow.
type CheckoutHandler struct {
	service checkoutService
}

// NewCheckoutHandler builds the handler.
func NewCheckoutHandler(service checkoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// CreateOrder godoc
// @Summary Create a checkout order
// @Tags Checkout
// @Accept json
// @Produce json
// @Param payload body dto.CreateOrderRequest true "Order payload"
// @Success 201 {object} response.Envelope
// @Router /checkout/orders [post]
func (h *CheckoutHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid order payload"))
		return
	}
	order, err := h.service.CreateOrder(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, order)
}

// GetOrder godoc
// @Summary Get order status
// @Tags Checkout
// @Produce json
// @Param id path string true "Order id"
// @Success 200 {object} response.Envelope
// @Router /checkout/orders/{id} [get]
func (h *CheckoutHandler) GetOrder(c *gin.Context) {
	order, err := h.service.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, order, nil)
}

// GetOrderProgram godoc
// @Summary Get the program purchased through an order
// @Tags Checkout
// @Produce json
// @Param id path string true "Order id"
// @Success 200 {object} response.Envelope
// @Failure 402 {object} response.Envelope
// @Router /checkout/orders/{id}/program [get]
func (h *CheckoutHandler) GetOrderProgram(c *gin.Context) {
	program, err := h.service.GetOrderProgram(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.ProgramResponse{Program: program}, nil)
}

// Webhook godoc
// @Summary Payment provider webhook
// @Tags Checkout
// @Accept json
// @Success 200 {object} response.Envelope
// @Router /checkout/webhook [post]
func (h *CheckoutHandler) Webhook(c *gin.Context) {
	var req dto.PaymentWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid webhook payload"))
		return
	}
	if err := h.service.HandleWebhook(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"received": true}, nil)
}
