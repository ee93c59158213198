package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/brightprep/studycal-api/internal/models"
	appErrors "github.com/brightprep/studycal-api/pkg/errors"
)

// HostedCheckoutGateway builds redirect URLs for a provider-hosted payment
// page. The order identity travels in the URL; settlement comes back through
// the webhook, so the gateway itself never touches card data.
type HostedCheckoutGateway struct {
	baseURL string
}

// NewHostedCheckoutGateway constructs a gateway pointing at the provider's
// hosted checkout base URL.
func NewHostedCheckoutGateway(baseURL string) *HostedCheckoutGateway {
	return &HostedCheckoutGateway{baseURL: strings.TrimRight(baseURL, "/")}
}

// CreatePaymentURL returns the hosted checkout page for the order.
func (g *HostedCheckoutGateway) CreatePaymentURL(_ context.Context, order *models.Order) (string, error) {
	if g.baseURL == "" {
		return "", appErrors.Clone(appErrors.ErrInternal, "payment gateway base URL is not configured")
	}
	if order == nil || order.ID == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "order is missing an identifier")
	}

	query := url.Values{}
	query.Set("amount", fmt.Sprintf("%d", order.AmountCents))
	query.Set("currency", order.Currency)

	return fmt.Sprintf("%s/pay/%s?%s", g.baseURL, url.PathEscape(order.ID), query.Encode()), nil
}
