package infra

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// CheckoutRequest creates a hosted-checkout session at the payment gateway.
type CheckoutRequest struct {
	Reference   string `json:"reference"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	ReturnURL   string `json:"return_url"`
}

// CheckoutSession is the gateway's answer: where to redirect the payer.
type CheckoutSession struct {
	GatewayID   string `json:"id"`
	RedirectURL string `json:"redirect_url"`
}

// PaymentStatus is the gateway-side state of a checkout session.
type PaymentStatus struct {
	GatewayID string `json:"id"`
	Status    string `json:"status"` // pending | approved | rejected
}

// GatewayClient wraps the payment gateway's REST API.
type GatewayClient struct {
	client *resty.Client
}

func NewGatewayClient(baseURL, apiKey string) *GatewayClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetRetryCount(2)
	return &GatewayClient{client: c}
}

// CreateCheckout opens a hosted checkout session for a payment intent.
func (g *GatewayClient) CreateCheckout(ctx context.Context, ref, description, returnURL string, amount decimal.Decimal) (*CheckoutSession, error) {
	var session CheckoutSession
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(CheckoutRequest{
			Reference:   ref,
			Amount:      amount.StringFixed(2),
			Currency:    "USD",
			Description: description,
			ReturnURL:   returnURL,
		}).
		SetResult(&session).
		Post("/v1/checkouts")
	if err != nil {
		return nil, fmt.Errorf("gateway: create checkout: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("gateway: create checkout returned %d", resp.StatusCode())
	}
	return &session, nil
}

// GetStatus fetches the current state of a checkout session.
func (g *GatewayClient) GetStatus(ctx context.Context, gatewayID string) (*PaymentStatus, error) {
	var status PaymentStatus
	resp, err := g.client.R().
		SetContext(ctx).
		SetResult(&status).
		Get("/v1/checkouts/" + gatewayID)
	if err != nil {
		return nil, fmt.Errorf("gateway: get status: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("gateway: get status returned %d", resp.StatusCode())
	}
	return &status, nil
}
