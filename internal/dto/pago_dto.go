package dto

import "github.com/shopspring/decimal"

type CheckoutRequest struct {
	Concepto string          `json:"concepto" validate:"required,min=2,max=200"`
	Monto    decimal.Decimal `json:"monto"    validate:"required,gt=0"`
}

type CheckoutResponse struct {
	Referencia  string `json:"referencia"`
	RedirectURL string `json:"redirect_url"`
	Estado      string `json:"estado"`
}

type PagoResponse struct {
	Referencia string          `json:"referencia"`
	Concepto   string          `json:"concepto"`
	Monto      decimal.Decimal `json:"monto"`
	Estado     string          `json:"estado"`
	CreatedAt  string          `json:"created_at"`
}

// GatewayWebhookRequest is the gateway's server-to-server notification.
type GatewayWebhookRequest struct {
	Reference string `json:"reference" validate:"required"`
	GatewayID string `json:"id"        validate:"required"`
	Status    string `json:"status"    validate:"required,oneof=pending approved rejected"`
}
