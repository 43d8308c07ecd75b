package dto

import "github.com/shopspring/decimal"

type PreviewResponse struct {
	Seats           int             `json:"seats"`
	Cycle           string          `json:"cycle"`
	PricePerSeat    decimal.Decimal `json:"price_per_seat"`
	MonthlyAmount   decimal.Decimal `json:"monthly_amount"`
	EffectiveAmount decimal.Decimal `json:"effective_amount"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Savings         decimal.Decimal `json:"savings"`
	Source          string          `json:"source"` // engine | fallback
}

type ActualizarSuscripcionRequest struct {
	Seats int    `json:"seats" validate:"required,min=1,max=10000"`
	Cycle string `json:"cycle" validate:"required,oneof=monthly yearly"`
}

type SuscripcionResponse struct {
	Seats           int               `json:"seats"`
	Cycle           string            `json:"cycle"`
	PricePerSeat    decimal.Decimal   `json:"price_per_seat"`
	MonthlyAmount   decimal.Decimal   `json:"monthly_amount"`
	EffectiveAmount decimal.Decimal   `json:"effective_amount"`
	DiscountPercent decimal.Decimal   `json:"discount_percent"`
	Usage           SeatUsageResponse `json:"usage"`
}
