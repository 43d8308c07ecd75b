package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Suscripcion holds the seat plan of a tenant. Price fields snapshot the
// last authoritative computation from the pricing engine; they are refreshed
// whenever seats or cycle change, never edited by hand.
type Suscripcion struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CondominioID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	Seats int    `gorm:"not null"`
	Cycle string `gorm:"type:varchar(10);not null"` // monthly | yearly

	PricePerSeat    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	MonthlyAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	EffectiveAmount decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DiscountPercent decimal.Decimal `gorm:"type:numeric(5,2);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
