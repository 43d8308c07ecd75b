// Package billing computes subscription price previews and seat usage.
// The authoritative price always comes from the pricing engine; the local
// formula here is a documented approximation used only when the engine is
// unreachable.
package billing

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Cycle is the subscription billing cycle.
type Cycle string

const (
	CycleMonthly Cycle = "monthly"
	CycleYearly  Cycle = "yearly"
)

// ParseCycle validates a raw cycle string.
func ParseCycle(raw string) (Cycle, error) {
	switch Cycle(raw) {
	case CycleMonthly, CycleYearly:
		return Cycle(raw), nil
	default:
		return "", errors.New("ciclo de facturacion invalido: debe ser monthly o yearly")
	}
}

// Preview is the derived price projection for a (seats, cycle) pair.
// Never persisted as a source of truth; recomputed whenever inputs change.
type Preview struct {
	Seats           int             `json:"seats"`
	Cycle           Cycle           `json:"cycle"`
	PricePerSeat    decimal.Decimal `json:"price_per_seat"`
	MonthlyAmount   decimal.Decimal `json:"monthly_amount"`
	EffectiveAmount decimal.Decimal `json:"effective_amount"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Savings         decimal.Decimal `json:"savings"`
	// Source is "engine" when the pricing engine answered, "fallback" when
	// the local approximation was used.
	Source string `json:"source"`
}

// Local approximations of the engine's parameters. The engine value wins
// whenever reachable; these only keep the preview usable during an outage.
var (
	fallbackPricePerSeat = decimal.NewFromFloat(1.50)
	fallbackDiscountRate = decimal.NewFromFloat(0.15)
)

var twelve = decimal.NewFromInt(12)

// Fallback computes the preview with the local formula:
// monthly = seats × basePricePerSeat; yearly applies the discount rate to
// twelve months, monthly cycles pay the monthly amount as-is.
func Fallback(seats int, cycle Cycle) Preview {
	monthly := fallbackPricePerSeat.Mul(decimal.NewFromInt(int64(seats)))

	effective := monthly
	savings := decimal.Zero
	discount := decimal.Zero
	if cycle == CycleYearly {
		full := monthly.Mul(twelve)
		effective = full.Mul(decimal.NewFromInt(1).Sub(fallbackDiscountRate)).Round(2)
		savings = full.Sub(effective)
		discount = fallbackDiscountRate.Mul(decimal.NewFromInt(100))
	}

	return Preview{
		Seats:           seats,
		Cycle:           cycle,
		PricePerSeat:    fallbackPricePerSeat,
		MonthlyAmount:   monthly,
		EffectiveAmount: effective,
		DiscountPercent: discount,
		Savings:         savings,
		Source:          "fallback",
	}
}

// SeatUsage is the counter triple returned by every user-status mutation so
// the admin UI can refresh its seat meter without a second round trip.
type SeatUsage struct {
	SeatsTotal     int `json:"seats_total"`
	SeatsUsed      int `json:"seats_used"`
	SeatsAvailable int `json:"seats_available"`
}

func NewSeatUsage(total, used int) SeatUsage {
	avail := total - used
	if avail < 0 {
		avail = 0
	}
	return SeatUsage{SeatsTotal: total, SeatsUsed: used, SeatsAvailable: avail}
}
