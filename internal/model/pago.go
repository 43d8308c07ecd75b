package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PagoPendiente = "pending"
	PagoAprobado  = "approved"
	PagoRechazado = "rejected"
	// PagoExpirado is the terminal timeout state reached when the bounded
	// status poll exhausts its attempts without a gateway verdict.
	PagoExpirado = "expired"
)

// Pago is one checkout intent against the payment gateway.
// Referencia is a ULID: sortable by creation time and safe to expose.
type Pago struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Referencia   string          `gorm:"uniqueIndex;not null"`
	CondominioID uuid.UUID       `gorm:"type:uuid;index;not null"`
	UsuarioID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	Concepto     string          `gorm:"not null"`
	Monto        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Estado       string          `gorm:"type:varchar(20);not null;default:'pending'"`
	// GatewayID is the gateway's own identifier for the checkout session.
	GatewayID    string
	PollAttempts int `gorm:"not null;default:0"`
	ReciboPDF    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (p *Pago) Terminal() bool {
	return p.Estado == PagoAprobado || p.Estado == PagoRechazado || p.Estado == PagoExpirado
}
