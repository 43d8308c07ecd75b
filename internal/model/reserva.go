package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ReservaPendiente  = "pending"
	ReservaConfirmada = "confirmed"
	ReservaCancelada  = "cancelled"
)

// Reserva is one booking of a common area. Confirmed reservations for the
// same area must not overlap in time.
type Reserva struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AreaID    uuid.UUID `gorm:"type:uuid;index;not null"`
	UsuarioID uuid.UUID `gorm:"type:uuid;index;not null"`
	Fecha     time.Time `gorm:"type:date;not null"`
	// Slot bounds as minutes since midnight, [InicioMin, FinMin).
	InicioMin int    `gorm:"not null"`
	FinMin    int    `gorm:"not null"`
	Estado    string `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
