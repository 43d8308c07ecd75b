package model

import (
	"time"

	"github.com/google/uuid"
)

// User status is a tri-state lifecycle controlled by the backend only.
const (
	EstadoActivo     = "active"
	EstadoBloqueado  = "blocked"
	EstadoSuspendido = "suspended"
)

// Usuario stores platform users with role-based access.
// Roles is a non-empty ordered tag set; the first element is the display
// "primary role". Access decisions never depend on order.
// Blocked users keep consuming a seat; suspended users release theirs.
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre       string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Roles        []string  `gorm:"type:jsonb;serializer:json;not null"`
	Estado       string    `gorm:"type:varchar(20);not null;default:'active'"`
	// PasswordResetRequired forces the login surface until the user completes
	// a password change; all other routes are denied while set.
	PasswordResetRequired bool `gorm:"not null;default:false"`
	// CondominioID is nil for SuperAdmin accounts (platform-wide scope).
	CondominioID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *Usuario) Activo() bool { return u.Estado == EstadoActivo }

// OcupaAsiento reports whether the user counts against the tenant's seats.
func (u *Usuario) OcupaAsiento() bool {
	return u.Estado == EstadoActivo || u.Estado == EstadoBloqueado
}
