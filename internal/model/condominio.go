package model

import (
	"time"

	"github.com/google/uuid"
)

// Condominio is one tenant. Module toggles are snapshotted at onboarding and
// editable afterwards; Usuarios is mandatory and always true.
type Condominio struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	Direccion string    `gorm:"not null"`
	Telefono  string

	ModuloUsuarios    bool `gorm:"not null;default:true"`
	ModuloReservas    bool `gorm:"not null;default:false"`
	ModuloAprendizaje bool `gorm:"not null;default:false"`
	ModuloPagos       bool `gorm:"not null;default:false"`

	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
