package model

import (
	"time"

	"github.com/google/uuid"
)

// Area is a reservable common area of a condominium.
type Area struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CondominioID uuid.UUID `gorm:"type:uuid;index;not null"`
	Nombre       string    `gorm:"not null"`
	Capacidad    int       `gorm:"not null"`
	// Opening hours as minutes since midnight; 0/1440 means all day.
	AbreMin   int  `gorm:"not null;default:480"`
	CierraMin int  `gorm:"not null;default:1320"`
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
