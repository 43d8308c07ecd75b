package model

import (
	"time"

	"github.com/google/uuid"
)

// Notificacion is one inbox row. Marking read is idempotent: ReadAt is set
// once and later marks are no-ops, which makes the client's optimistic
// local update safe to reconcile.
type Notificacion struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID uuid.UUID `gorm:"type:uuid;index;not null"`
	Titulo    string    `gorm:"not null"`
	Cuerpo    string
	ReadAt    *time.Time
	CreatedAt time.Time
}

func (n *Notificacion) Leida() bool { return n.ReadAt != nil }
