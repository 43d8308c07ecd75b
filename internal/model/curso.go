package model

import (
	"time"

	"github.com/google/uuid"
)

// Curso is a learning-module course scoped to one tenant.
type Curso struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CondominioID uuid.UUID `gorm:"type:uuid;index;not null"`
	Titulo       string    `gorm:"not null"`
	Descripcion  string
	Activo       bool `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Leccion is one ordered lesson inside a course.
type Leccion struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CursoID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Titulo    string    `gorm:"not null"`
	Contenido string
	Orden     int `gorm:"not null"`
	CreatedAt time.Time
}

// Inscripcion enrolls a user in a course.
type Inscripcion struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CursoID   uuid.UUID `gorm:"type:uuid;index:idx_inscripcion_curso_usuario,unique;not null"`
	UsuarioID uuid.UUID `gorm:"type:uuid;index:idx_inscripcion_curso_usuario,unique;not null"`
	CreatedAt time.Time
}

// LeccionCompletada marks one lesson done for one enrollment. Progress is
// derived as completed / total lessons, never stored.
type LeccionCompletada struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InscripcionID uuid.UUID `gorm:"type:uuid;index:idx_completada_inscripcion_leccion,unique;not null"`
	LeccionID     uuid.UUID `gorm:"type:uuid;index:idx_completada_inscripcion_leccion,unique;not null"`
	CreatedAt     time.Time
}
