package repository

import (
	"context"

	"github.com/GenturixHub/Genturix-sub003/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CursoRepository interface {
	CreateCurso(ctx context.Context, c *model.Curso) error
	FindCursoByID(ctx context.Context, id uuid.UUID) (*model.Curso, error)
	ListCursos(ctx context.Context, condominioID uuid.UUID) ([]model.Curso, error)
	CreateLeccion(ctx context.Context, l *model.Leccion) error
	ListLecciones(ctx context.Context, cursoID uuid.UUID) ([]model.Leccion, error)
	CreateInscripcion(ctx context.Context, i *model.Inscripcion) error
	FindInscripcion(ctx context.Context, cursoID, usuarioID uuid.UUID) (*model.Inscripcion, error)
	CompletarLeccion(ctx context.Context, c *model.LeccionCompletada) error
	ListCompletadas(ctx context.Context, inscripcionID uuid.UUID) ([]model.LeccionCompletada, error)
	CountLecciones(ctx context.Context, cursoID uuid.UUID) (int, error)
}

type cursoRepo struct{ db *gorm.DB }

func NewCursoRepository(db *gorm.DB) CursoRepository { return &cursoRepo{db: db} }

func (r *cursoRepo) CreateCurso(ctx context.Context, c *model.Curso) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cursoRepo) FindCursoByID(ctx context.Context, id uuid.UUID) (*model.Curso, error) {
	var c model.Curso
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *cursoRepo) ListCursos(ctx context.Context, condominioID uuid.UUID) ([]model.Curso, error) {
	var cursos []model.Curso
	err := r.db.WithContext(ctx).
		Where("condominio_id = ? AND activo = true", condominioID).
		Order("created_at").
		Find(&cursos).Error
	return cursos, err
}

func (r *cursoRepo) CreateLeccion(ctx context.Context, l *model.Leccion) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *cursoRepo) ListLecciones(ctx context.Context, cursoID uuid.UUID) ([]model.Leccion, error) {
	var lecciones []model.Leccion
	err := r.db.WithContext(ctx).
		Where("curso_id = ?", cursoID).
		Order("orden").
		Find(&lecciones).Error
	return lecciones, err
}

func (r *cursoRepo) CreateInscripcion(ctx context.Context, i *model.Inscripcion) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *cursoRepo) FindInscripcion(ctx context.Context, cursoID, usuarioID uuid.UUID) (*model.Inscripcion, error) {
	var i model.Inscripcion
	err := r.db.WithContext(ctx).
		Where("curso_id = ? AND usuario_id = ?", cursoID, usuarioID).
		First(&i).Error
	return &i, err
}

func (r *cursoRepo) CompletarLeccion(ctx context.Context, c *model.LeccionCompletada) error {
	// Idempotent: completing an already-completed lesson is a no-op.
	return r.db.WithContext(ctx).
		Where("inscripcion_id = ? AND leccion_id = ?", c.InscripcionID, c.LeccionID).
		FirstOrCreate(c).Error
}

func (r *cursoRepo) ListCompletadas(ctx context.Context, inscripcionID uuid.UUID) ([]model.LeccionCompletada, error) {
	var done []model.LeccionCompletada
	err := r.db.WithContext(ctx).
		Where("inscripcion_id = ?", inscripcionID).
		Find(&done).Error
	return done, err
}

func (r *cursoRepo) CountLecciones(ctx context.Context, cursoID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Leccion{}).
		Where("curso_id = ?", cursoID).
		Count(&count).Error
	return int(count), err
}
