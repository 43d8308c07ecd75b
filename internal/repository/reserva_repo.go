package repository

import (
	"context"
	"time"

	"github.com/GenturixHub/Genturix-sub003/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ─── Areas ───────────────────────────────────────────────────────────────────

type AreaRepository interface {
	Create(ctx context.Context, a *model.Area) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Area, error)
	ListByCondominio(ctx context.Context, condominioID uuid.UUID) ([]model.Area, error)
	Update(ctx context.Context, a *model.Area) error
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type areaRepo struct{ db *gorm.DB }

func NewAreaRepository(db *gorm.DB) AreaRepository { return &areaRepo{db: db} }

func (r *areaRepo) Create(ctx context.Context, a *model.Area) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *areaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Area, error) {
	var a model.Area
	err := r.db.WithContext(ctx).First(&a, id).Error
	return &a, err
}

func (r *areaRepo) ListByCondominio(ctx context.Context, condominioID uuid.UUID) ([]model.Area, error) {
	var areas []model.Area
	err := r.db.WithContext(ctx).
		Where("condominio_id = ? AND activo = true", condominioID).
		Order("nombre").
		Find(&areas).Error
	return areas, err
}

func (r *areaRepo) Update(ctx context.Context, a *model.Area) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *areaRepo) Desactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Area{}).
		Where("id = ?", id).Update("activo", false).Error
}

// ─── Reservas ────────────────────────────────────────────────────────────────

type ReservaRepository interface {
	Create(ctx context.Context, res *model.Reserva) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Reserva, error)
	ListByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.Reserva, error)
	// HasOverlap reports whether a confirmed reservation overlaps
	// [inicioMin, finMin) for the area on the given date.
	HasOverlap(ctx context.Context, areaID uuid.UUID, fecha time.Time, inicioMin, finMin int) (bool, error)
	UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error
}

type reservaRepo struct{ db *gorm.DB }

func NewReservaRepository(db *gorm.DB) ReservaRepository { return &reservaRepo{db: db} }

func (r *reservaRepo) Create(ctx context.Context, res *model.Reserva) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *reservaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Reserva, error) {
	var res model.Reserva
	err := r.db.WithContext(ctx).First(&res, id).Error
	return &res, err
}

func (r *reservaRepo) ListByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.Reserva, error) {
	var reservas []model.Reserva
	err := r.db.WithContext(ctx).
		Where("usuario_id = ?", usuarioID).
		Order("fecha DESC, inicio_min").
		Find(&reservas).Error
	return reservas, err
}

func (r *reservaRepo) HasOverlap(ctx context.Context, areaID uuid.UUID, fecha time.Time, inicioMin, finMin int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Reserva{}).
		Where("area_id = ? AND fecha = ? AND estado = ?", areaID, fecha, model.ReservaConfirmada).
		Where("inicio_min < ? AND fin_min > ?", finMin, inicioMin).
		Count(&count).Error
	return count > 0, err
}

func (r *reservaRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error {
	return r.db.WithContext(ctx).Model(&model.Reserva{}).
		Where("id = ?", id).Update("estado", estado).Error
}
