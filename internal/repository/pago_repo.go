package repository

import (
	"context"

	"github.com/GenturixHub/Genturix-sub003/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PagoRepository interface {
	Create(ctx context.Context, p *model.Pago) error
	FindByReferencia(ctx context.Context, ref string) (*model.Pago, error)
	Update(ctx context.Context, p *model.Pago) error
	ListByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.Pago, error)
	// ListPendientes returns pending intents for the poller, oldest first.
	ListPendientes(ctx context.Context, limit int) ([]model.Pago, error)
}

type pagoRepo struct{ db *gorm.DB }

func NewPagoRepository(db *gorm.DB) PagoRepository { return &pagoRepo{db: db} }

func (r *pagoRepo) Create(ctx context.Context, p *model.Pago) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pagoRepo) FindByReferencia(ctx context.Context, ref string) (*model.Pago, error) {
	var p model.Pago
	err := r.db.WithContext(ctx).Where("referencia = ?", ref).First(&p).Error
	return &p, err
}

func (r *pagoRepo) Update(ctx context.Context, p *model.Pago) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *pagoRepo) ListByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.Pago, error) {
	var pagos []model.Pago
	err := r.db.WithContext(ctx).
		Where("usuario_id = ?", usuarioID).
		Order("created_at DESC").
		Find(&pagos).Error
	return pagos, err
}

func (r *pagoRepo) ListPendientes(ctx context.Context, limit int) ([]model.Pago, error) {
	var pagos []model.Pago
	err := r.db.WithContext(ctx).
		Where("estado = ?", model.PagoPendiente).
		Order("created_at").
		Limit(limit).
		Find(&pagos).Error
	return pagos, err
}
