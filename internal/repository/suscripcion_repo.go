package repository

import (
	"context"

	"github.com/GenturixHub/Genturix-sub003/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SuscripcionRepository interface {
	Create(ctx context.Context, s *model.Suscripcion) error
	FindByCondominio(ctx context.Context, condominioID uuid.UUID) (*model.Suscripcion, error)
	Update(ctx context.Context, s *model.Suscripcion) error
}

type suscripcionRepo struct{ db *gorm.DB }

func NewSuscripcionRepository(db *gorm.DB) SuscripcionRepository { return &suscripcionRepo{db: db} }

func (r *suscripcionRepo) Create(ctx context.Context, s *model.Suscripcion) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *suscripcionRepo) FindByCondominio(ctx context.Context, condominioID uuid.UUID) (*model.Suscripcion, error) {
	var s model.Suscripcion
	err := r.db.WithContext(ctx).Where("condominio_id = ?", condominioID).First(&s).Error
	return &s, err
}

func (r *suscripcionRepo) Update(ctx context.Context, s *model.Suscripcion) error {
	return r.db.WithContext(ctx).Save(s).Error
}
