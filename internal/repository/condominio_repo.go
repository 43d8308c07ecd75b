package repository

import (
	"context"

	"github.com/GenturixHub/Genturix-sub003/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CondominioRepository interface {
	Create(ctx context.Context, c *model.Condominio) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Condominio, error)
	List(ctx context.Context) ([]model.Condominio, error)
	Update(ctx context.Context, c *model.Condominio) error
	NombreExists(ctx context.Context, nombre string) (bool, error)
	// DB exposes the underlying handle so the onboarding service can create
	// tenant + admin + subscription + areas in one transaction.
	DB() *gorm.DB
}

type condominioRepo struct{ db *gorm.DB }

func NewCondominioRepository(db *gorm.DB) CondominioRepository { return &condominioRepo{db: db} }

func (r *condominioRepo) Create(ctx context.Context, c *model.Condominio) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *condominioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Condominio, error) {
	var c model.Condominio
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *condominioRepo) List(ctx context.Context) ([]model.Condominio, error) {
	var cs []model.Condominio
	err := r.db.WithContext(ctx).Order("created_at").Find(&cs).Error
	return cs, err
}

func (r *condominioRepo) Update(ctx context.Context, c *model.Condominio) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *condominioRepo) NombreExists(ctx context.Context, nombre string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Condominio{}).
		Where("LOWER(nombre) = LOWER(?)", nombre).
		Count(&count).Error
	return count > 0, err
}

func (r *condominioRepo) DB() *gorm.DB { return r.db }
