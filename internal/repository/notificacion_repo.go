package repository

import (
	"context"
	"time"

	"github.com/GenturixHub/Genturix-sub003/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificacionRepository interface {
	Create(ctx context.Context, n *model.Notificacion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Notificacion, error)
	ListByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.Notificacion, error)
	CountNoLeidas(ctx context.Context, usuarioID uuid.UUID) (int, error)
	// MarkRead sets read_at once; rows already read are untouched, which
	// keeps the operation idempotent for optimistic clients.
	MarkRead(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkAllRead(ctx context.Context, usuarioID uuid.UUID, at time.Time) error
}

type notificacionRepo struct{ db *gorm.DB }

func NewNotificacionRepository(db *gorm.DB) NotificacionRepository {
	return &notificacionRepo{db: db}
}

func (r *notificacionRepo) Create(ctx context.Context, n *model.Notificacion) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificacionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Notificacion, error) {
	var n model.Notificacion
	err := r.db.WithContext(ctx).First(&n, id).Error
	return &n, err
}

func (r *notificacionRepo) ListByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.Notificacion, error) {
	var ns []model.Notificacion
	err := r.db.WithContext(ctx).
		Where("usuario_id = ?", usuarioID).
		Order("created_at DESC").
		Limit(100).
		Find(&ns).Error
	return ns, err
}

func (r *notificacionRepo) CountNoLeidas(ctx context.Context, usuarioID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Notificacion{}).
		Where("usuario_id = ? AND read_at IS NULL", usuarioID).
		Count(&count).Error
	return int(count), err
}

func (r *notificacionRepo) MarkRead(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Notificacion{}).
		Where("id = ? AND read_at IS NULL", id).
		Update("read_at", at).Error
}

func (r *notificacionRepo) MarkAllRead(ctx context.Context, usuarioID uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Notificacion{}).
		Where("usuario_id = ? AND read_at IS NULL", usuarioID).
		Update("read_at", at).Error
}
