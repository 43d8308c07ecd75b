package service

import (
	"context"
	"errors"
	"time"

	"github.com/GenturixHub/Genturix-sub003/internal/dto"
	"github.com/GenturixHub/Genturix-sub003/internal/model"
	"github.com/GenturixHub/Genturix-sub003/internal/repository"

	"github.com/google/uuid"
)

type NotificacionService interface {
	Listar(ctx context.Context, usuarioID uuid.UUID) (*dto.NotificacionListResponse, error)
	// MarcarLeida is idempotent: the client marks read optimistically and
	// reconciles with this call; re-marking an already-read row is a no-op.
	MarcarLeida(ctx context.Context, usuarioID, id uuid.UUID) error
	MarcarTodasLeidas(ctx context.Context, usuarioID uuid.UUID) error
	Notificar(ctx context.Context, usuarioID uuid.UUID, titulo, cuerpo string) error
}

type notificacionService struct {
	repo repository.NotificacionRepository
}

func NewNotificacionService(repo repository.NotificacionRepository) NotificacionService {
	return &notificacionService{repo: repo}
}

func (s *notificacionService) Listar(ctx context.Context, usuarioID uuid.UUID) (*dto.NotificacionListResponse, error) {
	ns, err := s.repo.ListByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	noLeidas, err := s.repo.CountNoLeidas(ctx, usuarioID)
	if err != nil {
		return nil, err
	}

	resp := &dto.NotificacionListResponse{
		Notificaciones: make([]dto.NotificacionResponse, len(ns)),
		NoLeidas:       noLeidas,
	}
	for i, n := range ns {
		var readAt *string
		if n.ReadAt != nil {
			s := n.ReadAt.UTC().Format(time.RFC3339)
			readAt = &s
		}
		resp.Notificaciones[i] = dto.NotificacionResponse{
			ID:        n.ID.String(),
			Titulo:    n.Titulo,
			Cuerpo:    n.Cuerpo,
			ReadAt:    readAt,
			CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
		}
	}
	return resp, nil
}

func (s *notificacionService) MarcarLeida(ctx context.Context, usuarioID, id uuid.UUID) error {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("notificacion no encontrada")
	}
	// Users only mark their own rows; an optimistic client that got this
	// wrong rolls back its local projection on this error.
	if n.UsuarioID != usuarioID {
		return errors.New("notificacion no encontrada")
	}
	if n.Leida() {
		return nil
	}
	return s.repo.MarkRead(ctx, id, time.Now().UTC())
}

func (s *notificacionService) MarcarTodasLeidas(ctx context.Context, usuarioID uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, usuarioID, time.Now().UTC())
}

func (s *notificacionService) Notificar(ctx context.Context, usuarioID uuid.UUID, titulo, cuerpo string) error {
	return s.repo.Create(ctx, &model.Notificacion{
		UsuarioID: usuarioID,
		Titulo:    titulo,
		Cuerpo:    cuerpo,
	})
}
