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

var (
	ErrModuloReservasInactivo = errors.New("el modulo de reservas no esta habilitado para este condominio")
	ErrHorarioOcupado         = errors.New("el horario seleccionado ya esta reservado")
)

type ReservaService interface {
	CrearArea(ctx context.Context, condominioID uuid.UUID, req dto.CrearAreaRequest) (*dto.AreaResponse, error)
	ListarAreas(ctx context.Context, condominioID uuid.UUID) ([]dto.AreaResponse, error)
	DesactivarArea(ctx context.Context, condominioID, areaID uuid.UUID) error
	CrearReserva(ctx context.Context, condominioID, usuarioID uuid.UUID, req dto.CrearReservaRequest) (*dto.ReservaResponse, error)
	ListarReservas(ctx context.Context, usuarioID uuid.UUID) ([]dto.ReservaResponse, error)
	Cancelar(ctx context.Context, usuarioID, reservaID uuid.UUID) error
}

type reservaService struct {
	areaRepo    repository.AreaRepository
	reservaRepo repository.ReservaRepository
	condoRepo   repository.CondominioRepository
}

func NewReservaService(areaRepo repository.AreaRepository, reservaRepo repository.ReservaRepository, condoRepo repository.CondominioRepository) ReservaService {
	return &reservaService{areaRepo: areaRepo, reservaRepo: reservaRepo, condoRepo: condoRepo}
}

func (s *reservaService) moduloHabilitado(ctx context.Context, condominioID uuid.UUID) error {
	condo, err := s.condoRepo.FindByID(ctx, condominioID)
	if err != nil {
		return errors.New("condominio no encontrado")
	}
	if !condo.ModuloReservas {
		return ErrModuloReservasInactivo
	}
	return nil
}

func (s *reservaService) CrearArea(ctx context.Context, condominioID uuid.UUID, req dto.CrearAreaRequest) (*dto.AreaResponse, error) {
	if err := s.moduloHabilitado(ctx, condominioID); err != nil {
		return nil, err
	}
	abre, cierra := req.AbreMin, req.CierraMin
	if abre == 0 && cierra == 0 {
		abre, cierra = 480, 1320
	}
	if cierra <= abre {
		return nil, errors.New("el horario de cierre debe ser posterior al de apertura")
	}
	area := &model.Area{
		CondominioID: condominioID,
		Nombre:       req.Nombre,
		Capacidad:    req.Capacidad,
		AbreMin:      abre,
		CierraMin:    cierra,
		Activo:       true,
	}
	if err := s.areaRepo.Create(ctx, area); err != nil {
		return nil, err
	}
	return areaToResponse(area), nil
}

func (s *reservaService) ListarAreas(ctx context.Context, condominioID uuid.UUID) ([]dto.AreaResponse, error) {
	areas, err := s.areaRepo.ListByCondominio(ctx, condominioID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AreaResponse, 0, len(areas))
	for i := range areas {
		out = append(out, *areaToResponse(&areas[i]))
	}
	return out, nil
}

func (s *reservaService) DesactivarArea(ctx context.Context, condominioID, areaID uuid.UUID) error {
	area, err := s.areaRepo.FindByID(ctx, areaID)
	if err != nil {
		return errors.New("area no encontrada")
	}
	if area.CondominioID != condominioID {
		return errors.New("area no encontrada")
	}
	return s.areaRepo.Desactivar(ctx, areaID)
}

func (s *reservaService) CrearReserva(ctx context.Context, condominioID, usuarioID uuid.UUID, req dto.CrearReservaRequest) (*dto.ReservaResponse, error) {
	if err := s.moduloHabilitado(ctx, condominioID); err != nil {
		return nil, err
	}
	areaID, err := uuid.Parse(req.AreaID)
	if err != nil {
		return nil, errors.New("area invalida")
	}
	area, err := s.areaRepo.FindByID(ctx, areaID)
	if err != nil || area.CondominioID != condominioID {
		return nil, errors.New("area no encontrada")
	}
	if !area.Activo {
		return nil, errors.New("el area no esta disponible")
	}
	if req.FinMin <= req.InicioMin {
		return nil, errors.New("el fin debe ser posterior al inicio")
	}
	if req.InicioMin < area.AbreMin || req.FinMin > area.CierraMin {
		return nil, errors.New("la reserva esta fuera del horario del area")
	}
	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return nil, errors.New("fecha invalida")
	}

	// Overlap is checked against confirmed reservations only; a clash is a
	// hard rejection, never a silent downgrade to pending.
	taken, err := s.reservaRepo.HasOverlap(ctx, areaID, fecha, req.InicioMin, req.FinMin)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrHorarioOcupado
	}

	res := &model.Reserva{
		AreaID:    areaID,
		UsuarioID: usuarioID,
		Fecha:     fecha,
		InicioMin: req.InicioMin,
		FinMin:    req.FinMin,
		Estado:    model.ReservaConfirmada,
	}
	if err := s.reservaRepo.Create(ctx, res); err != nil {
		return nil, err
	}
	return reservaToResponse(res), nil
}

func (s *reservaService) ListarReservas(ctx context.Context, usuarioID uuid.UUID) ([]dto.ReservaResponse, error) {
	reservas, err := s.reservaRepo.ListByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReservaResponse, 0, len(reservas))
	for i := range reservas {
		out = append(out, *reservaToResponse(&reservas[i]))
	}
	return out, nil
}

func (s *reservaService) Cancelar(ctx context.Context, usuarioID, reservaID uuid.UUID) error {
	res, err := s.reservaRepo.FindByID(ctx, reservaID)
	if err != nil {
		return errors.New("reserva no encontrada")
	}
	if res.UsuarioID != usuarioID {
		return errors.New("reserva no encontrada")
	}
	if res.Estado == model.ReservaCancelada {
		return nil
	}
	return s.reservaRepo.UpdateEstado(ctx, reservaID, model.ReservaCancelada)
}

func areaToResponse(a *model.Area) *dto.AreaResponse {
	return &dto.AreaResponse{
		ID:        a.ID.String(),
		Nombre:    a.Nombre,
		Capacidad: a.Capacidad,
		AbreMin:   a.AbreMin,
		CierraMin: a.CierraMin,
		Activo:    a.Activo,
	}
}

func reservaToResponse(r *model.Reserva) *dto.ReservaResponse {
	return &dto.ReservaResponse{
		ID:        r.ID.String(),
		AreaID:    r.AreaID.String(),
		UsuarioID: r.UsuarioID.String(),
		Fecha:     r.Fecha.Format("2006-01-02"),
		InicioMin: r.InicioMin,
		FinMin:    r.FinMin,
		Estado:    r.Estado,
	}
}
