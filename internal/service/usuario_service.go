package service

import (
	"context"
	"errors"

	"github.com/GenturixHub/Genturix-sub003/internal/access"
	"github.com/GenturixHub/Genturix-sub003/internal/alerts"
	"github.com/GenturixHub/Genturix-sub003/internal/billing"
	"github.com/GenturixHub/Genturix-sub003/internal/dto"
	"github.com/GenturixHub/Genturix-sub003/internal/model"
	"github.com/GenturixHub/Genturix-sub003/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrSinAsientos is returned when creating or reactivating a user would
// exceed the tenant's subscribed seats.
var ErrSinAsientos = errors.New("no hay asientos disponibles: amplie su suscripcion")

// UsuarioService manages tenant users and seat accounting. Every status
// mutation returns the refreshed seat counters. All per-user operations are
// scoped to the caller's condominio: a target outside it reads as not found.
type UsuarioService interface {
	Crear(ctx context.Context, condominioID uuid.UUID, req dto.CrearUsuarioRequest) (*dto.UsuarioSeatResponse, error)
	Listar(ctx context.Context, condominioID uuid.UUID) (*dto.UsuarioListResponse, error)
	Actualizar(ctx context.Context, condominioID, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	Bloquear(ctx context.Context, condominioID, id uuid.UUID) (*dto.UsuarioSeatResponse, error)
	Suspender(ctx context.Context, condominioID, id uuid.UUID) (*dto.UsuarioSeatResponse, error)
	Reactivar(ctx context.Context, condominioID, id uuid.UUID) (*dto.UsuarioSeatResponse, error)
	Eliminar(ctx context.Context, condominioID, id uuid.UUID) (*dto.SeatUsageResponse, error)
}

type usuarioService struct {
	repo          repository.UsuarioRepository
	susRepo       repository.SuscripcionRepository
	notifier      NotificacionService
	capacityAlert *alerts.Service
}

func NewUsuarioService(repo repository.UsuarioRepository, susRepo repository.SuscripcionRepository, notifier NotificacionService, capacityAlert *alerts.Service) UsuarioService {
	return &usuarioService{repo: repo, susRepo: susRepo, notifier: notifier, capacityAlert: capacityAlert}
}

func (s *usuarioService) seatUsage(ctx context.Context, condominioID uuid.UUID) (dto.SeatUsageResponse, error) {
	sus, err := s.susRepo.FindByCondominio(ctx, condominioID)
	if err != nil {
		return dto.SeatUsageResponse{}, errors.New("suscripcion no encontrada")
	}
	used, err := s.repo.CountSeats(ctx, condominioID)
	if err != nil {
		return dto.SeatUsageResponse{}, err
	}
	u := billing.NewSeatUsage(sus.Seats, used)
	return dto.SeatUsageResponse{
		SeatsTotal:     u.SeatsTotal,
		SeatsUsed:      u.SeatsUsed,
		SeatsAvailable: u.SeatsAvailable,
	}, nil
}

// alertCapacity keeps the seat-capacity alarm in sync with the counters: it
// fires while the plan is full and clears as soon as a seat frees up.
func (s *usuarioService) alertCapacity(usage dto.SeatUsageResponse) {
	if s.capacityAlert == nil {
		return
	}
	if usage.SeatsAvailable == 0 {
		s.capacityAlert.Start()
	} else {
		s.capacityAlert.Stop()
	}
}

// findEnCondominio resolves a target user inside the caller's tenant.
// Platform accounts and users of other condominios read as not found, never
// as forbidden, so the response does not leak their existence.
func (s *usuarioService) findEnCondominio(ctx context.Context, condominioID, id uuid.UUID) (*model.Usuario, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("usuario no encontrado")
	}
	if user.CondominioID == nil || *user.CondominioID != condominioID {
		return nil, errors.New("usuario no encontrado")
	}
	return user, nil
}

func (s *usuarioService) Crear(ctx context.Context, condominioID uuid.UUID, req dto.CrearUsuarioRequest) (*dto.UsuarioSeatResponse, error) {
	usage, err := s.seatUsage(ctx, condominioID)
	if err != nil {
		return nil, err
	}
	if usage.SeatsAvailable == 0 {
		return nil, ErrSinAsientos
	}

	if exists, err := s.repo.EmailExists(ctx, req.Email); err != nil {
		return nil, err
	} else if exists {
		return nil, errors.New("el email ya esta registrado")
	}

	roles := access.NormalizeAll(req.Roles)
	for _, r := range roles {
		if !access.Valid(r) {
			return nil, errors.New("rol desconocido: " + string(r))
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	user := &model.Usuario{
		Nombre:       req.Nombre,
		Email:        req.Email,
		PasswordHash: string(hash),
		Roles:        access.Strings(roles),
		Estado:       model.EstadoActivo,
		CondominioID: &condominioID,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	usage, err = s.seatUsage(ctx, condominioID)
	if err != nil {
		return nil, err
	}
	s.alertCapacity(usage)
	return &dto.UsuarioSeatResponse{User: usuarioToResponse(user), Seats: usage}, nil
}

func (s *usuarioService) Listar(ctx context.Context, condominioID uuid.UUID) (*dto.UsuarioListResponse, error) {
	users, err := s.repo.ListByCondominio(ctx, condominioID)
	if err != nil {
		return nil, err
	}
	usage, err := s.seatUsage(ctx, condominioID)
	if err != nil {
		return nil, err
	}
	resp := &dto.UsuarioListResponse{
		Users: make([]dto.UsuarioResponse, len(users)),
		Seats: usage,
	}
	for i := range users {
		resp.Users[i] = usuarioToResponse(&users[i])
	}
	return resp, nil
}

func (s *usuarioService) Actualizar(ctx context.Context, condominioID, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	user, err := s.findEnCondominio(ctx, condominioID, id)
	if err != nil {
		return nil, err
	}
	if req.Nombre != "" {
		user.Nombre = req.Nombre
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if len(req.Roles) > 0 {
		user.Roles = access.Strings(access.NormalizeAll(req.Roles))
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := usuarioToResponse(user)
	return &resp, nil
}

func (s *usuarioService) cambiarEstado(ctx context.Context, condominioID, id uuid.UUID, estado string) (*dto.UsuarioSeatResponse, error) {
	user, err := s.findEnCondominio(ctx, condominioID, id)
	if err != nil {
		return nil, err
	}

	// Reactivating re-occupies a seat: enforce capacity before flipping.
	if estado == model.EstadoActivo && !user.OcupaAsiento() {
		usage, err := s.seatUsage(ctx, condominioID)
		if err != nil {
			return nil, err
		}
		if usage.SeatsAvailable == 0 {
			return nil, ErrSinAsientos
		}
	}

	if err := s.repo.UpdateEstado(ctx, id, estado); err != nil {
		return nil, err
	}
	user.Estado = estado

	if s.notifier != nil && estado == model.EstadoActivo {
		_ = s.notifier.Notificar(ctx, user.ID, "Cuenta reactivada",
			"Tu cuenta fue reactivada y ya puedes ingresar nuevamente.")
	}

	usage, err := s.seatUsage(ctx, condominioID)
	if err != nil {
		return nil, err
	}
	s.alertCapacity(usage)
	return &dto.UsuarioSeatResponse{User: usuarioToResponse(user), Seats: usage}, nil
}

func (s *usuarioService) Bloquear(ctx context.Context, condominioID, id uuid.UUID) (*dto.UsuarioSeatResponse, error) {
	return s.cambiarEstado(ctx, condominioID, id, model.EstadoBloqueado)
}

func (s *usuarioService) Suspender(ctx context.Context, condominioID, id uuid.UUID) (*dto.UsuarioSeatResponse, error) {
	return s.cambiarEstado(ctx, condominioID, id, model.EstadoSuspendido)
}

func (s *usuarioService) Reactivar(ctx context.Context, condominioID, id uuid.UUID) (*dto.UsuarioSeatResponse, error) {
	return s.cambiarEstado(ctx, condominioID, id, model.EstadoActivo)
}

func (s *usuarioService) Eliminar(ctx context.Context, condominioID, id uuid.UUID) (*dto.SeatUsageResponse, error) {
	user, err := s.findEnCondominio(ctx, condominioID, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, user.ID); err != nil {
		return nil, err
	}
	usage, err := s.seatUsage(ctx, condominioID)
	if err != nil {
		return nil, err
	}
	s.alertCapacity(usage)
	return &usage, nil
}
