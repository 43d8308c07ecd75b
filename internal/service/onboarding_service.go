package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"

	"github.com/GenturixHub/Genturix-sub003/internal/access"
	"github.com/GenturixHub/Genturix-sub003/internal/billing"
	"github.com/GenturixHub/Genturix-sub003/internal/dto"
	"github.com/GenturixHub/Genturix-sub003/internal/model"
	"github.com/GenturixHub/Genturix-sub003/internal/repository"
	"github.com/GenturixHub/Genturix-sub003/internal/wizard"
	"github.com/GenturixHub/Genturix-sub003/internal/worker"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ErrConflicto reports a uniqueness conflict found during submission. Paso
// is the wizard step the operator must return to (1 = condominium name,
// 2 = admin email). The persisted draft is kept so nothing is retyped.
type ErrConflicto struct {
	Paso    int
	Mensaje string
}

func (e *ErrConflicto) Error() string { return e.Mensaje }

// OnboardingService drives the tenant-creation wizard server side: draft
// persistence, step transitions, uniqueness pre-checks, and final submission.
type OnboardingService interface {
	GetDraft(ctx context.Context, operatorID string) (*dto.DraftResponse, error)
	SaveDraft(ctx context.Context, operatorID string, d wizard.Draft) error
	Advance(ctx context.Context, operatorID string) (*dto.StepResponse, error)
	Retreat(ctx context.Context, operatorID string) (*dto.StepResponse, error)
	// Cancel discards the draft explicitly. This and a successful Submit are
	// the only two events that clear the snapshot.
	Cancel(ctx context.Context, operatorID string) error
	ValidateUnique(ctx context.Context, req dto.ValidateUniqueRequest) (*dto.ValidateUniqueResponse, error)
	Submit(ctx context.Context, operatorID string) (*dto.CreateTenantResponse, error)
}

type onboardingService struct {
	drafts     wizard.DraftStore
	condoRepo  repository.CondominioRepository
	userRepo   repository.UsuarioRepository
	susRepo    repository.SuscripcionRepository
	areaRepo   repository.AreaRepository
	billingSvc BillingService
	dispatcher *worker.Dispatcher
}

func NewOnboardingService(
	drafts wizard.DraftStore,
	condoRepo repository.CondominioRepository,
	userRepo repository.UsuarioRepository,
	susRepo repository.SuscripcionRepository,
	areaRepo repository.AreaRepository,
	billingSvc BillingService,
	dispatcher *worker.Dispatcher,
) OnboardingService {
	return &onboardingService{
		drafts:     drafts,
		condoRepo:  condoRepo,
		userRepo:   userRepo,
		susRepo:    susRepo,
		areaRepo:   areaRepo,
		billingSvc: billingSvc,
		dispatcher: dispatcher,
	}
}

func (s *onboardingService) GetDraft(ctx context.Context, operatorID string) (*dto.DraftResponse, error) {
	d, ok, err := s.drafts.Load(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	return &dto.DraftResponse{Draft: d, Exists: ok}, nil
}

func (s *onboardingService) SaveDraft(ctx context.Context, operatorID string, d wizard.Draft) error {
	// The mandatory module can never be disabled, whatever the client sent.
	d.Modules.Usuarios = true
	if d.CurrentStep < wizard.StepInfo || d.CurrentStep > wizard.StepSummary {
		return errors.New("paso fuera de rango")
	}
	return s.drafts.Save(ctx, operatorID, &d)
}

func (s *onboardingService) loadDraft(ctx context.Context, operatorID string) (*wizard.Draft, error) {
	d, ok, err := s.drafts.Load(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("no hay un asistente en progreso")
	}
	return d, nil
}

func (s *onboardingService) Advance(ctx context.Context, operatorID string) (*dto.StepResponse, error) {
	d, err := s.loadDraft(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	next, err := wizard.Advance(d)
	if err != nil {
		return nil, err
	}
	if err := s.drafts.Save(ctx, operatorID, d); err != nil {
		return nil, err
	}
	return &dto.StepResponse{CurrentStep: next}, nil
}

func (s *onboardingService) Retreat(ctx context.Context, operatorID string) (*dto.StepResponse, error) {
	d, err := s.loadDraft(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	prev, err := wizard.Retreat(d)
	if err != nil {
		return nil, err
	}
	if err := s.drafts.Save(ctx, operatorID, d); err != nil {
		return nil, err
	}
	return &dto.StepResponse{CurrentStep: prev}, nil
}

func (s *onboardingService) Cancel(ctx context.Context, operatorID string) error {
	return s.drafts.Clear(ctx, operatorID)
}

func (s *onboardingService) ValidateUnique(ctx context.Context, req dto.ValidateUniqueRequest) (*dto.ValidateUniqueResponse, error) {
	var exists bool
	var err error
	var msg string

	switch req.Field {
	case "condominium_name":
		exists, err = s.condoRepo.NombreExists(ctx, req.Value)
		msg = "el nombre del condominio ya esta en uso"
	case "admin_email":
		exists, err = s.userRepo.EmailExists(ctx, req.Value)
		msg = "el email ya esta registrado"
	default:
		return nil, errors.New("campo desconocido")
	}
	if err != nil {
		return nil, err
	}
	if exists {
		return &dto.ValidateUniqueResponse{Valid: false, Message: msg}, nil
	}
	return &dto.ValidateUniqueResponse{Valid: true}, nil
}

func (s *onboardingService) Submit(ctx context.Context, operatorID string) (*dto.CreateTenantResponse, error) {
	d, err := s.loadDraft(ctx, operatorID)
	if err != nil {
		return nil, err
	}

	// Every step must hold before creation, including the conditional one.
	steps := []int{wizard.StepInfo, wizard.StepAdmin, wizard.StepModules, wizard.StepBilling}
	if d.Modules.Reservas {
		steps = append(steps, wizard.StepAreas)
	}
	for _, step := range steps {
		if !wizard.IsStepValid(step, d) {
			wizard.Rewind(d, step)
			_ = s.drafts.Save(ctx, operatorID, d)
			return nil, wizard.ErrStepInvalid
		}
	}

	// Both uniqueness checks run in parallel and both must resolve before
	// creation — a partial failure aborts rather than silently proceeding.
	var nameTaken, emailTaken bool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		nameTaken, err = s.condoRepo.NombreExists(gctx, d.Condominio.Nombre)
		return err
	})
	g.Go(func() error {
		var err error
		emailTaken, err = s.userRepo.EmailExists(gctx, d.Admin.Email)
		return err
	})
	if err := g.Wait(); err != nil {
		// Transient failure: the draft stays persisted for a retry.
		return nil, errors.New("no se pudo validar la disponibilidad, intente nuevamente")
	}

	if nameTaken {
		wizard.Rewind(d, wizard.StepInfo)
		_ = s.drafts.Save(ctx, operatorID, d)
		return nil, &ErrConflicto{Paso: wizard.StepInfo, Mensaje: "el nombre del condominio ya esta en uso"}
	}
	if emailTaken {
		wizard.Rewind(d, wizard.StepAdmin)
		_ = s.drafts.Save(ctx, operatorID, d)
		return nil, &ErrConflicto{Paso: wizard.StepAdmin, Mensaje: "el email del administrador ya esta registrado"}
	}

	cycle, err := billing.ParseCycle(d.Billing.Cycle)
	if err != nil {
		return nil, err
	}
	preview := s.billingSvc.Preview(ctx, d.Billing.Seats, cycle)

	tempPassword, err := generarPassword()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), 12)
	if err != nil {
		return nil, err
	}

	condo := &model.Condominio{
		Nombre:            d.Condominio.Nombre,
		Direccion:         d.Condominio.Direccion,
		Telefono:          d.Condominio.Telefono,
		ModuloUsuarios:    true,
		ModuloReservas:    d.Modules.Reservas,
		ModuloAprendizaje: d.Modules.Aprendizaje,
		ModuloPagos:       d.Modules.Pagos,
		Activo:            true,
	}

	err = runTx(ctx, s.condoRepo.DB(), func(tx *gorm.DB) error {
		if err := createModel(ctx, tx, s.condoRepo.Create, condo); err != nil {
			return err
		}
		admin := &model.Usuario{
			Nombre:       d.Admin.Nombre,
			Email:        d.Admin.Email,
			PasswordHash: string(hash),
			Roles:        []string{string(access.RoleAdministrador)},
			Estado:       model.EstadoActivo,
			// First login must go through a forced password change.
			PasswordResetRequired: true,
			CondominioID:          &condo.ID,
		}
		if err := createModel(ctx, tx, s.userRepo.Create, admin); err != nil {
			return err
		}
		sus := &model.Suscripcion{
			CondominioID:    condo.ID,
			Seats:           d.Billing.Seats,
			Cycle:           string(cycle),
			PricePerSeat:    preview.PricePerSeat,
			MonthlyAmount:   preview.MonthlyAmount,
			EffectiveAmount: preview.EffectiveAmount,
			DiscountPercent: preview.DiscountPercent,
		}
		if err := createModel(ctx, tx, s.susRepo.Create, sus); err != nil {
			return err
		}
		if d.Modules.Reservas {
			for _, a := range d.Areas {
				area := &model.Area{
					CondominioID: condo.ID,
					Nombre:       a.Nombre,
					Capacidad:    a.Capacidad,
					Activo:       true,
				}
				if err := createModel(ctx, tx, s.areaRepo.Create, area); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		// Creation failed: surface a generic error, keep the draft for retry.
		return nil, errors.New("no se pudo crear el condominio, intente nuevamente")
	}

	// Success is the first of the two draft-clearing events.
	if err := s.drafts.Clear(ctx, operatorID); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueEmail(ctx, worker.EmailPayload{
			To:      d.Admin.Email,
			Subject: "Bienvenido a GENTURIX",
			Body: "Su condominio \"" + condo.Nombre + "\" fue creado.\n" +
				"Ingrese con su email; debera cambiar la contrasena temporal en el primer acceso.",
		})
	}

	return &dto.CreateTenantResponse{
		Success: true,
		Condominio: dto.CondominioResponse{
			ID:                condo.ID.String(),
			Nombre:            condo.Nombre,
			Direccion:         condo.Direccion,
			ModuloUsuarios:    condo.ModuloUsuarios,
			ModuloReservas:    condo.ModuloReservas,
			ModuloAprendizaje: condo.ModuloAprendizaje,
			ModuloPagos:       condo.ModuloPagos,
		},
		// Shown exactly once; never persisted in clear text.
		AdminCredentials: dto.AdminCredentials{
			Email:    d.Admin.Email,
			Password: tempPassword,
		},
	}, nil
}

// runTx executes fn inside a GORM transaction when db is available, or calls
// fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// createModel persists via tx when inside a real transaction, via the
// repository otherwise (unit test mode).
func createModel[T any](ctx context.Context, tx *gorm.DB, repoCreate func(context.Context, *T) error, m *T) error {
	if tx != nil {
		return tx.Create(m).Error
	}
	return repoCreate(ctx, m)
}

const passwordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz23456789"

// generarPassword builds a 12-char temporary password that satisfies the
// platform policy (upper, lower, digit).
func generarPassword() (string, error) {
	for {
		buf := make([]byte, 12)
		for i := range buf {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordAlphabet))))
			if err != nil {
				return "", err
			}
			buf[i] = passwordAlphabet[n.Int64()]
		}
		pw := string(buf)
		if ValidarPolitica(pw) == nil {
			return pw, nil
		}
	}
}
