package service

import (
	"context"
	"crypto/rand"
	"errors"
	"time"

	"github.com/GenturixHub/Genturix-sub003/internal/dto"
	"github.com/GenturixHub/Genturix-sub003/internal/infra"
	"github.com/GenturixHub/Genturix-sub003/internal/model"
	"github.com/GenturixHub/Genturix-sub003/internal/repository"
	"github.com/GenturixHub/Genturix-sub003/internal/worker"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var ErrModuloPagosInactivo = errors.New("el modulo de pagos no esta habilitado para este condominio")

// PaymentGateway is the slice of the gateway client the service needs.
type PaymentGateway interface {
	CreateCheckout(ctx context.Context, ref, description, returnURL string, amount decimal.Decimal) (*infra.CheckoutSession, error)
	GetStatus(ctx context.Context, gatewayID string) (*infra.PaymentStatus, error)
}

type PagoService interface {
	Checkout(ctx context.Context, condominioID, usuarioID uuid.UUID, req dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	GetPago(ctx context.Context, usuarioID uuid.UUID, referencia string) (*dto.PagoResponse, error)
	ListarPagos(ctx context.Context, usuarioID uuid.UUID) ([]dto.PagoResponse, error)
	ProcessWebhook(ctx context.Context, req dto.GatewayWebhookRequest) error
	// PollPendientes advances every pending payment one poll step. Ran by the
	// background cron; each payment is abandoned as expired after maxAttempts.
	PollPendientes(ctx context.Context, maxAttempts int) error
}

type pagoService struct {
	pagoRepo   repository.PagoRepository
	userRepo   repository.UsuarioRepository
	condoRepo  repository.CondominioRepository
	gateway    PaymentGateway
	notifSvc   NotificacionService
	dispatcher *worker.Dispatcher
	pdfPath    string
	returnURL  string
}

func NewPagoService(
	pagoRepo repository.PagoRepository,
	userRepo repository.UsuarioRepository,
	condoRepo repository.CondominioRepository,
	gateway PaymentGateway,
	notifSvc NotificacionService,
	dispatcher *worker.Dispatcher,
	pdfPath, returnURL string,
) PagoService {
	return &pagoService{
		pagoRepo:   pagoRepo,
		userRepo:   userRepo,
		condoRepo:  condoRepo,
		gateway:    gateway,
		notifSvc:   notifSvc,
		dispatcher: dispatcher,
		pdfPath:    pdfPath,
		returnURL:  returnURL,
	}
}

func (s *pagoService) Checkout(ctx context.Context, condominioID, usuarioID uuid.UUID, req dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	condo, err := s.condoRepo.FindByID(ctx, condominioID)
	if err != nil {
		return nil, errors.New("condominio no encontrado")
	}
	if !condo.ModuloPagos {
		return nil, ErrModuloPagosInactivo
	}

	ref := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()

	session, err := s.gateway.CreateCheckout(ctx, ref, req.Concepto, s.returnURL, req.Monto)
	if err != nil {
		log.Error().Err(err).Str("referencia", ref).Msg("checkout rechazado por la pasarela")
		return nil, errors.New("no se pudo iniciar el pago, intente nuevamente")
	}

	pago := &model.Pago{
		Referencia:   ref,
		CondominioID: condominioID,
		UsuarioID:    usuarioID,
		Concepto:     req.Concepto,
		Monto:        req.Monto,
		Estado:       model.PagoPendiente,
		GatewayID:    session.GatewayID,
	}
	if err := s.pagoRepo.Create(ctx, pago); err != nil {
		return nil, err
	}

	return &dto.CheckoutResponse{
		Referencia:  ref,
		RedirectURL: session.RedirectURL,
		Estado:      model.PagoPendiente,
	}, nil
}

func (s *pagoService) GetPago(ctx context.Context, usuarioID uuid.UUID, referencia string) (*dto.PagoResponse, error) {
	pago, err := s.pagoRepo.FindByReferencia(ctx, referencia)
	if err != nil || pago.UsuarioID != usuarioID {
		return nil, errors.New("pago no encontrado")
	}
	return pagoToResponse(pago), nil
}

func (s *pagoService) ListarPagos(ctx context.Context, usuarioID uuid.UUID) ([]dto.PagoResponse, error) {
	pagos, err := s.pagoRepo.ListByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PagoResponse, 0, len(pagos))
	for i := range pagos {
		out = append(out, *pagoToResponse(&pagos[i]))
	}
	return out, nil
}

func (s *pagoService) ProcessWebhook(ctx context.Context, req dto.GatewayWebhookRequest) error {
	pago, err := s.pagoRepo.FindByReferencia(ctx, req.Reference)
	if err != nil {
		return errors.New("pago no encontrado")
	}
	// Webhooks can arrive late or duplicated; a terminal payment never moves.
	if pago.Terminal() {
		return nil
	}
	return s.resolver(ctx, pago, req.Status)
}

// resolver applies a gateway verdict to a pending payment.
func (s *pagoService) resolver(ctx context.Context, pago *model.Pago, status string) error {
	switch status {
	case model.PagoAprobado:
		pago.Estado = model.PagoAprobado
	case model.PagoRechazado:
		pago.Estado = model.PagoRechazado
	default:
		return nil // still pending at the gateway
	}

	if pago.Estado == model.PagoAprobado {
		s.generarRecibo(ctx, pago)
	}

	if err := s.pagoRepo.Update(ctx, pago); err != nil {
		return err
	}

	s.notificar(ctx, pago)
	return nil
}

func (s *pagoService) generarRecibo(ctx context.Context, pago *model.Pago) {
	payerName := ""
	condoName := ""
	if u, err := s.userRepo.FindByID(ctx, pago.UsuarioID); err == nil {
		payerName = u.Nombre
	}
	if c, err := s.condoRepo.FindByID(ctx, pago.CondominioID); err == nil {
		condoName = c.Nombre
	}

	pago.UpdatedAt = time.Now()
	path, err := infra.GenerateReciboPDF(pago, payerName, condoName, s.pdfPath)
	if err != nil {
		// Receipt failure must not block the approval itself.
		log.Error().Err(err).Str("referencia", pago.Referencia).Msg("no se pudo generar el recibo")
		return
	}
	pago.ReciboPDF = path

	if s.dispatcher != nil {
		if u, err := s.userRepo.FindByID(ctx, pago.UsuarioID); err == nil {
			_ = s.dispatcher.EnqueueEmail(ctx, worker.EmailPayload{
				To:      u.Email,
				Subject: "Recibo de pago " + pago.Referencia,
				Body:    "Su pago por \"" + pago.Concepto + "\" fue aprobado. Adjuntamos el recibo.",
				PDFPath: path,
			})
		}
	}
}

func (s *pagoService) notificar(ctx context.Context, pago *model.Pago) {
	var msg string
	switch pago.Estado {
	case model.PagoAprobado:
		msg = "Su pago por \"" + pago.Concepto + "\" fue aprobado."
	case model.PagoRechazado:
		msg = "Su pago por \"" + pago.Concepto + "\" fue rechazado."
	case model.PagoExpirado:
		msg = "Su pago por \"" + pago.Concepto + "\" expiro sin confirmacion de la pasarela."
	default:
		return
	}
	if s.notifSvc != nil {
		if err := s.notifSvc.Notificar(ctx, pago.UsuarioID, "Pago "+pago.Referencia, msg); err != nil {
			log.Warn().Err(err).Str("referencia", pago.Referencia).Msg("no se pudo notificar el pago")
		}
	}
}

const pollBatchSize = 50

func (s *pagoService) PollPendientes(ctx context.Context, maxAttempts int) error {
	pendientes, err := s.pagoRepo.ListPendientes(ctx, pollBatchSize)
	if err != nil {
		return err
	}
	for i := range pendientes {
		pago := &pendientes[i]
		pago.PollAttempts++

		status, err := s.gateway.GetStatus(ctx, pago.GatewayID)
		if err == nil && status.Status != model.PagoPendiente {
			if err := s.resolver(ctx, pago, status.Status); err != nil {
				log.Error().Err(err).Str("referencia", pago.Referencia).Msg("no se pudo resolver el pago")
			}
			continue
		}
		if err != nil {
			log.Warn().Err(err).Str("referencia", pago.Referencia).Msg("consulta a la pasarela fallo")
		}

		// Still pending: persist the attempt count, expiring at the cap so a
		// gateway outage can never leave payments polling forever.
		if pago.PollAttempts >= maxAttempts {
			pago.Estado = model.PagoExpirado
		}
		if err := s.pagoRepo.Update(ctx, pago); err != nil {
			log.Error().Err(err).Str("referencia", pago.Referencia).Msg("no se pudo actualizar el pago")
			continue
		}
		if pago.Estado == model.PagoExpirado {
			s.notificar(ctx, pago)
		}
	}
	return nil
}

func pagoToResponse(p *model.Pago) *dto.PagoResponse {
	return &dto.PagoResponse{
		Referencia: p.Referencia,
		Concepto:   p.Concepto,
		Monto:      p.Monto,
		Estado:     p.Estado,
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
	}
}
