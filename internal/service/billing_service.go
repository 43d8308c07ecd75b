package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/GenturixHub/Genturix-sub003/internal/billing"
	"github.com/GenturixHub/Genturix-sub003/internal/dto"
	"github.com/GenturixHub/Genturix-sub003/internal/infra"
	"github.com/GenturixHub/Genturix-sub003/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// PricingEngine is the authoritative price source (infra.PricingClient in
// production, a stub in tests).
type PricingEngine interface {
	Preview(ctx context.Context, seats int, cycle string) (*infra.PricingResponse, error)
}

type BillingService interface {
	// Preview returns the engine price when reachable, the documented local
	// fallback otherwise. Never fails outright: the preview must stay usable
	// during an engine outage.
	Preview(ctx context.Context, seats int, cycle billing.Cycle) billing.Preview
	GetSuscripcion(ctx context.Context, condominioID uuid.UUID) (*dto.SuscripcionResponse, error)
	ActualizarSuscripcion(ctx context.Context, condominioID uuid.UUID, req dto.ActualizarSuscripcionRequest) (*dto.SuscripcionResponse, error)
}

type billingService struct {
	engine   PricingEngine
	cb       *infra.CircuitBreaker
	rdb      *redis.Client
	susRepo  repository.SuscripcionRepository
	userRepo repository.UsuarioRepository
}

func NewBillingService(
	engine PricingEngine,
	cb *infra.CircuitBreaker,
	rdb *redis.Client,
	susRepo repository.SuscripcionRepository,
	userRepo repository.UsuarioRepository,
) BillingService {
	return &billingService{engine: engine, cb: cb, rdb: rdb, susRepo: susRepo, userRepo: userRepo}
}

const previewCacheTTL = 60 * time.Second

func previewCacheKey(seats int, cycle billing.Cycle) string {
	return fmt.Sprintf("billing:preview:%d:%s", seats, cycle)
}

func (s *billingService) Preview(ctx context.Context, seats int, cycle billing.Cycle) billing.Preview {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, previewCacheKey(seats, cycle)).Bytes(); err == nil {
			var cached billing.Preview
			if json.Unmarshal(raw, &cached) == nil {
				return cached
			}
		}
	}

	var resp *infra.PricingResponse
	err := s.cb.Execute(func() error {
		var engineErr error
		resp, engineErr = s.engine.Preview(ctx, seats, string(cycle))
		return engineErr
	})
	if err != nil {
		log.Warn().Err(err).Int("seats", seats).Str("cycle", string(cycle)).
			Msg("pricing engine unavailable, using fallback formula")
		return billing.Fallback(seats, cycle)
	}

	preview, err := engineToPreview(seats, cycle, resp)
	if err != nil {
		log.Error().Err(err).Msg("pricing engine returned malformed amounts")
		return billing.Fallback(seats, cycle)
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(preview); err == nil {
			s.rdb.Set(ctx, previewCacheKey(seats, cycle), raw, previewCacheTTL)
		}
	}
	return preview
}

func engineToPreview(seats int, cycle billing.Cycle, resp *infra.PricingResponse) (billing.Preview, error) {
	parse := func(s string) (decimal.Decimal, error) { return decimal.NewFromString(s) }

	pricePerSeat, err := parse(resp.PricePerSeat)
	if err != nil {
		return billing.Preview{}, err
	}
	monthly, err := parse(resp.MonthlyAmount)
	if err != nil {
		return billing.Preview{}, err
	}
	effective, err := parse(resp.EffectiveAmount)
	if err != nil {
		return billing.Preview{}, err
	}
	discount, err := parse(resp.DiscountPercent)
	if err != nil {
		return billing.Preview{}, err
	}
	savings, err := parse(resp.Savings)
	if err != nil {
		return billing.Preview{}, err
	}

	return billing.Preview{
		Seats:           seats,
		Cycle:           cycle,
		PricePerSeat:    pricePerSeat,
		MonthlyAmount:   monthly,
		EffectiveAmount: effective,
		DiscountPercent: discount,
		Savings:         savings,
		Source:          "engine",
	}, nil
}

func (s *billingService) GetSuscripcion(ctx context.Context, condominioID uuid.UUID) (*dto.SuscripcionResponse, error) {
	sus, err := s.susRepo.FindByCondominio(ctx, condominioID)
	if err != nil {
		return nil, errors.New("suscripcion no encontrada")
	}
	used, err := s.userRepo.CountSeats(ctx, condominioID)
	if err != nil {
		return nil, err
	}
	usage := billing.NewSeatUsage(sus.Seats, used)

	return &dto.SuscripcionResponse{
		Seats:           sus.Seats,
		Cycle:           sus.Cycle,
		PricePerSeat:    sus.PricePerSeat,
		MonthlyAmount:   sus.MonthlyAmount,
		EffectiveAmount: sus.EffectiveAmount,
		DiscountPercent: sus.DiscountPercent,
		Usage: dto.SeatUsageResponse{
			SeatsTotal:     usage.SeatsTotal,
			SeatsUsed:      usage.SeatsUsed,
			SeatsAvailable: usage.SeatsAvailable,
		},
	}, nil
}

func (s *billingService) ActualizarSuscripcion(ctx context.Context, condominioID uuid.UUID, req dto.ActualizarSuscripcionRequest) (*dto.SuscripcionResponse, error) {
	cycle, err := billing.ParseCycle(req.Cycle)
	if err != nil {
		return nil, err
	}

	sus, err := s.susRepo.FindByCondominio(ctx, condominioID)
	if err != nil {
		return nil, errors.New("suscripcion no encontrada")
	}

	// Shrinking below current occupancy would strand users without seats.
	used, err := s.userRepo.CountSeats(ctx, condominioID)
	if err != nil {
		return nil, err
	}
	if req.Seats < used {
		return nil, fmt.Errorf("no puede reducir a %d asientos: hay %d en uso", req.Seats, used)
	}

	preview := s.Preview(ctx, req.Seats, cycle)
	sus.Seats = req.Seats
	sus.Cycle = string(cycle)
	sus.PricePerSeat = preview.PricePerSeat
	sus.MonthlyAmount = preview.MonthlyAmount
	sus.EffectiveAmount = preview.EffectiveAmount
	sus.DiscountPercent = preview.DiscountPercent

	if err := s.susRepo.Update(ctx, sus); err != nil {
		return nil, err
	}
	return s.GetSuscripcion(ctx, condominioID)
}
