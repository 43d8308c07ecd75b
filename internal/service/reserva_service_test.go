package service

import (
	"context"
	"testing"

	"github.com/GenturixHub/Genturix-sub003/internal/dto"
	"github.com/GenturixHub/Genturix-sub003/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reservaEnv struct {
	svc         ReservaService
	reservaRepo *stubReservaRepo
	condoID     uuid.UUID
}

func reservaFixture(t *testing.T, reservasActivo bool) *reservaEnv {
	t.Helper()

	condoRepo := newStubCondominioRepo()
	condo := &model.Condominio{Nombre: "Altos del Sol", Direccion: "Av. Central 100", ModuloReservas: reservasActivo, Activo: true}
	require.NoError(t, condoRepo.Create(context.Background(), condo))

	reservaRepo := newStubReservaRepo()
	svc := NewReservaService(newStubAreaRepo(), reservaRepo, condoRepo)
	return &reservaEnv{svc: svc, reservaRepo: reservaRepo, condoID: condo.ID}
}

func (e *reservaEnv) area(t *testing.T, abre, cierra int) string {
	t.Helper()
	resp, err := e.svc.CrearArea(context.Background(), e.condoID, dto.CrearAreaRequest{
		Nombre: "Piscina", Capacidad: 20, AbreMin: abre, CierraMin: cierra,
	})
	require.NoError(t, err)
	return resp.ID
}

func TestCrearAreaDefaultsSchedule(t *testing.T) {
	env := reservaFixture(t, true)

	resp, err := env.svc.CrearArea(context.Background(), env.condoID, dto.CrearAreaRequest{
		Nombre: "Salon social", Capacidad: 40,
	})
	require.NoError(t, err)
	assert.Equal(t, 480, resp.AbreMin)  // 08:00
	assert.Equal(t, 1320, resp.CierraMin) // 22:00
	assert.True(t, resp.Activo)
}

func TestCrearAreaRejectsInvertedSchedule(t *testing.T) {
	env := reservaFixture(t, true)

	_, err := env.svc.CrearArea(context.Background(), env.condoID, dto.CrearAreaRequest{
		Nombre: "Gimnasio", Capacidad: 10, AbreMin: 900, CierraMin: 600,
	})
	assert.Error(t, err)
}

func TestCrearReservaModuleDisabled(t *testing.T) {
	env := reservaFixture(t, false)

	_, err := env.svc.CrearReserva(context.Background(), env.condoID, uuid.New(), dto.CrearReservaRequest{
		AreaID: uuid.NewString(), Fecha: "2026-09-01", InicioMin: 600, FinMin: 660,
	})
	assert.ErrorIs(t, err, ErrModuloReservasInactivo)
}

func TestCrearReservaRejectsOverlap(t *testing.T) {
	env := reservaFixture(t, true)
	areaID := env.area(t, 480, 1320)

	first, err := env.svc.CrearReserva(context.Background(), env.condoID, uuid.New(), dto.CrearReservaRequest{
		AreaID: areaID, Fecha: "2026-09-01", InicioMin: 600, FinMin: 720,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReservaConfirmada, first.Estado)

	// Partial overlap with the confirmed slot.
	_, err = env.svc.CrearReserva(context.Background(), env.condoID, uuid.New(), dto.CrearReservaRequest{
		AreaID: areaID, Fecha: "2026-09-01", InicioMin: 660, FinMin: 780,
	})
	assert.ErrorIs(t, err, ErrHorarioOcupado)
}

func TestCrearReservaAdjacentSlotsAllowed(t *testing.T) {
	env := reservaFixture(t, true)
	areaID := env.area(t, 480, 1320)

	_, err := env.svc.CrearReserva(context.Background(), env.condoID, uuid.New(), dto.CrearReservaRequest{
		AreaID: areaID, Fecha: "2026-09-01", InicioMin: 600, FinMin: 720,
	})
	require.NoError(t, err)

	// 12:00-14:00 right after 10:00-12:00 is not an overlap.
	_, err = env.svc.CrearReserva(context.Background(), env.condoID, uuid.New(), dto.CrearReservaRequest{
		AreaID: areaID, Fecha: "2026-09-01", InicioMin: 720, FinMin: 840,
	})
	assert.NoError(t, err)

	// Same slot on another day is free too.
	_, err = env.svc.CrearReserva(context.Background(), env.condoID, uuid.New(), dto.CrearReservaRequest{
		AreaID: areaID, Fecha: "2026-09-02", InicioMin: 600, FinMin: 720,
	})
	assert.NoError(t, err)
}

func TestCrearReservaOutsideAreaHours(t *testing.T) {
	env := reservaFixture(t, true)
	areaID := env.area(t, 480, 1320)

	cases := []struct{ inicio, fin int }{
		{400, 500},   // starts before opening
		{1300, 1400}, // ends after closing
		{700, 700},   // empty slot
		{720, 600},   // inverted
	}
	for _, c := range cases {
		_, err := env.svc.CrearReserva(context.Background(), env.condoID, uuid.New(), dto.CrearReservaRequest{
			AreaID: areaID, Fecha: "2026-09-01", InicioMin: c.inicio, FinMin: c.fin,
		})
		assert.Error(t, err, "slot %d-%d", c.inicio, c.fin)
	}
}

func TestCancelarFreesSlotAndIsIdempotent(t *testing.T) {
	env := reservaFixture(t, true)
	areaID := env.area(t, 480, 1320)
	userID := uuid.New()

	resp, err := env.svc.CrearReserva(context.Background(), env.condoID, userID, dto.CrearReservaRequest{
		AreaID: areaID, Fecha: "2026-09-01", InicioMin: 600, FinMin: 720,
	})
	require.NoError(t, err)
	reservaID := uuid.MustParse(resp.ID)

	require.NoError(t, env.svc.Cancelar(context.Background(), userID, reservaID))
	require.NoError(t, env.svc.Cancelar(context.Background(), userID, reservaID))

	// A cancelled reservation no longer blocks its slot.
	_, err = env.svc.CrearReserva(context.Background(), env.condoID, uuid.New(), dto.CrearReservaRequest{
		AreaID: areaID, Fecha: "2026-09-01", InicioMin: 600, FinMin: 720,
	})
	assert.NoError(t, err)
}

func TestCancelarRejectsForeignReserva(t *testing.T) {
	env := reservaFixture(t, true)
	areaID := env.area(t, 480, 1320)

	resp, err := env.svc.CrearReserva(context.Background(), env.condoID, uuid.New(), dto.CrearReservaRequest{
		AreaID: areaID, Fecha: "2026-09-01", InicioMin: 600, FinMin: 720,
	})
	require.NoError(t, err)

	err = env.svc.Cancelar(context.Background(), uuid.New(), uuid.MustParse(resp.ID))
	assert.Error(t, err)
}

func TestDesactivarAreaBlocksNewReservas(t *testing.T) {
	env := reservaFixture(t, true)
	areaID := env.area(t, 480, 1320)

	require.NoError(t, env.svc.DesactivarArea(context.Background(), env.condoID, uuid.MustParse(areaID)))

	_, err := env.svc.CrearReserva(context.Background(), env.condoID, uuid.New(), dto.CrearReservaRequest{
		AreaID: areaID, Fecha: "2026-09-01", InicioMin: 600, FinMin: 720,
	})
	assert.Error(t, err)
}
