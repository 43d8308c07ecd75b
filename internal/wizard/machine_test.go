package wizard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() *Draft {
	d := NewDraft()
	d.Condominio = CondominioForm{Nombre: "Condo X", Direccion: "Main St 1"}
	d.Admin = AdminForm{Nombre: "Ana Perez", Email: "ana@example.com"}
	d.Billing = BillingForm{Seats: 50, Cycle: "monthly"}
	return d
}

func TestIsStepValid_Info(t *testing.T) {
	d := NewDraft()
	d.Condominio = CondominioForm{Nombre: "A", Direccion: "12345"}
	assert.False(t, IsStepValid(StepInfo, d), "name too short")

	d.Condominio = CondominioForm{Nombre: "Condo X", Direccion: "Main St 1"}
	assert.True(t, IsStepValid(StepInfo, d))

	d.Condominio.Direccion = "1234"
	assert.False(t, IsStepValid(StepInfo, d), "address too short")
}

func TestIsStepValid_Admin(t *testing.T) {
	d := NewDraft()
	d.Admin = AdminForm{Nombre: "Ana", Email: "not-an-email"}
	assert.False(t, IsStepValid(StepAdmin, d))

	d.Admin.Email = "ana@condo.com"
	assert.True(t, IsStepValid(StepAdmin, d))

	d.Admin.Nombre = "A"
	assert.False(t, IsStepValid(StepAdmin, d))
}

func TestIsStepValid_Billing(t *testing.T) {
	d := NewDraft()
	for seats, want := range map[int]bool{0: false, 1: true, 500: true, 10000: true, 10001: false, -3: false} {
		d.Billing.Seats = seats
		assert.Equal(t, want, IsStepValid(StepBilling, d), "seats=%d", seats)
	}
}

func TestIsStepValid_Areas(t *testing.T) {
	d := NewDraft()
	assert.True(t, IsStepValid(StepAreas, d), "empty list is vacuously valid")

	d.Areas = []AreaForm{{Nombre: "SUM", Capacidad: 30}, {Nombre: "Pileta", Capacidad: 15}}
	assert.True(t, IsStepValid(StepAreas, d))

	d.Areas = append(d.Areas, AreaForm{Nombre: "X", Capacidad: 10})
	assert.False(t, IsStepValid(StepAreas, d), "area name too short")

	d.Areas = []AreaForm{{Nombre: "SUM", Capacidad: 0}}
	assert.False(t, IsStepValid(StepAreas, d), "capacity must be positive")
}

func TestIsStepValid_AlwaysValidSteps(t *testing.T) {
	d := NewDraft()
	assert.True(t, IsStepValid(StepModules, d))
	assert.True(t, IsStepValid(StepSummary, d))
}

func TestAdvance_RefusesInvalidStep(t *testing.T) {
	d := NewDraft() // empty info form
	next, err := Advance(d)
	assert.ErrorIs(t, err, ErrStepInvalid)
	assert.Equal(t, StepInfo, next)
	assert.Equal(t, StepInfo, d.CurrentStep, "no state change on refusal")
}

func TestAdvance_SkipsAreasWhenReservationsDisabled(t *testing.T) {
	d := validDraft()
	d.Modules.Reservas = false
	d.CurrentStep = StepBilling

	next, err := Advance(d)
	require.NoError(t, err)
	assert.Equal(t, StepSummary, next)
}

func TestAdvance_VisitsAreasWhenReservationsEnabled(t *testing.T) {
	d := validDraft()
	d.Modules.Reservas = true
	d.CurrentStep = StepBilling

	next, err := Advance(d)
	require.NoError(t, err)
	assert.Equal(t, StepAreas, next)
}

func TestRetreat_MirrorsSkip(t *testing.T) {
	d := validDraft()
	d.CurrentStep = StepSummary

	d.Modules.Reservas = false
	prev, err := Retreat(d)
	require.NoError(t, err)
	assert.Equal(t, StepBilling, prev)

	d.CurrentStep = StepSummary
	d.Modules.Reservas = true
	prev, err = Retreat(d)
	require.NoError(t, err)
	assert.Equal(t, StepAreas, prev)
}

func TestAdvance_FullWalkthrough(t *testing.T) {
	d := validDraft()
	d.Modules.Reservas = true
	d.Areas = []AreaForm{{Nombre: "SUM", Capacidad: 40}}

	want := []int{StepAdmin, StepModules, StepBilling, StepAreas, StepSummary}
	for _, expected := range want {
		next, err := Advance(d)
		require.NoError(t, err)
		assert.Equal(t, expected, next)
	}

	_, err := Advance(d)
	assert.Error(t, err, "cannot advance past summary")
}

func TestRetreat_BoundsAndNoValidation(t *testing.T) {
	d := NewDraft() // invalid info form on purpose
	d.CurrentStep = StepAdmin

	prev, err := Retreat(d)
	require.NoError(t, err, "going back never validates")
	assert.Equal(t, StepInfo, prev)

	_, err = Retreat(d)
	assert.Error(t, err, "cannot retreat before step 1")
}

func TestRewind_KeepsFieldData(t *testing.T) {
	d := validDraft()
	d.CurrentStep = StepSummary

	Rewind(d, StepAdmin)
	assert.Equal(t, StepAdmin, d.CurrentStep)
	assert.Equal(t, "ana@example.com", d.Admin.Email, "rewind must not touch fields")

	Rewind(d, 42)
	assert.Equal(t, StepAdmin, d.CurrentStep, "out-of-range rewind ignored")
}

func TestDraftStore_RoundTrip(t *testing.T) {
	store := NewMemoryDraftStore()
	ctx := context.Background()

	d := validDraft()
	d.Modules.Reservas = true
	d.Areas = []AreaForm{{Nombre: "Quincho", Capacidad: 25}}
	d.CurrentStep = StepAreas

	require.NoError(t, store.Save(ctx, "op-1", d))

	restored, ok, err := store.Load(ctx, "op-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, d, restored, "reload restores the draft byte-for-byte")

	// Clearing removes the snapshot; a second load misses.
	require.NoError(t, store.Clear(ctx, "op-1"))
	_, ok, err = store.Load(ctx, "op-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDraftStore_LastWriteWins(t *testing.T) {
	store := NewMemoryDraftStore()
	ctx := context.Background()

	d := validDraft()
	require.NoError(t, store.Save(ctx, "op-1", d))
	d.Condominio.Nombre = "Condo Renamed"
	require.NoError(t, store.Save(ctx, "op-1", d))

	restored, ok, err := store.Load(ctx, "op-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Condo Renamed", restored.Condominio.Nombre)
}

func TestIsStepValid_MultibyteLengths(t *testing.T) {
	d := NewDraft()

	// "Ñ" is one rune in two bytes: below the 2-char minimum.
	d.Condominio = CondominioForm{Nombre: "Ñ", Direccion: "Calle Real 42"}
	assert.False(t, IsStepValid(StepInfo, d), "single accented char is one rune")

	// "Ñoño" is four runes in six bytes: below the 5-char address minimum.
	d.Condominio = CondominioForm{Nombre: "Añoranza", Direccion: "Ñoño"}
	assert.False(t, IsStepValid(StepInfo, d), "address length counts runes, not bytes")

	d.Condominio.Direccion = "Ñuñoa 123"
	assert.True(t, IsStepValid(StepInfo, d))

	d.Admin = AdminForm{Nombre: "Ó", Email: "o@condo.com"}
	assert.False(t, IsStepValid(StepAdmin, d))

	d.Areas = []AreaForm{{Nombre: "Ñ", Capacidad: 10}}
	assert.False(t, IsStepValid(StepAreas, d))
	d.Areas[0].Nombre = "Ñandú"
	assert.True(t, IsStepValid(StepAreas, d))
}
