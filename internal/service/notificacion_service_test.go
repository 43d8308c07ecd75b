package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificarAndListar(t *testing.T) {
	svc := NewNotificacionService(newStubNotificacionRepo())
	userID := uuid.New()

	require.NoError(t, svc.Notificar(context.Background(), userID, "Pago aprobado", "Su pago fue aprobado."))
	require.NoError(t, svc.Notificar(context.Background(), userID, "Reserva confirmada", "Su reserva fue confirmada."))
	require.NoError(t, svc.Notificar(context.Background(), uuid.New(), "Ajena", "No debe aparecer."))

	resp, err := svc.Listar(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, resp.Notificaciones, 2)
	assert.Equal(t, 2, resp.NoLeidas)
	for _, n := range resp.Notificaciones {
		assert.Nil(t, n.ReadAt)
	}
}

func TestMarcarLeidaIdempotent(t *testing.T) {
	repo := newStubNotificacionRepo()
	svc := NewNotificacionService(repo)
	userID := uuid.New()
	require.NoError(t, svc.Notificar(context.Background(), userID, "Titulo", "Cuerpo"))

	resp, err := svc.Listar(context.Background(), userID)
	require.NoError(t, err)
	id := uuid.MustParse(resp.Notificaciones[0].ID)

	require.NoError(t, svc.MarcarLeida(context.Background(), userID, id))
	n, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	firstReadAt := n.ReadAt
	require.NotNil(t, firstReadAt)

	// Re-marking keeps the original read timestamp.
	require.NoError(t, svc.MarcarLeida(context.Background(), userID, id))
	n, err = repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, n.ReadAt.Equal(*firstReadAt))

	resp, err = svc.Listar(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.NoLeidas)
}

func TestMarcarLeidaRejectsForeignNotificacion(t *testing.T) {
	svc := NewNotificacionService(newStubNotificacionRepo())
	owner := uuid.New()
	require.NoError(t, svc.Notificar(context.Background(), owner, "Titulo", "Cuerpo"))

	resp, err := svc.Listar(context.Background(), owner)
	require.NoError(t, err)
	id := uuid.MustParse(resp.Notificaciones[0].ID)

	err = svc.MarcarLeida(context.Background(), uuid.New(), id)
	assert.Error(t, err)

	resp, err = svc.Listar(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.NoLeidas)
}

func TestMarcarTodasLeidas(t *testing.T) {
	svc := NewNotificacionService(newStubNotificacionRepo())
	userID := uuid.New()
	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Notificar(context.Background(), userID, "Titulo", "Cuerpo"))
	}

	require.NoError(t, svc.MarcarTodasLeidas(context.Background(), userID))

	resp, err := svc.Listar(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.NoLeidas)
	for _, n := range resp.Notificaciones {
		assert.NotNil(t, n.ReadAt)
	}
}
