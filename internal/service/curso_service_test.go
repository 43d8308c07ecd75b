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

type cursoEnv struct {
	svc     CursoService
	condoID uuid.UUID
}

func cursoFixture(t *testing.T, aprendizajeActivo bool) *cursoEnv {
	t.Helper()

	condoRepo := newStubCondominioRepo()
	condo := &model.Condominio{Nombre: "Altos del Sol", Direccion: "Av. Central 100", ModuloAprendizaje: aprendizajeActivo, Activo: true}
	require.NoError(t, condoRepo.Create(context.Background(), condo))

	return &cursoEnv{svc: NewCursoService(newStubCursoRepo(), condoRepo), condoID: condo.ID}
}

// cursoConLecciones creates a course with n ordered lessons and returns the
// course id plus the lesson ids in order.
func (e *cursoEnv) cursoConLecciones(t *testing.T, n int) (uuid.UUID, []uuid.UUID) {
	t.Helper()
	curso, err := e.svc.CrearCurso(context.Background(), e.condoID, dto.CrearCursoRequest{
		Titulo: "Normas de convivencia", Descripcion: "Reglamento interno del condominio",
	})
	require.NoError(t, err)
	cursoID := uuid.MustParse(curso.ID)

	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		l, err := e.svc.CrearLeccion(context.Background(), e.condoID, cursoID, dto.CrearLeccionRequest{
			Titulo: "Leccion", Contenido: "Contenido", Orden: i + 1,
		})
		require.NoError(t, err)
		ids = append(ids, uuid.MustParse(l.ID))
	}
	return cursoID, ids
}

func TestCrearCursoModuleDisabled(t *testing.T) {
	env := cursoFixture(t, false)
	_, err := env.svc.CrearCurso(context.Background(), env.condoID, dto.CrearCursoRequest{Titulo: "Curso"})
	assert.ErrorIs(t, err, ErrModuloAprendizajeInactivo)
}

func TestListarCursosIncludesLessonCount(t *testing.T) {
	env := cursoFixture(t, true)
	env.cursoConLecciones(t, 3)

	cursos, err := env.svc.ListarCursos(context.Background(), env.condoID)
	require.NoError(t, err)
	require.Len(t, cursos, 1)
	assert.Equal(t, 3, cursos[0].Lecciones)
}

func TestInscribirTwiceIsNoOp(t *testing.T) {
	env := cursoFixture(t, true)
	cursoID, _ := env.cursoConLecciones(t, 2)
	userID := uuid.New()

	require.NoError(t, env.svc.Inscribir(context.Background(), env.condoID, cursoID, userID))
	require.NoError(t, env.svc.Inscribir(context.Background(), env.condoID, cursoID, userID))

	p, err := env.svc.Progreso(context.Background(), cursoID, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Total)
	assert.Equal(t, 0, p.Completadas)
}

func TestCompletarLeccionRequiresEnrollment(t *testing.T) {
	env := cursoFixture(t, true)
	cursoID, lecciones := env.cursoConLecciones(t, 1)

	_, err := env.svc.CompletarLeccion(context.Background(), cursoID, lecciones[0], uuid.New())
	assert.Error(t, err)
}

func TestProgresoDerivedFromCompletions(t *testing.T) {
	env := cursoFixture(t, true)
	cursoID, lecciones := env.cursoConLecciones(t, 4)
	userID := uuid.New()
	require.NoError(t, env.svc.Inscribir(context.Background(), env.condoID, cursoID, userID))

	p, err := env.svc.CompletarLeccion(context.Background(), cursoID, lecciones[0], userID)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Completadas)
	assert.Equal(t, 25, p.ProgresoPercent)

	p, err = env.svc.CompletarLeccion(context.Background(), cursoID, lecciones[1], userID)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Completadas)
	assert.Equal(t, 50, p.ProgresoPercent)

	// Lessons come back sorted by orden with their completion flags.
	require.Len(t, p.Lecciones, 4)
	assert.True(t, p.Lecciones[0].Completada)
	assert.True(t, p.Lecciones[1].Completada)
	assert.False(t, p.Lecciones[2].Completada)
}

func TestCompletarLeccionIdempotent(t *testing.T) {
	env := cursoFixture(t, true)
	cursoID, lecciones := env.cursoConLecciones(t, 3)
	userID := uuid.New()
	require.NoError(t, env.svc.Inscribir(context.Background(), env.condoID, cursoID, userID))

	for i := 0; i < 3; i++ {
		p, err := env.svc.CompletarLeccion(context.Background(), cursoID, lecciones[0], userID)
		require.NoError(t, err)
		assert.Equal(t, 1, p.Completadas)
		assert.Equal(t, 33, p.ProgresoPercent)
	}
}

func TestCrearLeccionRejectsForeignCurso(t *testing.T) {
	env := cursoFixture(t, true)
	cursoID, _ := env.cursoConLecciones(t, 1)

	_, err := env.svc.CrearLeccion(context.Background(), uuid.New(), cursoID, dto.CrearLeccionRequest{Titulo: "Leccion"})
	assert.Error(t, err)
}
