package service

import (
	"context"
	"errors"
	"sort"

	"github.com/GenturixHub/Genturix-sub003/internal/dto"
	"github.com/GenturixHub/Genturix-sub003/internal/model"
	"github.com/GenturixHub/Genturix-sub003/internal/repository"

	"github.com/google/uuid"
)

var ErrModuloAprendizajeInactivo = errors.New("el modulo de aprendizaje no esta habilitado para este condominio")

type CursoService interface {
	CrearCurso(ctx context.Context, condominioID uuid.UUID, req dto.CrearCursoRequest) (*dto.CursoResponse, error)
	CrearLeccion(ctx context.Context, condominioID, cursoID uuid.UUID, req dto.CrearLeccionRequest) (*dto.LeccionResponse, error)
	ListarCursos(ctx context.Context, condominioID uuid.UUID) ([]dto.CursoResponse, error)
	Inscribir(ctx context.Context, condominioID, cursoID, usuarioID uuid.UUID) error
	CompletarLeccion(ctx context.Context, cursoID, leccionID, usuarioID uuid.UUID) (*dto.ProgresoResponse, error)
	Progreso(ctx context.Context, cursoID, usuarioID uuid.UUID) (*dto.ProgresoResponse, error)
}

type cursoService struct {
	cursoRepo repository.CursoRepository
	condoRepo repository.CondominioRepository
}

func NewCursoService(cursoRepo repository.CursoRepository, condoRepo repository.CondominioRepository) CursoService {
	return &cursoService{cursoRepo: cursoRepo, condoRepo: condoRepo}
}

func (s *cursoService) moduloHabilitado(ctx context.Context, condominioID uuid.UUID) error {
	condo, err := s.condoRepo.FindByID(ctx, condominioID)
	if err != nil {
		return errors.New("condominio no encontrado")
	}
	if !condo.ModuloAprendizaje {
		return ErrModuloAprendizajeInactivo
	}
	return nil
}

func (s *cursoService) CrearCurso(ctx context.Context, condominioID uuid.UUID, req dto.CrearCursoRequest) (*dto.CursoResponse, error) {
	if err := s.moduloHabilitado(ctx, condominioID); err != nil {
		return nil, err
	}
	curso := &model.Curso{
		CondominioID: condominioID,
		Titulo:       req.Titulo,
		Descripcion:  req.Descripcion,
		Activo:       true,
	}
	if err := s.cursoRepo.CreateCurso(ctx, curso); err != nil {
		return nil, err
	}
	return &dto.CursoResponse{ID: curso.ID.String(), Titulo: curso.Titulo, Descripcion: curso.Descripcion}, nil
}

func (s *cursoService) findCursoEnCondominio(ctx context.Context, condominioID, cursoID uuid.UUID) (*model.Curso, error) {
	curso, err := s.cursoRepo.FindCursoByID(ctx, cursoID)
	if err != nil || curso.CondominioID != condominioID {
		return nil, errors.New("curso no encontrado")
	}
	return curso, nil
}

func (s *cursoService) CrearLeccion(ctx context.Context, condominioID, cursoID uuid.UUID, req dto.CrearLeccionRequest) (*dto.LeccionResponse, error) {
	if _, err := s.findCursoEnCondominio(ctx, condominioID, cursoID); err != nil {
		return nil, err
	}
	leccion := &model.Leccion{
		CursoID:   cursoID,
		Titulo:    req.Titulo,
		Contenido: req.Contenido,
		Orden:     req.Orden,
	}
	if err := s.cursoRepo.CreateLeccion(ctx, leccion); err != nil {
		return nil, err
	}
	return &dto.LeccionResponse{
		ID:        leccion.ID.String(),
		Titulo:    leccion.Titulo,
		Contenido: leccion.Contenido,
		Orden:     leccion.Orden,
	}, nil
}

func (s *cursoService) ListarCursos(ctx context.Context, condominioID uuid.UUID) ([]dto.CursoResponse, error) {
	cursos, err := s.cursoRepo.ListCursos(ctx, condominioID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CursoResponse, 0, len(cursos))
	for i := range cursos {
		total, err := s.cursoRepo.CountLecciones(ctx, cursos[i].ID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.CursoResponse{
			ID:          cursos[i].ID.String(),
			Titulo:      cursos[i].Titulo,
			Descripcion: cursos[i].Descripcion,
			Lecciones:   total,
		})
	}
	return out, nil
}

func (s *cursoService) Inscribir(ctx context.Context, condominioID, cursoID, usuarioID uuid.UUID) error {
	if err := s.moduloHabilitado(ctx, condominioID); err != nil {
		return err
	}
	if _, err := s.findCursoEnCondominio(ctx, condominioID, cursoID); err != nil {
		return err
	}
	if _, err := s.cursoRepo.FindInscripcion(ctx, cursoID, usuarioID); err == nil {
		// Already enrolled; enrolling twice is a no-op.
		return nil
	}
	return s.cursoRepo.CreateInscripcion(ctx, &model.Inscripcion{CursoID: cursoID, UsuarioID: usuarioID})
}

func (s *cursoService) CompletarLeccion(ctx context.Context, cursoID, leccionID, usuarioID uuid.UUID) (*dto.ProgresoResponse, error) {
	ins, err := s.cursoRepo.FindInscripcion(ctx, cursoID, usuarioID)
	if err != nil {
		return nil, errors.New("no esta inscrito en este curso")
	}
	// Completing the same lesson twice leaves the progress unchanged.
	if err := s.cursoRepo.CompletarLeccion(ctx, &model.LeccionCompletada{
		InscripcionID: ins.ID,
		LeccionID:     leccionID,
	}); err != nil {
		return nil, err
	}
	return s.progreso(ctx, cursoID, ins.ID)
}

func (s *cursoService) Progreso(ctx context.Context, cursoID, usuarioID uuid.UUID) (*dto.ProgresoResponse, error) {
	ins, err := s.cursoRepo.FindInscripcion(ctx, cursoID, usuarioID)
	if err != nil {
		return nil, errors.New("no esta inscrito en este curso")
	}
	return s.progreso(ctx, cursoID, ins.ID)
}

func (s *cursoService) progreso(ctx context.Context, cursoID, inscripcionID uuid.UUID) (*dto.ProgresoResponse, error) {
	lecciones, err := s.cursoRepo.ListLecciones(ctx, cursoID)
	if err != nil {
		return nil, err
	}
	completadas, err := s.cursoRepo.ListCompletadas(ctx, inscripcionID)
	if err != nil {
		return nil, err
	}
	done := make(map[uuid.UUID]bool, len(completadas))
	for _, c := range completadas {
		done[c.LeccionID] = true
	}

	sort.Slice(lecciones, func(i, j int) bool { return lecciones[i].Orden < lecciones[j].Orden })

	resp := &dto.ProgresoResponse{
		CursoID:   cursoID.String(),
		Lecciones: make([]dto.LeccionResponse, 0, len(lecciones)),
		Total:     len(lecciones),
	}
	for i := range lecciones {
		completed := done[lecciones[i].ID]
		if completed {
			resp.Completadas++
		}
		resp.Lecciones = append(resp.Lecciones, dto.LeccionResponse{
			ID:         lecciones[i].ID.String(),
			Titulo:     lecciones[i].Titulo,
			Contenido:  lecciones[i].Contenido,
			Orden:      lecciones[i].Orden,
			Completada: completed,
		})
	}
	if resp.Total > 0 {
		resp.ProgresoPercent = resp.Completadas * 100 / resp.Total
	}
	return resp, nil
}
