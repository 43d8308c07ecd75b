package service

// stubs_test.go
// In-memory repository stubs shared by the service tests. Each stub keeps
// cloned values so tests observe persisted state, not shared pointers.

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/GenturixHub/Genturix-sub003/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errNotFound = errors.New("record not found")

// ── UsuarioRepository ────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	users map[uuid.UUID]*model.Usuario
	// failEmailExists simulates a transient DB error on the uniqueness check.
	failEmailExists bool
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{users: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = time.Now()
	cloned := *u
	r.users[u.ID] = &cloned
	return nil
}

func (r *stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cloned := *u
			return &cloned, nil
		}
	}
	return nil, errNotFound
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errNotFound
	}
	cloned := *u
	return &cloned, nil
}

func (r *stubUsuarioRepo) ListByCondominio(_ context.Context, condominioID uuid.UUID) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.users {
		if u.CondominioID != nil && *u.CondominioID == condominioID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	if _, ok := r.users[u.ID]; !ok {
		return errNotFound
	}
	cloned := *u
	r.users[u.ID] = &cloned
	return nil
}

func (r *stubUsuarioRepo) UpdateEstado(_ context.Context, id uuid.UUID, estado string) error {
	u, ok := r.users[id]
	if !ok {
		return errNotFound
	}
	u.Estado = estado
	return nil
}

func (r *stubUsuarioRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *stubUsuarioRepo) CountSeats(_ context.Context, condominioID uuid.UUID) (int, error) {
	count := 0
	for _, u := range r.users {
		if u.CondominioID != nil && *u.CondominioID == condominioID && u.OcupaAsiento() {
			count++
		}
	}
	return count, nil
}

func (r *stubUsuarioRepo) EmailExists(_ context.Context, email string) (bool, error) {
	if r.failEmailExists {
		return false, errors.New("connection refused")
	}
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

// ── CondominioRepository ─────────────────────────────────────────────────────

type stubCondominioRepo struct {
	condos map[uuid.UUID]*model.Condominio
	// failNombreExists simulates a transient DB error on the uniqueness check.
	failNombreExists bool
}

func newStubCondominioRepo() *stubCondominioRepo {
	return &stubCondominioRepo{condos: make(map[uuid.UUID]*model.Condominio)}
}

func (r *stubCondominioRepo) Create(_ context.Context, c *model.Condominio) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cloned := *c
	r.condos[c.ID] = &cloned
	return nil
}

func (r *stubCondominioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Condominio, error) {
	c, ok := r.condos[id]
	if !ok {
		return nil, errNotFound
	}
	cloned := *c
	return &cloned, nil
}

func (r *stubCondominioRepo) List(_ context.Context) ([]model.Condominio, error) {
	var out []model.Condominio
	for _, c := range r.condos {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCondominioRepo) Update(_ context.Context, c *model.Condominio) error {
	cloned := *c
	r.condos[c.ID] = &cloned
	return nil
}

func (r *stubCondominioRepo) NombreExists(_ context.Context, nombre string) (bool, error) {
	if r.failNombreExists {
		return false, errors.New("connection refused")
	}
	for _, c := range r.condos {
		if strings.EqualFold(c.Nombre, nombre) {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubCondominioRepo) DB() *gorm.DB { return nil }

// ── SuscripcionRepository ────────────────────────────────────────────────────

type stubSuscripcionRepo struct {
	byCondo map[uuid.UUID]*model.Suscripcion
}

func newStubSuscripcionRepo() *stubSuscripcionRepo {
	return &stubSuscripcionRepo{byCondo: make(map[uuid.UUID]*model.Suscripcion)}
}

func (r *stubSuscripcionRepo) Create(_ context.Context, s *model.Suscripcion) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	cloned := *s
	r.byCondo[s.CondominioID] = &cloned
	return nil
}

func (r *stubSuscripcionRepo) FindByCondominio(_ context.Context, condominioID uuid.UUID) (*model.Suscripcion, error) {
	s, ok := r.byCondo[condominioID]
	if !ok {
		return nil, errNotFound
	}
	cloned := *s
	return &cloned, nil
}

func (r *stubSuscripcionRepo) Update(_ context.Context, s *model.Suscripcion) error {
	cloned := *s
	r.byCondo[s.CondominioID] = &cloned
	return nil
}

// ── AreaRepository ───────────────────────────────────────────────────────────

type stubAreaRepo struct {
	areas map[uuid.UUID]*model.Area
}

func newStubAreaRepo() *stubAreaRepo {
	return &stubAreaRepo{areas: make(map[uuid.UUID]*model.Area)}
}

func (r *stubAreaRepo) Create(_ context.Context, a *model.Area) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	cloned := *a
	r.areas[a.ID] = &cloned
	return nil
}

func (r *stubAreaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Area, error) {
	a, ok := r.areas[id]
	if !ok {
		return nil, errNotFound
	}
	cloned := *a
	return &cloned, nil
}

func (r *stubAreaRepo) ListByCondominio(_ context.Context, condominioID uuid.UUID) ([]model.Area, error) {
	var out []model.Area
	for _, a := range r.areas {
		if a.CondominioID == condominioID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubAreaRepo) Update(_ context.Context, a *model.Area) error {
	cloned := *a
	r.areas[a.ID] = &cloned
	return nil
}

func (r *stubAreaRepo) Desactivar(_ context.Context, id uuid.UUID) error {
	a, ok := r.areas[id]
	if !ok {
		return errNotFound
	}
	a.Activo = false
	return nil
}

// ── ReservaRepository ────────────────────────────────────────────────────────

type stubReservaRepo struct {
	reservas map[uuid.UUID]*model.Reserva
}

func newStubReservaRepo() *stubReservaRepo {
	return &stubReservaRepo{reservas: make(map[uuid.UUID]*model.Reserva)}
}

func (r *stubReservaRepo) Create(_ context.Context, res *model.Reserva) error {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	cloned := *res
	r.reservas[res.ID] = &cloned
	return nil
}

func (r *stubReservaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Reserva, error) {
	res, ok := r.reservas[id]
	if !ok {
		return nil, errNotFound
	}
	cloned := *res
	return &cloned, nil
}

func (r *stubReservaRepo) ListByUsuario(_ context.Context, usuarioID uuid.UUID) ([]model.Reserva, error) {
	var out []model.Reserva
	for _, res := range r.reservas {
		if res.UsuarioID == usuarioID {
			out = append(out, *res)
		}
	}
	return out, nil
}

func (r *stubReservaRepo) HasOverlap(_ context.Context, areaID uuid.UUID, fecha time.Time, inicioMin, finMin int) (bool, error) {
	for _, res := range r.reservas {
		if res.AreaID == areaID && res.Estado == model.ReservaConfirmada &&
			res.Fecha.Equal(fecha) && res.InicioMin < finMin && res.FinMin > inicioMin {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubReservaRepo) UpdateEstado(_ context.Context, id uuid.UUID, estado string) error {
	res, ok := r.reservas[id]
	if !ok {
		return errNotFound
	}
	res.Estado = estado
	return nil
}

// ── NotificacionRepository ───────────────────────────────────────────────────

type stubNotificacionRepo struct {
	rows map[uuid.UUID]*model.Notificacion
}

func newStubNotificacionRepo() *stubNotificacionRepo {
	return &stubNotificacionRepo{rows: make(map[uuid.UUID]*model.Notificacion)}
}

func (r *stubNotificacionRepo) Create(_ context.Context, n *model.Notificacion) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.CreatedAt = time.Now()
	cloned := *n
	r.rows[n.ID] = &cloned
	return nil
}

func (r *stubNotificacionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Notificacion, error) {
	n, ok := r.rows[id]
	if !ok {
		return nil, errNotFound
	}
	cloned := *n
	return &cloned, nil
}

func (r *stubNotificacionRepo) ListByUsuario(_ context.Context, usuarioID uuid.UUID) ([]model.Notificacion, error) {
	var out []model.Notificacion
	for _, n := range r.rows {
		if n.UsuarioID == usuarioID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *stubNotificacionRepo) CountNoLeidas(_ context.Context, usuarioID uuid.UUID) (int, error) {
	count := 0
	for _, n := range r.rows {
		if n.UsuarioID == usuarioID && !n.Leida() {
			count++
		}
	}
	return count, nil
}

func (r *stubNotificacionRepo) MarkRead(_ context.Context, id uuid.UUID, at time.Time) error {
	n, ok := r.rows[id]
	if !ok {
		return errNotFound
	}
	if n.ReadAt == nil {
		n.ReadAt = &at
	}
	return nil
}

func (r *stubNotificacionRepo) MarkAllRead(_ context.Context, usuarioID uuid.UUID, at time.Time) error {
	for _, n := range r.rows {
		if n.UsuarioID == usuarioID && n.ReadAt == nil {
			t := at
			n.ReadAt = &t
		}
	}
	return nil
}

// ── PagoRepository ───────────────────────────────────────────────────────────

type stubPagoRepo struct {
	pagos map[string]*model.Pago // by referencia
}

func newStubPagoRepo() *stubPagoRepo {
	return &stubPagoRepo{pagos: make(map[string]*model.Pago)}
}

func (r *stubPagoRepo) Create(_ context.Context, p *model.Pago) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	cloned := *p
	r.pagos[p.Referencia] = &cloned
	return nil
}

func (r *stubPagoRepo) FindByReferencia(_ context.Context, ref string) (*model.Pago, error) {
	p, ok := r.pagos[ref]
	if !ok {
		return nil, errNotFound
	}
	cloned := *p
	return &cloned, nil
}

func (r *stubPagoRepo) Update(_ context.Context, p *model.Pago) error {
	cloned := *p
	r.pagos[p.Referencia] = &cloned
	return nil
}

func (r *stubPagoRepo) ListByUsuario(_ context.Context, usuarioID uuid.UUID) ([]model.Pago, error) {
	var out []model.Pago
	for _, p := range r.pagos {
		if p.UsuarioID == usuarioID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPagoRepo) ListPendientes(_ context.Context, limit int) ([]model.Pago, error) {
	var out []model.Pago
	for _, p := range r.pagos {
		if p.Estado == model.PagoPendiente {
			out = append(out, *p)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

// ── CursoRepository ──────────────────────────────────────────────────────────

type stubCursoRepo struct {
	cursos        map[uuid.UUID]*model.Curso
	lecciones     map[uuid.UUID]*model.Leccion
	inscripciones map[uuid.UUID]*model.Inscripcion
	completadas   []model.LeccionCompletada
}

func newStubCursoRepo() *stubCursoRepo {
	return &stubCursoRepo{
		cursos:        make(map[uuid.UUID]*model.Curso),
		lecciones:     make(map[uuid.UUID]*model.Leccion),
		inscripciones: make(map[uuid.UUID]*model.Inscripcion),
	}
}

func (r *stubCursoRepo) CreateCurso(_ context.Context, c *model.Curso) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cloned := *c
	r.cursos[c.ID] = &cloned
	return nil
}

func (r *stubCursoRepo) FindCursoByID(_ context.Context, id uuid.UUID) (*model.Curso, error) {
	c, ok := r.cursos[id]
	if !ok {
		return nil, errNotFound
	}
	cloned := *c
	return &cloned, nil
}

func (r *stubCursoRepo) ListCursos(_ context.Context, condominioID uuid.UUID) ([]model.Curso, error) {
	var out []model.Curso
	for _, c := range r.cursos {
		if c.CondominioID == condominioID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCursoRepo) CreateLeccion(_ context.Context, l *model.Leccion) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	cloned := *l
	r.lecciones[l.ID] = &cloned
	return nil
}

func (r *stubCursoRepo) ListLecciones(_ context.Context, cursoID uuid.UUID) ([]model.Leccion, error) {
	var out []model.Leccion
	for _, l := range r.lecciones {
		if l.CursoID == cursoID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *stubCursoRepo) CreateInscripcion(_ context.Context, i *model.Inscripcion) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	cloned := *i
	r.inscripciones[i.ID] = &cloned
	return nil
}

func (r *stubCursoRepo) FindInscripcion(_ context.Context, cursoID, usuarioID uuid.UUID) (*model.Inscripcion, error) {
	for _, i := range r.inscripciones {
		if i.CursoID == cursoID && i.UsuarioID == usuarioID {
			cloned := *i
			return &cloned, nil
		}
	}
	return nil, errNotFound
}

// CompletarLeccion mirrors the FirstOrCreate upsert: repeating a completion
// leaves the row set unchanged.
func (r *stubCursoRepo) CompletarLeccion(_ context.Context, c *model.LeccionCompletada) error {
	for _, existing := range r.completadas {
		if existing.InscripcionID == c.InscripcionID && existing.LeccionID == c.LeccionID {
			return nil
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.completadas = append(r.completadas, *c)
	return nil
}

func (r *stubCursoRepo) ListCompletadas(_ context.Context, inscripcionID uuid.UUID) ([]model.LeccionCompletada, error) {
	var out []model.LeccionCompletada
	for _, c := range r.completadas {
		if c.InscripcionID == inscripcionID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *stubCursoRepo) CountLecciones(_ context.Context, cursoID uuid.UUID) (int, error) {
	count := 0
	for _, l := range r.lecciones {
		if l.CursoID == cursoID {
			count++
		}
	}
	return count, nil
}
