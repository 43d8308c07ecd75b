// Package wizard drives the six-step tenant onboarding flow: per-step
// validation, forward/back transitions with one conditionally skipped step,
// and durable snapshotting of in-progress drafts so a reload never loses
// operator work.
package wizard

// Step indices are 1-based and fixed:
// 1 Info, 2 Admin, 3 Modules, 4 Billing, 5 Areas (conditional), 6 Summary.
const (
	StepInfo    = 1
	StepAdmin   = 2
	StepModules = 3
	StepBilling = 4
	StepAreas   = 5
	StepSummary = 6
)

// CondominioForm is the step-1 sub-form.
type CondominioForm struct {
	Nombre    string `json:"nombre"`
	Direccion string `json:"direccion"`
	Telefono  string `json:"telefono"`
}

// AdminForm is the step-2 sub-form: the tenant's first administrator.
type AdminForm struct {
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
}

// ModulesForm is the step-3 sub-form. Usuarios is mandatory and cannot be
// disabled; Reservas gates whether the Areas step is reachable.
type ModulesForm struct {
	Usuarios    bool `json:"usuarios"`
	Reservas    bool `json:"reservas"`
	Aprendizaje bool `json:"aprendizaje"`
	Pagos       bool `json:"pagos"`
}

// BillingForm is the step-4 sub-form.
type BillingForm struct {
	Seats int    `json:"seats"`
	Cycle string `json:"cycle"` // monthly | yearly
}

// AreaForm is one row of the step-5 area list.
type AreaForm struct {
	Nombre    string `json:"nombre"`
	Capacidad int    `json:"capacidad"`
}

// Draft aggregates every sub-form plus the current step. It is the unit of
// persistence: the whole draft is snapshotted after every mutation and
// restored verbatim on reload.
type Draft struct {
	CurrentStep int            `json:"current_step"`
	Condominio  CondominioForm `json:"condominio"`
	Admin       AdminForm      `json:"admin"`
	Modules     ModulesForm    `json:"modules"`
	Billing     BillingForm    `json:"billing"`
	Areas       []AreaForm     `json:"areas"`
}

// NewDraft returns a fresh draft positioned on step 1 with the mandatory
// module enabled.
func NewDraft() *Draft {
	return &Draft{
		CurrentStep: StepInfo,
		Modules:     ModulesForm{Usuarios: true},
		Billing:     BillingForm{Seats: 1, Cycle: "monthly"},
	}
}
