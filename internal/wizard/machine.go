package wizard

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Seat count bounds enforced on the billing step.
const (
	MinSeats = 1
	MaxSeats = 10000
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ErrStepInvalid is returned by Advance when the current step fails its
// validation predicate; the draft is left untouched.
var ErrStepInvalid = errors.New("el paso actual tiene datos invalidos")

// IsStepValid runs the per-step validation predicate against the draft.
// Steps 3 and 6 are always valid; step 5 is vacuously valid when the area
// list is empty.
func IsStepValid(step int, d *Draft) bool {
	switch step {
	case StepInfo:
		// Rune counts, not bytes: accented Spanish names must not get extra
		// slack from their multibyte encoding.
		return utf8.RuneCountInString(d.Condominio.Nombre) >= 2 &&
			utf8.RuneCountInString(d.Condominio.Direccion) >= 5
	case StepAdmin:
		return utf8.RuneCountInString(d.Admin.Nombre) >= 2 && emailRe.MatchString(d.Admin.Email)
	case StepModules:
		return true
	case StepBilling:
		return d.Billing.Seats >= MinSeats && d.Billing.Seats <= MaxSeats
	case StepAreas:
		for _, a := range d.Areas {
			if utf8.RuneCountInString(a.Nombre) < 2 || a.Capacidad <= 0 {
				return false
			}
		}
		return true
	case StepSummary:
		return true
	default:
		return false
	}
}

// Advance moves the draft to the next step, skipping Areas when the
// reservations module is disabled. It refuses to move — returning
// ErrStepInvalid and leaving CurrentStep unchanged — when the current step
// fails validation.
func Advance(d *Draft) (int, error) {
	step := d.CurrentStep
	if step < StepInfo || step >= StepSummary {
		return step, fmt.Errorf("no se puede avanzar desde el paso %d", step)
	}
	if !IsStepValid(step, d) {
		return step, ErrStepInvalid
	}
	next := step + 1
	if step == StepBilling && !d.Modules.Reservas {
		next = StepSummary
	}
	d.CurrentStep = next
	return next, nil
}

// Retreat is the mirror of Advance: leaving the summary lands on Billing
// when reservations are disabled, on Areas otherwise. Going back never
// validates — the operator may always return to fix earlier input.
func Retreat(d *Draft) (int, error) {
	step := d.CurrentStep
	if step <= StepInfo || step > StepSummary {
		return step, fmt.Errorf("no se puede retroceder desde el paso %d", step)
	}
	prev := step - 1
	if step == StepSummary && !d.Modules.Reservas {
		prev = StepBilling
	}
	d.CurrentStep = prev
	return prev, nil
}

// Rewind forces the draft back to a specific step after a server-side
// conflict (name or email already taken) without touching any field data.
func Rewind(d *Draft, step int) {
	if step >= StepInfo && step <= StepSummary {
		d.CurrentStep = step
	}
}
