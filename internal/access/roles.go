// Package access is the single source of truth for role-based access
// decisions: which landing screen a user's role set maps to, and whether a
// role set may enter a given route. Handlers and middleware must consult
// this package instead of re-deriving role logic.
package access

// Role is one of the fixed platform role tags.
type Role string

const (
	RoleSuperAdmin    Role = "SuperAdmin"
	RoleAdministrador Role = "Administrador"
	RoleSupervisor    Role = "Supervisor"
	RoleGuarda        Role = "Guarda"
	RoleResidente     Role = "Residente"
	RoleEstudiante    Role = "Estudiante"
	RoleHR            Role = "HR"
)

var allRoles = map[Role]bool{
	RoleSuperAdmin:    true,
	RoleAdministrador: true,
	RoleSupervisor:    true,
	RoleGuarda:        true,
	RoleResidente:     true,
	RoleEstudiante:    true,
	RoleHR:            true,
}

// Normalize maps legacy spellings onto the canonical tag set. Older surfaces
// stored "RRHH" where the canonical tag is "HR"; both are accepted on input
// and collapsed here so the rest of the system only ever sees one spelling.
func Normalize(raw string) Role {
	if raw == "RRHH" {
		return RoleHR
	}
	return Role(raw)
}

// Valid reports whether r belongs to the closed role set.
func Valid(r Role) bool { return allRoles[r] }

// NormalizeAll normalizes a raw tag list, dropping duplicates while keeping
// the original order (the first tag is the display "primary role").
func NormalizeAll(raw []string) []Role {
	seen := make(map[Role]bool, len(raw))
	out := make([]Role, 0, len(raw))
	for _, s := range raw {
		r := Normalize(s)
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

// Strings converts a role list back to its wire representation.
func Strings(roles []Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

// Contains reports whether roles includes r.
func Contains(roles []Role, r Role) bool {
	for _, have := range roles {
		if have == r {
			return true
		}
	}
	return false
}
