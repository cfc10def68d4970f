package domain

// Role identifies the two kinds of portal accounts.
type Role string

const (
	RoleApplicant Role = "applicant"
	RoleRecruiter Role = "recruiter"
)

// ParseRole validates a role string coming from storage or the upstream API.
func ParseRole(s string) (Role, bool) {
	role := Role(s)
	return role, role.Valid()
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleApplicant || r == RoleRecruiter
}
