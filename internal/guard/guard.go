// Package guard gates portal routes on the current browser session. Every
// request to a protected group is evaluated fresh against the session store;
// nothing about a past decision is cached.
package guard

import (
	"github.com/spec-kit/recruitment-portal/internal/domain"
	"github.com/spec-kit/recruitment-portal/internal/session"
	"github.com/spec-kit/recruitment-portal/internal/token"
)

// Reason explains why a request was denied.
type Reason int

const (
	ReasonNone Reason = iota
	// ReasonAnonymous means no session exists at all.
	ReasonAnonymous
	// ReasonExpired means a session exists but its token has lapsed.
	ReasonExpired
	// ReasonWrongRole means a valid session exists for the other role.
	ReasonWrongRole
)

// Decision is the outcome of evaluating a requirement against a session.
type Decision struct {
	Allowed bool
	Reason  Reason
}

// Requirement names what a route group demands of the session. A nil Role
// means any authenticated user qualifies.
type Requirement struct {
	Role *domain.Role
}

// Authenticated requires any signed-in user with a live token.
func Authenticated() Requirement {
	return Requirement{}
}

// HasRole requires a signed-in user holding exactly the given role.
func HasRole(role domain.Role) Requirement {
	return Requirement{Role: &role}
}

// Evaluate applies a requirement to a session snapshot. Order matters: a
// missing token is anonymous, an expired one is expired, and only a session
// that passes both is checked for role. A wrong-role denial therefore always
// describes a session that is otherwise perfectly valid.
func Evaluate(sess session.Session, req Requirement) Decision {
	if !sess.Authenticated() {
		return Decision{Reason: ReasonAnonymous}
	}
	if token.Expired(sess.Token) {
		return Decision{Reason: ReasonExpired}
	}
	if req.Role != nil && sess.Role != *req.Role {
		return Decision{Reason: ReasonWrongRole}
	}
	return Decision{Allowed: true}
}
