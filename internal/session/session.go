package session

import (
	"github.com/spec-kit/recruitment-portal/internal/domain"
)

// Session is the identity triple held for one signed-in browser: the bearer
// token issued by the recruitment API, the account role, and the person id.
// The three fields are all-or-nothing; a Session missing any of them means
// "not signed in".
type Session struct {
	Token    string
	Role     domain.Role
	PersonID int64
}

// Authenticated reports whether the session carries an identity.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Normalize collapses any partial triple to the anonymous session. Store
// implementations call this on every read so a torn or tampered entry can
// never surface as a half-signed-in identity.
func (s Session) Normalize() Session {
	if s.Token == "" || !s.Role.Valid() || s.PersonID == 0 {
		return Session{}
	}
	return s
}
