package guard

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/recruitment-portal/internal/domain"
	"github.com/spec-kit/recruitment-portal/internal/events"
	"github.com/spec-kit/recruitment-portal/internal/session"
	apperrors "github.com/spec-kit/recruitment-portal/pkg/util"
)

const (
	sessionKey   = "portal_session"
	sessionIDKey = "portal_session_id"
)

// LoginPath is where denied requests are pointed. The SPA follows the
// redirect hint in the error envelope.
const LoginPath = "/login"

// Guard resolves sessions from the browser cookie and enforces route
// requirements.
type Guard struct {
	store      session.Store
	events     events.Dispatcher
	logger     *zap.Logger
	cookieName string
}

// New constructs the guard.
func New(store session.Store, dispatcher events.Dispatcher, logger *zap.Logger, cookieName string) *Guard {
	return &Guard{store: store, events: dispatcher, logger: logger, cookieName: cookieName}
}

// Resolve loads the session named by the cookie into the request context.
// Requests without a cookie, or whose entry has lapsed, carry the anonymous
// session. Runs on every route, protected or not.
func (g *Guard) Resolve() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(g.cookieName)
		sess := session.Session{}
		if sid != "" {
			loaded, err := g.store.Get(c.UserContext(), sid)
			if err != nil {
				return apperrors.NewInternalError(err)
			}
			sess = loaded
		}
		c.Locals(sessionIDKey, sid)
		c.Locals(sessionKey, sess)
		return c.Next()
	}
}

// RequireAuthenticated admits any signed-in user with a live token.
func (g *Guard) RequireAuthenticated() fiber.Handler {
	return g.require(Authenticated())
}

// RequireRole admits only signed-in users holding the given role.
func (g *Guard) RequireRole(role domain.Role) fiber.Handler {
	return g.require(HasRole(role))
}

func (g *Guard) require(req Requirement) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := CurrentSession(c)
		decision := Evaluate(sess, req)
		if decision.Allowed {
			return c.Next()
		}

		switch decision.Reason {
		case ReasonExpired:
			// Only true expiry tears the session down. A signed-in user of
			// the other role merely gets turned away; their session stays
			// valid for the routes it does grant.
			sid := SessionID(c)
			_ = g.store.Clear(c.UserContext(), sid)
			if g.events != nil {
				_ = g.events.Publish(c.UserContext(), events.Event{
					Type:      events.EventSessionExpired,
					SessionID: sid,
					Role:      sess.Role,
					PersonID:  sess.PersonID,
					Detail:    "expired token on guarded route",
				})
			}
			return apperrors.NewSessionExpired()
		case ReasonWrongRole:
			g.logger.Info("wrong role on guarded route",
				zap.String("role", string(sess.Role)),
				zap.String("path", c.Path()),
			)
			return apperrors.NewForbidden("this page requires a different role")
		default:
			return apperrors.NewUnauthorized("please sign in first")
		}
	}
}

// CurrentSession returns the session snapshot resolved for this request.
func CurrentSession(c *fiber.Ctx) session.Session {
	if sess, ok := c.Locals(sessionKey).(session.Session); ok {
		return sess
	}
	return session.Session{}
}

// SessionID returns the cookie value resolved for this request, or "".
func SessionID(c *fiber.Ctx) string {
	if sid, ok := c.Locals(sessionIDKey).(string); ok {
		return sid
	}
	return ""
}
