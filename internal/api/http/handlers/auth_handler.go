package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/recruitment-portal/internal/api/dto"
	"github.com/spec-kit/recruitment-portal/internal/domain"
	"github.com/spec-kit/recruitment-portal/internal/events"
	"github.com/spec-kit/recruitment-portal/internal/guard"
	"github.com/spec-kit/recruitment-portal/internal/session"
	"github.com/spec-kit/recruitment-portal/internal/upstream"
	apperrors "github.com/spec-kit/recruitment-portal/pkg/util"
)

// AuthHandler exposes the sign-in, sign-out and session endpoints.
type AuthHandler struct {
	client     *upstream.Client
	store      session.Store
	events     events.Dispatcher
	cookieName string
}

// NewAuthHandler constructs handler.
func NewAuthHandler(client *upstream.Client, store session.Store, dispatcher events.Dispatcher, cookieName string) *AuthHandler {
	return &AuthHandler{client: client, store: store, events: dispatcher, cookieName: cookieName}
}

// Login handles POST /auth/login. On success the three identity values come
// back from the token exchange and are stored together under a fresh session
// id, which the browser keeps in a session cookie (no Max-Age: it dies with
// the browser, surviving reloads but not restarts).
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	creds, err := h.client.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		var statusErr *upstream.StatusError
		if errors.As(err, &statusErr) && statusErr.Status == http.StatusUnauthorized {
			return apperrors.NewDomainError("INVALID_CREDENTIALS", statusErr.Message, http.StatusUnauthorized, nil)
		}
		return err
	}
	if creds.Token == "" || !creds.Role.Valid() || creds.ID == 0 {
		return apperrors.NewInternalError(errors.New("incomplete token response from recruitment API"))
	}

	sid := uuid.NewString()
	sess := session.Session{Token: creds.Token, Role: creds.Role, PersonID: creds.ID}
	if err := h.store.Put(c.UserContext(), sid, sess); err != nil {
		return apperrors.NewInternalError(err)
	}

	c.Cookie(&fiber.Cookie{
		Name:        h.cookieName,
		Value:       sid,
		HTTPOnly:    true,
		SameSite:    "Lax",
		SessionOnly: true,
	})

	_ = h.events.Publish(c.UserContext(), events.Event{
		Type:      events.EventSessionCreated,
		SessionID: sid,
		Role:      sess.Role,
		PersonID:  sess.PersonID,
	})

	return c.JSON(fiber.Map{
		"data": dto.SessionResponse{Authenticated: true, Role: sess.Role, PersonID: sess.PersonID},
	})
}

// Logout handles POST /auth/logout. Idempotent: signing out twice is fine.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := guard.SessionID(c)
	sess := guard.CurrentSession(c)

	if sid != "" {
		if err := h.store.Clear(c.UserContext(), sid); err != nil {
			return apperrors.NewInternalError(err)
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	if sess.Authenticated() {
		_ = h.events.Publish(c.UserContext(), events.Event{
			Type:      events.EventSessionCleared,
			SessionID: sid,
			Role:      sess.Role,
			PersonID:  sess.PersonID,
		})
	}

	return c.JSON(fiber.Map{"data": fiber.Map{"status": "signed out"}})
}

// Session handles GET /auth/session. A pure read of the resolved snapshot;
// it never touches the store or the network.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	sess := guard.CurrentSession(c)
	if !sess.Authenticated() {
		return c.JSON(fiber.Map{"data": dto.SessionResponse{Authenticated: false}})
	}
	return c.JSON(fiber.Map{
		"data": dto.SessionResponse{Authenticated: true, Role: sess.Role, PersonID: sess.PersonID},
	})
}

// Register handles POST /person/register by passing the registration through
// to the recruitment API. Rejections (duplicate username and the like) come
// back verbatim.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" || req.Name == "" || req.Surname == "" || req.Email == "" || req.Pnr == "" {
		return apperrors.NewValidationError("name, surname, pnr, email, username and password required", nil)
	}

	err := h.client.Register(c.UserContext(), domain.Registration{
		Name:     req.Name,
		Surname:  req.Surname,
		Pnr:      req.Pnr,
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"status": "registered"}})
}
