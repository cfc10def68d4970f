package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/recruitment-portal/internal/api/dto"
	"github.com/spec-kit/recruitment-portal/internal/domain"
	"github.com/spec-kit/recruitment-portal/internal/events"
	"github.com/spec-kit/recruitment-portal/internal/guard"
	"github.com/spec-kit/recruitment-portal/internal/session"
	"github.com/spec-kit/recruitment-portal/internal/upstream"
	apperrors "github.com/spec-kit/recruitment-portal/pkg/util"
)

// RecruiterHandler exposes the review dashboard endpoints.
type RecruiterHandler struct {
	client *upstream.Client
	store  session.Store
	events events.Dispatcher
}

// NewRecruiterHandler constructs handler.
func NewRecruiterHandler(client *upstream.Client, store session.Store, dispatcher events.Dispatcher) *RecruiterHandler {
	return &RecruiterHandler{client: client, store: store, events: dispatcher}
}

func (h *RecruiterHandler) caller(c *fiber.Ctx) *upstream.Caller {
	return h.client.Bind(h.store, h.events, guard.SessionID(c))
}

// Applications handles GET /recruiter/applications.
func (h *RecruiterHandler) Applications(c *fiber.Ctx) error {
	applications, err := h.caller(c).Applications(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applications})
}

// ApplicationsByStatus handles GET /recruiter/applications/status/:status.
func (h *RecruiterHandler) ApplicationsByStatus(c *fiber.Ctx) error {
	status, ok := domain.ParseApplicationStatus(c.Params("status"))
	if !ok {
		return apperrors.NewValidationError("status must be unchecked, accepted or denied", nil)
	}

	applications, err := h.caller(c).ApplicationsByStatus(c.UserContext(), status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applications})
}

// UpdateApplicationStatus handles POST /recruiter/applications/status.
func (h *RecruiterHandler) UpdateApplicationStatus(c *fiber.Ctx) error {
	var req dto.UpdateApplicationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.ApplicationID <= 0 {
		return apperrors.NewValidationError("applicationId required", nil)
	}
	status, ok := domain.ParseApplicationStatus(req.Status)
	if !ok {
		return apperrors.NewValidationError("status must be unchecked, accepted or denied", nil)
	}

	application, err := h.caller(c).UpdateApplicationStatus(
		c.UserContext(), req.ApplicationID, status, req.VersionNumber)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": application})
}

// FindPersons handles GET /recruiter/persons?name=.
func (h *RecruiterHandler) FindPersons(c *fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		return apperrors.NewValidationError("name query parameter required", nil)
	}

	persons, err := h.caller(c).FindPersons(c.UserContext(), name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": persons})
}
