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

// ApplicantHandler exposes the applicant's own profile and application
// endpoints. The person id always comes from the session, never from the
// request, so an applicant can only ever touch their own data.
type ApplicantHandler struct {
	client *upstream.Client
	store  session.Store
	events events.Dispatcher
}

// NewApplicantHandler constructs handler.
func NewApplicantHandler(client *upstream.Client, store session.Store, dispatcher events.Dispatcher) *ApplicantHandler {
	return &ApplicantHandler{client: client, store: store, events: dispatcher}
}

func (h *ApplicantHandler) caller(c *fiber.Ctx) *upstream.Caller {
	return h.client.Bind(h.store, h.events, guard.SessionID(c))
}

// CompetenceProfiles handles GET /applicant/competences.
func (h *ApplicantHandler) CompetenceProfiles(c *fiber.Ctx) error {
	profiles, err := h.caller(c).CompetenceProfiles(c.UserContext(), guard.CurrentSession(c).PersonID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": profiles})
}

// CreateCompetenceProfile handles POST /applicant/competences.
func (h *ApplicantHandler) CreateCompetenceProfile(c *fiber.Ctx) error {
	var req dto.CreateCompetenceProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.CompetenceID <= 0 {
		return apperrors.NewValidationError("competenceId required", nil)
	}
	if req.YearsOfExperience < 0 {
		return apperrors.NewValidationError("yearsOfExperience must not be negative", nil)
	}

	profile, err := h.caller(c).CreateCompetenceProfile(
		c.UserContext(), guard.CurrentSession(c).PersonID, req.CompetenceID, req.YearsOfExperience)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": profile})
}

// Availability handles GET /applicant/availability.
func (h *ApplicantHandler) Availability(c *fiber.Ctx) error {
	periods, err := h.caller(c).Availability(c.UserContext(), guard.CurrentSession(c).PersonID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": periods})
}

// CreateAvailability handles POST /applicant/availability.
func (h *ApplicantHandler) CreateAvailability(c *fiber.Ctx) error {
	var req dto.CreateAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.FromDate == "" || req.ToDate == "" {
		return apperrors.NewValidationError("fromDate and toDate required", nil)
	}

	period, err := h.caller(c).CreateAvailability(
		c.UserContext(), guard.CurrentSession(c).PersonID, req.FromDate, req.ToDate)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": period})
}

// SubmitApplication handles POST /applicant/applications.
func (h *ApplicantHandler) SubmitApplication(c *fiber.Ctx) error {
	var req dto.SubmitApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if len(req.AvailabilityIDs) == 0 || len(req.CompetenceProfileIDs) == 0 {
		return apperrors.NewValidationError("availabilityIds and competenceProfileIds required", nil)
	}

	application, err := h.caller(c).SubmitApplication(c.UserContext(), domain.ApplicationSubmission{
		PersonID:             guard.CurrentSession(c).PersonID,
		AvailabilityIDs:      req.AvailabilityIDs,
		CompetenceProfileIDs: req.CompetenceProfileIDs,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": application})
}
