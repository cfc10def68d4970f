package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/recruitment-portal/internal/events"
	"github.com/spec-kit/recruitment-portal/internal/guard"
	"github.com/spec-kit/recruitment-portal/internal/session"
	"github.com/spec-kit/recruitment-portal/internal/upstream"
	apperrors "github.com/spec-kit/recruitment-portal/pkg/util"
)

// CatalogHandler exposes the competence and language catalogs both roles
// browse when filling in or reviewing applications.
type CatalogHandler struct {
	client *upstream.Client
	store  session.Store
	events events.Dispatcher
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(client *upstream.Client, store session.Store, dispatcher events.Dispatcher) *CatalogHandler {
	return &CatalogHandler{client: client, store: store, events: dispatcher}
}

func (h *CatalogHandler) caller(c *fiber.Ctx) *upstream.Caller {
	return h.client.Bind(h.store, h.events, guard.SessionID(c))
}

// Competences handles GET /catalog/competences.
func (h *CatalogHandler) Competences(c *fiber.Ctx) error {
	competences, err := h.caller(c).Competences(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": competences})
}

// Competence handles GET /catalog/competences/:id.
func (h *CatalogHandler) Competence(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return apperrors.NewValidationError("id must be a positive integer", nil)
	}

	competence, err := h.caller(c).Competence(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": competence})
}

// Languages handles GET /catalog/languages.
func (h *CatalogHandler) Languages(c *fiber.Ctx) error {
	languages, err := h.caller(c).Languages(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": languages})
}

// Translations handles GET /catalog/translations?language=.
func (h *CatalogHandler) Translations(c *fiber.Ctx) error {
	language := c.Query("language")
	if language == "" {
		return apperrors.NewValidationError("language query parameter required", nil)
	}

	translations, err := h.caller(c).CompetenceTranslations(c.UserContext(), language)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": translations})
}
