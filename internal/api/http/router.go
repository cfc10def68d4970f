package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/recruitment-portal/internal/api/http/handlers"
	"github.com/spec-kit/recruitment-portal/internal/domain"
	"github.com/spec-kit/recruitment-portal/internal/guard"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Catalog   *handlers.CatalogHandler
	Applicant *handlers.ApplicantHandler
	Recruiter *handlers.RecruiterHandler
	Guard     *guard.Guard
}

// RegisterRoutes wires HTTP routes. The route groups form the declarative
// table of which requirement gates which part of the portal.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Guard.Resolve())

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)
	app.Post("/auth/logout", cfg.Auth.Logout)
	app.Get("/auth/session", cfg.Auth.Session)
	app.Post("/person/register", cfg.Auth.Register)

	catalog := app.Group("/catalog", cfg.Guard.RequireAuthenticated())
	catalog.Get("/competences", cfg.Catalog.Competences)
	catalog.Get("/competences/:id", cfg.Catalog.Competence)
	catalog.Get("/languages", cfg.Catalog.Languages)
	catalog.Get("/translations", cfg.Catalog.Translations)

	applicant := app.Group("/applicant", cfg.Guard.RequireRole(domain.RoleApplicant))
	applicant.Get("/competences", cfg.Applicant.CompetenceProfiles)
	applicant.Post("/competences", cfg.Applicant.CreateCompetenceProfile)
	applicant.Get("/availability", cfg.Applicant.Availability)
	applicant.Post("/availability", cfg.Applicant.CreateAvailability)
	applicant.Post("/applications", cfg.Applicant.SubmitApplication)

	recruiter := app.Group("/recruiter", cfg.Guard.RequireRole(domain.RoleRecruiter))
	recruiter.Get("/applications", cfg.Recruiter.Applications)
	recruiter.Get("/applications/status/:status", cfg.Recruiter.ApplicationsByStatus)
	recruiter.Post("/applications/status", cfg.Recruiter.UpdateApplicationStatus)
	recruiter.Get("/persons", cfg.Recruiter.FindPersons)
}
