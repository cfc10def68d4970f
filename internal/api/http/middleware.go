package http

import (
	"errors"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/recruitment-portal/internal/guard"
	"github.com/spec-kit/recruitment-portal/internal/observability"
	"github.com/spec-kit/recruitment-portal/internal/upstream"
	apperrors "github.com/spec-kit/recruitment-portal/pkg/util"
)

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics) {
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(errorHandlingMiddleware(logger, metrics))
}

// errorHandlingMiddleware converts every error into the portal's JSON error
// envelope. Session-related denials additionally carry a redirect hint the
// SPA follows to the login view.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := normalizeError(err)
				metrics.RecordError(c.Path(), c.Method(), domainErr.Code)

				errBody := fiber.Map{
					"code":    domainErr.Code,
					"message": domainErr.Message,
				}
				if len(domainErr.Details) > 0 {
					errBody["details"] = domainErr.Details
				}
				response := fiber.Map{"error": errBody}
				if redirectsToLogin(domainErr.Code) {
					response["redirect"] = guard.LoginPath
				}

				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.Error(domainErr))
				}
				c.Status(domainErr.HTTPStatus)
				_ = c.JSON(response)
				err = nil
			}
		}()
		return c.Next()
	}
}

// normalizeError folds the upstream error taxonomy and fiber errors into
// DomainError so one envelope shape covers everything.
func normalizeError(err error) *apperrors.DomainError {
	if errors.Is(err, upstream.ErrSessionExpired) {
		return apperrors.ToDomainError(apperrors.NewSessionExpired())
	}

	var statusErr *upstream.StatusError
	if errors.As(err, &statusErr) {
		return &apperrors.DomainError{
			Code:       "UPSTREAM_REJECTED",
			Message:    statusErr.Message,
			HTTPStatus: statusErr.Status,
		}
	}

	var netErr *upstream.NetworkError
	if errors.As(err, &netErr) {
		return apperrors.ToDomainError(apperrors.NewBadGateway(netErr))
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return &apperrors.DomainError{
			Code:       "REQUEST_FAILED",
			Message:    fiberErr.Message,
			HTTPStatus: fiberErr.Code,
		}
	}

	return apperrors.ToDomainError(err)
}

func redirectsToLogin(code string) bool {
	switch code {
	case "SESSION_EXPIRED", "UNAUTHORIZED", "FORBIDDEN":
		return true
	}
	return false
}
