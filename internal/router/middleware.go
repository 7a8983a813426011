package router

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"smartvegis/internal/cache"
	apperrors "smartvegis/internal/errors"
)

// RateLimit rejects clients that exceed the limiter's budget with
// ErrTooManyRequests. Clients are keyed by IP.
func RateLimit(limiter *cache.RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow(c.Request().Context(), c.RealIP()) {
				return apperrors.ErrTooManyRequests
			}
			return next(c)
		}
	}
}

// ErrorHandler renders every error as the JSON error envelope. Unexpected
// errors are logged and answered with a generic 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		switch echoErr.Code {
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			err = apperrors.ErrRouteNotFound
		case http.StatusRequestEntityTooLarge:
			err = apperrors.NewHTTPError(http.StatusRequestEntityTooLarge, "request body too large", "PAYLOAD_TOO_LARGE")
		case http.StatusBadRequest, http.StatusUnsupportedMediaType:
			err = apperrors.NewValidationError("invalid request")
		}
	}

	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		req := c.Request()
		slog.ErrorContext(req.Context(), "request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"error", err,
		)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(httpErr.StatusCode)
	} else {
		err = c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	if err != nil {
		slog.Error("write error response", "error", err)
	}
}

// CustomValidator wraps validator for Echo and reports failures as
// ValidationErrors named by the JSON field.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a validator that names fields by their json tag.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.NewValidationError("invalid request")
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return apperrors.NewValidationError(fe.Field() + " is required")
	case "min":
		return apperrors.NewValidationError(fe.Field() + " must be at least " + fe.Param() + " characters")
	default:
		return apperrors.NewValidationError(fe.Field() + " is invalid")
	}
}
