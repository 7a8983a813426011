package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"smartvegis/internal/auth"
	apperrors "smartvegis/internal/errors"
)

// respond writes a success envelope: payload fields next to "success": true.
func respond(c echo.Context, status int, payload echo.Map) error {
	body := echo.Map{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(status, body)
}

// bindAndValidate decodes the request into req and runs the struct validator.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperrors.NewValidationError("invalid request body")
	}
	return c.Validate(req)
}

// currentVendorID returns the authenticated vendor's ID.
func currentVendorID(c echo.Context) (uuid.UUID, error) {
	claims, err := auth.ClaimsFromContext(c)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(claims.VendorID)
	if err != nil {
		return uuid.Nil, apperrors.ErrInvalidToken
	}
	return id, nil
}
