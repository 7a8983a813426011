package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smartvegis/internal/model"
	"smartvegis/internal/service"
)

// AuthHandler handles license verification, signup and login.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// VerifyFSSAIRequest represents a license verification request.
type VerifyFSSAIRequest struct {
	FSSAINumber string `json:"fssaiNumber" validate:"required"`
}

// SignupRequest represents a vendor registration request. FSSAIData is the
// profile returned by verify-fssai.
type SignupRequest struct {
	FSSAINumber string                `json:"fssaiNumber" validate:"required"`
	PhoneNumber string                `json:"phoneNumber" validate:"required"`
	Name        string                `json:"name" validate:"required"`
	Password    string                `json:"password" validate:"required"`
	FSSAIData   *model.LicenseProfile `json:"fssaiData"`
}

// LoginRequest represents a vendor login request.
type LoginRequest struct {
	FSSAINumber string `json:"fssaiNumber" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

// VendorSession is the vendor summary returned with a session token.
type VendorSession struct {
	ID            string `json:"id"`
	FSSAINumber   string `json:"fssaiNumber"`
	Name          string `json:"name"`
	StoreName     string `json:"storeName"`
	AltStoreName  string `json:"altStoreName"`
	IsLocationSet bool   `json:"isLocationSet"`
	District      string `json:"district"`
	ProfilePhoto  string `json:"profilePhoto"`
}

func newVendorSession(v *model.Vendor) VendorSession {
	return VendorSession{
		ID:            v.ID.String(),
		FSSAINumber:   v.FSSAINumber,
		Name:          v.Name,
		StoreName:     v.StoreName,
		AltStoreName:  v.AltStoreName,
		IsLocationSet: v.IsLocationSet,
		District:      v.District,
		ProfilePhoto:  v.ProfilePhoto,
	}
}

// VerifyFSSAI godoc
// @Summary Verify an FSSAI license before signup
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyFSSAIRequest true "License number"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /auth/verify-fssai [post]
func (h *AuthHandler) VerifyFSSAI(c echo.Context) error {
	var req VerifyFSSAIRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.authService.VerifyLicense(c.Request().Context(), req.FSSAINumber)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, echo.Map{
		"verified": result.Verified,
		"data":     result.Data,
		"isMock":   result.IsMock,
	})
}

// Signup godoc
// @Summary Register a vendor
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	vendor, token, err := h.authService.Signup(c.Request().Context(), service.SignupInput{
		FSSAINumber: req.FSSAINumber,
		PhoneNumber: req.PhoneNumber,
		Name:        req.Name,
		Password:    req.Password,
		Profile:     req.FSSAIData,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, echo.Map{
		"token":  token,
		"vendor": newVendorSession(vendor),
	})
}

// Login godoc
// @Summary Log a vendor in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	vendor, token, err := h.authService.Login(c.Request().Context(), req.FSSAINumber, req.Password)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, echo.Map{
		"token":  token,
		"vendor": newVendorSession(vendor),
	})
}
