package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smartvegis/internal/service"
)

// VendorHandler handles the authenticated vendor's profile.
type VendorHandler struct {
	vendorService service.VendorService
}

// NewVendorHandler creates a new vendor handler.
func NewVendorHandler(vendorService service.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

// UpdateProfileRequest represents a profile update. Omitted fields are left unchanged.
type UpdateProfileRequest struct {
	AltStoreName *string   `json:"altStoreName"`
	ProfilePhoto *string   `json:"profilePhoto"`
	StorePhotos  *[]string `json:"storePhotos"`
}

// UpdateLocationRequest represents a store location update.
type UpdateLocationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required"`
	District  string   `json:"district"`
	Address   string   `json:"address"`
	Pincode   string   `json:"pincode"`
}

// GetProfile godoc
// @Summary Get the current vendor's profile
// @Tags vendor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /vendor/profile [get]
func (h *VendorHandler) GetProfile(c echo.Context) error {
	vendorID, err := currentVendorID(c)
	if err != nil {
		return err
	}

	vendor, err := h.vendorService.GetProfile(c.Request().Context(), vendorID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"vendor": vendor})
}

// UpdateProfile godoc
// @Summary Update alternate store name and photos
// @Tags vendor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /vendor/profile [put]
func (h *VendorHandler) UpdateProfile(c echo.Context) error {
	vendorID, err := currentVendorID(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	vendor, err := h.vendorService.UpdateProfile(c.Request().Context(), vendorID, service.ProfileUpdate{
		AltStoreName: req.AltStoreName,
		ProfilePhoto: req.ProfilePhoto,
		StorePhotos:  req.StorePhotos,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"vendor": vendor})
}

// UpdateLocation godoc
// @Summary Set the store location
// @Tags vendor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateLocationRequest true "Coordinates and address"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /vendor/location [put]
func (h *VendorHandler) UpdateLocation(c echo.Context) error {
	vendorID, err := currentVendorID(c)
	if err != nil {
		return err
	}

	var req UpdateLocationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	vendor, err := h.vendorService.UpdateLocation(c.Request().Context(), vendorID, service.LocationUpdate{
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		District:  req.District,
		Address:   req.Address,
		Pincode:   req.Pincode,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"vendor": vendor})
}
