package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"smartvegis/internal/catalog"
	apperrors "smartvegis/internal/errors"
	"smartvegis/internal/model"
	"smartvegis/internal/service"
)

// StorefrontHandler serves the public consumer views.
type StorefrontHandler struct {
	storefrontService service.StorefrontService
}

// NewStorefrontHandler creates a new storefront handler.
func NewStorefrontHandler(storefrontService service.StorefrontService) *StorefrontHandler {
	return &StorefrontHandler{storefrontService: storefrontService}
}

// originParam reads the optional lat/lng query pair.
func originParam(c echo.Context) (*model.GeoPoint, error) {
	latParam, lngParam := c.QueryParam("lat"), c.QueryParam("lng")
	if latParam == "" && lngParam == "" {
		return nil, nil
	}
	lat, latErr := strconv.ParseFloat(latParam, 64)
	lng, lngErr := strconv.ParseFloat(lngParam, 64)
	// written so NaN fails the range check
	if latErr != nil || lngErr != nil || !(lat >= -90 && lat <= 90) || !(lng >= -180 && lng <= 180) {
		return nil, apperrors.NewValidationError("lat and lng must be valid coordinates")
	}
	return &model.GeoPoint{Latitude: lat, Longitude: lng}, nil
}

// Products godoc
// @Summary Search available products
// @Tags storefront
// @Produce json
// @Param q query string false "Matches commodity, category or vendor name"
// @Param category query string false "vegetable, fruit or all"
// @Param availability query string false "all, inStock or lowStock"
// @Param sort query string false "relevance, priceLow, priceHigh, distance or newest"
// @Param lat query number false "Shopper latitude"
// @Param lng query number false "Shopper longitude"
// @Param district query string false "District"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /store/products [get]
func (h *StorefrontHandler) Products(c echo.Context) error {
	category, err := catalog.ParseCategory(c.QueryParam("category"))
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	availability, err := catalog.ParseAvailability(c.QueryParam("availability"))
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	sort, err := catalog.ParseSort(c.QueryParam("sort"))
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	origin, err := originParam(c)
	if err != nil {
		return err
	}

	products, err := h.storefrontService.Products(c.Request().Context(), service.ProductQuery{
		Query: catalog.Query{
			Search:       c.QueryParam("q"),
			Category:     category,
			Availability: availability,
			Sort:         sort,
		},
		District: c.QueryParam("district"),
		Origin:   origin,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"count": len(products), "products": products})
}

// Vendors godoc
// @Summary List active vendors
// @Tags storefront
// @Produce json
// @Param district query string false "District"
// @Param lat query number false "Shopper latitude"
// @Param lng query number false "Shopper longitude"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /store/vendors [get]
func (h *StorefrontHandler) Vendors(c echo.Context) error {
	origin, err := originParam(c)
	if err != nil {
		return err
	}

	vendors, err := h.storefrontService.Vendors(c.Request().Context(), c.QueryParam("district"), origin)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"count": len(vendors), "vendors": vendors})
}

// Vendor godoc
// @Summary A vendor and its available products
// @Tags storefront
// @Produce json
// @Param id path string true "Vendor ID"
// @Param lat query number false "Shopper latitude"
// @Param lng query number false "Shopper longitude"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /store/vendors/{id} [get]
func (h *StorefrontHandler) Vendor(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ErrVendorNotFound
	}
	origin, err := originParam(c)
	if err != nil {
		return err
	}

	vendor, products, err := h.storefrontService.Vendor(c.Request().Context(), id, origin)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"vendor": vendor, "products": products})
}
