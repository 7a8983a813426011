package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "smartvegis/internal/errors"
	"smartvegis/internal/model"
	"smartvegis/internal/repository"
	"smartvegis/internal/service"
)

// ListingHandler handles the authenticated vendor's listings.
type ListingHandler struct {
	listingService service.ListingService
}

// NewListingHandler creates a new listing handler.
func NewListingHandler(listingService service.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

// ListingRequest represents a listing create or update. On update only the
// fields present in the body change. Price accepts a number or a numeric string.
type ListingRequest struct {
	Commodity        *string          `json:"commodity"`
	Category         *model.Category  `json:"category"`
	Subcategory      *string          `json:"subcategory"`
	Price            *decimal.Decimal `json:"price" swaggertype:"number"`
	Unit             *model.Unit      `json:"unit"`
	Quantity         *float64         `json:"quantity"`
	MinOrderQuantity *float64         `json:"minOrderQuantity"`
	Description      *string          `json:"description"`
	Quality          *model.Quality   `json:"quality"`
	Images           *[]string        `json:"images"`
	IsAvailable      *bool            `json:"isAvailable"`
}

func (r ListingRequest) toNewListing() service.NewListing {
	var in service.NewListing
	if r.Commodity != nil {
		in.Commodity = *r.Commodity
	}
	if r.Category != nil {
		in.Category = *r.Category
	}
	if r.Subcategory != nil {
		in.Subcategory = *r.Subcategory
	}
	if r.Price != nil {
		in.Price = *r.Price
	}
	if r.Unit != nil {
		in.Unit = *r.Unit
	}
	if r.Quantity != nil {
		in.Quantity = *r.Quantity
	}
	if r.MinOrderQuantity != nil {
		in.MinOrderQuantity = *r.MinOrderQuantity
	}
	if r.Description != nil {
		in.Description = *r.Description
	}
	if r.Quality != nil {
		in.Quality = *r.Quality
	}
	if r.Images != nil {
		in.Images = *r.Images
	}
	return in
}

func (r ListingRequest) toPatch() service.ListingPatch {
	return service.ListingPatch{
		Commodity:        r.Commodity,
		Category:         r.Category,
		Subcategory:      r.Subcategory,
		Price:            r.Price,
		Unit:             r.Unit,
		Quantity:         r.Quantity,
		MinOrderQuantity: r.MinOrderQuantity,
		Description:      r.Description,
		Quality:          r.Quality,
		Images:           r.Images,
		IsAvailable:      r.IsAvailable,
	}
}

// listingID parses the :id path parameter. Malformed IDs are reported the
// same way as unknown ones.
func listingID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.ErrListingNotFound
	}
	return id, nil
}

// List godoc
// @Summary List the current vendor's listings
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param category query string false "vegetable or fruit"
// @Param available query string false "true or false"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /listings [get]
func (h *ListingHandler) List(c echo.Context) error {
	vendorID, err := currentVendorID(c)
	if err != nil {
		return err
	}

	filter := repository.ListingFilter{Category: model.Category(c.QueryParam("category"))}
	if v := c.QueryParam("available"); v != "" {
		available := v == "true"
		filter.Available = &available
	}

	listings, err := h.listingService.List(c.Request().Context(), vendorID, filter)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"count": len(listings), "listings": listings})
}

// Get godoc
// @Summary Get one of the current vendor's listings
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /listings/{id} [get]
func (h *ListingHandler) Get(c echo.Context) error {
	vendorID, err := currentVendorID(c)
	if err != nil {
		return err
	}
	id, err := listingID(c)
	if err != nil {
		return err
	}

	listing, err := h.listingService.Get(c.Request().Context(), vendorID, id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"listing": listing})
}

// Create godoc
// @Summary Create a listing
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ListingRequest true "Listing data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /listings [post]
func (h *ListingHandler) Create(c echo.Context) error {
	vendorID, err := currentVendorID(c)
	if err != nil {
		return err
	}

	var req ListingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	listing, err := h.listingService.Create(c.Request().Context(), vendorID, req.toNewListing())
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, echo.Map{"listing": listing})
}

// Update godoc
// @Summary Update a listing
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param request body ListingRequest true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /listings/{id} [put]
func (h *ListingHandler) Update(c echo.Context) error {
	vendorID, err := currentVendorID(c)
	if err != nil {
		return err
	}
	id, err := listingID(c)
	if err != nil {
		return err
	}

	var req ListingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	listing, err := h.listingService.Update(c.Request().Context(), vendorID, id, req.toPatch())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"listing": listing})
}

// Delete godoc
// @Summary Delete a listing
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /listings/{id} [delete]
func (h *ListingHandler) Delete(c echo.Context) error {
	vendorID, err := currentVendorID(c)
	if err != nil {
		return err
	}
	id, err := listingID(c)
	if err != nil {
		return err
	}

	if err := h.listingService.Delete(c.Request().Context(), vendorID, id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"message": "Listing deleted successfully"})
}

// Toggle godoc
// @Summary Flip a listing's availability
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /listings/{id}/toggle [patch]
func (h *ListingHandler) Toggle(c echo.Context) error {
	vendorID, err := currentVendorID(c)
	if err != nil {
		return err
	}
	id, err := listingID(c)
	if err != nil {
		return err
	}

	listing, err := h.listingService.Toggle(c.Request().Context(), vendorID, id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"listing": listing})
}
