package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smartvegis/internal/service"
)

// PriceHandler serves mandi prices.
type PriceHandler struct {
	priceService service.PriceService
}

// NewPriceHandler creates a new price handler.
func NewPriceHandler(priceService service.PriceService) *PriceHandler {
	return &PriceHandler{priceService: priceService}
}

// GetPrices godoc
// @Summary Mandi prices for a district
// @Description Falls back to a static price table when the upstream lookup fails.
// @Tags prices
// @Produce json
// @Security BearerAuth
// @Param district query string false "District"
// @Param state query string false "State, defaults to Maharashtra"
// @Param category query string false "vegetable, fruit, other or all"
// @Param search query string false "Commodity substring"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /prices [get]
func (h *PriceHandler) GetPrices(c echo.Context) error {
	prices := h.priceService.GetPrices(c.Request().Context(), c.QueryParam("district"), c.QueryParam("state"))
	prices = service.FilterPrices(prices, c.QueryParam("category"), c.QueryParam("search"))
	return respond(c, http.StatusOK, echo.Map{"count": len(prices), "prices": prices})
}

// GetCommodities godoc
// @Summary Known vegetables and fruits
// @Tags prices
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /prices/commodities [get]
func (h *PriceHandler) GetCommodities(c echo.Context) error {
	return respond(c, http.StatusOK, echo.Map{"commodities": service.Commodities})
}
