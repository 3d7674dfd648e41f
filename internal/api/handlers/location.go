package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/api/middleware"
	service "github.com/aaravmahajanofficial/nuts-storefront/internal/services"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/utils"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/utils/response"
)

type LocationHandler struct {
	locationService service.LocationService
}

func NewLocationHandler(locationService service.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// ListCountries godoc
//	@Summary		Delivery countries
//	@Tags			Locations
//	@Produce		json
//	@Success		200	{array}		models.Country			"Countries"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/countries [get]
func (h *LocationHandler) ListCountries() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		countries, err := h.locationService.ListCountries(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list countries", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, countries)
	}
}

// ListRegions godoc
//	@Summary		Regions of a country
//	@Tags			Locations
//	@Produce		json
//	@Param			id	path		int						true	"Country ID"
//	@Success		200	{array}		models.Region			"Regions"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid country ID"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/countries/{id}/regions [get]
func (h *LocationHandler) ListRegions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		countryID, err := utils.ParseInt64ID(r, "id")
		if err != nil {
			logger.Warn("Invalid country id", slog.String("id", r.PathValue("id")))
			response.Error(w, err)
			return
		}

		regions, err := h.locationService.ListRegions(r.Context(), countryID)
		if err != nil {
			logger.Error("Failed to list regions", slog.Int64("countryId", countryID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, regions)
	}
}
