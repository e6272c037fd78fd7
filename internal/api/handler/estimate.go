package handler

import (
	"net/http"
	"strconv"

	"github.com/tripweaver/tripweaver/internal/api/models"
	"github.com/tripweaver/tripweaver/internal/api/response"
	"github.com/tripweaver/tripweaver/internal/geo"
	"github.com/tripweaver/tripweaver/internal/routing"
	"github.com/tripweaver/tripweaver/internal/travelmode"
)

// EstimateHandler handles travel estimate endpoints.
type EstimateHandler struct {
	estimator *routing.Estimator
}

// NewEstimateHandler creates a new EstimateHandler.
func NewEstimateHandler(estimator *routing.Estimator) *EstimateHandler {
	return &EstimateHandler{estimator: estimator}
}

// GetEstimates handles GET /v1/travel-estimates - estimate travel between
// two points, for a single mode or for every feasible mode.
func (h *EstimateHandler) GetEstimates(w http.ResponseWriter, r *http.Request) {
	from, fieldErrors := parsePoint(r, "fromLat", "fromLng")
	to, toErrors := parsePoint(r, "toLat", "toLng")
	fieldErrors = append(fieldErrors, toErrors...)

	modeParam := r.URL.Query().Get("mode")
	if modeParam != "" && !travelmode.Valid(travelmode.Mode(modeParam)) {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field:   "mode",
			Message: "must be one of car, train, bus, walk, flight",
		})
	}

	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "invalid travel estimate request", fieldErrors)
		return
	}

	var estimates []routing.TravelEstimate
	if modeParam != "" {
		if est := h.estimator.Estimate(r.Context(), from, to, travelmode.Mode(modeParam)); est != nil {
			estimates = append(estimates, *est)
		}
	} else {
		estimates = h.estimator.EstimateAll(r.Context(), from, to)
	}

	resp := models.TravelEstimatesResponse{
		From:      models.Point{Lat: from.Lat, Lng: from.Lng},
		To:        models.Point{Lat: to.Lat, Lng: to.Lng},
		Estimates: make([]models.TravelEstimate, 0, len(estimates)),
	}
	for _, est := range estimates {
		info, _ := travelmode.Lookup(est.Mode)
		resp.Estimates = append(resp.Estimates, models.TravelEstimate{
			Mode:            string(est.Mode),
			Label:           info.Label,
			Emoji:           info.Emoji,
			DurationMinutes: est.DurationMinutes,
			DistanceKm:      est.DistanceKm,
		})
	}

	response.JSON(w, r, http.StatusOK, resp)
}

// parsePoint reads a lat/lng pair from query parameters.
func parsePoint(r *http.Request, latParam, lngParam string) (geo.Coordinate, []models.FieldError) {
	var errs []models.FieldError

	lat, err := strconv.ParseFloat(r.URL.Query().Get(latParam), 64)
	if err != nil {
		errs = append(errs, models.FieldError{Field: latParam, Message: "must be a number"})
	}
	lng, err := strconv.ParseFloat(r.URL.Query().Get(lngParam), 64)
	if err != nil {
		errs = append(errs, models.FieldError{Field: lngParam, Message: "must be a number"})
	}
	if len(errs) > 0 {
		return geo.Coordinate{}, errs
	}

	if err := geo.ValidateLat(lat); err != nil {
		errs = append(errs, models.FieldError{Field: latParam, Message: err.Error()})
	}
	if err := geo.ValidateLng(lng); err != nil {
		errs = append(errs, models.FieldError{Field: lngParam, Message: err.Error()})
	}
	return geo.Coordinate{Lat: lat, Lng: lng}, errs
}
