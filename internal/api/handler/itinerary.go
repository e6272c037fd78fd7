// Package handler provides HTTP handlers for the TripWeaver API.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/tripweaver/tripweaver/internal/api/models"
	"github.com/tripweaver/tripweaver/internal/api/response"
	"github.com/tripweaver/tripweaver/internal/itinerary"
	"github.com/tripweaver/tripweaver/internal/travelmode"
	"github.com/tripweaver/tripweaver/internal/trip"
)

// ItineraryHandler handles itinerary composition and day retrieval.
type ItineraryHandler struct {
	composer *itinerary.Composer
	items    itinerary.Repository
	logger   zerolog.Logger
}

// NewItineraryHandler creates a new ItineraryHandler.
func NewItineraryHandler(composer *itinerary.Composer, items itinerary.Repository, logger zerolog.Logger) *ItineraryHandler {
	return &ItineraryHandler{
		composer: composer,
		items:    items,
		logger:   logger,
	}
}

// Compose handles POST /v1/trips/{tripId}/itinerary:compose - schedule one
// point of interest on one date.
func (h *ItineraryHandler) Compose(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripId")
	if tripID == "" {
		response.BadRequest(w, r, "tripId is required", nil)
		return
	}

	var input models.ComposeRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if fieldErrors := validatePointRef(input.PointKind, input.PointID); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "invalid compose request", fieldErrors)
		return
	}

	rows, err := h.composer.ComposeSingle(r.Context(), itinerary.ComposeSingleInput{
		TripID:           tripID,
		PointKind:        trip.PointKind(input.PointKind),
		PointID:          input.PointID,
		Date:             input.Date,
		StartTime:        input.StartTime,
		DurationMinutes:  input.DurationMinutes,
		TravelMode:       travelmode.Mode(input.TravelMode),
		AddTravelSegment: input.AddTravelSegment,
	})
	if err != nil {
		h.writeComposeError(w, r, err)
		return
	}

	location := fmt.Sprintf("/v1/trips/%s/itinerary?date=%s", tripID, input.Date)
	response.Created(w, r, location, models.ComposeResponse{Items: toItineraryItems(rows)})
}

// ComposeRange handles POST /v1/trips/{tripId}/itinerary:compose-range -
// schedule one point of interest across a list of dates.
func (h *ItineraryHandler) ComposeRange(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripId")
	if tripID == "" {
		response.BadRequest(w, r, "tripId is required", nil)
		return
	}

	var input models.ComposeRangeRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if fieldErrors := validatePointRef(input.PointKind, input.PointID); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "invalid compose request", fieldErrors)
		return
	}

	rows, err := h.composer.ComposeRange(r.Context(), itinerary.ComposeRangeInput{
		TripID:          tripID,
		PointKind:       trip.PointKind(input.PointKind),
		PointID:         input.PointID,
		Dates:           input.Dates,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
		DurationMinutes: input.DurationMinutes,
		TravelMode:      travelmode.Mode(input.TravelMode),
		DayLabel:        input.DayLabel,
		AddOutbound:     input.AddOutbound,
		AddReturn:       input.AddReturn,
	})
	if err != nil {
		h.writeComposeError(w, r, err)
		return
	}

	location := fmt.Sprintf("/v1/trips/%s/itinerary", tripID)
	response.Created(w, r, location, models.ComposeResponse{Items: toItineraryItems(rows)})
}

// GetDay handles GET /v1/trips/{tripId}/itinerary?date=YYYY-MM-DD - read
// one day of the itinerary in order-index order.
func (h *ItineraryHandler) GetDay(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripId")
	if tripID == "" {
		response.BadRequest(w, r, "tripId is required", nil)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.BadRequest(w, r, "date query parameter is required", []models.FieldError{
			{Field: "date", Message: "is required"},
		})
		return
	}

	rows, err := h.items.ListByTripAndDate(r.Context(), tripID, date)
	if err != nil {
		h.logger.Error().Err(err).Str("trip_id", tripID).Msg("failed to list itinerary day")
		response.InternalError(w, r, "failed to load itinerary")
		return
	}

	response.JSON(w, r, http.StatusOK, models.ItineraryDay{
		TripID: tripID,
		Date:   date,
		Items:  toItineraryItems(rows),
	})
}

func (h *ItineraryHandler) writeComposeError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *itinerary.ValidationError
	switch {
	case errors.As(err, &vErr):
		response.BadRequest(w, r, "invalid compose request", vErr.Errors)
	case errors.Is(err, trip.ErrTripNotFound):
		response.NotFound(w, r, "trip not found")
	case errors.Is(err, trip.ErrPointNotFound):
		response.NotFound(w, r, "point of interest not found")
	default:
		h.logger.Error().Err(err).Msg("compose failed")
		response.InternalError(w, r, "failed to compose itinerary")
	}
}

func validatePointRef(kind, id string) []models.FieldError {
	var errs []models.FieldError
	if !trip.ValidKind(trip.PointKind(kind)) {
		errs = append(errs, models.FieldError{Field: "pointKind", Message: "must be one of highlight, event, accommodation"})
	}
	if id == "" {
		errs = append(errs, models.FieldError{Field: "pointId", Message: "is required"})
	}
	return errs
}

func toItineraryItems(rows []*itinerary.Item) []models.ItineraryItem {
	items := make([]models.ItineraryItem, 0, len(rows))
	for _, row := range rows {
		item := models.ItineraryItem{
			ID:                 row.ID,
			TripID:             row.TripID,
			DestinationID:      row.DestinationID,
			PointID:            row.PointID,
			Title:              row.Title,
			Description:        row.Description,
			Date:               row.Date,
			StartTime:          row.StartTime,
			EndTime:            row.EndTime,
			Location:           row.Location,
			Category:           string(row.Category),
			TravelTimeMinutes:  row.TravelTimeMinutes,
			TravelFromLocation: row.TravelFromLocation,
			Notes:              row.Notes,
			OrderIndex:         row.OrderIndex,
			CreatedAt:          models.Timestamp(row.CreatedAt),
		}
		if row.Coordinates != nil {
			item.Coordinates = &models.Point{Lat: row.Coordinates.Lat, Lng: row.Coordinates.Lng}
		}
		if row.TravelMode != nil {
			mode := string(*row.TravelMode)
			item.TravelMode = &mode
		}
		items = append(items, item)
	}
	return items
}
