package itinerary

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tripweaver/tripweaver/internal/api/models"
	"github.com/tripweaver/tripweaver/internal/geo"
	"github.com/tripweaver/tripweaver/internal/routing"
	"github.com/tripweaver/tripweaver/internal/travelmode"
	"github.com/tripweaver/tripweaver/internal/trip"
)

// DefaultStartTime applies when no start time is supplied.
const DefaultStartTime = "09:00"

// RouteEstimator computes a travel estimate between two points for a mode.
// A nil result means "travel time unknown" and is never an error.
type RouteEstimator interface {
	Estimate(ctx context.Context, from, to geo.Coordinate, mode travelmode.Mode) *routing.TravelEstimate
}

// ComposerConfig holds configuration for the composer.
type ComposerConfig struct {
	Trips     trip.Repository
	Items     Repository
	Estimator RouteEstimator
	Logger    zerolog.Logger
}

// Composer builds itinerary entries from points of interest, splicing in
// travel segments based on the previous chronological entry for the day.
type Composer struct {
	trips     trip.Repository
	items     Repository
	estimator RouteEstimator
	logger    zerolog.Logger
}

// NewComposer creates a new itinerary composer.
func NewComposer(cfg ComposerConfig) *Composer {
	return &Composer{
		trips:     cfg.Trips,
		items:     cfg.Items,
		estimator: cfg.Estimator,
		logger:    cfg.Logger,
	}
}

// ComposeSingleInput is the input for a single-occurrence composition.
type ComposeSingleInput struct {
	TripID    string
	PointKind trip.PointKind
	PointID   string

	// Date is the target ISO calendar date.
	Date string

	// StartTime defaults to 09:00.
	StartTime string

	// DurationMinutes overrides the point's hint and the category default.
	DurationMinutes *int

	// TravelMode defaults to car.
	TravelMode travelmode.Mode

	// AddTravelSegment defaults to true.
	AddTravelSegment *bool
}

// ComposeRangeInput is the input for a multi-day composition over an
// explicit list of calendar dates.
type ComposeRangeInput struct {
	TripID    string
	PointKind trip.PointKind
	PointID   string

	Dates []string

	// StartTime and EndTime are shared across all dates; EndTime, when
	// set, takes precedence over DurationMinutes.
	StartTime       string
	EndTime         string
	DurationMinutes *int

	// TravelMode defaults to car.
	TravelMode travelmode.Mode

	// DayLabel replaces the word "Day" in the per-day title suffix.
	DayLabel string

	// AddOutbound attaches a travel segment on the first date only.
	AddOutbound bool

	// AddReturn attaches a home-bound segment on the last date only.
	AddReturn bool
}

// ComposeSingle schedules one point of interest on one date, optionally
// preceded by a travel segment from the previous activity or home base.
// Returns the created rows, travel segment first.
func (c *Composer) ComposeSingle(ctx context.Context, in ComposeSingleInput) ([]*Item, error) {
	startTime := in.StartTime
	if startTime == "" {
		startTime = DefaultStartTime
	}
	mode := in.TravelMode
	if mode == "" {
		mode = travelmode.Car
	}
	addTravel := in.AddTravelSegment == nil || *in.AddTravelSegment

	if fieldErrors := validateCompose(in.Date, startTime, mode); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}
	startTime = normalizeClock(startTime)

	t, point, err := c.load(ctx, in.TripID, in.PointKind, in.PointID)
	if err != nil {
		return nil, err
	}

	duration := c.resolveDuration(point, in.DurationMinutes)

	return c.composeDay(ctx, t, point, dayPlan{
		date:        in.Date,
		title:       point.Title,
		startTime:   startTime,
		duration:    duration,
		mode:        mode,
		addOutbound: addTravel,
	})
}

// ComposeRange schedules one point of interest across every date in the
// list, one independent row per day. The outbound travel segment is only
// attached on the first date and the return segment only on the last.
// Composing the same range twice produces duplicate rows.
func (c *Composer) ComposeRange(ctx context.Context, in ComposeRangeInput) ([]*Item, error) {
	startTime := in.StartTime
	if startTime == "" {
		startTime = DefaultStartTime
	}
	mode := in.TravelMode
	if mode == "" {
		mode = travelmode.Car
	}

	fieldErrors := validateClockAndMode(startTime, mode)
	if len(in.Dates) == 0 {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "dates", Message: "is required"})
	}
	for _, date := range in.Dates {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			fieldErrors = append(fieldErrors, models.FieldError{Field: "dates", Message: fmt.Sprintf("invalid date %q", date)})
		}
	}
	if in.EndTime != "" && !clockRegex.MatchString(in.EndTime) {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "endTime", Message: "must be in HH:MM format"})
	}
	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}
	startTime = normalizeClock(startTime)

	t, point, err := c.load(ctx, in.TripID, in.PointKind, in.PointID)
	if err != nil {
		return nil, err
	}

	duration := c.resolveDuration(point, in.DurationMinutes)
	if in.EndTime != "" {
		startMin, _ := parseClock(startTime)
		endMin, _ := parseClock(in.EndTime)
		duration = (endMin - startMin + minutesPerDay) % minutesPerDay
	}

	label := in.DayLabel
	if label == "" {
		label = "Day"
	}

	var created []*Item
	for i, date := range in.Dates {
		title := point.Title
		if len(in.Dates) > 1 {
			title = fmt.Sprintf("%s (%s %d)", point.Title, label, i+1)
		}

		rows, err := c.composeDay(ctx, t, point, dayPlan{
			date:        date,
			title:       title,
			startTime:   startTime,
			duration:    duration,
			mode:        mode,
			addOutbound: in.AddOutbound && i == 0,
			addReturn:   in.AddReturn && i == len(in.Dates)-1,
		})
		if err != nil {
			return created, err
		}
		created = append(created, rows...)
	}

	return created, nil
}

// dayPlan carries the per-date parameters for one composed day.
type dayPlan struct {
	date        string
	title       string
	startTime   string
	duration    int
	mode        travelmode.Mode
	addOutbound bool
	addReturn   bool
}

// composeDay builds and persists the rows for one calendar date: an
// optional outbound travel segment, the activity itself, and an optional
// return segment. All rows are written in a single batch.
func (c *Composer) composeDay(ctx context.Context, t *trip.Trip, point *trip.PointOfInterest, plan dayPlan) ([]*Item, error) {
	existing, err := c.items.ListByTripAndDate(ctx, t.ID, plan.date)
	if err != nil {
		return nil, err
	}

	homeBase := trip.DefaultHomeBase()
	if t.HomeBase != nil {
		homeBase = *t.HomeBase
	}

	coords := point.ResolveCoordinates()
	endTime, err := addClock(plan.startTime, plan.duration)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	nextIndex := maxOrderIndex(existing) + 1
	var rows []*Item

	var outbound *routing.TravelEstimate
	var outboundFrom string
	if plan.addOutbound && coords != nil {
		origin := homeBase.Coordinates
		outboundFrom = homeBase.Name
		if prev := FindPreceding(existing, plan.startTime); prev != nil && prev.Coordinates != nil {
			origin = *prev.Coordinates
			outboundFrom = prev.Title
			if prev.Location != nil {
				outboundFrom = *prev.Location
			}
		}

		outbound = c.estimator.Estimate(ctx, origin, *coords, plan.mode)
		if outbound == nil {
			c.logger.Debug().
				Str("trip_id", t.ID).
				Str("date", plan.date).
				Str("mode", string(plan.mode)).
				Msg("travel time unknown, composing without travel segment")
		}
	}

	if outbound != nil {
		departTime, err := departureClock(plan.startTime, outbound.DurationMinutes)
		if err != nil {
			return nil, err
		}
		startTime := plan.startTime
		rows = append(rows, &Item{
			ID:                 newItemID(),
			TripID:             t.ID,
			DestinationID:      point.DestinationID,
			Title:              "Travel to " + point.Title,
			Date:               plan.date,
			StartTime:          &departTime,
			EndTime:            &startTime,
			Coordinates:        coords,
			Category:           CategoryTransport,
			TravelMode:         &plan.mode,
			TravelTimeMinutes:  &outbound.DurationMinutes,
			TravelFromLocation: &outboundFrom,
			OrderIndex:         nextIndex,
			CreatedAt:          now,
		})
		nextIndex++
	}

	startTime := plan.startTime
	activity := &Item{
		ID:            newItemID(),
		TripID:        t.ID,
		DestinationID: point.DestinationID,
		PointID:       &point.ID,
		Title:         plan.title,
		Date:          plan.date,
		StartTime:     &startTime,
		EndTime:       &endTime,
		Location:      point.Address,
		Coordinates:   coords,
		Category:      categoryFor(point),
		OrderIndex:    nextIndex,
		CreatedAt:     now,
	}
	if outbound != nil {
		activity.TravelMode = &plan.mode
		activity.TravelTimeMinutes = &outbound.DurationMinutes
		activity.TravelFromLocation = &outboundFrom
	}
	rows = append(rows, activity)
	nextIndex++

	if plan.addReturn && coords != nil {
		if inbound := c.estimator.Estimate(ctx, *coords, homeBase.Coordinates, plan.mode); inbound != nil {
			returnEnd, err := addClock(endTime, inbound.DurationMinutes)
			if err != nil {
				return nil, err
			}
			from := point.Title
			rows = append(rows, &Item{
				ID:                 newItemID(),
				TripID:             t.ID,
				DestinationID:      point.DestinationID,
				Title:              "Return to " + homeBase.Name,
				Date:               plan.date,
				StartTime:          &endTime,
				EndTime:            &returnEnd,
				Coordinates:        &homeBase.Coordinates,
				Category:           CategoryTransport,
				TravelMode:         &plan.mode,
				TravelTimeMinutes:  &inbound.DurationMinutes,
				TravelFromLocation: &from,
				OrderIndex:         nextIndex,
				CreatedAt:          now,
			})
		}
	}

	if err := c.items.CreateBatch(ctx, rows); err != nil {
		return nil, err
	}

	c.logger.Info().
		Str("trip_id", t.ID).
		Str("date", plan.date).
		Str("point_id", point.ID).
		Int("rows", len(rows)).
		Msg("composed itinerary day")

	return rows, nil
}

// load fetches the trip and point of interest, propagating not-found errors.
func (c *Composer) load(ctx context.Context, tripID string, kind trip.PointKind, pointID string) (*trip.Trip, *trip.PointOfInterest, error) {
	t, err := c.trips.GetTrip(ctx, tripID)
	if err != nil {
		return nil, nil, err
	}

	point, err := c.trips.GetPoint(ctx, kind, pointID)
	if err != nil {
		return nil, nil, err
	}

	return t, point, nil
}

// resolveDuration picks the explicit override, then the point's own hint,
// then the category default.
func (c *Composer) resolveDuration(point *trip.PointOfInterest, override *int) int {
	if override != nil && *override > 0 {
		return *override
	}
	if point.DurationMinutes != nil && *point.DurationMinutes > 0 {
		return *point.DurationMinutes
	}
	return SuggestedDurationMinutes(point.Category)
}

// validateCompose checks the shared date/time/mode fields.
func validateCompose(date, startTime string, mode travelmode.Mode) []models.FieldError {
	errs := validateClockAndMode(startTime, mode)

	if date == "" {
		errs = append(errs, models.FieldError{Field: "date", Message: "is required"})
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		errs = append(errs, models.FieldError{Field: "date", Message: "must be an ISO calendar date"})
	}

	return errs
}

// validateClockAndMode checks the start time and travel mode. Flight is a
// display-only mode and never composable.
func validateClockAndMode(startTime string, mode travelmode.Mode) []models.FieldError {
	var errs []models.FieldError

	if !clockRegex.MatchString(startTime) {
		errs = append(errs, models.FieldError{Field: "startTime", Message: "must be in HH:MM format"})
	}

	if !travelmode.Valid(mode) || mode == travelmode.Flight {
		errs = append(errs, models.FieldError{Field: "travelMode", Message: "must be one of car, train, bus, walk"})
	}

	return errs
}

// newItemID returns a prefixed row ID.
func newItemID() string {
	return "iti_" + uuid.New().String()
}

// ValidationError represents validation errors.
type ValidationError struct {
	Errors []models.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
