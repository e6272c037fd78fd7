package trip

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tripweaver/tripweaver/internal/geo"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL trip repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// GetTrip retrieves a trip with its home base fields.
func (r *PostgresRepository) GetTrip(ctx context.Context, id string) (*Trip, error) {
	query := `
		SELECT id, name, home_base_name, home_base_lat, home_base_lng, home_currency
		FROM trips
		WHERE id = $1
	`

	var (
		t            Trip
		homeBaseName *string
		homeBaseLat  *float64
		homeBaseLng  *float64
		homeCurrency *string
	)

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.Name,
		&homeBaseName,
		&homeBaseLat,
		&homeBaseLng,
		&homeCurrency,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}

	if homeBaseName != nil && homeBaseLat != nil && homeBaseLng != nil {
		hb := HomeBase{
			Name:        *homeBaseName,
			Coordinates: geo.Coordinate{Lat: *homeBaseLat, Lng: *homeBaseLng},
			Currency:    "EUR",
		}
		if homeCurrency != nil {
			hb.Currency = *homeCurrency
		}
		t.HomeBase = &hb
	}

	return &t, nil
}

// GetPoint retrieves a point of interest by kind and ID. Each kind maps to
// its own source table; all three are joined against destinations for the
// fallback coordinates.
func (r *PostgresRepository) GetPoint(ctx context.Context, kind PointKind, id string) (*PointOfInterest, error) {
	var query string

	switch kind {
	case KindHighlight:
		query = `
			SELECT h.id, h.title, h.category, h.address, h.lat, h.lng,
				h.destination_id, d.lat, d.lng, h.duration_minutes
			FROM highlights h
			LEFT JOIN destinations d ON d.id = h.destination_id
			WHERE h.id = $1
		`
	case KindEvent:
		query = `
			SELECT e.id, e.title, 'activity', e.address, e.lat, e.lng,
				e.destination_id, d.lat, d.lng, e.duration_minutes
			FROM events e
			LEFT JOIN destinations d ON d.id = e.destination_id
			WHERE e.id = $1
		`
	case KindAccommodation:
		query = `
			SELECT a.id, a.name, 'other', a.address, a.lat, a.lng,
				a.destination_id, d.lat, d.lng, NULL::int
			FROM accommodations a
			LEFT JOIN destinations d ON d.id = a.destination_id
			WHERE a.id = $1
		`
	default:
		return nil, fmt.Errorf("unknown point kind %q", kind)
	}

	var (
		p        PointOfInterest
		category string
		lat      *float64
		lng      *float64
		destLat  *float64
		destLng  *float64
	)

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Title,
		&category,
		&p.Address,
		&lat,
		&lng,
		&p.DestinationID,
		&destLat,
		&destLng,
		&p.DurationMinutes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPointNotFound
		}
		return nil, err
	}

	p.Kind = kind
	p.Category = Category(category)
	if lat != nil && lng != nil {
		p.Coordinates = &geo.Coordinate{Lat: *lat, Lng: *lng}
	}
	if destLat != nil && destLng != nil {
		p.DestinationCoordinates = &geo.Coordinate{Lat: *destLat, Lng: *destLng}
	}

	return &p, nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
