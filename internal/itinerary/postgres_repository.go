package itinerary

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tripweaver/tripweaver/internal/geo"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL itinerary repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// ListByTripAndDate retrieves all items for one trip and calendar date.
func (r *PostgresRepository) ListByTripAndDate(ctx context.Context, tripID, date string) ([]*Item, error) {
	query := `
		SELECT
			id, trip_id, destination_id, point_id, title, description,
			date, start_time, end_time, location, lat, lng, category,
			travel_mode, travel_time_minutes, travel_from_location,
			notes, order_index, created_at
		FROM itinerary_items
		WHERE trip_id = $1 AND date = $2
		ORDER BY order_index
	`

	rows, err := r.pool.Query(ctx, query, tripID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// scanItem scans an item from a query result row.
func scanItem(row pgx.Row) (*Item, error) {
	var (
		item Item
		lat  *float64
		lng  *float64
	)

	err := row.Scan(
		&item.ID,
		&item.TripID,
		&item.DestinationID,
		&item.PointID,
		&item.Title,
		&item.Description,
		&item.Date,
		&item.StartTime,
		&item.EndTime,
		&item.Location,
		&lat,
		&lng,
		&item.Category,
		&item.TravelMode,
		&item.TravelTimeMinutes,
		&item.TravelFromLocation,
		&item.Notes,
		&item.OrderIndex,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lat != nil && lng != nil {
		item.Coordinates = &geo.Coordinate{Lat: *lat, Lng: *lng}
	}

	return &item, nil
}

// CreateBatch inserts items in a single transaction.
func (r *PostgresRepository) CreateBatch(ctx context.Context, items []*Item) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO itinerary_items (
			id, trip_id, destination_id, point_id, title, description,
			date, start_time, end_time, location, lat, lng, category,
			travel_mode, travel_time_minutes, travel_from_location,
			notes, order_index, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19
		)
	`

	for _, item := range items {
		var lat, lng *float64
		if item.Coordinates != nil {
			lat = &item.Coordinates.Lat
			lng = &item.Coordinates.Lng
		}

		_, err := tx.Exec(ctx, query,
			item.ID,
			item.TripID,
			item.DestinationID,
			item.PointID,
			item.Title,
			item.Description,
			item.Date,
			item.StartTime,
			item.EndTime,
			item.Location,
			lat,
			lng,
			item.Category,
			item.TravelMode,
			item.TravelTimeMinutes,
			item.TravelFromLocation,
			item.Notes,
			item.OrderIndex,
			item.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
