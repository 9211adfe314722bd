package repository

import (
	"context"
	"errors"
	"fmt"

	"showtime-booking/internal/apperr"
	"showtime-booking/internal/data/entity"
	"showtime-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// uniqueViolation is the Postgres error code for unique constraint hits.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Location, error)
	FindByCity(ctx context.Context, city string) (*entity.Location, error)
	FindAll(ctx context.Context) ([]*entity.Location, error)
}

type locationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLocationRepository(db database.PgxIface, log *zap.Logger) LocationRepository {
	return &locationRepository{
		db:  db,
		log: log.With(zap.String("repository", "location")),
	}
}

func (r *locationRepository) Create(ctx context.Context, location *entity.Location) error {
	query := `
		INSERT INTO locations (id, city, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.Exec(ctx, query, location.ID, location.City, location.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Wrap(apperr.ErrLocationExists, err)
		}
		r.log.Error("Failed to create location",
			zap.Error(err),
			zap.String("city", location.City),
		)
		return fmt.Errorf("create location %s: %w", location.City, err)
	}

	return nil
}

func (r *locationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Location, error) {
	query := `SELECT id, city, created_at FROM locations WHERE id = $1`

	var location entity.Location
	err := r.db.QueryRow(ctx, query, id).Scan(&location.ID, &location.City, &location.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find location by ID",
			zap.Error(err),
			zap.String("location_id", id.String()),
		)
		return nil, fmt.Errorf("find location by ID %s: %w", id.String(), err)
	}

	return &location, nil
}

func (r *locationRepository) FindByCity(ctx context.Context, city string) (*entity.Location, error) {
	query := `SELECT id, city, created_at FROM locations WHERE city = $1`

	var location entity.Location
	err := r.db.QueryRow(ctx, query, city).Scan(&location.ID, &location.City, &location.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find location by city",
			zap.Error(err),
			zap.String("city", city),
		)
		return nil, fmt.Errorf("find location by city %s: %w", city, err)
	}

	return &location, nil
}

func (r *locationRepository) FindAll(ctx context.Context) ([]*entity.Location, error) {
	query := `SELECT id, city, created_at FROM locations ORDER BY city`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list locations", zap.Error(err))
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var locations []*entity.Location
	for rows.Next() {
		var location entity.Location
		if err := rows.Scan(&location.ID, &location.City, &location.CreatedAt); err != nil {
			r.log.Error("Failed to scan location row", zap.Error(err))
			return nil, fmt.Errorf("scan location row: %w", err)
		}
		locations = append(locations, &location)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate location rows: %w", err)
	}

	return locations, nil
}
