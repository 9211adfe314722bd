package repository

import (
	"context"
	"fmt"

	"showtime-booking/internal/apperr"
	"showtime-booking/internal/data/entity"
	"showtime-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CinemaRepository interface {
	// CreateWithSeats persists the cinema and its full seat grid in one
	// transaction. Seats exist from the moment the cinema does.
	CreateWithSeats(ctx context.Context, cinema *entity.Cinema, seats []*entity.CinemaSeat) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Cinema, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Cinema, error)
	ExistsByNameAndLocation(ctx context.Context, name string, locationID uuid.UUID) (bool, error)
}

type cinemaRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCinemaRepository(db database.PgxIface, log *zap.Logger) CinemaRepository {
	return &cinemaRepository{
		db:  db,
		log: log.With(zap.String("repository", "cinema")),
	}
}

func (r *cinemaRepository) CreateWithSeats(ctx context.Context, cinema *entity.Cinema, seats []*entity.CinemaSeat) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create cinema tx: %w", err)
	}
	defer tx.Rollback(ctx)

	insertCinema := `
		INSERT INTO cinemas (id, name, location_id, seat_rows, seats_per_row, slug, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = tx.Exec(ctx, insertCinema,
		cinema.ID,
		cinema.Name,
		cinema.LocationID,
		cinema.Rows,
		cinema.SeatsPerRow,
		cinema.Slug,
		cinema.CreatedAt,
		cinema.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Wrap(apperr.ErrCinemaExists, err)
		}
		r.log.Error("Failed to create cinema",
			zap.Error(err),
			zap.String("slug", cinema.Slug),
		)
		return fmt.Errorf("create cinema %s: %w", cinema.Slug, err)
	}

	insertSeats := `INSERT INTO cinema_seats (id, cinema_id, row_number, seat_number, created_at) VALUES `
	args := make([]any, 0, len(seats)*5)
	for i, seat := range seats {
		if i > 0 {
			insertSeats += ", "
		}
		base := i * 5
		insertSeats += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5)
		args = append(args, seat.ID, seat.CinemaID, seat.RowNumber, seat.SeatNumber, seat.CreatedAt)
	}

	if _, err := tx.Exec(ctx, insertSeats, args...); err != nil {
		r.log.Error("Failed to create seat grid",
			zap.Error(err),
			zap.String("slug", cinema.Slug),
			zap.Int("seat_count", len(seats)),
		)
		return fmt.Errorf("create seat grid for cinema %s: %w", cinema.Slug, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create cinema %s: %w", cinema.Slug, err)
	}

	r.log.Info("Cinema created with seat grid",
		zap.String("cinema_id", cinema.ID.String()),
		zap.String("slug", cinema.Slug),
		zap.Int("seat_count", len(seats)),
	)
	return nil
}

func (r *cinemaRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Cinema, error) {
	query := `
		SELECT id, name, location_id, seat_rows, seats_per_row, slug, created_at, updated_at
		FROM cinemas
		WHERE id = $1
	`

	var cinema entity.Cinema
	err := r.db.QueryRow(ctx, query, id).Scan(
		&cinema.ID,
		&cinema.Name,
		&cinema.LocationID,
		&cinema.Rows,
		&cinema.SeatsPerRow,
		&cinema.Slug,
		&cinema.CreatedAt,
		&cinema.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find cinema by ID",
			zap.Error(err),
			zap.String("cinema_id", id.String()),
		)
		return nil, fmt.Errorf("find cinema by ID %s: %w", id.String(), err)
	}

	return &cinema, nil
}

func (r *cinemaRepository) FindBySlug(ctx context.Context, slug string) (*entity.Cinema, error) {
	query := `
		SELECT id, name, location_id, seat_rows, seats_per_row, slug, created_at, updated_at
		FROM cinemas
		WHERE slug = $1
	`

	var cinema entity.Cinema
	err := r.db.QueryRow(ctx, query, slug).Scan(
		&cinema.ID,
		&cinema.Name,
		&cinema.LocationID,
		&cinema.Rows,
		&cinema.SeatsPerRow,
		&cinema.Slug,
		&cinema.CreatedAt,
		&cinema.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find cinema by slug",
			zap.Error(err),
			zap.String("slug", slug),
		)
		return nil, fmt.Errorf("find cinema by slug %s: %w", slug, err)
	}

	return &cinema, nil
}

func (r *cinemaRepository) ExistsByNameAndLocation(ctx context.Context, name string, locationID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM cinemas WHERE name = $1 AND location_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, name, locationID).Scan(&exists); err != nil {
		r.log.Error("Failed to check cinema existence",
			zap.Error(err),
			zap.String("name", name),
			zap.String("location_id", locationID.String()),
		)
		return false, fmt.Errorf("check cinema %s existence: %w", name, err)
	}

	return exists, nil
}
