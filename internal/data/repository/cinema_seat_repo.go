package repository

import (
	"context"
	"fmt"

	"showtime-booking/internal/data/entity"
	"showtime-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CinemaSeatRepository interface {
	FindByCinemaID(ctx context.Context, cinemaID uuid.UUID) ([]*entity.CinemaSeat, error)
	// FindSeatsForBooking resolves the requested seat ids against a
	// cinema. Seats that don't exist or belong elsewhere are silently
	// absent from the result; callers compare counts.
	FindSeatsForBooking(ctx context.Context, cinemaID uuid.UUID, seatIDs []uuid.UUID) ([]*entity.CinemaSeat, error)
}

type cinemaSeatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCinemaSeatRepository(db database.PgxIface, log *zap.Logger) CinemaSeatRepository {
	return &cinemaSeatRepository{
		db:  db,
		log: log.With(zap.String("repository", "cinema_seat")),
	}
}

func (r *cinemaSeatRepository) FindByCinemaID(ctx context.Context, cinemaID uuid.UUID) ([]*entity.CinemaSeat, error) {
	query := `
		SELECT id, cinema_id, row_number, seat_number, created_at
		FROM cinema_seats
		WHERE cinema_id = $1
		ORDER BY row_number, seat_number
	`

	rows, err := r.db.Query(ctx, query, cinemaID)
	if err != nil {
		r.log.Error("Failed to find seats by cinema ID",
			zap.Error(err),
			zap.String("cinema_id", cinemaID.String()),
		)
		return nil, fmt.Errorf("find seats by cinema ID %s: %w", cinemaID.String(), err)
	}
	defer rows.Close()

	var seats []*entity.CinemaSeat
	for rows.Next() {
		var seat entity.CinemaSeat
		err := rows.Scan(&seat.ID, &seat.CinemaID, &seat.RowNumber, &seat.SeatNumber, &seat.CreatedAt)
		if err != nil {
			r.log.Error("Failed to scan cinema seat row", zap.Error(err))
			return nil, fmt.Errorf("scan cinema seat row: %w", err)
		}
		seats = append(seats, &seat)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate cinema seat rows: %w", err)
	}

	return seats, nil
}

func (r *cinemaSeatRepository) FindSeatsForBooking(ctx context.Context, cinemaID uuid.UUID, seatIDs []uuid.UUID) ([]*entity.CinemaSeat, error) {
	query := `
		SELECT id, cinema_id, row_number, seat_number, created_at
		FROM cinema_seats
		WHERE cinema_id = $1 AND id = ANY($2)
		ORDER BY row_number, seat_number
	`

	rows, err := r.db.Query(ctx, query, cinemaID, seatIDs)
	if err != nil {
		r.log.Error("Failed to resolve seats for booking",
			zap.Error(err),
			zap.String("cinema_id", cinemaID.String()),
			zap.Int("seat_count", len(seatIDs)),
		)
		return nil, fmt.Errorf("resolve seats for cinema %s: %w", cinemaID.String(), err)
	}
	defer rows.Close()

	var seats []*entity.CinemaSeat
	for rows.Next() {
		var seat entity.CinemaSeat
		err := rows.Scan(&seat.ID, &seat.CinemaID, &seat.RowNumber, &seat.SeatNumber, &seat.CreatedAt)
		if err != nil {
			r.log.Error("Failed to scan cinema seat row", zap.Error(err))
			return nil, fmt.Errorf("scan cinema seat row: %w", err)
		}
		seats = append(seats, &seat)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate cinema seat rows: %w", err)
	}

	return seats, nil
}
