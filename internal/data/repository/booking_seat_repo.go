package repository

import (
	"context"
	"fmt"

	"showtime-booking/internal/data/entity"
	"showtime-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingSeatRepository interface {
	// FindBookedSeatIDsBySlot returns the seat ids currently claimed by
	// booked bookings of a slot. Availability is always derived from
	// this set, never stored.
	FindBookedSeatIDsBySlot(ctx context.Context, slotID uuid.UUID) ([]uuid.UUID, error)
	FindSeatsByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.CinemaSeat, error)
}

type bookingSeatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingSeatRepository(db database.PgxIface, log *zap.Logger) BookingSeatRepository {
	return &bookingSeatRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking_seat")),
	}
}

func (r *bookingSeatRepository) FindBookedSeatIDsBySlot(ctx context.Context, slotID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT bs.cinema_seat_id
		FROM booking_seats bs
		JOIN bookings b ON b.id = bs.booking_id
		WHERE b.slot_id = $1 AND b.status = $2
	`

	rows, err := r.db.Query(ctx, query, slotID, entity.BookingStatusBooked)
	if err != nil {
		r.log.Error("Failed to find booked seats by slot",
			zap.Error(err),
			zap.String("slot_id", slotID.String()),
		)
		return nil, fmt.Errorf("find booked seats for slot %s: %w", slotID.String(), err)
	}
	defer rows.Close()

	var seatIDs []uuid.UUID
	for rows.Next() {
		var seatID uuid.UUID
		if err := rows.Scan(&seatID); err != nil {
			r.log.Error("Failed to scan booked seat row", zap.Error(err))
			return nil, fmt.Errorf("scan booked seat row: %w", err)
		}
		seatIDs = append(seatIDs, seatID)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booked seat rows: %w", err)
	}

	return seatIDs, nil
}

func (r *bookingSeatRepository) FindSeatsByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.CinemaSeat, error) {
	query := `
		SELECT cs.id, cs.cinema_id, cs.row_number, cs.seat_number, cs.created_at
		FROM booking_seats bs
		JOIN cinema_seats cs ON cs.id = bs.cinema_seat_id
		WHERE bs.booking_id = $1
		ORDER BY cs.row_number, cs.seat_number
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find seats by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find seats for booking %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var seats []*entity.CinemaSeat
	for rows.Next() {
		var seat entity.CinemaSeat
		err := rows.Scan(&seat.ID, &seat.CinemaID, &seat.RowNumber, &seat.SeatNumber, &seat.CreatedAt)
		if err != nil {
			r.log.Error("Failed to scan booking seat row", zap.Error(err))
			return nil, fmt.Errorf("scan booking seat row: %w", err)
		}
		seats = append(seats, &seat)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking seat rows: %w", err)
	}

	return seats, nil
}
