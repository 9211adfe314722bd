package repository

import (
	"context"
	"fmt"
	"time"

	"showtime-booking/internal/apperr"
	"showtime-booking/internal/data/entity"
	"showtime-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// HistoryFilter selects the purchase-history projection.
type HistoryFilter string

const (
	HistoryAll       HistoryFilter = ""
	HistoryCancelled HistoryFilter = "cancel"
	HistoryUpcoming  HistoryFilter = "upcoming"
	HistoryPast      HistoryFilter = "past"
)

type BookingRepository interface {
	// ReserveSeats is the reservation commit: inside one transaction it
	// locks the requested seat rows, re-validates slot time and seat
	// occupancy under the lock, then inserts the booking and its seat
	// rows. Either everything commits or nothing does; the loser of a
	// race observes the winner's rows and gets ErrSeatAlreadyBooked.
	ReserveSeats(ctx context.Context, booking *entity.Booking, seatIDs []uuid.UUID, slotStart time.Time) error
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Booking, error)
	Cancel(ctx context.Context, bookingID uuid.UUID) error
	FindByUserFiltered(ctx context.Context, userID uuid.UUID, filter HistoryFilter, limit, offset int) ([]*entity.Booking, error)
	CountByUserFiltered(ctx context.Context, userID uuid.UUID, filter HistoryFilter) (int64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) ReserveSeats(ctx context.Context, booking *entity.Booking, seatIDs []uuid.UUID, slotStart time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reserve tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the seat rows in a stable order so competing multi-seat
	// requests cannot deadlock. This is the serialization point: the
	// loser blocks here until the winner commits.
	lockSeats := `SELECT id FROM cinema_seats WHERE id = ANY($1) ORDER BY id FOR UPDATE`

	rows, err := tx.Query(ctx, lockSeats, seatIDs)
	if err != nil {
		return fmt.Errorf("lock seats: %w", err)
	}
	locked := 0
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scan locked seat: %w", err)
		}
		locked++
	}
	rows.Close()

	// A mid-iteration failure truncates the result; without this check
	// the count compare below would misread it as a bad seat id.
	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return fmt.Errorf("iterate locked seat rows: %w", err)
	}

	if locked != len(seatIDs) {
		// A seat disappeared between validation and commit.
		return apperr.ErrInvalidSeat
	}

	// Re-validate occupancy now that the seats are locked: a booking
	// that committed since the availability check shows up here.
	occupancyCheck := `
		SELECT EXISTS (
			SELECT 1
			FROM booking_seats bs
			JOIN bookings b ON b.id = bs.booking_id
			WHERE b.slot_id = $1
			  AND b.status = $2
			  AND bs.cinema_seat_id = ANY($3)
		)
	`

	var taken bool
	if err := tx.QueryRow(ctx, occupancyCheck, booking.SlotID, entity.BookingStatusBooked, seatIDs).Scan(&taken); err != nil {
		return fmt.Errorf("recheck seat occupancy: %w", err)
	}
	if taken {
		return apperr.ErrSeatAlreadyBooked
	}

	// Time may have advanced between validation and this commit. Seat
	// problems are reported first, so this check runs last.
	if slotStart.Before(time.Now()) {
		return apperr.ErrPastSlotBooking
	}

	insertBooking := `
		INSERT INTO bookings (id, user_id, slot_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = tx.Exec(ctx, insertBooking,
		booking.ID,
		booking.UserID,
		booking.SlotID,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", booking.UserID.String()),
			zap.String("slot_id", booking.SlotID.String()),
		)
		return fmt.Errorf("create booking for slot %s: %w", booking.SlotID.String(), err)
	}

	insertSeats := `INSERT INTO booking_seats (id, booking_id, cinema_seat_id, created_at) VALUES `
	args := make([]any, 0, len(seatIDs)*4)
	for i, seatID := range seatIDs {
		if i > 0 {
			insertSeats += ", "
		}
		base := i * 4
		insertSeats += fmt.Sprintf("($%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4)
		args = append(args, uuid.New(), booking.ID, seatID, booking.CreatedAt)
	}

	if _, err := tx.Exec(ctx, insertSeats, args...); err != nil {
		r.log.Error("Failed to create booking seats",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.Int("seat_count", len(seatIDs)),
		)
		return fmt.Errorf("create booking seats for booking %s: %w", booking.ID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit reserve: %w", err)
	}

	return nil
}

func (r *bookingRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT id, user_id, slot_id, status, created_at, updated_at
		FROM bookings
		WHERE id = $1 AND user_id = $2
	`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.SlotID,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find booking %s for user %s: %w", id.String(), userID.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) Cancel(ctx context.Context, bookingID uuid.UUID) error {
	// The status guard makes concurrent cancels race on the same row:
	// only one UPDATE matches, the other sees zero rows.
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1 AND status = $3`

	result, err := r.db.Exec(ctx, query, bookingID, entity.BookingStatusCancelled, entity.BookingStatusBooked)
	if err != nil {
		r.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("cancel booking %s: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperr.ErrAlreadyCancelled
	}

	return nil
}

// historyPredicate returns the extra WHERE clause for a filter. The
// predicates mirror the purchase-history projection: cancel shows
// cancelled bookings, upcoming and past split booked ones by slot time.
func historyPredicate(filter HistoryFilter) string {
	switch filter {
	case HistoryCancelled:
		return ` AND b.status = 'cancelled'`
	case HistoryUpcoming:
		return ` AND b.status = 'booked' AND s.start_time >= NOW()`
	case HistoryPast:
		return ` AND b.status = 'booked' AND s.start_time < NOW()`
	default:
		return ``
	}
}

func (r *bookingRepository) FindByUserFiltered(ctx context.Context, userID uuid.UUID, filter HistoryFilter, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT b.id, b.user_id, b.slot_id, b.status, b.created_at, b.updated_at
		FROM bookings b
		JOIN slots s ON s.id = b.slot_id
		WHERE b.user_id = $1` + historyPredicate(filter) + `
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("filter", string(filter)),
		)
		return nil, fmt.Errorf("find bookings for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.SlotID,
			&booking.Status,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByUserFiltered(ctx context.Context, userID uuid.UUID, filter HistoryFilter) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings b
		JOIN slots s ON s.id = b.slot_id
		WHERE b.user_id = $1` + historyPredicate(filter)

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("filter", string(filter)),
		)
		return 0, fmt.Errorf("count bookings for user %s: %w", userID.String(), err)
	}

	return count, nil
}
