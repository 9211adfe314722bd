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

type SlotRepository interface {
	// Schedule inserts the slot after re-running the overlap check under
	// a lock on the cinema row, so two concurrent schedules for the same
	// cinema serialize and at most one of an overlapping pair commits.
	Schedule(ctx context.Context, slot *entity.Slot) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Slot, error)
	// FindByCinemaAndDate lists a cinema's slots on a calendar day,
	// skipping slots that start before notBefore when it is non-nil.
	FindByCinemaAndDate(ctx context.Context, cinemaID uuid.UUID, date time.Time, notBefore *time.Time) ([]*entity.Slot, error)
}

type slotRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSlotRepository(db database.PgxIface, log *zap.Logger) SlotRepository {
	return &slotRepository{
		db:  db,
		log: log.With(zap.String("repository", "slot")),
	}
}

func (r *slotRepository) Schedule(ctx context.Context, slot *entity.Slot) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin schedule slot tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize schedules per cinema. The lock is held only for the
	// overlap check and insert, no external I/O happens inside.
	lockCinema := `SELECT id FROM cinemas WHERE id = $1 FOR UPDATE`

	var cinemaID uuid.UUID
	if err := tx.QueryRow(ctx, lockCinema, slot.CinemaID).Scan(&cinemaID); err != nil {
		if err == pgx.ErrNoRows {
			return apperr.ErrCinemaNotFound
		}
		return fmt.Errorf("lock cinema %s: %w", slot.CinemaID.String(), err)
	}

	// Overlap is inclusive on both ends: a slot starting exactly at
	// another's end_time still conflicts.
	overlapCheck := `
		SELECT EXISTS (
			SELECT 1 FROM slots
			WHERE cinema_id = $1
			  AND (
				(start_time <= $2 AND end_time >= $2)
				OR (start_time >= $2 AND start_time <= $3)
			  )
		)
	`

	var overlaps bool
	if err := tx.QueryRow(ctx, overlapCheck, slot.CinemaID, slot.StartTime, slot.EndTime).Scan(&overlaps); err != nil {
		return fmt.Errorf("check slot overlap for cinema %s: %w", slot.CinemaID.String(), err)
	}

	if overlaps {
		return apperr.ErrSlotOverlaps
	}

	insertSlot := `
		INSERT INTO slots (id, cinema_id, movie_id, start_time, end_time, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = tx.Exec(ctx, insertSlot,
		slot.ID,
		slot.CinemaID,
		slot.MovieID,
		slot.StartTime,
		slot.EndTime,
		slot.Price,
		slot.CreatedAt,
		slot.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create slot",
			zap.Error(err),
			zap.String("cinema_id", slot.CinemaID.String()),
			zap.Time("start_time", slot.StartTime),
		)
		return fmt.Errorf("create slot for cinema %s: %w", slot.CinemaID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit schedule slot: %w", err)
	}

	return nil
}

func (r *slotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Slot, error) {
	query := `
		SELECT id, cinema_id, movie_id, start_time, end_time, price, created_at, updated_at
		FROM slots
		WHERE id = $1
	`

	var slot entity.Slot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&slot.ID,
		&slot.CinemaID,
		&slot.MovieID,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Price,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find slot by ID",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return nil, fmt.Errorf("find slot by ID %s: %w", id.String(), err)
	}

	return &slot, nil
}

func (r *slotRepository) FindByCinemaAndDate(ctx context.Context, cinemaID uuid.UUID, date time.Time, notBefore *time.Time) ([]*entity.Slot, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := `
		SELECT id, cinema_id, movie_id, start_time, end_time, price, created_at, updated_at
		FROM slots
		WHERE cinema_id = $1 AND start_time >= $2 AND start_time < $3
	`
	args := []any{cinemaID, dayStart, dayEnd}

	if notBefore != nil {
		query += ` AND start_time >= $4`
		args = append(args, *notBefore)
	}

	query += ` ORDER BY start_time`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find slots by cinema and date",
			zap.Error(err),
			zap.String("cinema_id", cinemaID.String()),
			zap.Time("date", date),
		)
		return nil, fmt.Errorf("find slots for cinema %s: %w", cinemaID.String(), err)
	}
	defer rows.Close()

	var slots []*entity.Slot
	for rows.Next() {
		var slot entity.Slot
		err := rows.Scan(
			&slot.ID,
			&slot.CinemaID,
			&slot.MovieID,
			&slot.StartTime,
			&slot.EndTime,
			&slot.Price,
			&slot.CreatedAt,
			&slot.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan slot row", zap.Error(err))
			return nil, fmt.Errorf("scan slot row: %w", err)
		}
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate slot rows: %w", err)
	}

	return slots, nil
}
