package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"showtime-booking/internal/apperr"
	"showtime-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"go.uber.org/zap"
)

func newCinemaWithSeats() (*entity.Cinema, []*entity.CinemaSeat) {
	now := time.Now()
	cinema := &entity.Cinema{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        "Grand Plaza",
		LocationID:  uuid.New(),
		Rows:        1,
		SeatsPerRow: 2,
		Slug:        "grand-plaza-mumbai",
	}

	seats := make([]*entity.CinemaSeat, 0, 2)
	for n := 1; n <= 2; n++ {
		seats = append(seats, &entity.CinemaSeat{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			CinemaID:   cinema.ID,
			RowNumber:  1,
			SeatNumber: n,
		})
	}
	return cinema, seats
}

func TestCreateWithSeatsCommitsGrid(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	cinema, seats := newCinemaWithSeats()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO cinemas").
		WithArgs(cinema.ID, cinema.Name, cinema.LocationID, cinema.Rows, cinema.SeatsPerRow, cinema.Slug, cinema.CreatedAt, cinema.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO cinema_seats").
		WithArgs(
			seats[0].ID, cinema.ID, 1, 1, seats[0].CreatedAt,
			seats[1].ID, cinema.ID, 1, 2, seats[1].CreatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	repo := NewCinemaRepository(mock, zap.NewNop())
	if err := repo.CreateWithSeats(context.Background(), cinema, seats); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateWithSeatsDuplicateSlug(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	cinema, seats := newCinemaWithSeats()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO cinemas").
		WithArgs(cinema.ID, cinema.Name, cinema.LocationID, cinema.Rows, cinema.SeatsPerRow, cinema.Slug, cinema.CreatedAt, cinema.UpdatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	repo := NewCinemaRepository(mock, zap.NewNop())
	err = repo.CreateWithSeats(context.Background(), cinema, seats)
	if !errors.Is(err, apperr.ErrCinemaExists) {
		t.Fatalf("expected ErrCinemaExists, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindBySlugNoRows(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	mock.ExpectQuery("SELECT id, name, location_id").
		WithArgs("no-such-cinema").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "location_id", "seat_rows", "seats_per_row", "slug", "created_at", "updated_at"}))

	repo := NewCinemaRepository(mock, zap.NewNop())
	cinema, err := repo.FindBySlug(context.Background(), "no-such-cinema")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cinema != nil {
		t.Fatalf("expected nil cinema, got %+v", cinema)
	}
}
