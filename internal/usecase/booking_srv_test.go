package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"showtime-booking/internal/apperr"
	"showtime-booking/internal/data/entity"
	"showtime-booking/internal/data/repository"
	"showtime-booking/internal/dto/request"
	"showtime-booking/internal/events"

	"github.com/google/uuid"
)

func futureSlot(id, cinemaID uuid.UUID) *entity.Slot {
	start := time.Now().Add(24 * time.Hour)
	return &entity.Slot{
		Base:      entity.Base{ID: id},
		CinemaID:  cinemaID,
		MovieID:   uuid.New(),
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
		Price:     300,
	}
}

func seatRows(cinemaID uuid.UUID, ids ...uuid.UUID) []*entity.CinemaSeat {
	seats := make([]*entity.CinemaSeat, len(ids))
	for i, id := range ids {
		seats[i] = &entity.CinemaSeat{
			BaseSimple: entity.BaseSimple{ID: id},
			CinemaID:   cinemaID,
			RowNumber:  1,
			SeatNumber: i + 1,
		}
	}
	return seats
}

func TestGetSeatAvailabilityDerivedFromBookings(t *testing.T) {
	repo := newStubRepository()
	slotID := uuid.New()
	cinemaID := uuid.New()
	seatA := uuid.New()
	seatB := uuid.New()

	repo.Slot = &stubSlotRepo{
		findByIDFn: func(_ context.Context, _ uuid.UUID) (*entity.Slot, error) {
			return futureSlot(slotID, cinemaID), nil
		},
	}
	repo.Cinema = &stubCinemaRepo{
		findByIDFn: func(_ context.Context, _ uuid.UUID) (*entity.Cinema, error) {
			return &entity.Cinema{Base: entity.Base{ID: cinemaID}, Name: "Grand Plaza", Rows: 1, SeatsPerRow: 2}, nil
		},
	}
	repo.CinemaSeat = &stubCinemaSeatRepo{
		findByCinemaIDFn: func(_ context.Context, _ uuid.UUID) ([]*entity.CinemaSeat, error) {
			return seatRows(cinemaID, seatA, seatB), nil
		},
	}
	repo.BookingSeat = &stubBookingSeatRepo{
		findBookedFn: func(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
			return []uuid.UUID{seatB}, nil
		},
	}

	svc := NewBookingService(repo, testLogger(), events.NewNoopPublisher())
	resp, err := svc.GetSeatAvailability(context.Background(), slotID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Seats) != 2 {
		t.Fatalf("expected 2 seats, got %d", len(resp.Seats))
	}
	if !resp.Seats[0].Available {
		t.Fatal("unbooked seat must be available")
	}
	if resp.Seats[1].Available {
		t.Fatal("booked seat must be unavailable")
	}
}

func TestGetSeatAvailabilityPastSlot(t *testing.T) {
	repo := newStubRepository()
	repo.Slot = &stubSlotRepo{
		findByIDFn: func(_ context.Context, id uuid.UUID) (*entity.Slot, error) {
			return &entity.Slot{Base: entity.Base{ID: id}, StartTime: time.Now().Add(-time.Hour)}, nil
		},
	}

	svc := NewBookingService(repo, testLogger(), events.NewNoopPublisher())
	_, err := svc.GetSeatAvailability(context.Background(), uuid.New())
	if !errors.Is(err, apperr.ErrPastSlotSeats) {
		t.Fatalf("expected ErrPastSlotSeats, got %v", err)
	}
	if apperr.KindOf(err) != apperr.KindPermission {
		t.Fatalf("expected permission kind, got %v", apperr.KindOf(err))
	}
}

func TestCreateBookingSuccess(t *testing.T) {
	repo := newStubRepository()
	slotID := uuid.New()
	cinemaID := uuid.New()
	userID := uuid.New()
	seatA := uuid.New()
	seatB := uuid.New()

	repo.Slot = &stubSlotRepo{
		findByIDFn: func(_ context.Context, _ uuid.UUID) (*entity.Slot, error) {
			return futureSlot(slotID, cinemaID), nil
		},
	}
	repo.CinemaSeat = &stubCinemaSeatRepo{
		findForBookingFn: func(_ context.Context, gotCinema uuid.UUID, seatIDs []uuid.UUID) ([]*entity.CinemaSeat, error) {
			if gotCinema != cinemaID {
				t.Fatalf("seats must be resolved against the slot's cinema, got %s", gotCinema)
			}
			return seatRows(cinemaID, seatIDs...), nil
		},
	}

	var reserved *entity.Booking
	var reservedSeats []uuid.UUID
	repo.Booking = &stubBookingRepo{
		reserveSeatsFn: func(_ context.Context, booking *entity.Booking, seatIDs []uuid.UUID, _ time.Time) error {
			reserved = booking
			reservedSeats = seatIDs
			return nil
		},
	}

	svc := NewBookingService(repo, testLogger(), events.NewNoopPublisher())
	resp, err := svc.CreateBooking(context.Background(), userID, slotID, &request.CreateBookingRequest{
		SeatIDs: []string{seatA.String(), seatB.String()},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reserved == nil || reserved.UserID != userID || reserved.SlotID != slotID {
		t.Fatalf("booking not committed for the right user and slot: %+v", reserved)
	}
	if reserved.Status != entity.BookingStatusBooked {
		t.Fatalf("expected status booked, got %s", reserved.Status)
	}
	if len(reservedSeats) != 2 {
		t.Fatalf("expected 2 seats reserved, got %d", len(reservedSeats))
	}
	if len(resp.Seats) != 2 {
		t.Fatalf("expected 2 seat refs in confirmation, got %d", len(resp.Seats))
	}
}

func TestCreateBookingDeduplicatesSeatIDs(t *testing.T) {
	repo := newStubRepository()
	slotID := uuid.New()
	cinemaID := uuid.New()
	seat := uuid.New()

	repo.Slot = &stubSlotRepo{
		findByIDFn: func(_ context.Context, _ uuid.UUID) (*entity.Slot, error) {
			return futureSlot(slotID, cinemaID), nil
		},
	}
	repo.CinemaSeat = &stubCinemaSeatRepo{
		findForBookingFn: func(_ context.Context, _ uuid.UUID, seatIDs []uuid.UUID) ([]*entity.CinemaSeat, error) {
			return seatRows(cinemaID, seatIDs...), nil
		},
	}

	var reservedSeats []uuid.UUID
	repo.Booking = &stubBookingRepo{
		reserveSeatsFn: func(_ context.Context, _ *entity.Booking, seatIDs []uuid.UUID, _ time.Time) error {
			reservedSeats = seatIDs
			return nil
		},
	}

	svc := NewBookingService(repo, testLogger(), events.NewNoopPublisher())
	_, err := svc.CreateBooking(context.Background(), uuid.New(), slotID, &request.CreateBookingRequest{
		SeatIDs: []string{seat.String(), seat.String(), seat.String()},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reservedSeats) != 1 {
		t.Fatalf("expected repeated seat collapsed to 1, got %d", len(reservedSeats))
	}
}

func TestCreateBookingUnknownSeat(t *testing.T) {
	repo := newStubRepository()
	slotID := uuid.New()
	cinemaID := uuid.New()

	repo.Slot = &stubSlotRepo{
		findByIDFn: func(_ context.Context, _ uuid.UUID) (*entity.Slot, error) {
			return futureSlot(slotID, cinemaID), nil
		},
	}
	// Resolving returns fewer rows than requested: seat missing or from
	// another cinema.
	repo.CinemaSeat = &stubCinemaSeatRepo{
		findForBookingFn: func(_ context.Context, _ uuid.UUID, _ []uuid.UUID) ([]*entity.CinemaSeat, error) {
			return nil, nil
		},
	}

	svc := NewBookingService(repo, testLogger(), events.NewNoopPublisher())
	_, err := svc.CreateBooking(context.Background(), uuid.New(), slotID, &request.CreateBookingRequest{
		SeatIDs: []string{uuid.New().String()},
	})
	if !errors.Is(err, apperr.ErrInvalidSeat) {
		t.Fatalf("expected ErrInvalidSeat, got %v", err)
	}
}

func TestCreateBookingSeatTakenConflict(t *testing.T) {
	repo := newStubRepository()
	slotID := uuid.New()
	cinemaID := uuid.New()
	seat := uuid.New()

	repo.Slot = &stubSlotRepo{
		findByIDFn: func(_ context.Context, _ uuid.UUID) (*entity.Slot, error) {
			return futureSlot(slotID, cinemaID), nil
		},
	}
	repo.CinemaSeat = &stubCinemaSeatRepo{
		findForBookingFn: func(_ context.Context, _ uuid.UUID, seatIDs []uuid.UUID) ([]*entity.CinemaSeat, error) {
			return seatRows(cinemaID, seatIDs...), nil
		},
	}
	repo.BookingSeat = &stubBookingSeatRepo{
		findBookedFn: func(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
			return []uuid.UUID{seat}, nil
		},
	}
	repo.Booking = &stubBookingRepo{
		reserveSeatsFn: func(_ context.Context, _ *entity.Booking, _ []uuid.UUID, _ time.Time) error {
			t.Fatal("precheck should reject before the reservation transaction starts")
			return nil
		},
	}

	svc := NewBookingService(repo, testLogger(), events.NewNoopPublisher())
	_, err := svc.CreateBooking(context.Background(), uuid.New(), slotID, &request.CreateBookingRequest{
		SeatIDs: []string{seat.String()},
	})
	if !errors.Is(err, apperr.ErrSeatAlreadyBooked) {
		t.Fatalf("expected ErrSeatAlreadyBooked, got %v", err)
	}
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict kind, got %v", apperr.KindOf(err))
	}
}

func TestCreateBookingLoserGetsConflictFromCommit(t *testing.T) {
	repo := newStubRepository()
	slotID := uuid.New()
	cinemaID := uuid.New()

	repo.Slot = &stubSlotRepo{
		findByIDFn: func(_ context.Context, _ uuid.UUID) (*entity.Slot, error) {
			return futureSlot(slotID, cinemaID), nil
		},
	}
	repo.CinemaSeat = &stubCinemaSeatRepo{
		findForBookingFn: func(_ context.Context, _ uuid.UUID, seatIDs []uuid.UUID) ([]*entity.CinemaSeat, error) {
			return seatRows(cinemaID, seatIDs...), nil
		},
	}
	// Precheck passes, then the locked recheck inside the transaction
	// finds the seat taken. This is the losing side of a race.
	repo.Booking = &stubBookingRepo{
		reserveSeatsFn: func(_ context.Context, _ *entity.Booking, _ []uuid.UUID, _ time.Time) error {
			return apperr.ErrSeatAlreadyBooked
		},
	}

	svc := NewBookingService(repo, testLogger(), events.NewNoopPublisher())
	_, err := svc.CreateBooking(context.Background(), uuid.New(), slotID, &request.CreateBookingRequest{
		SeatIDs: []string{uuid.New().String()},
	})
	if !errors.Is(err, apperr.ErrSeatAlreadyBooked) {
		t.Fatalf("expected ErrSeatAlreadyBooked, got %v", err)
	}
}

func TestCreateBookingPastSlot(t *testing.T) {
	repo := newStubRepository()
	cinemaID := uuid.New()
	repo.Slot = &stubSlotRepo{
		findByIDFn: func(_ context.Context, id uuid.UUID) (*entity.Slot, error) {
			return &entity.Slot{Base: entity.Base{ID: id}, CinemaID: cinemaID, StartTime: time.Now().Add(-time.Minute)}, nil
		},
	}
	repo.CinemaSeat = &stubCinemaSeatRepo{
		findForBookingFn: func(_ context.Context, _ uuid.UUID, seatIDs []uuid.UUID) ([]*entity.CinemaSeat, error) {
			return seatRows(cinemaID, seatIDs...), nil
		},
	}

	svc := NewBookingService(repo, testLogger(), events.NewNoopPublisher())
	_, err := svc.CreateBooking(context.Background(), uuid.New(), uuid.New(), &request.CreateBookingRequest{
		SeatIDs: []string{uuid.New().String()},
	})
	if !errors.Is(err, apperr.ErrPastSlotBooking) {
		t.Fatalf("expected ErrPastSlotBooking, got %v", err)
	}
}

func TestCreateBookingSeatErrorsWinOverPastSlot(t *testing.T) {
	repo := newStubRepository()
	cinemaID := uuid.New()
	// The slot already started and a seat id is unknown. Seat
	// validation runs first, so the invalid seat is what gets
	// reported.
	repo.Slot = &stubSlotRepo{
		findByIDFn: func(_ context.Context, id uuid.UUID) (*entity.Slot, error) {
			return &entity.Slot{Base: entity.Base{ID: id}, CinemaID: cinemaID, StartTime: time.Now().Add(-time.Minute)}, nil
		},
	}
	repo.CinemaSeat = &stubCinemaSeatRepo{
		findForBookingFn: func(_ context.Context, _ uuid.UUID, _ []uuid.UUID) ([]*entity.CinemaSeat, error) {
			return nil, nil
		},
	}

	svc := NewBookingService(repo, testLogger(), events.NewNoopPublisher())
	_, err := svc.CreateBooking(context.Background(), uuid.New(), uuid.New(), &request.CreateBookingRequest{
		SeatIDs: []string{uuid.New().String()},
	})
	if !errors.Is(err, apperr.ErrInvalidSeat) {
		t.Fatalf("expected ErrInvalidSeat, got %v", err)
	}
}

func TestCancelBookingOwnerScoped(t *testing.T) {
	repo := newStubRepository()
	// FindByIDAndUser returns nothing for another user's booking, so
	// cancellation reports not found rather than forbidden.
	svc := NewBookingService(repo, testLogger(), events.NewNoopPublisher())
	err := svc.CancelBooking(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, apperr.ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestCancelBookingAlreadyCancelled(t *testing.T) {
	repo := newStubRepository()
	repo.Booking = &stubBookingRepo{
		findByIDAndUserFn: func(_ context.Context, id, userID uuid.UUID) (*entity.Booking, error) {
			return &entity.Booking{Base: entity.Base{ID: id}, UserID: userID, Status: entity.BookingStatusCancelled}, nil
		},
	}

	svc := NewBookingService(repo, testLogger(), events.NewNoopPublisher())
	err := svc.CancelBooking(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, apperr.ErrAlreadyCancelled) {
		t.Fatalf("expected ErrAlreadyCancelled, got %v", err)
	}
}

func TestCancelBookingPastSlot(t *testing.T) {
	repo := newStubRepository()
	slotID := uuid.New()
	repo.Booking = &stubBookingRepo{
		findByIDAndUserFn: func(_ context.Context, id, userID uuid.UUID) (*entity.Booking, error) {
			return &entity.Booking{Base: entity.Base{ID: id}, UserID: userID, SlotID: slotID, Status: entity.BookingStatusBooked}, nil
		},
		cancelFn: func(_ context.Context, _ uuid.UUID) error {
			t.Fatal("past booking must not be cancelled")
			return nil
		},
	}
	repo.Slot = &stubSlotRepo{
		findByIDFn: func(_ context.Context, _ uuid.UUID) (*entity.Slot, error) {
			return &entity.Slot{Base: entity.Base{ID: slotID}, StartTime: time.Now().Add(-time.Hour)}, nil
		},
	}

	svc := NewBookingService(repo, testLogger(), events.NewNoopPublisher())
	err := svc.CancelBooking(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, apperr.ErrPastBookingEdit) {
		t.Fatalf("expected ErrPastBookingEdit, got %v", err)
	}
}

func TestCancelBookingSuccess(t *testing.T) {
	repo := newStubRepository()
	slotID := uuid.New()
	cancelled := false
	repo.Booking = &stubBookingRepo{
		findByIDAndUserFn: func(_ context.Context, id, userID uuid.UUID) (*entity.Booking, error) {
			return &entity.Booking{Base: entity.Base{ID: id}, UserID: userID, SlotID: slotID, Status: entity.BookingStatusBooked}, nil
		},
		cancelFn: func(_ context.Context, _ uuid.UUID) error {
			cancelled = true
			return nil
		},
	}
	repo.Slot = &stubSlotRepo{
		findByIDFn: func(_ context.Context, _ uuid.UUID) (*entity.Slot, error) {
			return &entity.Slot{Base: entity.Base{ID: slotID}, StartTime: time.Now().Add(time.Hour)}, nil
		},
	}

	svc := NewBookingService(repo, testLogger(), events.NewNoopPublisher())
	if err := svc.CancelBooking(context.Background(), uuid.New(), uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cancelled {
		t.Fatal("expected booking to be cancelled")
	}
}

func TestCancelBookingLostRaceReportsAlreadyCancelled(t *testing.T) {
	repo := newStubRepository()
	slotID := uuid.New()
	// The booking still reads as booked, but a concurrent cancel wins
	// the guarded update before ours runs.
	repo.Booking = &stubBookingRepo{
		findByIDAndUserFn: func(_ context.Context, id, userID uuid.UUID) (*entity.Booking, error) {
			return &entity.Booking{Base: entity.Base{ID: id}, UserID: userID, SlotID: slotID, Status: entity.BookingStatusBooked}, nil
		},
		cancelFn: func(_ context.Context, _ uuid.UUID) error {
			return apperr.ErrAlreadyCancelled
		},
	}
	repo.Slot = &stubSlotRepo{
		findByIDFn: func(_ context.Context, _ uuid.UUID) (*entity.Slot, error) {
			return &entity.Slot{Base: entity.Base{ID: slotID}, StartTime: time.Now().Add(time.Hour)}, nil
		},
	}

	svc := NewBookingService(repo, testLogger(), events.NewNoopPublisher())
	err := svc.CancelBooking(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, apperr.ErrAlreadyCancelled) {
		t.Fatalf("expected ErrAlreadyCancelled, got %v", err)
	}
}

func TestGetPurchaseHistoryPassesFilter(t *testing.T) {
	repo := newStubRepository()
	userID := uuid.New()

	var gotFilter repository.HistoryFilter
	repo.Booking = &stubBookingRepo{
		countFilteredFn: func(_ context.Context, _ uuid.UUID, filter repository.HistoryFilter) (int64, error) {
			return 1, nil
		},
		findFilteredFn: func(_ context.Context, _ uuid.UUID, filter repository.HistoryFilter, limit, offset int) ([]*entity.Booking, error) {
			gotFilter = filter
			if limit != 10 || offset != 0 {
				t.Fatalf("default pagination expected, got limit=%d offset=%d", limit, offset)
			}
			return []*entity.Booking{
				{Base: entity.Base{ID: uuid.New(), CreatedAt: time.Now()}, UserID: userID, SlotID: uuid.New(), Status: entity.BookingStatusCancelled},
			}, nil
		},
	}

	svc := NewBookingService(repo, testLogger(), events.NewNoopPublisher())
	resp, err := svc.GetPurchaseHistory(context.Background(), userID, &request.PurchaseHistoryRequest{
		Purchase: "cancel",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotFilter != repository.HistoryCancelled {
		t.Fatalf("expected cancel filter, got %q", gotFilter)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("expected 1 item, got %d", len(resp.Data))
	}
	if resp.Data[0].Status != entity.BookingStatusCancelled {
		t.Fatalf("expected cancelled status, got %s", resp.Data[0].Status)
	}
}
