package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"showtime-booking/internal/apperr"
	"showtime-booking/internal/data/entity"
	"showtime-booking/internal/data/repository"
	"showtime-booking/internal/dto/request"
	"showtime-booking/internal/dto/response"
	"showtime-booking/internal/events"
	"showtime-booking/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	GetSeatAvailability(ctx context.Context, slotID uuid.UUID) (*response.SeatAvailabilityResponse, error)
	CreateBooking(ctx context.Context, userID, slotID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingConfirmation, error)
	CancelBooking(ctx context.Context, userID, bookingID uuid.UUID) error
	GetPurchaseHistory(ctx context.Context, userID uuid.UUID, req *request.PurchaseHistoryRequest) (*response.PaginatedResponse[response.PurchaseHistoryItem], error)
}

type bookingService struct {
	repo      *repository.Repository
	log       *zap.Logger
	publisher events.Publisher
}

func NewBookingService(repo *repository.Repository, log *zap.Logger, publisher events.Publisher) BookingService {
	return &bookingService{
		repo:      repo,
		log:       log.With(zap.String("service", "booking")),
		publisher: publisher,
	}
}

// GetSeatAvailability derives the seat map from current bookings. There
// is no stored availability flag, so the answer is always a point-in-time
// snapshot and may be stale by the time the client books.
func (s *bookingService) GetSeatAvailability(ctx context.Context, slotID uuid.UUID) (*response.SeatAvailabilityResponse, error) {
	slot, err := s.repo.Slot.FindByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("find slot: %w", err)
	}
	if slot == nil {
		return nil, apperr.ErrSlotNotFound
	}
	if slot.StartTime.Before(time.Now()) {
		return nil, apperr.ErrPastSlotSeats
	}

	cinema, err := s.repo.Cinema.FindByID(ctx, slot.CinemaID)
	if err != nil {
		return nil, fmt.Errorf("find cinema: %w", err)
	}
	if cinema == nil {
		return nil, apperr.ErrCinemaNotFound
	}

	seats, err := s.repo.CinemaSeat.FindByCinemaID(ctx, cinema.ID)
	if err != nil {
		return nil, fmt.Errorf("find cinema seats: %w", err)
	}

	bookedIDs, err := s.repo.BookingSeat.FindBookedSeatIDsBySlot(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("find booked seats: %w", err)
	}
	booked := make(map[uuid.UUID]struct{}, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = struct{}{}
	}

	availability := make([]response.SeatAvailability, len(seats))
	for i, seat := range seats {
		_, taken := booked[seat.ID]
		availability[i] = response.SeatAvailability{
			ID:         seat.ID.String(),
			RowNumber:  seat.RowNumber,
			SeatNumber: seat.SeatNumber,
			Available:  !taken,
		}
	}

	var city string
	location, _ := s.repo.Location.FindByID(ctx, cinema.LocationID)
	if location != nil {
		city = location.City
	}

	var movieName string
	movie, _ := s.repo.Movie.FindByID(ctx, slot.MovieID)
	if movie != nil {
		movieName = movie.Name
	}

	return &response.SeatAvailabilityResponse{
		Cinema:        cinema.Name,
		Location:      city,
		Rows:          cinema.Rows,
		SeatsPerRow:   cinema.SeatsPerRow,
		Movie:         movieName,
		SlotPrice:     slot.Price,
		SlotStartTime: slot.StartTime,
		Seats:         availability,
	}, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, userID, slotID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingConfirmation, error) {
	slot, err := s.repo.Slot.FindByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("find slot: %w", err)
	}
	if slot == nil {
		return nil, apperr.ErrSlotNotFound
	}

	// Duplicate ids in one request would race against themselves.
	seen := make(map[uuid.UUID]struct{}, len(req.SeatIDs))
	seatIDs := make([]uuid.UUID, 0, len(req.SeatIDs))
	for _, raw := range req.SeatIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, apperr.Wrap(apperr.ErrInvalidSeat, err)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		seatIDs = append(seatIDs, id)
	}

	// Resolve the seats against the slot's own cinema. Seat ids from
	// another cinema come back short and fail here.
	seats, err := s.repo.CinemaSeat.FindSeatsForBooking(ctx, slot.CinemaID, seatIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve seats: %w", err)
	}
	if len(seats) != len(seatIDs) {
		return nil, apperr.ErrInvalidSeat
	}

	// Cheap precheck outside the lock. The authoritative check runs
	// again inside ReserveSeats while the seat rows are held.
	bookedIDs, err := s.repo.BookingSeat.FindBookedSeatIDsBySlot(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("find booked seats: %w", err)
	}
	booked := make(map[uuid.UUID]struct{}, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = struct{}{}
	}
	for _, id := range seatIDs {
		if _, taken := booked[id]; taken {
			metrics.ReservationConflicts.Inc()
			return nil, apperr.ErrSeatAlreadyBooked
		}
	}

	// Seat problems are reported before timing problems, so the past
	// check runs last.
	if slot.StartTime.Before(time.Now()) {
		return nil, apperr.ErrPastSlotBooking
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID: userID,
		SlotID: slotID,
		Status: entity.BookingStatusBooked,
	}

	if err := s.repo.Booking.ReserveSeats(ctx, booking, seatIDs, slot.StartTime); err != nil {
		if errors.Is(err, apperr.ErrSeatAlreadyBooked) {
			metrics.ReservationConflicts.Inc()
		}
		return nil, fmt.Errorf("reserve seats: %w", err)
	}

	metrics.BookingsCreated.Inc()

	if err := s.publisher.Publish(ctx, events.RouteBookingCreated, events.BookingEvent{
		BookingID: booking.ID.String(),
		UserID:    userID.String(),
		SlotID:    slotID.String(),
		Status:    string(entity.BookingStatusBooked),
		SeatCount: len(seatIDs),
		At:        now,
	}); err != nil {
		s.log.Warn("Failed to publish booking event", zap.Error(err))
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("slot_id", slotID.String()),
		zap.Int("seats", len(seatIDs)),
	)

	cinema, _ := s.repo.Cinema.FindByID(ctx, slot.CinemaID)
	confirmation := &response.BookingConfirmation{
		BookingID: booking.ID.String(),
		SlotTime:  slot.StartTime,
		SlotPrice: slot.Price,
		Seats:     response.SeatsToRefs(seats),
	}
	if cinema != nil {
		confirmation.CinemaName = cinema.Name
		location, _ := s.repo.Location.FindByID(ctx, cinema.LocationID)
		if location != nil {
			confirmation.CinemaLocation = location.City
		}
	}
	movie, _ := s.repo.Movie.FindByID(ctx, slot.MovieID)
	if movie != nil {
		confirmation.MovieName = movie.Name
	}

	return confirmation, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID uuid.UUID) error {
	// Owner scoping happens in the query itself, so another user's
	// booking id is indistinguishable from a missing one.
	booking, err := s.repo.Booking.FindByIDAndUser(ctx, bookingID, userID)
	if err != nil {
		return fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return apperr.ErrBookingNotFound
	}
	if booking.Status == entity.BookingStatusCancelled {
		return apperr.ErrAlreadyCancelled
	}

	slot, err := s.repo.Slot.FindByID(ctx, booking.SlotID)
	if err != nil {
		return fmt.Errorf("find slot: %w", err)
	}
	if slot != nil && slot.StartTime.Before(time.Now()) {
		return apperr.ErrPastBookingEdit
	}

	// The repository refuses the update when another request cancelled
	// the booking first, so a racing cancel cannot succeed twice.
	if err := s.repo.Booking.Cancel(ctx, bookingID); err != nil {
		return err
	}

	metrics.BookingsCancelled.Inc()

	if err := s.publisher.Publish(ctx, events.RouteBookingCancelled, events.BookingEvent{
		BookingID: bookingID.String(),
		UserID:    userID.String(),
		SlotID:    booking.SlotID.String(),
		Status:    string(entity.BookingStatusCancelled),
		At:        time.Now(),
	}); err != nil {
		s.log.Warn("Failed to publish booking event", zap.Error(err))
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID.String()),
		zap.String("user_id", userID.String()),
	)

	return nil
}

func (s *bookingService) GetPurchaseHistory(ctx context.Context, userID uuid.UUID, req *request.PurchaseHistoryRequest) (*response.PaginatedResponse[response.PurchaseHistoryItem], error) {
	filter := repository.HistoryFilter(req.Purchase)

	total, err := s.repo.Booking.CountByUserFiltered(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	bookings, err := s.repo.Booking.FindByUserFiltered(ctx, userID, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("find bookings: %w", err)
	}

	items := make([]response.PurchaseHistoryItem, 0, len(bookings))
	for _, booking := range bookings {
		item := response.PurchaseHistoryItem{
			ID:        booking.ID.String(),
			Status:    booking.Status,
			CreatedAt: booking.CreatedAt,
		}

		slot, _ := s.repo.Slot.FindByID(ctx, booking.SlotID)
		if slot != nil {
			item.StartTime = slot.StartTime
			item.Price = slot.Price

			movie, _ := s.repo.Movie.FindByID(ctx, slot.MovieID)
			if movie != nil {
				item.MovieName = movie.Name
			}

			cinema, _ := s.repo.Cinema.FindByID(ctx, slot.CinemaID)
			if cinema != nil {
				item.CinemaName = cinema.Name
				location, _ := s.repo.Location.FindByID(ctx, cinema.LocationID)
				if location != nil {
					item.City = location.City
				}
			}
		}

		seats, _ := s.repo.BookingSeat.FindSeatsByBookingID(ctx, booking.ID)
		item.Seats = response.SeatsToRefs(seats)

		items = append(items, item)
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}
