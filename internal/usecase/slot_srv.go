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

const dateLayout = "2006-01-02"

type SlotService interface {
	ScheduleSlot(ctx context.Context, req *request.ScheduleSlotRequest) (*response.SlotResponse, error)
	ListCinemaSlots(ctx context.Context, cinemaID uuid.UUID, date time.Time) (*response.CinemaSlotsResponse, error)
}

type slotService struct {
	repo      *repository.Repository
	log       *zap.Logger
	publisher events.Publisher
}

func NewSlotService(repo *repository.Repository, log *zap.Logger, publisher events.Publisher) SlotService {
	return &slotService{
		repo:      repo,
		log:       log.With(zap.String("service", "slot")),
		publisher: publisher,
	}
}

func (s *slotService) ScheduleSlot(ctx context.Context, req *request.ScheduleSlotRequest) (*response.SlotResponse, error) {
	cinemaID, err := uuid.Parse(req.CinemaID)
	if err != nil {
		return nil, fmt.Errorf("invalid cinema ID format %s: %w", req.CinemaID, err)
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", req.MovieID, err)
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, apperr.New(apperr.KindValidation, "invalid_datetime", "Invalid datetime format (RFC 3339).")
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, apperr.ErrMovieNotFound
	}

	// Domain rule: strictly in the future at creation time.
	if !startTime.After(time.Now()) {
		return nil, apperr.ErrPastSchedule
	}

	// Only the calendar date matters for the release check.
	if startTime.Format(dateLayout) < movie.ReleaseDate.Format(dateLayout) {
		return nil, apperr.ErrUnreleasedMovie
	}

	now := time.Now()
	slot := &entity.Slot{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CinemaID:  cinemaID,
		MovieID:   movieID,
		StartTime: startTime,
		EndTime:   startTime.Add(movie.Duration()),
		Price:     req.Price,
	}

	// Overlap is checked under the cinema lock inside the repository;
	// two concurrent schedules for the same cinema serialize there.
	if err := s.repo.Slot.Schedule(ctx, slot); err != nil {
		if errors.Is(err, apperr.ErrSlotOverlaps) {
			metrics.ScheduleConflicts.Inc()
		}
		return nil, fmt.Errorf("schedule slot: %w", err)
	}

	metrics.SlotsScheduled.Inc()

	if err := s.publisher.Publish(ctx, events.RouteSlotScheduled, events.SlotScheduledEvent{
		SlotID:    slot.ID.String(),
		CinemaID:  cinemaID.String(),
		MovieID:   movieID.String(),
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
	}); err != nil {
		s.log.Warn("Failed to publish slot event", zap.Error(err))
	}

	s.log.Info("Slot scheduled",
		zap.String("slot_id", slot.ID.String()),
		zap.String("cinema_id", cinemaID.String()),
		zap.String("movie_id", movieID.String()),
		zap.Time("start_time", slot.StartTime),
		zap.Time("end_time", slot.EndTime),
	)

	resp := response.SlotToResponse(slot)
	return &resp, nil
}

func (s *slotService) ListCinemaSlots(ctx context.Context, cinemaID uuid.UUID, date time.Time) (*response.CinemaSlotsResponse, error) {
	cinema, err := s.repo.Cinema.FindByID(ctx, cinemaID)
	if err != nil {
		return nil, fmt.Errorf("find cinema: %w", err)
	}
	if cinema == nil {
		return nil, apperr.ErrCinemaNotFound
	}

	// For today, slots that already started are not listed.
	var notBefore *time.Time
	now := time.Now()
	if now.Format(dateLayout) == date.Format(dateLayout) {
		notBefore = &now
	}

	slots, err := s.repo.Slot.FindByCinemaAndDate(ctx, cinemaID, date, notBefore)
	if err != nil {
		return nil, fmt.Errorf("list cinema slots: %w", err)
	}

	// Group slots under their movie, keeping first-showing order.
	byMovie := make(map[uuid.UUID]*response.MovieSlotsResponse)
	var order []uuid.UUID
	for _, slot := range slots {
		group, ok := byMovie[slot.MovieID]
		if !ok {
			var movieName string
			movie, _ := s.repo.Movie.FindByID(ctx, slot.MovieID)
			if movie != nil {
				movieName = movie.Name
			}

			group = &response.MovieSlotsResponse{
				MovieID:   slot.MovieID.String(),
				MovieName: movieName,
			}
			byMovie[slot.MovieID] = group
			order = append(order, slot.MovieID)
		}
		group.Slots = append(group.Slots, response.SlotToResponse(slot))
	}

	movies := make([]response.MovieSlotsResponse, len(order))
	for i, movieID := range order {
		movies[i] = *byMovie[movieID]
	}

	return &response.CinemaSlotsResponse{
		CinemaID: cinema.ID.String(),
		Cinema:   cinema.Name,
		Date:     date.Format(dateLayout),
		Movies:   movies,
	}, nil
}
