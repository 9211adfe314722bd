package usecase

import (
	"context"
	"time"

	"showtime-booking/internal/data/entity"
	"showtime-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Per-method function stubs over the repository interfaces. Unset
// methods return zero values so each test only wires what it exercises.

type stubLocationRepo struct {
	createFn     func(ctx context.Context, location *entity.Location) error
	findByIDFn   func(ctx context.Context, id uuid.UUID) (*entity.Location, error)
	findByCityFn func(ctx context.Context, city string) (*entity.Location, error)
	findAllFn    func(ctx context.Context) ([]*entity.Location, error)
}

func (s *stubLocationRepo) Create(ctx context.Context, location *entity.Location) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, location)
}

func (s *stubLocationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Location, error) {
	if s.findByIDFn == nil {
		return nil, nil
	}
	return s.findByIDFn(ctx, id)
}

func (s *stubLocationRepo) FindByCity(ctx context.Context, city string) (*entity.Location, error) {
	if s.findByCityFn == nil {
		return nil, nil
	}
	return s.findByCityFn(ctx, city)
}

func (s *stubLocationRepo) FindAll(ctx context.Context) ([]*entity.Location, error) {
	if s.findAllFn == nil {
		return nil, nil
	}
	return s.findAllFn(ctx)
}

type stubCinemaRepo struct {
	createWithSeatsFn func(ctx context.Context, cinema *entity.Cinema, seats []*entity.CinemaSeat) error
	findByIDFn        func(ctx context.Context, id uuid.UUID) (*entity.Cinema, error)
	findBySlugFn      func(ctx context.Context, slug string) (*entity.Cinema, error)
	existsFn          func(ctx context.Context, name string, locationID uuid.UUID) (bool, error)
}

func (s *stubCinemaRepo) CreateWithSeats(ctx context.Context, cinema *entity.Cinema, seats []*entity.CinemaSeat) error {
	if s.createWithSeatsFn == nil {
		return nil
	}
	return s.createWithSeatsFn(ctx, cinema, seats)
}

func (s *stubCinemaRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Cinema, error) {
	if s.findByIDFn == nil {
		return nil, nil
	}
	return s.findByIDFn(ctx, id)
}

func (s *stubCinemaRepo) FindBySlug(ctx context.Context, slug string) (*entity.Cinema, error) {
	if s.findBySlugFn == nil {
		return nil, nil
	}
	return s.findBySlugFn(ctx, slug)
}

func (s *stubCinemaRepo) ExistsByNameAndLocation(ctx context.Context, name string, locationID uuid.UUID) (bool, error) {
	if s.existsFn == nil {
		return false, nil
	}
	return s.existsFn(ctx, name, locationID)
}

type stubCinemaSeatRepo struct {
	findByCinemaIDFn func(ctx context.Context, cinemaID uuid.UUID) ([]*entity.CinemaSeat, error)
	findForBookingFn func(ctx context.Context, cinemaID uuid.UUID, seatIDs []uuid.UUID) ([]*entity.CinemaSeat, error)
}

func (s *stubCinemaSeatRepo) FindByCinemaID(ctx context.Context, cinemaID uuid.UUID) ([]*entity.CinemaSeat, error) {
	if s.findByCinemaIDFn == nil {
		return nil, nil
	}
	return s.findByCinemaIDFn(ctx, cinemaID)
}

func (s *stubCinemaSeatRepo) FindSeatsForBooking(ctx context.Context, cinemaID uuid.UUID, seatIDs []uuid.UUID) ([]*entity.CinemaSeat, error) {
	if s.findForBookingFn == nil {
		return nil, nil
	}
	return s.findForBookingFn(ctx, cinemaID, seatIDs)
}

type stubMovieRepo struct {
	createFn     func(ctx context.Context, movie *entity.Movie, languages, genres []string) error
	findByIDFn   func(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	findBySlugFn func(ctx context.Context, slug string) (*entity.Movie, error)
}

func (s *stubMovieRepo) CreateWithTaxonomies(ctx context.Context, movie *entity.Movie, languages, genres []string) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, movie, languages, genres)
}

func (s *stubMovieRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	if s.findByIDFn == nil {
		return nil, nil
	}
	return s.findByIDFn(ctx, id)
}

func (s *stubMovieRepo) FindBySlug(ctx context.Context, slug string) (*entity.Movie, error) {
	if s.findBySlugFn == nil {
		return nil, nil
	}
	return s.findBySlugFn(ctx, slug)
}

type stubSlotRepo struct {
	scheduleFn            func(ctx context.Context, slot *entity.Slot) error
	findByIDFn            func(ctx context.Context, id uuid.UUID) (*entity.Slot, error)
	findByCinemaAndDateFn func(ctx context.Context, cinemaID uuid.UUID, date time.Time, notBefore *time.Time) ([]*entity.Slot, error)
}

func (s *stubSlotRepo) Schedule(ctx context.Context, slot *entity.Slot) error {
	if s.scheduleFn == nil {
		return nil
	}
	return s.scheduleFn(ctx, slot)
}

func (s *stubSlotRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Slot, error) {
	if s.findByIDFn == nil {
		return nil, nil
	}
	return s.findByIDFn(ctx, id)
}

func (s *stubSlotRepo) FindByCinemaAndDate(ctx context.Context, cinemaID uuid.UUID, date time.Time, notBefore *time.Time) ([]*entity.Slot, error) {
	if s.findByCinemaAndDateFn == nil {
		return nil, nil
	}
	return s.findByCinemaAndDateFn(ctx, cinemaID, date, notBefore)
}

type stubBookingRepo struct {
	reserveSeatsFn    func(ctx context.Context, booking *entity.Booking, seatIDs []uuid.UUID, slotStart time.Time) error
	findByIDAndUserFn func(ctx context.Context, id, userID uuid.UUID) (*entity.Booking, error)
	cancelFn          func(ctx context.Context, bookingID uuid.UUID) error
	findFilteredFn    func(ctx context.Context, userID uuid.UUID, filter repository.HistoryFilter, limit, offset int) ([]*entity.Booking, error)
	countFilteredFn   func(ctx context.Context, userID uuid.UUID, filter repository.HistoryFilter) (int64, error)
}

func (s *stubBookingRepo) ReserveSeats(ctx context.Context, booking *entity.Booking, seatIDs []uuid.UUID, slotStart time.Time) error {
	if s.reserveSeatsFn == nil {
		return nil
	}
	return s.reserveSeatsFn(ctx, booking, seatIDs, slotStart)
}

func (s *stubBookingRepo) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Booking, error) {
	if s.findByIDAndUserFn == nil {
		return nil, nil
	}
	return s.findByIDAndUserFn(ctx, id, userID)
}

func (s *stubBookingRepo) Cancel(ctx context.Context, bookingID uuid.UUID) error {
	if s.cancelFn == nil {
		return nil
	}
	return s.cancelFn(ctx, bookingID)
}

func (s *stubBookingRepo) FindByUserFiltered(ctx context.Context, userID uuid.UUID, filter repository.HistoryFilter, limit, offset int) ([]*entity.Booking, error) {
	if s.findFilteredFn == nil {
		return nil, nil
	}
	return s.findFilteredFn(ctx, userID, filter, limit, offset)
}

func (s *stubBookingRepo) CountByUserFiltered(ctx context.Context, userID uuid.UUID, filter repository.HistoryFilter) (int64, error) {
	if s.countFilteredFn == nil {
		return 0, nil
	}
	return s.countFilteredFn(ctx, userID, filter)
}

type stubBookingSeatRepo struct {
	findBookedFn      func(ctx context.Context, slotID uuid.UUID) ([]uuid.UUID, error)
	findByBookingIDFn func(ctx context.Context, bookingID uuid.UUID) ([]*entity.CinemaSeat, error)
}

func (s *stubBookingSeatRepo) FindBookedSeatIDsBySlot(ctx context.Context, slotID uuid.UUID) ([]uuid.UUID, error) {
	if s.findBookedFn == nil {
		return nil, nil
	}
	return s.findBookedFn(ctx, slotID)
}

func (s *stubBookingSeatRepo) FindSeatsByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.CinemaSeat, error) {
	if s.findByBookingIDFn == nil {
		return nil, nil
	}
	return s.findByBookingIDFn(ctx, bookingID)
}

func newStubRepository() *repository.Repository {
	return &repository.Repository{
		Location:    &stubLocationRepo{},
		Cinema:      &stubCinemaRepo{},
		CinemaSeat:  &stubCinemaSeatRepo{},
		Movie:       &stubMovieRepo{},
		Slot:        &stubSlotRepo{},
		Booking:     &stubBookingRepo{},
		BookingSeat: &stubBookingSeatRepo{},
	}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
