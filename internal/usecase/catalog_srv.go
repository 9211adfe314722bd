package usecase

import (
	"context"
	"fmt"
	"time"

	"showtime-booking/internal/apperr"
	"showtime-booking/internal/data/entity"
	"showtime-booking/internal/data/repository"
	"showtime-booking/internal/dto/request"
	"showtime-booking/internal/dto/response"
	"showtime-booking/pkg/utils"

	"github.com/google/uuid"
	slugify "github.com/gosimple/slug"
	"go.uber.org/zap"
)

type CatalogService interface {
	CreateLocation(ctx context.Context, req *request.CreateLocationRequest) (*response.LocationResponse, error)
	ListLocations(ctx context.Context) ([]response.LocationResponse, error)
	CreateCinema(ctx context.Context, req *request.CreateCinemaRequest) (*response.CinemaResponse, error)
	GetCinemaBySlug(ctx context.Context, slug string) (*response.CinemaResponse, error)
	CreateMovie(ctx context.Context, req *request.CreateMovieRequest) (*response.MovieResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) CreateLocation(ctx context.Context, req *request.CreateLocationRequest) (*response.LocationResponse, error) {
	city := utils.NormalizeName(req.City)
	if city == "" {
		return nil, apperr.New(apperr.KindValidation, "invalid_city", "City must not be empty.")
	}

	existing, err := s.repo.Location.FindByCity(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("check location %s: %w", city, err)
	}
	if existing != nil {
		return nil, apperr.ErrLocationExists
	}

	location := &entity.Location{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		City: city,
	}

	if err := s.repo.Location.Create(ctx, location); err != nil {
		return nil, fmt.Errorf("create location: %w", err)
	}

	s.log.Info("Location created",
		zap.String("location_id", location.ID.String()),
		zap.String("city", city),
	)

	resp := response.LocationToResponse(location)
	return &resp, nil
}

func (s *catalogService) ListLocations(ctx context.Context) ([]response.LocationResponse, error) {
	locations, err := s.repo.Location.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}

	responses := make([]response.LocationResponse, len(locations))
	for i, location := range locations {
		responses[i] = response.LocationToResponse(location)
	}

	return responses, nil
}

func (s *catalogService) CreateCinema(ctx context.Context, req *request.CreateCinemaRequest) (*response.CinemaResponse, error) {
	locationID, err := uuid.Parse(req.LocationID)
	if err != nil {
		return nil, fmt.Errorf("invalid location ID format %s: %w", req.LocationID, err)
	}

	location, err := s.repo.Location.FindByID(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("find location: %w", err)
	}
	if location == nil {
		return nil, apperr.ErrLocationNotFound
	}

	exists, err := s.repo.Cinema.ExistsByNameAndLocation(ctx, req.Name, locationID)
	if err != nil {
		return nil, fmt.Errorf("check cinema existence: %w", err)
	}
	if exists {
		return nil, apperr.ErrCinemaExists
	}

	now := time.Now()
	cinema := &entity.Cinema{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		LocationID:  locationID,
		Rows:        req.Rows,
		SeatsPerRow: req.SeatsPerRow,
		Slug:        slugify.Make(fmt.Sprintf("%s %s", req.Name, location.City)),
	}

	// The seat grid is part of the cinema's identity: it is created in
	// the same transaction, not as an after-save hook.
	seats := buildSeatGrid(cinema.ID, req.Rows, req.SeatsPerRow, now)

	if err := s.repo.Cinema.CreateWithSeats(ctx, cinema, seats); err != nil {
		return nil, fmt.Errorf("create cinema: %w", err)
	}

	resp := response.CinemaToResponse(cinema, location.City)
	return &resp, nil
}

// buildSeatGrid enumerates every (row, seat) pair of the layout,
// numbered from 1.
func buildSeatGrid(cinemaID uuid.UUID, rows, seatsPerRow int, createdAt time.Time) []*entity.CinemaSeat {
	seats := make([]*entity.CinemaSeat, 0, rows*seatsPerRow)
	for row := 1; row <= rows; row++ {
		for seat := 1; seat <= seatsPerRow; seat++ {
			seats = append(seats, &entity.CinemaSeat{
				BaseSimple: entity.BaseSimple{
					ID:        uuid.New(),
					CreatedAt: createdAt,
				},
				CinemaID:   cinemaID,
				RowNumber:  row,
				SeatNumber: seat,
			})
		}
	}
	return seats
}

func (s *catalogService) GetCinemaBySlug(ctx context.Context, slug string) (*response.CinemaResponse, error) {
	cinema, err := s.repo.Cinema.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("find cinema by slug: %w", err)
	}
	if cinema == nil {
		return nil, apperr.ErrCinemaNotFound
	}

	var city string
	location, _ := s.repo.Location.FindByID(ctx, cinema.LocationID)
	if location != nil {
		city = location.City
	}

	resp := response.CinemaToResponse(cinema, city)
	return &resp, nil
}

func (s *catalogService) CreateMovie(ctx context.Context, req *request.CreateMovieRequest) (*response.MovieResponse, error) {
	releaseDate, err := time.Parse("2006-01-02", req.ReleaseDate)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrInvalidDateFormat, err)
	}

	languages := utils.NormalizeNames(req.Languages)
	genres := utils.NormalizeNames(req.Genres)

	now := time.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:              req.Name,
		Slug:              slugify.Make(req.Name),
		Description:       req.Description,
		DurationInMinutes: req.DurationInMinutes,
		ReleaseDate:       releaseDate,
	}

	if err := s.repo.Movie.CreateWithTaxonomies(ctx, movie, languages, genres); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("slug", movie.Slug),
	)

	resp := response.MovieToResponse(movie, languages, genres)
	return &resp, nil
}
