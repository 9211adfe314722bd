package response

import (
	"time"

	"showtime-booking/internal/data/entity"
)

type LocationResponse struct {
	ID   string `json:"id"`
	City string `json:"city"`
}

type CinemaResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	Rows        int       `json:"rows"`
	SeatsPerRow int       `json:"seats_per_row"`
	Slug        string    `json:"slug"`
	CreatedAt   time.Time `json:"created_at"`
}

type MovieResponse struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Slug              string   `json:"slug"`
	Description       *string  `json:"description,omitempty"`
	DurationInMinutes int      `json:"duration_in_minutes"`
	ReleaseDate       string   `json:"release_date"`
	Languages         []string `json:"languages,omitempty"`
	Genres            []string `json:"genres,omitempty"`
}

func LocationToResponse(location *entity.Location) LocationResponse {
	return LocationResponse{
		ID:   location.ID.String(),
		City: location.City,
	}
}

func CinemaToResponse(cinema *entity.Cinema, city string) CinemaResponse {
	return CinemaResponse{
		ID:          cinema.ID.String(),
		Name:        cinema.Name,
		City:        city,
		Rows:        cinema.Rows,
		SeatsPerRow: cinema.SeatsPerRow,
		Slug:        cinema.Slug,
		CreatedAt:   cinema.CreatedAt,
	}
}

func MovieToResponse(movie *entity.Movie, languages, genres []string) MovieResponse {
	return MovieResponse{
		ID:                movie.ID.String(),
		Name:              movie.Name,
		Slug:              movie.Slug,
		Description:       movie.Description,
		DurationInMinutes: movie.DurationInMinutes,
		ReleaseDate:       movie.ReleaseDate.Format("2006-01-02"),
		Languages:         languages,
		Genres:            genres,
	}
}
