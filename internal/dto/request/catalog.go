package request

type CreateLocationRequest struct {
	City string `json:"city" validate:"required,max=100"`
}

type CreateCinemaRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	LocationID  string `json:"location_id" validate:"required,uuid4"`
	Rows        int    `json:"rows" validate:"required,min=1,max=200"`
	SeatsPerRow int    `json:"seats_per_row" validate:"required,min=1,max=200"`
}

type CreateMovieRequest struct {
	Name              string   `json:"name" validate:"required,max=200"`
	Description       *string  `json:"description,omitempty"`
	DurationInMinutes int      `json:"duration_in_minutes" validate:"required,min=1,max=240"`
	ReleaseDate       string   `json:"release_date" validate:"required,datetime=2006-01-02"`
	Languages         []string `json:"languages" validate:"required,min=1,dive,min=1,max=20"`
	Genres            []string `json:"genres" validate:"required,min=1,dive,min=1,max=20"`
}
