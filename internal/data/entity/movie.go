package entity

import (
	"time"
)

type Movie struct {
	Base
	Name              string    `db:"name"`
	Slug              string    `db:"slug"`
	Description       *string   `db:"description"`
	DurationInMinutes int       `db:"duration_in_minutes"`
	ReleaseDate       time.Time `db:"release_date"`
}

// Duration of the movie as a time.Duration, used to derive slot end times.
func (m *Movie) Duration() time.Duration {
	return time.Duration(m.DurationInMinutes) * time.Minute
}
