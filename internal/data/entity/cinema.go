package entity

import "github.com/google/uuid"

type Cinema struct {
	Base
	Name        string    `db:"name"`
	LocationID  uuid.UUID `db:"location_id"`
	Rows        int       `db:"seat_rows"`
	SeatsPerRow int       `db:"seats_per_row"`
	Slug        string    `db:"slug"` // generated from name + city, unique
}
