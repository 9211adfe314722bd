package database

import (
	"context"
	"fmt"
)

// schema is applied at startup. Every statement is idempotent so the
// service can restart against an existing database.
const schema = `
CREATE TABLE IF NOT EXISTS locations (
	id UUID PRIMARY KEY,
	city VARCHAR(100) NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS cinemas (
	id UUID PRIMARY KEY,
	name VARCHAR(200) NOT NULL,
	location_id UUID NOT NULL REFERENCES locations(id) ON DELETE CASCADE,
	seat_rows INT NOT NULL CHECK (seat_rows > 0),
	seats_per_row INT NOT NULL CHECK (seats_per_row > 0),
	slug VARCHAR(200) NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (name, location_id)
);

CREATE TABLE IF NOT EXISTS cinema_seats (
	id UUID PRIMARY KEY,
	cinema_id UUID NOT NULL REFERENCES cinemas(id) ON DELETE CASCADE,
	row_number INT NOT NULL,
	seat_number INT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (cinema_id, row_number, seat_number)
);

CREATE TABLE IF NOT EXISTS languages (
	id UUID PRIMARY KEY,
	language VARCHAR(20) NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS genres (
	id UUID PRIMARY KEY,
	genre VARCHAR(20) NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS movies (
	id UUID PRIMARY KEY,
	name VARCHAR(200) NOT NULL,
	slug VARCHAR(200) NOT NULL UNIQUE,
	description TEXT,
	duration_in_minutes INT NOT NULL CHECK (duration_in_minutes > 0),
	release_date DATE NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS movie_languages (
	movie_id UUID NOT NULL REFERENCES movies(id) ON DELETE CASCADE,
	language_id UUID NOT NULL REFERENCES languages(id) ON DELETE CASCADE,
	PRIMARY KEY (movie_id, language_id)
);

CREATE TABLE IF NOT EXISTS movie_genres (
	movie_id UUID NOT NULL REFERENCES movies(id) ON DELETE CASCADE,
	genre_id UUID NOT NULL REFERENCES genres(id) ON DELETE CASCADE,
	PRIMARY KEY (movie_id, genre_id)
);

CREATE TABLE IF NOT EXISTS slots (
	id UUID PRIMARY KEY,
	cinema_id UUID NOT NULL REFERENCES cinemas(id) ON DELETE CASCADE,
	movie_id UUID NOT NULL REFERENCES movies(id) ON DELETE CASCADE,
	start_time TIMESTAMPTZ NOT NULL,
	end_time TIMESTAMPTZ NOT NULL,
	price NUMERIC(8,2) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_slots_cinema_time ON slots (cinema_id, start_time, end_time);

CREATE TABLE IF NOT EXISTS bookings (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL,
	slot_id UUID NOT NULL REFERENCES slots(id) ON DELETE CASCADE,
	status VARCHAR(10) NOT NULL CHECK (status IN ('booked', 'cancelled')),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_bookings_user ON bookings (user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_bookings_slot_status ON bookings (slot_id, status);

CREATE TABLE IF NOT EXISTS booking_seats (
	id UUID PRIMARY KEY,
	booking_id UUID NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
	cinema_seat_id UUID NOT NULL REFERENCES cinema_seats(id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (booking_id, cinema_seat_id)
);

CREATE INDEX IF NOT EXISTS idx_booking_seats_seat ON booking_seats (cinema_seat_id);
`

// RunMigrations applies the schema on startup.
func RunMigrations(ctx context.Context, db PgxIface) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
