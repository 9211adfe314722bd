package repository

import (
	"context"
	"fmt"
	"time"

	"showtime-booking/internal/apperr"
	"showtime-booking/internal/data/entity"
	"showtime-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieRepository interface {
	// CreateWithTaxonomies persists the movie, upserts its normalized
	// languages and genres, and links them, all in one transaction.
	CreateWithTaxonomies(ctx context.Context, movie *entity.Movie, languages, genres []string) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Movie, error)
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

func (r *movieRepository) CreateWithTaxonomies(ctx context.Context, movie *entity.Movie, languages, genres []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create movie tx: %w", err)
	}
	defer tx.Rollback(ctx)

	insertMovie := `
		INSERT INTO movies (id, name, slug, description, duration_in_minutes, release_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = tx.Exec(ctx, insertMovie,
		movie.ID,
		movie.Name,
		movie.Slug,
		movie.Description,
		movie.DurationInMinutes,
		movie.ReleaseDate,
		movie.CreatedAt,
		movie.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Wrap(apperr.ErrMovieExists, err)
		}
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("slug", movie.Slug),
		)
		return fmt.Errorf("create movie %s: %w", movie.Slug, err)
	}

	for _, language := range languages {
		if err := r.linkTaxonomy(ctx, tx, movie.ID, language,
			`INSERT INTO languages (id, language, created_at) VALUES ($1, $2, $3)
			 ON CONFLICT (language) DO UPDATE SET language = EXCLUDED.language
			 RETURNING id`,
			`INSERT INTO movie_languages (movie_id, language_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		); err != nil {
			return fmt.Errorf("link language %s to movie %s: %w", language, movie.Slug, err)
		}
	}

	for _, genre := range genres {
		if err := r.linkTaxonomy(ctx, tx, movie.ID, genre,
			`INSERT INTO genres (id, genre, created_at) VALUES ($1, $2, $3)
			 ON CONFLICT (genre) DO UPDATE SET genre = EXCLUDED.genre
			 RETURNING id`,
			`INSERT INTO movie_genres (movie_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		); err != nil {
			return fmt.Errorf("link genre %s to movie %s: %w", genre, movie.Slug, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create movie %s: %w", movie.Slug, err)
	}

	r.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("slug", movie.Slug),
		zap.Int("languages", len(languages)),
		zap.Int("genres", len(genres)),
	)
	return nil
}

// linkTaxonomy upserts one normalized value and links it to the movie.
// The DO UPDATE no-op makes RETURNING yield the id on conflict too.
func (r *movieRepository) linkTaxonomy(ctx context.Context, tx pgx.Tx, movieID uuid.UUID, value, upsert, link string) error {
	var taxonomyID uuid.UUID
	if err := tx.QueryRow(ctx, upsert, uuid.New(), value, time.Now()).Scan(&taxonomyID); err != nil {
		return fmt.Errorf("upsert taxonomy %s: %w", value, err)
	}

	if _, err := tx.Exec(ctx, link, movieID, taxonomyID); err != nil {
		return fmt.Errorf("insert taxonomy link %s: %w", value, err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := `
		SELECT id, name, slug, description, duration_in_minutes, release_date, created_at, updated_at
		FROM movies
		WHERE id = $1
	`

	var movie entity.Movie
	err := r.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Name,
		&movie.Slug,
		&movie.Description,
		&movie.DurationInMinutes,
		&movie.ReleaseDate,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("find movie by ID %s: %w", id.String(), err)
	}

	return &movie, nil
}

func (r *movieRepository) FindBySlug(ctx context.Context, slug string) (*entity.Movie, error) {
	query := `
		SELECT id, name, slug, description, duration_in_minutes, release_date, created_at, updated_at
		FROM movies
		WHERE slug = $1
	`

	var movie entity.Movie
	err := r.db.QueryRow(ctx, query, slug).Scan(
		&movie.ID,
		&movie.Name,
		&movie.Slug,
		&movie.Description,
		&movie.DurationInMinutes,
		&movie.ReleaseDate,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by slug",
			zap.Error(err),
			zap.String("slug", slug),
		)
		return nil, fmt.Errorf("find movie by slug %s: %w", slug, err)
	}

	return &movie, nil
}
