package postgres

import (
	"context"
	"moviehub/movie"
	"time"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
)

// MovieModel represents the database model for movies
// search_vector is generated in SQL migration and not mapped here.
type MovieModel struct {
	ID        uint   `gorm:"primaryKey"`
	ImdbID    string `gorm:"column:imdb_id;not null;uniqueIndex"`
	Title     string `gorm:"not null"`
	Director  string `gorm:"not null;default:''"`
	Plot      string `gorm:"not null;default:''"`
	Poster    string `gorm:"not null;default:''"`
	Year      int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

func (m MovieModel) toMovie() movie.Movie {
	return movie.Movie{
		ExternalID: m.ImdbID,
		Title:      m.Title,
		Director:   m.Director,
		Plot:       m.Plot,
		Poster:     m.Poster,
		Year:       m.Year,
	}
}

// MovieRepository implements movie.Repository interface
// and provides PostgreSQL full-text search.
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

const tsQuery = "websearch_to_tsquery('english', ?)"

func matches(query string) sq.Sqlizer {
	return sq.Expr("search_vector @@ "+tsQuery, query)
}

func (r *MovieRepository) Search(ctx context.Context, query string, skip, limit int) ([]movie.Movie, error) {
	sql, args, err := sq.
		Select("imdb_id", "title", "director", "plot", "poster", "year").
		From("movies").
		Where(matches(query)).
		OrderByClause("ts_rank(search_vector, "+tsQuery+") DESC", query).
		OrderBy("imdb_id").
		Limit(uint64(limit)).
		Offset(uint64(skip)).
		ToSql()
	if err != nil {
		return nil, err
	}

	var models []MovieModel
	if err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&models).Error; err != nil {
		return nil, err
	}

	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = model.toMovie()
	}
	return movies, nil
}

func (r *MovieRepository) Count(ctx context.Context, query string) (int64, error) {
	sql, args, err := sq.Select("COUNT(*)").From("movies").Where(matches(query)).ToSql()
	if err != nil {
		return 0, err
	}

	var total int64
	if err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *MovieRepository) ExternalIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).Model(&MovieModel{}).Pluck("imdb_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// UpsertMovies writes all movies in one statement. Existing rows are
// overwritten field by field, keyed by imdb_id.
func (r *MovieRepository) UpsertMovies(ctx context.Context, movies []movie.Movie) error {
	if len(movies) == 0 {
		return nil
	}

	now := time.Now().UTC()
	insert := sq.Insert("movies").
		Columns("imdb_id", "title", "director", "plot", "poster", "year", "created_at", "updated_at")
	for _, m := range movies {
		insert = insert.Values(m.ExternalID, m.Title, m.Director, m.Plot, m.Poster, m.Year, now, now)
	}

	sql, args, err := insert.Suffix(`ON CONFLICT (imdb_id) DO UPDATE SET
	title = EXCLUDED.title,
	director = EXCLUDED.director,
	plot = EXCLUDED.plot,
	poster = EXCLUDED.poster,
	year = EXCLUDED.year,
	updated_at = EXCLUDED.updated_at`).ToSql()
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Exec(sql, args...).Error
}
