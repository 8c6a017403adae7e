package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/clipnote/multimedia/pkg/multimedia"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements multimedia.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

var _ multimedia.Repository = (*Repository)(nil)

// New creates a new PostgreSQL repository
func New(db DBTX) *Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

// Error handling helper
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("duplicate entry: %s", pgErr.ConstraintName)
		case "23503": // foreign_key_violation
			return fmt.Errorf("referenced record not found: %s", pgErr.ConstraintName)
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

// Category operations

func (r *Repository) CreateCategory(ctx context.Context, category *multimedia.Category) error {
	query := `
		INSERT INTO categories (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query,
		category.ID, category.Name, category.CreatedAt, category.UpdatedAt)

	if err != nil {
		return r.handlePostgresError("create category", err)
	}

	return nil
}

func (r *Repository) GetCategoryByName(ctx context.Context, name string) (*multimedia.Category, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM categories WHERE name = $1`

	var category multimedia.Category
	err := r.db.QueryRow(ctx, query, name).Scan(
		&category.ID, &category.Name, &category.CreatedAt, &category.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, multimedia.ErrCategoryNotFound
		}
		return nil, r.handlePostgresError("get category by name", err)
	}

	return &category, nil
}

func (r *Repository) ListCategoriesByName(ctx context.Context) ([]*multimedia.Category, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM categories
		ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, r.handlePostgresError("list categories", err)
	}
	defer rows.Close()

	var categories []*multimedia.Category
	for rows.Next() {
		var category multimedia.Category
		if err := rows.Scan(
			&category.ID, &category.Name, &category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, r.handlePostgresError("scan category", err)
		}
		categories = append(categories, &category)
	}

	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("iterate category rows", err)
	}

	return categories, nil
}

// User operations

func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*multimedia.User, error) {
	query := `
		SELECT id, username, name
		FROM users WHERE id = $1`

	var user multimedia.User
	err := r.db.QueryRow(ctx, query, id).Scan(&user.ID, &user.Username, &user.Name)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, multimedia.ErrUserNotFound
		}
		return nil, r.handlePostgresError("get user", err)
	}

	return &user, nil
}

// Video operations

const videoWithOwnerColumns = `
	v.id, v.user_id, v.category_id, v.url, v.title, v.description,
	v.created_at, v.updated_at,
	u.id, u.username, u.name`

func scanVideoWithOwner(row pgx.Row) (*multimedia.Video, error) {
	var video multimedia.Video
	var owner multimedia.User
	err := row.Scan(
		&video.ID, &video.UserID, &video.CategoryID, &video.URL, &video.Title,
		&video.Description, &video.CreatedAt, &video.UpdatedAt,
		&owner.ID, &owner.Username, &owner.Name)
	if err != nil {
		return nil, err
	}
	video.Owner = &owner
	return &video, nil
}

func (r *Repository) CreateVideo(ctx context.Context, video *multimedia.Video) error {
	query := `
		INSERT INTO videos (
			id, user_id, category_id, url, title, description, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		video.ID, video.UserID, video.CategoryID, video.URL,
		video.Title, video.Description, video.CreatedAt, video.UpdatedAt)

	if err != nil {
		return r.handlePostgresError("create video", err)
	}

	owner, err := r.GetUser(ctx, video.UserID)
	if err != nil {
		return err
	}
	video.Owner = owner

	return nil
}

func (r *Repository) GetVideo(ctx context.Context, id uuid.UUID) (*multimedia.Video, error) {
	query := `
		SELECT ` + videoWithOwnerColumns + `
		FROM videos v
		JOIN users u ON u.id = v.user_id
		WHERE v.id = $1`

	video, err := scanVideoWithOwner(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, multimedia.ErrVideoNotFound
		}
		return nil, r.handlePostgresError("get video", err)
	}

	return video, nil
}

func (r *Repository) GetVideoOwned(ctx context.Context, userID, id uuid.UUID) (*multimedia.Video, error) {
	query := `
		SELECT ` + videoWithOwnerColumns + `
		FROM videos v
		JOIN users u ON u.id = v.user_id
		WHERE v.id = $1 AND v.user_id = $2`

	video, err := scanVideoWithOwner(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Absent and foreign-owned rows are indistinguishable by design
			return nil, multimedia.ErrVideoNotFound
		}
		return nil, r.handlePostgresError("get owned video", err)
	}

	return video, nil
}

func (r *Repository) UpdateVideo(ctx context.Context, video *multimedia.Video) error {
	query := `
		UPDATE videos SET
			category_id = $2, url = $3, title = $4, description = $5, updated_at = $6
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		video.ID, video.CategoryID, video.URL, video.Title,
		video.Description, video.UpdatedAt)

	if err != nil {
		return r.handlePostgresError("update video", err)
	}
	if tag.RowsAffected() == 0 {
		return multimedia.ErrVideoNotFound
	}

	return nil
}

func (r *Repository) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM videos WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		// Includes the restrictive annotation foreign key
		return r.handlePostgresError("delete video", err)
	}
	if tag.RowsAffected() == 0 {
		return multimedia.ErrVideoNotFound
	}

	return nil
}

func (r *Repository) ListVideos(ctx context.Context) ([]*multimedia.Video, error) {
	query := `
		SELECT ` + videoWithOwnerColumns + `
		FROM videos v
		JOIN users u ON u.id = v.user_id
		ORDER BY v.created_at DESC, v.id ASC`

	return r.queryVideos(ctx, query)
}

func (r *Repository) ListVideosByOwner(ctx context.Context, userID uuid.UUID) ([]*multimedia.Video, error) {
	query := `
		SELECT ` + videoWithOwnerColumns + `
		FROM videos v
		JOIN users u ON u.id = v.user_id
		WHERE v.user_id = $1
		ORDER BY v.created_at DESC, v.id ASC`

	return r.queryVideos(ctx, query, userID)
}

func (r *Repository) queryVideos(ctx context.Context, query string, args ...interface{}) ([]*multimedia.Video, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, r.handlePostgresError("list videos", err)
	}
	defer rows.Close()

	var videos []*multimedia.Video
	for rows.Next() {
		video, err := scanVideoWithOwner(rows)
		if err != nil {
			return nil, r.handlePostgresError("scan video", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("iterate video rows", err)
	}

	return videos, nil
}

// Annotation operations

func (r *Repository) CreateAnnotation(ctx context.Context, annotation *multimedia.Annotation) error {
	query := `
		INSERT INTO annotations (video_id, user_id, at, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		annotation.VideoID, annotation.UserID, annotation.At,
		annotation.Body, annotation.CreatedAt).Scan(&annotation.ID)

	if err != nil {
		return r.handlePostgresError("create annotation", err)
	}

	author, err := r.GetUser(ctx, annotation.UserID)
	if err != nil {
		return err
	}
	annotation.Author = author

	return nil
}

func (r *Repository) ListAnnotationsByVideo(ctx context.Context, videoID uuid.UUID, limit int) ([]*multimedia.Annotation, error) {
	// The explicit id tie-break is part of the contract; store-default
	// ordering is not stable for equal timestamps.
	query := `
		SELECT a.id, a.video_id, a.user_id, a.at, a.body, a.created_at,
		       u.id, u.username, u.name
		FROM annotations a
		JOIN users u ON u.id = a.user_id
		WHERE a.video_id = $1
		ORDER BY a.at ASC, a.id ASC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, videoID, limit)
	if err != nil {
		return nil, r.handlePostgresError("list annotations", err)
	}
	defer rows.Close()

	var annotations []*multimedia.Annotation
	for rows.Next() {
		var annotation multimedia.Annotation
		var author multimedia.User
		if err := rows.Scan(
			&annotation.ID, &annotation.VideoID, &annotation.UserID,
			&annotation.At, &annotation.Body, &annotation.CreatedAt,
			&author.ID, &author.Username, &author.Name); err != nil {
			return nil, r.handlePostgresError("scan annotation", err)
		}
		annotation.Author = &author
		annotations = append(annotations, &annotation)
	}

	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("iterate annotation rows", err)
	}

	return annotations, nil
}
