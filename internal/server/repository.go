package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"lectio/internal/mirror"
)

var ErrNotFound = errors.New("record not found")

// Repository is the persistence contract for mirrored annotations.
type Repository interface {
	UserPremium(ctx context.Context, userID string) (bool, error)
	SaveBookmark(ctx context.Context, userID string, b mirror.BookmarkPayload) error
	DeleteBookmark(ctx context.Context, userID, id string) error
	SaveHighlight(ctx context.Context, userID string, h mirror.HighlightPayload) error
	SaveNote(ctx context.Context, userID string, n mirror.NotePayload) error
}

const pgSchema = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		premium BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS bookmarks (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		book_id INTEGER NOT NULL,
		book_name TEXT NOT NULL,
		chapter INTEGER NOT NULL,
		verse INTEGER NOT NULL,
		text TEXT NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '[]',
		reference TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS highlights (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		book_id INTEGER NOT NULL,
		chapter INTEGER NOT NULL,
		verse INTEGER NOT NULL,
		color TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		UNIQUE(user_id, book_id, chapter, verse)
	);

	CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		book_id INTEGER NOT NULL,
		book_name TEXT NOT NULL,
		chapter INTEGER NOT NULL,
		verse INTEGER NOT NULL,
		text TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);
`

// OpenDB connects to Postgres through the pgx stdlib driver and ensures
// the schema exists.
func OpenDB(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, pgSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return db, nil
}

type pgRepository struct {
	db *sql.DB
}

// NewRepository wraps a Postgres connection as a Repository.
func NewRepository(db *sql.DB) Repository {
	return &pgRepository{db: db}
}

func (r *pgRepository) UserPremium(ctx context.Context, userID string) (bool, error) {
	var premium bool
	err := r.db.QueryRowContext(ctx, `SELECT premium FROM users WHERE id = $1`, userID).Scan(&premium)
	if errors.Is(err, sql.ErrNoRows) {
		// Unknown users exist on the free tier until provisioned.
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query user: %w", err)
	}
	return premium, nil
}

func (r *pgRepository) SaveBookmark(ctx context.Context, userID string, b mirror.BookmarkPayload) error {
	tags, err := json.Marshal(b.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	if b.Tags == nil {
		tags = []byte("[]")
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO bookmarks (id, user_id, book_id, book_name, chapter, verse, text, note, tags, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			note = EXCLUDED.note,
			tags = EXCLUDED.tags
	`, b.ID, userID, b.BookID, b.BookName, b.Chapter, b.Verse, b.Text, b.Note, string(tags), b.Reference, timeFromUnix(b.CreatedAt))
	if err != nil {
		return fmt.Errorf("save bookmark: %w", err)
	}
	return nil
}

func (r *pgRepository) DeleteBookmark(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM bookmarks WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgRepository) SaveHighlight(ctx context.Context, userID string, h mirror.HighlightPayload) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO highlights (id, user_id, book_id, chapter, verse, color, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, book_id, chapter, verse) DO UPDATE SET
			color = EXCLUDED.color,
			created_at = EXCLUDED.created_at
	`, h.ID, userID, h.BookID, h.Chapter, h.Verse, h.Color, timeFromUnix(h.CreatedAt))
	if err != nil {
		return fmt.Errorf("save highlight: %w", err)
	}
	return nil
}

func (r *pgRepository) SaveNote(ctx context.Context, userID string, n mirror.NotePayload) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notes (id, user_id, book_id, book_name, chapter, verse, text, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET content = EXCLUDED.content
	`, n.ID, userID, n.BookID, n.BookName, n.Chapter, n.Verse, n.Text, n.Content, timeFromUnix(n.CreatedAt))
	if err != nil {
		return fmt.Errorf("save note: %w", err)
	}
	return nil
}

func timeFromUnix(ts float64) time.Time {
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}
