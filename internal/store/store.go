package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrInvalidColor = errors.New("invalid highlight color")
)

// Store is the local SQLite annotation store.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the default database path.
func DefaultPath() string {
	dir, _ := os.UserConfigDir()
	return filepath.Join(dir, "lectio", "lectio.sqlite")
}

const schema = `
	CREATE TABLE IF NOT EXISTS bookmarks (
		id TEXT PRIMARY KEY,
		bookId INTEGER NOT NULL,
		bookName TEXT NOT NULL,
		chapter INTEGER NOT NULL,
		verse INTEGER NOT NULL,
		text TEXT NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '[]',
		reference TEXT NOT NULL,
		createdAt REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS highlights (
		id TEXT PRIMARY KEY,
		bookId INTEGER NOT NULL,
		chapter INTEGER NOT NULL,
		verse INTEGER NOT NULL,
		color TEXT NOT NULL,
		createdAt REAL NOT NULL,
		UNIQUE(bookId, chapter, verse)
	);

	CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		bookId INTEGER NOT NULL,
		bookName TEXT NOT NULL,
		chapter INTEGER NOT NULL,
		verse INTEGER NOT NULL,
		text TEXT NOT NULL,
		content TEXT NOT NULL,
		createdAt REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS preferences (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		fontScale REAL NOT NULL,
		fontFamily TEXT NOT NULL,
		showVerseNumbers INTEGER NOT NULL,
		nightMode INTEGER NOT NULL,
		language TEXT NOT NULL,
		translation TEXT NOT NULL
	);
`

// Open opens (creating if needed) the database at path with WAL enabled.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// AddBookmark appends one bookmark. The record is durable before the call
// returns; the annotation flow's local-first guarantee depends on this.
// A missing ID or timestamp is filled in.
func (s *Store) AddBookmark(b Bookmark) (Bookmark, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}

	tags, err := json.Marshal(tagsOrEmpty(b.Tags))
	if err != nil {
		return Bookmark{}, fmt.Errorf("encode tags: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO bookmarks (id, bookId, bookName, chapter, verse, text, note, tags, reference, createdAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, b.ID, b.BookID, b.BookName, b.Chapter, b.Verse, b.Text, b.Note, string(tags), b.Reference, timeToUnix(b.CreatedAt))
	if err != nil {
		return Bookmark{}, fmt.Errorf("insert bookmark: %w", err)
	}
	return b, nil
}

// Bookmarks returns all bookmarks in insertion order. Empty is not an error.
func (s *Store) Bookmarks() ([]Bookmark, error) {
	rows, err := s.db.Query(`
		SELECT id, bookId, bookName, chapter, verse, text, note, tags, reference, createdAt
		FROM bookmarks
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query bookmarks: %w", err)
	}
	defer rows.Close()

	var bookmarks []Bookmark
	for rows.Next() {
		var b Bookmark
		var tags string
		var createdAt float64
		if err := rows.Scan(&b.ID, &b.BookID, &b.BookName, &b.Chapter, &b.Verse,
			&b.Text, &b.Note, &tags, &b.Reference, &createdAt); err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		if err := json.Unmarshal([]byte(tags), &b.Tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
		b.CreatedAt = timeFromUnix(createdAt)
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, rows.Err()
}

// RemoveBookmark deletes one bookmark by id. Deletion is addressable and
// atomic; there is no clear-and-rewrite step that could lose other records.
func (s *Store) RemoveBookmark(id string) error {
	res, err := s.db.Exec(`DELETE FROM bookmarks WHERE id = ?`, id)
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

// UpdateBookmark replaces the note and tags of an existing bookmark.
func (s *Store) UpdateBookmark(id, note string, tags []string) error {
	encoded, err := json.Marshal(tagsOrEmpty(tags))
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	res, err := s.db.Exec(`UPDATE bookmarks SET note = ?, tags = ? WHERE id = ?`, note, string(encoded), id)
	if err != nil {
		return fmt.Errorf("update bookmark: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update bookmark: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetHighlight creates or replaces the highlight on a verse. One highlight
// per verse: a second color on the same verse replaces the first.
func (s *Store) SetHighlight(h Highlight) (Highlight, error) {
	if !h.Color.Valid() {
		return Highlight{}, fmt.Errorf("%w: %q", ErrInvalidColor, h.Color)
	}
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO highlights (id, bookId, chapter, verse, color, createdAt)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(bookId, chapter, verse)
		DO UPDATE SET color = excluded.color, createdAt = excluded.createdAt
	`, h.ID, h.BookID, h.Chapter, h.Verse, string(h.Color), timeToUnix(h.CreatedAt))
	if err != nil {
		return Highlight{}, fmt.Errorf("set highlight: %w", err)
	}
	return h, nil
}

// HighlightsFor returns the highlights of one chapter, ordered by verse.
func (s *Store) HighlightsFor(bookID, chapter int) ([]Highlight, error) {
	rows, err := s.db.Query(`
		SELECT id, bookId, chapter, verse, color, createdAt
		FROM highlights
		WHERE bookId = ? AND chapter = ?
		ORDER BY verse ASC
	`, bookID, chapter)
	if err != nil {
		return nil, fmt.Errorf("query highlights: %w", err)
	}
	defer rows.Close()

	var highlights []Highlight
	for rows.Next() {
		var h Highlight
		var color string
		var createdAt float64
		if err := rows.Scan(&h.ID, &h.BookID, &h.Chapter, &h.Verse, &color, &createdAt); err != nil {
			return nil, fmt.Errorf("scan highlight: %w", err)
		}
		h.Color = Color(color)
		h.CreatedAt = timeFromUnix(createdAt)
		highlights = append(highlights, h)
	}
	return highlights, rows.Err()
}

// RemoveHighlight deletes the highlight on a verse, if any.
func (s *Store) RemoveHighlight(bookID, chapter, verse int) error {
	res, err := s.db.Exec(`
		DELETE FROM highlights WHERE bookId = ? AND chapter = ? AND verse = ?
	`, bookID, chapter, verse)
	if err != nil {
		return fmt.Errorf("delete highlight: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete highlight: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// AddNote appends one note.
func (s *Store) AddNote(n Note) (Note, error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO notes (id, bookId, bookName, chapter, verse, text, content, createdAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, n.ID, n.BookID, n.BookName, n.Chapter, n.Verse, n.Text, n.Content, timeToUnix(n.CreatedAt))
	if err != nil {
		return Note{}, fmt.Errorf("insert note: %w", err)
	}
	return n, nil
}

// Notes returns all notes in insertion order.
func (s *Store) Notes() ([]Note, error) {
	rows, err := s.db.Query(`
		SELECT id, bookId, bookName, chapter, verse, text, content, createdAt
		FROM notes
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		var createdAt float64
		if err := rows.Scan(&n.ID, &n.BookID, &n.BookName, &n.Chapter, &n.Verse,
			&n.Text, &n.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		n.CreatedAt = timeFromUnix(createdAt)
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// RemoveNote deletes one note by id.
func (s *Store) RemoveNote(id string) error {
	res, err := s.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Preferences returns the saved preferences, or defaults on first use.
func (s *Store) Preferences() (Preferences, error) {
	row := s.db.QueryRow(`
		SELECT fontScale, fontFamily, showVerseNumbers, nightMode, language, translation
		FROM preferences WHERE id = 1
	`)

	var p Preferences
	var showNumbers, night int
	err := row.Scan(&p.FontScale, &p.FontFamily, &showNumbers, &night, &p.Language, &p.Translation)
	if err == sql.ErrNoRows {
		return DefaultPreferences(), nil
	}
	if err != nil {
		return Preferences{}, fmt.Errorf("scan preferences: %w", err)
	}

	p.FontScale = ClampFontScale(p.FontScale)
	p.ShowVerseNumbers = showNumbers != 0
	p.NightMode = night != 0
	return p, nil
}

// SavePreferences persists the preferences, clamping the font scale.
func (s *Store) SavePreferences(p Preferences) error {
	p.FontScale = ClampFontScale(p.FontScale)

	_, err := s.db.Exec(`
		INSERT INTO preferences (id, fontScale, fontFamily, showVerseNumbers, nightMode, language, translation)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			fontScale = excluded.fontScale,
			fontFamily = excluded.fontFamily,
			showVerseNumbers = excluded.showVerseNumbers,
			nightMode = excluded.nightMode,
			language = excluded.language,
			translation = excluded.translation
	`, p.FontScale, p.FontFamily, boolToInt(p.ShowVerseNumbers), boolToInt(p.NightMode), p.Language, p.Translation)
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func timeToUnix(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

func timeFromUnix(ts float64) time.Time {
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}
