package bible

import "fmt"

// Position is an immutable reading position. Navigation returns a new
// Position rather than mutating shared state, so two screens holding the
// same Position can never observe each other's moves.
type Position struct {
	Translation string
	BookID      int
	Chapter     int
}

// Open returns the starting position of a translation: first book, chapter 1.
func (l *Library) Open(translation string) (Position, error) {
	t, err := l.Translation(translation)
	if err != nil {
		return Position{}, err
	}
	books := t.Books()
	if len(books) == 0 {
		return Position{}, fmt.Errorf("translation %s has no books", t.Name())
	}
	return Position{Translation: t.Name(), BookID: books[0].ID, Chapter: 1}, nil
}

// ChapterAt materializes the chapter for a position.
func (l *Library) ChapterAt(pos Position) (*Chapter, error) {
	t, err := l.Translation(pos.Translation)
	if err != nil {
		return nil, err
	}
	return t.Chapter(pos.BookID, pos.Chapter)
}

// Prev moves one chapter back, crossing into the last chapter of the
// previous book when needed. Returns ok=false when already at the very
// first chapter; that is a boundary, not an error.
func (l *Library) Prev(pos Position) (Position, bool, error) {
	t, err := l.Translation(pos.Translation)
	if err != nil {
		return pos, false, err
	}

	if pos.Chapter > 1 {
		pos.Chapter--
		return pos, true, nil
	}
	if pos.BookID > 1 {
		pos.BookID--
		pos.Chapter = t.ChapterCount(pos.BookID)
		return pos, true, nil
	}
	return pos, false, nil
}

// Next moves one chapter forward, crossing into chapter 1 of the next book
// when needed. Returns ok=false when already at the very last chapter.
func (l *Library) Next(pos Position) (Position, bool, error) {
	t, err := l.Translation(pos.Translation)
	if err != nil {
		return pos, false, err
	}

	if pos.Chapter < t.ChapterCount(pos.BookID) {
		pos.Chapter++
		return pos, true, nil
	}
	if pos.BookID < len(t.Books()) {
		pos.BookID++
		pos.Chapter = 1
		return pos, true, nil
	}
	return pos, false, nil
}

// Select jumps to an arbitrary chapter number within the current book.
func (l *Library) Select(pos Position, chapter int) (Position, error) {
	t, err := l.Translation(pos.Translation)
	if err != nil {
		return pos, err
	}
	if chapter < 1 || chapter > t.ChapterCount(pos.BookID) {
		return pos, fmt.Errorf("%w: chapter %d", ErrChapterRange, chapter)
	}
	pos.Chapter = chapter
	return pos, nil
}

// SelectBook jumps to chapter 1 of another book.
func (l *Library) SelectBook(pos Position, bookID int) (Position, error) {
	t, err := l.Translation(pos.Translation)
	if err != nil {
		return pos, err
	}
	if _, ok := t.Book(bookID); !ok {
		return pos, fmt.Errorf("%w: id %d", ErrUnknownBook, bookID)
	}
	pos.BookID = bookID
	pos.Chapter = 1
	return pos, nil
}
