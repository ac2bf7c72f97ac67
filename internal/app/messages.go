package app

import (
	"lectio/internal/bible"
	"lectio/internal/store"
)

// ReaderReadyMsg carries the initial reader state: preferences, starting
// position, and the first chapter with its highlights.
type ReaderReadyMsg struct {
	Prefs      store.Preferences
	Pos        bible.Position
	Chapter    *bible.Chapter
	Highlights []store.Highlight
}

// ChapterLoadedMsg carries a complete new reader sub-state after navigation.
// The chapter and its highlights arrive together so the swap is atomic.
// Verse, when non-zero, is where the cursor lands in the new chapter.
type ChapterLoadedMsg struct {
	Pos        bible.Position
	Chapter    *bible.Chapter
	Highlights []store.Highlight
	Verse      int
}

// BoundaryMsg is sent when navigation hits the first or last chapter.
// A boundary is informational, not an error.
type BoundaryMsg struct {
	Forward bool
}

// EntitlementDeniedMsg is sent when a gated action is blocked because the
// user is not premium. Nothing was written.
type EntitlementDeniedMsg struct{}

// BookmarksSavedMsg reports how many bookmarks were written locally.
type BookmarksSavedMsg struct {
	Count int
}

// HighlightsSavedMsg carries the highlights written for the current chapter.
type HighlightsSavedMsg struct {
	Highlights []store.Highlight
}

// NotesSavedMsg reports how many notes were written locally.
type NotesSavedMsg struct {
	Count int
}

// BookmarkListMsg carries the stored bookmarks for the list screen.
type BookmarkListMsg struct {
	Bookmarks []store.Bookmark
}

// BookmarkDeletedMsg reports a completed deletion from the list screen.
type BookmarkDeletedMsg struct {
	ID string
}

// SearchResultsMsg carries the hits for a completed search query.
type SearchResultsMsg struct {
	Query string
	Hits  []bible.Hit
}

// PrefsSavedMsg carries preferences after a persisted change.
type PrefsSavedMsg struct {
	Prefs store.Preferences
}

// ExportedMsg reports a completed export of the selected verses.
type ExportedMsg struct {
	Path  string
	Count int
}

// ClearStatusMsg clears a transient status line after a timeout.
type ClearStatusMsg struct{}

// ErrMsg carries an error from any command back into Update.
type ErrMsg struct {
	Err error
}
