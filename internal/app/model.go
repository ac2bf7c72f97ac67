package app

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"lectio/internal/bible"
	"lectio/internal/entitlement"
	"lectio/internal/mirror"
	"lectio/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// inputMode tracks which key handler is active.
type inputMode int

const (
	ModeRead inputMode = iota
	ModeJump
	ModeSearch
	ModeColor
	ModeNote
	ModeList
)

// noteTarget distinguishes a bookmark's note field from a standalone note.
type noteTarget int

const (
	targetBookmark noteTarget = iota
	targetNote
)

// Model is the root bubbletea model for the lectio reader.
type Model struct {
	library *bible.Library
	store   *store.Store
	mirror  *mirror.Client
	checker entitlement.Checker

	// Reader sub-state. Rebuilt wholesale on every chapter swap so a
	// navigation either replaces all of it or none of it.
	pos        bible.Position
	chapter    *bible.Chapter
	highlights []store.Highlight
	selection  map[int]struct{}
	cursor     int
	scroll     int

	prefs store.Preferences

	mode    inputMode
	input   string
	noteFor noteTarget

	bookmarks  []store.Bookmark
	listCursor int

	// Search results linger until a hit is opened or the mode is left.
	query     string
	hits      []bible.Hit
	hitCursor int

	loading   bool
	status    string
	statusErr bool
	lastCopy  string

	width  int
	height int
}

// New creates a Model bound to its collaborators. The mirror client may be
// nil when no remote is configured.
func New(library *bible.Library, st *store.Store, mc *mirror.Client, checker entitlement.Checker) Model {
	return Model{
		library:   library,
		store:     st,
		mirror:    mc,
		checker:   checker,
		selection: make(map[int]struct{}),
		prefs:     store.DefaultPreferences(),
		loading:   true,
	}
}

// selecting reports whether selection mode is active. The mode is derived
// from set membership: selection is active iff the set is non-empty.
func (m Model) selecting() bool {
	return len(m.selection) > 0
}

// Init loads preferences and the starting chapter.
func (m Model) Init() tea.Cmd {
	return m.initCmd()
}

func (m Model) initCmd() tea.Cmd {
	return func() tea.Msg {
		prefs, err := m.store.Preferences()
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("load preferences: %w", err)}
		}
		pos, err := m.library.Open(prefs.Translation)
		if err != nil {
			return ErrMsg{Err: err}
		}
		ch, err := m.library.ChapterAt(pos)
		if err != nil {
			return ErrMsg{Err: err}
		}
		hls, err := m.store.HighlightsFor(pos.BookID, pos.Chapter)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return ReaderReadyMsg{Prefs: prefs, Pos: pos, Chapter: ch, Highlights: hls}
	}
}

// navigateCmd moves one chapter back or forward. A boundary produces an
// informational message, never an error.
func (m Model) navigateCmd(forward bool) tea.Cmd {
	return func() tea.Msg {
		var (
			next bible.Position
			ok   bool
			err  error
		)
		if forward {
			next, ok, err = m.library.Next(m.pos)
		} else {
			next, ok, err = m.library.Prev(m.pos)
		}
		if err != nil {
			return ErrMsg{Err: err}
		}
		if !ok {
			return BoundaryMsg{Forward: forward}
		}
		return m.loadChapter(next, 0)
	}
}

// jumpCmd jumps to an arbitrary chapter number within the current book.
func (m Model) jumpCmd(chapter int) tea.Cmd {
	return func() tea.Msg {
		next, err := m.library.Select(m.pos, chapter)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return m.loadChapter(next, 0)
	}
}

// searchCmd runs the query against the active translation.
func (m Model) searchCmd(query string) tea.Cmd {
	return func() tea.Msg {
		tr, err := m.library.Translation(m.pos.Translation)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return SearchResultsMsg{Query: query, Hits: tr.Search(query)}
	}
}

// loadChapter materializes the chapter and its highlights together so the
// resulting swap is atomic from the view's perspective. A non-zero verse
// places the cursor there instead of at the top.
func (m Model) loadChapter(pos bible.Position, verse int) tea.Msg {
	ch, err := m.library.ChapterAt(pos)
	if err != nil {
		return ErrMsg{Err: err}
	}
	hls, err := m.store.HighlightsFor(pos.BookID, pos.Chapter)
	if err != nil {
		return ErrMsg{Err: err}
	}
	return ChapterLoadedMsg{Pos: pos, Chapter: ch, Highlights: hls, Verse: verse}
}

// saveBookmarksCmd writes one bookmark per verse. The entitlement check
// runs first and blocks the whole write on denial. The local write is
// awaited; the mirror push is best-effort and never undoes it.
func (m Model) saveBookmarksCmd(verses []int, note string) tea.Cmd {
	ch := m.chapter
	return func() tea.Msg {
		ctx := context.Background()
		premium, err := m.checker.IsPremium(ctx)
		if err != nil {
			return ErrMsg{Err: err}
		}
		if !premium {
			return EntitlementDeniedMsg{}
		}

		count := 0
		for _, n := range verses {
			v, ok := ch.Verse(n)
			if !ok {
				continue
			}
			saved, err := m.store.AddBookmark(store.Bookmark{
				BookID:    ch.BookID,
				BookName:  ch.BookName,
				Chapter:   ch.Number,
				Verse:     v.Number,
				Text:      v.Text,
				Note:      note,
				Reference: ch.Reference,
			})
			if err != nil {
				return ErrMsg{Err: fmt.Errorf("save bookmark: %w", err)}
			}
			count++
			if m.mirror != nil {
				// Mirror failures are swallowed; the client queues
				// network failures for retry on its own.
				_ = m.mirror.PushBookmark(ctx, bookmarkPayload(saved))
			}
		}
		return BookmarksSavedMsg{Count: count}
	}
}

// saveHighlightsCmd sets a palette color on each verse, then reloads the
// chapter's highlights so replaced colors show immediately.
func (m Model) saveHighlightsCmd(verses []int, color store.Color) tea.Cmd {
	ch := m.chapter
	return func() tea.Msg {
		ctx := context.Background()
		premium, err := m.checker.IsPremium(ctx)
		if err != nil {
			return ErrMsg{Err: err}
		}
		if !premium {
			return EntitlementDeniedMsg{}
		}

		for _, n := range verses {
			saved, err := m.store.SetHighlight(store.Highlight{
				BookID:  ch.BookID,
				Chapter: ch.Number,
				Verse:   n,
				Color:   color,
			})
			if err != nil {
				return ErrMsg{Err: fmt.Errorf("save highlight: %w", err)}
			}
			if m.mirror != nil {
				_ = m.mirror.PushHighlight(ctx, highlightPayload(saved))
			}
		}

		hls, err := m.store.HighlightsFor(ch.BookID, ch.Number)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return HighlightsSavedMsg{Highlights: hls}
	}
}

// saveNotesCmd writes a standalone note per verse.
func (m Model) saveNotesCmd(verses []int, content string) tea.Cmd {
	ch := m.chapter
	return func() tea.Msg {
		ctx := context.Background()
		premium, err := m.checker.IsPremium(ctx)
		if err != nil {
			return ErrMsg{Err: err}
		}
		if !premium {
			return EntitlementDeniedMsg{}
		}

		count := 0
		for _, n := range verses {
			v, ok := ch.Verse(n)
			if !ok {
				continue
			}
			saved, err := m.store.AddNote(store.Note{
				BookID:   ch.BookID,
				BookName: ch.BookName,
				Chapter:  ch.Number,
				Verse:    v.Number,
				Text:     v.Text,
				Content:  content,
			})
			if err != nil {
				return ErrMsg{Err: fmt.Errorf("save note: %w", err)}
			}
			count++
			if m.mirror != nil {
				_ = m.mirror.PushNote(ctx, notePayload(saved))
			}
		}
		return NotesSavedMsg{Count: count}
	}
}

// loadBookmarksCmd reads the full bookmark list for the list screen.
func (m Model) loadBookmarksCmd() tea.Cmd {
	return func() tea.Msg {
		list, err := m.store.Bookmarks()
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("load bookmarks: %w", err)}
		}
		return BookmarkListMsg{Bookmarks: list}
	}
}

// deleteBookmarkCmd removes one bookmark by id locally, then best-effort
// mirrors the deletion.
func (m Model) deleteBookmarkCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if err := m.store.RemoveBookmark(id); err != nil {
			return ErrMsg{Err: fmt.Errorf("delete bookmark: %w", err)}
		}
		if m.mirror != nil {
			_ = m.mirror.DeleteBookmark(context.Background(), id)
		}
		return BookmarkDeletedMsg{ID: id}
	}
}

// savePrefsCmd persists preferences and echoes them back.
func (m Model) savePrefsCmd(p store.Preferences) tea.Cmd {
	return func() tea.Msg {
		if err := m.store.SavePreferences(p); err != nil {
			return ErrMsg{Err: fmt.Errorf("save preferences: %w", err)}
		}
		return PrefsSavedMsg{Prefs: p}
	}
}

// exportCmd writes the batch text to a file named after the reference.
func (m Model) exportCmd(text string, count int) tea.Cmd {
	ref := m.chapter.Reference
	return func() tea.Msg {
		name := strings.ReplaceAll(ref, " ", "-") + ".txt"
		if err := os.WriteFile(name, []byte(text+"\n"), 0o644); err != nil {
			return ErrMsg{Err: fmt.Errorf("export: %w", err)}
		}
		return ExportedMsg{Path: name, Count: count}
	}
}

// clearStatusCmd fires after a delay to clear transient status lines.
func clearStatusCmd() tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ReaderReadyMsg:
		m.prefs = msg.Prefs
		m.pos = msg.Pos
		m.chapter = msg.Chapter
		m.highlights = msg.Highlights
		m.selection = make(map[int]struct{})
		m.cursor = 0
		m.scroll = 0
		m.loading = false
		return m, nil

	case ChapterLoadedMsg:
		// Full remount of the reader sub-state: new chapter, new
		// highlights, cleared selection. Nothing survives the swap.
		m.pos = msg.Pos
		m.chapter = msg.Chapter
		m.highlights = msg.Highlights
		m.selection = make(map[int]struct{})
		m.cursor = 0
		m.scroll = 0
		m.loading = false
		m.mode = ModeRead
		m.input = ""
		m.query = ""
		m.hits = nil
		m.hitCursor = 0
		if msg.Verse > 0 {
			for i, v := range msg.Chapter.Verses {
				if v.Number == msg.Verse {
					m.cursor = i
					break
				}
			}
			m.ensureCursorVisible()
		}
		return m, nil

	case BoundaryMsg:
		m.loading = false
		if msg.Forward {
			m.status = "Already at the last chapter"
		} else {
			m.status = "Already at the first chapter"
		}
		m.statusErr = false
		return m, clearStatusCmd()

	case EntitlementDeniedMsg:
		m.loading = false
		m.status = "Premium required. Upgrade to bookmark, highlight and take notes."
		m.statusErr = false
		return m, clearStatusCmd()

	case BookmarksSavedMsg:
		m.loading = false
		m.selection = make(map[int]struct{})
		m.status = fmt.Sprintf("Saved %d bookmark(s)", msg.Count)
		m.statusErr = false
		return m, clearStatusCmd()

	case HighlightsSavedMsg:
		m.loading = false
		m.highlights = msg.Highlights
		m.selection = make(map[int]struct{})
		m.status = "Highlight saved"
		m.statusErr = false
		return m, clearStatusCmd()

	case NotesSavedMsg:
		m.loading = false
		m.selection = make(map[int]struct{})
		m.status = fmt.Sprintf("Saved %d note(s)", msg.Count)
		m.statusErr = false
		return m, clearStatusCmd()

	case SearchResultsMsg:
		m.loading = false
		m.input = ""
		if len(msg.Hits) == 0 {
			m.mode = ModeRead
			m.status = fmt.Sprintf("No verses match %q", msg.Query)
			m.statusErr = false
			return m, clearStatusCmd()
		}
		m.query = msg.Query
		m.hits = msg.Hits
		m.hitCursor = 0
		return m, nil

	case BookmarkListMsg:
		m.loading = false
		m.bookmarks = msg.Bookmarks
		if m.listCursor >= len(m.bookmarks) {
			m.listCursor = max(0, len(m.bookmarks)-1)
		}
		return m, nil

	case BookmarkDeletedMsg:
		m.status = "Bookmark deleted"
		m.statusErr = false
		return m, tea.Batch(m.loadBookmarksCmd(), clearStatusCmd())

	case PrefsSavedMsg:
		m.prefs = msg.Prefs
		return m, nil

	case ExportedMsg:
		m.selection = make(map[int]struct{})
		m.status = fmt.Sprintf("Exported %d verse(s) to %s", msg.Count, msg.Path)
		m.statusErr = false
		return m, clearStatusCmd()

	case ClearStatusMsg:
		m.status = ""
		m.statusErr = false
		return m, nil

	case ErrMsg:
		m.loading = false
		m.status = userMessage(msg.Err)
		m.statusErr = true
		// The list screen reloads from the store after any failure so
		// displayed state tracks actual storage state.
		if m.mode == ModeList {
			return m, tea.Batch(m.loadBookmarksCmd(), clearStatusCmd())
		}
		return m, clearStatusCmd()
	}

	return m, nil
}

// userMessage maps an error to a user-facing status line. Classification
// switches on structured kinds, never on message substrings.
func userMessage(err error) string {
	switch mirror.KindOf(err) {
	case mirror.KindEntitlementRequired:
		return "Premium required. Upgrade to bookmark, highlight and take notes."
	case mirror.KindPermissionDenied:
		return "Not allowed. Check your sign-in."
	case mirror.KindNetworkUnavailable:
		return "Network unavailable. Changes are saved locally."
	default:
		return "Something went wrong, try again: " + err.Error()
	}
}

// handleKey dispatches on the active input mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeJump:
		return m.handleJumpKey(msg)
	case ModeSearch:
		return m.handleSearchKey(msg)
	case ModeColor:
		return m.handleColorKey(msg)
	case ModeNote:
		return m.handleNoteKey(msg)
	case ModeList:
		return m.handleListKey(msg)
	}
	return m.handleReadKey(msg)
}

func (m Model) handleReadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyQuit, KeyQuitUpper, KeyCtrlC:
		return m, tea.Quit

	case KeyPrevChapter, KeyPrevArrow:
		if m.loading || m.chapter == nil {
			return m, nil
		}
		m.loading = true
		return m, m.navigateCmd(false)

	case KeyNextChapter, KeyNextArrow:
		if m.loading || m.chapter == nil {
			return m, nil
		}
		m.loading = true
		return m, m.navigateCmd(true)

	case KeyCursorDown, KeyDown:
		if m.chapter != nil && m.cursor < m.chapter.VerseCount()-1 {
			m.cursor++
			m.ensureCursorVisible()
		}
		return m, nil

	case KeyCursorUp, KeyUp:
		if m.cursor > 0 {
			m.cursor--
			m.ensureCursorVisible()
		}
		return m, nil

	case KeyJumpChapter:
		if m.chapter == nil {
			return m, nil
		}
		m.mode = ModeJump
		m.input = ""
		return m, nil

	case KeySearch:
		if m.chapter == nil {
			return m, nil
		}
		m.mode = ModeSearch
		m.input = ""
		m.query = ""
		m.hits = nil
		m.hitCursor = 0
		return m, nil

	case KeySelect:
		m.toggleCursorVerse()
		return m, nil

	case KeySpace, KeyEnter:
		// Taps toggle membership only while selection mode is active.
		if m.selecting() {
			m.toggleCursorVerse()
		}
		return m, nil

	case KeySelectAll:
		if m.selecting() && m.chapter != nil {
			for _, v := range m.chapter.Verses {
				m.selection[v.Number] = struct{}{}
			}
		}
		return m, nil

	case KeyEscape:
		m.selection = make(map[int]struct{})
		return m, nil

	case KeyBookmark:
		if m.chapter == nil {
			return m, nil
		}
		m.mode = ModeNote
		m.noteFor = targetBookmark
		m.input = ""
		return m, nil

	case KeyHighlight:
		if m.chapter == nil {
			return m, nil
		}
		m.mode = ModeColor
		return m, nil

	case KeyNote:
		if m.chapter == nil {
			return m, nil
		}
		m.mode = ModeNote
		m.noteFor = targetNote
		m.input = ""
		return m, nil

	case KeyCopy:
		return m.copySelected()

	case KeyExport:
		if m.chapter == nil {
			return m, nil
		}
		text, count := m.batchText()
		if count == 0 {
			return m, nil
		}
		m.selection = make(map[int]struct{})
		return m, m.exportCmd(text, count)

	case KeyBookmarkList:
		m.mode = ModeList
		m.loading = true
		return m, m.loadBookmarksCmd()

	case KeyNightMode:
		p := m.prefs
		p.NightMode = !p.NightMode
		return m, m.savePrefsCmd(p)

	case KeyVerseNumbers:
		p := m.prefs
		p.ShowVerseNumbers = !p.ShowVerseNumbers
		return m, m.savePrefsCmd(p)

	case KeyFontBigger:
		p := m.prefs
		p.FontScale = store.ClampFontScale(p.FontScale + 0.1)
		return m, m.savePrefsCmd(p)

	case KeyFontSmaller:
		p := m.prefs
		p.FontScale = store.ClampFontScale(p.FontScale - 0.1)
		return m, m.savePrefsCmd(p)
	}

	return m, nil
}

func (m Model) handleJumpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEscape:
		m.mode = ModeRead
		m.input = ""
		return m, nil

	case KeyEnter:
		n, err := strconv.Atoi(m.input)
		m.mode = ModeRead
		m.input = ""
		if err != nil {
			return m, nil
		}
		m.loading = true
		return m, m.jumpCmd(n)

	case KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	}

	if s := msg.String(); len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
		m.input += s
	}
	return m, nil
}

// handleSearchKey covers both phases of the search mode: free typing until
// Enter runs the query, then result navigation once hits are on screen.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.hits != nil {
		return m.handleSearchResultsKey(msg)
	}

	switch msg.String() {
	case KeyEscape:
		m.mode = ModeRead
		m.input = ""
		return m, nil

	case KeyEnter:
		query := strings.TrimSpace(m.input)
		if query == "" {
			m.mode = ModeRead
			m.input = ""
			return m, nil
		}
		m.loading = true
		return m, m.searchCmd(query)

	case KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	}

	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		m.input += msg.String()
	}
	return m, nil
}

func (m Model) handleSearchResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEscape, KeyQuit:
		m.mode = ModeRead
		m.query = ""
		m.hits = nil
		m.hitCursor = 0
		return m, nil

	case KeyCtrlC:
		return m, tea.Quit

	case KeyCursorDown, KeyDown:
		if m.hitCursor < len(m.hits)-1 {
			m.hitCursor++
		}
		return m, nil

	case KeyCursorUp, KeyUp:
		if m.hitCursor > 0 {
			m.hitCursor--
		}
		return m, nil

	case KeyEnter:
		if m.hitCursor < len(m.hits) {
			h := m.hits[m.hitCursor]
			target := bible.Position{
				Translation: m.pos.Translation,
				BookID:      h.BookID,
				Chapter:     h.Chapter,
			}
			verse := h.Verse
			m.loading = true
			return m, func() tea.Msg { return m.loadChapter(target, verse) }
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleColorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch s := msg.String(); s {
	case KeyEscape:
		m.mode = ModeRead
		return m, nil

	default:
		if len(s) == 1 && s[0] >= '1' && s[0] <= '8' {
			palette := store.Palette()
			color := palette[int(s[0]-'1')]
			verses := m.targetVerses()
			m.mode = ModeRead
			m.loading = true
			return m, m.saveHighlightsCmd(verses, color)
		}
	}
	return m, nil
}

func (m Model) handleNoteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEscape:
		m.mode = ModeRead
		m.input = ""
		return m, nil

	case KeyEnter:
		verses := m.targetVerses()
		note := m.input
		m.mode = ModeRead
		m.input = ""
		m.loading = true
		if m.noteFor == targetNote {
			return m, m.saveNotesCmd(verses, note)
		}
		return m, m.saveBookmarksCmd(verses, note)

	case KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	}

	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		m.input += msg.String()
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEscape, KeyQuit:
		m.mode = ModeRead
		return m, nil

	case KeyCtrlC:
		return m, tea.Quit

	case KeyCursorDown, KeyDown:
		if m.listCursor < len(m.bookmarks)-1 {
			m.listCursor++
		}
		return m, nil

	case KeyCursorUp, KeyUp:
		if m.listCursor > 0 {
			m.listCursor--
		}
		return m, nil

	case KeyDelete:
		if m.listCursor < len(m.bookmarks) {
			return m, m.deleteBookmarkCmd(m.bookmarks[m.listCursor].ID)
		}
		return m, nil

	case KeyEnter:
		if m.listCursor < len(m.bookmarks) {
			b := m.bookmarks[m.listCursor]
			target := bible.Position{
				Translation: m.pos.Translation,
				BookID:      b.BookID,
				Chapter:     b.Chapter,
			}
			m.loading = true
			return m, func() tea.Msg { return m.loadChapter(target, 0) }
		}
		return m, nil
	}
	return m, nil
}

// toggleCursorVerse flips the cursor verse's membership in the selection
// set. Entering and leaving selection mode falls out of the set size.
func (m *Model) toggleCursorVerse() {
	if m.chapter == nil || m.cursor >= len(m.chapter.Verses) {
		return
	}
	n := m.chapter.Verses[m.cursor].Number
	if _, ok := m.selection[n]; ok {
		delete(m.selection, n)
	} else {
		m.selection[n] = struct{}{}
	}
}

// targetVerses returns the selected verse numbers in verse order, or the
// cursor verse when nothing is selected.
func (m Model) targetVerses() []int {
	if m.selecting() {
		verses := make([]int, 0, len(m.selection))
		for n := range m.selection {
			verses = append(verses, n)
		}
		sort.Ints(verses)
		return verses
	}
	if m.chapter != nil && m.cursor < len(m.chapter.Verses) {
		return []int{m.chapter.Verses[m.cursor].Number}
	}
	return nil
}

// batchText concatenates the target verses in verse-number order, prefixed
// by the chapter reference.
func (m Model) batchText() (string, int) {
	verses := m.targetVerses()
	if len(verses) == 0 || m.chapter == nil {
		return "", 0
	}

	var b strings.Builder
	b.WriteString(m.chapter.Reference)
	for _, n := range verses {
		v, ok := m.chapter.Verse(n)
		if !ok {
			continue
		}
		b.WriteString(fmt.Sprintf("\n%d. %s", v.Number, v.Text))
	}
	return b.String(), len(verses)
}

// copySelected captures the batch text and exits selection mode
// unconditionally.
func (m Model) copySelected() (tea.Model, tea.Cmd) {
	text, count := m.batchText()
	if count == 0 {
		return m, nil
	}
	m.lastCopy = text
	m.selection = make(map[int]struct{})
	m.status = fmt.Sprintf("Copied %d verse(s)", count)
	m.statusErr = false
	return m, clearStatusCmd()
}

// bookmarkPayload converts a stored bookmark to its wire form.
func bookmarkPayload(b store.Bookmark) mirror.BookmarkPayload {
	return mirror.BookmarkPayload{
		ID:        b.ID,
		BookID:    b.BookID,
		BookName:  b.BookName,
		Chapter:   b.Chapter,
		Verse:     b.Verse,
		Text:      b.Text,
		Note:      b.Note,
		Tags:      b.Tags,
		Reference: b.Reference,
		CreatedAt: unixSeconds(b.CreatedAt),
	}
}

func highlightPayload(h store.Highlight) mirror.HighlightPayload {
	return mirror.HighlightPayload{
		ID:        h.ID,
		BookID:    h.BookID,
		Chapter:   h.Chapter,
		Verse:     h.Verse,
		Color:     string(h.Color),
		CreatedAt: unixSeconds(h.CreatedAt),
	}
}

func notePayload(n store.Note) mirror.NotePayload {
	return mirror.NotePayload{
		ID:        n.ID,
		BookID:    n.BookID,
		BookName:  n.BookName,
		Chapter:   n.Chapter,
		Verse:     n.Verse,
		Text:      n.Text,
		Content:   n.Content,
		CreatedAt: unixSeconds(n.CreatedAt),
	}
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
