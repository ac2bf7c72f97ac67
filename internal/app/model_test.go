package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"lectio/internal/bible"
	"lectio/internal/mirror"
	"lectio/internal/store"
)

// Genesis with four chapters; chapter 3 carries ten verses.
const testTranslationJSON = `{
	"Genesis": {
		"1": {"1": "In the beginning", "2": "And the earth", "3": "And God said"},
		"2": {"1": "Thus the heavens", "2": "And on the seventh day"},
		"3": {
			"1": "Now the serpent", "2": "And the woman said", "3": "But of the fruit",
			"4": "You will not surely die", "5": "For God knows", "6": "So when the woman saw",
			"7": "Then the eyes", "8": "And they heard", "9": "But the LORD God called",
			"10": "And he said"
		},
		"4": {"1": "Now Adam knew", "2": "And again she bore", "3": "In the course of time",
			"4": "And Abel also brought", "5": "But for Cain"}
	}
}`

type stubChecker struct {
	premium bool
	err     error
}

func (s stubChecker) IsPremium(ctx context.Context) (bool, error) {
	return s.premium, s.err
}

// newTestModel builds a ready model over a temp translation file and an
// in-memory store, with the initial chapter already loaded.
func newTestModel(t *testing.T, premium bool, mc *mirror.Client) Model {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "TEST_bible.json")
	if err := os.WriteFile(path, []byte(testTranslationJSON), 0o644); err != nil {
		t.Fatalf("write translation: %v", err)
	}
	lib, err := bible.NewLibrary(dir)
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}

	st, err := store.Open(filepath.Join(t.TempDir(), "lectio.sqlite"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	m := New(lib, st, mc, stubChecker{premium: premium})
	m.width = 80
	m.height = 24

	msg := m.Init()()
	if em, ok := msg.(ErrMsg); ok {
		t.Fatalf("init: %v", em.Err)
	}
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func press(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()

	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace}
	case "backspace":
		msg = tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

// run executes a command and feeds its message back into the model, the
// way the bubbletea loop would.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	updated, _ := m.Update(cmd())
	return updated.(Model)
}

func TestNewModel(t *testing.T) {
	m := newTestModel(t, true, nil)
	if m.chapter == nil {
		t.Fatal("initial chapter should be loaded")
	}
	if m.chapter.BookName != "Genesis" || m.chapter.Number != 1 {
		t.Errorf("start position = %s %d, want Genesis 1", m.chapter.BookName, m.chapter.Number)
	}
	if m.selecting() {
		t.Error("new model should not be in selection mode")
	}
	if m.loading {
		t.Error("model should not be loading after init")
	}
}

func TestToggleVerseIdempotent(t *testing.T) {
	m := newTestModel(t, true, nil)

	m, _ = press(t, m, "v")
	if !m.selecting() {
		t.Fatal("first toggle should enter selection mode")
	}
	if _, ok := m.selection[1]; !ok {
		t.Error("verse 1 should be selected")
	}

	m, _ = press(t, m, "v")
	if len(m.selection) != 0 {
		t.Error("second toggle should restore original membership")
	}
}

func TestSelectionEmptiesExits(t *testing.T) {
	m := newTestModel(t, true, nil)

	m, _ = press(t, m, "v")
	m, _ = press(t, m, "j")
	m, _ = press(t, m, " ")
	if len(m.selection) != 2 {
		t.Fatalf("selection = %d, want 2", len(m.selection))
	}

	// Removing members one at a time: mode is "selection" iff non-empty.
	m, _ = press(t, m, " ")
	if !m.selecting() {
		t.Error("one member left, should still be selecting")
	}
	m, _ = press(t, m, "k")
	m, _ = press(t, m, " ")
	if m.selecting() {
		t.Error("removing the last member should exit selection mode")
	}
}

func TestSelectAll(t *testing.T) {
	m := newTestModel(t, true, nil)

	m, _ = press(t, m, "v")
	m, _ = press(t, m, "a")
	if len(m.selection) != m.chapter.VerseCount() {
		t.Errorf("selection = %d, want %d", len(m.selection), m.chapter.VerseCount())
	}

	m, _ = press(t, m, "esc")
	if m.selecting() {
		t.Error("esc should cancel the selection")
	}
}

func TestNavigationBoundary(t *testing.T) {
	m := newTestModel(t, true, nil)

	// Genesis 1 is the absolute start.
	m, cmd := press(t, m, "h")
	msg := cmd()
	if _, ok := msg.(BoundaryMsg); !ok {
		t.Fatalf("msg = %T, want BoundaryMsg", msg)
	}
	updated, _ := m.Update(msg)
	m = updated.(Model)

	if m.chapter.Number != 1 {
		t.Error("boundary should leave the chapter unchanged")
	}
	if m.statusErr {
		t.Error("boundary is informational, not an error")
	}
	if m.status == "" {
		t.Error("boundary should surface a notification")
	}

	// Walk to the last chapter and push past it.
	for i := 0; i < 3; i++ {
		var c tea.Cmd
		m, c = press(t, m, "l")
		m = run(t, m, c)
	}
	if m.chapter.Number != 4 {
		t.Fatalf("chapter = %d, want 4", m.chapter.Number)
	}

	m, cmd = press(t, m, "l")
	msg = cmd()
	if b, ok := msg.(BoundaryMsg); !ok || !b.Forward {
		t.Fatalf("msg = %#v, want forward BoundaryMsg", msg)
	}
	updated, _ = m.Update(msg)
	m = updated.(Model)
	if m.chapter.Number != 4 {
		t.Error("forward boundary should leave the chapter unchanged")
	}
}

func TestChapterSwapRemountsReader(t *testing.T) {
	m := newTestModel(t, true, nil)

	m, _ = press(t, m, "v")
	m, _ = press(t, m, "j")
	if !m.selecting() || m.cursor != 1 {
		t.Fatal("setup failed")
	}

	m, cmd := press(t, m, "l")
	m = run(t, m, cmd)

	if m.chapter.Number != 2 {
		t.Fatalf("chapter = %d, want 2", m.chapter.Number)
	}
	if m.selecting() {
		t.Error("selection should not survive a chapter swap")
	}
	if m.cursor != 0 || m.scroll != 0 {
		t.Error("cursor and scroll should reset on a chapter swap")
	}
}

func TestJumpToChapter(t *testing.T) {
	m := newTestModel(t, true, nil)

	m, _ = press(t, m, "g")
	if m.mode != ModeJump {
		t.Fatal("g should enter jump mode")
	}
	m, _ = press(t, m, "3")
	m, cmd := press(t, m, "enter")
	m = run(t, m, cmd)

	if m.chapter.Number != 3 {
		t.Errorf("chapter = %d, want 3", m.chapter.Number)
	}
	if m.chapter.VerseCount() != 10 {
		t.Errorf("verses = %d, want 10", m.chapter.VerseCount())
	}
}

func TestJumpOutOfRange(t *testing.T) {
	m := newTestModel(t, true, nil)

	m, _ = press(t, m, "g")
	m, _ = press(t, m, "9")
	m, cmd := press(t, m, "enter")
	msg := cmd()
	em, ok := msg.(ErrMsg)
	if !ok {
		t.Fatalf("msg = %T, want ErrMsg", msg)
	}
	updated, _ := m.Update(em)
	m = updated.(Model)

	if m.chapter.Number != 1 {
		t.Error("failed jump should leave the chapter unchanged")
	}
	if m.loading {
		t.Error("loading flag should reset after a failed jump")
	}
}

func TestSearchJumpsToHit(t *testing.T) {
	m := newTestModel(t, true, nil)

	m, _ = press(t, m, "/")
	if m.mode != ModeSearch {
		t.Fatal("/ should enter search mode")
	}
	m, _ = press(t, m, "eyes")
	m, cmd := press(t, m, "enter")
	m = run(t, m, cmd)

	if len(m.hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(m.hits))
	}
	if h := m.hits[0]; h.BookName != "Genesis" || h.Chapter != 3 || h.Verse != 7 {
		t.Errorf("hit = %+v, want Genesis 3:7", m.hits[0])
	}

	m, cmd = press(t, m, "enter")
	m = run(t, m, cmd)

	if m.mode != ModeRead {
		t.Error("opening a hit should return to reading")
	}
	if m.chapter.Number != 3 {
		t.Errorf("chapter = %d, want 3", m.chapter.Number)
	}
	if m.cursor != 6 {
		t.Errorf("cursor = %d, want 6 for verse 7", m.cursor)
	}
	if m.hits != nil {
		t.Error("results should clear once a hit is opened")
	}
}

func TestSearchNoMatches(t *testing.T) {
	m := newTestModel(t, true, nil)

	m, _ = press(t, m, "/")
	m, _ = press(t, m, "zzzzz")
	m, cmd := press(t, m, "enter")
	m = run(t, m, cmd)

	if m.mode != ModeRead {
		t.Error("an empty result set should return to reading")
	}
	if !strings.Contains(m.status, "No verses match") {
		t.Errorf("status = %q, want a no-match notice", m.status)
	}
	if m.chapter.Number != 1 {
		t.Error("chapter should be unchanged")
	}
}

func TestSearchEscapeCancels(t *testing.T) {
	m := newTestModel(t, true, nil)

	m, _ = press(t, m, "/")
	m, _ = press(t, m, "serpent")
	m, _ = press(t, m, "esc")

	if m.mode != ModeRead {
		t.Error("escape should leave search mode")
	}
	if m.input != "" {
		t.Errorf("input = %q, want empty", m.input)
	}
}

func TestLocalFirstDurability(t *testing.T) {
	// Mirror pointed at a dead address: every push is a network failure.
	mc := mirror.New("http://127.0.0.1:9", "token")
	m := newTestModel(t, true, mc)

	m, _ = press(t, m, "b")
	if m.mode != ModeNote {
		t.Fatal("b should prompt for a note")
	}
	m, cmd := press(t, m, "enter")
	msg := cmd()
	saved, ok := msg.(BookmarksSavedMsg)
	if !ok {
		t.Fatalf("msg = %T, want BookmarksSavedMsg", msg)
	}
	if saved.Count != 1 {
		t.Errorf("count = %d, want 1", saved.Count)
	}

	// Local record is present despite the remote failure.
	list, err := m.store.Bookmarks()
	if err != nil {
		t.Fatalf("Bookmarks: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("bookmarks = %d, want 1", len(list))
	}
	if list[0].Text != "In the beginning" {
		t.Errorf("text = %q", list[0].Text)
	}
	if mc.Pending() == 0 {
		t.Error("failed mirror push should be queued for retry")
	}
}

func TestBookmarkDeniedWithoutPremium(t *testing.T) {
	m := newTestModel(t, false, nil)

	m, _ = press(t, m, "b")
	m, cmd := press(t, m, "enter")
	msg := cmd()
	if _, ok := msg.(EntitlementDeniedMsg); !ok {
		t.Fatalf("msg = %T, want EntitlementDeniedMsg", msg)
	}

	list, err := m.store.Bookmarks()
	if err != nil {
		t.Fatalf("Bookmarks: %v", err)
	}
	if len(list) != 0 {
		t.Error("no bookmark should be written on an entitlement denial")
	}

	updated, _ := m.Update(msg)
	m = updated.(Model)
	if !strings.Contains(m.status, "Premium") {
		t.Errorf("status = %q, want upsell message", m.status)
	}
	if m.statusErr {
		t.Error("entitlement denial is an upsell, not an error")
	}
}

func TestHighlightFlow(t *testing.T) {
	m := newTestModel(t, true, nil)

	m, _ = press(t, m, "x")
	if m.mode != ModeColor {
		t.Fatal("x should open the color picker")
	}
	m, cmd := press(t, m, "1")
	m = run(t, m, cmd)

	if c, ok := m.highlightFor(1); !ok || c != store.ColorYellow {
		t.Errorf("highlight = %q, %v, want yellow", c, ok)
	}
	if _, ok := m.highlightFor(2); ok {
		t.Error("verse 2 should have no highlight")
	}

	// Re-coloring the same verse replaces the highlight.
	m, _ = press(t, m, "x")
	m, cmd = press(t, m, "3")
	m = run(t, m, cmd)

	if c, _ := m.highlightFor(1); c != store.ColorBlue {
		t.Errorf("highlight = %q, want blue after replace", c)
	}
	if len(m.highlights) != 1 {
		t.Errorf("highlights = %d, want 1", len(m.highlights))
	}
}

func TestBatchCopyOrder(t *testing.T) {
	m := newTestModel(t, true, nil)

	m, cmd := press(t, m, "g")
	_ = cmd
	m, _ = press(t, m, "3")
	m, cmd = press(t, m, "enter")
	m = run(t, m, cmd)

	// Select verses 5, 2, 8 in that order.
	for _, target := range []int{5, 2, 8} {
		for m.chapter.Verses[m.cursor].Number != target {
			if m.chapter.Verses[m.cursor].Number < target {
				m, _ = press(t, m, "j")
			} else {
				m, _ = press(t, m, "k")
			}
		}
		m, _ = press(t, m, "v")
	}
	if len(m.selection) != 3 {
		t.Fatalf("selection = %d, want 3", len(m.selection))
	}

	m, _ = press(t, m, "y")

	if !strings.HasPrefix(m.lastCopy, "Genesis 3") {
		t.Errorf("copy should start with the chapter reference, got %q", m.lastCopy)
	}
	i2 := strings.Index(m.lastCopy, "2. And the woman said")
	i5 := strings.Index(m.lastCopy, "5. For God knows")
	i8 := strings.Index(m.lastCopy, "8. And they heard")
	if i2 < 0 || i5 < 0 || i8 < 0 {
		t.Fatalf("missing verses in copy: %q", m.lastCopy)
	}
	if !(i2 < i5 && i5 < i8) {
		t.Error("copied verses should be in verse-number order")
	}
	if m.selecting() {
		t.Error("copy should exit selection mode unconditionally")
	}
}

func TestPreferencesPersist(t *testing.T) {
	m := newTestModel(t, true, nil)

	m, cmd := press(t, m, "N")
	m = run(t, m, cmd)
	if !m.prefs.NightMode {
		t.Error("N should enable night mode")
	}

	m, cmd = press(t, m, "#")
	m = run(t, m, cmd)
	if m.prefs.ShowVerseNumbers {
		t.Error("# should hide verse numbers")
	}

	saved, err := m.store.Preferences()
	if err != nil {
		t.Fatalf("Preferences: %v", err)
	}
	if !saved.NightMode || saved.ShowVerseNumbers {
		t.Errorf("persisted prefs = %+v", saved)
	}
}

func TestFontScaleClamped(t *testing.T) {
	m := newTestModel(t, true, nil)

	for i := 0; i < 30; i++ {
		var cmd tea.Cmd
		m, cmd = press(t, m, "+")
		m = run(t, m, cmd)
	}
	if m.prefs.FontScale > store.MaxFontScale {
		t.Errorf("fontScale = %v, want <= %v", m.prefs.FontScale, store.MaxFontScale)
	}
}

func TestBookmarkListDelete(t *testing.T) {
	m := newTestModel(t, true, nil)

	for _, verse := range []int{1, 2} {
		if _, err := m.store.AddBookmark(store.Bookmark{
			BookID: 1, BookName: "Genesis", Chapter: 1, Verse: verse,
			Text: "text", Reference: "Genesis 1",
		}); err != nil {
			t.Fatalf("AddBookmark: %v", err)
		}
	}

	m, cmd := press(t, m, "B")
	m = run(t, m, cmd)
	if m.mode != ModeList {
		t.Fatal("B should open the bookmark list")
	}
	if len(m.bookmarks) != 2 {
		t.Fatalf("bookmarks = %d, want 2", len(m.bookmarks))
	}

	first := m.bookmarks[0].ID
	m, cmd = press(t, m, "d")
	msg := cmd()
	if del, ok := msg.(BookmarkDeletedMsg); !ok || del.ID != first {
		t.Fatalf("msg = %#v, want deletion of %s", msg, first)
	}
	updated, _ := m.Update(msg)
	m = updated.(Model)
	m = run(t, m, m.loadBookmarksCmd())

	if len(m.bookmarks) != 1 {
		t.Fatalf("bookmarks = %d, want 1 after delete", len(m.bookmarks))
	}
	if m.bookmarks[0].ID == first {
		t.Error("the deleted bookmark should be gone, the other kept")
	}
}

// End-to-end: navigate, toggle in and out of selection, then hit the
// entitlement gate on a free account.
func TestReaderScenario(t *testing.T) {
	m := newTestModel(t, false, nil)

	// Jump to chapter 3 (ten verses).
	m, _ = press(t, m, "g")
	m, _ = press(t, m, "3")
	m, cmd := press(t, m, "enter")
	m = run(t, m, cmd)
	if m.chapter.Number != 3 || m.chapter.VerseCount() != 10 {
		t.Fatalf("chapter = %d (%d verses), want 3 (10)", m.chapter.Number, m.chapter.VerseCount())
	}

	// Select verse 4, then deselect it: selection mode exits.
	for i := 0; i < 3; i++ {
		m, _ = press(t, m, "j")
	}
	m, _ = press(t, m, "v")
	if !m.selecting() || len(m.selection) != 1 {
		t.Fatal("verse 4 should be the only selection")
	}
	m, _ = press(t, m, "v")
	if m.selecting() {
		t.Fatal("empty set should exit selection mode")
	}

	// Next chapter discards any reader state.
	m, cmd = press(t, m, "l")
	m = run(t, m, cmd)
	if m.chapter.Number != 4 {
		t.Fatalf("chapter = %d, want 4", m.chapter.Number)
	}

	// Bookmark verse 2 with a note on a free account: denied, no write.
	m, _ = press(t, m, "j")
	m, _ = press(t, m, "b")
	for _, r := range "test" {
		m, _ = press(t, m, string(r))
	}
	m, cmd = press(t, m, "enter")
	msg := cmd()
	if _, ok := msg.(EntitlementDeniedMsg); !ok {
		t.Fatalf("msg = %T, want EntitlementDeniedMsg", msg)
	}
	list, _ := m.store.Bookmarks()
	if len(list) != 0 {
		t.Error("no bookmark should exist after the denial")
	}
	updated, _ := m.Update(msg)
	m = updated.(Model)
	if !strings.Contains(m.status, "Premium") {
		t.Errorf("status = %q, want upsell", m.status)
	}
}

func TestViewRendersWithSize(t *testing.T) {
	m := newTestModel(t, true, nil)
	view := m.View()
	if view == "" {
		t.Error("view should not be empty")
	}
	if !strings.Contains(view, "LECTIO") {
		t.Error("view should carry the header")
	}
}

func TestViewWithoutSize(t *testing.T) {
	m := newTestModel(t, true, nil)
	m.width = 0
	if got := m.View(); got != "Initializing..." {
		t.Errorf("view without size = %q, want 'Initializing...'", got)
	}
}
