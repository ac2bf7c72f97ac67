package bible

import "testing"

func testLibrary(t *testing.T) *Library {
	t.Helper()
	dir := t.TempDir()
	writeTranslationFile(t, dir, "TEST")
	lib, err := NewLibrary(dir)
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}
	return lib
}

func TestOpenStartsAtFirstChapter(t *testing.T) {
	lib := testLibrary(t)

	pos, err := lib.Open("TEST")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if pos.BookID != 1 || pos.Chapter != 1 {
		t.Errorf("Open = %+v, want book 1 chapter 1", pos)
	}

	ch, err := lib.ChapterAt(pos)
	if err != nil {
		t.Fatalf("ChapterAt: %v", err)
	}
	if ch.Reference != "Genesis 1" {
		t.Errorf("Reference = %q, want %q", ch.Reference, "Genesis 1")
	}
}

func TestNextWithinBook(t *testing.T) {
	lib := testLibrary(t)
	pos := Position{Translation: "TEST", BookID: 1, Chapter: 1}

	next, ok, err := lib.Next(pos)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if !ok {
		t.Fatal("Next should succeed mid-book")
	}
	if next.BookID != 1 || next.Chapter != 2 {
		t.Errorf("Next = %+v, want Genesis 2", next)
	}
}

func TestNextCrossesBookBoundary(t *testing.T) {
	lib := testLibrary(t)
	pos := Position{Translation: "TEST", BookID: 1, Chapter: 2} // last of Genesis

	next, ok, err := lib.Next(pos)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if !ok {
		t.Fatal("Next should cross into Exodus")
	}
	if next.BookID != 2 || next.Chapter != 1 {
		t.Errorf("Next = %+v, want Exodus 1", next)
	}
}

func TestNextAtLastChapter(t *testing.T) {
	lib := testLibrary(t)
	pos := Position{Translation: "TEST", BookID: 3, Chapter: 3} // John 3, the end

	got, ok, err := lib.Next(pos)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if ok {
		t.Error("Next at the last chapter should report the boundary")
	}
	if got != pos {
		t.Errorf("position changed to %+v at boundary", got)
	}
}

func TestPrevWithinBook(t *testing.T) {
	lib := testLibrary(t)
	pos := Position{Translation: "TEST", BookID: 3, Chapter: 2}

	prev, ok, err := lib.Prev(pos)
	if err != nil {
		t.Fatalf("Prev: %v", err)
	}
	if !ok || prev.BookID != 3 || prev.Chapter != 1 {
		t.Errorf("Prev = %+v ok=%v, want John 1", prev, ok)
	}
}

func TestPrevCrossesBookBoundary(t *testing.T) {
	lib := testLibrary(t)
	pos := Position{Translation: "TEST", BookID: 2, Chapter: 1} // Exodus 1

	prev, ok, err := lib.Prev(pos)
	if err != nil {
		t.Fatalf("Prev: %v", err)
	}
	if !ok {
		t.Fatal("Prev should cross into Genesis")
	}
	if prev.BookID != 1 || prev.Chapter != 2 {
		t.Errorf("Prev = %+v, want Genesis 2 (last chapter)", prev)
	}
}

func TestPrevAtFirstChapter(t *testing.T) {
	lib := testLibrary(t)
	pos := Position{Translation: "TEST", BookID: 1, Chapter: 1}

	got, ok, err := lib.Prev(pos)
	if err != nil {
		t.Fatalf("Prev: %v", err)
	}
	if ok {
		t.Error("Prev at the first chapter should report the boundary")
	}
	if got != pos {
		t.Errorf("position changed to %+v at boundary", got)
	}
}

func TestSelectChapter(t *testing.T) {
	lib := testLibrary(t)
	pos := Position{Translation: "TEST", BookID: 3, Chapter: 1}

	got, err := lib.Select(pos, 3)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got.Chapter != 3 || got.BookID != 3 {
		t.Errorf("Select = %+v, want John 3", got)
	}

	if _, err := lib.Select(pos, 9); err == nil {
		t.Error("Select out of range should fail")
	}
	if _, err := lib.Select(pos, 0); err == nil {
		t.Error("Select chapter 0 should fail")
	}
}

func TestSelectBook(t *testing.T) {
	lib := testLibrary(t)
	pos := Position{Translation: "TEST", BookID: 1, Chapter: 2}

	got, err := lib.SelectBook(pos, 3)
	if err != nil {
		t.Fatalf("SelectBook: %v", err)
	}
	if got.BookID != 3 || got.Chapter != 1 {
		t.Errorf("SelectBook = %+v, want John 1", got)
	}

	if _, err := lib.SelectBook(pos, 42); err == nil {
		t.Error("SelectBook with unknown id should fail")
	}
}

func TestNavigationDoesNotMutatePosition(t *testing.T) {
	lib := testLibrary(t)
	pos := Position{Translation: "TEST", BookID: 1, Chapter: 1}

	if _, _, err := lib.Next(pos); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if pos.Chapter != 1 {
		t.Error("caller's position should be untouched")
	}
}
