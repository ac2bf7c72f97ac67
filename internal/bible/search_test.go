package bible

import "testing"

func TestSearchByReference(t *testing.T) {
	tr := parseTestTranslation(t)

	hits := tr.Search("John 3:16")
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	if hits[0].BookName != "John" || hits[0].Chapter != 3 || hits[0].Verse != 16 {
		t.Errorf("hit = %+v, want John 3:16", hits[0])
	}
}

func TestSearchByBookChapter(t *testing.T) {
	tr := parseTestTranslation(t)

	hits := tr.Search("Genesis 1")
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	for _, h := range hits {
		if h.BookName != "Genesis" || h.Chapter != 1 {
			t.Errorf("hit = %+v, want Genesis 1", h)
		}
	}
}

func TestSearchByBookPrefix(t *testing.T) {
	tr := parseTestTranslation(t)

	hits := tr.Search("gen")
	if len(hits) != 3 {
		t.Fatalf("got %d hits, want all 3 Genesis verses", len(hits))
	}
}

func TestSearchText(t *testing.T) {
	tr := parseTestTranslation(t)

	hits := tr.Search("beginning")
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	// Canonical order: Genesis before John.
	if hits[0].BookName != "Genesis" || hits[1].BookName != "John" {
		t.Errorf("hits out of canonical order: %q, %q", hits[0].BookName, hits[1].BookName)
	}
}

func TestSearchRepeatedWordReturnsVerseOnce(t *testing.T) {
	tr, err := ParseTranslation("TEST", []byte(`{
	"Genesis": {"1": {"1": "holy holy holy is the Lord"}}
}`))
	if err != nil {
		t.Fatalf("ParseTranslation: %v", err)
	}

	hits := tr.Search("holy")
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
}

func TestSearchNoResults(t *testing.T) {
	tr := parseTestTranslation(t)

	if hits := tr.Search("zzzzz"); len(hits) != 0 {
		t.Errorf("got %d hits, want 0", len(hits))
	}
	if hits := tr.Search(""); len(hits) != 0 {
		t.Errorf("empty query got %d hits, want 0", len(hits))
	}
}

func TestFindBook(t *testing.T) {
	tr := parseTestTranslation(t)

	b, ok := tr.FindBook("JOHN")
	if !ok || b.Name != "John" {
		t.Errorf("FindBook(JOHN) = %+v ok=%v", b, ok)
	}

	if _, ok := tr.FindBook("Malachi"); ok {
		t.Error("FindBook should miss books not in this translation")
	}
}
