package bible

import (
	"strconv"
	"strings"
)

// Hit is one verse in search results, fully qualified so results can be
// displayed without loading the chapter.
type Hit struct {
	BookID   int
	BookName string
	Chapter  int
	Verse    int
	Text     string
}

// FindBook resolves a book by name, case-insensitively; a unique prefix is
// enough ("gen" finds Genesis).
func (t *Translation) FindBook(name string) (Book, bool) {
	want := strings.ToLower(name)
	for _, b := range t.books {
		got := strings.ToLower(b.Name)
		if got == want || strings.HasPrefix(got, want) {
			return b, true
		}
	}
	return Book{}, false
}

// Search finds verses matching a free-text query or a reference like
// "John 3:16", "John 3" or "John". Results keep canonical order.
func (t *Translation) Search(query string) []Hit {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	if hits := t.searchReference(query); len(hits) > 0 {
		return hits
	}
	return t.searchText(query)
}

// searchReference interprets the query as "Book [chapter[:verse]]".
func (t *Translation) searchReference(query string) []Hit {
	bookPart := query
	verseNum := -1
	if i := strings.IndexByte(query, ':'); i >= 0 {
		bookPart = strings.TrimSpace(query[:i])
		n, err := strconv.Atoi(strings.TrimSpace(query[i+1:]))
		if err != nil {
			return nil
		}
		verseNum = n
	}

	words := strings.Fields(bookPart)
	if len(words) == 0 {
		return nil
	}

	chapterNum := -1
	if n, err := strconv.Atoi(words[len(words)-1]); err == nil && n > 0 {
		chapterNum = n
		words = words[:len(words)-1]
	}
	if len(words) == 0 {
		return nil
	}

	book, ok := t.FindBook(strings.Join(words, " "))
	if !ok {
		return nil
	}

	var hits []Hit
	for _, h := range t.flat {
		if h.BookID != book.ID {
			continue
		}
		if chapterNum > 0 && h.Chapter != chapterNum {
			continue
		}
		if verseNum > 0 && h.Verse != verseNum {
			continue
		}
		hits = append(hits, h)
	}
	return hits
}

// searchText matches all query words against the word index, then filters
// candidates by substring to confirm.
func (t *Translation) searchText(query string) []Hit {
	words := strings.Fields(strings.ToLower(query))

	var candidates []int
	indexed := false
	for _, word := range words {
		clean := strings.Trim(word, ".,;:!?\"'()[]")
		if len(clean) <= 2 {
			continue
		}
		indexed = true
		ids, ok := t.index[clean]
		if !ok {
			return nil
		}
		if candidates == nil {
			candidates = append(candidates, ids...)
		} else {
			candidates = intersect(candidates, ids)
		}
	}

	if !indexed {
		// Query was all short words; fall back to a full scan.
		candidates = make([]int, len(t.flat))
		for i := range t.flat {
			candidates[i] = i
		}
	}

	lower := strings.ToLower(query)
	var hits []Hit
	for _, i := range candidates {
		if strings.Contains(strings.ToLower(t.flat[i].Text), lower) {
			hits = append(hits, t.flat[i])
			continue
		}
		// Not one contiguous phrase; accept when every word appears.
		if containsAllWords(strings.ToLower(t.flat[i].Text), words) {
			hits = append(hits, t.flat[i])
		}
	}
	return hits
}

func containsAllWords(text string, words []string) bool {
	for _, w := range words {
		if !strings.Contains(text, strings.Trim(w, ".,;:!?\"'()[]")) {
			return false
		}
	}
	return len(words) > 0
}

// intersect merges two ascending index slices.
func intersect(a, b []int) []int {
	var out []int
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}
