// Package bible loads translation data and resolves reading positions.
//
// Translations are JSON files named like ESV_bible.json, mapping
// book name -> chapter number -> verse number -> text. A Library discovers
// the files in a directory and parses each translation lazily on first use.
package bible

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrNoTranslations = errors.New("no translation files found")
	ErrUnknownBook    = errors.New("unknown book")
	ErrChapterRange   = errors.New("chapter out of range")
)

// Verse is one verse within a chapter. Verses never change after load.
type Verse struct {
	Number int
	Text   string
}

// Book identifies a book within a translation. IDs are 1-based and follow
// canonical ordering of the books present in the translation.
type Book struct {
	ID       int
	Name     string
	Chapters int
}

// Chapter is an immutable snapshot of one chapter. Navigation always builds
// a fresh Chapter; nothing mutates one in place.
type Chapter struct {
	BookID      int
	BookName    string
	Number      int
	Translation string
	Verses      []Verse
	Reference   string
}

// VerseCount returns the number of verses in the chapter.
func (c *Chapter) VerseCount() int { return len(c.Verses) }

// Verse returns the verse with the given 1-based number.
func (c *Chapter) Verse(n int) (Verse, bool) {
	for _, v := range c.Verses {
		if v.Number == n {
			return v, true
		}
	}
	return Verse{}, false
}

type rawTranslation map[string]map[string]map[string]string

// Translation holds the parsed content of one translation file.
type Translation struct {
	name     string
	books    []Book
	chapters map[int]map[int][]Verse // bookID -> chapter -> verses
	flat     []Hit                   // canonical order, for search
	index    map[string][]int        // cleaned word -> indices into flat
}

// canonicalOrder is the traditional 66-book ordering used to assign book IDs.
var canonicalOrder = []string{
	"Genesis", "Exodus", "Leviticus", "Numbers", "Deuteronomy",
	"Joshua", "Judges", "Ruth", "1 Samuel", "2 Samuel", "1 Kings", "2 Kings",
	"1 Chronicles", "2 Chronicles", "Ezra", "Nehemiah", "Esther", "Job", "Psalm",
	"Proverbs", "Ecclesiastes", "Song Of Solomon", "Isaiah", "Jeremiah",
	"Lamentations", "Ezekiel", "Daniel", "Hosea", "Joel", "Amos", "Obadiah",
	"Jonah", "Micah", "Nahum", "Habakkuk", "Zephaniah", "Haggai", "Zechariah", "Malachi",
	"Matthew", "Mark", "Luke", "John", "Acts", "Romans", "1 Corinthians", "2 Corinthians",
	"Galatians", "Ephesians", "Philippians", "Colossians", "1 Thessalonians", "2 Thessalonians",
	"1 Timothy", "2 Timothy", "Titus", "Philemon", "Hebrews", "James", "1 Peter", "2 Peter",
	"1 John", "2 John", "3 John", "Jude", "Revelation",
}

// ParseTranslation parses one translation JSON blob.
func ParseTranslation(name string, data []byte) (*Translation, error) {
	var raw rawTranslation
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse translation %s: %w", name, err)
	}

	var names []string
	for _, bookName := range canonicalOrder {
		if _, ok := raw[bookName]; ok {
			names = append(names, bookName)
		}
	}
	// Books outside the canonical list go at the end, alphabetically.
	var extras []string
	for bookName := range raw {
		if !contains(names, bookName) {
			extras = append(extras, bookName)
		}
	}
	sort.Strings(extras)
	names = append(names, extras...)

	t := &Translation{
		name:     name,
		chapters: make(map[int]map[int][]Verse),
		index:    make(map[string][]int),
	}

	for i, bookName := range names {
		bookID := i + 1
		chapterNums := sortedIntKeys(raw[bookName])
		t.books = append(t.books, Book{
			ID:       bookID,
			Name:     bookName,
			Chapters: len(chapterNums),
		})
		t.chapters[bookID] = make(map[int][]Verse)

		for _, chapterNum := range chapterNums {
			verseMap := raw[bookName][strconv.Itoa(chapterNum)]
			for _, verseNum := range sortedIntKeys(verseMap) {
				text := verseMap[strconv.Itoa(verseNum)]
				t.chapters[bookID][chapterNum] = append(t.chapters[bookID][chapterNum], Verse{
					Number: verseNum,
					Text:   text,
				})

				t.flat = append(t.flat, Hit{
					BookID:   bookID,
					BookName: bookName,
					Chapter:  chapterNum,
					Verse:    verseNum,
					Text:     text,
				})
				for _, word := range strings.Fields(strings.ToLower(text)) {
					clean := strings.Trim(word, ".,;:!?\"'()[]")
					if len(clean) <= 2 {
						continue
					}
					// A word repeated within one verse indexes the
					// verse once.
					idx := len(t.flat) - 1
					if entries := t.index[clean]; len(entries) > 0 && entries[len(entries)-1] == idx {
						continue
					}
					t.index[clean] = append(t.index[clean], idx)
				}
			}
		}
	}

	return t, nil
}

// Name returns the translation code, e.g. "ESV".
func (t *Translation) Name() string { return t.name }

// Books returns all books in canonical order.
func (t *Translation) Books() []Book { return t.books }

// Book returns the book with the given ID.
func (t *Translation) Book(bookID int) (Book, bool) {
	if bookID < 1 || bookID > len(t.books) {
		return Book{}, false
	}
	return t.books[bookID-1], true
}

// ChapterCount returns the number of chapters in a book, or 0 if unknown.
func (t *Translation) ChapterCount(bookID int) int {
	b, ok := t.Book(bookID)
	if !ok {
		return 0
	}
	return b.Chapters
}

// Chapter builds an immutable Chapter value for the given book and number.
func (t *Translation) Chapter(bookID, number int) (*Chapter, error) {
	b, ok := t.Book(bookID)
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownBook, bookID)
	}
	verses, ok := t.chapters[bookID][number]
	if !ok {
		return nil, fmt.Errorf("%w: %s %d", ErrChapterRange, b.Name, number)
	}

	out := make([]Verse, len(verses))
	copy(out, verses)
	return &Chapter{
		BookID:      bookID,
		BookName:    b.Name,
		Number:      number,
		Translation: t.name,
		Verses:      out,
		Reference:   fmt.Sprintf("%s %d", b.Name, number),
	}, nil
}

// Library discovers translation files in a directory and loads them lazily.
type Library struct {
	names  []string
	paths  map[string]string
	loaded map[string]*Translation
}

// DefaultDir returns the default translations directory.
func DefaultDir() string {
	dir, _ := os.UserConfigDir()
	return filepath.Join(dir, "lectio", "translations")
}

// NewLibrary scans dir for *_bible.json files.
func NewLibrary(dir string) (*Library, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*_bible.json"))
	if err != nil {
		return nil, fmt.Errorf("scan translations: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoTranslations, dir)
	}

	l := &Library{
		paths:  make(map[string]string),
		loaded: make(map[string]*Translation),
	}
	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), "_bible.json")
		l.paths[name] = file
		l.names = append(l.names, name)
	}
	sort.Strings(l.names)
	return l, nil
}

// Translations returns the available translation codes, sorted.
func (l *Library) Translations() []string { return l.names }

// Translation loads the named translation, falling back to the first
// available one when the name is unknown.
func (l *Library) Translation(name string) (*Translation, error) {
	if t, ok := l.loaded[name]; ok {
		return t, nil
	}

	path, ok := l.paths[name]
	if !ok {
		if name != l.names[0] {
			return l.Translation(l.names[0])
		}
		return nil, fmt.Errorf("translation %s: %w", name, ErrNoTranslations)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read translation %s: %w", name, err)
	}
	t, err := ParseTranslation(name, data)
	if err != nil {
		return nil, err
	}
	l.loaded[name] = t
	return t, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func sortedIntKeys[T any](m map[string]T) []int {
	nums := make([]int, 0, len(m))
	for key := range m {
		if n, err := strconv.Atoi(key); err == nil {
			nums = append(nums, n)
		}
	}
	sort.Ints(nums)
	return nums
}
