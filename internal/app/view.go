package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lectio/internal/store"
	"lectio/internal/ui"
)

func (m Model) theme() ui.Theme {
	if m.prefs.NightMode {
		return ui.Night
	}
	return ui.Day
}

// highlightFor returns the first highlight recorded for a verse number.
// Linear scan over the chapter-scoped list; chapters hold tens of verses.
func (m Model) highlightFor(verse int) (store.Color, bool) {
	for _, h := range m.highlights {
		if h.Verse == verse {
			return h.Color, true
		}
	}
	return "", false
}

// visibleLines returns the verse rows that fit between header and footer.
func (m Model) visibleLines() int {
	if m.height == 0 {
		return 20
	}
	// Reserve: header(1) + divider(1) + divider(1) + status(1) + footer(1)
	return max(5, m.height-5)
}

func (m *Model) ensureCursorVisible() {
	visible := m.visibleLines()
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+visible {
		m.scroll = m.cursor - visible + 1
	}
}

// wrapWidth derives the text column from the font scale: a larger scale
// means fewer characters per line, mimicking a larger typeface.
func (m Model) wrapWidth() int {
	w := m.width
	if w == 0 {
		w = 80
	}
	return max(20, int(float64(w-8)/m.prefs.FontScale))
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	if m.mode == ModeList {
		return m.renderBookmarkList()
	}
	if m.mode == ModeSearch && m.hits != nil {
		return m.renderSearchResults()
	}
	return m.renderReader()
}

func (m Model) renderReader() string {
	th := m.theme()

	var sections []string
	sections = append(sections, m.renderHeader(th))
	sections = append(sections, th.Divider.Render(strings.Repeat("─", m.width)))
	sections = append(sections, m.renderVerses(th))
	sections = append(sections, th.Divider.Render(strings.Repeat("─", m.width)))
	sections = append(sections, m.renderStatusLine(th))
	sections = append(sections, m.renderFooter(th))

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader(th ui.Theme) string {
	title := th.Title.Render("LECTIO")

	var ref string
	if m.chapter != nil {
		ref = th.Header.Render("  " + m.chapter.Reference)
	}

	var translation string
	if m.pos.Translation != "" {
		translation = th.Dim.Render("  [" + m.pos.Translation + "]")
	}

	var badges string
	if m.selecting() {
		badges += "  " + th.SelectionBar.Render(fmt.Sprintf(" SELECT %d ", len(m.selection)))
	}
	if m.mirror != nil {
		if n := m.mirror.Pending(); n > 0 {
			badges += "  " + th.OfflineBadge.Render(fmt.Sprintf("OFFLINE (%d queued)", n))
		}
	}
	if m.loading {
		badges += "  " + th.Dim.Render("loading...")
	}

	return title + ref + translation + badges
}

func (m Model) renderVerses(th ui.Theme) string {
	if m.chapter == nil {
		return th.Dim.Render("  No translation loaded. Put a *_bible.json file in the translations directory.")
	}

	textWidth := m.wrapWidth()
	var lines []string

	for i := m.scroll; i < len(m.chapter.Verses) && len(lines) < m.visibleLines(); i++ {
		v := m.chapter.Verses[i]

		marker := "  "
		if i == m.cursor {
			marker = th.Selected.Render("> ")
		}
		if _, sel := m.selection[v.Number]; sel {
			marker = th.Selected.Render("• ")
			if i == m.cursor {
				marker = th.Selected.Render(">•")
			}
		}

		var num string
		if m.prefs.ShowVerseNumbers {
			num = th.VerseNumber.Render(fmt.Sprintf("%3d ", v.Number))
		}

		style := th.VerseText
		if c, ok := m.highlightFor(v.Number); ok {
			style = ui.HighlightStyle(c)
		}

		wrapped := wrapText(v.Text, textWidth)
		lines = append(lines, marker+num+style.Render(wrapped[0]))
		indent := strings.Repeat(" ", lipgloss.Width(marker+num))
		for _, wl := range wrapped[1:] {
			if len(lines) >= m.visibleLines() {
				break
			}
			lines = append(lines, indent+style.Render(wl))
		}
	}

	for len(lines) < m.visibleLines() {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatusLine(th ui.Theme) string {
	if m.status != "" {
		if m.statusErr {
			return th.Error.Render(m.status)
		}
		return th.Info.Render(m.status)
	}

	switch m.mode {
	case ModeJump:
		return th.Info.Render("Chapter: " + m.input + "▌")
	case ModeSearch:
		return th.Info.Render("Search: " + m.input + "▌")
	case ModeNote:
		label := "Note (optional, Enter to save): "
		if m.noteFor == targetNote {
			label = "Note text (Enter to save): "
		}
		return th.Info.Render(label + m.input + "▌")
	case ModeColor:
		return m.renderPalette(th)
	}
	return ""
}

func (m Model) renderPalette(th ui.Theme) string {
	parts := []string{th.Info.Render("Color:")}
	for i, c := range store.Palette() {
		parts = append(parts, ui.HighlightStyle(c).Render(fmt.Sprintf(" %d %s ", i+1, c)))
	}
	return strings.Join(parts, " ")
}

func (m Model) renderFooter(th ui.Theme) string {
	key := func(k, desc string) string {
		return th.FooterKey.Render(k) + th.FooterDesc.Render(" "+desc)
	}

	var parts []string
	if m.selecting() {
		parts = append(parts,
			key("space", "Toggle"),
			key("a", "All"),
			key("b", "Bookmark"),
			key("x", "Highlight"),
			key("n", "Note"),
			key("y", "Copy"),
			key("e", "Export"),
			key("esc", "Cancel"),
		)
	} else {
		parts = append(parts,
			key("h/l", "Chapter"),
			key("j/k", "Verse"),
			key("g", "Jump"),
			key("/", "Search"),
			key("v", "Select"),
			key("b", "Bookmark"),
			key("B", "Bookmarks"),
			key("N", "Night"),
			key("q", "Quit"),
		)
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderBookmarkList() string {
	th := m.theme()

	var lines []string
	lines = append(lines, th.Title.Render(fmt.Sprintf("BOOKMARKS (%d)", len(m.bookmarks))))
	lines = append(lines, th.Divider.Render(strings.Repeat("─", m.width)))

	if m.loading {
		lines = append(lines, th.Dim.Render("  Loading..."))
	} else if len(m.bookmarks) == 0 {
		lines = append(lines, th.Dim.Render("  No bookmarks yet. Press b on a verse to add one."))
	} else {
		budget := max(5, m.height-6)
		start := 0
		if m.listCursor >= budget {
			start = m.listCursor - budget + 1
		}
		for i := start; i < len(m.bookmarks) && i < start+budget; i++ {
			b := m.bookmarks[i]
			row := fmt.Sprintf("%s:%d  %s", b.Reference, b.Verse, b.Text)
			row = truncateToWidth(row, m.width-4)
			if i == m.listCursor {
				lines = append(lines, th.Selected.Render("> "+row))
			} else {
				lines = append(lines, "  "+row)
			}
			if b.Note != "" && i == m.listCursor {
				lines = append(lines, th.Dim.Render("      "+truncateToWidth(b.Note, m.width-8)))
			}
		}
	}

	for len(lines) < m.height-2 {
		lines = append(lines, "")
	}

	if m.status != "" {
		if m.statusErr {
			lines = append(lines, th.Error.Render(m.status))
		} else {
			lines = append(lines, th.Info.Render(m.status))
		}
	} else {
		lines = append(lines, "")
	}

	key := func(k, desc string) string {
		return th.FooterKey.Render(k) + th.FooterDesc.Render(" "+desc)
	}
	lines = append(lines, strings.Join([]string{
		key("j/k", "Nav"),
		key("enter", "Open"),
		key("d", "Delete"),
		key("esc", "Back"),
	}, "  "))

	return strings.Join(lines, "\n")
}

func (m Model) renderSearchResults() string {
	th := m.theme()

	var lines []string
	lines = append(lines, th.Title.Render(fmt.Sprintf("SEARCH %q (%d)", m.query, len(m.hits))))
	lines = append(lines, th.Divider.Render(strings.Repeat("─", m.width)))

	budget := max(5, m.height-6)
	start := 0
	if m.hitCursor >= budget {
		start = m.hitCursor - budget + 1
	}
	for i := start; i < len(m.hits) && i < start+budget; i++ {
		h := m.hits[i]
		row := fmt.Sprintf("%s %d:%d  %s", h.BookName, h.Chapter, h.Verse, h.Text)
		row = truncateToWidth(row, m.width-4)
		if i == m.hitCursor {
			lines = append(lines, th.Selected.Render("> "+row))
		} else {
			lines = append(lines, "  "+row)
		}
	}

	for len(lines) < m.height-2 {
		lines = append(lines, "")
	}
	lines = append(lines, "")

	key := func(k, desc string) string {
		return th.FooterKey.Render(k) + th.FooterDesc.Render(" "+desc)
	}
	lines = append(lines, strings.Join([]string{
		key("j/k", "Nav"),
		key("enter", "Open"),
		key("esc", "Back"),
	}, "  "))

	return strings.Join(lines, "\n")
}

// Helpers

func truncateToWidth(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) > width-1 {
		return string(runes[:max(1, width-1)]) + "…"
	}
	return s
}

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current string
		for _, word := range strings.Fields(paragraph) {
			if current == "" {
				current = word
			} else if lipgloss.Width(current)+1+lipgloss.Width(word) <= width {
				current += " " + word
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		} else {
			lines = append(lines, "")
		}
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
