// Package store provides durable on-device persistence for annotations.
// The local store is the authority for the app's own display; the remote
// mirror is advisory.
package store

import "time"

// Bookmark is a saved verse. The verse text and reference are denormalized
// at creation time so the bookmark stays readable even if the source
// translation changes later.
type Bookmark struct {
	ID        string
	BookID    int
	BookName  string
	Chapter   int
	Verse     int
	Text      string
	Note      string
	Tags      []string
	Reference string
	CreatedAt time.Time
}

// Color is a highlight color from the fixed palette.
type Color string

const (
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorOrange Color = "orange"
	ColorPink   Color = "pink"
	ColorPurple Color = "purple"
	ColorRed    Color = "red"
	ColorGray   Color = "gray"
)

// Palette returns the highlight colors in picker order.
func Palette() []Color {
	return []Color{
		ColorYellow, ColorGreen, ColorBlue, ColorOrange,
		ColorPink, ColorPurple, ColorRed, ColorGray,
	}
}

// Valid reports whether c is one of the palette colors.
func (c Color) Valid() bool {
	for _, p := range Palette() {
		if c == p {
			return true
		}
	}
	return false
}

// Highlight marks one verse with a color. At most one highlight exists per
// verse; setting a new color replaces the old one.
type Highlight struct {
	ID        string
	BookID    int
	Chapter   int
	Verse     int
	Color     Color
	CreatedAt time.Time
}

// Note is free-form text attached to a verse. Independent from a Bookmark's
// note field; the two coexist.
type Note struct {
	ID        string
	BookID    int
	BookName  string
	Chapter   int
	Verse     int
	Text      string
	Content   string
	CreatedAt time.Time
}

// Preference bounds for the font scale.
const (
	MinFontScale = 0.7
	MaxFontScale = 2.5
)

// Preferences is the per-user display configuration.
type Preferences struct {
	FontScale        float64
	FontFamily       string
	ShowVerseNumbers bool
	NightMode        bool
	Language         string
	Translation      string
}

// DefaultPreferences returns the preferences used on first run.
func DefaultPreferences() Preferences {
	return Preferences{
		FontScale:        1.0,
		FontFamily:       "default",
		ShowVerseNumbers: true,
		NightMode:        false,
		Language:         "en",
		Translation:      "",
	}
}

// ClampFontScale bounds a font scale to the allowed range.
func ClampFontScale(s float64) float64 {
	if s < MinFontScale {
		return MinFontScale
	}
	if s > MaxFontScale {
		return MaxFontScale
	}
	return s
}
