package app

// Key binding constants used in handleKey.
const (
	KeyQuit         = "q"
	KeyQuitUpper    = "Q"
	KeyCtrlC        = "ctrl+c"
	KeyPrevChapter  = "h"
	KeyPrevArrow    = "left"
	KeyNextChapter  = "l"
	KeyNextArrow    = "right"
	KeyCursorDown   = "j"
	KeyCursorUp     = "k"
	KeyDown         = "down"
	KeyUp           = "up"
	KeyJumpChapter  = "g"
	KeySearch       = "/"
	KeySelect       = "v"
	KeySpace        = " "
	KeyEnter        = "enter"
	KeyEscape       = "esc"
	KeySelectAll    = "a"
	KeyBookmark     = "b"
	KeyHighlight    = "x"
	KeyNote         = "n"
	KeyCopy         = "y"
	KeyExport       = "e"
	KeyBookmarkList = "B"
	KeyDelete       = "d"
	KeyNightMode    = "N"
	KeyVerseNumbers = "#"
	KeyFontBigger   = "+"
	KeyFontSmaller  = "-"
	KeyBackspace    = "backspace"
)
