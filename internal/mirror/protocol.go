// Package mirror provides the client and wire types for the lectiod
// annotation mirror. Mirroring is best-effort: the local store is
// authoritative and a mirror failure never blocks or undoes a local write.
package mirror

import "encoding/json"

// BookmarkPayload is the wire form of a bookmark push.
type BookmarkPayload struct {
	ID        string   `json:"id"`
	BookID    int      `json:"bookId"`
	BookName  string   `json:"bookName"`
	Chapter   int      `json:"chapter"`
	Verse     int      `json:"verse"`
	Text      string   `json:"text"`
	Note      string   `json:"note,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Reference string   `json:"reference"`
	CreatedAt float64  `json:"createdAt"`
}

// HighlightPayload is the wire form of a highlight push.
type HighlightPayload struct {
	ID        string  `json:"id"`
	BookID    int     `json:"bookId"`
	Chapter   int     `json:"chapter"`
	Verse     int     `json:"verse"`
	Color     string  `json:"color"`
	CreatedAt float64 `json:"createdAt"`
}

// NotePayload is the wire form of a note push.
type NotePayload struct {
	ID        string  `json:"id"`
	BookID    int     `json:"bookId"`
	BookName  string  `json:"bookName"`
	Chapter   int     `json:"chapter"`
	Verse     int     `json:"verse"`
	Text      string  `json:"text"`
	Content   string  `json:"content"`
	CreatedAt float64 `json:"createdAt"`
}

// Entitlement reports the premium status of the authenticated user.
type Entitlement struct {
	Premium bool `json:"premium"`
}

// Envelope is the lectiod JSON response wrapper. Kind carries the
// structured error tag; clients switch on it, never on Message text.
type Envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Kind    string          `json:"kind,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}
