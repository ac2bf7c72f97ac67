package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// Client talks to a lectiod instance. Network failures are queued and
// retried in front of the next push, so a flaky connection converges
// instead of silently dropping annotations.
type Client struct {
	baseURL string
	token   string
	hc      *http.Client

	mu    sync.Mutex
	queue []queued
}

type queued struct {
	method string
	path   string
	body   []byte
}

// New creates a client for the mirror at baseURL, authenticating with the
// given bearer token.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		hc:      &http.Client{Timeout: 10 * time.Second},
	}
}

// PushBookmark mirrors one bookmark.
func (c *Client) PushBookmark(ctx context.Context, b BookmarkPayload) error {
	return c.push(ctx, http.MethodPost, "/v1/bookmarks", b)
}

// DeleteBookmark removes a mirrored bookmark.
func (c *Client) DeleteBookmark(ctx context.Context, id string) error {
	return c.push(ctx, http.MethodDelete, "/v1/bookmarks/"+id, nil)
}

// PushHighlight mirrors one highlight.
func (c *Client) PushHighlight(ctx context.Context, h HighlightPayload) error {
	return c.push(ctx, http.MethodPost, "/v1/highlights", h)
}

// PushNote mirrors one note.
func (c *Client) PushNote(ctx context.Context, n NotePayload) error {
	return c.push(ctx, http.MethodPost, "/v1/notes", n)
}

// Entitlement asks the mirror whether the authenticated user is premium.
func (c *Client) Entitlement(ctx context.Context) (bool, error) {
	env, err := c.do(ctx, http.MethodGet, "/v1/entitlement", nil)
	if err != nil {
		return false, err
	}
	var e Entitlement
	if err := json.Unmarshal(env.Data, &e); err != nil {
		return false, &Error{Kind: KindUnknown, Message: fmt.Sprintf("decode entitlement: %v", err)}
	}
	return e.Premium, nil
}

// Pending reports the number of queued, not-yet-delivered writes.
func (c *Client) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// push marshals the payload, drains the retry queue, and sends. A network
// failure enqueues the write for a later attempt and still reports the
// error so callers can surface it. While older writes remain queued the
// new one joins the back of the queue instead of being sent, so the
// mirror always receives writes in the order they were made.
func (c *Client) push(ctx context.Context, method, path string, payload any) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return &Error{Kind: KindUnknown, Message: fmt.Sprintf("marshal payload: %v", err)}
		}
	}

	c.flush(ctx)

	c.mu.Lock()
	if len(c.queue) > 0 {
		c.queue = append(c.queue, queued{method: method, path: path, body: body})
		c.mu.Unlock()
		return &Error{Kind: KindNetworkUnavailable, Message: "mirror unreachable: earlier writes still queued"}
	}
	c.mu.Unlock()

	_, err := c.send(ctx, method, path, body)
	if err != nil && KindOf(err) == KindNetworkUnavailable {
		c.mu.Lock()
		c.queue = append(c.queue, queued{method: method, path: path, body: body})
		c.mu.Unlock()
	}
	return err
}

// flush retries queued writes in order, stopping at the first failure.
func (c *Client) flush(ctx context.Context) {
	c.mu.Lock()
	pending := c.queue
	c.queue = nil
	c.mu.Unlock()

	for i, q := range pending {
		if _, err := c.send(ctx, q.method, q.path, q.body); err != nil {
			c.mu.Lock()
			c.queue = append(pending[i:], c.queue...)
			c.mu.Unlock()
			return
		}
	}
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*Envelope, error) {
	return c.send(ctx, method, path, body)
}

func (c *Client) send(ctx context.Context, method, path string, body []byte) (*Envelope, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &Error{Kind: KindUnknown, Message: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetworkUnavailable, Message: fmt.Sprintf("mirror unreachable: %v", err)}
	}
	defer resp.Body.Close()

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return &Envelope{Success: true}, nil
		}
		return nil, classifyStatus(resp.StatusCode, "")
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && env.Success {
		return &env, nil
	}

	if env.Kind != "" {
		return nil, &Error{Kind: kindFromTag(env.Kind), Message: env.Message}
	}
	return nil, classifyStatus(resp.StatusCode, env.Message)
}

// classifyStatus maps HTTP status codes without a structured kind tag onto
// the closed Kind set.
func classifyStatus(status int, message string) *Error {
	if message == "" {
		message = fmt.Sprintf("mirror returned status %d", status)
	}
	switch status {
	case http.StatusPaymentRequired:
		return &Error{Kind: KindEntitlementRequired, Message: message}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &Error{Kind: KindPermissionDenied, Message: message}
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return &Error{Kind: KindNetworkUnavailable, Message: message}
	default:
		return &Error{Kind: KindUnknown, Message: message}
	}
}
