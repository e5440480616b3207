// Package api is a small JSON client for the notebook HTTP API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/notebook/internal/common"
)

var ErrNotLoggedIn = errors.New("not logged in")

// Error is a non-2xx response from the server.
type Error struct {
	Status  int
	Message string
	Fields  []common.FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			parts = append(parts, f.Param+": "+f.Msg)
		}
		return strings.Join(parts, "; ")
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Token     string    `json:"token,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Note struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tag         string    `json:"tag"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Export struct {
	Key   string `json:"key"`
	URL   string `json:"url"`
	Count int    `json:"count"`
}

type envelope struct {
	Success bool                `json:"success"`
	Message json.RawMessage     `json:"message"`
	Errors  []common.FieldError `json:"errors"`
	User    *User               `json:"user"`
	Note    *Note               `json:"note"`
	Notes   []Note              `json:"notes"`
	Key     string              `json:"key"`
	URL     string              `json:"url"`
	Count   int                 `json:"count"`
}

// Client keeps the session token in memory only.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) LoggedIn() bool { return c.token != "" }
func (c *Client) Logout()        { c.token = "" }

// HTTPClient exposes the underlying client, e.g. for downloads.
func (c *Client) HTTPClient() *http.Client { return c.http }

func (c *Client) Register(ctx context.Context, name, email, password string) (*User, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/auth/createuser", false,
		map[string]string{"name": name, "email": email, "password": password})
	if err != nil {
		return nil, err
	}
	return c.session(env)
}

func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/auth/login", false,
		map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	return c.session(env)
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/auth/getuser", true, nil)
	if err != nil {
		return nil, err
	}
	var u User
	if err := json.Unmarshal(env.Message, &u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &u, nil
}

func (c *Client) CreateNote(ctx context.Context, title, description, tag string) (*Note, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/notes/createnote", true,
		map[string]string{"title": title, "description": description, "tag": tag})
	if err != nil {
		return nil, err
	}
	if env.Note == nil {
		return nil, errors.New("response has no note")
	}
	return env.Note, nil
}

func (c *Client) ListNotes(ctx context.Context) ([]Note, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/notes/getnotes", true, nil)
	if err != nil {
		return nil, err
	}
	if env.Notes == nil {
		return []Note{}, nil
	}
	return env.Notes, nil
}

func (c *Client) UpdateNote(ctx context.Context, id, title, description, tag string) (*Note, error) {
	env, err := c.do(ctx, http.MethodPut, "/api/notes/updatenote/"+url.PathEscape(id), true,
		map[string]string{"title": title, "description": description, "tag": tag})
	if err != nil {
		return nil, err
	}
	return decodeNote(env.Message)
}

func (c *Client) DeleteNote(ctx context.Context, id string) (*Note, error) {
	env, err := c.do(ctx, http.MethodDelete, "/api/notes/deletenote/"+url.PathEscape(id), true, nil)
	if err != nil {
		return nil, err
	}
	return decodeNote(env.Message)
}

func (c *Client) Export(ctx context.Context) (*Export, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/notes/export", true, nil)
	if err != nil {
		return nil, err
	}
	return &Export{Key: env.Key, URL: env.URL, Count: env.Count}, nil
}

func (c *Client) session(env *envelope) (*User, error) {
	if env.User == nil || env.User.Token == "" {
		return nil, errors.New("response has no token")
	}
	c.token = env.User.Token
	return env.User, nil
}

func decodeNote(raw json.RawMessage) (*Note, error) {
	var n Note
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, fmt.Errorf("decode note: %w", err)
	}
	return &n, nil
}

func (c *Client) do(ctx context.Context, method, path string, authed bool, body any) (*envelope, error) {
	if authed && c.token == "" {
		return nil, ErrNotLoggedIn
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set(common.AuthTokenHeaderName, c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode != http.StatusOK {
		apiErr := &Error{Status: resp.StatusCode, Fields: env.Errors}
		if decodeErr == nil {
			_ = json.Unmarshal(env.Message, &apiErr.Message)
		}
		if resp.StatusCode == http.StatusUnauthorized {
			c.token = ""
		}
		return nil, apiErr
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}

	return &env, nil
}
