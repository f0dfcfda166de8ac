// Package client is a Go client for the task API. It carries the session
// cookie across calls, so a Login (or Register) is enough to use every
// gated endpoint afterwards.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"taskbase/internal/auth"
	"taskbase/internal/models"
)

// Doer issues a single HTTP request. *http.Client satisfies it; tests pass
// an adapter over fiber's app.Test instead.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	base    string
	doer    Doer
	session *http.Cookie
}

func New(base string, doer Doer) *Client {
	if doer == nil {
		doer = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{base: base, doer: doer}
}

type envelope struct {
	Message string          `json:"message"`
	Success bool            `json:"success"`
	Status  int             `json:"status"`
	Data    json.RawMessage `json:"data"`
}

// do sends one request, captures a refreshed session cookie, and decodes
// the response envelope. A non-2xx status surfaces as an error carrying
// the server's message; there is no retry.
func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != nil {
		req.AddCookie(c.session)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	for _, cookie := range resp.Cookies() {
		if cookie.Name == auth.SessionCookie {
			if cookie.MaxAge < 0 || cookie.Value == "" {
				c.session = nil
			} else {
				c.session = &http.Cookie{Name: cookie.Name, Value: cookie.Value}
			}
		}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s %s: %d %s", method, path, resp.StatusCode, env.Message)
	}
	return &env, nil
}

func decodeData[T any](env *envelope) (T, error) {
	var data T
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return data, fmt.Errorf("decoding payload: %w", err)
	}
	return data, nil
}

// Register creates an account and stores the session cookie.
func (c *Client) Register(ctx context.Context, email, password string) (models.User, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/user", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return models.User{}, err
	}
	data, err := decodeData[struct {
		User models.User `json:"user"`
	}](env)
	return data.User, err
}

// Login authenticates and stores the session cookie.
func (c *Client) Login(ctx context.Context, email, password string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	return err
}

// Me returns the authenticated user, or nil when the session is absent,
// expired, or refers to a deleted user.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	env, err := c.do(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}
	data, err := decodeData[struct {
		User *models.User `json:"user"`
	}](env)
	return data.User, err
}

// Logout clears the server cookie and drops the local session.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, "/auth/logout", nil)
	if err != nil {
		return err
	}
	c.session = nil
	return nil
}

// TaskPatch carries the optional fields of a partial update. A non-nil
// DueAt of "" clears the due date.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	DueAt       *string `json:"dueAt,omitempty"`
}

func (c *Client) CreateTask(ctx context.Context, title, description, dueAt string) (models.Task, error) {
	env, err := c.do(ctx, http.MethodPost, "/task", map[string]string{
		"title":       title,
		"description": description,
		"dueAt":       dueAt,
	})
	if err != nil {
		return models.Task{}, err
	}
	data, err := decodeData[struct {
		Task models.Task `json:"task"`
	}](env)
	return data.Task, err
}

// Tasks lists every task of the session user. Satisfies board.TaskFetcher.
func (c *Client) Tasks(ctx context.Context) ([]models.Task, error) {
	env, err := c.do(ctx, http.MethodGet, "/task", nil)
	if err != nil {
		return nil, err
	}
	data, err := decodeData[struct {
		Tasks []models.Task `json:"tasks"`
	}](env)
	return data.Tasks, err
}

func (c *Client) UpdateTask(ctx context.Context, id string, patch TaskPatch) (models.Task, error) {
	env, err := c.do(ctx, http.MethodPatch, "/task/"+id, patch)
	if err != nil {
		return models.Task{}, err
	}
	data, err := decodeData[struct {
		Task models.Task `json:"task"`
	}](env)
	return data.Task, err
}

// UpdateTaskStatus changes only the status. Satisfies board.TaskUpdater.
func (c *Client) UpdateTaskStatus(ctx context.Context, id string, status models.Status) (models.Task, error) {
	value := string(status)
	return c.UpdateTask(ctx, id, TaskPatch{Status: &value})
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/task/"+id, nil)
	return err
}
