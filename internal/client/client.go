// Package client is the HTTP client for the MindEase API. It implements the
// recorder contracts the countdown timer and mood wizard depend on, plus the
// read endpoints the dashboard and stats screens consume.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/roydza27/MindEaseLite-sub000/internal"
	"github.com/roydza27/MindEaseLite-sub000/internal/response"
	"github.com/roydza27/MindEaseLite-sub000/internal/service"
	"github.com/roydza27/MindEaseLite-sub000/internal/timer"
	"github.com/roydza27/MindEaseLite-sub000/internal/wizard"
)

// ErrNotAuthenticated is returned when a protected call is attempted
// without a stored token.
var ErrNotAuthenticated = errors.New("client: not authenticated, log in first")

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  internal.Logger
}

func New(baseURL, token string, logger internal.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

func (c *Client) SetToken(token string) { c.token = token }
func (c *Client) Token() string         { return c.token }

type envelope struct {
	Success    bool                 `json:"success"`
	Data       json.RawMessage      `json:"data"`
	Pagination *response.Pagination `json:"pagination"`
	Message    string               `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, authed bool) (*envelope, error) {
	if authed && c.token == "" {
		return nil, ErrNotAuthenticated
	}

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		c.logger.Errorf("failed to create request: %v", err)
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Errorf("api call %s %s failed: %v", method, path, err)
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.logger.Errorf("failed to decode api response: %v", err)
		return nil, err
	}
	if resp.StatusCode >= 400 || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = resp.Status
		}
		return nil, fmt.Errorf("api: %s", msg)
	}
	return &env, nil
}

// --- Auth ---

func (c *Client) Register(ctx context.Context, name, email, password string) (*service.AuthResult, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/users/register",
		service.RegisterRequest{Name: name, Email: email, Password: password}, false)
	if err != nil {
		return nil, err
	}
	var result service.AuthResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		return nil, err
	}
	c.token = result.Token
	return &result, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/users/login",
		service.LoginRequest{Email: email, Password: password}, false)
	if err != nil {
		return nil, err
	}
	var result service.AuthResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		return nil, err
	}
	c.token = result.Token
	return &result, nil
}

func (c *Client) Me(ctx context.Context) (*internal.User, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/users/me", nil, true)
	if err != nil {
		return nil, err
	}
	var user internal.User
	if err := json.Unmarshal(env.Data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateSettings(ctx context.Context, req service.SettingsRequest) (*internal.User, error) {
	env, err := c.do(ctx, http.MethodPut, "/api/users/settings", req, true)
	if err != nil {
		return nil, err
	}
	var user internal.User
	if err := json.Unmarshal(env.Data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// --- timer.Recorder ---

func (c *Client) CreateTimerSession(ctx context.Context, draft timer.SessionDraft) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/timers",
		service.TimerSessionRequest{Duration: draft.DurationMinutes, Notes: draft.Notes}, true)
	if err != nil {
		return "", err
	}
	var session internal.TimerSession
	if err := json.Unmarshal(env.Data, &session); err != nil {
		return "", err
	}
	return session.ID, nil
}

func (c *Client) CompleteTimerSession(ctx context.Context, id string) error {
	completed := true
	_, err := c.do(ctx, http.MethodPut, "/api/timers/"+id,
		service.TimerSessionUpdateRequest{Completed: &completed}, true)
	return err
}

// --- wizard.Recorder ---

func (c *Client) CreateMoodEntry(ctx context.Context, entry wizard.Entry) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/moods",
		service.MoodEntryRequest{Mood: entry.Mood, Stress: entry.Stress, Anxiety: entry.Anxiety, Notes: entry.Notes}, true)
	if err != nil {
		return "", err
	}
	var saved internal.MoodEntry
	if err := json.Unmarshal(env.Data, &saved); err != nil {
		return "", err
	}
	return saved.ID, nil
}

// --- Reads ---

func (c *Client) ListTimerSessions(ctx context.Context, page, limit int) ([]internal.TimerSession, *response.Pagination, error) {
	path := "/api/timers?page=" + strconv.Itoa(page) + "&limit=" + strconv.Itoa(limit)
	env, err := c.do(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return nil, nil, err
	}
	var sessions []internal.TimerSession
	if err := json.Unmarshal(env.Data, &sessions); err != nil {
		return nil, nil, err
	}
	return sessions, env.Pagination, nil
}

func (c *Client) ListMoodEntries(ctx context.Context, page, limit int) ([]internal.MoodEntry, *response.Pagination, error) {
	path := "/api/moods?page=" + strconv.Itoa(page) + "&limit=" + strconv.Itoa(limit)
	env, err := c.do(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return nil, nil, err
	}
	var entries []internal.MoodEntry
	if err := json.Unmarshal(env.Data, &entries); err != nil {
		return nil, nil, err
	}
	return entries, env.Pagination, nil
}

func (c *Client) TimerStats(ctx context.Context, days int) (*service.TimerStats, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/timers/stats?days="+strconv.Itoa(days), nil, true)
	if err != nil {
		return nil, err
	}
	var stats service.TimerStats
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) MoodStats(ctx context.Context, days int) (*service.MoodStats, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/moods/stats?days="+strconv.Itoa(days), nil, true)
	if err != nil {
		return nil, err
	}
	var stats service.MoodStats
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// --- Compile-time assertions ---
var _ timer.Recorder = (*Client)(nil)
var _ wizard.Recorder = (*Client)(nil)
