package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roydza27/MindEaseLite-sub000/internal"
	"github.com/roydza27/MindEaseLite-sub000/internal/timer"
	"github.com/roydza27/MindEaseLite-sub000/internal/wizard"
)

func TestProtectedCallsRequireToken(t *testing.T) {
	c := New("http://localhost:0", "", internal.NopLogger{})
	_, err := c.Me(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, _, err = c.ListTimerSessions(context.Background(), 1, 10)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = c.CreateMoodEntry(context.Background(), wizard.Entry{})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestCreateMoodEntrySendsAnswers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/moods", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 4.0, body["mood"])
		assert.Equal(t, 2.0, body["stress"])
		assert.Equal(t, "tense", body["anxiety"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"m1","mood":4,"stress":2,"anxiety":"tense"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-token", internal.NopLogger{})
	id, err := c.CreateMoodEntry(context.Background(), wizard.Entry{Mood: 4, Stress: 2, Anxiety: "tense"})
	assert.NoError(t, err)
	assert.Equal(t, "m1", id)
}

func TestCreateTimerSessionReturnsID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/timers", r.URL.Path)
		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 25.0, body["duration"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"t1","duration":25,"completed":false}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-token", internal.NopLogger{})
	id, err := c.CreateTimerSession(context.Background(), timer.SessionDraft{DurationMinutes: 25})
	assert.NoError(t, err)
	assert.Equal(t, "t1", id)
}

func TestCompleteTimerSessionUsesPartialUpdate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PUT", r.Method)
		assert.Equal(t, "/api/timers/t1", r.URL.Path)
		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["completed"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"t1","completed":true}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-token", internal.NopLogger{})
	assert.NoError(t, c.CompleteTimerSession(context.Background(), "t1"))
}

func TestAPIErrorsSurfaceMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"message":"session already completed"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-token", internal.NopLogger{})
	err := c.CompleteTimerSession(context.Background(), "t1")
	assert.EqualError(t, err, "api: session already completed")
}

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"token":"fresh-token","user":{"id":"u1","name":"Alice"}}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", internal.NopLogger{})
	result, err := c.Login(context.Background(), "alice@example.com", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, "fresh-token", result.Token)
	assert.Equal(t, "fresh-token", c.Token())
	assert.Equal(t, "Alice", result.User.Name)
}

func TestListTimerSessionsParsesPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"t1"},{"id":"t2"}],"pagination":{"current":2,"pages":3,"total":8}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-token", internal.NopLogger{})
	sessions, p, err := c.ListTimerSessions(context.Background(), 2, 3)
	assert.NoError(t, err)
	assert.Len(t, sessions, 2)
	assert.Equal(t, 8, p.Total)
	assert.Equal(t, 2, p.Current)
}
