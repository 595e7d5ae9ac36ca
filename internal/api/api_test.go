package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/roydza27/MindEaseLite-sub000/internal"
	"github.com/roydza27/MindEaseLite-sub000/internal/auth"
	"github.com/roydza27/MindEaseLite-sub000/internal/response"
	"github.com/roydza27/MindEaseLite-sub000/internal/storage"
)

type apiEnvelope struct {
	Success    bool                 `json:"success"`
	Data       json.RawMessage      `json:"data"`
	Pagination *response.Pagination `json:"pagination"`
	Message    string               `json:"message"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	s, err := storage.NewFileStorage(
		filepath.Join(dir, "users.json"),
		filepath.Join(dir, "moods.json"),
		filepath.Join(dir, "timers.json"),
		internal.NopLogger{},
	)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	repos := &storage.Repositories{Users: s, Moods: s, Timers: s, Closer: s}
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewRouter(NewApp(internal.NopLogger{}, repos, tokens))
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token, body string) (*httptest.ResponseRecorder, apiEnvelope) {
	req, err := http.NewRequest(method, path, strings.NewReader(body))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func registerTestUser(t *testing.T, r *gin.Engine, email string) string {
	w, env := doJSON(t, r, "POST", "/api/users/register", "",
		`{"name":"Test User","email":"`+email+`","password":"secret123"}`)
	assert.Equal(t, 201, w.Code)
	var result struct {
		Token string `json:"token"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &result))
	assert.NotEmpty(t, result.Token)
	return result.Token
}

func TestRegisterAndLogin(t *testing.T) {
	r := newTestRouter(t)
	registerTestUser(t, r, "alice@example.com")

	// duplicate email
	w, env := doJSON(t, r, "POST", "/api/users/register", "",
		`{"name":"Again","email":"alice@example.com","password":"secret123"}`)
	assert.Equal(t, 400, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "email already registered", env.Message)

	// invalid body
	w, _ = doJSON(t, r, "POST", "/api/users/register", "",
		`{"name":"NoMail","password":"secret123"}`)
	assert.Equal(t, 400, w.Code)

	w, env = doJSON(t, r, "POST", "/api/users/login", "",
		`{"email":"alice@example.com","password":"secret123"}`)
	assert.Equal(t, 200, w.Code)
	assert.True(t, env.Success)

	w, env = doJSON(t, r, "POST", "/api/users/login", "",
		`{"email":"alice@example.com","password":"wrong-pass"}`)
	assert.Equal(t, 401, w.Code)
	assert.Equal(t, "invalid email or password", env.Message)
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	r := newTestRouter(t)
	for _, path := range []string{"/api/users/me", "/api/timers", "/api/moods"} {
		w, env := doJSON(t, r, "GET", path, "", "")
		assert.Equal(t, 401, w.Code)
		assert.False(t, env.Success)
	}

	w, _ := doJSON(t, r, "GET", "/api/timers", "not-a-jwt", "")
	assert.Equal(t, 401, w.Code)
}

func TestMeAndSettings(t *testing.T) {
	r := newTestRouter(t)
	token := registerTestUser(t, r, "alice@example.com")

	w, env := doJSON(t, r, "GET", "/api/users/me", token, "")
	assert.Equal(t, 200, w.Code)
	var me internal.User
	assert.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "alice@example.com", me.Email)
	assert.Equal(t, "light", me.Settings.Theme)

	w, env = doJSON(t, r, "PUT", "/api/users/settings", token, `{"theme":"dark","notifications":false}`)
	assert.Equal(t, 200, w.Code)
	assert.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "dark", me.Settings.Theme)
	assert.False(t, me.Settings.Notifications)
	assert.Equal(t, "en", me.Settings.Language)

	w, _ = doJSON(t, r, "PUT", "/api/users/settings", token, `{"theme":"neon"}`)
	assert.Equal(t, 400, w.Code)
}

func TestTimerLifecycle(t *testing.T) {
	r := newTestRouter(t)
	token := registerTestUser(t, r, "alice@example.com")

	// invalid duration
	w, _ := doJSON(t, r, "POST", "/api/timers", token, `{"duration":4}`)
	assert.Equal(t, 400, w.Code)

	w, env := doJSON(t, r, "POST", "/api/timers", token, `{"duration":25,"notes":"focus"}`)
	assert.Equal(t, 201, w.Code)
	var session internal.TimerSession
	assert.NoError(t, json.Unmarshal(env.Data, &session))
	assert.NotEmpty(t, session.ID)
	assert.False(t, session.Completed)
	assert.Nil(t, session.EndTime)

	w, env = doJSON(t, r, "PUT", "/api/timers/"+session.ID+"/complete", token, "")
	assert.Equal(t, 200, w.Code)
	assert.NoError(t, json.Unmarshal(env.Data, &session))
	assert.True(t, session.Completed)
	assert.NotNil(t, session.EndTime)

	// the strict complete endpoint rejects a repeat
	w, env = doJSON(t, r, "PUT", "/api/timers/"+session.ID+"/complete", token, "")
	assert.Equal(t, 400, w.Code)
	assert.Equal(t, "session already completed", env.Message)

	// the partial update stays idempotent
	w, env = doJSON(t, r, "PUT", "/api/timers/"+session.ID, token, `{"completed":true}`)
	assert.Equal(t, 200, w.Code)
	assert.True(t, env.Success)

	w, env = doJSON(t, r, "GET", "/api/timers?completed=true", token, "")
	assert.Equal(t, 200, w.Code)
	var sessions []internal.TimerSession
	assert.NoError(t, json.Unmarshal(env.Data, &sessions))
	assert.Len(t, sessions, 1)
	assert.Equal(t, 1, env.Pagination.Total)

	w, env = doJSON(t, r, "GET", "/api/timers/stats", token, "")
	assert.Equal(t, 200, w.Code)
	var stats struct {
		TotalSessions  int     `json:"totalSessions"`
		CompletionRate float64 `json:"completionRate"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 1, stats.TotalSessions)
	assert.Equal(t, 100.0, stats.CompletionRate)

	w, env = doJSON(t, r, "DELETE", "/api/timers/"+session.ID, token, "")
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "timer session deleted", env.Message)

	w, _ = doJSON(t, r, "DELETE", "/api/timers/"+session.ID, token, "")
	assert.Equal(t, 404, w.Code)
}

func TestMoodLifecycle(t *testing.T) {
	r := newTestRouter(t)
	token := registerTestUser(t, r, "alice@example.com")

	w, _ := doJSON(t, r, "POST", "/api/moods", token, `{"mood":4,"stress":2,"anxiety":"banana"}`)
	assert.Equal(t, 400, w.Code)

	w, env := doJSON(t, r, "POST", "/api/moods", token, `{"mood":4,"stress":2,"anxiety":"tense","notes":"long day"}`)
	assert.Equal(t, 201, w.Code)
	var entry internal.MoodEntry
	assert.NoError(t, json.Unmarshal(env.Data, &entry))
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "tense", entry.Anxiety)

	w, env = doJSON(t, r, "PUT", "/api/moods/"+entry.ID, token, `{"mood":5}`)
	assert.Equal(t, 200, w.Code)
	assert.NoError(t, json.Unmarshal(env.Data, &entry))
	assert.Equal(t, 5, entry.Mood)
	assert.Equal(t, 2, entry.Stress)

	w, env = doJSON(t, r, "GET", "/api/moods?page=1&limit=10", token, "")
	assert.Equal(t, 200, w.Code)
	var entries []internal.MoodEntry
	assert.NoError(t, json.Unmarshal(env.Data, &entries))
	assert.Len(t, entries, 1)
	assert.Equal(t, response.Pagination{Current: 1, Pages: 1, Total: 1}, *env.Pagination)

	w, env = doJSON(t, r, "GET", "/api/moods/stats", token, "")
	assert.Equal(t, 200, w.Code)
	var stats struct {
		TotalEntries int     `json:"totalEntries"`
		AverageMood  float64 `json:"averageMood"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 1, stats.TotalEntries)
	assert.Equal(t, 5.0, stats.AverageMood)

	w, env = doJSON(t, r, "DELETE", "/api/moods/"+entry.ID, token, "")
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "mood entry deleted", env.Message)
}

func TestRecordsAreScopedToOwner(t *testing.T) {
	r := newTestRouter(t)
	alice := registerTestUser(t, r, "alice@example.com")
	bob := registerTestUser(t, r, "bob@example.com")

	_, env := doJSON(t, r, "POST", "/api/timers", alice, `{"duration":25}`)
	var session internal.TimerSession
	assert.NoError(t, json.Unmarshal(env.Data, &session))

	w, _ := doJSON(t, r, "PUT", "/api/timers/"+session.ID+"/complete", bob, "")
	assert.Equal(t, 404, w.Code)
	w, _ = doJSON(t, r, "DELETE", "/api/timers/"+session.ID, bob, "")
	assert.Equal(t, 404, w.Code)

	w, env = doJSON(t, r, "GET", "/api/timers", bob, "")
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, 0, env.Pagination.Total)
}
