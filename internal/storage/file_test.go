package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/roydza27/MindEaseLite-sub000/internal"
)

type storageFiles struct {
	users  string
	moods  string
	timers string
}

func setupFileStorage(t *testing.T) (*FileStorage, storageFiles) {
	dir := t.TempDir()
	files := storageFiles{
		users:  filepath.Join(dir, "users.json"),
		moods:  filepath.Join(dir, "moods.json"),
		timers: filepath.Join(dir, "timers.json"),
	}
	s, err := NewFileStorage(files.users, files.moods, files.timers, internal.NopLogger{})
	assert.NoError(t, err)
	return s, files
}

func TestCreateUserAndEmailTaken(t *testing.T) {
	s, _ := setupFileStorage(t)
	defer s.Close()
	ctx := context.Background()

	u := &internal.User{ID: "u1", Name: "Alice", Email: "alice@example.com", PasswordHash: "x", CreatedAt: time.Now()}
	assert.NoError(t, s.CreateUser(ctx, u))

	// duplicate email is rejected case-insensitively
	dup := &internal.User{ID: "u2", Name: "Other", Email: "Alice@Example.com"}
	assert.ErrorIs(t, s.CreateUser(ctx, dup), ErrEmailTaken)

	byEmail, err := s.GetUserByEmail(ctx, "ALICE@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "u1", byEmail.ID)

	byID, err := s.GetUserByID(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)

	_, err = s.GetUserByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateUserRekeysEmail(t *testing.T) {
	s, _ := setupFileStorage(t)
	defer s.Close()
	ctx := context.Background()

	u := &internal.User{ID: "u1", Name: "Alice", Email: "alice@example.com"}
	assert.NoError(t, s.CreateUser(ctx, u))

	changed := *u
	changed.Email = "new@example.com"
	changed.Settings.Theme = "dark"
	assert.NoError(t, s.UpdateUser(ctx, &changed))

	_, err := s.GetUserByEmail(ctx, "alice@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
	got, err := s.GetUserByEmail(ctx, "new@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "dark", got.Settings.Theme)
}

func TestMoodEntryCRUDAndOwnership(t *testing.T) {
	s, _ := setupFileStorage(t)
	defer s.Close()
	ctx := context.Background()

	entry := &internal.MoodEntry{ID: "m1", UserID: "u1", Mood: 4, Stress: 2, Anxiety: "fine", CreatedAt: time.Now()}
	assert.NoError(t, s.SaveMoodEntry(ctx, entry))

	got, err := s.GetMoodEntry(ctx, "u1", "m1")
	assert.NoError(t, err)
	assert.Equal(t, 4, got.Mood)

	// another user cannot see or delete it
	_, err = s.GetMoodEntry(ctx, "u2", "m1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteMoodEntry(ctx, "u2", "m1"), ErrNotFound)

	changed := *entry
	changed.Mood = 1
	assert.NoError(t, s.UpdateMoodEntry(ctx, &changed))
	got, err = s.GetMoodEntry(ctx, "u1", "m1")
	assert.NoError(t, err)
	assert.Equal(t, 1, got.Mood)

	assert.NoError(t, s.DeleteMoodEntry(ctx, "u1", "m1"))
	_, err = s.GetMoodEntry(ctx, "u1", "m1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteMoodEntry(ctx, "u1", "m1"), ErrNotFound)
}

func TestListMoodEntriesNewestFirstAndPaged(t *testing.T) {
	s, _ := setupFileStorage(t)
	defer s.Close()
	ctx := context.Background()
	now := time.Now()

	for i := 0; i < 5; i++ {
		entry := &internal.MoodEntry{
			ID:        "m" + string(rune('1'+i)),
			UserID:    "u1",
			Mood:      i + 1,
			Stress:    3,
			Anxiety:   "calm",
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
		}
		assert.NoError(t, s.SaveMoodEntry(ctx, entry))
	}

	entries, total, err := s.ListMoodEntries(ctx, "u1", ListOptions{Page: 1, Limit: 2})
	assert.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, entries, 2)
	assert.Equal(t, 5, entries[0].Mood) // newest first
	assert.Equal(t, 4, entries[1].Mood)

	entries, total, err = s.ListMoodEntries(ctx, "u1", ListOptions{Page: 3, Limit: 2})
	assert.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Mood)

	// past the last page
	entries, total, err = s.ListMoodEntries(ctx, "u1", ListOptions{Page: 9, Limit: 2})
	assert.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Empty(t, entries)
}

func TestListTimerSessionsFilter(t *testing.T) {
	s, _ := setupFileStorage(t)
	defer s.Close()
	ctx := context.Background()
	now := time.Now()

	for i := 0; i < 5; i++ {
		session := &internal.TimerSession{
			ID:        "t" + string(rune('1'+i)),
			UserID:    "u1",
			Duration:  25,
			Completed: i < 2,
			StartTime: now.Add(time.Duration(i) * time.Minute),
			CreatedAt: now,
		}
		assert.NoError(t, s.SaveTimerSession(ctx, session))
	}

	_, total, err := s.ListTimerSessions(ctx, "u1", TimerFilter{})
	assert.NoError(t, err)
	assert.Equal(t, 5, total)

	completed := true
	sessions, total, err := s.ListTimerSessions(ctx, "u1", TimerFilter{Completed: &completed})
	assert.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, ts := range sessions {
		assert.True(t, ts.Completed)
	}

	completed = false
	_, total, err = s.ListTimerSessions(ctx, "u1", TimerFilter{Completed: &completed})
	assert.NoError(t, err)
	assert.Equal(t, 3, total)

	// other users see nothing
	_, total, err = s.ListTimerSessions(ctx, "u2", TimerFilter{})
	assert.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestCloseFlushesAndReloads(t *testing.T) {
	s, files := setupFileStorage(t)
	ctx := context.Background()

	user := &internal.User{ID: "u1", Name: "Alice", Email: "alice@example.com", PasswordHash: "bcrypt-hash"}
	assert.NoError(t, s.CreateUser(ctx, user))
	entry := &internal.MoodEntry{ID: "m1", UserID: "u1", Mood: 5, Stress: 1, Anxiety: "calm", CreatedAt: time.Now()}
	assert.NoError(t, s.SaveMoodEntry(ctx, entry))
	session := &internal.TimerSession{ID: "t1", UserID: "u1", Duration: 25, StartTime: time.Now()}
	assert.NoError(t, s.SaveTimerSession(ctx, session))

	assert.NoError(t, s.Close())

	for _, path := range []string{files.users, files.moods, files.timers} {
		info, err := os.Stat(path)
		assert.NoError(t, err)
		assert.True(t, info.Size() > 0)
	}

	reopened, err := NewFileStorage(files.users, files.moods, files.timers, internal.NopLogger{})
	assert.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetUserByEmail(ctx, "alice@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "bcrypt-hash", got.PasswordHash) // hash survives the round trip

	_, total, err := reopened.ListMoodEntries(ctx, "u1", ListOptions{})
	assert.NoError(t, err)
	assert.Equal(t, 1, total)
	_, total, err = reopened.ListTimerSessions(ctx, "u1", TimerFilter{})
	assert.NoError(t, err)
	assert.Equal(t, 1, total)
}
