package storage

import (
	"context"
	"errors"

	"github.com/roydza27/MindEaseLite-sub000/internal"
)

// ErrNotFound is returned when a record does not exist or belongs to another user.
var ErrNotFound = errors.New("storage: not found")

// ErrEmailTaken is returned when registering an already-used email.
var ErrEmailTaken = errors.New("storage: email already registered")

type ListOptions struct {
	Page  int
	Limit int
}

type TimerFilter struct {
	ListOptions
	Completed *bool
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *internal.User) error
	GetUserByEmail(ctx context.Context, email string) (*internal.User, error)
	GetUserByID(ctx context.Context, id string) (*internal.User, error)
	UpdateUser(ctx context.Context, user *internal.User) error
}

type MoodEntryRepository interface {
	SaveMoodEntry(ctx context.Context, entry *internal.MoodEntry) error
	GetMoodEntry(ctx context.Context, userID, id string) (*internal.MoodEntry, error)
	UpdateMoodEntry(ctx context.Context, entry *internal.MoodEntry) error
	DeleteMoodEntry(ctx context.Context, userID, id string) error
	ListMoodEntries(ctx context.Context, userID string, opts ListOptions) ([]internal.MoodEntry, int, error)
}

type TimerSessionRepository interface {
	SaveTimerSession(ctx context.Context, session *internal.TimerSession) error
	GetTimerSession(ctx context.Context, userID, id string) (*internal.TimerSession, error)
	UpdateTimerSession(ctx context.Context, session *internal.TimerSession) error
	DeleteTimerSession(ctx context.Context, userID, id string) error
	ListTimerSessions(ctx context.Context, userID string, f TimerFilter) ([]internal.TimerSession, int, error)
}
