package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/roydza27/MindEaseLite-sub000/internal"
	"github.com/roydza27/MindEaseLite-sub000/internal/storage"
)

type TimerSessionRequest struct {
	Duration int    `json:"duration" validate:"required,gte=5,lte=300"`
	Notes    string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type TimerSessionUpdateRequest struct {
	Completed *bool   `json:"completed"`
	Notes     *string `json:"notes" validate:"omitempty,max=500"`
}

func ValidateTimerSessionRequest(body *TimerSessionRequest) error {
	return validate.Struct(body)
}

func ValidateTimerSessionUpdateRequest(body *TimerSessionUpdateRequest) error {
	return validate.Struct(body)
}

func CreateTimerSession(ctx context.Context, timers storage.TimerSessionRepository, user *internal.User, body *TimerSessionRequest) (*internal.TimerSession, error) {
	now := time.Now()
	session := &internal.TimerSession{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Duration:  body.Duration,
		Completed: false,
		StartTime: now,
		Notes:     body.Notes,
		CreatedAt: now,
	}
	if err := timers.SaveTimerSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// UpdateTimerSession applies a partial update. Sending completed=true on an
// already-completed session has no additional effect; completed=false is
// ignored since sessions never reopen.
func UpdateTimerSession(ctx context.Context, timers storage.TimerSessionRepository, user *internal.User, id string, body *TimerSessionUpdateRequest) (*internal.TimerSession, error) {
	session, err := timers.GetTimerSession(ctx, user.ID, id)
	if err != nil {
		return nil, err
	}
	updated := *session
	if body.Completed != nil && *body.Completed && !updated.Completed {
		now := time.Now()
		updated.Completed = true
		if updated.EndTime == nil {
			updated.EndTime = &now
		}
	}
	if body.Notes != nil {
		updated.Notes = *body.Notes
	}
	if err := timers.UpdateTimerSession(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// CompleteTimerSession is the strict variant used by PUT /timers/:id/complete.
// Unlike UpdateTimerSession it rejects sessions that are already completed.
func CompleteTimerSession(ctx context.Context, timers storage.TimerSessionRepository, user *internal.User, id string) (*internal.TimerSession, error) {
	session, err := timers.GetTimerSession(ctx, user.ID, id)
	if err != nil {
		return nil, err
	}
	if session.Completed {
		return nil, internal.ValidationError("session already completed")
	}
	now := time.Now()
	updated := *session
	updated.Completed = true
	updated.EndTime = &now
	if err := timers.UpdateTimerSession(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

type TimerStats struct {
	TotalSessions     int            `json:"totalSessions"`
	CompletedSessions int            `json:"completedSessions"`
	TotalDuration     int            `json:"totalDuration"` // minutes, completed sessions only
	AverageDuration   float64        `json:"averageDuration"`
	CompletionRate    float64        `json:"completionRate"` // percentage
	SessionsByDay     map[string]int `json:"sessionsByDay"`
}

// CalculateTimerStats aggregates sessions whose StartTime falls within the
// trailing window of the given number of days.
func CalculateTimerStats(sessions []internal.TimerSession, days int) TimerStats {
	cutoff := time.Now().AddDate(0, 0, -days)
	stats := TimerStats{SessionsByDay: map[string]int{}}

	for _, s := range sessions {
		if !s.StartTime.After(cutoff) {
			continue
		}
		stats.TotalSessions++
		stats.SessionsByDay[s.StartTime.Weekday().String()]++
		if s.Completed {
			stats.CompletedSessions++
			stats.TotalDuration += s.Duration
		}
	}

	if stats.CompletedSessions > 0 {
		stats.AverageDuration = round2(float64(stats.TotalDuration) / float64(stats.CompletedSessions))
	}
	if stats.TotalSessions > 0 {
		stats.CompletionRate = round2(float64(stats.CompletedSessions) / float64(stats.TotalSessions) * 100)
	}
	return stats
}
