package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/roydza27/MindEaseLite-sub000/internal"
	"github.com/roydza27/MindEaseLite-sub000/internal/storage"
)

type MoodEntryRequest struct {
	Mood    int    `json:"mood" validate:"required,gte=1,lte=5"`
	Stress  int    `json:"stress" validate:"required,gte=1,lte=5"`
	Anxiety string `json:"anxiety" validate:"required,oneof=calm fine tense anxious overwhelmed"`
	Notes   string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type MoodEntryUpdateRequest struct {
	Mood    *int    `json:"mood" validate:"omitempty,gte=1,lte=5"`
	Stress  *int    `json:"stress" validate:"omitempty,gte=1,lte=5"`
	Anxiety *string `json:"anxiety" validate:"omitempty,oneof=calm fine tense anxious overwhelmed"`
	Notes   *string `json:"notes" validate:"omitempty,max=500"`
}

func ValidateMoodEntryRequest(body *MoodEntryRequest) error {
	return validate.Struct(body)
}

func ValidateMoodEntryUpdateRequest(body *MoodEntryUpdateRequest) error {
	return validate.Struct(body)
}

func CreateMoodEntry(ctx context.Context, moods storage.MoodEntryRepository, user *internal.User, body *MoodEntryRequest) (*internal.MoodEntry, error) {
	now := time.Now()
	entry := &internal.MoodEntry{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Mood:      body.Mood,
		Stress:    body.Stress,
		Anxiety:   body.Anxiety,
		Notes:     body.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := moods.SaveMoodEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func UpdateMoodEntry(ctx context.Context, moods storage.MoodEntryRepository, user *internal.User, id string, body *MoodEntryUpdateRequest) (*internal.MoodEntry, error) {
	entry, err := moods.GetMoodEntry(ctx, user.ID, id)
	if err != nil {
		return nil, err
	}
	updated := *entry
	if body.Mood != nil {
		updated.Mood = *body.Mood
	}
	if body.Stress != nil {
		updated.Stress = *body.Stress
	}
	if body.Anxiety != nil {
		updated.Anxiety = *body.Anxiety
	}
	if body.Notes != nil {
		updated.Notes = *body.Notes
	}
	updated.UpdatedAt = time.Now()
	if err := moods.UpdateMoodEntry(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

type MoodStats struct {
	TotalEntries     int            `json:"totalEntries"`
	AverageMood      float64        `json:"averageMood"`
	AverageStress    float64        `json:"averageStress"`
	MoodTrend        []int          `json:"moodTrend"`
	AnxietyBreakdown map[string]int `json:"anxietyBreakdown"`
	EntriesByDay     map[string]int `json:"entriesByDay"`
}

// CalculateMoodStats aggregates entries whose CreatedAt falls within the
// trailing window of the given number of days.
func CalculateMoodStats(entries []internal.MoodEntry, days int) MoodStats {
	cutoff := time.Now().AddDate(0, 0, -days)
	stats := MoodStats{
		MoodTrend:        []int{},
		AnxietyBreakdown: map[string]int{},
		EntriesByDay:     map[string]int{},
	}

	totalMood := 0
	totalStress := 0
	for _, e := range entries {
		if !e.CreatedAt.After(cutoff) {
			continue
		}
		stats.TotalEntries++
		totalMood += e.Mood
		totalStress += e.Stress
		stats.MoodTrend = append(stats.MoodTrend, e.Mood)
		if e.Anxiety != "" {
			stats.AnxietyBreakdown[e.Anxiety]++
		}
		stats.EntriesByDay[e.CreatedAt.Weekday().String()]++
	}

	if stats.TotalEntries > 0 {
		stats.AverageMood = round2(float64(totalMood) / float64(stats.TotalEntries))
		stats.AverageStress = round2(float64(totalStress) / float64(stats.TotalEntries))
	}
	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
