package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/roydza27/MindEaseLite-sub000/internal"
	"github.com/roydza27/MindEaseLite-sub000/internal/storage"
)

func TestValidateMoodEntryRequest(t *testing.T) {
	assert.NoError(t, ValidateMoodEntryRequest(&MoodEntryRequest{Mood: 4, Stress: 2, Anxiety: "tense"}))
	assert.Error(t, ValidateMoodEntryRequest(&MoodEntryRequest{Mood: 6, Stress: 2, Anxiety: "calm"}))
	assert.Error(t, ValidateMoodEntryRequest(&MoodEntryRequest{Mood: 3, Stress: 0, Anxiety: "calm"}))
	assert.Error(t, ValidateMoodEntryRequest(&MoodEntryRequest{Mood: 3, Stress: 3, Anxiety: "banana"}))
	assert.Error(t, ValidateMoodEntryRequest(&MoodEntryRequest{Mood: 3, Stress: 3}))
}

func TestCreateAndUpdateMoodEntry(t *testing.T) {
	s := setupFileStorage(t)
	ctx := context.Background()
	user := testUser()

	entry, err := CreateMoodEntry(ctx, s, user, &MoodEntryRequest{Mood: 4, Stress: 2, Anxiety: "fine", Notes: "ok day"})
	assert.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, user.ID, entry.UserID)

	mood := 2
	anxiety := "anxious"
	updated, err := UpdateMoodEntry(ctx, s, user, entry.ID, &MoodEntryUpdateRequest{Mood: &mood, Anxiety: &anxiety})
	assert.NoError(t, err)
	assert.Equal(t, 2, updated.Mood)
	assert.Equal(t, "anxious", updated.Anxiety)
	assert.Equal(t, 2, updated.Stress) // untouched fields survive
	assert.Equal(t, "ok day", updated.Notes)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt) || updated.UpdatedAt.Equal(updated.CreatedAt))
}

func TestUpdateMoodEntryNotFound(t *testing.T) {
	s := setupFileStorage(t)
	mood := 3
	_, err := UpdateMoodEntry(context.Background(), s, testUser(), "missing", &MoodEntryUpdateRequest{Mood: &mood})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCalculateMoodStats(t *testing.T) {
	now := time.Now()
	entries := []internal.MoodEntry{
		{ID: "m1", UserID: "u1", Mood: 3, Stress: 2, Anxiety: "calm", CreatedAt: now.Add(-time.Hour)},
		{ID: "m2", UserID: "u1", Mood: 5, Stress: 4, Anxiety: "calm", CreatedAt: now.AddDate(0, 0, -1)},
		{ID: "m3", UserID: "u1", Mood: 2, Stress: 3, Anxiety: "overwhelmed", CreatedAt: now.AddDate(0, 0, -2)},
		{ID: "m4", UserID: "u1", Mood: 1, Stress: 5, Anxiety: "anxious", CreatedAt: now.AddDate(0, 0, -10)}, // outside window
	}

	stats := CalculateMoodStats(entries, 7)
	assert.Equal(t, 3, stats.TotalEntries)
	assert.Equal(t, 3.33, stats.AverageMood)
	assert.Equal(t, 3.0, stats.AverageStress)
	assert.Equal(t, []int{3, 5, 2}, stats.MoodTrend)
	assert.Equal(t, map[string]int{"calm": 2, "overwhelmed": 1}, stats.AnxietyBreakdown)
	assert.GreaterOrEqual(t, stats.EntriesByDay[now.Add(-time.Hour).Weekday().String()], 1)
}

func TestCalculateMoodStatsEmpty(t *testing.T) {
	stats := CalculateMoodStats(nil, 7)
	assert.Equal(t, 0, stats.TotalEntries)
	assert.Equal(t, 0.0, stats.AverageMood)
	assert.NotNil(t, stats.MoodTrend)
	assert.NotNil(t, stats.AnxietyBreakdown)
	assert.NotNil(t, stats.EntriesByDay)
}
