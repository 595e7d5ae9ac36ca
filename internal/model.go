package internal

import "time"

type Settings struct {
	Theme         string `json:"theme"`
	Language      string `json:"language"`
	Notifications bool   `json:"notifications"`
}

func DefaultSettings() Settings {
	return Settings{Theme: "light", Language: "en", Notifications: true}
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Settings     Settings  `json:"settings"`
	CreatedAt    time.Time `json:"created_at"`
}

type MoodEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Mood      int       `json:"mood"`   // 1–5 scale
	Stress    int       `json:"stress"` // 1–5 scale
	Anxiety   string    `json:"anxiety"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AnxietyLevels are the accepted values for MoodEntry.Anxiety.
var AnxietyLevels = []string{"calm", "fine", "tense", "anxious", "overwhelmed"}

type TimerSession struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Duration  int        `json:"duration"` // requested length in minutes
	Completed bool       `json:"completed"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
