package storage

import (
	"fmt"
	"io"

	"github.com/roydza27/MindEaseLite-sub000/internal"
	"github.com/roydza27/MindEaseLite-sub000/internal/config"
)

// Repositories bundles the three repository views of a single backend.
type Repositories struct {
	Users  UserRepository
	Moods  MoodEntryRepository
	Timers TimerSessionRepository
	io.Closer
}

func NewRepositories(cfg *config.Config, logger internal.Logger) (*Repositories, error) {
	switch cfg.DBType {
	case "file":
		s, err := NewFileStorage(cfg.FileUsers, cfg.FileMoods, cfg.FileTimers, logger)
		if err != nil {
			return nil, err
		}
		return &Repositories{Users: s, Moods: s, Timers: s, Closer: s}, nil
	case "postgres":
		s, err := NewPostgresStorage(cfg.DBDSN, logger)
		if err != nil {
			return nil, err
		}
		return &Repositories{Users: s, Moods: s, Timers: s, Closer: s}, nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.DBType)
	}
}
