package api

import (
	"github.com/roydza27/MindEaseLite-sub000/internal"
	"github.com/roydza27/MindEaseLite-sub000/internal/auth"
	"github.com/roydza27/MindEaseLite-sub000/internal/storage"
)

type App interface {
	Logger() internal.Logger
	Users() storage.UserRepository
	Moods() storage.MoodEntryRepository
	Timers() storage.TimerSessionRepository
	Tokens() *auth.TokenManager
}

type app struct {
	logger internal.Logger
	repos  *storage.Repositories
	tokens *auth.TokenManager
}

func NewApp(logger internal.Logger, repos *storage.Repositories, tokens *auth.TokenManager) App {
	return &app{logger: logger, repos: repos, tokens: tokens}
}

func (a *app) Logger() internal.Logger { return a.logger }

func (a *app) Users() storage.UserRepository { return a.repos.Users }

func (a *app) Moods() storage.MoodEntryRepository { return a.repos.Moods }

func (a *app) Timers() storage.TimerSessionRepository { return a.repos.Timers }

func (a *app) Tokens() *auth.TokenManager { return a.tokens }
