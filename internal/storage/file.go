package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/roydza27/MindEaseLite-sub000/internal"
)

type FileStorage struct {
	users          map[string]*internal.User         // id -> User
	usersByEmail   map[string]*internal.User         // lowercased email -> User
	moods          map[string]*internal.MoodEntry    // id -> MoodEntry
	userMoodIndex  map[string][]*internal.MoodEntry  // userID -> entries (newest first)
	timers         map[string]*internal.TimerSession // id -> TimerSession
	userTimerIndex map[string][]*internal.TimerSession
	mu             sync.RWMutex
	usersFile      string
	moodsFile      string
	timersFile     string
	saveUsersChan  chan struct{}
	saveMoodsChan  chan struct{}
	saveTimersChan chan struct{}
	shutdownChan   chan struct{}
	saveDelay      time.Duration
	logger         internal.Logger
}

func NewFileStorage(usersFile, moodsFile, timersFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		users:          make(map[string]*internal.User),
		usersByEmail:   make(map[string]*internal.User),
		moods:          make(map[string]*internal.MoodEntry),
		userMoodIndex:  make(map[string][]*internal.MoodEntry),
		timers:         make(map[string]*internal.TimerSession),
		userTimerIndex: make(map[string][]*internal.TimerSession),
		usersFile:      usersFile,
		moodsFile:      moodsFile,
		timersFile:     timersFile,
		saveUsersChan:  make(chan struct{}, 1),
		saveMoodsChan:  make(chan struct{}, 1),
		saveTimersChan: make(chan struct{}, 1),
		shutdownChan:   make(chan struct{}),
		saveDelay:      500 * time.Millisecond,
		logger:         logger,
	}

	if err := s.loadUsers(); err != nil {
		logger.Errorf("storage: failed to load users: %v", err)
		return nil, err
	}
	if err := s.loadMoods(); err != nil {
		logger.Errorf("storage: failed to load mood entries: %v", err)
		return nil, err
	}
	if err := s.loadTimers(); err != nil {
		logger.Errorf("storage: failed to load timer sessions: %v", err)
		return nil, err
	}

	go s.saveWorker(s.saveUsersChan, s.saveUsers, "users")
	go s.saveWorker(s.saveMoodsChan, s.saveMoods, "mood entries")
	go s.saveWorker(s.saveTimersChan, s.saveTimers, "timer sessions")

	return s, nil
}

func decodeJSONFile[T any](path string) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var records []T
	if err := json.NewDecoder(file).Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return records, nil
}

// storedUser restores the password hash, which User strips from JSON output.
type storedUser struct {
	*internal.User
	PasswordHash string `json:"password_hash,omitempty"`
}

func (s *FileStorage) loadUsers() error {
	records, err := decodeJSONFile[storedUser](s.usersFile)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		if r.User == nil {
			continue
		}
		u := r.User
		u.PasswordHash = r.PasswordHash
		s.users[u.ID] = u
		s.usersByEmail[strings.ToLower(u.Email)] = u
	}
	return nil
}

func (s *FileStorage) loadMoods() error {
	entries, err := decodeJSONFile[*internal.MoodEntry](s.moodsFile)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.moods[e.ID] = e
		s.userMoodIndex[e.UserID] = append(s.userMoodIndex[e.UserID], e)
	}
	for userID := range s.userMoodIndex {
		sort.Slice(s.userMoodIndex[userID], func(i, j int) bool {
			return s.userMoodIndex[userID][i].CreatedAt.After(s.userMoodIndex[userID][j].CreatedAt)
		})
	}
	return nil
}

func (s *FileStorage) loadTimers() error {
	sessions, err := decodeJSONFile[*internal.TimerSession](s.timersFile)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range sessions {
		s.timers[t.ID] = t
		s.userTimerIndex[t.UserID] = append(s.userTimerIndex[t.UserID], t)
	}
	for userID := range s.userTimerIndex {
		sort.Slice(s.userTimerIndex[userID], func(i, j int) bool {
			return s.userTimerIndex[userID][i].StartTime.After(s.userTimerIndex[userID][j].StartTime)
		})
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) saveUsers() error {
	s.mu.RLock()
	users := make([]storedUser, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, storedUser{User: u, PasswordHash: u.PasswordHash})
	}
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.usersFile, users)
}

func (s *FileStorage) saveMoods() error {
	s.mu.RLock()
	entries := make([]*internal.MoodEntry, 0, len(s.moods))
	for _, e := range s.moods {
		entries = append(entries, e)
	}
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.moodsFile, entries)
}

func (s *FileStorage) saveTimers() error {
	s.mu.RLock()
	sessions := make([]*internal.TimerSession, 0, len(s.timers))
	for _, t := range s.timers {
		sessions = append(sessions, t)
	}
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.timersFile, sessions)
}

// saveWorker batches save operations to avoid frequent disk writes.
func (s *FileStorage) saveWorker(signal chan struct{}, save func() error, what string) {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-signal:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := save(); err != nil {
				s.logger.Errorf("storage: error saving %s: %v", what, err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func signalSave(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

func (s *FileStorage) Close() error {
	close(s.shutdownChan)

	// Save pending data synchronously on shutdown
	if err := s.saveUsers(); err != nil {
		return err
	}
	if err := s.saveMoods(); err != nil {
		return err
	}
	return s.saveTimers()
}

// --- UserRepository ---

func (s *FileStorage) CreateUser(ctx context.Context, user *internal.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(user.Email)
	if _, exists := s.usersByEmail[key]; exists {
		return ErrEmailTaken
	}
	s.users[user.ID] = user
	s.usersByEmail[key] = user
	signalSave(s.saveUsersChan)
	return nil
}

func (s *FileStorage) GetUserByEmail(ctx context.Context, email string) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.usersByEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *FileStorage) GetUserByID(ctx context.Context, id string) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *FileStorage) UpdateUser(ctx context.Context, user *internal.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.users[user.ID]
	if !ok {
		return ErrNotFound
	}
	delete(s.usersByEmail, strings.ToLower(existing.Email))
	*existing = *user
	s.usersByEmail[strings.ToLower(user.Email)] = existing
	signalSave(s.saveUsersChan)
	return nil
}

// --- MoodEntryRepository ---

func (s *FileStorage) SaveMoodEntry(ctx context.Context, entry *internal.MoodEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.moods[entry.ID] = entry
	entries := s.userMoodIndex[entry.UserID]
	inserted := false
	for i, existing := range entries {
		if existing.CreatedAt.Before(entry.CreatedAt) {
			entries = append(entries[:i], append([]*internal.MoodEntry{entry}, entries[i:]...)...)
			inserted = true
			break
		}
	}
	if !inserted {
		entries = append(entries, entry)
	}
	s.userMoodIndex[entry.UserID] = entries
	signalSave(s.saveMoodsChan)
	return nil
}

func (s *FileStorage) GetMoodEntry(ctx context.Context, userID, id string) (*internal.MoodEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.moods[id]
	if !ok || e.UserID != userID {
		return nil, ErrNotFound
	}
	return e, nil
}

func (s *FileStorage) UpdateMoodEntry(ctx context.Context, entry *internal.MoodEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.moods[entry.ID]
	if !ok || existing.UserID != entry.UserID {
		return ErrNotFound
	}
	*existing = *entry
	signalSave(s.saveMoodsChan)
	return nil
}

func (s *FileStorage) DeleteMoodEntry(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.moods[id]
	if !ok || e.UserID != userID {
		return ErrNotFound
	}
	delete(s.moods, id)
	entries := s.userMoodIndex[userID]
	for i, existing := range entries {
		if existing.ID == id {
			s.userMoodIndex[userID] = append(entries[:i], entries[i+1:]...)
			break
		}
	}
	signalSave(s.saveMoodsChan)
	return nil
}

func (s *FileStorage) ListMoodEntries(ctx context.Context, userID string, opts ListOptions) ([]internal.MoodEntry, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entriesPtr := s.userMoodIndex[userID]
	total := len(entriesPtr)
	start, end := pageBounds(total, opts.Page, opts.Limit)
	entries := make([]internal.MoodEntry, 0, end-start)
	for _, e := range entriesPtr[start:end] {
		entries = append(entries, *e)
	}
	return entries, total, nil
}

// --- TimerSessionRepository ---

func (s *FileStorage) SaveTimerSession(ctx context.Context, session *internal.TimerSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timers[session.ID] = session
	sessions := s.userTimerIndex[session.UserID]
	inserted := false
	for i, existing := range sessions {
		if existing.StartTime.Before(session.StartTime) {
			sessions = append(sessions[:i], append([]*internal.TimerSession{session}, sessions[i:]...)...)
			inserted = true
			break
		}
	}
	if !inserted {
		sessions = append(sessions, session)
	}
	s.userTimerIndex[session.UserID] = sessions
	signalSave(s.saveTimersChan)
	return nil
}

func (s *FileStorage) GetTimerSession(ctx context.Context, userID, id string) (*internal.TimerSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.timers[id]
	if !ok || t.UserID != userID {
		return nil, ErrNotFound
	}
	return t, nil
}

func (s *FileStorage) UpdateTimerSession(ctx context.Context, session *internal.TimerSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.timers[session.ID]
	if !ok || existing.UserID != session.UserID {
		return ErrNotFound
	}
	*existing = *session
	signalSave(s.saveTimersChan)
	return nil
}

func (s *FileStorage) DeleteTimerSession(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.timers[id]
	if !ok || t.UserID != userID {
		return ErrNotFound
	}
	delete(s.timers, id)
	sessions := s.userTimerIndex[userID]
	for i, existing := range sessions {
		if existing.ID == id {
			s.userTimerIndex[userID] = append(sessions[:i], sessions[i+1:]...)
			break
		}
	}
	signalSave(s.saveTimersChan)
	return nil
}

func (s *FileStorage) ListTimerSessions(ctx context.Context, userID string, f TimerFilter) ([]internal.TimerSession, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var filtered []*internal.TimerSession
	for _, t := range s.userTimerIndex[userID] {
		if f.Completed != nil && t.Completed != *f.Completed {
			continue
		}
		filtered = append(filtered, t)
	}
	total := len(filtered)
	start, end := pageBounds(total, f.Page, f.Limit)
	sessions := make([]internal.TimerSession, 0, end-start)
	for _, t := range filtered[start:end] {
		sessions = append(sessions, *t)
	}
	return sessions, total, nil
}

func pageBounds(total, page, limit int) (int, int) {
	if limit <= 0 {
		return 0, total
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return start, end
}

// --- Compile-time assertions ---
var _ UserRepository = (*FileStorage)(nil)
var _ MoodEntryRepository = (*FileStorage)(nil)
var _ TimerSessionRepository = (*FileStorage)(nil)
