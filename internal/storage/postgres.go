package storage

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roydza27/MindEaseLite-sub000/internal"
)

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// --- UserRepository ---

func (p *PostgresStorage) CreateUser(ctx context.Context, user *internal.User) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO users (id, name, email, password_hash, theme, language, notifications, created_at) VALUES ($1, $2, lower($3), $4, $5, $6, $7, $8)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Settings.Theme, user.Settings.Language, user.Settings.Notifications, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmailTaken
		}
		p.logger.Errorf("failed to insert user: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) scanUser(row pgx.Row) (*internal.User, error) {
	var u internal.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Settings.Theme, &u.Settings.Language, &u.Settings.Notifications, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("failed to scan user: %v", err)
		return nil, err
	}
	return &u, nil
}

func (p *PostgresStorage) GetUserByEmail(ctx context.Context, email string) (*internal.User, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, name, email, password_hash, theme, language, notifications, created_at FROM users WHERE email = lower($1)`, email)
	return p.scanUser(row)
}

func (p *PostgresStorage) GetUserByID(ctx context.Context, id string) (*internal.User, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, name, email, password_hash, theme, language, notifications, created_at FROM users WHERE id = $1`, id)
	return p.scanUser(row)
}

func (p *PostgresStorage) UpdateUser(ctx context.Context, user *internal.User) error {
	tag, err := p.pool.Exec(ctx, `UPDATE users SET name = $2, email = lower($3), password_hash = $4, theme = $5, language = $6, notifications = $7 WHERE id = $1`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Settings.Theme, user.Settings.Language, user.Settings.Notifications)
	if err != nil {
		p.logger.Errorf("failed to update user: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- MoodEntryRepository ---

func (p *PostgresStorage) SaveMoodEntry(ctx context.Context, entry *internal.MoodEntry) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO mood_entries (id, user_id, mood, stress, anxiety, notes, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.UserID, entry.Mood, entry.Stress, entry.Anxiety, entry.Notes, entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert mood entry: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) GetMoodEntry(ctx context.Context, userID, id string) (*internal.MoodEntry, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, user_id, mood, stress, anxiety, notes, created_at, updated_at FROM mood_entries WHERE id = $1 AND user_id = $2`, id, userID)
	var e internal.MoodEntry
	err := row.Scan(&e.ID, &e.UserID, &e.Mood, &e.Stress, &e.Anxiety, &e.Notes, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("failed to scan mood entry: %v", err)
		return nil, err
	}
	return &e, nil
}

func (p *PostgresStorage) UpdateMoodEntry(ctx context.Context, entry *internal.MoodEntry) error {
	tag, err := p.pool.Exec(ctx, `UPDATE mood_entries SET mood = $3, stress = $4, anxiety = $5, notes = $6, updated_at = $7 WHERE id = $1 AND user_id = $2`,
		entry.ID, entry.UserID, entry.Mood, entry.Stress, entry.Anxiety, entry.Notes, entry.UpdatedAt)
	if err != nil {
		p.logger.Errorf("failed to update mood entry: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresStorage) DeleteMoodEntry(ctx context.Context, userID, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM mood_entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		p.logger.Errorf("failed to delete mood entry: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresStorage) ListMoodEntries(ctx context.Context, userID string, opts ListOptions) ([]internal.MoodEntry, int, error) {
	var total int
	if err := p.pool.QueryRow(ctx, `SELECT count(*) FROM mood_entries WHERE user_id = $1`, userID).Scan(&total); err != nil {
		p.logger.Errorf("failed to count mood entries: %v", err)
		return nil, 0, err
	}

	query := `SELECT id, user_id, mood, stress, anxiety, notes, created_at, updated_at FROM mood_entries WHERE user_id = $1 ORDER BY created_at DESC`
	args := []interface{}{userID}
	if opts.Limit > 0 {
		page := opts.Page
		if page < 1 {
			page = 1
		}
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, opts.Limit, (page-1)*opts.Limit)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		p.logger.Errorf("failed to query mood entries: %v", err)
		return nil, 0, err
	}
	defer rows.Close()

	entries := []internal.MoodEntry{}
	for rows.Next() {
		var e internal.MoodEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Mood, &e.Stress, &e.Anxiety, &e.Notes, &e.CreatedAt, &e.UpdatedAt); err != nil {
			p.logger.Errorf("failed to scan mood entry: %v", err)
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, nil
}

// --- TimerSessionRepository ---

func (p *PostgresStorage) SaveTimerSession(ctx context.Context, session *internal.TimerSession) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO timer_sessions (id, user_id, duration, completed, start_time, end_time, notes, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		session.ID, session.UserID, session.Duration, session.Completed, session.StartTime, session.EndTime, session.Notes, session.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert timer session: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) GetTimerSession(ctx context.Context, userID, id string) (*internal.TimerSession, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, user_id, duration, completed, start_time, end_time, notes, created_at FROM timer_sessions WHERE id = $1 AND user_id = $2`, id, userID)
	var t internal.TimerSession
	err := row.Scan(&t.ID, &t.UserID, &t.Duration, &t.Completed, &t.StartTime, &t.EndTime, &t.Notes, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("failed to scan timer session: %v", err)
		return nil, err
	}
	return &t, nil
}

func (p *PostgresStorage) UpdateTimerSession(ctx context.Context, session *internal.TimerSession) error {
	tag, err := p.pool.Exec(ctx, `UPDATE timer_sessions SET duration = $3, completed = $4, end_time = $5, notes = $6 WHERE id = $1 AND user_id = $2`,
		session.ID, session.UserID, session.Duration, session.Completed, session.EndTime, session.Notes)
	if err != nil {
		p.logger.Errorf("failed to update timer session: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresStorage) DeleteTimerSession(ctx context.Context, userID, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM timer_sessions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		p.logger.Errorf("failed to delete timer session: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresStorage) ListTimerSessions(ctx context.Context, userID string, f TimerFilter) ([]internal.TimerSession, int, error) {
	countQuery := `SELECT count(*) FROM timer_sessions WHERE user_id = $1`
	listQuery := `SELECT id, user_id, duration, completed, start_time, end_time, notes, created_at FROM timer_sessions WHERE user_id = $1`
	countArgs := []interface{}{userID}
	listArgs := []interface{}{userID}
	if f.Completed != nil {
		countQuery += ` AND completed = $2`
		listQuery += ` AND completed = $2`
		countArgs = append(countArgs, *f.Completed)
		listArgs = append(listArgs, *f.Completed)
	}
	listQuery += ` ORDER BY start_time DESC`

	var total int
	if err := p.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		p.logger.Errorf("failed to count timer sessions: %v", err)
		return nil, 0, err
	}

	if f.Limit > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		n := len(listArgs)
		listQuery += ` LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2)
		listArgs = append(listArgs, f.Limit, (page-1)*f.Limit)
	}

	rows, err := p.pool.Query(ctx, listQuery, listArgs...)
	if err != nil {
		p.logger.Errorf("failed to query timer sessions: %v", err)
		return nil, 0, err
	}
	defer rows.Close()

	sessions := []internal.TimerSession{}
	for rows.Next() {
		var t internal.TimerSession
		if err := rows.Scan(&t.ID, &t.UserID, &t.Duration, &t.Completed, &t.StartTime, &t.EndTime, &t.Notes, &t.CreatedAt); err != nil {
			p.logger.Errorf("failed to scan timer session: %v", err)
			return nil, 0, err
		}
		sessions = append(sessions, t)
	}
	return sessions, total, nil
}

// --- Compile-time assertions ---
var _ UserRepository = (*PostgresStorage)(nil)
var _ MoodEntryRepository = (*PostgresStorage)(nil)
var _ TimerSessionRepository = (*PostgresStorage)(nil)
