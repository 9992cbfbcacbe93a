package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/roster"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ roster.SessionService = (*SessionService)(nil)

// SessionService implements roster.SessionService using SQLite.
type SessionService struct {
	db *DB
}

// NewSessionService creates a new SessionService.
func NewSessionService(db *DB) *SessionService {
	return &SessionService{db: db}
}

// CreateSession records a started session with a generated ID.
func (s *SessionService) CreateSession(ctx context.Context, record *roster.SessionRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	record.ID = uuid.New().String()
	record.StartedAt = now()
	record.StoppedAt = time.Time{}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, url, count, started_at)
		VALUES (?, ?, ?, ?)
	`, record.ID, record.URL, record.Count, formatTime(record.StartedAt))

	return err
}

// FinishSession stores the final count and the stop time.
func (s *SessionService) FinishSession(ctx context.Context, id string, count int) error {
	if count < 0 {
		return roster.Errorf(roster.EINVALID, "session count must not be negative")
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE sessions SET count = ?, stopped_at = ? WHERE id = ?
	`, count, formatTime(now()), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return roster.Errorf(roster.ENOTFOUND, "session not found")
	}
	return nil
}

// FindSessions retrieves sessions matching the filter, most recent first.
func (s *SessionService) FindSessions(ctx context.Context, filter roster.SessionFilter) ([]*roster.SessionRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, count, started_at, stopped_at FROM sessions WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY started_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*roster.SessionRecord
	for rows.Next() {
		record, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

func scanSession(rows *sql.Rows) (*roster.SessionRecord, error) {
	var record roster.SessionRecord
	var startedAt, stoppedAt string

	if err := rows.Scan(&record.ID, &record.URL, &record.Count, &startedAt, &stoppedAt); err != nil {
		return nil, err
	}

	var err error
	if record.StartedAt, err = parseTime(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if record.StoppedAt, err = parseTime(stoppedAt, "stopped_at"); err != nil {
		return nil, err
	}

	return &record, nil
}
