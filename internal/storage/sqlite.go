package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/jwebster45206/chronicle/pkg/session"
	"github.com/jwebster45206/chronicle/pkg/storage"
)

const sessionsSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	data       BLOB NOT NULL,
	expires_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_expires_at ON sessions (expires_at);
`

// SQLiteStorage keeps sessions in a single SQLite file and era data on the
// filesystem. It needs no external service.
type SQLiteStorage struct {
	*EraFiles

	db         *sql.DB
	path       string
	logger     *slog.Logger
	sessionTTL time.Duration
	now        func() time.Time
}

var _ storage.Storage = (*SQLiteStorage)(nil)

// NewSQLiteStorage opens (or creates) the database at path.
func NewSQLiteStorage(path, dataDir string, sessionTTL time.Duration, logger *slog.Logger) (*SQLiteStorage, error) {
	if dataDir == "" {
		dataDir = "./data"
	}
	if path == "" {
		path = filepath.Join(dataDir, "chronicle.db")
	}
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(sessionsSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}

	return &SQLiteStorage{
		EraFiles:   NewEraFiles(dataDir, logger),
		db:         db,
		path:       path,
		logger:     logger,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}, nil
}

func (s *SQLiteStorage) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite ping failed: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close SQLite database", "error", err)
		return err
	}
	s.logger.Info("SQLite database closed", "path", s.path)
	return nil
}

// WaitForConnection checks the database once; a local file is either
// usable or not.
func (s *SQLiteStorage) WaitForConnection(ctx context.Context, _ int, _ time.Duration) error {
	if err := s.Ping(ctx); err != nil {
		return err
	}
	s.logger.Info("SQLite database ready", "path", s.path)
	return nil
}

// SaveSession stores sess and restarts its TTL. Expired rows are removed
// on the way.
func (s *SQLiteStorage) SaveSession(ctx context.Context, sess *session.Session) error {
	if sess == nil {
		return errors.New("session cannot be nil")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		s.logger.Error("Failed to marshal session", "uuid", sess.ID, "error", err)
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	now := s.now()
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, now.UnixNano()); err != nil {
		s.logger.Warn("Failed to purge expired sessions", "error", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, data, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, expires_at = excluded.expires_at`,
		sess.ID.String(), data, now.Add(s.sessionTTL).UnixNano())
	if err != nil {
		s.logger.Error("Failed to save session", "uuid", sess.ID, "error", err)
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) LoadSession(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM sessions WHERE id = ? AND expires_at > ?`,
		id.String(), s.now().UnixNano()).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Debug("Session not found", "uuid", id)
			return nil, nil
		}
		s.logger.Error("Failed to load session", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		s.logger.Error("Failed to unmarshal session", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &sess, nil
}

func (s *SQLiteStorage) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id.String()); err != nil {
		s.logger.Error("Failed to delete session", "uuid", id, "error", err)
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
