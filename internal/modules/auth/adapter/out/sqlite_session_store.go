package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"diagnocare/internal/modules/auth/domain"
	authout "diagnocare/internal/modules/auth/port/out"
	apperrors "diagnocare/internal/platform/errors"

	_ "modernc.org/sqlite"
)

const (
	keyAccessToken  = "diagnocare.accessToken"
	keyRefreshToken = "diagnocare.refreshToken"
	keyUser         = "diagnocare.user"
)

// SQLiteSessionStore keeps the durable session in a key/value table so it
// survives restarts of the client.
type SQLiteSessionStore struct {
	db *sql.DB
}

var _ authout.SessionStore = (*SQLiteSessionStore)(nil)

func NewSQLiteSessionStore(dbPath string) (*SQLiteSessionStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	store := &SQLiteSessionStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteSessionStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS kv (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create kv table: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteSessionStore) SaveAccessToken(ctx context.Context, token string) error {
	return s.put(ctx, keyAccessToken, token)
}

// AccessToken returns "" when no token is stored.
func (s *SQLiteSessionStore) AccessToken(ctx context.Context) (string, error) {
	v, _, err := s.get(ctx, keyAccessToken)
	return v, err
}

func (s *SQLiteSessionStore) SaveRefreshToken(ctx context.Context, token string) error {
	return s.put(ctx, keyRefreshToken, token)
}

func (s *SQLiteSessionStore) RefreshToken(ctx context.Context) (string, error) {
	v, _, err := s.get(ctx, keyRefreshToken)
	return v, err
}

func (s *SQLiteSessionStore) SaveUser(ctx context.Context, user domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	return s.put(ctx, keyUser, string(raw))
}

func (s *SQLiteSessionStore) User(ctx context.Context) (domain.User, error) {
	v, ok, err := s.get(ctx, keyUser)
	if err != nil {
		return domain.User{}, err
	}
	if !ok || v == "" {
		return domain.User{}, apperrors.ErrNoSession
	}
	var user domain.User
	if err := json.Unmarshal([]byte(v), &user); err != nil {
		// A corrupt record is treated as no session.
		return domain.User{}, apperrors.ErrNoSession
	}
	return user, nil
}

func (s *SQLiteSessionStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key IN (?, ?, ?)`, keyAccessToken, keyRefreshToken, keyUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Keys lists the stored keys, for diagnostics.
func (s *SQLiteSessionStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()
	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *SQLiteSessionStore) put(ctx context.Context, key, value string) error {
	const stmt = `
INSERT INTO kv (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value;
`
	if _, err := s.db.ExecContext(ctx, stmt, key, value); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteSessionStore) get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return v, true, nil
}
