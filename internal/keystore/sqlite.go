package keystore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/prn-tf/alexander-presign/internal/config"
)

// =============================================================================
// SQLite Store
// =============================================================================

// sqliteStore implements Store on an embedded SQLite database.
// modernc.org/sqlite is pure Go, so single-binary deployments need no CGO.
type sqliteStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS signing_keys (
		name             TEXT PRIMARY KEY,
		access_key_id    TEXT NOT NULL,
		encrypted_secret TEXT NOT NULL,
		encrypted_token  TEXT NOT NULL DEFAULT '',
		description      TEXT NOT NULL DEFAULT '',
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)
`

// NewSQLiteStore opens (or creates) the SQLite keystore at cfg.Path.
// Use ":memory:" for an in-memory store.
func NewSQLiteStore(ctx context.Context, cfg config.KeystoreConfig, logger zerolog.Logger) (Store, error) {
	// modernc.org/sqlite only understands _pragma=name(value) parameters;
	// mattn-style _journal_mode=... keys are silently ignored.
	connStr := fmt.Sprintf(
		"%s?_pragma=journal_mode(%s)&_pragma=busy_timeout(%d)&_pragma=synchronous(%s)&_pragma=foreign_keys(ON)",
		cfg.Path,
		cfg.JournalMode,
		cfg.BusyTimeout,
		cfg.SynchronousMode,
	)

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite keystore: %w", err)
	}

	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite keystore: %w", err)
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create signing_keys table: %w", err)
	}

	logger.Info().
		Str("path", cfg.Path).
		Str("journal_mode", cfg.JournalMode).
		Msg("opened SQLite keystore")

	return &sqliteStore{
		db:     db,
		logger: logger,
	}, nil
}

func (s *sqliteStore) Put(ctx context.Context, key *SigningKey) error {
	query := `
		INSERT INTO signing_keys (name, access_key_id, encrypted_secret, encrypted_token, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			access_key_id = excluded.access_key_id,
			encrypted_secret = excluded.encrypted_secret,
			encrypted_token = excluded.encrypted_token,
			description = excluded.description,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		key.Name,
		key.AccessKeyID,
		key.EncryptedSecret,
		key.EncryptedToken,
		key.Description,
		key.CreatedAt.UTC().Format(time.RFC3339),
		key.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to store signing key: %w", err)
	}
	return nil
}

func (s *sqliteStore) Get(ctx context.Context, name string) (*SigningKey, error) {
	query := `
		SELECT name, access_key_id, encrypted_secret, encrypted_token, description, created_at, updated_at
		FROM signing_keys
		WHERE name = ?
	`
	return scanSigningKey(s.db.QueryRowContext(ctx, query, name).Scan)
}

func (s *sqliteStore) Delete(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM signing_keys WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete signing key: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrKeyNotFound
	}
	return nil
}

func (s *sqliteStore) List(ctx context.Context) ([]*SigningKey, error) {
	query := `
		SELECT name, access_key_id, encrypted_secret, encrypted_token, description, created_at, updated_at
		FROM signing_keys
		ORDER BY name
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list signing keys: %w", err)
	}
	defer rows.Close()

	var keys []*SigningKey
	for rows.Next() {
		key, err := scanSigningKey(rows.Scan)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating signing keys: %w", err)
	}
	return keys, nil
}

func (s *sqliteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqliteStore) Close() error {
	s.logger.Info().Msg("closing SQLite keystore")
	return s.db.Close()
}

// scanSigningKey scans one row into a SigningKey. Timestamps are stored as
// RFC 3339 strings.
func scanSigningKey(scan func(dest ...any) error) (*SigningKey, error) {
	key := &SigningKey{}
	var createdAt, updatedAt string

	err := scan(
		&key.Name,
		&key.AccessKeyID,
		&key.EncryptedSecret,
		&key.EncryptedToken,
		&key.Description,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to scan signing key: %w", err)
	}

	key.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	key.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return key, nil
}
