package keystore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/prn-tf/alexander-presign/internal/config"
)

// =============================================================================
// PostgreSQL Store
// =============================================================================

// postgresStore implements Store on a pgx connection pool.
type postgresStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS signing_keys (
		name             TEXT PRIMARY KEY,
		access_key_id    TEXT NOT NULL,
		encrypted_secret TEXT NOT NULL,
		encrypted_token  TEXT NOT NULL DEFAULT '',
		description      TEXT NOT NULL DEFAULT '',
		created_at       TIMESTAMPTZ NOT NULL,
		updated_at       TIMESTAMPTZ NOT NULL
	)
`

// NewPostgresStore connects to PostgreSQL using cfg.DSN().
func NewPostgresStore(ctx context.Context, cfg config.KeystoreConfig, logger zerolog.Logger) (Store, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse keystore DSN: %w", err)
	}
	poolConfig.ConnConfig.ConnectTimeout = 10 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL keystore: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create signing_keys table: %w", err)
	}

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Msg("connected to PostgreSQL keystore")

	return &postgresStore{
		pool:   pool,
		logger: logger,
	}, nil
}

func (s *postgresStore) Put(ctx context.Context, key *SigningKey) error {
	query := `
		INSERT INTO signing_keys (name, access_key_id, encrypted_secret, encrypted_token, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (name) DO UPDATE SET
			access_key_id = EXCLUDED.access_key_id,
			encrypted_secret = EXCLUDED.encrypted_secret,
			encrypted_token = EXCLUDED.encrypted_token,
			description = EXCLUDED.description,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.pool.Exec(ctx, query,
		key.Name,
		key.AccessKeyID,
		key.EncryptedSecret,
		key.EncryptedToken,
		key.Description,
		key.CreatedAt.UTC(),
		key.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to store signing key: %w", err)
	}
	return nil
}

func (s *postgresStore) Get(ctx context.Context, name string) (*SigningKey, error) {
	query := `
		SELECT name, access_key_id, encrypted_secret, encrypted_token, description, created_at, updated_at
		FROM signing_keys
		WHERE name = $1
	`

	key := &SigningKey{}
	err := s.pool.QueryRow(ctx, query, name).Scan(
		&key.Name,
		&key.AccessKeyID,
		&key.EncryptedSecret,
		&key.EncryptedToken,
		&key.Description,
		&key.CreatedAt,
		&key.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to scan signing key: %w", err)
	}
	return key, nil
}

func (s *postgresStore) Delete(ctx context.Context, name string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM signing_keys WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("failed to delete signing key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrKeyNotFound
	}
	return nil
}

func (s *postgresStore) List(ctx context.Context) ([]*SigningKey, error) {
	query := `
		SELECT name, access_key_id, encrypted_secret, encrypted_token, description, created_at, updated_at
		FROM signing_keys
		ORDER BY name
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list signing keys: %w", err)
	}
	defer rows.Close()

	var keys []*SigningKey
	for rows.Next() {
		key := &SigningKey{}
		err := rows.Scan(
			&key.Name,
			&key.AccessKeyID,
			&key.EncryptedSecret,
			&key.EncryptedToken,
			&key.Description,
			&key.CreatedAt,
			&key.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan signing key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating signing keys: %w", err)
	}
	return keys, nil
}

func (s *postgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *postgresStore) Close() error {
	s.pool.Close()
	s.logger.Info().Msg("PostgreSQL keystore pool closed")
	return nil
}
