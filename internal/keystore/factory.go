package keystore

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/prn-tf/alexander-presign/internal/config"
	"github.com/prn-tf/alexander-presign/internal/pkg/crypto"
)

// Open builds the keystore described by cfg: the configured store driver,
// wrapped in the TTL cache, encrypting with a key derived from the master key.
func Open(ctx context.Context, cfg config.KeystoreConfig, logger zerolog.Logger) (*Keystore, error) {
	masterKey, err := cfg.GetMasterKey()
	if err != nil {
		return nil, err
	}

	enc, err := crypto.NewEncryptorFromMaster(masterKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize keystore encryption: %w", err)
	}

	var store Store
	switch cfg.Driver {
	case "sqlite":
		store, err = NewSQLiteStore(ctx, cfg, logger)
	case "postgres":
		store, err = NewPostgresStore(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	return New(WithCache(store, cfg.CacheTTL), enc, logger), nil
}
