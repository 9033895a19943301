// Package keystore stores the signing credentials the presign service hands
// to the signer. Secret keys are encrypted at rest with AES-256-GCM under a
// key derived from the configured master key; plaintext secrets only exist
// in memory, inside credentials.Credentials values that the caller wipes.
package keystore

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/prn-tf/alexander-presign/credentials"
	"github.com/prn-tf/alexander-presign/internal/pkg/crypto"
)

// =============================================================================
// Records and Store Interface
// =============================================================================

// SigningKey is a stored credential record. The secret key (and session
// token, when present) are held encrypted; Store implementations never see
// plaintext secrets.
type SigningKey struct {
	// Name is the unique handle callers use to select this key.
	Name string

	// AccessKeyID is the AWS-style access key identifier. Safe to log.
	AccessKeyID string

	// EncryptedSecret is the AES-256-GCM ciphertext of the secret key.
	EncryptedSecret string

	// EncryptedToken is the ciphertext of the session token, empty for
	// long-lived credentials.
	EncryptedToken string

	// Description is an optional operator note.
	Description string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is the persistence interface for signing key records.
// Put upserts by Name: rotation writes a new record under the same name.
type Store interface {
	Put(ctx context.Context, key *SigningKey) error
	Get(ctx context.Context, name string) (*SigningKey, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]*SigningKey, error)
	Ping(ctx context.Context) error
	Close() error
}

// =============================================================================
// Keystore
// =============================================================================

// KeyInfo describes a stored key without its secret material.
type KeyInfo struct {
	Name        string    `json:"name"`
	AccessKeyID string    `json:"access_key_id"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Keystore wraps a Store with envelope encryption of secret keys.
type Keystore struct {
	store  Store
	enc    *crypto.Encryptor
	logger zerolog.Logger
}

// New creates a Keystore on top of the given store and encryptor.
func New(store Store, enc *crypto.Encryptor, logger zerolog.Logger) *Keystore {
	return &Keystore{
		store:  store,
		enc:    enc,
		logger: logger.With().Str("component", "keystore").Logger(),
	}
}

// Put encrypts and stores credentials under name, replacing any existing
// record with that name. The caller retains ownership of creds.
func (k *Keystore) Put(ctx context.Context, name, description string, creds *credentials.Credentials) error {
	encSecret, err := k.enc.EncryptString(creds.SecretKey())
	if err != nil {
		return fmt.Errorf("failed to encrypt secret key: %w", err)
	}

	var encToken string
	if token := creds.SessionToken(); token != "" {
		encToken, err = k.enc.EncryptString(token)
		if err != nil {
			return fmt.Errorf("failed to encrypt session token: %w", err)
		}
	}

	now := time.Now().UTC()
	err = k.store.Put(ctx, &SigningKey{
		Name:            name,
		AccessKeyID:     creds.AccessKey(),
		EncryptedSecret: encSecret,
		EncryptedToken:  encToken,
		Description:     description,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return err
	}

	k.logger.Info().
		Str("name", name).
		Str("access_key_id", creds.AccessKey()).
		Msg("stored signing key")

	return nil
}

// Credentials fetches and decrypts the credentials stored under name.
// The caller should Wipe the returned credentials when done.
func (k *Keystore) Credentials(ctx context.Context, name string) (*credentials.Credentials, error) {
	key, err := k.store.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	secret, err := k.enc.DecryptString(key.EncryptedSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt secret key for %q: %w", name, err)
	}

	if key.EncryptedToken == "" {
		return credentials.New(key.AccessKeyID, secret), nil
	}

	token, err := k.enc.DecryptString(key.EncryptedToken)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt session token for %q: %w", name, err)
	}
	return credentials.NewWithToken(key.AccessKeyID, secret, token), nil
}

// Delete removes the key stored under name.
func (k *Keystore) Delete(ctx context.Context, name string) error {
	if err := k.store.Delete(ctx, name); err != nil {
		return err
	}
	k.logger.Info().Str("name", name).Msg("deleted signing key")
	return nil
}

// List returns metadata for all stored keys, without secret material.
func (k *Keystore) List(ctx context.Context) ([]KeyInfo, error) {
	keys, err := k.store.List(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]KeyInfo, 0, len(keys))
	for _, key := range keys {
		infos = append(infos, KeyInfo{
			Name:        key.Name,
			AccessKeyID: key.AccessKeyID,
			Description: key.Description,
			CreatedAt:   key.CreatedAt,
			UpdatedAt:   key.UpdatedAt,
		})
	}
	return infos, nil
}

// Ping checks the underlying store.
func (k *Keystore) Ping(ctx context.Context) error {
	return k.store.Ping(ctx)
}

// Close closes the underlying store.
func (k *Keystore) Close() error {
	return k.store.Close()
}
