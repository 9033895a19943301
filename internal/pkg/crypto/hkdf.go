package crypto

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// keystoreSecretsInfo scopes the derived key to keystore secret encryption.
// Changing it invalidates every stored ciphertext.
const keystoreSecretsInfo = "alexander-presign/keystore-secrets/v1"

// DeriveKey derives a 32-byte subkey from the master key with HKDF-SHA256.
// The info string separates independent uses of the same master key.
func DeriveKey(masterKey []byte, info string) ([]byte, error) {
	if len(masterKey) != KeySize {
		return nil, ErrInvalidKeySize
	}

	r := hkdf.New(sha256.New, masterKey, nil, []byte(info))
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	return key, nil
}
