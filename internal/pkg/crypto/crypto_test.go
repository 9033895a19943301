package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := make([]byte, KeySize)
	copy(key, "0123456789abcdef0123456789abcdef")

	enc, err := NewEncryptor(key)
	require.NoError(t, err)

	ciphertext, err := enc.EncryptString("wJalrXUtnFEMI/K7MDENG/bPxRfiCYEXAMPLEKEY")
	require.NoError(t, err)
	require.NotContains(t, ciphertext, "wJalrXUtnFEMI")

	plaintext, err := enc.DecryptString(ciphertext)
	require.NoError(t, err)
	require.Equal(t, "wJalrXUtnFEMI/K7MDENG/bPxRfiCYEXAMPLEKEY", plaintext)
}

func TestEncryptNonDeterministic(t *testing.T) {
	key := make([]byte, KeySize)
	enc, err := NewEncryptor(key)
	require.NoError(t, err)

	a, err := enc.EncryptString("secret")
	require.NoError(t, err)
	b, err := enc.EncryptString("secret")
	require.NoError(t, err)
	require.NotEqual(t, a, b, "nonce must randomize ciphertexts")
}

func TestNewEncryptorRejectsBadKeySize(t *testing.T) {
	_, err := NewEncryptor(make([]byte, 16))
	require.ErrorIs(t, err, ErrInvalidKeySize)
}

func TestDecryptErrors(t *testing.T) {
	enc, err := NewEncryptor(make([]byte, KeySize))
	require.NoError(t, err)

	_, err = enc.Decrypt("not base64!!!")
	require.Error(t, err)

	_, err = enc.Decrypt("c2hvcnQ=")
	require.ErrorIs(t, err, ErrInvalidCiphertext)

	other, err := NewEncryptor(append(make([]byte, KeySize-1), 1))
	require.NoError(t, err)
	ciphertext, err := enc.EncryptString("secret")
	require.NoError(t, err)
	_, err = other.DecryptString(ciphertext)
	require.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestDeriveKey(t *testing.T) {
	master := make([]byte, KeySize)
	copy(master, "master")

	a, err := DeriveKey(master, "purpose-a")
	require.NoError(t, err)
	require.Len(t, a, KeySize)

	// deterministic for the same inputs
	a2, err := DeriveKey(master, "purpose-a")
	require.NoError(t, err)
	require.Equal(t, a, a2)

	// distinct per info string and never the master key itself
	b, err := DeriveKey(master, "purpose-b")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
	require.NotEqual(t, master, a)

	_, err = DeriveKey(make([]byte, 16), "purpose-a")
	require.ErrorIs(t, err, ErrInvalidKeySize)
}

func TestNewEncryptorFromMaster(t *testing.T) {
	master := make([]byte, KeySize)

	enc, err := NewEncryptorFromMaster(master)
	require.NoError(t, err)

	ciphertext, err := enc.EncryptString("secret")
	require.NoError(t, err)

	// same master key decrypts, raw master key does not
	enc2, err := NewEncryptorFromMaster(master)
	require.NoError(t, err)
	plaintext, err := enc2.DecryptString(ciphertext)
	require.NoError(t, err)
	require.Equal(t, "secret", plaintext)

	raw, err := NewEncryptor(master)
	require.NoError(t, err)
	_, err = raw.DecryptString(ciphertext)
	require.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestGenerateAccessKeyPair(t *testing.T) {
	id, secret, err := GenerateAccessKeyPair()
	require.NoError(t, err)
	require.Len(t, id, AccessKeyIDLength)
	require.Len(t, secret, SecretKeyLength)
	require.Equal(t, strings.ToUpper(id), id)
}

func TestGenerateMasterKeyRoundTrip(t *testing.T) {
	hexKey, err := GenerateMasterKey()
	require.NoError(t, err)
	require.Len(t, hexKey, KeySize*2)

	key, err := ParseHexKey(hexKey)
	require.NoError(t, err)
	require.Len(t, key, KeySize)
}

func TestParseHexKeyInvalid(t *testing.T) {
	_, err := ParseHexKey("abcd")
	require.ErrorIs(t, err, ErrInvalidHexKey)

	_, err = ParseHexKey(strings.Repeat("zz", KeySize))
	require.ErrorIs(t, err, ErrInvalidHexKey)
}
