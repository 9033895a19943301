// Package credentials holds AWS access credentials for Alexander Presign.
// Secret key material is kept in a wipeable buffer and is never included in
// formatted output; only the access key identifier is printable.
package credentials

import (
	"errors"
	"os"
)

// ErrNoEnvCredentials is returned by FromEnv when AWS_ACCESS_KEY_ID or
// AWS_SECRET_ACCESS_KEY is not set.
var ErrNoEnvCredentials = errors.New("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY are not set")

// Credentials is an immutable access key / secret key pair, optionally with
// an STS session token. A nil *Credentials means anonymous access.
type Credentials struct {
	accessKey    string
	secret       []byte
	sessionToken string
}

// New returns credentials for a long-lived access key / secret key pair.
func New(accessKey, secretKey string) *Credentials {
	return NewWithToken(accessKey, secretKey, "")
}

// NewWithToken returns temporary credentials carrying an STS session token.
func NewWithToken(accessKey, secretKey, sessionToken string) *Credentials {
	return &Credentials{
		accessKey:    accessKey,
		secret:       []byte(secretKey),
		sessionToken: sessionToken,
	}
}

// FromEnv reads credentials from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY
// and, when set, AWS_SESSION_TOKEN.
func FromEnv() (*Credentials, error) {
	accessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if accessKey == "" || secretKey == "" {
		return nil, ErrNoEnvCredentials
	}
	return NewWithToken(accessKey, secretKey, os.Getenv("AWS_SESSION_TOKEN")), nil
}

// AccessKey returns the access key identifier.
func (c *Credentials) AccessKey() string {
	return c.accessKey
}

// SecretKey returns the secret access key. Callers must not retain the
// returned value beyond the signing operation it feeds.
func (c *Credentials) SecretKey() string {
	return string(c.secret)
}

// SessionToken returns the STS session token, or "" for long-lived keys.
func (c *Credentials) SessionToken() string {
	return c.sessionToken
}

// Wipe zeroes the secret key buffer. The credentials are unusable afterwards.
func (c *Credentials) Wipe() {
	for i := range c.secret {
		c.secret[i] = 0
	}
	c.secret = c.secret[:0]
	c.sessionToken = ""
}

// String implements fmt.Stringer. The secret key and session token are
// never part of the output.
func (c *Credentials) String() string {
	return "Credentials{AccessKey:" + c.accessKey + "}"
}

// GoString implements fmt.GoStringer so %#v stays redacted as well.
func (c *Credentials) GoString() string {
	return c.String()
}
