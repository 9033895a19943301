package credentials

import (
	"encoding/json"
	"fmt"
	"time"
)

// RotatingCredentials is the JSON document served by the EC2 instance
// metadata endpoint for an instance role, for example
// /latest/meta-data/iam/security-credentials/<role>.
type RotatingCredentials struct {
	AccessKeyID     string    `json:"AccessKeyId"`
	SecretAccessKey string    `json:"SecretAccessKey"`
	Token           string    `json:"Token"`
	Expiration      time.Time `json:"Expiration"`
}

// ParseRotatingCredentials decodes an instance metadata credentials document.
func ParseRotatingCredentials(data []byte) (*RotatingCredentials, error) {
	var rc RotatingCredentials
	if err := json.Unmarshal(data, &rc); err != nil {
		return nil, fmt.Errorf("parse instance metadata credentials: %w", err)
	}
	return &rc, nil
}

// Credentials converts the document into a temporary credentials snapshot.
func (rc *RotatingCredentials) Credentials() *Credentials {
	return NewWithToken(rc.AccessKeyID, rc.SecretAccessKey, rc.Token)
}

// RotateIn stores a fresh snapshot built from the document into r.
func (rc *RotatingCredentials) RotateIn(r *Rotating) {
	r.Update(rc.Credentials())
}

// String implements fmt.Stringer. Secret fields are redacted.
func (rc *RotatingCredentials) String() string {
	return fmt.Sprintf("RotatingCredentials{AccessKeyID:%s Expiration:%s}",
		rc.AccessKeyID, rc.Expiration.Format(time.RFC3339))
}
