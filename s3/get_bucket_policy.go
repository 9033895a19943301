package s3

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/prn-tf/alexander-presign/credentials"
	"github.com/prn-tf/alexander-presign/sigv4"
)

// GetBucketPolicy fetches the bucket policy document.
type GetBucketPolicy struct {
	bucket  *Bucket
	creds   *credentials.Credentials
	query   sigv4.Params
	headers sigv4.Params
}

// NewGetBucketPolicy builds a GetBucketPolicy action. Nil creds produce an anonymous URL.
func NewGetBucketPolicy(bucket *Bucket, creds *credentials.Credentials) *GetBucketPolicy {
	return &GetBucketPolicy{bucket: bucket, creds: creds}
}

func (a *GetBucketPolicy) Method() string {
	return http.MethodGet
}

func (a *GetBucketPolicy) Query() *sigv4.Params {
	return &a.query
}

func (a *GetBucketPolicy) Headers() *sigv4.Params {
	return &a.headers
}

func (a *GetBucketPolicy) Sign(expires time.Duration) *url.URL {
	return a.SignAt(expires, now())
}

func (a *GetBucketPolicy) SignAt(expires time.Duration, t time.Time) *url.URL {
	u := a.bucket.BaseURL()
	if a.creds == nil {
		// the policy subresource marker is only meaningful on signed requests
		return a.bucket.presign(nil, a.Method(), u, expires, t, a.query.Pairs(), a.headers.Pairs())
	}
	query := sigv4.MergedPairs([]sigv4.Pair{{Key: "policy", Value: ""}}, a.query.Pairs())
	return a.bucket.presign(a.creds, a.Method(), u, expires, t, query, a.headers.Pairs())
}

// =============================================================================
// Response Parsing
// =============================================================================

// BucketPolicy is the JSON policy document S3 returns.
type BucketPolicy struct {
	Version   string            `json:"Version"`
	ID        string            `json:"Id"`
	Statement []json.RawMessage `json:"Statement"`
}

// ParseBucketPolicy decodes a bucket policy document. Statements are kept
// raw; their shape varies too much across stores to model usefully here.
func ParseBucketPolicy(data []byte) (*BucketPolicy, error) {
	var policy BucketPolicy
	if err := json.Unmarshal(data, &policy); err != nil {
		return nil, fmt.Errorf("parse bucket policy: %w", err)
	}
	return &policy, nil
}
