package s3

import (
	"net/http"
	"net/url"
	"time"

	"github.com/prn-tf/alexander-presign/credentials"
	"github.com/prn-tf/alexander-presign/sigv4"
)

// DeleteBucket removes the bucket, which must already be empty. Bucket
// deletion is never anonymous, so credentials are required.
type DeleteBucket struct {
	bucket  *Bucket
	creds   *credentials.Credentials
	query   sigv4.Params
	headers sigv4.Params
}

// NewDeleteBucket builds a DeleteBucket action.
func NewDeleteBucket(bucket *Bucket, creds *credentials.Credentials) *DeleteBucket {
	return &DeleteBucket{bucket: bucket, creds: creds}
}

func (a *DeleteBucket) Method() string {
	return http.MethodDelete
}

func (a *DeleteBucket) Query() *sigv4.Params {
	return &a.query
}

func (a *DeleteBucket) Headers() *sigv4.Params {
	return &a.headers
}

func (a *DeleteBucket) Sign(expires time.Duration) *url.URL {
	return a.SignAt(expires, now())
}

func (a *DeleteBucket) SignAt(expires time.Duration, t time.Time) *url.URL {
	u := a.bucket.BaseURL()
	return a.bucket.presign(a.creds, a.Method(), u, expires, t, a.query.Pairs(), a.headers.Pairs())
}
