package s3

import (
	"net/http"
	"net/url"
	"time"

	"github.com/prn-tf/alexander-presign/credentials"
	"github.com/prn-tf/alexander-presign/sigv4"
)

// CreateBucket creates the bucket. Bucket creation is never anonymous, so
// credentials are required.
type CreateBucket struct {
	bucket  *Bucket
	creds   *credentials.Credentials
	query   sigv4.Params
	headers sigv4.Params
}

// NewCreateBucket builds a CreateBucket action.
func NewCreateBucket(bucket *Bucket, creds *credentials.Credentials) *CreateBucket {
	return &CreateBucket{bucket: bucket, creds: creds}
}

func (a *CreateBucket) Method() string {
	return http.MethodPut
}

func (a *CreateBucket) Query() *sigv4.Params {
	return &a.query
}

func (a *CreateBucket) Headers() *sigv4.Params {
	return &a.headers
}

func (a *CreateBucket) Sign(expires time.Duration) *url.URL {
	return a.SignAt(expires, now())
}

func (a *CreateBucket) SignAt(expires time.Duration, t time.Time) *url.URL {
	u := a.bucket.BaseURL()
	return a.bucket.presign(a.creds, a.Method(), u, expires, t, a.query.Pairs(), a.headers.Pairs())
}
