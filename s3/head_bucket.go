package s3

import (
	"net/http"
	"net/url"
	"time"

	"github.com/prn-tf/alexander-presign/credentials"
	"github.com/prn-tf/alexander-presign/sigv4"
)

// HeadBucket probes whether the bucket exists and is accessible.
type HeadBucket struct {
	bucket  *Bucket
	creds   *credentials.Credentials
	query   sigv4.Params
	headers sigv4.Params
}

// NewHeadBucket builds a HeadBucket action. Nil creds produce an anonymous URL.
func NewHeadBucket(bucket *Bucket, creds *credentials.Credentials) *HeadBucket {
	return &HeadBucket{bucket: bucket, creds: creds}
}

func (a *HeadBucket) Method() string {
	return http.MethodHead
}

func (a *HeadBucket) Query() *sigv4.Params {
	return &a.query
}

func (a *HeadBucket) Headers() *sigv4.Params {
	return &a.headers
}

func (a *HeadBucket) Sign(expires time.Duration) *url.URL {
	return a.SignAt(expires, now())
}

func (a *HeadBucket) SignAt(expires time.Duration, t time.Time) *url.URL {
	u := a.bucket.BaseURL()
	return a.bucket.presign(a.creds, a.Method(), u, expires, t, a.query.Pairs(), a.headers.Pairs())
}
