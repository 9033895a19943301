package s3

import (
	"net/http"
	"net/url"
	"time"

	"github.com/prn-tf/alexander-presign/credentials"
	"github.com/prn-tf/alexander-presign/sigv4"
)

// GetObject retrieves an object. Callers commonly add response-* query
// parameters to override response headers, for example
// response-content-type.
type GetObject struct {
	bucket  *Bucket
	creds   *credentials.Credentials
	object  string
	query   sigv4.Params
	headers sigv4.Params
}

// NewGetObject builds a GetObject action. Nil creds produce an anonymous URL.
func NewGetObject(bucket *Bucket, creds *credentials.Credentials, object string) *GetObject {
	return &GetObject{bucket: bucket, creds: creds, object: object}
}

func (a *GetObject) Method() string {
	return http.MethodGet
}

func (a *GetObject) Query() *sigv4.Params {
	return &a.query
}

func (a *GetObject) Headers() *sigv4.Params {
	return &a.headers
}

func (a *GetObject) Sign(expires time.Duration) *url.URL {
	return a.SignAt(expires, now())
}

func (a *GetObject) SignAt(expires time.Duration, t time.Time) *url.URL {
	u := a.bucket.ObjectURL(a.object)
	return a.bucket.presign(a.creds, a.Method(), u, expires, t, a.query.Pairs(), a.headers.Pairs())
}
