package s3

import (
	"net/http"
	"net/url"
	"time"

	"github.com/prn-tf/alexander-presign/credentials"
	"github.com/prn-tf/alexander-presign/sigv4"
)

// HeadObject fetches object metadata without the body.
type HeadObject struct {
	bucket  *Bucket
	creds   *credentials.Credentials
	object  string
	query   sigv4.Params
	headers sigv4.Params
}

// NewHeadObject builds a HeadObject action. Nil creds produce an anonymous URL.
func NewHeadObject(bucket *Bucket, creds *credentials.Credentials, object string) *HeadObject {
	return &HeadObject{bucket: bucket, creds: creds, object: object}
}

func (a *HeadObject) Method() string {
	return http.MethodHead
}

func (a *HeadObject) Query() *sigv4.Params {
	return &a.query
}

func (a *HeadObject) Headers() *sigv4.Params {
	return &a.headers
}

func (a *HeadObject) Sign(expires time.Duration) *url.URL {
	return a.SignAt(expires, now())
}

func (a *HeadObject) SignAt(expires time.Duration, t time.Time) *url.URL {
	u := a.bucket.ObjectURL(a.object)
	return a.bucket.presign(a.creds, a.Method(), u, expires, t, a.query.Pairs(), a.headers.Pairs())
}
