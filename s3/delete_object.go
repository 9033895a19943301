package s3

import (
	"net/http"
	"net/url"
	"time"

	"github.com/prn-tf/alexander-presign/credentials"
	"github.com/prn-tf/alexander-presign/sigv4"
)

// DeleteObject removes a single object, or a single version when a
// versionId query parameter is added.
type DeleteObject struct {
	bucket  *Bucket
	creds   *credentials.Credentials
	object  string
	query   sigv4.Params
	headers sigv4.Params
}

// NewDeleteObject builds a DeleteObject action. Nil creds produce an anonymous URL.
func NewDeleteObject(bucket *Bucket, creds *credentials.Credentials, object string) *DeleteObject {
	return &DeleteObject{bucket: bucket, creds: creds, object: object}
}

func (a *DeleteObject) Method() string {
	return http.MethodDelete
}

func (a *DeleteObject) Query() *sigv4.Params {
	return &a.query
}

func (a *DeleteObject) Headers() *sigv4.Params {
	return &a.headers
}

func (a *DeleteObject) Sign(expires time.Duration) *url.URL {
	return a.SignAt(expires, now())
}

func (a *DeleteObject) SignAt(expires time.Duration, t time.Time) *url.URL {
	u := a.bucket.ObjectURL(a.object)
	return a.bucket.presign(a.creds, a.Method(), u, expires, t, a.query.Pairs(), a.headers.Pairs())
}
