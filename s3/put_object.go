package s3

import (
	"net/http"
	"net/url"
	"time"

	"github.com/prn-tf/alexander-presign/credentials"
	"github.com/prn-tf/alexander-presign/sigv4"
)

// PutObject uploads an object. Headers such as content-type or
// x-amz-storage-class can be added via Headers and must then be sent
// verbatim with the upload.
type PutObject struct {
	bucket  *Bucket
	creds   *credentials.Credentials
	object  string
	query   sigv4.Params
	headers sigv4.Params
}

// NewPutObject builds a PutObject action. Nil creds produce an anonymous URL.
func NewPutObject(bucket *Bucket, creds *credentials.Credentials, object string) *PutObject {
	return &PutObject{bucket: bucket, creds: creds, object: object}
}

func (a *PutObject) Method() string {
	return http.MethodPut
}

func (a *PutObject) Query() *sigv4.Params {
	return &a.query
}

func (a *PutObject) Headers() *sigv4.Params {
	return &a.headers
}

func (a *PutObject) Sign(expires time.Duration) *url.URL {
	return a.SignAt(expires, now())
}

func (a *PutObject) SignAt(expires time.Duration, t time.Time) *url.URL {
	u := a.bucket.ObjectURL(a.object)
	return a.bucket.presign(a.creds, a.Method(), u, expires, t, a.query.Pairs(), a.headers.Pairs())
}
