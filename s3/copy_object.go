package s3

import (
	"net/http"
	"net/url"
	"time"

	"github.com/prn-tf/alexander-presign/credentials"
	"github.com/prn-tf/alexander-presign/sigv4"
)

// CopyObject performs a server-side copy of srcObject in src onto object in
// bucket. The source is carried in the x-amz-copy-source query parameter as
// "bucket/key"; its "/" is percent-encoded when the URL is rendered.
type CopyObject struct {
	bucket     *Bucket
	creds      *credentials.Credentials
	copySource string
	object     string
	query      sigv4.Params
	headers    sigv4.Params
}

// NewCopyObject builds a CopyObject action. Nil creds produce an anonymous URL.
func NewCopyObject(bucket *Bucket, creds *credentials.Credentials, src *Bucket, srcObject, object string) *CopyObject {
	return &CopyObject{
		bucket:     bucket,
		creds:      creds,
		copySource: src.Name() + "/" + srcObject,
		object:     object,
	}
}

func (a *CopyObject) Method() string {
	return http.MethodPut
}

func (a *CopyObject) Query() *sigv4.Params {
	return &a.query
}

func (a *CopyObject) Headers() *sigv4.Params {
	return &a.headers
}

func (a *CopyObject) Sign(expires time.Duration) *url.URL {
	return a.SignAt(expires, now())
}

func (a *CopyObject) SignAt(expires time.Duration, t time.Time) *url.URL {
	u := a.bucket.ObjectURL(a.object)
	query := sigv4.MergedPairs([]sigv4.Pair{{Key: "x-amz-copy-source", Value: a.copySource}}, a.query.Pairs())
	return a.bucket.presign(a.creds, a.Method(), u, expires, t, query, a.headers.Pairs())
}
