package s3

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/prn-tf/alexander-presign/credentials"
	"github.com/prn-tf/alexander-presign/sigv4"
)

// UploadPart uploads one part of a multipart upload. Part numbers start
// at 1.
type UploadPart struct {
	bucket     *Bucket
	creds      *credentials.Credentials
	object     string
	partNumber uint16
	uploadID   string
	query      sigv4.Params
	headers    sigv4.Params
}

// NewUploadPart builds an UploadPart action. Nil creds produce an anonymous URL.
func NewUploadPart(bucket *Bucket, creds *credentials.Credentials, object string, partNumber uint16, uploadID string) *UploadPart {
	return &UploadPart{
		bucket:     bucket,
		creds:      creds,
		object:     object,
		partNumber: partNumber,
		uploadID:   uploadID,
	}
}

func (a *UploadPart) Method() string {
	return http.MethodPut
}

func (a *UploadPart) Query() *sigv4.Params {
	return &a.query
}

func (a *UploadPart) Headers() *sigv4.Params {
	return &a.headers
}

func (a *UploadPart) Sign(expires time.Duration) *url.URL {
	return a.SignAt(expires, now())
}

func (a *UploadPart) SignAt(expires time.Duration, t time.Time) *url.URL {
	u := a.bucket.ObjectURL(a.object)
	query := sigv4.MergedPairs([]sigv4.Pair{
		{Key: "partNumber", Value: strconv.FormatUint(uint64(a.partNumber), 10)},
		{Key: "uploadId", Value: a.uploadID},
	}, a.query.Pairs())
	return a.bucket.presign(a.creds, a.Method(), u, expires, t, query, a.headers.Pairs())
}
