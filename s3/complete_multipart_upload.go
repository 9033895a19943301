package s3

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/prn-tf/alexander-presign/credentials"
	"github.com/prn-tf/alexander-presign/sigv4"
)

// CompleteMultipartUpload assembles a finished multipart upload from the
// ETags returned for each part. ETags must be given in part order; part
// numbers in the body are assigned from slice position, starting at 1.
type CompleteMultipartUpload struct {
	bucket   *Bucket
	creds    *credentials.Credentials
	object   string
	uploadID string
	etags    []string
	query    sigv4.Params
	headers  sigv4.Params
}

// NewCompleteMultipartUpload builds a CompleteMultipartUpload action. Nil
// creds produce an anonymous URL.
func NewCompleteMultipartUpload(bucket *Bucket, creds *credentials.Credentials, object, uploadID string, etags []string) *CompleteMultipartUpload {
	return &CompleteMultipartUpload{
		bucket:   bucket,
		creds:    creds,
		object:   object,
		uploadID: uploadID,
		etags:    etags,
	}
}

func (a *CompleteMultipartUpload) Method() string {
	return http.MethodPost
}

func (a *CompleteMultipartUpload) Query() *sigv4.Params {
	return &a.query
}

func (a *CompleteMultipartUpload) Headers() *sigv4.Params {
	return &a.headers
}

func (a *CompleteMultipartUpload) Sign(expires time.Duration) *url.URL {
	return a.SignAt(expires, now())
}

func (a *CompleteMultipartUpload) SignAt(expires time.Duration, t time.Time) *url.URL {
	u := a.bucket.ObjectURL(a.object)
	query := sigv4.MergedPairs([]sigv4.Pair{{Key: "uploadId", Value: a.uploadID}}, a.query.Pairs())
	return a.bucket.presign(a.creds, a.Method(), u, expires, t, query, a.headers.Pairs())
}

// Body renders the CompleteMultipartUpload XML document for the request.
func (a *CompleteMultipartUpload) Body() ([]byte, error) {
	doc := completeDocument{}
	for i, etag := range a.etags {
		doc.Parts = append(doc.Parts, completePart{ETag: etag, PartNumber: uint16(i + 1)})
	}

	body, err := xml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal complete multipart upload document: %w", err)
	}
	return body, nil
}

type completeDocument struct {
	XMLName xml.Name       `xml:"CompleteMultipartUpload"`
	Parts   []completePart `xml:"Part"`
}

type completePart struct {
	ETag       string `xml:"ETag"`
	PartNumber uint16 `xml:"PartNumber"`
}
