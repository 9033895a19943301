package s3

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/prn-tf/alexander-presign/credentials"
	"github.com/prn-tf/alexander-presign/sigv4"
)

// ListParts lists the parts uploaded so far for a multipart upload.
type ListParts struct {
	bucket   *Bucket
	creds    *credentials.Credentials
	object   string
	uploadID string
	query    sigv4.Params
	headers  sigv4.Params
}

// NewListParts builds a ListParts action. Nil creds produce an anonymous URL.
func NewListParts(bucket *Bucket, creds *credentials.Credentials, object, uploadID string) *ListParts {
	return &ListParts{bucket: bucket, creds: creds, object: object, uploadID: uploadID}
}

// SetMaxParts caps the number of parts returned in one page.
func (a *ListParts) SetMaxParts(maxParts uint16) {
	a.query.Insert("max-parts", strconv.FormatUint(uint64(maxParts), 10))
}

// SetPartNumberMarker resumes listing after the given part number.
func (a *ListParts) SetPartNumberMarker(marker uint16) {
	a.query.Insert("part-number-marker", strconv.FormatUint(uint64(marker), 10))
}

func (a *ListParts) Method() string {
	return http.MethodGet
}

func (a *ListParts) Query() *sigv4.Params {
	return &a.query
}

func (a *ListParts) Headers() *sigv4.Params {
	return &a.headers
}

func (a *ListParts) Sign(expires time.Duration) *url.URL {
	return a.SignAt(expires, now())
}

func (a *ListParts) SignAt(expires time.Duration, t time.Time) *url.URL {
	u := a.bucket.ObjectURL(a.object)
	query := sigv4.MergedPairs([]sigv4.Pair{{Key: "uploadId", Value: a.uploadID}}, a.query.Pairs())
	return a.bucket.presign(a.creds, a.Method(), u, expires, t, query, a.headers.Pairs())
}

// =============================================================================
// Response Parsing
// =============================================================================

// ListPartsResponse is the parsed ListPartsResult document.
type ListPartsResponse struct {
	Parts                []ListPartsPart `xml:"Part"`
	MaxParts             uint16          `xml:"MaxParts"`
	IsTruncated          bool            `xml:"IsTruncated"`
	NextPartNumberMarker *uint16         `xml:"NextPartNumberMarker"`
}

// ListPartsPart is one uploaded part.
type ListPartsPart struct {
	ETag         string `xml:"ETag"`
	LastModified string `xml:"LastModified"`
	PartNumber   uint16 `xml:"PartNumber"`
	Size         uint64 `xml:"Size"`
}

// ParseListPartsResponse decodes a ListPartsResult document. The
// NextPartNumberMarker is only meaningful on truncated pages, so it is
// cleared whenever IsTruncated is false.
func ParseListPartsResponse(data []byte) (*ListPartsResponse, error) {
	var resp ListPartsResponse
	if err := xml.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse list parts response: %w", err)
	}
	if !resp.IsTruncated {
		resp.NextPartNumberMarker = nil
	}
	return &resp, nil
}
