// Package ingestion decodes uploaded resumes and normalizes free-text input.
package ingestion

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DataURIPrefix marks a self-describing blob
const DataURIPrefix = "data:"

// Blob is a decoded data URI: the declared MIME type plus raw bytes.
type Blob struct {
	MIMEType string
	Data     []byte
}

// DataURIError represents a malformed data URI
type DataURIError struct {
	Message string
	Cause   error
}

func (e *DataURIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid data URI: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid data URI: %s", e.Message)
}

func (e *DataURIError) Unwrap() error {
	return e.Cause
}

// ParseDataURI decodes "data:<mime>[;param...][;base64],<payload>".
// A missing MIME type falls back to sniffing the payload.
func ParseDataURI(raw string) (*Blob, error) {
	if !strings.HasPrefix(raw, DataURIPrefix) {
		return nil, &DataURIError{Message: "missing data: prefix"}
	}

	header, payload, found := strings.Cut(raw[len(DataURIPrefix):], ",")
	if !found {
		return nil, &DataURIError{Message: "missing comma separator"}
	}

	params := strings.Split(header, ";")
	mediaType := strings.ToLower(strings.TrimSpace(params[0]))
	isBase64 := false
	for _, p := range params[1:] {
		if strings.EqualFold(strings.TrimSpace(p), "base64") {
			isBase64 = true
		}
	}

	var data []byte
	if isBase64 {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			// Some encoders drop the padding
			decoded, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
			if err != nil {
				return nil, &DataURIError{Message: "payload is not valid base64", Cause: err}
			}
		}
		data = decoded
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return nil, &DataURIError{Message: "payload is not valid percent-encoding", Cause: err}
		}
		data = []byte(unescaped)
	}

	if len(data) == 0 {
		return nil, &DataURIError{Message: "payload is empty"}
	}

	if mediaType == "" {
		mediaType = mimetype.Detect(data).String()
	}

	return &Blob{MIMEType: mediaType, Data: data}, nil
}

// EncodeDataURI is the inverse of ParseDataURI, always base64-encoded.
// An empty mimeType is sniffed from the data.
func EncodeDataURI(mimeType string, data []byte) string {
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = mimetype.Detect(data).String()
	}
	// Drop charset and other parameters; ParseDataURI only keeps the media type
	mimeType, _, _ = strings.Cut(mimeType, ";")
	return DataURIPrefix + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// BaseType returns the MIME type without parameters.
func (b *Blob) BaseType() string {
	base, _, _ := strings.Cut(b.MIMEType, ";")
	return strings.TrimSpace(base)
}

// IsImage reports whether the blob is an image.
func (b *Blob) IsImage() bool {
	return strings.HasPrefix(b.BaseType(), "image/")
}
