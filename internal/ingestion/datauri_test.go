package ingestion

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataURI_Base64(t *testing.T) {
	blob, err := ParseDataURI("data:text/plain;base64,QQ==")
	require.NoError(t, err)

	assert.Equal(t, "text/plain", blob.MIMEType)
	assert.Equal(t, []byte("A"), blob.Data)
	assert.False(t, blob.IsImage())
}

func TestParseDataURI_WithParameters(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("résumé"))
	blob, err := ParseDataURI("data:text/plain;charset=utf-8;base64," + payload)
	require.NoError(t, err)

	assert.Equal(t, "text/plain", blob.BaseType())
	assert.Equal(t, "résumé", string(blob.Data))
}

func TestParseDataURI_UnpaddedBase64(t *testing.T) {
	blob, err := ParseDataURI("data:text/plain;base64,QUI")
	require.NoError(t, err)

	assert.Equal(t, "AB", string(blob.Data))
}

func TestParseDataURI_PercentEncoded(t *testing.T) {
	blob, err := ParseDataURI("data:text/plain,Hello%2C%20World")
	require.NoError(t, err)

	assert.Equal(t, "Hello, World", string(blob.Data))
}

func TestParseDataURI_SniffsMissingType(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	blob, err := ParseDataURI("data:;base64," + base64.StdEncoding.EncodeToString(png))
	require.NoError(t, err)

	assert.Equal(t, "image/png", blob.MIMEType)
	assert.True(t, blob.IsImage())
}

func TestParseDataURI_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"missing prefix", "text/plain;base64,QQ==", "missing data: prefix"},
		{"missing comma", "data:text/plain;base64", "missing comma"},
		{"bad base64", "data:text/plain;base64,!!!", "not valid base64"},
		{"empty payload", "data:text/plain;base64,", "payload is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDataURI(tt.input)
			require.Error(t, err)

			var uriErr *DataURIError
			require.True(t, errors.As(err, &uriErr))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEncodeDataURI_RoundTrip(t *testing.T) {
	uri := EncodeDataURI("application/pdf", []byte("%PDF-1.4 body"))
	assert.Equal(t, "data:application/pdf;base64,JVBERi0xLjQgYm9keQ==", uri)

	blob, err := ParseDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", blob.MIMEType)
	assert.Equal(t, "%PDF-1.4 body", string(blob.Data))
}

func TestEncodeDataURI_SniffsOctetStream(t *testing.T) {
	uri := EncodeDataURI("application/octet-stream", []byte("plain resume text"))

	assert.Equal(t, "data:text/plain;base64,"+base64.StdEncoding.EncodeToString([]byte("plain resume text")), uri)
}
