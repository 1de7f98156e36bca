package ingestion

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ErrUnsupportedType is returned when no text extractor handles a MIME type.
var ErrUnsupportedType = errors.New("unsupported resume type")

// ExtractionError represents a failure extracting text from a resume
type ExtractionError struct {
	MIMEType string
	Cause    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.MIMEType, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// ExtractText returns cleaned plain text for PDF, DOCX and text/* blobs.
// Images return ErrUnsupportedType and are sent to the model as media instead.
func ExtractText(b *Blob) (string, error) {
	kind := normalizeMimeType(b)

	var (
		text string
		err  error
	)
	switch {
	case kind == mimePDF:
		text, err = extractPDF(b.Data)
	case kind == mimeDOCX:
		text, err = extractDOCX(b.Data)
	case strings.HasPrefix(kind, "text/"):
		text = string(b.Data)
		if kind == "text/html" {
			text, err = HTMLToText(text)
		}
	default:
		return "", &ExtractionError{MIMEType: kind, Cause: ErrUnsupportedType}
	}
	if err != nil {
		return "", &ExtractionError{MIMEType: kind, Cause: err}
	}

	return CleanText(text), nil
}

// normalizeMimeType trusts the declared type unless it is generic, in which
// case the payload is sniffed. DOCX files often arrive as application/zip.
func normalizeMimeType(b *Blob) string {
	declared := strings.ToLower(b.BaseType())
	switch declared {
	case "", "application/octet-stream", "application/zip", "application/x-zip-compressed":
		detected := mimetype.Detect(b.Data)
		if detected.Is(mimeDOCX) {
			return mimeDOCX
		}
		base, _, _ := strings.Cut(detected.String(), ";")
		return base
	default:
		return declared
	}
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()
		return stripDocxXML(rc)
	}

	return "", errors.New("word/document.xml not found")
}

func stripDocxXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var sb strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				sb.WriteString("\n")
			}
		}
	}
	return sb.String(), nil
}
