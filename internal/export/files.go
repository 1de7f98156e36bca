package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/intern-ease/internal/rendering"
	"github.com/jonathan/intern-ease/internal/types"
	"golang.org/x/sync/errgroup"
)

// Content types for downloads
const (
	ContentTypeText = "text/plain; charset=utf-8"
	ContentTypePDF  = "application/pdf"
)

// File is a named download
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// TextFile wraps content as a UTF-8 text download
func TextFile(name, content string) File {
	return File{Name: name, ContentType: ContentTypeText, Data: []byte(content)}
}

// DocumentTextFile renders one document as a .txt download
func DocumentTextFile(doc rendering.Document, result *types.GenerationResult) File {
	return TextFile(doc.FileName("txt"), rendering.DocumentText(doc, result))
}

// PDFPrinter renders a document to PDF. *PDFExporter implements it.
type PDFPrinter interface {
	PDF(ctx context.Context, doc rendering.Document, result *types.GenerationResult) ([]byte, error)
}

// DocumentPDFFile renders one document as a .pdf download
func DocumentPDFFile(ctx context.Context, printer PDFPrinter, doc rendering.Document, result *types.GenerationResult) (File, error) {
	data, err := printer.PDF(ctx, doc, result)
	if err != nil {
		return File{}, err
	}
	return File{Name: doc.FileName("pdf"), ContentType: ContentTypePDF, Data: data}, nil
}

// WriteAll writes every document into dir as text and, when printer is not
// nil, as PDF. Files are produced concurrently; the first failure cancels the rest.
func WriteAll(ctx context.Context, dir string, result *types.GenerationResult, printer PDFPrinter) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	docs := rendering.Documents()
	written := make([]string, 0, len(docs)*2)
	paths := make([][]string, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	for i, doc := range docs {
		g.Go(func() error {
			files := []File{DocumentTextFile(doc, result)}
			if printer != nil {
				pdf, err := DocumentPDFFile(gctx, printer, doc, result)
				if err != nil {
					return err
				}
				files = append(files, pdf)
			}
			for _, f := range files {
				path := filepath.Join(dir, f.Name)
				if err := os.WriteFile(path, f.Data, 0o644); err != nil {
					return &ExportError{Document: string(doc), Message: "failed to write " + f.Name, Cause: err}
				}
				paths[i] = append(paths[i], path)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, p := range paths {
		written = append(written, p...)
	}
	return written, nil
}
