package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/intern-ease/internal/export"
	"github.com/jonathan/intern-ease/internal/rendering"
	"github.com/jonathan/intern-ease/internal/types"
	"github.com/spf13/cobra"
)

var (
	exportResult string
	exportOut    string
	exportPDF    bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render a saved result as text files and PDFs",
	Long: `Reads a result.json written by generate and writes resume, cover-letter and
email text files. With --pdf each document is also printed to an A4 PDF in
headless Chrome; the resume is limited to two pages.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportResult, "result", "", "Path to result.json")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output directory")
	exportCmd.Flags().BoolVar(&exportPDF, "pdf", false, "Also write PDFs (requires Chrome)")

	_ = exportCmd.MarkFlagRequired("result")
	_ = exportCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(exportCmd)
}

// exportPrinter is swapped out in tests
var exportPrinter = func(chromePath string) (export.PDFPrinter, func() error, error) {
	renderer, err := rendering.NewRenderer()
	if err != nil {
		return nil, nil, err
	}
	exporter := export.NewPDFExporter(renderer, export.PDFOptions{ChromePath: chromePath})
	return exporter, exporter.Close, nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	data, err := readResult(exportResult)
	if err != nil {
		return err
	}

	var printer export.PDFPrinter
	if exportPDF {
		cfg, err := loadConfig(false)
		if err != nil {
			return err
		}
		p, closePrinter, err := exportPrinter(cfg.ChromePath)
		if err != nil {
			return err
		}
		defer closePrinter() //nolint:errcheck
		printer = p
	}

	written, err := export.WriteAll(ctx, exportOut, data, printer)
	if err != nil {
		return err
	}
	for _, path := range written {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}

// readResult accepts the uniform {data, error} file or a bare result object
func readResult(path string) (*types.GenerationResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read result: %w", err)
	}

	var wrapped struct {
		Data  *types.GenerationResult `json:"data"`
		Error *string                 `json:"error"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to parse result: %w", err)
	}
	if wrapped.Error != nil {
		return nil, fmt.Errorf("result holds an error: %s", *wrapped.Error)
	}
	if wrapped.Data != nil {
		return wrapped.Data, nil
	}

	var bare types.GenerationResult
	if err := json.Unmarshal(raw, &bare); err != nil {
		return nil, fmt.Errorf("failed to parse result: %w", err)
	}
	if bare.OptimizedResume.FullName == "" && len(bare.CoverLetter.Body) == 0 && bare.Email == "" {
		return nil, errors.New("result file has no data")
	}
	return &bare, nil
}
