package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/intern-ease/internal/export"
	"github.com/jonathan/intern-ease/internal/fetch"
	"github.com/jonathan/intern-ease/internal/ingestion"
	"github.com/jonathan/intern-ease/internal/logging"
	"github.com/jonathan/intern-ease/internal/observability"
	"github.com/jonathan/intern-ease/internal/pipeline"
	"github.com/jonathan/intern-ease/internal/types"
	"github.com/spf13/cobra"
)

// ResultFileName is the uniform {data, error} result written by generate
const ResultFileName = "result.json"

var (
	generateInput   string
	generateResume  string
	generateOut     string
	generateJobURL  string
	generateBrowser bool
	generateVerbose bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a resume, cover letter and email from an applicant file",
	Long: `Runs the three generation flows for one applicant and writes result.json plus
resume.txt, cover-letter.txt and email.txt into the output directory.

The input is a JSON object with the form fields (name, email, phone,
graduationYear, region, skills, projects, resumeDataUri, jobDescription).
--resume reads a resume file and replaces resumeDataUri. --job-url fetches the
posting and replaces jobDescription.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateInput, "input", "i", "", "Path to applicant JSON file")
	generateCmd.Flags().StringVarP(&generateResume, "resume", "r", "", "Path to a resume file (PDF, DOCX, TXT or image)")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Output directory")
	generateCmd.Flags().StringVar(&generateJobURL, "job-url", "", "URL of the job posting to use as the job description")
	generateCmd.Flags().BoolVar(&generateBrowser, "use-browser", false, "Render the posting in headless Chrome when needed (requires Chrome)")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print progress for each stage")

	_ = generateCmd.MarkFlagRequired("input")
	_ = generateCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	form, err := readApplicant(generateInput, generateResume)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}

	if generateJobURL != "" {
		form.JobDescription, err = ingestion.JobDescriptionFromURL(ctx, generateJobURL, ingestion.JobURLOptions{
			UseBrowser: generateBrowser,
			Browser:    fetch.BrowserOptions{ChromePath: cfg.ChromePath},
		})
		if err != nil {
			return fmt.Errorf("failed to read job posting: %w", err)
		}
	}

	log := logging.New(cfg.LogLevel)
	defer log.Sync() //nolint:errcheck

	orchestrator, client, err := newOrchestrator(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer client.Close()

	opts := pipeline.RunOptions{}
	printer := observability.NewPrinter(cmd.ErrOrStderr())
	if generateVerbose {
		opts.OnProgress = printer.PrintProgress
	}

	data, runErr := orchestrator.Execute(ctx, form, opts)
	result := pipeline.ResultOf(data, runErr)
	if generateVerbose {
		printer.PrintResult(result)
	}

	if err := os.MkdirAll(generateOut, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := writeResult(filepath.Join(generateOut, ResultFileName), result); err != nil {
		return err
	}
	if !result.OK() {
		return fmt.Errorf("%s", result.ErrorMessage())
	}

	written, err := export.WriteAll(ctx, generateOut, data, nil)
	if err != nil {
		return err
	}
	for _, path := range written {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}

func readApplicant(inputPath, resumePath string) (types.ApplicantInput, error) {
	var form types.ApplicantInput

	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return form, fmt.Errorf("failed to read applicant file: %w", err)
	}
	if err := json.Unmarshal(raw, &form); err != nil {
		return form, fmt.Errorf("failed to parse applicant file: %w", err)
	}

	if resumePath != "" {
		data, err := os.ReadFile(resumePath)
		if err != nil {
			return form, fmt.Errorf("failed to read resume: %w", err)
		}
		form.ResumeDataURI = ingestion.EncodeDataURI("", data)
	}
	return form, nil
}

func writeResult(path string, result types.Result) error {
	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
