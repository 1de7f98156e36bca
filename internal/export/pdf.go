package export

import (
	"context"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/jonathan/intern-ease/internal/rendering"
	"github.com/jonathan/intern-ease/internal/types"
)

// A4 paper in inches, as Chrome's print API expects
const (
	A4WidthInches  = 8.27
	A4HeightInches = 11.69
	MarginInches   = 1.0 // 25.4 mm
)

// ResumeMaxPages caps the resume; other documents are unlimited
const ResumeMaxPages = 2

// DefaultTimeout bounds a single PDF render
const DefaultTimeout = 30 * time.Second

// PrintOptions are the page settings for one document
type PrintOptions struct {
	PaperWidth  float64
	PaperHeight float64
	Margin      float64
	PageRanges  string // empty prints every page
}

// PrintOptionsFor returns A4 with one-inch margins, with the resume limited
// to its first two pages.
func PrintOptionsFor(doc rendering.Document) PrintOptions {
	opts := PrintOptions{
		PaperWidth:  A4WidthInches,
		PaperHeight: A4HeightInches,
		Margin:      MarginInches,
	}
	if doc == rendering.DocResume {
		opts.PageRanges = "1-2"
	}
	return opts
}

func (o PrintOptions) params() *page.PrintToPDFParams {
	p := page.PrintToPDF().
		WithPaperWidth(o.PaperWidth).
		WithPaperHeight(o.PaperHeight).
		WithMarginTop(o.Margin).
		WithMarginBottom(o.Margin).
		WithMarginLeft(o.Margin).
		WithMarginRight(o.Margin).
		WithPrintBackground(true).
		WithPreferCSSPageSize(false)
	if o.PageRanges != "" {
		p = p.WithPageRanges(o.PageRanges)
	}
	return p
}

// PDFOptions configures the headless browser
type PDFOptions struct {
	ChromePath string // empty uses chromedp's lookup
	Timeout    time.Duration
}

// PDFExporter prints document pages to PDF in a shared headless Chrome.
// Each export runs in its own tab, so concurrent calls are safe.
type PDFExporter struct {
	renderer *rendering.Renderer
	timeout  time.Duration

	allocCtx    context.Context
	browserCtx  context.Context
	cancelAlloc context.CancelFunc
	cancel      context.CancelFunc
	startOnce   sync.Once
	startErr    error
}

// NewPDFExporter prepares a browser allocator. Chrome starts on first use.
func NewPDFExporter(renderer *rendering.Renderer, opts PDFOptions) *PDFExporter {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if opts.ChromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ChromePath))
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)

	return &PDFExporter{
		renderer:    renderer,
		timeout:     timeout,
		allocCtx:    allocCtx,
		browserCtx:  browserCtx,
		cancelAlloc: cancelAlloc,
		cancel:      cancel,
	}
}

// PDF renders one document to PDF bytes
func (e *PDFExporter) PDF(ctx context.Context, doc rendering.Document, result *types.GenerationResult) ([]byte, error) {
	html, err := e.renderer.DocumentHTML(doc, result)
	if err != nil {
		return nil, &ExportError{Document: string(doc), Message: "failed to render page", Cause: err}
	}

	e.startOnce.Do(func() {
		// The first Run on the browser context launches Chrome
		e.startErr = chromedp.Run(e.browserCtx)
	})
	if e.startErr != nil {
		return nil, &ExportError{Document: string(doc), Message: "failed to start browser", Cause: e.startErr}
	}

	tabCtx, cancelTab := chromedp.NewContext(e.browserCtx)
	defer cancelTab()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, e.timeout)
	defer cancelTimeout()
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	var pdf []byte
	err = chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := PrintOptionsFor(doc).params().Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, &ExportError{Document: string(doc), Message: "failed to print PDF", Cause: err}
	}
	return pdf, nil
}

// Close shuts the browser down
func (e *PDFExporter) Close() error {
	e.cancel()
	e.cancelAlloc()
	return nil
}
