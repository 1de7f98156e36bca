package fetch

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the shortest extracted text accepted from a plain
// HTTP fetch before falling back to the browser.
const MinContentLength = 500

// NeedsBrowser reports whether the extracted text is too short to be a
// rendered posting.
func NeedsBrowser(extracted string) bool {
	return len(strings.TrimSpace(extracted)) < MinContentLength
}

// BrowserOptions configures headless rendering
type BrowserOptions struct {
	ChromePath string
	Timeout    time.Duration
	// Settle is how long scripts get to render after the body is ready
	Settle time.Duration
}

// Render loads rawURL in headless Chrome and returns the rendered HTML.
func Render(ctx context.Context, rawURL string, opts BrowserOptions) (string, error) {
	if err := validateURL(rawURL); err != nil {
		return "", err
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Settle <= 0 {
		opts.Settle = 3 * time.Second
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(DefaultUserAgent),
	)
	if opts.ChromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ChromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()
	browserCtx, cancel := context.WithTimeout(browserCtx, opts.Timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(opts.Settle),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "browser rendering failed", Cause: err}
	}
	return html, nil
}
