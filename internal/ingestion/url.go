package ingestion

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/intern-ease/internal/fetch"
)

// ErrEmptyPosting is returned when a fetched page holds no usable text
var ErrEmptyPosting = errors.New("no job description text found on page")

// JobURLOptions controls how a posting URL is read
type JobURLOptions struct {
	Fetch *fetch.Options
	// UseBrowser renders the page in headless Chrome when the plain fetch
	// yields too little text or the board is known to render client-side.
	UseBrowser bool
	Browser    fetch.BrowserOptions
}

// JobDescriptionFromURL fetches a posting and returns its cleaned main text,
// ready to use as the job description field.
func JobDescriptionFromURL(ctx context.Context, rawURL string, opts JobURLOptions) (string, error) {
	platform := fetch.DetectPlatform(rawURL)
	contentSelectors := platform.ContentSelectors()
	noiseSelectors := platform.NoiseSelectors()

	page, err := fetch.Get(ctx, rawURL, opts.Fetch)
	if err != nil {
		return "", err
	}
	text, err := fetch.ExtractMainText(page.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", fmt.Errorf("failed to extract posting from %s: %w", rawURL, err)
	}

	if opts.UseBrowser && (platform.RendersClientSide() || fetch.NeedsBrowser(text)) {
		html, err := fetch.Render(ctx, rawURL, opts.Browser)
		if err != nil {
			// the HTTP text is still better than nothing
			if text == "" {
				return "", err
			}
		} else if rendered, err := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...); err == nil && len(rendered) > len(text) {
			text = rendered
		}
	}

	text = CleanText(text)
	if text == "" {
		return "", ErrEmptyPosting
	}
	return text, nil
}
