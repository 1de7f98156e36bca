package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board.
type Platform string

// Known boards
const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformAshby      Platform = "ashby"
	PlatformHandshake  Platform = "handshake"
	PlatformUnknown    Platform = "unknown"
)

// DetectPlatform identifies the job board from a URL host.
func DetectPlatform(rawURL string) Platform {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())

	switch {
	case strings.HasSuffix(host, "greenhouse.io"):
		return PlatformGreenhouse
	case strings.HasSuffix(host, "lever.co"):
		return PlatformLever
	case strings.HasSuffix(host, "workday.com"), strings.HasSuffix(host, "myworkdayjobs.com"):
		return PlatformWorkday
	case strings.HasSuffix(host, "ashbyhq.com"):
		return PlatformAshby
	case strings.HasSuffix(host, "joinhandshake.com"):
		return PlatformHandshake
	default:
		return PlatformUnknown
	}
}

// RendersClientSide reports boards whose postings need a browser to show any text.
func (p Platform) RendersClientSide() bool {
	return p == PlatformWorkday || p == PlatformAshby || p == PlatformHandshake
}

// ContentSelectors returns the main-content selectors for the board, most specific first.
func (p Platform) ContentSelectors() []string {
	switch p {
	case PlatformGreenhouse:
		return []string{".job__description.body", ".job__description", "#content", ".job-post-container"}
	case PlatformLever:
		return []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"}
	case PlatformWorkday:
		return []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']", ".job-description"}
	case PlatformAshby:
		return []string{".ashby-job-posting-description", "[class*='_descriptionText']", "main"}
	case PlatformHandshake:
		return []string{"[data-hook='job-description']", ".job-description", "main"}
	default:
		return JobPostingSelectors()
	}
}

// NoiseSelectors returns elements to strip before extraction: application
// forms, EEO disclosures, share and cookie widgets.
func (p Platform) NoiseSelectors() []string {
	common := []string{
		"form",
		"#application-form",
		".application-form",
		".apply-button-container",
		".eeo-statement",
		".eeo-section",
		".voluntary-disclosure",
		".self-identification",
		".social-share",
		".share-buttons",
		".cookie-consent",
		".gdpr-notice",
	}

	switch p {
	case PlatformGreenhouse:
		return append(common, ".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply")
	case PlatformLever:
		return append(common, ".apply-section", ".lever-application-form", ".posting-apply")
	case PlatformWorkday:
		return append(common, "[data-automation-id='applyButton']", ".WDAF")
	default:
		return common
	}
}
