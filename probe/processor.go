package probe

import (
	"context"
	"fmt"
	"strings"

	"github.com/use-agent/urlprobe/models"
)

// Processor turns one normalized URL into one ProbeResult. Every error
// along the way becomes data in the result; Process never fails.
type Processor struct {
	fetcher *Fetcher
}

// NewProcessor wraps a shared Fetcher.
func NewProcessor(f *Fetcher) *Processor {
	return &Processor{fetcher: f}
}

// Process probes a single URL. A probe counts as successful whenever an
// HTTP response was received, regardless of its status code; only a
// transport-level failure (no response at all) marks the result failed.
func (p *Processor) Process(ctx context.Context, url string) models.ProbeResult {
	out := p.fetcher.Fetch(ctx, url)

	if out.Failed {
		return models.ProbeResult{
			URL:     url,
			Title:   fmt.Sprintf("error: %s", out.Err),
			Success: false,
		}
	}

	var title string
	if strings.Contains(out.ContentType, "text/html") {
		title = ExtractTitle(out.Body)
	} else {
		title = fmt.Sprintf("non-HTML content: %s", out.ContentType)
	}

	return models.ProbeResult{
		URL:        url,
		StatusCode: out.StatusCode,
		Title:      title,
		Success:    true,
	}
}
