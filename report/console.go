// Package report renders probe results to the console and to CSV.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/use-agent/urlprobe/models"
)

// Sink receives one result per processed URL, in input order.
type Sink interface {
	Write(lineNum int, res models.ProbeResult) error
	Close() error
}

const dividerWidth = 80

// Console renders a human-readable block per URL plus a final summary.
type Console struct {
	out        io.Writer
	titleLimit int
}

// NewConsole writes to out, truncating titles longer than titleLimit
// runes for display. The full title is never altered in the result.
func NewConsole(out io.Writer, titleLimit int) *Console {
	return &Console{out: out, titleLimit: titleLimit}
}

func (c *Console) Write(lineNum int, res models.ProbeResult) error {
	fmt.Fprintf(c.out, "processing line %d: %s\n", lineNum, res.URL)
	fmt.Fprintf(c.out, "  status: %s\n", res.Status())
	fmt.Fprintf(c.out, "  title: %s\n", truncate(res.Title, c.titleLimit))
	fmt.Fprintln(c.out, strings.Repeat("-", dividerWidth))
	return nil
}

func (c *Console) Close() error { return nil }

// Summary prints the final successful/total line.
func (c *Console) Summary(s models.Summary) {
	fmt.Fprintf(c.out, "\ndone: %d/%d successful\n", s.Successful, s.Total)
}

// truncate shortens s to limit runes with an ellipsis marker.
// Counting runes, not bytes, keeps multi-byte titles intact.
func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
