package report

import (
	"strings"
	"testing"

	"github.com/use-agent/urlprobe/models"
)

func TestConsole_Write(t *testing.T) {
	var buf strings.Builder
	c := NewConsole(&buf, 100)

	c.Write(4, models.ProbeResult{
		URL:        "https://example.com",
		StatusCode: 200,
		Title:      "Example Domain",
		Success:    true,
	})

	out := buf.String()
	if !strings.Contains(out, "processing line 4: https://example.com") {
		t.Errorf("missing progress line:\n%s", out)
	}
	if !strings.Contains(out, "status: 200") {
		t.Errorf("missing status:\n%s", out)
	}
	if !strings.Contains(out, "title: Example Domain") {
		t.Errorf("missing title:\n%s", out)
	}
}

func TestConsole_TruncatesLongTitles(t *testing.T) {
	var buf strings.Builder
	c := NewConsole(&buf, 100)

	long := strings.Repeat("x", 150)
	c.Write(1, models.ProbeResult{URL: "https://example.com", StatusCode: 200, Title: long, Success: true})

	out := buf.String()
	if strings.Contains(out, long) {
		t.Error("title was not truncated for display")
	}
	if !strings.Contains(out, strings.Repeat("x", 100)+"...") {
		t.Errorf("want 100 chars plus ellipsis:\n%s", out)
	}
}

func TestConsole_FailureMarker(t *testing.T) {
	var buf strings.Builder
	c := NewConsole(&buf, 100)

	c.Write(2, models.ProbeResult{URL: "https://down.example", Title: "error: no route", Success: false})

	if !strings.Contains(buf.String(), "status: "+models.FailureMarker) {
		t.Errorf("failed probe must display the failure marker:\n%s", buf.String())
	}
}

func TestConsole_Summary(t *testing.T) {
	var buf strings.Builder
	c := NewConsole(&buf, 100)

	c.Summary(models.Summary{Total: 7, Successful: 5})

	if !strings.Contains(buf.String(), "5/7") {
		t.Errorf("summary = %q, want successful/total", buf.String())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"short unchanged", "hi", 100, "hi"},
		{"exact limit unchanged", "abcde", 5, "abcde"},
		{"over limit", "abcdef", 5, "abcde..."},
		{"multibyte runes", "五个字的标题啊", 5, "五个字的标..."},
		{"zero limit disables", "anything", 0, "anything"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.in, tt.limit); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
			}
		})
	}
}
