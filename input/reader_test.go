package input

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/simplifiedchinese"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadLines_UTF8(t *testing.T) {
	path := writeTemp(t, "urls.txt", []byte("example.com\nhttp://x.io\n"))

	lines, err := ReadLines(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (trailing newline yields an empty line)", len(lines))
	}
	if lines[0] != "example.com" || lines[1] != "http://x.io" {
		t.Errorf("lines = %q", lines)
	}
}

func TestReadLines_CRLFAndBOM(t *testing.T) {
	path := writeTemp(t, "urls.txt", []byte("\uFEFFexample.com\r\nx.io\r\n"))

	lines, err := ReadLines(path)
	if err != nil {
		t.Fatal(err)
	}
	if lines[0] != "example.com" {
		t.Errorf("BOM not stripped: %q", lines[0])
	}
	if lines[1] != "x.io" {
		t.Errorf("CRLF not handled: %q", lines[1])
	}
}

func TestReadLines_GBKFallback(t *testing.T) {
	// A legacy-encoded file: a Chinese comment line plus a URL.
	gbk, err := simplifiedchinese.GB18030.NewEncoder().Bytes([]byte("示例站点\nexample.com\n"))
	if err != nil {
		t.Fatal(err)
	}
	path := writeTemp(t, "legacy.txt", gbk)

	lines, err := ReadLines(path)
	if err != nil {
		t.Fatal(err)
	}
	if lines[0] != "示例站点" {
		t.Errorf("GB18030 line = %q, want %q", lines[0], "示例站点")
	}
	if lines[1] != "example.com" {
		t.Errorf("ASCII line = %q", lines[1])
	}
}

func TestReadLines_MissingFile(t *testing.T) {
	_, err := ReadLines(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
