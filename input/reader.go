// Package input loads the URL list file, tolerating legacy encodings.
package input

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
)

// ReadLines reads the file at path and returns its lines in order.
// The content is decoded as UTF-8 when valid; otherwise a GB18030
// decode is attempted (URL lists exported from legacy Windows tools
// commonly arrive in GBK). If both fail, the read error is fatal to
// the run.
func ReadLines(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("input: read %s: %w", path, err)
	}

	text, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("input: decode %s: %w", path, err)
	}

	text = strings.TrimPrefix(text, "\uFEFF")
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	return lines, nil
}

func decode(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}

	decoded, err := simplifiedchinese.GB18030.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("not valid UTF-8 and GB18030 decode failed: %w", err)
	}
	if bytes.ContainsRune(decoded, utf8.RuneError) {
		return "", fmt.Errorf("not decodable as UTF-8 or GB18030")
	}
	return string(decoded), nil
}
