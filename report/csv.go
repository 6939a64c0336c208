package report

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/use-agent/urlprobe/models"
)

// CSVSink appends one row per processed URL, flushing after every row
// so a killed run still leaves a valid CSV prefix on disk.
type CSVSink struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSVSink creates (or truncates) path and writes the header row.
func NewCSVSink(path string) (*CSVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("report: create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"URL", "Status", "Title"}); err != nil {
		f.Close()
		return nil, fmt.Errorf("report: write csv header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, fmt.Errorf("report: flush csv header: %w", err)
	}

	return &CSVSink{file: f, writer: w}, nil
}

func (s *CSVSink) Write(_ int, res models.ProbeResult) error {
	if err := s.writer.Write([]string{res.URL, res.Status(), res.Title}); err != nil {
		return fmt.Errorf("report: write csv row: %w", err)
	}
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		return fmt.Errorf("report: flush csv row: %w", err)
	}
	return nil
}

func (s *CSVSink) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}
