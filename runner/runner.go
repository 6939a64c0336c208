// Package runner drives the sequential probe loop over an input batch.
package runner

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/use-agent/urlprobe/models"
	"github.com/use-agent/urlprobe/probe"
	"github.com/use-agent/urlprobe/report"
)

// ErrNoValidURLs is returned when no input line normalizes to a URL.
var ErrNoValidURLs = errors.New("runner: no valid URLs in input")

// target is one validated URL with its original 1-based line number.
type target struct {
	lineNum int
	url     string
}

// Runner processes validated URLs strictly in input order, pacing
// requests through a token bucket sized to the configured delay.
type Runner struct {
	processor *probe.Processor
	limiter   *rate.Limiter
	sinks     []report.Sink
}

// New builds a Runner. delay <= 0 disables pacing entirely.
func New(p *probe.Processor, delay time.Duration, sinks ...report.Sink) *Runner {
	r := &Runner{processor: p, sinks: sinks}
	if delay > 0 {
		// One token per delay interval, burst 1: the first request goes
		// out immediately, every following one waits its turn.
		r.limiter = rate.NewLimiter(rate.Every(delay), 1)
	}
	return r
}

// Run normalizes every line, probes the valid ones in order, and
// returns the results with a summary. Rejected lines are logged and
// skipped; per-URL failures become failed results. Only an input with
// zero valid URLs (or a cancelled context) fails the run itself.
func (r *Runner) Run(ctx context.Context, lines []string) ([]models.ProbeResult, models.Summary, error) {
	targets := validate(lines)
	if len(targets) == 0 {
		return nil, models.Summary{}, ErrNoValidURLs
	}

	slog.Info("starting batch", "urls", len(targets))

	results := make([]models.ProbeResult, 0, len(targets))
	for _, t := range targets {
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return results, summarize(results), err
			}
		}

		res := r.processor.Process(ctx, t.url)
		results = append(results, res)

		for _, sink := range r.sinks {
			if err := sink.Write(t.lineNum, res); err != nil {
				slog.Warn("output sink write failed", "error", err)
			}
		}
	}

	return results, summarize(results), nil
}

// validate normalizes all lines, keeping original order and line
// numbers. Blank lines are skipped silently; malformed ones are
// reported as warnings but never abort the run.
func validate(lines []string) []target {
	var targets []target
	for i, line := range lines {
		url, ok := probe.Normalize(line)
		if ok {
			targets = append(targets, target{lineNum: i + 1, url: url})
			continue
		}
		if strings.TrimSpace(line) != "" {
			slog.Warn("invalid URL format", "line", i+1, "content", strings.TrimSpace(line))
		}
	}
	return targets
}

func summarize(results []models.ProbeResult) models.Summary {
	s := models.Summary{Total: len(results)}
	for _, res := range results {
		if res.Success {
			s.Successful++
		}
	}
	return s
}
