package models

import "strconv"

// FailureMarker is the status string reported for probes that produced no
// HTTP response at all (DNS failure, connection refused, timeout).
const FailureMarker = "request failed"

// ProbeResult is the outcome of probing a single URL.
// It is created once by the processor and never mutated afterwards.
type ProbeResult struct {
	// URL is the normalized URL that was probed.
	URL string `json:"url"`

	// StatusCode is the final HTTP status after following redirects.
	// Zero when the probe never received a response.
	StatusCode int `json:"status_code"`

	// Title is the extracted page title, a placeholder for non-HTML or
	// title-less responses, or an error description for failed probes.
	Title string `json:"title"`

	// Success is true whenever an HTTP response was received, whatever
	// its status code. Only transport-level failure sets it to false.
	Success bool `json:"success"`
}

// Status renders the probe status for display: the numeric code for
// completed probes, the failure marker otherwise.
func (r ProbeResult) Status() string {
	if !r.Success {
		return FailureMarker
	}
	return strconv.Itoa(r.StatusCode)
}

// Summary aggregates a finished batch run.
type Summary struct {
	// Total is the number of URLs processed.
	Total int `json:"total"`

	// Successful counts probes that received an HTTP response.
	Successful int `json:"successful"`
}
