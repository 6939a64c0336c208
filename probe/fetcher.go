// Package probe implements the per-URL pipeline: normalization,
// resilient fetching, and title extraction.
package probe

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	tls "github.com/refraction-networking/utls"
	"golang.org/x/net/html/charset"

	"github.com/use-agent/urlprobe/config"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// maxBody caps how much of a response is read into memory.
const maxBody = 10 << 20

// Outcome is the result of one fully-retried fetch. Exactly one of the
// two shapes holds: a received response (StatusCode, Body, ContentType)
// or a transport failure (Failed with Err set).
type Outcome struct {
	StatusCode  int
	Body        []byte
	ContentType string
	Failed      bool
	Err         error
}

// RetryPolicy decides which fetch attempts are retried and how long to
// wait between them. Built once per run, immutable afterwards.
type RetryPolicy struct {
	// Retries is the maximum number of retry attempts after the first.
	Retries int

	// BackoffFactor scales the exponential delay between attempts:
	// BackoffFactor * 2^(attempt-1).
	BackoffFactor time.Duration

	retryableStatus  map[int]struct{}
	retryableMethods map[string]struct{}
}

// NewRetryPolicy builds the standard policy: statuses 429/500/502/503/504
// and methods HEAD/GET/OPTIONS are retryable.
func NewRetryPolicy(retries int, backoffFactor time.Duration) RetryPolicy {
	return RetryPolicy{
		Retries:       retries,
		BackoffFactor: backoffFactor,
		retryableStatus: map[int]struct{}{
			http.StatusTooManyRequests:     {},
			http.StatusInternalServerError: {},
			http.StatusBadGateway:          {},
			http.StatusServiceUnavailable:  {},
			http.StatusGatewayTimeout:      {},
		},
		retryableMethods: map[string]struct{}{
			http.MethodHead:    {},
			http.MethodGet:     {},
			http.MethodOptions: {},
		},
	}
}

// RetryableStatus reports whether a status code warrants a retry.
func (p RetryPolicy) RetryableStatus(code int) bool {
	_, ok := p.retryableStatus[code]
	return ok
}

// RetryableMethod reports whether a method may be retried at all.
func (p RetryPolicy) RetryableMethod(method string) bool {
	_, ok := p.retryableMethods[method]
	return ok
}

// Backoff returns the delay before the given retry attempt (1-based).
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	return p.BackoffFactor * (1 << (attempt - 1))
}

// chromeH1Spec is a Chrome-like TLS ClientHello with ALPN forced to
// http/1.1 only. Computed once at init time and reused per connection.
var chromeH1Spec tls.ClientHelloSpec

func init() {
	spec, err := tls.UTLSIdToSpec(tls.HelloChrome_Auto)
	if err != nil {
		return
	}
	// Strip h2 from ALPN so the server never negotiates HTTP/2, which
	// Go's http.Transport cannot frame over a utls connection.
	for i, ext := range spec.Extensions {
		if alpn, ok := ext.(*tls.ALPNExtension); ok {
			alpn.AlpnProtocols = []string{"http/1.1"}
			spec.Extensions[i] = alpn
			break
		}
	}
	chromeH1Spec = spec
}

// Fetcher performs HTTP GETs with a Chrome TLS fingerprint and the
// configured retry policy. One Fetcher (and its connection pool) is
// shared across every URL of a run.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	policy  RetryPolicy
}

// NewFetcher builds a Fetcher from the probe configuration. When
// cfg.InsecureTLS is set, certificate verification is skipped so that
// self-signed and misconfigured targets can still be probed.
func NewFetcher(cfg config.ProbeConfig) *Fetcher {
	insecure := cfg.InsecureTLS
	transport := &http.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			dialer := &net.Dialer{Timeout: cfg.Timeout}
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			host, _, _ := net.SplitHostPort(addr)
			tlsConn := tls.UClient(conn, &tls.Config{
				ServerName:         host,
				InsecureSkipVerify: insecure,
			}, tls.HelloCustom)
			if err := tlsConn.ApplyPreset(&chromeH1Spec); err != nil {
				conn.Close()
				return nil, fmt.Errorf("fetcher: apply tls spec: %w", err)
			}
			if err := tlsConn.HandshakeContext(ctx); err != nil {
				conn.Close()
				return nil, err
			}
			return tlsConn, nil
		},
		ForceAttemptHTTP2: false,
	}

	return &Fetcher{
		client: &http.Client{
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		timeout: cfg.Timeout,
		policy:  NewRetryPolicy(cfg.Retries, cfg.BackoffFactor),
	}
}

// Fetch GETs the URL, following redirects, retrying per the policy.
// It never returns an error: after retries are exhausted the last
// outcome is returned, with transport exhaustion folded into a Failed
// Outcome. Each attempt gets its own timeout.
func (f *Fetcher) Fetch(ctx context.Context, url string) Outcome {
	var last Outcome

	for attempt := 0; attempt <= f.policy.Retries; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, f.policy.Backoff(attempt)); err != nil {
				last.Failed = true
				last.Err = err
				return last
			}
		}

		out, retryable := f.attempt(ctx, url)
		last = out
		if !retryable {
			return last
		}
	}

	return last
}

// attempt performs a single GET. The second return value reports
// whether the outcome warrants another try.
func (f *Fetcher) attempt(ctx context.Context, url string) (Outcome, bool) {
	attemptCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, url, nil)
	if err != nil {
		return Outcome{Failed: true, Err: fmt.Errorf("fetcher: build request: %w", err)}, false
	}

	// Browser-like headers reduce trivial bot-blocking.
	req.Header.Set("User-Agent", chromeUA)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		out := Outcome{Failed: true, Err: err}
		return out, f.policy.RetryableMethod(http.MethodGet)
	}
	defer resp.Body.Close()

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))

	if f.policy.RetryableStatus(resp.StatusCode) {
		// Drain so the connection can be reused for the retry.
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return Outcome{StatusCode: resp.StatusCode, ContentType: contentType}, true
	}

	// Decode the body to UTF-8 using the declared charset (or sniffing),
	// so downstream title extraction sees sane text.
	reader, err := charset.NewReader(io.LimitReader(resp.Body, maxBody), contentType)
	if err != nil {
		reader = io.LimitReader(resp.Body, maxBody)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		// A truncated body is still a received response; keep what we got.
		body = nil
	}

	return Outcome{
		StatusCode:  resp.StatusCode,
		Body:        body,
		ContentType: contentType,
	}, false
}

// sleepCtx blocks for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
