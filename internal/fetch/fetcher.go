package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"
	"unicode/utf8"

	"hls-fetcher/internal/platform/metrics"

	"github.com/google/renameio/v2"
)

// DefaultTimeout bounds a single GET including the body read.
const DefaultTimeout = 30 * time.Second

// redirectLimit is the maximum number of redirect hops followed per GET.
const redirectLimit = 10

var (
	// ErrRedirectLimit is returned when a GET exceeds redirectLimit hops.
	ErrRedirectLimit = errors.New("redirect limit exceeded")

	// ErrRedirectCycle is returned when a redirect points back at a URL
	// already visited in the same chain.
	ErrRedirectCycle = errors.New("redirect cycle detected")
)

// Fetcher downloads remote resources over HTTP. Fetch is idempotent per
// destination path, so an interrupted run can be resumed by re-invoking
// the same command.
type Fetcher struct {
	client  *http.Client
	log     *slog.Logger
	metrics *metrics.Metrics
}

// New returns a Fetcher with the given per-request timeout and optional
// extra request headers. Metrics may be nil to disable recording.
func New(timeout time.Duration, headers map[string]string, log *slog.Logger, m *metrics.Metrics) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var transport http.RoundTripper = http.DefaultTransport
	if len(headers) > 0 {
		transport = &headerTransport{headers: headers, base: http.DefaultTransport}
	}

	return &Fetcher{
		client: &http.Client{
			Timeout:       timeout,
			Transport:     transport,
			CheckRedirect: checkRedirect,
		},
		log:     log,
		metrics: m,
	}
}

// checkRedirect enforces the hop limit and rejects cycles.
func checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= redirectLimit {
		return ErrRedirectLimit
	}
	target := req.URL.String()
	for _, prev := range via {
		if prev.URL.String() == target {
			return ErrRedirectCycle
		}
	}
	return nil
}

// Fetch downloads url into destPath. If a regular file already exists at
// destPath the call succeeds without network activity. The response body
// is streamed into a pending sibling file and atomically renamed into
// place, so no partially-written file is ever observable at destPath.
func (f *Fetcher) Fetch(ctx context.Context, url, destPath string) error {
	if fi, err := os.Stat(destPath); err == nil && fi.Mode().IsRegular() {
		f.log.Debug("segment already present, skipping", slog.String("path", destPath))
		return nil
	}

	resp, err := f.get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	pending, err := renameio.NewPendingFile(destPath)
	if err != nil {
		return fmt.Errorf("create pending file for %s: %w", destPath, err)
	}
	defer func() {
		// No-op once the file has been committed.
		if err := pending.Cleanup(); err != nil {
			f.log.Debug("cleanup pending file", slog.String("error", err.Error()))
		}
	}()

	n, err := io.Copy(pending, resp.Body)
	if err != nil {
		return fmt.Errorf("write %s: %w", destPath, err)
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("commit %s: %w", destPath, err)
	}

	if f.metrics != nil {
		f.metrics.IncSegmentsFetched()
		f.metrics.AddSegmentBytes(n)
	}
	return nil
}

// FetchText downloads url and returns the body as text. It fails on
// bodies that are not valid UTF-8, which is the one hard parse failure
// the manifest layer does not tolerate.
func (f *Fetcher) FetchText(ctx context.Context, url string) (string, error) {
	resp, err := f.get(ctx, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", url, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("manifest at %s is not decodable text", url)
	}
	return string(data), nil
}

// get issues a single GET and classifies the response: any non-2xx
// status is an error.
func (f *Fetcher) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("get %s: unexpected status %s", url, resp.Status)
	}
	return resp, nil
}
