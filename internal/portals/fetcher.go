package portals

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	fetcherUserAgent = "govscout/tender-scout (+https://github.com/govscout/tender-scout)"
	contentEncoding  = "gzip, deflate, br"

	// Linked tender pages can be arbitrarily large; only the beginning is
	// useful for extraction anyway.
	maxDocumentBytes = 256 << 10
)

// Fetcher retrieves the content of a linked tender page so the enricher has
// real text to work with instead of the candidate's one-line summary.
type Fetcher struct {
	HTTPClient *http.Client
	UserAgent  string
	logger     *zap.Logger
}

func NewFetcher(logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		UserAgent: fetcherUserAgent,
		logger:    logger,
	}
}

// Fetch downloads the document at the given URL and returns its body as
// text, bounded to the first chunk. Failures are ordinary errors here; the
// caller degrades to the candidate's own text.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	req.Header.Set("User-Agent", f.UserAgent)
	req.Header.Set("Accept-Encoding", contentEncoding)

	f.logger.Debug("fetching tender document", zap.String("url", url))

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad status: %s", resp.Status)
	}

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return "", err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	data, err := io.ReadAll(io.LimitReader(reader, maxDocumentBytes))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(data)), nil
}
