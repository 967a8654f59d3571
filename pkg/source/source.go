// Package source reads input documents from local files, standard input or
// HTTP(S) URLs.
//
// Remote documents are fetched with retries on network failures and 5xx
// responses, and kept in a [cache.Cache] for [cache.TTLSource] so repeated
// runs against the same URL do not hit the network.
//
//	loader := source.NewLoader(fileCache, logger)
//	svg, err := loader.Load(ctx, "https://example.com/logo.svg")
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/svgreveal/pkg/buildinfo"
	"github.com/matzehuels/svgreveal/pkg/cache"
	"github.com/matzehuels/svgreveal/pkg/errors"
	"github.com/matzehuels/svgreveal/pkg/observability"
)

// Stdin is the source name that stands for standard input.
const Stdin = "-"

// DefaultTimeout bounds a single HTTP request.
const DefaultTimeout = 20 * time.Second

// Loader resolves source names to document bytes.
type Loader struct {
	HTTP    *http.Client
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
	Stdin   io.Reader
	Refresh bool // skip cached downloads
}

// NewLoader creates a Loader with default HTTP client and key layout.
// A nil cache disables caching of downloads.
func NewLoader(c cache.Cache, logger *log.Logger) *Loader {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{
		HTTP:   &http.Client{Timeout: DefaultTimeout},
		Cache:  c,
		Keyer:  cache.NewDefaultKeyer(),
		Logger: logger,
		Stdin:  os.Stdin,
	}
}

// IsRemote reports whether src is an HTTP(S) URL.
func IsRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Load returns the document named by src. Inputs larger than
// [errors.MaxSVGSize] are cut short so validation reports them as too large.
func (l *Loader) Load(ctx context.Context, src string) ([]byte, error) {
	switch {
	case src == Stdin:
		data, err := io.ReadAll(io.LimitReader(l.Stdin, errors.MaxSVGSize+1))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read standard input")
		}
		return data, nil
	case IsRemote(src):
		return l.fetch(ctx, src)
	default:
		data, err := os.ReadFile(src)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found: %s", src)
			}
			return nil, fmt.Errorf("read %s: %w", src, err)
		}
		return data, nil
	}
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	key := l.Keyer.SourceKey(url)
	hooks := observability.Cache()

	if !l.Refresh {
		if data, ok, _ := l.Cache.Get(ctx, key); ok {
			hooks.OnCacheHit(ctx, "source")
			l.Logger.Debug("source cache hit", "url", url)
			return data, nil
		}
		hooks.OnCacheMiss(ctx, "source")
	}

	var data []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		data, err = l.get(ctx, url)
		return err
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "download %s", url)
		}
		return nil, err
	}
	l.Logger.Info("downloaded", "url", url, "bytes", len(data))

	if len(data) <= errors.MaxSVGSize {
		if err := l.Cache.Set(ctx, key, data, cache.TTLSource); err != nil {
			l.Logger.Warn("cache write failed", "url", url, "error", err)
		} else {
			hooks.OnCacheSet(ctx, "source", len(data))
		}
	}
	return data, nil
}

func (l *Loader) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid url %s", url)
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	req.Header.Set("Accept", "image/svg+xml, text/xml;q=0.9, */*;q=0.1")

	resp, err := l.HTTP.Do(req)
	if err != nil {
		return nil, cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
	}
	defer resp.Body.Close()

	if err := checkStatus(url, resp.StatusCode); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, errors.MaxSVGSize+1))
	if err != nil {
		return nil, cache.Retryable(fmt.Errorf("%w: read body: %v", cache.ErrNetwork, err))
	}
	return data, nil
}

func checkStatus(url string, code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "%s: not found", url)
	case code == http.StatusTooManyRequests || code >= 500:
		return cache.Retryable(fmt.Errorf("%w: %s: status %d", cache.ErrNetwork, url, code))
	default:
		return errors.New(errors.ErrCodeInvalidInput, "%s: status %d", url, code)
	}
}
