// Package imageref turns image files, bytes and remote URLs into the opaque
// data URL references stored on image notes.
package imageref

import (
	"context"
	"encoding/base64"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/auteur/pkg/cache"
	"github.com/matzehuels/auteur/pkg/errors"
	"github.com/matzehuels/auteur/pkg/httputil"
)

// MaxSize is the largest image accepted, in bytes.
const MaxSize = 10 << 20

// FromBytes encodes data as a data URL. An empty mimeType is sniffed from
// the content. Only image types are accepted.
func FromBytes(mimeType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "image is empty")
	}
	if len(data) > MaxSize {
		return "", errors.New(errors.ErrCodeInvalidInput, "image exceeds %d bytes", MaxSize)
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return "", errors.New(errors.ErrCodeInvalidInput, "not an image: %s", mimeType)
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// FromFile reads an image from disk. The type comes from the extension and
// falls back to content sniffing.
func FromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read image %s", path)
	}
	return FromBytes(mime.TypeByExtension(strings.ToLower(filepath.Ext(path))), data)
}

// Decode splits a data URL into its type and bytes.
func Decode(ref string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(ref, "data:")
	if !ok {
		return "", nil, errors.New(errors.ErrCodeInvalidFormat, "not a data URL")
	}
	mimeType, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return "", nil, errors.New(errors.ErrCodeInvalidFormat, "data URL is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode data URL")
	}
	return mimeType, data, nil
}

// Fetcher downloads remote images, retrying transient failures and caching
// the resulting references.
type Fetcher struct {
	client *httputil.Client
	cache  cache.Cache
	keyer  cache.Keyer
}

// FetcherOption configures a [Fetcher].
type FetcherOption func(*Fetcher)

// WithCache caches fetched references.
func WithCache(c cache.Cache, k cache.Keyer) FetcherOption {
	return func(f *Fetcher) {
		f.cache = c
		if k != nil {
			f.keyer = k
		}
	}
}

// WithClient sets the HTTP client.
func WithClient(c *httputil.Client) FetcherOption {
	return func(f *Fetcher) { f.client = c }
}

// NewFetcher returns a fetcher without caching.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{cache: cache.NewNullCache(), keyer: cache.NewDefaultKeyer()}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = httputil.NewClient(httputil.WithMaxBody(MaxSize))
	}
	return f
}

// FromURL downloads url and returns it as a data URL.
func (f *Fetcher) FromURL(ctx context.Context, url string) (string, error) {
	if err := errors.ValidateURL(url); err != nil {
		return "", err
	}
	key := f.keyer.ImageKey(url)
	if data, hit, err := f.cache.Get(ctx, key); err == nil && hit {
		return string(data), nil
	}

	var resp *httputil.Response
	err := httputil.RetryWithBackoff(ctx, func() error {
		var err error
		resp, err = f.client.Get(ctx, url)
		return err
	})
	if err != nil {
		return "", err
	}
	ref, err := FromBytes(resp.ContentType, resp.Body)
	if err != nil {
		return "", err
	}
	_ = f.cache.Set(ctx, key, []byte(ref), cache.TTLImage)
	return ref, nil
}

// Resolve accepts a data URL, a local path or an http(s) URL and returns a
// data URL.
func (f *Fetcher) Resolve(ctx context.Context, src string) (string, error) {
	switch {
	case strings.HasPrefix(src, "data:"):
		if _, _, err := Decode(src); err != nil {
			return "", err
		}
		return src, nil
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return f.FromURL(ctx, src)
	default:
		return FromFile(src)
	}
}
