package imagefetch

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"net/http"
	"net/url"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/influencerdeck/influencerdeck/pkg/cache"
	"github.com/influencerdeck/influencerdeck/pkg/errors"
	"github.com/influencerdeck/influencerdeck/pkg/observability"
)

const (
	// DefaultTimeout bounds a single image download.
	DefaultTimeout = 10 * time.Second

	// MaxImageBytes caps how much of a response body is read.
	MaxImageBytes = 16 << 20

	userAgent = "influencerdeck (+https://github.com/influencerdeck/influencerdeck)"
)

// Sentinel errors. Each carries an error code, so errors.GetCode works on
// any error returned by this package.
var (
	// ErrInvalidURL is returned when the URL is empty, not http(s) or has no host.
	ErrInvalidURL = errors.New(errors.ErrCodeInvalidInput, "invalid image URL")

	// ErrNotFound is returned when the server answers 404 or 410.
	ErrNotFound = errors.New(errors.ErrCodeNotFound, "image not found")

	// ErrNetwork is returned for transport failures, timeouts and other non-2xx responses.
	ErrNetwork = errors.New(errors.ErrCodeNetwork, "network error")

	// ErrDecode is returned when the body is not a supported image.
	ErrDecode = errors.New(errors.ErrCodeUnsupported, "cannot decode image")
)

// Image is a downloaded image held in memory.
type Image struct {
	Data   []byte
	MIME   string
	Width  int // pixels
	Height int // pixels
}

// Client fetches images over HTTP.
type Client struct {
	http  *http.Client
	cache cache.Cache
	ttl   time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithCache stores downloaded images in cc for ttl.
func WithCache(cc cache.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		if cc != nil {
			c.cache = cc
			c.ttl = ttl
		}
	}
}

// NewClient creates a Client. Without options it uses a fresh HTTP client
// with [DefaultTimeout] and no cache.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:  &http.Client{Timeout: DefaultTimeout},
		cache: cache.NullCache{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch downloads and decodes the image at rawURL.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Image, error) {
	u, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	key := cache.ImageKey(rawURL)
	if data, ok, _ := c.cache.Get(ctx, key); ok {
		if img, err := Decode(data); err == nil {
			observability.Cache().OnCacheHit(ctx, "image")
			return img, nil
		}
		_ = c.cache.Delete(ctx, key)
	}
	observability.Cache().OnCacheMiss(ctx, "image")

	data, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, img.Data, c.ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, "image", len(img.Data))
	}
	return img, nil
}

func (c *Client) get(ctx context.Context, u *url.URL) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "image/*")

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, u.Host, u.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, u.Host, u.Path, err)
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, u.Host, u.Path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrNetwork, err)
	}
	if len(data) > MaxImageBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrDecode, MaxImageBytes)
	}
	return data, nil
}

func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound, code == http.StatusGone:
		return fmt.Errorf("%w: status %d", ErrNotFound, code)
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

// ParseURL checks that raw is an absolute http or https URL with a host, the
// same check Fetch applies before any request. Scheme case is ignored.
func ParseURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	return u, nil
}

// Decode inspects data and returns it as an Image. PNG, JPEG and GIF are
// kept as-is; other supported formats are transcoded to PNG.
func Decode(data []byte) (*Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}

	switch format {
	case "png", "jpeg", "gif":
		return &Image{Data: data, MIME: "image/" + format, Width: cfg.Width, Height: cfg.Height}, nil
	}

	m, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, format, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, m); err != nil {
		return nil, fmt.Errorf("%w: transcoding %s: %v", ErrDecode, format, err)
	}
	b := m.Bounds()
	return &Image{Data: buf.Bytes(), MIME: "image/png", Width: b.Dx(), Height: b.Dy()}, nil
}
