package kgml

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/metpath/studio/pkg/cache"
	"github.com/metpath/studio/pkg/errors"
	"github.com/metpath/studio/pkg/httputil"
	"github.com/metpath/studio/pkg/pathway"
)

const (
	// DefaultBaseURL is the public KEGG REST endpoint.
	DefaultBaseURL = "https://rest.kegg.jp"

	// DefaultTTL controls how long fetched KGML documents stay cached.
	// KEGG pathway maps change rarely.
	DefaultTTL = 24 * time.Hour

	httpTimeout = 15 * time.Second
)

// Pathway IDs look like "eco00010" or "map00620": an organism or map
// prefix followed by a five-digit pathway number.
var pathwayIDPattern = regexp.MustCompile(`^[a-z]{2,4}[0-9]{5}$`)

// Client fetches KGML pathway documents from the KEGG REST API.
// Fetched documents are cached; pass a cache.NullCache to disable caching.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	baseURL string
	ttl     time.Duration
}

// NewClient creates a KEGG client backed by the given cache.
func NewClient(c cache.Cache) *Client {
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   c,
		baseURL: DefaultBaseURL,
		ttl:     DefaultTTL,
	}
}

// WithBaseURL overrides the KEGG endpoint. Used by tests and mirrors.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = strings.TrimSuffix(url, "/")
	return c
}

// ValidatePathwayID reports whether id is a well-formed KEGG pathway
// identifier.
func ValidatePathwayID(id string) error {
	if !pathwayIDPattern.MatchString(id) {
		return errors.New(errors.ErrCodeInvalidPathway, "invalid pathway ID: %q", id)
	}
	return nil
}

// CacheKey returns the cache key under which the KGML response for a
// pathway is stored.
func CacheKey(id string) string {
	return cache.Key("kgml", id)
}

// FetchKGML retrieves the raw KGML document for a pathway, consulting the
// cache first. If refresh is true the cache is bypassed.
func (c *Client) FetchKGML(ctx context.Context, id string, refresh bool) ([]byte, error) {
	if err := ValidatePathwayID(id); err != nil {
		return nil, err
	}

	key := cache.Key("kgml", id)
	if !refresh {
		if data, ok, _ := c.cache.Get(ctx, key); ok {
			return data, nil
		}
	}

	url := fmt.Sprintf("%s/get/%s/kgml", c.baseURL, id)
	var body []byte
	err := httputil.RetryWithBackoff(ctx, func() error {
		data, ferr := c.get(ctx, url)
		if ferr != nil {
			return ferr
		}
		body = data
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = c.cache.Set(ctx, key, body, c.ttl)
	return body, nil
}

// FetchPathway retrieves a pathway and translates it into a graph.
func (c *Client) FetchPathway(ctx context.Context, id string, opts Options) (*pathway.Graph, error) {
	data, err := c.FetchKGML(ctx, id, false)
	if err != nil {
		return nil, err
	}
	return Translate(data, opts)
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodePathwayNotFound, "pathway not found: %s", url)
	case resp.StatusCode >= 500:
		return nil, &httputil.RetryableError{Err: errors.New(errors.ErrCodeUpstream, "KEGG returned status %d", resp.StatusCode)}
	default:
		return nil, errors.New(errors.ErrCodeUpstream, "KEGG returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "read response")}
	}
	return data, nil
}
