package settings

import (
	"context"
	"strings"

	"github.com/John-Hatton/Inventory/cache"
)

const keyServerURL = "settings:server_url"

// Store holds user-entered preferences. Today that is exactly one:
// the companion server's base URL.
type Store struct {
	cache      cache.Cache
	defaultURL string
}

// NewStore creates a settings Store. defaultURL is the configured
// fallback used until the user saves their own value.
func NewStore(c cache.Cache, defaultURL string) *Store {
	return &Store{cache: c, defaultURL: defaultURL}
}

// ServerURL returns the saved base URL, normalized to end with "/".
// An empty result means no URL has been configured anywhere.
func (s *Store) ServerURL(ctx context.Context) string {
	url, err := s.cache.Get(ctx, keyServerURL)
	if err != nil || url == "" {
		url = s.defaultURL
	}
	return normalize(url)
}

// SetServerURL saves the base URL preference.
func (s *Store) SetServerURL(ctx context.Context, url string) error {
	return s.cache.Set(ctx, keyServerURL, strings.TrimSpace(url), 0)
}

func normalize(url string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return ""
	}
	if !strings.HasSuffix(url, "/") {
		url += "/"
	}
	return url
}
