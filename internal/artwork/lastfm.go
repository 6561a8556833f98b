package artwork

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/genricoloni/presenced/internal/domain"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the last.fm API host
	DefaultBaseURL = "http://ws.audioscrobbler.com"

	_maxBodySize  = 1 << 20 // 1 MB
	_maxTimeout   = 10 * time.Second
	_largestImage = 3 // album.image[3] is the "extralarge" entry
	_minURLLength = 6 // shorter values are treated as garbage
	_userAgent    = "presenced/1.0"
)

// albumInfo is the subset of album.getinfo we consume
type albumInfo struct {
	Album struct {
		Image []struct {
			Text string `json:"#text"`
			Size string `json:"size"`
		} `json:"image"`
	} `json:"album"`
}

// LastfmLookup resolves album artwork through last.fm album.getinfo
type LastfmLookup struct {
	logger  *zap.Logger
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewLastfmLookup creates a lookup client. Requests time out after the poll
// interval (at most 10s), so a hung API never stalls the loop for long.
func NewLastfmLookup(logger *zap.Logger, cfg domain.Config) *LastfmLookup {
	timeout := cfg.GetInterval()
	if timeout <= 0 || timeout > _maxTimeout {
		timeout = _maxTimeout
	}
	return &LastfmLookup{
		logger: logger,
		client: &http.Client{
			Timeout: timeout, // Essential to prevent blocking the daemon
		},
		baseURL: DefaultBaseURL,
		apiKey:  cfg.GetLastfmAPIKey(),
	}
}

// Lookup returns the largest image URL last.fm knows for the album.
// Every failure mode wraps domain.ErrLookupFailed (or ErrNoAPIKey).
func (l *LastfmLookup) Lookup(ctx context.Context, artist, album string) (string, error) {
	if l.apiKey == "" {
		return "", domain.ErrNoAPIKey
	}

	q := url.Values{}
	q.Set("method", "album.getinfo")
	q.Set("api_key", l.apiKey)
	q.Set("artist", artist)
	q.Set("album", album)
	q.Set("autocorrect", "0")
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"/2.0/?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %w", domain.ErrLookupFailed, err)
	}
	req.Header.Set("User-Agent", _userAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: network error: %w", domain.ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: unexpected status code: %d", domain.ErrLookupFailed, resp.StatusCode)
	}

	var info albumInfo
	if err := json.NewDecoder(io.LimitReader(resp.Body, _maxBodySize)).Decode(&info); err != nil {
		return "", fmt.Errorf("%w: malformed response: %w", domain.ErrLookupFailed, err)
	}

	images := info.Album.Image
	if len(images) <= _largestImage {
		return "", fmt.Errorf("%w: no artwork for %q by %q", domain.ErrLookupFailed, album, artist)
	}

	cover := strings.TrimSpace(images[_largestImage].Text)
	if len(cover) < _minURLLength {
		return "", fmt.Errorf("%w: artwork url too short: %q", domain.ErrLookupFailed, cover)
	}

	l.logger.Debug("Artwork fetched from last.fm", zap.String("album", album), zap.String("url", cover))
	return cover, nil
}
