package artwork

import (
	"context"
	"errors"

	"github.com/genricoloni/presenced/internal/domain"
	"go.uber.org/zap"
)

// Request describes one artwork resolution
type Request struct {
	Current      domain.AlbumKey
	Previous     domain.AlbumKey
	Album        string
	Artist       string
	CacheEnabled bool
	// PreviousURL is returned untouched while the album does not change
	PreviousURL string
}

// Resolver produces a cover reference for an album: cache first, then one
// remote lookup, then the missing-cover sentinel. It never retries.
type Resolver struct {
	logger *zap.Logger
	cache  domain.CoverCache
	lookup domain.CoverLookup
}

// NewResolver creates a resolver. cache may be nil when caching is disabled.
func NewResolver(logger *zap.Logger, cache domain.CoverCache, lookup domain.CoverLookup) *Resolver {
	return &Resolver{
		logger: logger,
		cache:  cache,
		lookup: lookup,
	}
}

// Resolve returns an image reference or domain.MissingCover
func (r *Resolver) Resolve(ctx context.Context, req Request) string {
	if req.Current == req.Previous {
		return req.PreviousURL
	}

	if req.Album == domain.UnknownAlbum {
		r.logger.Debug("Missing album name, skipping artwork lookup", zap.String("artist", req.Artist))
		return domain.MissingCover
	}

	useCache := req.CacheEnabled && r.cache != nil
	if useCache {
		if url, ok := r.cache.Get(req.Current); ok && len(url) >= _minURLLength {
			r.logger.Debug("Artwork cache hit", zap.String("album", string(req.Current)))
			return url
		}
	}

	url, err := r.lookup.Lookup(ctx, req.Artist, req.Album)
	if err != nil {
		if errors.Is(err, domain.ErrNoAPIKey) {
			r.logger.Debug("No last.fm API key, artwork disabled")
		} else {
			r.logger.Info("Artwork lookup failed", zap.String("album", string(req.Current)), zap.Error(err))
		}
		return domain.MissingCover
	}
	if len(url) < _minURLLength {
		return domain.MissingCover
	}

	r.logger.Info("Fetched artwork link", zap.String("album", string(req.Current)), zap.String("url", url))

	if useCache {
		if err := r.cache.Put(req.Current, url); err != nil {
			r.logger.Warn("Unable to write artwork cache", zap.String("album", string(req.Current)), zap.Error(err))
		} else {
			r.logger.Debug("Saved artwork url to cache", zap.String("album", string(req.Current)))
		}
	}
	return url
}
