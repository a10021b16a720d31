// Package search provides cached company-registry lookups.
package search

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Tebogokaulela455/kaulela-backend/internal/lib/sl"
	"github.com/Tebogokaulela455/kaulela-backend/internal/models"
)

// Registry performs the live registry query.
type Registry interface {
	SearchCompany(ctx context.Context, query string) ([]models.Company, error)
}

// ResultCache stores registry results by key.
type ResultCache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Service answers company lookups, serving from cache when possible.
type Service struct {
	log      *slog.Logger
	registry Registry
	cache    ResultCache
	ttl      time.Duration
}

// New creates the search service. cache may be nil; lookups then always hit
// the registry.
func New(log *slog.Logger, registry Registry, cache ResultCache, ttl time.Duration) *Service {
	return &Service{log: log, registry: registry, cache: cache, ttl: ttl}
}

// SearchCompany looks up companies by name or registration number. Registry
// responses are cached per normalized query.
func (s *Service) SearchCompany(ctx context.Context, query string) ([]models.Company, error) {
	key := cacheKey(query)

	if s.cache != nil {
		var cached []models.Company
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.log.Warn("company cache read failed", sl.Err(err))
		} else if hit {
			return cached, nil
		}
	}

	companies, err := s.registry.SearchCompany(ctx, query)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, companies, s.ttl); err != nil {
			s.log.Warn("company cache write failed", sl.Err(err))
		}
	}
	return companies, nil
}

func cacheKey(query string) string {
	return "cipc:" + strings.ToLower(strings.TrimSpace(query))
}
