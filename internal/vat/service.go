// Package vat resolves the declared VAT rate for a product name, caching
// results so report builds do not hammer the catalog.
package vat

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ristorapos/backoffice-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// DefaultRatePercent is the fallback when a product has no declared rate.
var DefaultRatePercent = decimal.NewFromInt(18)

// Repository reads declared rates from the product catalog. A nil rate with
// a nil error means the product has no declared rate.
type Repository interface {
	DeclaredRate(ctx context.Context, businessID uuid.UUID, productName string) (*decimal.Decimal, error)
}

type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CacheKey(parts ...string) string
}

// Lookup is the rate-resolution surface the report service depends on.
type Lookup interface {
	RateFor(ctx context.Context, businessID uuid.UUID, productName string) decimal.Decimal
}

type service struct {
	repo  Repository
	cache cacheStore
	ttl   time.Duration
	logg  *logger.Logger
}

// NewService builds a cached VAT lookup. The cache is optional; without it
// every call hits the repository.
func NewService(repo Repository, cache cacheStore, ttl time.Duration, logg *logger.Logger) (Lookup, error) {
	if repo == nil {
		return nil, fmt.Errorf("vat repository required")
	}
	return &service{repo: repo, cache: cache, ttl: ttl, logg: logg}, nil
}

// RateFor resolves the declared rate for the product name, falling back to
// DefaultRatePercent when the product is unknown, undeclared, or the lookup
// fails. It never returns an error: a report must stay renderable even when
// the catalog is degraded.
func (s *service) RateFor(ctx context.Context, businessID uuid.UUID, productName string) decimal.Decimal {
	var key string
	if s.cache != nil {
		key = s.cache.CacheKey("vat_rate", businessID.String(), productName)
		if cached, err := s.cache.Get(ctx, key); err == nil {
			if rate, parseErr := decimal.NewFromString(cached); parseErr == nil {
				return rate
			}
		}
	}

	rate, err := s.repo.DeclaredRate(ctx, businessID, productName)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
				"product_name": productName,
				"error":        err.Error(),
			}), "vat rate lookup failed, using fallback")
		}
		return DefaultRatePercent
	}
	if rate == nil {
		return DefaultRatePercent
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, rate.String(), s.ttl); err != nil && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "vat rate cache write failed")
		}
	}
	return *rate
}
