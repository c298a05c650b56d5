package vat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type stubRepo struct {
	rate  *decimal.Decimal
	err   error
	calls int
}

func (s *stubRepo) DeclaredRate(ctx context.Context, businessID uuid.UUID, productName string) (*decimal.Decimal, error) {
	s.calls++
	return s.rate, s.err
}

type stubCache struct {
	values map[string]string
	getErr error
}

func (s *stubCache) Get(ctx context.Context, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	if val, ok := s.values[key]; ok {
		return val, nil
	}
	return "", errors.New("miss")
}

func (s *stubCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	s.values[key] = value.(string)
	return nil
}

func (s *stubCache) CacheKey(parts ...string) string {
	return "test:" + strings.Join(parts, ":")
}

func dec(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRateForUsesDeclaredRateAndCachesIt(t *testing.T) {
	t.Parallel()
	rate := dec("8")
	repo := &stubRepo{rate: &rate}
	cache := &stubCache{values: map[string]string{}}
	svc, err := NewService(repo, cache, time.Minute, nil)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	biz := uuid.New()
	got := svc.RateFor(context.Background(), biz, "Latte")
	if !got.Equal(rate) {
		t.Fatalf("expected 8, got %s", got)
	}
	if repo.calls != 1 {
		t.Fatalf("expected one repo call, got %d", repo.calls)
	}

	// second call is served from cache
	got = svc.RateFor(context.Background(), biz, "Latte")
	if !got.Equal(rate) {
		t.Fatalf("expected cached 8, got %s", got)
	}
	if repo.calls != 1 {
		t.Fatalf("cache should absorb the second call, got %d repo calls", repo.calls)
	}
}

func TestRateForFallsBackWhenUndeclared(t *testing.T) {
	t.Parallel()
	svc, err := NewService(&stubRepo{}, nil, 0, nil)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	got := svc.RateFor(context.Background(), uuid.New(), "Mystery Soup")
	if !got.Equal(DefaultRatePercent) {
		t.Fatalf("expected fallback %s, got %s", DefaultRatePercent, got)
	}
}

func TestRateForFallsBackOnRepoError(t *testing.T) {
	t.Parallel()
	svc, err := NewService(&stubRepo{err: errors.New("db down")}, nil, 0, nil)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	got := svc.RateFor(context.Background(), uuid.New(), "Latte")
	if !got.Equal(DefaultRatePercent) {
		t.Fatalf("expected fallback on error, got %s", got)
	}
}

func TestNewServiceRequiresRepo(t *testing.T) {
	t.Parallel()
	if _, err := NewService(nil, nil, 0, nil); err == nil {
		t.Fatal("expected error for nil repository")
	}
}
