// Package service implements rate table retrieval and currency conversion.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"curconv/internal/cache"
	"curconv/internal/freshness"
	"curconv/internal/provider"
	"curconv/internal/ratedoc"
)

// ConversionService produces a trustworthy rate table and converts amounts with it.
type ConversionService struct {
	store  cache.Store
	source provider.RateSource
	policy freshness.Policy
	now    func() time.Time
	log    *zap.SugaredLogger
}

// Option configures a ConversionService.
type Option func(*ConversionService)

// WithClock replaces time.Now as the source of the current instant.
func WithClock(now func() time.Time) Option {
	return func(s *ConversionService) { s.now = now }
}

// NewConversionService creates a new ConversionService.
func NewConversionService(store cache.Store, source provider.RateSource, policy freshness.Policy, logger *zap.SugaredLogger, opts ...Option) *ConversionService {
	s := &ConversionService{
		store:  store,
		source: source,
		policy: policy,
		now:    time.Now,
		log:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rates returns a rate snapshot that is fresh as of now. The bool reports
// whether it came from the cache. A cached record that cannot be loaded or
// parsed is treated as absent.
func (s *ConversionService) Rates(ctx context.Context) (*ratedoc.Document, bool, error) {
	now := s.now()

	if doc, ok := s.loadCached(ctx); ok {
		if s.policy.IsFresh(now, doc.Published) {
			s.log.Debugw("Using cached rates", "published", doc.Published.Format(time.DateOnly))
			return doc, true, nil
		}
		s.log.Debugw("Cached rates are stale",
			"published", doc.Published.Format(time.DateOnly),
			"expected", s.policy.ExpectedPublication(now).Format(time.DateOnly))
	}

	doc, err := s.refresh(ctx)
	if err != nil {
		return nil, false, err
	}
	return doc, false, nil
}

// Convert computes amount * rate[to] / rate[from] on a fresh rate table.
func (s *ConversionService) Convert(ctx context.Context, req ConversionRequest) (*ConversionResult, error) {
	doc, fromCache, err := s.Rates(ctx)
	if err != nil {
		return nil, err
	}

	fromRate, ok := doc.Rates.Rate(req.From)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCurrencyUnavailable, req.From)
	}
	toRate, ok := doc.Rates.Rate(req.To)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCurrencyUnavailable, req.To)
	}

	res := &ConversionResult{
		Amount:    req.Amount,
		From:      req.From,
		To:        req.To,
		Converted: req.Amount * toRate / fromRate,
		Published: doc.Published,
		FromCache: fromCache,
	}
	s.log.Debugw("Converted", "amount", req.Amount, "from", req.From, "to", req.To, "result", res.Converted)
	return res, nil
}

func (s *ConversionService) loadCached(ctx context.Context) (*ratedoc.Document, bool) {
	raw, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			s.log.Debugw("No cached rates")
		} else {
			s.log.Warnw("Cached rates unreadable, refetching", "error", err)
		}
		return nil, false
	}

	doc, err := ratedoc.Parse(raw)
	if err != nil {
		s.log.Warnw("Cached rates unparseable, refetching", "error", err)
		return nil, false
	}
	return doc, true
}

func (s *ConversionService) refresh(ctx context.Context) (*ratedoc.Document, error) {
	s.log.Infow("Fetching rates")

	raw, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	doc, err := ratedoc.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	if err := s.store.Save(ctx, raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCacheWrite, err)
	}

	s.log.Infow("Rates refreshed", "published", doc.Published.Format(time.DateOnly), "currencies", doc.Rates.Len())
	return doc, nil
}
