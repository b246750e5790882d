package services

import (
	"context"
	"time"

	"github.com/epeers/krxdash/internal/cache"
	"github.com/epeers/krxdash/internal/krx"
	"github.com/epeers/krxdash/internal/models"
	"github.com/epeers/krxdash/internal/repository"
	"github.com/epeers/krxdash/internal/util"
	log "github.com/sirupsen/logrus"
)

// PriceFetcher retrieves daily prices from the market data provider
type PriceFetcher interface {
	GetDailyPrices(ctx context.Context, ticker string, start, end time.Time) ([]krx.DailyPrice, error)
}

// PriceStore is the persistent price cache
type PriceStore interface {
	GetDailyPrices(ctx context.Context, ticker string, startDate, endDate time.Time) ([]models.PriceData, error)
	StoreDailyPrices(ctx context.Context, ticker string, prices []models.PriceData) error
	GetPriceRange(ctx context.Context, ticker string) (*repository.PriceRange, error)
	UpsertPriceRange(ctx context.Context, ticker string, startDate, endDate, nextUpdate time.Time) error
}

// PricingService serves daily price series through an in-memory cache, an
// optional PostgreSQL cache, and finally the provider.
type PricingService struct {
	memCache *cache.MemoryCache
	store    PriceStore
	fetcher  PriceFetcher
	now      func() time.Time
}

// NewPricingService creates a new PricingService. store may be nil.
func NewPricingService(memCache *cache.MemoryCache, store PriceStore, fetcher PriceFetcher) *PricingService {
	return &PricingService{
		memCache: memCache,
		store:    store,
		fetcher:  fetcher,
		now:      time.Now,
	}
}

// GetDailyPrices returns the daily series for ticker over [start, end], ascending by date.
// Cache failures are reported as warnings and never fail the call.
func (s *PricingService) GetDailyPrices(ctx context.Context, ticker string, start, end time.Time) ([]models.PriceData, error) {
	defer TrackTime("PricingService.GetDailyPrices", time.Now())

	start, end = calendarDay(start), calendarDay(end)
	if prices, ok := s.memCache.GetPrices(ticker, start, end); ok {
		log.Debugf("Memory cache hit for %s %s..%s", ticker, start.Format("2006-01-02"), end.Format("2006-01-02"))
		return prices, nil
	}

	now := s.now()
	prices, err := s.loadPrices(ctx, ticker, start, end, now)
	if err != nil {
		return nil, err
	}

	s.memCache.SetPrices(ticker, start, end, prices, util.NextMarketDate(now))
	return prices, nil
}

func (s *PricingService) loadPrices(ctx context.Context, ticker string, start, end, now time.Time) ([]models.PriceData, error) {
	fetchStart, fetchEnd := start, end
	storeHealthy := s.store != nil

	if s.store != nil {
		priceRange, err := s.store.GetPriceRange(ctx, ticker)
		if err != nil {
			Warnf(ctx, models.WarnPriceCacheFailed, "가격 캐시 조회 실패: %v", err)
			storeHealthy = false
		} else if !NeedsFetch(priceRange, now, start, end) {
			cached, err := s.store.GetDailyPrices(ctx, ticker, dbDate(start), dbDate(end))
			if err == nil {
				for i := range cached {
					cached[i].Date = calendarDay(cached[i].Date)
				}
				return cached, nil
			}
			Warnf(ctx, models.WarnPriceCacheFailed, "가격 캐시 조회 실패: %v", err)
			storeHealthy = false
		} else if priceRange != nil {
			// Fetch the union so the stored range stays gap-free.
			if rs := calendarDay(priceRange.StartDate); rs.Before(fetchStart) {
				fetchStart = rs
			}
			if re := calendarDay(priceRange.EndDate); re.After(fetchEnd) {
				fetchEnd = re
			}
		}
	}

	fetched, err := s.fetcher.GetDailyPrices(ctx, ticker, fetchStart, fetchEnd)
	if err != nil {
		return nil, err
	}

	all := make([]models.PriceData, 0, len(fetched))
	for _, p := range fetched {
		all = append(all, models.PriceData{
			Date:   calendarDay(p.Date),
			Open:   p.Open,
			High:   p.High,
			Low:    p.Low,
			Close:  p.Close,
			Volume: p.Volume,
		})
	}

	if storeHealthy {
		s.persist(ctx, ticker, all, fetchStart, fetchEnd, now)
	}

	return filterRange(all, start, end), nil
}

func (s *PricingService) persist(ctx context.Context, ticker string, prices []models.PriceData, start, end, now time.Time) {
	rows := make([]models.PriceData, len(prices))
	for i, p := range prices {
		p.Date = dbDate(p.Date)
		rows[i] = p
	}
	if err := s.store.StoreDailyPrices(ctx, ticker, rows); err != nil {
		Warnf(ctx, models.WarnPriceCacheFailed, "가격 캐시 저장 실패: %v", err)
		return
	}
	if err := s.store.UpsertPriceRange(ctx, ticker, dbDate(start), dbDate(end), util.NextMarketDate(now)); err != nil {
		Warnf(ctx, models.WarnPriceCacheFailed, "가격 캐시 범위 갱신 실패: %v", err)
	}
}

// NeedsFetch reports whether the provider must be asked for [start, end]
// given what the persistent cache already covers.
//
// Days before the day of NextUpdate were complete when the range was stored;
// a range reaching that day is only trusted until NextUpdate passes.
func NeedsFetch(priceRange *repository.PriceRange, now, start, end time.Time) bool {
	if priceRange == nil {
		return true
	}
	if start.Before(calendarDay(priceRange.StartDate)) || end.After(calendarDay(priceRange.EndDate)) {
		return true
	}
	if now.Before(priceRange.NextUpdate) {
		return false
	}
	return !end.Before(util.Day(priceRange.NextUpdate))
}

// calendarDay reinterprets t's calendar date as midnight in Seoul.
// DATE columns come back as UTC midnight and must keep their calendar day.
func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, util.Seoul())
}

// dbDate is the inverse of calendarDay for values written to DATE columns.
func dbDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func filterRange(prices []models.PriceData, start, end time.Time) []models.PriceData {
	out := make([]models.PriceData, 0, len(prices))
	for _, p := range prices {
		if p.Date.Before(start) || p.Date.After(end) {
			continue
		}
		out = append(out, p)
	}
	return out
}
