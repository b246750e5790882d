package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/epeers/krxdash/internal/krx"
	"github.com/epeers/krxdash/internal/models"
	"github.com/epeers/krxdash/internal/repository"
	"github.com/epeers/krxdash/internal/util"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, util.Seoul())
}

// fakeLister serves a fixed directory, or err when set
type fakeLister struct {
	companies []krx.ListedCompany
	err       error
	calls     atomic.Int32
}

func (f *fakeLister) GetListedCompanies(ctx context.Context) ([]krx.ListedCompany, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.companies, nil
}

func sampleDirectory() []krx.ListedCompany {
	return []krx.ListedCompany{
		{Name: "삼성전자", Ticker: "005930", Region: "경기도"},
		{Name: "삼성SDI", Ticker: "006400", Region: "경기도"},
		{Name: "NAVER", Ticker: "035420", Region: "경기도"},
		{Name: "카카오", Ticker: "035720", Region: "제주특별자치도"},
		{Name: "현대차", Ticker: "005380", Region: "서울특별시"},
		{Name: "제일약품", Ticker: "271980", Region: "미국"},
	}
}

// fakeFetcher returns prices within the requested window from a fixed series
type fakeFetcher struct {
	mu       sync.Mutex
	series   map[string][]krx.DailyPrice
	err      error
	requests []fetchRequest
}

type fetchRequest struct {
	ticker     string
	start, end time.Time
}

func (f *fakeFetcher) GetDailyPrices(ctx context.Context, ticker string, start, end time.Time) ([]krx.DailyPrice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, fetchRequest{ticker, start, end})
	if f.err != nil {
		return nil, f.err
	}
	var out []krx.DailyPrice
	for _, p := range f.series[ticker] {
		if p.Date.Before(start) || p.Date.After(end) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeFetcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// weekdaySeries builds one price per weekday in [start, end]
func weekdaySeries(start, end time.Time) []krx.DailyPrice {
	var out []krx.DailyPrice
	price := 70000.0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		out = append(out, krx.DailyPrice{
			Date: d, Open: price, High: price + 500, Low: price - 500, Close: price + 100, Volume: 1000000,
		})
		price += 100
	}
	return out
}

// fakeStore is an in-memory PriceStore keyed like the PostgreSQL tables
type fakeStore struct {
	mu        sync.Mutex
	prices    map[string]map[string]models.PriceData
	ranges    map[string]repository.PriceRange
	rangeErr  error
	storeErr  error
	storeCall int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		prices: make(map[string]map[string]models.PriceData),
		ranges: make(map[string]repository.PriceRange),
	}
}

func (s *fakeStore) GetDailyPrices(ctx context.Context, ticker string, startDate, endDate time.Time) ([]models.PriceData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.PriceData{}
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		if p, ok := s.prices[ticker][d.Format("2006-01-02")]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeStore) StoreDailyPrices(ctx context.Context, ticker string, prices []models.PriceData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.storeCall++
	if s.storeErr != nil {
		return s.storeErr
	}
	if s.prices[ticker] == nil {
		s.prices[ticker] = make(map[string]models.PriceData)
	}
	for _, p := range prices {
		if p.Date.Location() != time.UTC {
			return errors.New("store expects UTC dates")
		}
		s.prices[ticker][p.Date.Format("2006-01-02")] = p
	}
	return nil
}

func (s *fakeStore) GetPriceRange(ctx context.Context, ticker string) (*repository.PriceRange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rangeErr != nil {
		return nil, s.rangeErr
	}
	pr, ok := s.ranges[ticker]
	if !ok {
		return nil, nil
	}
	return &pr, nil
}

func (s *fakeStore) UpsertPriceRange(ctx context.Context, ticker string, startDate, endDate, nextUpdate time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pr, ok := s.ranges[ticker]
	if ok {
		if startDate.After(pr.StartDate) {
			startDate = pr.StartDate
		}
		if endDate.Before(pr.EndDate) {
			endDate = pr.EndDate
		}
	}
	s.ranges[ticker] = repository.PriceRange{Ticker: ticker, StartDate: startDate, EndDate: endDate, NextUpdate: nextUpdate}
	return nil
}

// memFavorites is an in-memory FavoritesStore
type memFavorites struct {
	mu      sync.Mutex
	saved   models.Favorites
	loadErr error
	saveErr error
	saves   int
}

func (m *memFavorites) Load() (models.Favorites, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return models.NewFavorites(), m.loadErr
	}
	if m.saved == nil {
		return models.NewFavorites(), nil
	}
	return m.saved.Clone(), nil
}

func (m *memFavorites) Save(f models.Favorites) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.saved = f.Clone()
	return nil
}
