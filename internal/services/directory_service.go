package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/epeers/krxdash/internal/krx"
	"github.com/epeers/krxdash/internal/models"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

var (
	ErrCompanyNotFound      = errors.New("company not found")
	ErrDirectoryUnavailable = errors.New("company directory unavailable")
)

// CompanyLister fetches the listed-company directory
type CompanyLister interface {
	GetListedCompanies(ctx context.Context) ([]krx.ListedCompany, error)
}

// DirectoryService holds the listed-company directory for the process lifetime.
// The directory is fetched on first use; a failed fetch is not cached, so the
// next interaction tries again.
type DirectoryService struct {
	lister CompanyLister
	group  singleflight.Group

	mu       sync.RWMutex
	loaded   bool
	byName   map[string]models.Company
	ordered  []models.Company
	loadedAt time.Time
}

// NewDirectoryService creates a new DirectoryService
func NewDirectoryService(lister CompanyLister) *DirectoryService {
	return &DirectoryService{lister: lister}
}

// Load fetches the directory unless it is already cached.
// Concurrent callers share one fetch.
func (s *DirectoryService) Load(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}

	_, err, _ := s.group.Do("directory", func() (any, error) {
		defer TrackTime("DirectoryService.Load", time.Now())

		// Callers share this fetch, so one caller going away must not cancel it.
		entries, err := s.lister.GetListedCompanies(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			return nil, fmt.Errorf("directory returned no companies")
		}
		s.store(entries)
		return nil, nil
	})
	if err != nil {
		log.Errorf("Failed to load company directory: %v", err)
		return fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	}
	return nil
}

func (s *DirectoryService) store(entries []krx.ListedCompany) {
	byName := make(map[string]models.Company, len(entries))
	ordered := make([]models.Company, 0, len(entries))
	for _, e := range entries {
		if _, dup := byName[e.Name]; dup {
			log.Debugf("Duplicate company name %q in directory, keeping the first", e.Name)
			continue
		}
		c := models.Company{
			Name:        e.Name,
			Ticker:      e.Ticker,
			RegionRaw:   e.Region,
			Industry:    e.Industry,
			ListingDate: e.ListingDate,
		}
		byName[e.Name] = c
		ordered = append(ordered, c)
	}

	s.mu.Lock()
	s.byName = byName
	s.ordered = ordered
	s.loaded = true
	s.loadedAt = time.Now()
	s.mu.Unlock()
	log.Infof("Loaded %d listed companies", len(ordered))
}

// Lookup finds a company by exact name
func (s *DirectoryService) Lookup(ctx context.Context, name string) (*models.Company, error) {
	if err := s.Load(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrCompanyNotFound, name)
	}
	return &c, nil
}

// Suggest returns up to limit companies whose names contain query.
// Names starting with query come first.
func (s *DirectoryService) Suggest(ctx context.Context, query string, limit int) ([]models.CompanySuggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 {
		return []models.CompanySuggestion{}, nil
	}
	if err := s.Load(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var prefix, contains []models.CompanySuggestion
	for _, c := range s.ordered {
		if !strings.Contains(c.Name, query) {
			continue
		}
		sug := models.CompanySuggestion{Name: c.Name, Ticker: c.Ticker}
		if strings.HasPrefix(c.Name, query) {
			prefix = append(prefix, sug)
		} else {
			contains = append(contains, sug)
		}
	}

	result := append(prefix, contains...)
	if len(result) > limit {
		result = result[:limit]
	}
	if result == nil {
		result = []models.CompanySuggestion{}
	}
	return result, nil
}

// LoadedAt returns when the directory was last loaded, or the zero time before the first load
func (s *DirectoryService) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Count returns the number of cached companies, or zero before the first load
func (s *DirectoryService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ordered)
}
