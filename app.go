package main

import (
	"context"
	"fmt"
	"time"

	"github.com/epeers/krxdash/config"
	"github.com/epeers/krxdash/internal/cache"
	"github.com/epeers/krxdash/internal/geo"
	"github.com/epeers/krxdash/internal/krx"
	"github.com/epeers/krxdash/internal/region"
	"github.com/epeers/krxdash/internal/repository"
	"github.com/epeers/krxdash/internal/services"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// app holds the components shared by every command
type app struct {
	cfg        *config.Config
	pool       *pgxpool.Pool
	resolver   *region.Resolver
	features   *region.Resolver
	boundaries *geo.Loader
	favorites  *repository.FavoritesRepository
	directory  *services.DirectoryService
	pricing    *services.PricingService
	dashboard  *services.DashboardService
	sessions   *services.SessionService
}

func newApp(ctx context.Context, cfg *config.Config) *app {
	resolver := region.Default()
	krxClient := krx.NewClientWithURLs(cfg.DirectoryURL, cfg.PriceBaseURL)

	a := &app{
		cfg:       cfg,
		resolver:  resolver,
		features:  resolver.WithSelfAliases(),
		favorites: repository.NewFavoritesRepository(cfg.FavoritesFile),
		directory: services.NewDirectoryService(krxClient),
	}
	a.boundaries = geo.NewLoader(cfg.GeoFile, a.canonicalRegion)

	// The PostgreSQL price cache is optional; without it prices are cached in memory only.
	var store services.PriceStore
	if cfg.PGURL != "" {
		pool, err := openPriceCache(ctx, cfg.PGURL)
		if err != nil {
			log.Warnf("Price cache disabled: %v", err)
		} else {
			a.pool = pool
			store = repository.NewPriceCacheRepository(pool)
		}
	}

	a.pricing = services.NewPricingService(cache.NewMemoryCache(), store, krxClient)
	a.dashboard = services.NewDashboardService(a.directory, a.pricing, resolver, a.boundaries)
	a.sessions = services.NewSessionService(a.favorites)
	return a
}

// canonicalRegion maps a boundary feature name such as "강원도" or "부산광역시"
// onto the resolver's canonical name
func (a *app) canonicalRegion(name string) string {
	if res := a.features.Resolve(name); res.Resolved {
		return res.Canonical
	}
	return name
}

func (a *app) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

func openPriceCache(ctx context.Context, url string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	if err := repository.NewPriceCacheRepository(pool).EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	log.Info("PostgreSQL price cache enabled")
	return pool, nil
}
