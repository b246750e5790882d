package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/epeers/krxdash/config"
	"github.com/epeers/krxdash/internal/cache"
	"github.com/epeers/krxdash/internal/geo"
	"github.com/epeers/krxdash/internal/krx"
	"github.com/epeers/krxdash/internal/region"
	"github.com/epeers/krxdash/internal/repository"
	"github.com/epeers/krxdash/internal/services"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the root command from an empty directory so no .env file is picked up.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("SESSION_TTL", "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), err
}

func TestResolveCommand(t *testing.T) {
	out, err := runCLI(t, "resolve", "서울특별시 강남구 테헤란로", "미국 캘리포니아")
	require.NoError(t, err)

	assert.Contains(t, out, "서울특별시 강남구 테헤란로\t서울특별시\t37.5665,126.9780")
	assert.Contains(t, out, "미국 캘리포니아\t(unresolved)")
}

func TestResolveCommand_RequiresArgument(t *testing.T) {
	_, err := runCLI(t, "resolve")
	assert.Error(t, err)
}

func TestFavoritesCommand(t *testing.T) {
	favFile := filepath.Join(t.TempDir(), "favorites.json")
	t.Setenv("FAVORITES_FILE", favFile)

	out, err := runCLI(t, "favorites", "toggle", "삼성전자")
	require.NoError(t, err)
	assert.Contains(t, out, "⭐ 삼성전자")

	_, err = runCLI(t, "favorites", "toggle", "카카오")
	require.NoError(t, err)

	out, err = runCLI(t, "favorites", "list")
	require.NoError(t, err)
	assert.Equal(t, "삼성전자\n카카오\n", out)

	out, err = runCLI(t, "favorites", "toggle", "카카오")
	require.NoError(t, err)
	assert.Contains(t, out, "☆ 카카오")

	out, err = runCLI(t, "favorites", "remove", "삼성전자")
	require.NoError(t, err)
	assert.Contains(t, out, "removed 삼성전자")

	out, err = runCLI(t, "favorites", "list")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = runCLI(t, "favorites", "remove", "없는회사")
	assert.Error(t, err)
}

func TestLookupCommand_InvalidRange(t *testing.T) {
	t.Setenv("FAVORITES_FILE", filepath.Join(t.TempDir(), "favorites.json"))
	t.Setenv("PG_URL", "")

	_, err := runCLI(t, "lookup", "삼성전자", "--start", "2024-02-01", "--end", "2024-01-01")
	assert.Error(t, err)
}

type fixedLister []krx.ListedCompany

func (l fixedLister) GetListedCompanies(ctx context.Context) ([]krx.ListedCompany, error) {
	return l, nil
}

func TestHealth_ReportsDirectoryLoad(t *testing.T) {
	cfg := &config.Config{DisplayName: "User", LogLevel: log.InfoLevel, SessionTTL: time.Hour}
	a := &app{
		cfg:        cfg,
		resolver:   region.Default(),
		boundaries: geo.NewLoader(filepath.Join(t.TempDir(), "sido.json"), nil),
		favorites:  repository.NewFavoritesRepository(filepath.Join(t.TempDir(), "favorites.json")),
		directory:  services.NewDirectoryService(fixedLister{{Name: "삼성전자", Ticker: "005930", Region: "경기도"}}),
	}
	a.pricing = services.NewPricingService(cache.NewMemoryCache(), nil, nil)
	a.dashboard = services.NewDashboardService(a.directory, a.pricing, a.resolver, a.boundaries)
	a.sessions = services.NewSessionService(a.favorites)
	router := newRouter(a)

	health := func() map[string]any {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return body
	}

	body := health()
	assert.Equal(t, float64(0), body["companies"])
	assert.NotContains(t, body, "directory_loaded_at")

	require.NoError(t, a.directory.Load(context.Background()))
	body = health()
	assert.Equal(t, float64(1), body["companies"])
	loadedAt, ok := body["directory_loaded_at"].(string)
	require.True(t, ok)
	_, err := time.Parse(time.RFC3339, loadedAt)
	assert.NoError(t, err)
}
