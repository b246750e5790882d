package services

import (
	"context"
	"sync"
	"testing"

	"github.com/epeers/krxdash/internal/models"
)

func TestWarningCollector_BasicUsage(t *testing.T) {
	ctx, wc := NewWarningContext(context.Background())

	AddWarning(ctx, models.Warning{
		Code:    models.WarnRegionUnresolved,
		Message: "test warning 1",
	})
	Warnf(ctx, models.WarnPriceCacheFailed, "test warning %d", 2)

	warnings := wc.GetWarnings()
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d", len(warnings))
	}
	if warnings[0].Code != models.WarnRegionUnresolved {
		t.Errorf("expected code %s, got %s", models.WarnRegionUnresolved, warnings[0].Code)
	}
	if warnings[1].Message != "test warning 2" {
		t.Errorf("expected formatted message, got %q", warnings[1].Message)
	}
}

func TestWarningCollector_NoCollectorNoPanic(t *testing.T) {
	// AddWarning with a plain context only logs
	AddWarning(context.Background(), models.Warning{
		Code:    models.WarnRegionUnresolved,
		Message: "this should be silently dropped",
	})
}

func TestWarningCollector_EmptyByDefault(t *testing.T) {
	_, wc := NewWarningContext(context.Background())
	warnings := wc.GetWarnings()
	if warnings == nil || len(warnings) != 0 {
		t.Errorf("expected empty non-nil warnings, got %v", warnings)
	}
}

func TestWarningCollector_ConcurrentSafe(t *testing.T) {
	ctx, wc := NewWarningContext(context.Background())

	var wg sync.WaitGroup
	n := 100
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			Warnf(ctx, models.WarnPriceCacheFailed, "concurrent")
		}()
	}
	wg.Wait()

	if got := len(wc.GetWarnings()); got != n {
		t.Errorf("expected %d warnings, got %d", n, got)
	}
}
