package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryService_Lookup(t *testing.T) {
	lister := &fakeLister{companies: sampleDirectory()}
	svc := NewDirectoryService(lister)
	ctx := context.Background()
	assert.True(t, svc.LoadedAt().IsZero())

	before := time.Now()
	c, err := svc.Lookup(ctx, "삼성전자")
	require.NoError(t, err)
	assert.Equal(t, "005930", c.Ticker)
	assert.Equal(t, "경기도", c.RegionRaw)

	_, err = svc.Lookup(ctx, "삼성")
	assert.ErrorIs(t, err, ErrCompanyNotFound, "lookup is exact-name, not substring")

	_, err = svc.Lookup(ctx, "없는회사")
	assert.ErrorIs(t, err, ErrCompanyNotFound)

	assert.Equal(t, int32(1), lister.calls.Load(), "directory should be fetched once")
	assert.Equal(t, len(sampleDirectory()), svc.Count())
	assert.False(t, svc.LoadedAt().Before(before))
	assert.False(t, svc.LoadedAt().After(time.Now()))
}

func TestDirectoryService_FailureNotCached(t *testing.T) {
	lister := &fakeLister{err: errors.New("connection refused")}
	svc := NewDirectoryService(lister)
	ctx := context.Background()

	_, err := svc.Lookup(ctx, "삼성전자")
	require.ErrorIs(t, err, ErrDirectoryUnavailable)
	assert.Zero(t, svc.Count())

	lister.err = nil
	lister.companies = sampleDirectory()

	c, err := svc.Lookup(ctx, "삼성전자")
	require.NoError(t, err, "a failed load must be retried on the next interaction")
	assert.Equal(t, "005930", c.Ticker)
	assert.Equal(t, int32(2), lister.calls.Load())
}

func TestDirectoryService_EmptyDirectoryIsUnavailable(t *testing.T) {
	svc := NewDirectoryService(&fakeLister{})
	_, err := svc.Lookup(context.Background(), "삼성전자")
	assert.ErrorIs(t, err, ErrDirectoryUnavailable)
}

func TestDirectoryService_DuplicateNamesKeepFirst(t *testing.T) {
	companies := append(sampleDirectory(), sampleDirectory()[0])
	companies[len(companies)-1].Ticker = "999999"
	svc := NewDirectoryService(&fakeLister{companies: companies})

	c, err := svc.Lookup(context.Background(), "삼성전자")
	require.NoError(t, err)
	assert.Equal(t, "005930", c.Ticker)
}

func TestDirectoryService_Suggest(t *testing.T) {
	svc := NewDirectoryService(&fakeLister{companies: sampleDirectory()})
	ctx := context.Background()

	got, err := svc.Suggest(ctx, "삼성", 20)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "삼성전자", got[0].Name)
	assert.Equal(t, "삼성SDI", got[1].Name)

	got, err = svc.Suggest(ctx, "약품", 20)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "271980", got[0].Ticker)

	got, err = svc.Suggest(ctx, "삼성", 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = svc.Suggest(ctx, "  ", 20)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestDirectoryService_SuggestPrefersPrefix(t *testing.T) {
	svc := NewDirectoryService(&fakeLister{companies: sampleDirectory()})

	got, err := svc.Suggest(context.Background(), "카", 20)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "카카오", got[0].Name)
}
