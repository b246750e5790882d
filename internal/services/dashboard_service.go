package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/epeers/krxdash/internal/geo"
	"github.com/epeers/krxdash/internal/models"
	"github.com/epeers/krxdash/internal/region"
	"github.com/epeers/krxdash/internal/util"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidRange = errors.New("invalid date range")

// BoundarySource provides the province boundary overlay
type BoundarySource interface {
	Get() (*geo.Boundaries, error)
}

// DashboardService turns an active company and date range into everything the
// page shows: chart, map and export. Every outcome is reported through the
// result status; nothing is returned as an error.
type DashboardService struct {
	directory  *DirectoryService
	pricing    *PricingService
	resolver   *region.Resolver
	boundaries BoundarySource
	now        func() time.Time
}

// NewDashboardService creates a new DashboardService. boundaries may be nil.
func NewDashboardService(
	directory *DirectoryService,
	pricing *PricingService,
	resolver *region.Resolver,
	boundaries BoundarySource,
) *DashboardService {
	return &DashboardService{
		directory:  directory,
		pricing:    pricing,
		resolver:   resolver,
		boundaries: boundaries,
		now:        time.Now,
	}
}

// DefaultRange is January 1st of the current year through today, in Seoul
func (s *DashboardService) DefaultRange() models.DateRange {
	today := util.Day(s.now())
	return models.DateRange{
		Start: time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, util.Seoul()),
		End:   today,
	}
}

// Lookup resolves the company, fetches its prices and builds the chart, map and export info.
func (s *DashboardService) Lookup(ctx context.Context, company string, rng models.DateRange) *models.DashboardResult {
	return s.run(ctx, company, rng, func(ctx context.Context, r *models.DashboardResult) error {
		r.Chart = BuildChartFigure(*r.Company, r.Prices)
		r.Map = s.mapView(ctx, *r.Company)
		r.Export = &models.ExportInfo{
			FileName: ExportFileName(r.Company.Name),
			URL:      "/api/export?" + url.Values{"start": {r.StartDate}, "end": {r.EndDate}}.Encode(),
		}
		return nil
	})
}

// Export builds the spreadsheet for a lookup. The bytes are nil unless the status is LookupOK.
func (s *DashboardService) Export(ctx context.Context, company string, rng models.DateRange) ([]byte, *models.DashboardResult) {
	var data []byte
	result := s.run(ctx, company, rng, func(_ context.Context, r *models.DashboardResult) error {
		var err error
		data, err = BuildWorkbook(r.Prices)
		return err
	})
	if result.Status != models.LookupOK {
		return nil, result
	}
	return data, result
}

// ChartPNG renders the price chart image for a lookup. The bytes are nil unless the status is LookupOK.
func (s *DashboardService) ChartPNG(ctx context.Context, company string, rng models.DateRange) ([]byte, *models.DashboardResult) {
	var data []byte
	result := s.run(ctx, company, rng, func(_ context.Context, r *models.DashboardResult) error {
		var err error
		data, err = RenderChartPNG(r.Prices)
		return err
	})
	if result.Status != models.LookupOK {
		return nil, result
	}
	return data, result
}

type renderFunc func(ctx context.Context, r *models.DashboardResult) error

// run performs the lookup steps shared by every output and then calls render.
// Failures, including panics in render, become a fresh result so nothing from
// a previous company survives.
func (s *DashboardService) run(ctx context.Context, company string, rng models.DateRange, render renderFunc) (result *models.DashboardResult) {
	defer TrackTime("DashboardService.run", time.Now())
	ctx, wc := NewWarningContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Rendering %q panicked: %v", company, r)
			result = failure(models.LookupError, fmt.Sprintf("데이터 렌더링 중 오류 발생: %v", r))
		}
		result.Warnings = wc.GetWarnings()
	}()

	result = s.fetch(ctx, company, rng)
	if result.Status != models.LookupOK {
		return result
	}
	if err := render(ctx, result); err != nil {
		log.Errorf("Rendering %q failed: %v", company, err)
		return failure(models.LookupError, fmt.Sprintf("데이터 렌더링 중 오류 발생: %v", err))
	}
	return result
}

func (s *DashboardService) fetch(ctx context.Context, company string, rng models.DateRange) *models.DashboardResult {
	if company == "" {
		return failure(models.LookupIdle, "회사명을 입력하세요.")
	}
	if msg := rangeProblem(rng); msg != "" {
		return failure(models.LookupRangeInvalid, msg)
	}

	info, err := s.directory.Lookup(ctx, company)
	switch {
	case errors.Is(err, ErrCompanyNotFound):
		return failure(models.LookupNotFound, fmt.Sprintf("'%s' 기업 정보를 찾을 수 없습니다.", company))
	case err != nil:
		return failure(models.LookupDataUnavailable, fmt.Sprintf("상장사 목록을 불러오지 못했습니다: %v", err))
	}

	start, end := util.Day(rng.Start), util.Day(rng.End)
	result := &models.DashboardResult{
		Company:   info,
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
	}

	prices, err := s.pricing.GetDailyPrices(ctx, info.Ticker, start, end)
	if err != nil {
		log.Errorf("Failed to fetch prices for %s (%s): %v", info.Name, info.Ticker, err)
		result.Status = models.LookupError
		result.Message = fmt.Sprintf("주가 데이터를 가져오지 못했습니다: %v", err)
		return result
	}
	if len(prices) == 0 {
		result.Status = models.LookupNoData
		result.Message = "해당 기간의 주가 데이터가 존재하지 않습니다."
		return result
	}

	result.Status = models.LookupOK
	result.Message = fmt.Sprintf("%s (%s) 차트 분석", info.Name, info.Ticker)
	result.Prices = prices
	result.DataPoints = len(prices)
	return result
}

func (s *DashboardService) mapView(ctx context.Context, company models.Company) *models.MapView {
	res := s.resolver.Resolve(company.RegionRaw)
	if !res.Resolved {
		Warnf(ctx, models.WarnRegionUnresolved, "본사 소재지 '%s'에 해당하는 지역을 찾을 수 없습니다.", company.RegionRaw)
	}

	var boundaries *geo.Boundaries
	if s.boundaries != nil {
		b, err := s.boundaries.Get()
		if err != nil {
			Warnf(ctx, models.WarnBoundaryUnavailable, "지역 경계 데이터를 불러오지 못했습니다: %v", err)
		} else {
			boundaries = b
		}
	}
	if res.Resolved && boundaries != nil {
		if _, _, ok := boundaries.Bounds(res.Canonical); ok && !boundaries.Contains(res.Canonical, res.Latitude, res.Longitude) {
			Warnf(ctx, models.WarnRegionOutsideBounds, "%s의 지도 중심이 경계 데이터 범위를 벗어났습니다.", res.Canonical)
		}
	}
	return BuildMapView(company.Name, company.RegionRaw, res, boundaries)
}

// ParseRange parses the start and end query values in Seoul time.
// An empty value leaves that end of the range unset, which Lookup reports as
// an incomplete range; a malformed value is an error.
func ParseRange(start, end string) (models.DateRange, error) {
	var rng models.DateRange
	if start != "" {
		t, err := models.ParseFlexibleDate(start, util.Seoul())
		if err != nil {
			return rng, fmt.Errorf("%w: start %q: %v", ErrInvalidRange, start, err)
		}
		rng.Start = t
	}
	if end != "" {
		t, err := models.ParseFlexibleDate(end, util.Seoul())
		if err != nil {
			return rng, fmt.Errorf("%w: end %q: %v", ErrInvalidRange, end, err)
		}
		rng.End = t
	}
	return rng, nil
}

func rangeProblem(rng models.DateRange) string {
	if !rng.Complete() {
		return "시작 날짜와 종료 날짜를 모두 선택해주세요."
	}
	if !rng.Valid() {
		return "시작 날짜가 종료 날짜보다 늦습니다."
	}
	return ""
}

func failure(status models.LookupStatus, message string) *models.DashboardResult {
	return &models.DashboardResult{Status: status, Message: message}
}
