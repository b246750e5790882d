package krx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"time"
)

// Column headers of the Naver daily series
const (
	colDate   = "날짜"
	colOpen   = "시가"
	colHigh   = "고가"
	colLow    = "저가"
	colClose  = "종가"
	colVolume = "거래량"

	dayLayout = "20060102"
)

// The endpoint returns a JavaScript array literal: single-quoted header
// strings and, sometimes, a trailing comma before the closing bracket.
var trailingCommaPattern = regexp.MustCompile(`,\s*\]`)

// GetDailyPrices fetches daily OHLCV rows for ticker over [start, end], both inclusive.
// An empty slice with a nil error means the range holds no trading days.
func (c *Client) GetDailyPrices(ctx context.Context, ticker string, start, end time.Time) ([]DailyPrice, error) {
	params := url.Values{}
	params.Set("symbol", ticker)
	params.Set("requestType", "1")
	params.Set("startTime", start.Format(dayLayout))
	params.Set("endTime", end.Format(dayLayout))
	params.Set("timeframe", "day")

	body, err := c.doRequest(ctx, c.priceURL, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch daily prices for %s: %w", ticker, err)
	}

	prices, err := parseDailySeries(body, start.Location())
	if err != nil {
		return nil, fmt.Errorf("failed to parse daily prices for %s: %w", ticker, err)
	}

	// Keep only the requested window, ordered by date
	startDay := start.Format(dayLayout)
	endDay := end.Format(dayLayout)
	filtered := make([]DailyPrice, 0, len(prices))
	for _, p := range prices {
		d := p.Date.Format(dayLayout)
		if d < startDay || d > endDay {
			continue
		}
		filtered = append(filtered, p)
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].Date.Before(filtered[j].Date) })

	return filtered, nil
}

// parseDailySeries parses the array-of-rows body. The first row is the header.
func parseDailySeries(body []byte, loc *time.Location) ([]DailyPrice, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return []DailyPrice{}, nil
	}
	body = bytes.ReplaceAll(body, []byte("'"), []byte(`"`))
	body = trailingCommaPattern.ReplaceAll(body, []byte("]"))

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var rows [][]any
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal series: %w", err)
	}
	if len(rows) == 0 {
		return []DailyPrice{}, nil
	}

	// Build column index map
	colIdx := make(map[string]int)
	for i, col := range rows[0] {
		if s, ok := col.(string); ok {
			colIdx[s] = i
		}
	}
	for _, col := range []string{colDate, colOpen, colHigh, colLow, colClose, colVolume} {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	prices := make([]DailyPrice, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) < len(rows[0]) {
			return nil, fmt.Errorf("row %d: expected %d fields, got %d", i+2, len(rows[0]), len(row))
		}

		dateStr := fmt.Sprint(row[colIdx[colDate]])
		date, err := time.ParseInLocation(dayLayout, dateStr, loc)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid date %q", i+2, dateStr)
		}

		var p DailyPrice
		p.Date = date
		for _, f := range []struct {
			col string
			dst *float64
		}{
			{colOpen, &p.Open}, {colHigh, &p.High}, {colLow, &p.Low}, {colClose, &p.Close},
		} {
			v, err := toFloat(row[colIdx[f.col]])
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid %s: %w", i+2, f.col, err)
			}
			*f.dst = v
		}

		vol, err := toFloat(row[colIdx[colVolume]])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid %s: %w", i+2, colVolume, err)
		}
		p.Volume = int64(vol)

		prices = append(prices, p)
	}
	return prices, nil
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case json.Number:
		return x.Float64()
	case string:
		return strconv.ParseFloat(x, 64)
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("unexpected value %v", v)
	}
}
