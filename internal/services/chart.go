package services

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"time"

	"github.com/epeers/krxdash/internal/models"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	colorIncreasing = "#d62728"
	colorDecreasing = "#1f77b4"
	colorVolume     = "gray"

	// Row heights 0.7 / 0.3 with a 0.05 gap between panes.
	pricePaneBottom  = 0.335
	volumePaneTop    = 0.285
	chartHeight      = 500
	pngWidth         = 1000
	pngPriceHeight   = 420
	pngVolumeHeight  = 180
	pngPaddingAround = 12
)

// BuildChartFigure describes a candlestick pane over a volume pane sharing one date axis.
func BuildChartFigure(company models.Company, prices []models.PriceData) *models.ChartFigure {
	n := len(prices)
	x := make([]string, n)
	open := make([]float64, n)
	high := make([]float64, n)
	low := make([]float64, n)
	closes := make([]float64, n)
	volume := make([]float64, n)
	for i, p := range prices {
		x[i] = p.Date.Format("2006-01-02")
		open[i] = p.Open
		high[i] = p.High
		low[i] = p.Low
		closes[i] = p.Close
		volume[i] = float64(p.Volume)
	}

	title := fmt.Sprintf("%s (%s) 주가", company.Name, company.Ticker)
	return &models.ChartFigure{
		Title: title,
		Data: []models.ChartTrace{
			{
				Type:       "candlestick",
				Name:       "Price",
				X:          x,
				Open:       open,
				High:       high,
				Low:        low,
				Close:      closes,
				XAxis:      "x",
				YAxis:      "y",
				Increasing: map[string]any{"line": map[string]any{"color": colorIncreasing}},
				Decreasing: map[string]any{"line": map[string]any{"color": colorDecreasing}},
			},
			{
				Type:    "bar",
				Name:    "Volume",
				X:       x,
				Y:       volume,
				XAxis:   "x2",
				YAxis:   "y2",
				Marker:  map[string]any{"color": colorVolume},
				Opacity: 0.5,
			},
		},
		Layout: map[string]any{
			"title":      map[string]any{"text": title},
			"template":   "plotly_white",
			"height":     chartHeight,
			"showlegend": false,
			"xaxis":      map[string]any{"anchor": "y", "rangeslider": map[string]any{"visible": false}, "showticklabels": false},
			"xaxis2":     map[string]any{"anchor": "y2", "matches": "x"},
			"yaxis":      map[string]any{"domain": []float64{pricePaneBottom, 1}},
			"yaxis2":     map[string]any{"domain": []float64{0, volumePaneTop}},
			"margin":     map[string]any{"l": 10, "r": 10, "t": 10, "b": 10},
		},
	}
}

// RenderChartPNG draws the close price over the volume as a static PNG.
// Both panes share the same x range so dates line up.
func RenderChartPNG(prices []models.PriceData) ([]byte, error) {
	if len(prices) == 0 {
		return nil, fmt.Errorf("no prices to render")
	}

	times := make([]time.Time, 0, len(prices)+1)
	closes := make([]float64, 0, len(prices)+1)
	volumes := make([]float64, 0, len(prices)+1)
	for _, p := range prices {
		times = append(times, p.Date)
		closes = append(closes, p.Close)
		volumes = append(volumes, float64(p.Volume))
	}
	// go-chart needs a non-empty range, so pad a lone point to two.
	if len(times) == 1 {
		times = append(times, times[0].AddDate(0, 0, 1))
		closes = append(closes, closes[0])
		volumes = append(volumes, volumes[0])
	}
	xRange := &chart.ContinuousRange{
		Min: chart.TimeToFloat64(times[0]),
		Max: chart.TimeToFloat64(times[len(times)-1]),
	}

	priceChart := chart.Chart{
		Width:      pngWidth,
		Height:     pngPriceHeight,
		Background: chart.Style{Padding: chart.Box{Top: pngPaddingAround, Left: pngPaddingAround, Right: pngPaddingAround, Bottom: 4}},
		XAxis:      chart.XAxis{Range: xRange, ValueFormatter: chart.TimeDateValueFormatter},
		YAxis:      chart.YAxis{Range: paddedRange(closes, false), ValueFormatter: wholeNumberFormatter},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Close",
				XValues: times,
				YValues: closes,
				Style:   chart.Style{StrokeColor: drawing.ColorFromHex(colorIncreasing[1:]), StrokeWidth: 2},
			},
		},
	}

	volumeChart := chart.Chart{
		Width:      pngWidth,
		Height:     pngVolumeHeight,
		Background: chart.Style{Padding: chart.Box{Top: 4, Left: pngPaddingAround, Right: pngPaddingAround, Bottom: pngPaddingAround}},
		XAxis:      chart.XAxis{Range: xRange, ValueFormatter: chart.TimeDateValueFormatter},
		YAxis:      chart.YAxis{Range: paddedRange(volumes, true), ValueFormatter: wholeNumberFormatter},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Volume",
				XValues: times,
				YValues: volumes,
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("808080"),
					FillColor:   drawing.ColorFromHex("808080").WithAlpha(128),
					StrokeWidth: 1,
				},
			},
		},
	}

	top, err := renderPane(priceChart)
	if err != nil {
		return nil, fmt.Errorf("failed to render price pane: %w", err)
	}
	bottom, err := renderPane(volumeChart)
	if err != nil {
		return nil, fmt.Errorf("failed to render volume pane: %w", err)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, pngWidth, top.Bounds().Dy()+bottom.Bounds().Dy()))
	draw.Draw(canvas, top.Bounds(), top, image.Point{}, draw.Src)
	draw.Draw(canvas, bottom.Bounds().Add(image.Pt(0, top.Bounds().Dy())), bottom, image.Point{}, draw.Src)

	var out bytes.Buffer
	if err := png.Encode(&out, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode chart: %w", err)
	}
	return out.Bytes(), nil
}

func renderPane(c chart.Chart) (image.Image, error) {
	var buf bytes.Buffer
	if err := c.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

// paddedRange returns a y range around values that is never empty.
func paddedRange(values []float64, fromZero bool) *chart.ContinuousRange {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if fromZero {
		lo = 0
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = max(hi*0.05, 1)
	}
	if !fromZero {
		lo -= pad
	}
	return &chart.ContinuousRange{Min: lo, Max: hi + pad}
}

func wholeNumberFormatter(v any) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return ""
}
