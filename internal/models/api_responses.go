package models

// LookupStatus is the outcome of one dashboard lookup.
// Every status other than LookupOK is shown inline as a message.
type LookupStatus string

const (
	LookupIdle            LookupStatus = "idle"
	LookupOK              LookupStatus = "ok"
	LookupNotFound        LookupStatus = "not_found"
	LookupNoData          LookupStatus = "no_data"
	LookupRangeInvalid    LookupStatus = "range_invalid"
	LookupDataUnavailable LookupStatus = "data_unavailable"
	LookupError           LookupStatus = "error"
)

// DashboardResult is everything the page needs to render one lookup
type DashboardResult struct {
	Status     LookupStatus `json:"status"`
	Message    string       `json:"message"`
	Company    *Company     `json:"company,omitempty"`
	StartDate  string       `json:"start_date,omitempty"`
	EndDate    string       `json:"end_date,omitempty"`
	DataPoints int          `json:"data_points"`
	Chart      *ChartFigure `json:"chart,omitempty"`
	Map        *MapView     `json:"map,omitempty"`
	Export     *ExportInfo  `json:"export,omitempty"`
	Warnings   []Warning    `json:"warnings,omitempty"`
	Prices     []PriceData  `json:"-"`
}

// ChartFigure is a Plotly-compatible figure description
type ChartFigure struct {
	Title  string         `json:"title"`
	Data   []ChartTrace   `json:"data"`
	Layout map[string]any `json:"layout"`
}

// ChartTrace is one Plotly trace. Candlestick traces fill the OHLC fields,
// bar traces fill Y.
type ChartTrace struct {
	Type       string         `json:"type"`
	Name       string         `json:"name"`
	X          []string       `json:"x"`
	Open       []float64      `json:"open,omitempty"`
	High       []float64      `json:"high,omitempty"`
	Low        []float64      `json:"low,omitempty"`
	Close      []float64      `json:"close,omitempty"`
	Y          []float64      `json:"y,omitempty"`
	XAxis      string         `json:"xaxis"`
	YAxis      string         `json:"yaxis"`
	Increasing map[string]any `json:"increasing,omitempty"`
	Decreasing map[string]any `json:"decreasing,omitempty"`
	Marker     map[string]any `json:"marker,omitempty"`
	Opacity    float64        `json:"opacity,omitempty"`
}

// MapView describes the headquarters map: base tiles, one boundary overlay
// and at most one marker.
type MapView struct {
	Key      string         `json:"key"`
	Center   [2]float64     `json:"center"`
	Zoom     int            `json:"zoom"`
	Tiles    string         `json:"tiles"`
	Region   string         `json:"region,omitempty"`
	Resolved bool           `json:"resolved"`
	Overlay  *OverlayStyle  `json:"overlay,omitempty"`
	Bounds   *[2][2]float64 `json:"bounds,omitempty"`
	Marker   *MapMarker     `json:"marker,omitempty"`
	Heading  string         `json:"heading"`
	Caption  string         `json:"caption,omitempty"`
}

// OverlayStyle is the style applied to the province boundary layer
type OverlayStyle struct {
	URL         string  `json:"url"`
	FillColor   string  `json:"fill_color"`
	FillOpacity float64 `json:"fill_opacity"`
	Color       string  `json:"color"`
	Weight      int     `json:"weight"`
}

// MapMarker pins the company headquarters
type MapMarker struct {
	Location [2]float64 `json:"location"`
	Popup    string     `json:"popup"`
	Color    string     `json:"color"`
	Icon     string     `json:"icon"`
}

// ExportInfo tells the page how to request the spreadsheet download
type ExportInfo struct {
	FileName string `json:"file_name"`
	URL      string `json:"url"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// TextRequest carries the search box contents for search and favorite toggle events
type TextRequest struct {
	Text string `json:"text" binding:"required"`
}

// SelectFavoriteRequest carries a sidebar favorite click
type SelectFavoriteRequest struct {
	Name string `json:"name" binding:"required"`
}

// LookupRequest carries the date range query parameters
type LookupRequest struct {
	StartDate string `form:"start"`
	EndDate   string `form:"end"`
}

// CompanySuggestion is one autocomplete entry
type CompanySuggestion struct {
	Name   string `json:"name"`
	Ticker string `json:"ticker"`
}
