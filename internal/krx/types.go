package krx

import "time"

// ListedCompany represents a row of the KIND listed-company download
type ListedCompany struct {
	Name        string
	Ticker      string
	Industry    string
	ListingDate *time.Time
	Region      string
}

// DailyPrice represents one parsed row of the daily price series
type DailyPrice struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}
