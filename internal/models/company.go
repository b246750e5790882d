package models

import (
	"time"
)

// Company represents one row of the KRX listed-company directory
type Company struct {
	Name        string     `json:"name"`
	Ticker      string     `json:"ticker"` // six-digit zero-padded code
	RegionRaw   string     `json:"region_raw"`
	Industry    string     `json:"industry,omitempty"`
	ListingDate *time.Time `json:"listing_date,omitempty"`
}

// PriceData represents one trading day of a company's price history
type PriceData struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// DateRange is an inclusive range of calendar days.
// A zero Start or End means the user has not picked that date yet.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Complete reports whether both ends of the range are set
func (r DateRange) Complete() bool {
	return !r.Start.IsZero() && !r.End.IsZero()
}

// Valid reports whether the range is complete and not inverted
func (r DateRange) Valid() bool {
	return r.Complete() && !r.Start.After(r.End)
}
