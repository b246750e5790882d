package models

// WarningCode categorizes warnings by subsystem.
// W1xxx = region/map, W2xxx = pricing, W3xxx = favorites.
type WarningCode string

const (
	WarnRegionUnresolved    WarningCode = "W1001" // address matched no alias; map shows the nationwide view
	WarnBoundaryUnavailable WarningCode = "W1002" // boundary GeoJSON could not be loaded; map has no overlay
	WarnRegionOutsideBounds WarningCode = "W1003" // region center lies outside that region's boundary rectangle
	WarnPriceCacheFailed    WarningCode = "W2001" // PostgreSQL price cache read or write failed; provider data served
	WarnFavoritesCorrupt    WarningCode = "W3001" // favorites file unreadable; session started with an empty set
)

// Warning represents a non-fatal issue encountered during processing.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}
