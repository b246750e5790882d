package services

import (
	"fmt"
	"html"

	geohash "github.com/TomiHiltunen/geohash-golang"
	"github.com/epeers/krxdash/internal/geo"
	"github.com/epeers/krxdash/internal/models"
	"github.com/epeers/krxdash/internal/region"
)

const (
	mapTiles     = "cartodbpositron"
	boundaryURL  = "/api/geo"
	markerColor  = "red"
	markerIcon   = "university"
	overlayFill  = "#f1f1f1"
	overlayColor = "gray"
)

// BuildMapView positions the headquarters map for a company.
// The boundary overlay is included when boundaries are available; the marker
// and caption only when the region resolved. Key is derived from the geohash
// of the center, so companies headquartered in the same region share a map.
func BuildMapView(companyName, regionRaw string, res region.Resolution, boundaries *geo.Boundaries) *models.MapView {
	center := res.Center()
	view := &models.MapView{
		Key:      MapKey(center),
		Center:   center,
		Zoom:     res.Zoom,
		Tiles:    mapTiles,
		Region:   res.Canonical,
		Resolved: res.Resolved,
		Heading:  "📍 본사 소재지: " + regionRaw,
	}

	if boundaries != nil {
		view.Overlay = &models.OverlayStyle{
			URL:         boundaryURL,
			FillColor:   overlayFill,
			FillOpacity: 0.1,
			Color:       overlayColor,
			Weight:      1,
		}
	}

	if !res.Resolved {
		return view
	}

	if boundaries != nil {
		if sw, ne, ok := boundaries.Bounds(res.Canonical); ok {
			view.Bounds = &[2][2]float64{sw, ne}
		}
	}
	view.Marker = &models.MapMarker{
		Location: center,
		Popup:    "<b>" + html.EscapeString(companyName) + "</b>",
		Color:    markerColor,
		Icon:     markerIcon,
	}
	view.Caption = fmt.Sprintf("본사는 %s에 위치해 있습니다.", res.Canonical)
	return view
}

// MapKey identifies the map for a center point
func MapKey(center [2]float64) string {
	return "map_" + geohash.Encode(center[0], center[1])
}
