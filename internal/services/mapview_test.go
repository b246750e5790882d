package services

import (
	"strings"
	"testing"

	"github.com/epeers/krxdash/internal/geo"
	"github.com/epeers/krxdash/internal/region"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBoundaries = `{"type":"FeatureCollection","features":[
{"type":"Feature","properties":{"name":"경기도"},"geometry":{"type":"Polygon","coordinates":[[[126.5,36.9],[127.8,36.9],[127.8,38.2],[126.5,38.2],[126.5,36.9]]]}}
]}`

func TestBuildMapView_Resolved(t *testing.T) {
	resolver := region.Default()
	boundaries, err := geo.Parse([]byte(testBoundaries), nil)
	require.NoError(t, err)

	res := resolver.Resolve("경기도 성남시")
	view := BuildMapView("NAVER", "경기도 성남시", res, boundaries)

	assert.Equal(t, region.ZoomResolved, view.Zoom)
	assert.Equal(t, res.Center(), view.Center)
	assert.Equal(t, "경기도", view.Region)
	assert.True(t, view.Resolved)
	assert.Equal(t, "cartodbpositron", view.Tiles)
	assert.Equal(t, "📍 본사 소재지: 경기도 성남시", view.Heading)
	assert.Equal(t, "본사는 경기도에 위치해 있습니다.", view.Caption)

	require.NotNil(t, view.Overlay)
	assert.Equal(t, "#f1f1f1", view.Overlay.FillColor)
	assert.Equal(t, 0.1, view.Overlay.FillOpacity)
	assert.Equal(t, 1, view.Overlay.Weight)

	require.NotNil(t, view.Bounds)
	assert.InDelta(t, 36.9, view.Bounds[0][0], 1e-9)
	assert.InDelta(t, 127.8, view.Bounds[1][1], 1e-9)

	require.NotNil(t, view.Marker)
	assert.Equal(t, "<b>NAVER</b>", view.Marker.Popup)
	assert.Equal(t, "red", view.Marker.Color)
	assert.Equal(t, "university", view.Marker.Icon)
	assert.Len(t, view.Key, len("map_")+12)
	assert.True(t, strings.HasPrefix(view.Key, "map_w"), "Korea lies in geohash cell w: %s", view.Key)
}

func TestBuildMapView_KeySharedWithinRegion(t *testing.T) {
	resolver := region.Default()

	naver := BuildMapView("NAVER", "경기도 성남시", resolver.Resolve("경기도 성남시"), nil)
	samsung := BuildMapView("삼성전자", "경기도 수원시", resolver.Resolve("경기도 수원시"), nil)
	kakao := BuildMapView("카카오", "제주특별자치도 제주시", resolver.Resolve("제주특별자치도 제주시"), nil)
	abroad := BuildMapView("제일약품", "미국", resolver.Resolve("미국"), nil)

	assert.Equal(t, naver.Key, samsung.Key)
	assert.NotEqual(t, naver.Key, kakao.Key)
	assert.Equal(t, MapKey(region.DefaultCenter), abroad.Key)
	assert.NotEqual(t, naver.Key, abroad.Key)
}

func TestBuildMapView_Unresolved(t *testing.T) {
	res := region.Default().Resolve("미국 캘리포니아")
	view := BuildMapView("제일약품", "미국 캘리포니아", res, nil)

	assert.False(t, view.Resolved)
	assert.Equal(t, region.ZoomNationwide, view.Zoom)
	assert.Equal(t, region.DefaultCenter, view.Center)
	assert.Nil(t, view.Marker, "no marker when unresolved")
	assert.Nil(t, view.Overlay, "no overlay without boundaries")
	assert.Nil(t, view.Bounds)
	assert.Empty(t, view.Caption)
	assert.Equal(t, "📍 본사 소재지: 미국 캘리포니아", view.Heading)
}

func TestBuildMapView_EscapesPopup(t *testing.T) {
	res := region.Default().Resolve("서울특별시")
	view := BuildMapView("<script>", "서울특별시", res, nil)

	require.NotNil(t, view.Marker)
	assert.Equal(t, "<b>&lt;script&gt;</b>", view.Marker.Popup)
}
