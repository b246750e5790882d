package geo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"name": "서울특별시", "code": "11"},
     "geometry": {"type": "Polygon", "coordinates": [[[126.76, 37.41], [127.18, 37.41], [127.18, 37.70], [126.76, 37.70], [126.76, 37.41]]]}},
    {"type": "Feature", "properties": {"CTP_KOR_NM": "강원도"},
     "geometry": {"type": "MultiPolygon", "coordinates": [
        [[[127.0, 37.0], [128.0, 37.0], [128.0, 38.0], [127.0, 37.0]]],
        [[[128.0, 37.5], [129.4, 37.5], [129.4, 38.6], [128.0, 37.5]]]
     ]}},
    {"type": "Feature", "properties": {},
     "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [1, 0], [1, 1], [0, 0]]]}}
  ]
}`

func TestParse(t *testing.T) {
	canon := func(n string) string {
		if n == "강원도" {
			return "강원특별자치도"
		}
		return n
	}
	b, err := Parse([]byte(testGeoJSON), canon)
	require.NoError(t, err)

	assert.Equal(t, []string{"서울특별시", "강원특별자치도"}, b.Names(), "unnamed features are skipped")
	assert.Equal(t, testGeoJSON, string(b.Raw()))

	sw, ne, ok := b.Bounds("서울특별시")
	require.True(t, ok)
	assert.InDelta(t, 37.41, sw[0], 1e-9)
	assert.InDelta(t, 126.76, sw[1], 1e-9)
	assert.InDelta(t, 37.70, ne[0], 1e-9)
	assert.InDelta(t, 127.18, ne[1], 1e-9)

	sw, ne, ok = b.Bounds("강원특별자치도")
	require.True(t, ok, "legacy feature name is canonicalized")
	assert.InDelta(t, 37.0, sw[0], 1e-9)
	assert.InDelta(t, 127.0, sw[1], 1e-9)
	assert.InDelta(t, 38.6, ne[0], 1e-9)
	assert.InDelta(t, 129.4, ne[1], 1e-9)

	assert.True(t, b.Contains("서울특별시", 37.5665, 126.9780))
	assert.False(t, b.Contains("서울특별시", 35.1796, 129.0756))
	assert.False(t, b.Contains("부산광역시", 35.1796, 129.0756))

	_, _, ok = b.Bounds("부산광역시")
	assert.False(t, ok)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte(`{"type": "Feature"}`), nil)
	assert.Error(t, err)

	_, err = Parse([]byte(`not json`), nil)
	assert.Error(t, err)

	_, err = Parse([]byte(`{"type": "FeatureCollection", "features": [
		{"properties": {"name": "x"}, "geometry": {"type": "Point", "coordinates": [1, 2]}}]}`), nil)
	assert.ErrorContains(t, err, "Point")
}

func TestLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sido.json")
	require.NoError(t, os.WriteFile(path, []byte(testGeoJSON), 0644))

	l := NewLoader(path, nil)
	b1, err := l.Get()
	require.NoError(t, err)

	// Later edits are not picked up: the file is read once per process.
	require.NoError(t, os.Remove(path))
	b2, err := l.Get()
	require.NoError(t, err)
	assert.Same(t, b1, b2)

	_, err = NewLoader(filepath.Join(t.TempDir(), "missing.json"), nil).Get()
	assert.Error(t, err)
}
