package boundaries

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const squareCoords = `[[[100,13],[101,13],[101,14],[100,14],[100,13]]]`

var square = orb.Polygon{{{100, 13}, {101, 13}, {101, 14}, {100, 14}, {100, 13}}}

func TestExtractGeoJSON_PolygonRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bare polygon", `{"type":"Polygon","coordinates":` + squareCoords + `}`},
		{"feature", `{"type":"Feature","properties":{"name":"a"},"geometry":{"type":"Polygon","coordinates":` + squareCoords + `}}`},
		{"feature collection", `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":` + squareCoords + `}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ExtractGeoJSON([]byte(tt.doc))

			require.NoError(t, err)
			assert.Equal(t, square, g)
		})
	}
}

func TestExtractGeoJSON_FirstFeatureWins(t *testing.T) {
	doc := `{"type":"FeatureCollection","features":[
		{"type":"Feature","geometry":{"type":"Polygon","coordinates":` + squareCoords + `}},
		{"type":"Feature","geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}},
		{"type":"Feature","geometry":{"type":"Point","coordinates":[5,5]}}
	]}`

	g, err := ExtractGeoJSON([]byte(doc))

	require.NoError(t, err)
	assert.Equal(t, square, g)
}

func TestExtractGeoJSON_ForeignMembersAreIgnored(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"feature with features member", `{"type":"Feature","features":"n/a","geometry":{"type":"Polygon","coordinates":` + squareCoords + `}}`},
		{"collection with geometry member", `{"type":"FeatureCollection","geometry":42,"features":[{"type":"Feature","geometry":{"type":"Polygon","coordinates":` + squareCoords + `}}]}`},
		{"first feature with foreign member", `{"type":"FeatureCollection","features":[{"type":"Feature","features":{"x":1},"geometry":{"type":"Polygon","coordinates":` + squareCoords + `}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ExtractGeoJSON([]byte(tt.doc))

			require.NoError(t, err)
			assert.Equal(t, square, g)
		})
	}
}

func TestExtractGeoJSON_MultiPolygon(t *testing.T) {
	doc := `{"type":"MultiPolygon","coordinates":[` + squareCoords + `,[[[0,0],[1,0],[1,1],[0,0]]]]}`

	g, err := ExtractGeoJSON([]byte(doc))

	require.NoError(t, err)
	mp, ok := g.(orb.MultiPolygon)
	require.True(t, ok)
	assert.Len(t, mp, 2)
	assert.Equal(t, square, mp[0])
}

func TestExtractGeoJSON_LineStringFeatureIsExtracted(t *testing.T) {
	doc := `{"type":"Feature","geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]}}`

	g, err := ExtractGeoJSON([]byte(doc))

	require.NoError(t, err)
	assert.Equal(t, orb.LineString{{0, 0}, {1, 1}}, g)
}

func TestExtractGeoJSON_NoGeometryFound(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"null feature geometry", `{"type":"Feature","properties":{},"geometry":null}`},
		{"missing feature geometry", `{"type":"Feature","properties":{}}`},
		{"empty collection", `{"type":"FeatureCollection","features":[]}`},
		{"collection without features", `{"type":"FeatureCollection"}`},
		{"first feature null geometry", `{"type":"FeatureCollection","features":[{"type":"Feature","geometry":null},{"type":"Feature","geometry":{"type":"Polygon","coordinates":` + squareCoords + `}}]}`},
		{"bare line string", `{"type":"LineString","coordinates":[[0,0],[1,1]]}`},
		{"unknown type", `{"type":"Topology"}`},
		{"no type", `{"coordinates":[]}`},
		{"array root", `[1,2,3]`},
		{"string root", `"hello"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ExtractGeoJSON([]byte(tt.doc))

			assert.Nil(t, g)
			assert.Equal(t, KindNoGeometryFound, KindOf(err))
		})
	}
}

func TestExtractGeoJSON_ParseError(t *testing.T) {
	tests := []struct {
		name string
		doc  []byte
	}{
		{"truncated", []byte(`{"type":"Feature",`)},
		{"empty", []byte(``)},
		{"trailing garbage", []byte(`{"type":"Polygon","coordinates":[]} extra`)},
		{"invalid utf8", []byte{'{', '"', 0xff, 0xfe, '"', ':', '1', '}'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractGeoJSON(tt.doc)

			assert.Equal(t, KindParseError, KindOf(err))
		})
	}
}

func TestExtractGeoJSON_UnknownGeometryTag(t *testing.T) {
	doc := `{"type":"Feature","geometry":{"type":"Circle","coordinates":[0,0],"radius":5}}`

	_, err := ExtractGeoJSON([]byte(doc))

	var ie *ImportError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, KindUnsupportedGeometryType, ie.Kind)
	assert.Equal(t, "Circle", ie.GeometryType)
}
