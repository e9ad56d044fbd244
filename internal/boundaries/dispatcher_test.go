package boundaries

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"field.geojson", FormatGeoJSON},
		{"FIELD.GeoJSON", FormatGeoJSON},
		{"export.json", FormatGeoJSON},
		{"farm.kml", FormatKML},
		{"Farm.KML", FormatKML},
		{"parcels.zip", FormatZippedShapefile},
		{"shape.shp", FormatBareShapefileUnsupported},
		{"SHAPE.SHP", FormatBareShapefileUnsupported},
		{"data.txt", FormatUnknown},
		{"farm.kmz", FormatUnknown},
		{"geojson", FormatUnknown},
		{"", FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.name))
		})
	}
}

func TestSupportedExtensions(t *testing.T) {
	exts := SupportedExtensions()

	assert.ElementsMatch(t, []string{".geojson", ".json", ".kml", ".zip"}, exts)
	assert.NotContains(t, exts, ".shp")
}
