package boundaries

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGeometry_AcceptsPolygonal(t *testing.T) {
	mp := orb.MultiPolygon{square}

	g, err := ValidateGeometry(square)
	require.NoError(t, err)
	assert.Equal(t, square, g)

	g, err = ValidateGeometry(mp)
	require.NoError(t, err)
	assert.Equal(t, mp, g)
}

func TestValidateGeometry_RejectsOtherTypes(t *testing.T) {
	tests := []struct {
		geometry orb.Geometry
		want     string
	}{
		{orb.Point{1, 2}, "Point"},
		{orb.MultiPoint{{1, 2}}, "MultiPoint"},
		{orb.LineString{{0, 0}, {1, 1}}, "LineString"},
		{orb.MultiLineString{{{0, 0}, {1, 1}}}, "MultiLineString"},
		{orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 0}}, "LinearRing"},
		{orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1, 1}}, "Bound"},
		{orb.Collection{square}, "GeometryCollection"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			g, err := ValidateGeometry(tt.geometry)

			assert.Nil(t, g)
			var ie *ImportError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, KindUnsupportedGeometryType, ie.Kind)
			assert.Equal(t, tt.want, ie.GeometryType)
			assert.Contains(t, ie.Message, tt.want)
		})
	}
}

func TestValidateGeometry_Nil(t *testing.T) {
	_, err := ValidateGeometry(nil)

	assert.Equal(t, KindNoGeometryFound, KindOf(err))
}
