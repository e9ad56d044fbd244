package geospatial

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

const squareMetersPerHectare = 10000

// TypeName returns the GeoJSON type tag for a geometry, or "null" when g is nil.
func TypeName(g orb.Geometry) string {
	if g == nil {
		return "null"
	}
	switch g.(type) {
	case orb.Ring:
		return "LinearRing"
	case orb.Bound:
		return "Bound"
	}
	return g.GeoJSONType()
}

// CalculateArea calculates the geodesic area in square meters for a geometry
func CalculateArea(geometry orb.Geometry) float64 {
	return geo.Area(geometry)
}

// ConvertToHectares converts square meters to hectares
func ConvertToHectares(sqMeters float64) float64 {
	return sqMeters / squareMetersPerHectare
}
