package boundaries

import (
	"fmt"

	"github.com/paulmach/orb"

	"carbon-scribe/project-portal/boundary-importer/pkg/geospatial"
)

// ValidateGeometry accepts Polygon and MultiPolygon geometries unchanged and
// rejects every other variant, naming the type that was found.
func ValidateGeometry(g orb.Geometry) (orb.Geometry, error) {
	switch v := g.(type) {
	case orb.Polygon, orb.MultiPolygon:
		return g, nil
	case orb.Point, orb.MultiPoint, orb.LineString, orb.MultiLineString,
		orb.Ring, orb.Bound, orb.Collection:
		return nil, unsupportedGeometryType(geospatial.TypeName(v))
	case nil:
		return nil, noGeometryFound("geometry is empty")
	default:
		return nil, unsupportedGeometryType(fmt.Sprintf("%T", v))
	}
}
