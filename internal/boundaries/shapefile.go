package boundaries

import (
	"context"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ShapefileDecoder turns a zipped shapefile into a GeoJSON feature collection.
// Its errors are passed to the caller verbatim.
type ShapefileDecoder interface {
	Decode(ctx context.Context, archive []byte) (*geojson.FeatureCollection, error)
}

// ExtractShapefile decodes the archive and selects the geometry of its first feature.
func ExtractShapefile(ctx context.Context, decoder ShapefileDecoder, archive []byte) (orb.Geometry, error) {
	fc, err := decoder.Decode(ctx, archive)
	if err != nil {
		return nil, externalDecodeError(err)
	}
	if fc == nil || len(fc.Features) == 0 {
		return nil, noGeometryFound("shapefile contains no features")
	}

	first := fc.Features[0]
	if first == nil || first.Geometry == nil {
		return nil, noGeometryFound("first shapefile record has no geometry")
	}
	return first.Geometry, nil
}
