// Package shapefile decodes zipped ESRI Shapefile layers into GeoJSON feature collections.
package shapefile

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

var (
	// ErrNoShapefile is returned when the archive holds no .shp entry.
	ErrNoShapefile = errors.New("shapefile: archive contains no .shp file")
	// ErrMissingDBF is returned when the .shp entry has no .dbf companion.
	ErrMissingDBF = errors.New("shapefile: missing .dbf companion")
	// ErrCorruptLayer is returned when the layer files cannot be read as a shapefile.
	ErrCorruptLayer = errors.New("shapefile: corrupt layer")
)

// dBase header: 32 fixed bytes plus the 0x0D field terminator.
const minDBFSize = 33

// Decoder reads the first layer of a zipped shapefile.
type Decoder struct{}

// NewDecoder creates a new shapefile decoder
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode converts the first .shp/.dbf pair found in the zip archive into a feature collection.
// Every record becomes one feature, with its attribute row as string properties.
func (d *Decoder) Decode(ctx context.Context, archive []byte) (fc *geojson.FeatureCollection, err error) {
	// go-shp panics on some truncated headers.
	defer func() {
		if r := recover(); r != nil {
			fc = nil
			err = fmt.Errorf("%w: %v", ErrCorruptLayer, r)
		}
	}()

	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("shapefile: open archive: %w", err)
	}

	shpFile, dbfFile, err := findLayer(zr.File)
	if err != nil {
		return nil, err
	}
	if dbfFile.UncompressedSize64 < minDBFSize {
		return nil, fmt.Errorf("%w: %s is too short", ErrCorruptLayer, dbfFile.Name)
	}

	shpRC, err := shpFile.Open()
	if err != nil {
		return nil, fmt.Errorf("shapefile: open %s: %w", shpFile.Name, err)
	}
	dbfRC, err := dbfFile.Open()
	if err != nil {
		shpRC.Close()
		return nil, fmt.Errorf("shapefile: open %s: %w", dbfFile.Name, err)
	}

	reader := shp.SequentialReaderFromExt(shpRC, dbfRC)
	defer reader.Close()

	fields := reader.Fields()
	fc = geojson.NewFeatureCollection()
	for reader.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		_, shape := reader.Shape()
		g, err := toGeometry(shape)
		if err != nil {
			return nil, err
		}

		feature := geojson.NewFeature(g)
		for i, field := range fields {
			feature.Properties[field.String()] = strings.TrimRight(reader.Attribute(i), " \x00")
		}
		fc.Append(feature)
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("shapefile: read %s: %w", shpFile.Name, err)
	}

	return fc, nil
}

func findLayer(files []*zip.File) (*zip.File, *zip.File, error) {
	var shpFile *zip.File
	for _, f := range files {
		if strings.HasPrefix(f.Name, "__MACOSX/") {
			continue
		}
		if strings.EqualFold(path.Ext(f.Name), ".shp") {
			shpFile = f
			break
		}
	}
	if shpFile == nil {
		return nil, nil, ErrNoShapefile
	}

	base := strings.TrimSuffix(shpFile.Name, path.Ext(shpFile.Name))
	for _, f := range files {
		if strings.EqualFold(f.Name, base+".dbf") {
			return shpFile, f, nil
		}
	}
	return nil, nil, fmt.Errorf("%w: %s", ErrMissingDBF, shpFile.Name)
}

func toGeometry(shape shp.Shape) (orb.Geometry, error) {
	switch s := shape.(type) {
	case *shp.Null:
		return nil, nil
	case *shp.Point:
		return orb.Point{s.X, s.Y}, nil
	case *shp.PointZ:
		return orb.Point{s.X, s.Y}, nil
	case *shp.PointM:
		return orb.Point{s.X, s.Y}, nil
	case *shp.MultiPoint:
		return multiPoint(s.Points), nil
	case *shp.MultiPointZ:
		return multiPoint(s.Points), nil
	case *shp.MultiPointM:
		return multiPoint(s.Points), nil
	case *shp.PolyLine:
		return lineFromParts(s.Parts, s.Points), nil
	case *shp.PolyLineZ:
		return lineFromParts(s.Parts, s.Points), nil
	case *shp.PolyLineM:
		return lineFromParts(s.Parts, s.Points), nil
	case *shp.Polygon:
		return polygonFromParts(s.Parts, s.Points), nil
	case *shp.PolygonZ:
		return polygonFromParts(s.Parts, s.Points), nil
	case *shp.PolygonM:
		return polygonFromParts(s.Parts, s.Points), nil
	default:
		return nil, fmt.Errorf("shapefile: unsupported shape type %T", shape)
	}
}

func multiPoint(points []shp.Point) orb.MultiPoint {
	mp := make(orb.MultiPoint, len(points))
	for i, p := range points {
		mp[i] = orb.Point{p.X, p.Y}
	}
	return mp
}

func splitParts(parts []int32, points []shp.Point) [][]orb.Point {
	out := make([][]orb.Point, 0, len(parts))
	for i, start := range parts {
		end := int32(len(points))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		if start < 0 || start > end || int(end) > len(points) {
			continue
		}
		seq := make([]orb.Point, 0, end-start)
		for _, p := range points[start:end] {
			seq = append(seq, orb.Point{p.X, p.Y})
		}
		out = append(out, seq)
	}
	return out
}

func lineFromParts(parts []int32, points []shp.Point) orb.Geometry {
	lines := splitParts(parts, points)
	if len(lines) == 1 {
		return orb.LineString(lines[0])
	}
	mls := make(orb.MultiLineString, len(lines))
	for i, l := range lines {
		mls[i] = orb.LineString(l)
	}
	return mls
}

// polygonFromParts groups shapefile rings into polygons. Clockwise rings are
// outer boundaries, counter-clockwise rings are holes of the outer ring containing them.
func polygonFromParts(parts []int32, points []shp.Point) orb.Geometry {
	var (
		polygons orb.MultiPolygon
		holes    []orb.Ring
	)
	for _, seq := range splitParts(parts, points) {
		ring := orb.Ring(seq)
		if len(ring) == 0 {
			continue
		}
		if ring.Orientation() == orb.CCW {
			holes = append(holes, ring)
			continue
		}
		polygons = append(polygons, orb.Polygon{ring})
	}

	for _, hole := range holes {
		owner := -1
		for i, poly := range polygons {
			if planar.RingContains(poly[0], hole[0]) {
				owner = i
				break
			}
		}
		if owner < 0 {
			polygons = append(polygons, orb.Polygon{hole})
			continue
		}
		polygons[owner] = append(polygons[owner], hole)
	}

	switch len(polygons) {
	case 0:
		return nil
	case 1:
		return polygons[0]
	default:
		return polygons
	}
}
