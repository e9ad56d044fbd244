package boundaries

import (
	"bytes"
	"encoding/json"
	"errors"
	"unicode/utf8"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

var geometryTypes = map[string]bool{
	"Point":              true,
	"MultiPoint":         true,
	"LineString":         true,
	"MultiLineString":    true,
	"Polygon":            true,
	"MultiPolygon":       true,
	"GeometryCollection": true,
}

// geoJSONObject keeps members raw so foreign members of any shape are ignored.
type geoJSONObject map[string]json.RawMessage

func (o geoJSONObject) typeName() string {
	var t string
	if err := json.Unmarshal(o["type"], &t); err != nil {
		return ""
	}
	return t
}

// ExtractGeoJSON returns the geometry of a Feature, of the first feature of a
// FeatureCollection, or of a bare Polygon/MultiPolygon document.
func ExtractGeoJSON(data []byte) (orb.Geometry, error) {
	if !utf8.Valid(data) {
		return nil, parseError("GeoJSON", errors.New("content is not valid UTF-8"))
	}

	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, parseError("GeoJSON", err)
	}

	var obj geoJSONObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, noGeometryFound("GeoJSON document is not an object with a type")
	}

	switch t := obj.typeName(); t {
	case "Feature":
		return decodeGeometry(obj["geometry"])
	case "FeatureCollection":
		var features []json.RawMessage
		if err := json.Unmarshal(obj["features"], &features); err != nil || len(features) == 0 {
			return nil, noGeometryFound("feature collection is empty")
		}
		var first geoJSONObject
		if err := json.Unmarshal(features[0], &first); err != nil || first == nil {
			return nil, noGeometryFound("first feature is not an object")
		}
		return decodeGeometry(first["geometry"])
	case "Polygon", "MultiPolygon":
		return decodeGeometry(data)
	default:
		return nil, noGeometryFound("unrecognised GeoJSON type " + quoteType(t))
	}
}

// decodeGeometry decodes a GeoJSON geometry object. A missing or null member is not-found.
func decodeGeometry(raw json.RawMessage) (orb.Geometry, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, noGeometryFound("feature has no geometry")
	}

	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(trimmed, &head); err != nil || head.Type == "" {
		return nil, noGeometryFound("geometry has no type")
	}
	if !geometryTypes[head.Type] {
		return nil, unsupportedGeometryType(head.Type)
	}

	g, err := geojson.UnmarshalGeometry(trimmed)
	if err != nil {
		return nil, parseError("GeoJSON", err)
	}
	return g.Geometry(), nil
}

func quoteType(t string) string {
	if t == "" {
		return "(missing)"
	}
	return `"` + t + `"`
}
