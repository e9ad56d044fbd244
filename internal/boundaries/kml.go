package boundaries

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"

	"github.com/paulmach/orb"

	"carbon-scribe/project-portal/boundary-importer/pkg/geospatial"
)

// ExtractKML builds a single-ring polygon from the first <coordinates> element
// of a KML document. Malformed XML is reported the same way as a missing element.
func ExtractKML(data []byte) (orb.Geometry, error) {
	text, ok := firstCoordinates(data)
	if !ok {
		return nil, noGeometryFound("no <coordinates> element in KML document")
	}

	ring, err := geospatial.ParseRing(text)
	if err != nil {
		if errors.Is(err, geospatial.ErrInsufficientRingPoints) {
			return nil, insufficientRingPoints(err)
		}
		return nil, parseError("KML", err)
	}
	return orb.Polygon{ring}, nil
}

// firstCoordinates returns the text of the first coordinates element in document
// order. The whole document is read so that trailing malformed XML is rejected.
func firstCoordinates(data []byte) (string, bool) {
	d := xml.NewDecoder(bytes.NewReader(data))

	var (
		text  string
		found bool
	)
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", false
		}

		se, ok := tok.(xml.StartElement)
		if !ok || found || se.Name.Local != "coordinates" {
			continue
		}
		if err := d.DecodeElement(&text, &se); err != nil {
			return "", false
		}
		found = true
	}
	return text, found
}
