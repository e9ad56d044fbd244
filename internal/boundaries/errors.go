package boundaries

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why an import failed
type ErrorKind string

const (
	KindParseError               ErrorKind = "ParseError"
	KindNoGeometryFound          ErrorKind = "NoGeometryFound"
	KindInsufficientRingPoints   ErrorKind = "InsufficientRingPoints"
	KindUnsupportedGeometryType  ErrorKind = "UnsupportedGeometryType"
	KindUnsupportedFileFormat    ErrorKind = "UnsupportedFileFormat"
	KindBareShapefileUnsupported ErrorKind = "BareShapefileUnsupported"
	KindExternalDecodeError      ErrorKind = "ExternalDecodeError"
)

// ImportError is the typed failure of an import attempt
type ImportError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	// GeometryType is the tag that was rejected, set for KindUnsupportedGeometryType only.
	GeometryType string `json:"geometry_type,omitempty"`
	Err          error  `json:"-"`
}

func (e *ImportError) Error() string {
	return e.Message
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// Is matches another *ImportError of the same kind, so errors.Is(err, &ImportError{Kind: k}) works.
func (e *ImportError) Is(target error) bool {
	t, ok := target.(*ImportError)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of an *ImportError in err's chain, or "" if there is none.
func KindOf(err error) ErrorKind {
	var ie *ImportError
	if errors.As(err, &ie) {
		return ie.Kind
	}
	return ""
}

func parseError(format string, err error) *ImportError {
	return &ImportError{
		Kind:    KindParseError,
		Message: fmt.Sprintf("could not parse %s file: %v", format, err),
		Err:     err,
	}
}

func noGeometryFound(detail string) *ImportError {
	return &ImportError{
		Kind:    KindNoGeometryFound,
		Message: "no geometry found: " + detail,
	}
}

func insufficientRingPoints(err error) *ImportError {
	return &ImportError{
		Kind:    KindInsufficientRingPoints,
		Message: fmt.Sprintf("polygon ring needs at least 3 valid coordinates (%v)", err),
		Err:     err,
	}
}

func unsupportedGeometryType(geometryType string) *ImportError {
	return &ImportError{
		Kind:         KindUnsupportedGeometryType,
		Message:      fmt.Sprintf("unsupported geometry type %s: only Polygon and MultiPolygon boundaries can be imported", geometryType),
		GeometryType: geometryType,
	}
}

func unsupportedFileFormat(fileName string) *ImportError {
	return &ImportError{
		Kind:    KindUnsupportedFileFormat,
		Message: fmt.Sprintf("unsupported file format: %s (use .geojson, .json, .kml or a zipped shapefile)", fileName),
	}
}

func bareShapefileUnsupported(fileName string) *ImportError {
	return &ImportError{
		Kind: KindBareShapefileUnsupported,
		Message: fmt.Sprintf("%s: a shapefile cannot be imported on its own, "+
			"upload a .zip archive containing the .shp, .shx and .dbf files", fileName),
	}
}

func externalDecodeError(err error) *ImportError {
	return &ImportError{
		Kind:    KindExternalDecodeError,
		Message: err.Error(),
		Err:     err,
	}
}
