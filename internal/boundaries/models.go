package boundaries

import (
	"io"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"carbon-scribe/project-portal/boundary-importer/internal/notifications"
)

// Format is the classification of an uploaded file by its name
type Format string

const (
	FormatGeoJSON                  Format = "geojson"
	FormatKML                      Format = "kml"
	FormatZippedShapefile          Format = "zipped_shapefile"
	FormatBareShapefileUnsupported Format = "bare_shapefile_unsupported"
	FormatUnknown                  Format = "unknown"
)

// RawFile is one uploaded file. Content is read at most once, and only after
// the name has been dispatched to a supported format.
type RawFile struct {
	Name    string
	Content io.Reader
}

// Outcome is the terminal result of one import. Exactly one of Geometry or Err is set.
type Outcome struct {
	Geometry       orb.Geometry
	SourceFileName string
	AreaHectares   float64
	Err            *ImportError
}

// Succeeded reports whether the outcome carries an accepted geometry
func (o Outcome) Succeeded() bool {
	return o.Err == nil && o.Geometry != nil
}

// Event converts the outcome into the notification sent to the UI layer
func (o Outcome) Event() notifications.Event {
	if o.Succeeded() {
		return notifications.Event{
			Title:  notifications.TitleImportSuccess,
			Detail: o.SourceFileName,
		}
	}
	return notifications.Event{
		Title:  notifications.TitleError,
		Detail: o.Err.Message,
		Kind:   string(o.Err.Kind),
	}
}

// ImportResponse is the wire form of an Outcome
type ImportResponse struct {
	ImportID     uuid.UUID         `json:"import_id"`
	FileName     string            `json:"file_name,omitempty"`
	Geometry     *geojson.Geometry `json:"geometry,omitempty"`
	AreaHectares float64           `json:"area_hectares,omitempty"`
	Error        *ImportError      `json:"error,omitempty"`
}

// NewImportResponse builds the response body for an outcome
func NewImportResponse(id uuid.UUID, o Outcome) ImportResponse {
	resp := ImportResponse{ImportID: id}
	if !o.Succeeded() {
		resp.Error = o.Err
		return resp
	}
	resp.FileName = o.SourceFileName
	resp.Geometry = geojson.NewGeometry(o.Geometry)
	resp.AreaHectares = o.AreaHectares
	return resp
}
