package boundaries

import "strings"

var formatSuffixes = []struct {
	suffix string
	format Format
}{
	{".geojson", FormatGeoJSON},
	{".json", FormatGeoJSON},
	{".kml", FormatKML},
	{".zip", FormatZippedShapefile},
	{".shp", FormatBareShapefileUnsupported},
}

// DetectFormat classifies a file by a case-insensitive match on its name suffix.
func DetectFormat(fileName string) Format {
	lower := strings.ToLower(fileName)
	for _, fs := range formatSuffixes {
		if strings.HasSuffix(lower, fs.suffix) {
			return fs.format
		}
	}
	return FormatUnknown
}

// SupportedExtensions lists the file suffixes accepted for import
func SupportedExtensions() []string {
	out := make([]string, 0, len(formatSuffixes))
	for _, fs := range formatSuffixes {
		if fs.format != FormatBareShapefileUnsupported {
			out = append(out, fs.suffix)
		}
	}
	return out
}
