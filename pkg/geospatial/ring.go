package geospatial

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// MinRingPoints is the number of distinct vertices a polygon ring needs.
const MinRingPoints = 3

// ErrInsufficientRingPoints is returned when a coordinate list yields too few valid points.
var ErrInsufficientRingPoints = errors.New("insufficient ring points")

// ParseRing parses whitespace separated "lng,lat[,alt]" tuples into a closed ring.
// Tuples with a missing or non-finite longitude or latitude are skipped; altitude is ignored.
// The ring is closed by repeating the first point when the last one differs.
func ParseRing(text string) (orb.Ring, error) {
	var ring orb.Ring
	for _, token := range strings.Fields(text) {
		p, ok := parseTuple(token)
		if !ok {
			continue
		}
		ring = append(ring, p)
	}

	if len(ring) < MinRingPoints {
		return nil, fmt.Errorf("%w: need %d, got %d", ErrInsufficientRingPoints, MinRingPoints, len(ring))
	}

	if !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return ring, nil
}

func parseTuple(token string) (orb.Point, bool) {
	parts := strings.Split(token, ",")
	if len(parts) < 2 {
		return orb.Point{}, false
	}
	lng, ok := parseFinite(parts[0])
	if !ok {
		return orb.Point{}, false
	}
	lat, ok := parseFinite(parts[1])
	if !ok {
		return orb.Point{}, false
	}
	return orb.Point{lng, lat}, true
}

func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
