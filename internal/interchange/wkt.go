// Package interchange defines the normative JSON wire shapes for Sample,
// Candidate, and Path, for interop with external tools only — this package
// performs no transport of its own.
package interchange

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/azybler/hmm-mapmatch/internal/geo"
)

// WKTPoint is a geo.LatLng that marshals to/from a WKT "POINT (lon lat)"
// string, per the Sample wire shape's point field.
type WKTPoint geo.LatLng

func (p WKTPoint) MarshalJSON() ([]byte, error) {
	s := fmt.Sprintf("POINT (%s %s)",
		strconv.FormatFloat(p.Lon, 'f', -1, 64),
		strconv.FormatFloat(p.Lat, 'f', -1, 64))
	return json.Marshal(s)
}

func (p *WKTPoint) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("interchange: WKT point: %w", err)
	}
	lon, lat, err := parseWKTPoint(s)
	if err != nil {
		return err
	}
	p.Lon, p.Lat = lon, lat
	return nil
}

func geoLatLng(p WKTPoint) geo.LatLng { return geo.LatLng(p) }

func parseWKTPoint(s string) (lon, lat float64, err error) {
	s = strings.TrimSpace(s)
	const prefix, suffix = "POINT (", ")"
	if !strings.HasPrefix(s, prefix) || !strings.HasSuffix(s, suffix) {
		return 0, 0, fmt.Errorf("interchange: malformed WKT point %q", s)
	}
	inner := strings.TrimSpace(s[len(prefix) : len(s)-len(suffix)])
	parts := strings.Fields(inner)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("interchange: malformed WKT point %q", s)
	}
	lon, err = strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("interchange: WKT longitude: %w", err)
	}
	lat, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("interchange: WKT latitude: %w", err)
	}
	return lon, lat, nil
}
