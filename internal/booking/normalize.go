package booking

import (
	"fmt"
	"strconv"
	"strings"
)

// Normalize reshapes raw scraper records into the pre-validation listing
// shape: a coordinate-object location is collapsed into a display string, and
// missing price/currency get their defaults. Records are processed
// independently and in input order; the count in always equals the count out.
// This phase cannot fail; the strict typed construction happens in
// ValidateListings.
func Normalize(records []map[string]any, criteria *Criteria) []map[string]any {
	out := make([]map[string]any, 0, len(records))
	for _, record := range records {
		if coords, ok := record["location"].(map[string]any); ok {
			full := ""
			if addr, ok := record["address"].(map[string]any); ok {
				if f, ok := addr["full"].(string); ok {
					full = f
				}
			}
			record["location"] = fmt.Sprintf("%s (Lat: %s, Lng: %s)",
				full, formatCoordinate(coords["lat"]), formatCoordinate(coords["lng"]))
		}

		if v, ok := record["price"]; !ok || v == nil {
			record["price"] = 0.0
		}
		if v, ok := record["currency"]; !ok || v == nil {
			record["currency"] = criteria.Currency
		}

		out = append(out, record)
	}
	return out
}

// formatCoordinate renders a raw coordinate value for the collapsed location
// string. A missing or unusable coordinate renders as the literal "unknown".
func formatCoordinate(v any) string {
	switch val := v.(type) {
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case string:
		if trimmed := strings.TrimSpace(val); trimmed != "" {
			return trimmed
		}
	}
	return "unknown"
}
