package booking

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	defaultCurrency   = "USD"
	defaultLanguage   = "en"
	defaultRooms      = 1
	defaultMaxResults = 10
)

// Criteria holds the structured search parameters extracted from a free-text
// travel query. Optional numeric bounds are pointers so "not mentioned" stays
// distinguishable from zero. An inverted price range (min > max) is tolerated
// here; the request builder reconciles it.
type Criteria struct {
	Location   string   `json:"location"`
	Rooms      int      `json:"rooms"`
	MinPrice   *float64 `json:"min_price,omitempty"`
	MaxPrice   *float64 `json:"max_price,omitempty"`
	MinRating  *float64 `json:"min_rating,omitempty"`
	RoomType   string   `json:"room_type,omitempty"`
	Currency   string   `json:"currency"`
	Language   string   `json:"language"`
	MaxResults int      `json:"max_results"`
}

// Overrides carries the caller-configured fields that always win over
// whatever the model extracted.
type Overrides struct {
	Currency   string
	Language   string
	MaxResults int
}

// DefaultCriteria returns the safe fallback value used when extraction fails.
// The empty location signals the failure to callers; the search precondition
// rejects it before any provider call.
func DefaultCriteria() *Criteria {
	return &Criteria{
		Location:   "",
		Rooms:      defaultRooms,
		Currency:   defaultCurrency,
		Language:   defaultLanguage,
		MaxResults: defaultMaxResults,
	}
}

// ApplyOverrides replaces currency, language and max results with the
// caller-supplied configuration. This is a full replace, not a merge.
func (c *Criteria) ApplyOverrides(o Overrides) {
	c.Currency = o.Currency
	c.Language = o.Language
	c.MaxResults = o.MaxResults
}

// ParseCriteria parses raw model output into a Criteria. The parse is strict:
// the payload must be a JSON object with a string "location" field, and every
// known field must carry a usable type. Callers map any error to
// DefaultCriteria; this function never substitutes defaults for a broken
// payload on its own.
func ParseCriteria(raw string) (*Criteria, error) {
	cleaned := extractJSON(raw)
	if cleaned == "" {
		return nil, errors.New("empty criteria response")
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse criteria response: %w", err)
	}

	if _, ok := data["location"]; !ok {
		return nil, errors.New(`criteria response is missing required field "location"`)
	}

	criteria := DefaultCriteria()

	location, err := stringField(data, "location")
	if err != nil {
		return nil, err
	}
	criteria.Location = strings.TrimSpace(location)

	if v, ok := data["rooms"]; ok && v != nil {
		rooms, err := intValue("rooms", v)
		if err != nil {
			return nil, err
		}
		criteria.Rooms = rooms
	}

	for field, target := range map[string]**float64{
		"min_price":  &criteria.MinPrice,
		"max_price":  &criteria.MaxPrice,
		"min_rating": &criteria.MinRating,
	} {
		v, ok := data[field]
		if !ok || v == nil {
			continue
		}
		f, err := floatValue(field, v)
		if err != nil {
			return nil, err
		}
		*target = &f
	}

	for field, target := range map[string]*string{
		"room_type": &criteria.RoomType,
		"currency":  &criteria.Currency,
		"language":  &criteria.Language,
	} {
		v, ok := data[field]
		if !ok || v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected type %T for field %q", v, field)
		}
		if s = strings.TrimSpace(s); s != "" {
			*target = s
		}
	}

	if v, ok := data["max_results"]; ok && v != nil {
		max, err := intValue("max_results", v)
		if err != nil {
			return nil, err
		}
		criteria.MaxResults = max
	}

	return criteria, nil
}

func stringField(data map[string]any, field string) (string, error) {
	v := data[field]
	if v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("unexpected type %T for field %q", v, field)
	}
	return s, nil
}

func floatValue(field string, v any) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, fmt.Errorf("unparseable number %q for field %q", val, field)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("unexpected type %T for field %q", v, field)
	}
}

func intValue(field string, v any) (int, error) {
	f, err := floatValue(field, v)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// extractJSON strips markdown code fences the model tends to wrap JSON in.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
