package booking

import (
	"encoding/json"
	"fmt"
	"os"
)

// CategoryReview is a category-specific review score (e.g. Staff, Cleanliness).
type CategoryReview struct {
	Title string  `json:"title" validate:"required"`
	Score float64 `json:"score"`
}

// Address holds the structured address details of a listing.
type Address struct {
	Full       string `json:"full" validate:"required"`
	PostalCode string `json:"postal_code,omitempty"`
	Street     string `json:"street,omitempty"`
	Country    string `json:"country,omitempty"`
	Region     string `json:"region,omitempty"`
}

// Listing is one normalized accommodation record returned by the scraper.
// Constructed once during validation, immutable thereafter. Price and
// currency are always present because normalization fills them in before a
// Listing is ever built.
type Listing struct {
	Name               string           `json:"name" validate:"required"`
	URL                string           `json:"url" validate:"required"`
	Description        string           `json:"description,omitempty"`
	Address            *Address         `json:"address,omitempty"`
	Location           string           `json:"location" validate:"required"`
	Rating             *float64         `json:"rating,omitempty"`
	Reviews            *int             `json:"reviews,omitempty"`
	CategoryReviews    []CategoryReview `json:"category_reviews,omitempty" validate:"omitempty,dive"`
	Price              float64          `json:"price"`
	Currency           string           `json:"currency" validate:"required"`
	RoomType           string           `json:"room_type,omitempty"`
	Stars              *int             `json:"stars,omitempty"`
	Amenities          []string         `json:"amenities,omitempty"`
	DistanceFromCenter string           `json:"distance_from_center,omitempty"`
	CheckIn            string           `json:"check_in,omitempty"`
	CheckOut           string           `json:"check_out,omitempty"`
	Image              string           `json:"image,omitempty"`
	Images             []string         `json:"images,omitempty"`
}

// fieldAliases maps external provider field names to the internal snake_case
// names consulted during deserialization. The internal-name key wins when a
// record carries both spellings.
var fieldAliases = map[string]string{
	"postalCode":         "postal_code",
	"categoryReviews":    "category_reviews",
	"distanceFromCenter": "distance_from_center",
	"checkIn":            "check_in",
	"checkOut":           "check_out",
}

// applyAliases renames external field spellings on the record and its nested
// address mapping. The record is modified in place and returned for chaining.
func applyAliases(record map[string]any) map[string]any {
	renameKeys(record)
	if addr, ok := record["address"].(map[string]any); ok {
		renameKeys(addr)
	}
	return record
}

func renameKeys(m map[string]any) {
	for external, internal := range fieldAliases {
		value, ok := m[external]
		if !ok {
			continue
		}
		if _, taken := m[internal]; !taken {
			m[internal] = value
		}
		delete(m, external)
	}
}

// Listings is an ordered collection of validated listings.
type Listings struct {
	Items []*Listing
}

func (l *Listings) Len() int {
	return len(l.Items)
}

// ToRecords serializes each listing into a plain key/value mapping, the shape
// the host output sink accepts. Order is preserved.
func (l *Listings) ToRecords() ([]map[string]any, error) {
	records := make([]map[string]any, 0, len(l.Items))
	for _, listing := range l.Items {
		data, err := json.Marshal(listing)
		if err != nil {
			return nil, fmt.Errorf("serialize listing %q: %w", listing.Name, err)
		}

		var record map[string]any
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, fmt.Errorf("serialize listing %q: %w", listing.Name, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// DumpToFile writes the serialized records to the given path, or to a fresh
// temp file when path is empty. Returns the filename written.
func (l *Listings) DumpToFile(path string) (string, error) {
	records, err := l.ToRecords()
	if err != nil {
		return "", err
	}

	var file *os.File
	if path == "" {
		file, err = os.CreateTemp("", "listings_*.json")
	} else {
		file, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ReportByLocation groups a short summary of each listing under its location
// string.
func (l *Listings) ReportByLocation() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, listing := range l.Items {
		entry := map[string]string{
			"name":  listing.Name,
			"url":   listing.URL,
			"price": fmt.Sprintf("%.2f %s", listing.Price, listing.Currency),
		}
		if listing.Rating != nil {
			entry["rating"] = fmt.Sprintf("%.1f", *listing.Rating)
		}
		if listing.RoomType != "" {
			entry["room_type"] = listing.RoomType
		}
		report[listing.Location] = append(report[listing.Location], entry)
	}
	return report
}
