package booking

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

var validate = validator.New()

// ValidateListings strictly constructs typed listings from normalized
// records. The whole batch is rejected on the first structural violation: a
// field of the wrong type, or a required field left empty. The returned error
// names the originating search location so the failure can be traced to the
// request that produced it. An empty input batch is a valid zero-result
// outcome, not an error.
func ValidateListings(records []map[string]any, location string) (*Listings, error) {
	if len(records) == 0 {
		return &Listings{}, nil
	}

	prepared := make([]map[string]any, 0, len(records))
	for _, record := range records {
		prepared = append(prepared, applyAliases(record))
	}

	var items []*Listing
	cfg := &mapstructure.DecoderConfig{
		Result:  &items,
		TagName: "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(prepared); err != nil {
		return nil, fmt.Errorf("received invalid data for location %s: %w", location, err)
	}

	for i, item := range items {
		if err := validate.Struct(item); err != nil {
			return nil, fmt.Errorf("received invalid data for location %s (record %d): %w", location, i, err)
		}
	}

	return &Listings{Items: items}, nil
}
