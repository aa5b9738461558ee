package booking

import "testing"

func floatPtr(v float64) *float64 {
	return &v
}

func TestBuildRunInputDefaults(t *testing.T) {
	criteria := DefaultCriteria()
	criteria.Location = "  Lisbon  "

	input := buildRunInput(criteria)

	if input.Search != "Lisbon" {
		t.Fatalf("expected trimmed location, got %q", input.Search)
	}
	if input.MaxItems != 10 {
		t.Fatalf("expected 10 max items, got %d", input.MaxItems)
	}
	if input.SortBy != "distance_from_search" {
		t.Fatalf("unexpected sort: %q", input.SortBy)
	}
	if input.MinMaxPrice != "0-999999" {
		t.Fatalf("expected default price range, got %q", input.MinMaxPrice)
	}
	if input.MinPrice != "" || input.MaxPrice != "" {
		t.Fatal("singular price fields must stay empty when the combined form is used")
	}
	if input.StarsCountFilter != "" {
		t.Fatalf("unexpected stars filter: %q", input.StarsCountFilter)
	}
}

func TestBuildRunInputPriceRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		min, max *float64
		expect   string
	}{
		{name: "both bounds", min: floatPtr(50), max: floatPtr(150), expect: "50-150"},
		{name: "min only", min: floatPtr(50), expect: "50-999999"},
		{name: "max only", max: floatPtr(150), expect: "0-150"},
		{name: "negative min lifted to zero", min: floatPtr(-10), max: floatPtr(150), expect: "0-150"},
		{name: "inverted range lifts max", min: floatPtr(200), max: floatPtr(100), expect: "200-200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			criteria := DefaultCriteria()
			criteria.Location = "Lisbon"
			criteria.MinPrice = tt.min
			criteria.MaxPrice = tt.max

			input := buildRunInput(criteria)
			if input.MinMaxPrice != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, input.MinMaxPrice)
			}
		})
	}
}

func TestBuildRunInputNormalizesCurrencyAndLanguage(t *testing.T) {
	criteria := DefaultCriteria()
	criteria.Location = "Lisbon"
	criteria.Currency = "eur"
	criteria.Language = "EN-GB"

	input := buildRunInput(criteria)

	if input.Currency != "EUR" {
		t.Fatalf("expected uppercase currency, got %q", input.Currency)
	}
	if input.Language != "en-gb" {
		t.Fatalf("expected lowercase language, got %q", input.Language)
	}
}

func TestBuildRunInputClampsMaxItems(t *testing.T) {
	criteria := DefaultCriteria()
	criteria.Location = "Lisbon"

	criteria.MaxResults = 500
	if got := buildRunInput(criteria).MaxItems; got != 100 {
		t.Fatalf("expected clamp to 100, got %d", got)
	}

	criteria.MaxResults = 0
	if got := buildRunInput(criteria).MaxItems; got != 1 {
		t.Fatalf("expected clamp to 1, got %d", got)
	}
}

func TestBuildRunInputStarsFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		rating *float64
		expect string
	}{
		{name: "unset", rating: nil, expect: ""},
		{name: "whole stars", rating: floatPtr(4.0), expect: "4"},
		{name: "truncated", rating: floatPtr(4.7), expect: "4"},
		{name: "below one", rating: floatPtr(0.5), expect: ""},
		{name: "above five", rating: floatPtr(6.0), expect: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			criteria := DefaultCriteria()
			criteria.Location = "Lisbon"
			criteria.MinRating = tt.rating

			if got := buildRunInput(criteria).StarsCountFilter; got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestSearchRejectsEmptyLocation(t *testing.T) {
	client := &Client{}
	criteria := DefaultCriteria()
	criteria.Location = "   "

	if _, err := client.search(criteria); err == nil {
		t.Fatal("expected error for empty location")
	}
}
