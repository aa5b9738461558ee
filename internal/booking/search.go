package booking

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	sortByDistance = "distance_from_search"

	// Defaults applied to unspecified price bounds before encoding the
	// provider's price filter.
	defaultMinPrice = 0
	defaultMaxPrice = 999999

	minItems = 1
	maxItems = 100

	// How long the run request blocks server side before returning, in
	// seconds. The Apify API caps this at 300.
	waitForFinish = "300"
)

// runInput is the request object the booking-scraper actor accepts.
type runInput struct {
	Search           string `json:"search"`
	MaxItems         int    `json:"maxItems"`
	SortBy           string `json:"sortBy"`
	Currency         string `json:"currency"`
	Language         string `json:"language"`
	MinMaxPrice      string `json:"minMaxPrice,omitempty"`
	MinPrice         string `json:"minPrice,omitempty"`
	MaxPrice         string `json:"maxPrice,omitempty"`
	StarsCountFilter string `json:"starsCountFilter,omitempty"`
}

type runResponse struct {
	Data struct {
		ID               string `json:"id"`
		Status           string `json:"status"`
		DefaultDatasetID string `json:"defaultDatasetId"`
	} `json:"data"`
}

func (c *Client) search(criteria *Criteria) (*Listings, error) {
	location := strings.TrimSpace(criteria.Location)
	if location == "" {
		return nil, errors.New("location cannot be empty")
	}

	input := buildRunInput(criteria)
	c.logger.Info("configured search parameters",
		zap.String("search", input.Search),
		zap.Int("max_items", input.MaxItems),
		zap.String("currency", input.Currency),
		zap.String("language", input.Language),
		zap.String("price_range", input.MinMaxPrice),
	)

	q := url.Values{}
	q.Set("waitForFinish", waitForFinish)

	var run runResponse
	runURL := fmt.Sprintf("%s/acts/%s/runs", c.APIURL, c.Actor)
	if err := c.postJSON(runURL, q, input, &run); err != nil {
		return nil, fmt.Errorf("failed to search listings in %s: %w", location, err)
	}

	if run.Data.DefaultDatasetID == "" {
		return nil, fmt.Errorf("failed to search listings in %s: no dataset returned", location)
	}

	c.logger.Info("search completed",
		zap.String("run_id", run.Data.ID),
		zap.String("run_status", run.Data.Status),
		zap.String("dataset_id", run.Data.DefaultDatasetID),
	)

	var items []map[string]any
	itemsURL := fmt.Sprintf("%s/datasets/%s/items", c.APIURL, run.Data.DefaultDatasetID)
	if err := c.getJSON(itemsURL, nil, &items); err != nil {
		return nil, fmt.Errorf("fetching dataset items for %s: %w", location, err)
	}

	c.logger.Info("retrieved raw listings", zap.Int("count", len(items)))

	normalized := Normalize(items, criteria)

	listings, err := ValidateListings(normalized, location)
	if err != nil {
		return nil, err
	}

	if listings.Len() == 0 {
		c.logger.Warn("no listings found in the validated response", zap.String("location", location))
	}

	return listings, nil
}

// buildRunInput translates criteria into the actor's request object. Price
// bounds get their defaults filled in first, an inverted range is reconciled
// by lifting the upper bound to the lower one.
func buildRunInput(criteria *Criteria) *runInput {
	min := float64(defaultMinPrice)
	if criteria.MinPrice != nil && *criteria.MinPrice > 0 {
		min = *criteria.MinPrice
	}

	max := float64(defaultMaxPrice)
	if criteria.MaxPrice != nil {
		max = *criteria.MaxPrice
	}
	if max < min {
		max = min
	}

	input := &runInput{
		Search:   strings.TrimSpace(criteria.Location),
		MaxItems: clampItems(criteria.MaxResults),
		SortBy:   sortByDistance,
		Currency: strings.ToUpper(criteria.Currency),
		Language: strings.ToLower(criteria.Language),
	}

	setPriceFilter(input, &min, &max)

	if criteria.MinRating != nil {
		if stars := int(*criteria.MinRating); stars >= 1 && stars <= 5 {
			input.StarsCountFilter = strconv.Itoa(stars)
		}
	}

	return input
}

// setPriceFilter encodes the price bounds. The combined "min-max" form takes
// precedence; the singular fields are only used when just one bound is known.
// With default filling both bounds are always known, so the combined form is
// always chosen today.
func setPriceFilter(input *runInput, min, max *float64) {
	switch {
	case min != nil && max != nil:
		input.MinMaxPrice = fmt.Sprintf("%d-%d", int(*min), int(*max))
	case min != nil:
		input.MinPrice = strconv.FormatFloat(*min, 'f', -1, 64)
	case max != nil:
		input.MaxPrice = strconv.FormatFloat(*max, 'f', -1, 64)
	}
}

func clampItems(n int) int {
	if n < minItems {
		return minItems
	}
	if n > maxItems {
		return maxItems
	}
	return n
}
