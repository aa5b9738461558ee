package ranking

import (
	"math"
	"strings"

	"github.com/stayseeker/stayseeker/internal/booking"
)

// Fixed scoring weights. Location relevance is pre-filtered by the provider
// call, so every listing starts from the flat base instead of a recomputed
// geographic score.
const (
	baseScore      = 50.0
	priceWeight    = 20.0
	ratingWeight   = 15.0
	roomTypeWeight = 15.0
	maxScore       = 100.0
)

// Score computes how well a listing matches the criteria, 0-100. Pure and
// order-independent across listings; the score is ephemeral and never stored
// on the listing itself.
func Score(listing *booking.Listing, criteria *booking.Criteria) float64 {
	score := baseScore

	if criteria.MinPrice != nil && criteria.MaxPrice != nil {
		min, max := *criteria.MinPrice, *criteria.MaxPrice
		switch {
		case listing.Price >= min && listing.Price <= max:
			score += priceWeight
		case max > 0:
			distance := math.Min(math.Abs(listing.Price-min), math.Abs(listing.Price-max))
			score += math.Max(0, priceWeight-(distance/max)*priceWeight)
		}
		// max <= 0 with an out-of-range price would divide by zero; the
		// price component contributes nothing instead.
	}

	if criteria.MinRating != nil && listing.Rating != nil {
		if *listing.Rating >= *criteria.MinRating {
			score += ratingWeight
		} else {
			score += math.Max(0, ratingWeight-(*criteria.MinRating-*listing.Rating)*5.0)
		}
	}

	if criteria.RoomType != "" && listing.RoomType != "" &&
		strings.Contains(strings.ToLower(listing.RoomType), strings.ToLower(criteria.RoomType)) {
		score += roomTypeWeight
	}

	return math.Min(maxScore, score)
}
