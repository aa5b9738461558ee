package ranking

import (
	"sort"

	"github.com/stayseeker/stayseeker/internal/booking"
	"go.uber.org/zap"
)

// Result pairs a listing with its match score for the lifetime of one
// ranking pass.
type Result struct {
	Listing *booking.Listing
	Score   float64
}

// Options controls the ranking step.
type Options struct {
	// MinScore drops listings scoring under the threshold. Zero keeps
	// everything.
	MinScore float64
	// Limit truncates the ranked list when positive.
	Limit int
}

// Rank scores every listing against the criteria, drops those under the
// minimum score, and returns the rest sorted by score descending. The sort
// is stable, so equally scored listings keep their provider order.
func Rank(log *zap.Logger, listings *booking.Listings, criteria *booking.Criteria, opts Options) []Result {
	if log == nil {
		log = zap.NewNop()
	}

	initial := listings.Len()
	results := make([]Result, 0, initial)

	for _, listing := range listings.Items {
		score := Score(listing, criteria)
		if opts.MinScore > 0 && score < opts.MinScore {
			log.Debug("listing below minimum match score",
				zap.String("name", listing.Name),
				zap.Float64("score", score),
				zap.Float64("threshold", opts.MinScore),
			)
			continue
		}
		results = append(results, Result{Listing: listing, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}

	log.Info("ranking step",
		zap.Int("initial", initial),
		zap.Int("dropped", initial-len(results)),
		zap.Int("left", len(results)),
	)

	return results
}

// ToListings rebuilds an ordered collection from ranked results.
func ToListings(results []Result) *booking.Listings {
	items := make([]*booking.Listing, 0, len(results))
	for _, result := range results {
		items = append(items, result.Listing)
	}
	return &booking.Listings{Items: items}
}
