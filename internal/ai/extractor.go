package ai

import (
	"context"

	"github.com/stayseeker/stayseeker/internal/booking"
)

// Extractor turns a free-text travel query into structured search criteria.
// Implementations never fail: any model or parse error degrades to
// booking.DefaultCriteria, whose empty location signals the failure upstream.
type Extractor interface {
	Extract(ctx context.Context, query string) *booking.Criteria
}
