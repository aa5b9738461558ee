package ranking

import (
	"math"
	"testing"

	"github.com/stayseeker/stayseeker/internal/booking"
)

func floatPtr(v float64) *float64 {
	return &v
}

func fullCriteria() *booking.Criteria {
	return &booking.Criteria{
		Location:  "Lisbon",
		MinPrice:  floatPtr(50),
		MaxPrice:  floatPtr(150),
		MinRating: floatPtr(4.0),
		RoomType:  "suite",
	}
}

func TestScorePerfectMatch(t *testing.T) {
	listing := &booking.Listing{
		Name:     "Executive",
		Price:    100,
		Rating:   floatPtr(4.5),
		RoomType: "Executive Suite",
	}

	if got := Score(listing, fullCriteria()); got != 100.0 {
		t.Fatalf("expected score 100, got %v", got)
	}
}

func TestScorePriceOutOfRange(t *testing.T) {
	listing := &booking.Listing{
		Name:     "Pricey",
		Price:    200,
		Rating:   floatPtr(4.5),
		RoomType: "Executive Suite",
	}

	// Price component degrades to 20 - (50/150)*20 = 13.33..., total 93.33...
	expected := 50.0 + (20.0 - (50.0/150.0)*20.0) + 15.0 + 15.0
	if got := Score(listing, fullCriteria()); math.Abs(got-expected) > 1e-9 {
		t.Fatalf("expected score %v, got %v", expected, got)
	}
}

func TestScoreRatingBelowMinimum(t *testing.T) {
	criteria := fullCriteria()
	criteria.RoomType = ""

	listing := &booking.Listing{Name: "Average", Price: 100, Rating: floatPtr(3.0)}

	// 50 base + 20 price + max(0, 15 - (4.0-3.0)*5) = 80.
	if got := Score(listing, criteria); got != 80.0 {
		t.Fatalf("expected score 80, got %v", got)
	}
}

func TestScoreComponentsSkippedWhenUnset(t *testing.T) {
	criteria := &booking.Criteria{Location: "Lisbon"}
	listing := &booking.Listing{Name: "Plain", Price: 100}

	if got := Score(listing, criteria); got != 50.0 {
		t.Fatalf("expected base score only, got %v", got)
	}

	// A price bound alone is not enough for the price component.
	criteria.MinPrice = floatPtr(50)
	if got := Score(listing, criteria); got != 50.0 {
		t.Fatalf("expected base score with single bound, got %v", got)
	}
}

func TestScoreZeroMaxPriceGuard(t *testing.T) {
	criteria := &booking.Criteria{
		Location: "Lisbon",
		MinPrice: floatPtr(0),
		MaxPrice: floatPtr(0),
	}

	inRange := &booking.Listing{Name: "Free", Price: 0}
	if got := Score(inRange, criteria); got != 70.0 {
		t.Fatalf("expected in-range price credit, got %v", got)
	}

	outOfRange := &booking.Listing{Name: "Paid", Price: 50}
	if got := Score(outOfRange, criteria); got != 50.0 {
		t.Fatalf("expected zero price contribution, got %v", got)
	}
}

func TestScoreRoomTypeMatchIsCaseInsensitiveSubstring(t *testing.T) {
	t.Parallel()

	criteria := &booking.Criteria{Location: "Lisbon", RoomType: "suite"}

	tests := []struct {
		name     string
		roomType string
		expect   float64
	}{
		{name: "substring match", roomType: "Junior SUITE with view", expect: 65.0},
		{name: "no match", roomType: "Double room", expect: 50.0},
		{name: "empty listing room type", roomType: "", expect: 50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			listing := &booking.Listing{Name: "L", Price: 10, RoomType: tt.roomType}
			if got := Score(listing, criteria); got != tt.expect {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestScoreIsClampedToHundred(t *testing.T) {
	listing := &booking.Listing{
		Name:     "Perfect",
		Price:    100,
		Rating:   floatPtr(5.0),
		RoomType: "suite",
	}

	if got := Score(listing, fullCriteria()); got > 100.0 {
		t.Fatalf("score must not exceed 100, got %v", got)
	}
}
