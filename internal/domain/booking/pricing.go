package booking

import "fmt"

// PricingStrategy defines the interface for computing rental prices.
type PricingStrategy interface {
	// Quote returns the total price in cents for renting at the given
	// daily rate over the given number of billable days.
	Quote(pricePerDayCents int64, days int) (int64, error)
}

// StandardPricingStrategy implements the default per-day rental pricing.
type StandardPricingStrategy struct{}

// NewStandardPricingStrategy creates a new StandardPricingStrategy.
func NewStandardPricingStrategy() *StandardPricingStrategy {
	return &StandardPricingStrategy{}
}

// Quote computes the total price as dailyRate × days. The day count must
// match the one produced by DayCount for the booked window.
func (s *StandardPricingStrategy) Quote(pricePerDayCents int64, days int) (int64, error) {
	if pricePerDayCents <= 0 {
		return 0, fmt.Errorf("price per day must be positive")
	}
	if days <= 0 {
		return 0, fmt.Errorf("day count must be positive")
	}
	return pricePerDayCents * int64(days), nil
}
