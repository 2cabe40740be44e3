package booking

import (
	"fmt"
	"math"
)

// PricingStrategy defines the interface for quoting rental prices.
type PricingStrategy interface {
	// Quote returns the total amount in whole currency units for the given
	// package and its normalized period, at the vehicle's daily rate.
	Quote(pkg RentalPackage, period Period, rentPerDay float64) (int64, error)
}

// TieredPricingStrategy implements the marketplace's package pricing with
// progressive discount tiers. It is pure: the same inputs always produce the
// same amount, on the client quote and the server-side recomputation alike.
type TieredPricingStrategy struct{}

// NewTieredPricingStrategy creates a new TieredPricingStrategy.
func NewTieredPricingStrategy() *TieredPricingStrategy {
	return &TieredPricingStrategy{}
}

// dayMultipliers are flat package multipliers replacing the linear rate at
// specific day counts (3 days for the price of 2.7, and so on). Any other
// day count is charged linearly with no discount.
var dayMultipliers = map[int]float64{
	1:  1.0,
	3:  2.7,
	7:  6.0,
	30: 24.0,
}

// monthMultipliers are applied to the monthly base rate (30x the daily rate).
var monthMultipliers = map[int]float64{
	1:  0.90,
	3:  2.55,
	6:  4.8,
	12: 8.4,
}

// Quote computes the total amount for a rental package. Every branch rounds
// the final amount up to the nearest whole currency unit.
func (s *TieredPricingStrategy) Quote(pkg RentalPackage, period Period, rentPerDay float64) (int64, error) {
	if rentPerDay <= 0 {
		return 0, fmt.Errorf("rent per day must be positive")
	}

	switch pkg.Kind {
	case PackageHours:
		// Minimum billed duration is 4 hours; the discount tier is chosen
		// from the billed hours, not the requested ones.
		hours := pkg.Value
		if hours < 4 {
			hours = 4
		}
		base := rentPerDay / 24 * float64(hours)
		var discount float64
		switch {
		case hours >= 24:
			discount = 0.15
		case hours >= 12:
			discount = 0.10
		case hours >= 8:
			discount = 0.05
		}
		return ceil(base * (1 - discount)), nil

	case PackageDays:
		if mult, ok := dayMultipliers[pkg.Value]; ok {
			return ceil(rentPerDay * mult), nil
		}
		return ceil(rentPerDay * float64(pkg.Value)), nil

	case PackageMonths:
		monthlyBase := rentPerDay * 30
		if mult, ok := monthMultipliers[pkg.Value]; ok {
			return ceil(monthlyBase * mult), nil
		}
		return ceil(monthlyBase * float64(pkg.Value)), nil

	case PackageCustom:
		days := period.InclusiveDays()
		var discount float64
		switch {
		case days >= 30:
			discount = 0.20
		case days >= 14:
			discount = 0.15
		case days >= 7:
			discount = 0.10
		case days >= 3:
			discount = 0.05
		}
		return ceil(float64(days) * rentPerDay * (1 - discount)), nil

	default:
		return 0, fmt.Errorf("unknown package kind for pricing: %s", pkg.Kind)
	}
}

func ceil(v float64) int64 {
	return int64(math.Ceil(v))
}
