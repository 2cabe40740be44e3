package booking

import (
	"fmt"
	"math"
	"time"

	"github.com/rentwheels/service-rental/internal/domain"
)

// PackageKind discriminates the rental duration selection.
type PackageKind string

const (
	PackageHours  PackageKind = "hours"
	PackageDays   PackageKind = "days"
	PackageMonths PackageKind = "months"
	PackageCustom PackageKind = "custom"
)

// IsValid returns true if the package kind is recognized.
func (k PackageKind) IsValid() bool {
	switch k {
	case PackageHours, PackageDays, PackageMonths, PackageCustom:
		return true
	}
	return false
}

// RentalPackage is the duration selection submitted with a booking: either a
// predefined package (hours/days/months with a count) or a custom date range.
type RentalPackage struct {
	Kind     PackageKind
	Value    int
	FromDate time.Time
	ToDate   time.Time
}

// Period is the concrete calendar interval a booking occupies. Both endpoints
// are dates at midnight; To is always strictly after From.
type Period struct {
	From time.Time
	To   time.Time
}

// DaySpan returns the number of days between From and To, rounded up.
func (p Period) DaySpan() int {
	return int(math.Ceil(p.To.Sub(p.From).Hours() / 24))
}

// InclusiveDays returns the span counting both endpoint days, as used for
// custom-range pricing.
func (p Period) InclusiveDays() int {
	return p.DaySpan() + 1
}

// IsShort reports whether the period spans at most one calendar day. Hour
// granularity is stored as a one-day window, so short periods are the
// hour-based and same-day rentals.
func (p Period) IsShort() bool {
	return p.DaySpan() <= 1
}

// Overlaps reports whether two periods share at least one day, using
// closed-interval semantics on both ends.
func (p Period) Overlaps(other Period) bool {
	return !other.From.After(p.To) && !other.To.Before(p.From)
}

// CanCoexist decides whether a candidate period may be booked on a vehicle
// that already has an overlapping active booking. Short rentals may stack
// with each other, and a long rental may coexist with an existing short one.
// Every other combination is a conflict. The asymmetry (a short candidate
// cannot join an existing long booking) is intentional product behavior.
func CanCoexist(candidate, existing Period) bool {
	if candidate.IsShort() && existing.IsShort() {
		return true
	}
	if !candidate.IsShort() && existing.IsShort() {
		return true
	}
	return false
}

// NormalizePeriod converts a rental package into the concrete calendar
// interval to store. The result always satisfies To > From:
//
//   - custom: both dates required, end must be strictly after start
//   - hours: today at midnight through tomorrow, regardless of hour count
//   - days: today through today + max(1, value-1) days
//   - months: today through today + value calendar months
//
// If a package computation lands the end on or before the start, the end is
// bumped to one day after the start. Custom ranges are never bumped.
func NormalizePeriod(pkg RentalPackage, now time.Time) (Period, error) {
	start := truncateToDay(now)

	var from, to time.Time
	switch pkg.Kind {
	case PackageCustom:
		if pkg.FromDate.IsZero() || pkg.ToDate.IsZero() {
			return Period{}, domain.NewValidationError("both start and end dates are required")
		}
		from = truncateToDay(pkg.FromDate)
		to = truncateToDay(pkg.ToDate)
		if !to.After(from) {
			return Period{}, domain.NewValidationError("end date must be after start date")
		}

	case PackageHours:
		if pkg.Value <= 0 {
			return Period{}, domain.NewValidationError("hour count must be positive")
		}
		from = start
		to = start.AddDate(0, 0, 1)

	case PackageDays:
		if pkg.Value <= 0 {
			return Period{}, domain.NewValidationError("day count must be positive")
		}
		from = start
		extra := pkg.Value - 1
		if extra < 1 {
			extra = 1
		}
		to = start.AddDate(0, 0, extra)

	case PackageMonths:
		if pkg.Value <= 0 {
			return Period{}, domain.NewValidationError("month count must be positive")
		}
		from = start
		to = start.AddDate(0, pkg.Value, 0)

	default:
		return Period{}, domain.NewValidationError(fmt.Sprintf("unknown package kind: %s", pkg.Kind))
	}

	if !to.After(from) {
		to = from.AddDate(0, 0, 1)
	}

	return Period{From: from, To: to}, nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
