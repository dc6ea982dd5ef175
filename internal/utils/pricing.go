package utils

import (
	"errors"
	"math"
	"time"
)

var ErrInvalidRentalDays = errors.New("rental day count must be positive")

// DailyRate returns the discounted price when one is set, otherwise the final price.
func DailyRate(finalPrice float64, discountedPrice *float64) float64 {
	if discountedPrice != nil && *discountedPrice != 0 {
		return *discountedPrice
	}
	return finalPrice
}

// ComputeTotal returns the rental charge rounded to two decimal places.
func ComputeTotal(finalPrice float64, discountedPrice *float64, days int32) (float64, error) {
	if days <= 0 {
		return 0, ErrInvalidRentalDays
	}
	return RoundMoney(DailyRate(finalPrice, discountedPrice) * float64(days)), nil
}

// RoundMoney rounds to cents, half away from zero.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// RentalDays counts the days between start and end, rounding partial days up.
// A non-positive result means the period is invalid.
func RentalDays(start, end time.Time) int32 {
	return int32(math.Ceil(end.Sub(start).Hours() / 24))
}

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
