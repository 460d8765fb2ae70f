package domain

import "math"

// RentalPrice computes the total price of a stay: daily rate times
// the inclusive number of use days. Rounded to cents.
func RentalPrice(dailyRate float64, useDays int) float64 {
	return math.Round(dailyRate*float64(useDays)*100) / 100
}
