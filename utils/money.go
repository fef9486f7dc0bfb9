package utils

import "github.com/shopspring/decimal"

// Round2 rounds x to 2 decimal places, half away from zero at the cent boundary.
// Goes through decimal so float artifacts (2.675 stored as 2.67499...) still land
// on the expected cent.
func Round2(x float64) float64 {
	f, _ := decimal.NewFromFloat(x).Round(2).Float64()
	return f
}
