// internal/match/financing.go
package match

import "math"

// Financing terms shown alongside every match. Fixed assumptions, not a
// quote: 10% down, 30-year term, 7% annual rate.
const (
	annualRate       = 0.07
	loanTermMonths   = 360
	downPaymentShare = 0.10
)

// Financing estimates the monthly payment and down payment for a price.
// A price that leaves no loan principal yields a zero monthly payment.
func Financing(price int) (monthly, down int) {
	down = int(math.Round(float64(price) * downPaymentShare))

	principal := float64(price - down)
	if principal <= 0 {
		return 0, down
	}

	monthlyRate := annualRate / 12
	growth := math.Pow(1+monthlyRate, loanTermMonths)
	monthly = int(math.Round(principal * monthlyRate * growth / (growth - 1)))
	return monthly, down
}
