package utils

import "github.com/shopspring/decimal"

// Money converts a decimal amount to a float rounded to cents, for JSON.
func Money(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// Price lifts a stored float price into decimal arithmetic.
func Price(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}
