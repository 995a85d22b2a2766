package utils

import "github.com/shopspring/decimal"

// RoundWithTwoDecimalPlace arredonda meio para longe do zero em base decimal,
// então 1.005 vira 1.01 e não 1.00.
func RoundWithTwoDecimalPlace(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}
