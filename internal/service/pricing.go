package service

import "github.com/shopspring/decimal"

// Fixed per-unit prices. Unrecognized services price at zero; the order
// is still accepted.
var unitPrices = map[string]decimal.Decimal{
	"Wash": decimal.NewFromInt(50),
	"Dry":  decimal.NewFromInt(32),
	"Iron": decimal.NewFromInt(20),
}

func unitPrice(service string) decimal.Decimal {
	if price, ok := unitPrices[service]; ok {
		return price
	}
	return decimal.Zero
}
