package okx

import (
	"github.com/shopspring/decimal"

	"github.com/goodvill0413/piona-auto-trade-bot/pkg/exchange"
)

// sizeDivisionPrecision bounds the quotient before half-up rounding.
const sizeDivisionPrecision = 12

// NormalizeSize rounds a requested quantity to a valid venue size: at least
// minSize and an integer multiple of lotSize. Decimal arithmetic throughout;
// binary floats would drift against the venue's precision rules.
func NormalizeSize(quantity, lotSize, minSize decimal.Decimal) (decimal.Decimal, error) {
	if !lotSize.IsPositive() {
		return decimal.Zero, exchange.NewError(exchange.KindValidation, "okx: lot size must be positive, got %s", lotSize)
	}
	if !minSize.IsPositive() {
		return decimal.Zero, exchange.NewError(exchange.KindValidation, "okx: min size must be positive, got %s", minSize)
	}
	if quantity.IsNegative() {
		return decimal.Zero, exchange.NewError(exchange.KindValidation, "okx: quantity cannot be negative, got %s", quantity)
	}

	if quantity.LessThan(minSize) {
		quantity = minSize
	}

	// Round half up to the nearest whole lot count. Decimal.Round rounds
	// half away from zero, which for non-negative quantities is half up.
	multiples := quantity.DivRound(lotSize, sizeDivisionPrecision).Round(0)
	if multiples.Sign() <= 0 {
		multiples = decimal.NewFromInt(1)
	}
	size := multiples.Mul(lotSize)

	// When minSize is not itself a lot multiple, half-up rounding can land
	// one lot short of it; take the next lot up in that case.
	if size.LessThan(minSize) {
		multiples = minSize.DivRound(lotSize, sizeDivisionPrecision).Ceil()
		size = multiples.Mul(lotSize)
	}
	return size, nil
}
