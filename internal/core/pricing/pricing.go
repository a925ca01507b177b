// Package pricing derives bid line totals, subtotal and tax-inclusive total.
package pricing

import (
	"fmt"

	errors "github.com/frahmantamala/sashbid/internal"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type Line struct {
	Quantity  float64
	UnitPrice float64
}

type Totals struct {
	LineTotals []float64
	Subtotal   float64
	Total      float64
}

// Compute returns quantity × unitPrice per line, their sum, and
// subtotal + subtotal × taxPercent / 100.
func Compute(lines []Line, taxPercent float64) (Totals, error) {
	if len(lines) == 0 {
		return Totals{}, errors.NewValidationFieldError("items", "Bid must have at least one item", errors.ErrCodeNoItems)
	}
	if taxPercent < 0 {
		return Totals{}, errors.NewValidationFieldError("tax", "Tax cannot be negative", errors.ErrCodeInvalidAmount)
	}

	subtotal := decimal.Zero
	lineTotals := make([]float64, len(lines))
	for i, l := range lines {
		if l.Quantity < 1 {
			return Totals{}, errors.NewValidationFieldError(fmt.Sprintf("items[%d].quantity", i), "Quantity must be at least 1", errors.ErrCodeInvalidAmount)
		}
		if l.UnitPrice < 0 {
			return Totals{}, errors.NewValidationFieldError(fmt.Sprintf("items[%d].unitPrice", i), "Unit price cannot be negative", errors.ErrCodeInvalidAmount)
		}
		lt := decimal.NewFromFloat(l.Quantity).Mul(decimal.NewFromFloat(l.UnitPrice))
		lineTotals[i] = lt.InexactFloat64()
		subtotal = subtotal.Add(lt)
	}

	tax := subtotal.Mul(decimal.NewFromFloat(taxPercent)).Div(hundred)
	return Totals{
		LineTotals: lineTotals,
		Subtotal:   subtotal.InexactFloat64(),
		Total:      subtotal.Add(tax).InexactFloat64(),
	}, nil
}

// TaxAmount is the tax portion of a subtotal, used by quote rendering.
func TaxAmount(subtotal, taxPercent float64) float64 {
	return decimal.NewFromFloat(subtotal).Mul(decimal.NewFromFloat(taxPercent)).Div(hundred).InexactFloat64()
}
