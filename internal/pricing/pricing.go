// Package pricing computes invoice line totals and invoice aggregates.
//
// All arithmetic is done on decimal.Decimal values; results are rounded to two
// places half-up. Functions never fail: negative inputs are clamped to zero.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// VAT modes stored on branches and snapshotted onto invoices.
const (
	VATIncluded = "included"
	VATExcluded = "excluded"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// Line is the pricing-relevant part of an invoice item.
type Line struct {
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountAmount  decimal.Decimal
	DiscountPercent decimal.Decimal
}

// Totals is the result of a full invoice recompute.
type Totals struct {
	LineTotals      []decimal.Decimal
	Subtotal        decimal.Decimal
	DiscountApplied decimal.Decimal
	VATAmount       decimal.Decimal
	Total           decimal.Decimal
}

// NormalizeVATMode returns mode if it is known, otherwise VATIncluded.
func NormalizeVATMode(mode string) string {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case VATExcluded:
		return VATExcluded
	default:
		return VATIncluded
	}
}

// NormalizeRate clamps a VAT rate fraction to [0, 1] and rounds it to 4dp.
func NormalizeRate(rate decimal.Decimal) decimal.Decimal {
	if rate.GreaterThan(one) {
		return one
	}
	return nonNegative(rate).Round(4)
}

// NormalizeLine brings raw line inputs to their stored precision: money to
// 2dp, quantity to 3dp and percent clamped to [0, 100]. A non-positive
// quantity becomes 1.
func NormalizeLine(l Line) Line {
	qty := l.Quantity.Round(3)
	if !qty.IsPositive() {
		qty = one
	}
	return Line{
		Quantity:        qty,
		UnitPrice:       NormalizeMoney(l.UnitPrice),
		DiscountAmount:  NormalizeMoney(l.DiscountAmount),
		DiscountPercent: NormalizePercent(l.DiscountPercent),
	}
}

// NormalizeMoney clamps an amount to be non-negative and rounds it to 2dp.
func NormalizeMoney(d decimal.Decimal) decimal.Decimal {
	return round2(nonNegative(d))
}

// NormalizePercent clamps a percent to [0, 100] and rounds it to 2dp.
func NormalizePercent(p decimal.Decimal) decimal.Decimal {
	return round2(clampPercent(p))
}

// LineTotal returns max(0, qty*price - discount) rounded to 2dp.
// A positive percent wins over the amount.
func LineTotal(quantity, unitPrice, discountAmount, discountPercent decimal.Decimal) decimal.Decimal {
	base := unitPrice.Mul(quantity)
	total := base.Sub(discount(base, discountAmount, discountPercent))
	return round2(nonNegative(total))
}

// Recompute prices every line and derives the invoice aggregates.
// It is a pure function of its inputs, so calling it twice yields the same Totals.
func Recompute(lines []Line, discountAmount, discountPercent decimal.Decimal, vatMode string, vatRate decimal.Decimal) Totals {
	out := Totals{LineTotals: make([]decimal.Decimal, len(lines))}
	subtotal := decimal.Zero
	for i, l := range lines {
		lt := LineTotal(l.Quantity, l.UnitPrice, l.DiscountAmount, l.DiscountPercent)
		out.LineTotals[i] = lt
		subtotal = subtotal.Add(lt)
	}
	out.Subtotal = round2(subtotal)
	out.DiscountApplied = round2(discount(out.Subtotal, discountAmount, discountPercent))

	afterDiscount := nonNegative(out.Subtotal.Sub(out.DiscountApplied))
	rate := NormalizeRate(vatRate)

	switch NormalizeVATMode(vatMode) {
	case VATExcluded:
		out.VATAmount = round2(afterDiscount.Mul(rate))
		out.Total = round2(afterDiscount.Add(out.VATAmount))
	default:
		out.Total = round2(afterDiscount)
		out.VATAmount = decimal.Zero
		if rate.IsPositive() {
			net := out.Total.Div(one.Add(rate))
			out.VATAmount = round2(out.Total.Sub(net))
		}
	}
	return out
}

func discount(base, amount, percent decimal.Decimal) decimal.Decimal {
	if percent.IsPositive() {
		return base.Mul(clampPercent(percent)).Div(hundred)
	}
	return nonNegative(amount)
}

func clampPercent(p decimal.Decimal) decimal.Decimal {
	if p.GreaterThan(hundred) {
		return hundred
	}
	return nonNegative(p)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// round2 rounds half away from zero, which is half-up for the non-negative values used here.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
