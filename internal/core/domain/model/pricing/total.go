package pricing

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Discount reduces the breakdown total by a percentage and a flat amount.
type Discount struct {
	Percent decimal.Decimal `json:"percent"`
	Amount  decimal.Decimal `json:"amount"`
}

// Adjustment is a signed manual correction of the total.
type Adjustment struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// ResolvedLine is one breakdown line after overrides.
type ResolvedLine struct {
	Index      int             `json:"index"`
	Label      string          `json:"label"`
	BaseAmount decimal.Decimal `json:"baseAmount"`
	Amount     decimal.Decimal `json:"amount"`
	VATPercent decimal.Decimal `json:"vatPercent"`
	Included   bool            `json:"included"`
	IsTBC      bool            `json:"isTBC"`
}

// Totals is the result of ComputeTotal. VAT is informational only and never
// deducted: the computed total is VAT-inclusive.
type Totals struct {
	Lines            []ResolvedLine  `json:"lines"`
	BreakdownTotal   decimal.Decimal `json:"breakdownTotal"`
	AdjustmentsTotal decimal.Decimal `json:"adjustmentsTotal"`
	DiscountTotal    decimal.Decimal `json:"discountTotal"`
	ComputedTotal    decimal.Decimal `json:"computedTotal"`
}

// ComputeTotal reconciles a breakdown with overrides, discount and
// adjustments:
//
//	breakdownTotal   = sum of resolved included lines
//	adjustmentsTotal = sum of signed adjustments
//	discountTotal    = breakdownTotal * percent / 100 + amount
//	computedTotal    = max(0, round2(breakdownTotal + adjustmentsTotal - discountTotal))
//
// Overrides whose index matches no line are ignored.
func ComputeTotal(b Breakdown, overrides []LineOverride, d Discount, adjustments []Adjustment) Totals {
	byIndex := indexOverrides(overrides)

	var lines []Line
	if b != nil {
		lines = b.Lines()
	}

	t := Totals{
		Lines:            make([]ResolvedLine, 0, len(lines)),
		BreakdownTotal:   decimal.Zero,
		AdjustmentsTotal: decimal.Zero,
	}
	for i, l := range lines {
		o := byIndex[i]
		amount := Resolve(l, o)
		t.Lines = append(t.Lines, ResolvedLine{
			Index:      i,
			Label:      l.Label(),
			BaseAmount: BaseAmount(l, o),
			Amount:     amount,
			VATPercent: VATPercent(l, o),
			Included:   o.Included(),
			IsTBC:      l.IsTBC,
		})
		t.BreakdownTotal = t.BreakdownTotal.Add(amount)
	}

	for _, a := range adjustments {
		t.AdjustmentsTotal = t.AdjustmentsTotal.Add(a.Amount)
	}

	t.DiscountTotal = t.BreakdownTotal.Mul(d.Percent).Div(hundred).Add(d.Amount)

	total := t.BreakdownTotal.Add(t.AdjustmentsTotal).Sub(t.DiscountTotal).Round(2)
	t.ComputedTotal = decimal.Max(decimal.Zero, total)
	return t
}

func indexOverrides(overrides []LineOverride) map[int]*LineOverride {
	byIndex := make(map[int]*LineOverride, len(overrides))
	for i := range overrides {
		byIndex[overrides[i].Index] = &overrides[i]
	}
	return byIndex
}
