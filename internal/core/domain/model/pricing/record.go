package pricing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Record is the saved admin price of an order.
type Record struct {
	BreakdownBase decimal.Decimal `json:"breakdownBase"`
	ComputedTotal decimal.Decimal `json:"computedTotal"`
	Discount      Discount        `json:"discount"`
	Adjustments   []Adjustment    `json:"adjustments"`
	LineOverrides []LineOverride  `json:"lineOverrides"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	UpdatedBy     string          `json:"updatedBy"`
}

// DefaultOverrides returns one untouched override per breakdown line.
func DefaultOverrides(b Breakdown) []LineOverride {
	var lines []Line
	if b != nil {
		lines = b.Lines()
	}
	out := make([]LineOverride, 0, len(lines))
	for i, l := range lines {
		out = append(out, LineOverride{
			Index:      i,
			Label:      l.Label(),
			BaseAmount: BaseAmount(l, nil),
		})
	}
	return out
}

// NewRecord validates the admin input and builds the snapshot to persist.
//
// Each override is re-synced with the live breakdown: its label is taken from
// the current line, its base amount is re-derived and kept, and on multi-unit
// lines with a unit price override the override amount is derived from it.
// Lines without an override get a default one so the record always carries
// every base amount.
func NewRecord(
	b Breakdown,
	overrides []LineOverride,
	d Discount,
	adjustments []Adjustment,
	actor string,
	now time.Time,
) (Record, error) {
	var lines []Line
	if b != nil {
		lines = b.Lines()
	}

	if err := validateInput(len(lines), overrides, d, actor); err != nil {
		return Record{}, err
	}

	synced := DefaultOverrides(b)
	for _, o := range overrides {
		l := lines[o.Index]
		o.Label = l.Label()
		o.BaseAmount = BaseAmount(l, &o)
		if qty := quantity(l, &o); o.OverrideUnitPrice != nil && qty > 1 {
			derived := o.OverrideUnitPrice.Mul(decimal.NewFromInt(int64(qty)))
			o.OverrideAmount = &derived
		}
		synced[o.Index] = o
	}

	cleaned := make([]Adjustment, 0, len(adjustments))
	for _, a := range adjustments {
		a.Description = strings.TrimSpace(a.Description)
		cleaned = append(cleaned, a)
	}

	totals := ComputeTotal(b, synced, d, cleaned)
	base := decimal.Zero
	for _, rl := range totals.Lines {
		base = base.Add(rl.BaseAmount)
	}

	return Record{
		BreakdownBase: base,
		ComputedTotal: totals.ComputedTotal,
		Discount:      d,
		Adjustments:   cleaned,
		LineOverrides: synced,
		UpdatedAt:     now.UTC(),
		UpdatedBy:     strings.TrimSpace(actor),
	}, nil
}

// ResetToDefaults drops every admin edit and recomputes from the stored base
// amounts. Labels are re-synced from the live breakdown.
func (r Record) ResetToDefaults(b Breakdown, actor string, now time.Time) (Record, error) {
	defaults := DefaultOverrides(b)
	stored := indexOverrides(r.LineOverrides)
	for i := range defaults {
		if o, ok := stored[i]; ok && !o.BaseAmount.IsZero() {
			defaults[i].BaseAmount = o.BaseAmount
		}
	}
	return NewRecord(b, defaults, Discount{}, nil, actor, now)
}

// Totals recomputes the record against a breakdown.
func (r Record) Totals(b Breakdown) Totals {
	return ComputeTotal(b, r.LineOverrides, r.Discount, r.Adjustments)
}

func validateInput(lineCount int, overrides []LineOverride, d Discount, actor string) error {
	var err error
	if strings.TrimSpace(actor) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("updatedBy"))
	}
	if d.Percent.IsNegative() {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("discount.percent", d.Percent, 0, "unbounded"))
	}
	if d.Amount.IsNegative() {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("discount.amount", d.Amount, 0, "unbounded"))
	}

	seen := make(map[int]struct{}, len(overrides))
	for _, o := range overrides {
		if o.Index < 0 || o.Index >= lineCount {
			err = errors.Join(err, errs.NewObjectNotFoundError("lineOverride.index", fmt.Sprint(o.Index)))
			continue
		}
		if _, dup := seen[o.Index]; dup {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("lineOverride.index",
				fmt.Errorf("index %d given twice", o.Index)))
		}
		seen[o.Index] = struct{}{}

		if o.Quantity != nil && *o.Quantity < 1 {
			err = errors.Join(err, errs.NewValueIsOutOfRangeError("lineOverride.quantity", *o.Quantity, 1, "unbounded"))
		}
		if o.VATPercent != nil && (o.VATPercent.IsNegative() || o.VATPercent.GreaterThan(hundred)) {
			err = errors.Join(err, errs.NewValueIsOutOfRangeError("lineOverride.vatPercent", *o.VATPercent, 0, 100))
		}
	}
	return err
}
