package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	vatService  = decimal.NewFromInt(25)
	vatOfficial = decimal.Zero
)

// LineOverride is an admin edit layered over the breakdown line at Index.
// BaseAmount keeps the derived base so the edit can always be undone.
type LineOverride struct {
	Index             int              `json:"index"`
	Label             string           `json:"label"`
	BaseAmount        decimal.Decimal  `json:"baseAmount"`
	OverrideAmount    *decimal.Decimal `json:"overrideAmount,omitempty"`
	OverrideUnitPrice *decimal.Decimal `json:"overrideUnitPrice,omitempty"`
	Quantity          *int             `json:"quantity,omitempty"`
	VATPercent        *decimal.Decimal `json:"vatPercent,omitempty"`
	Include           *bool            `json:"include,omitempty"`
}

// Included defaults to true.
func (o *LineOverride) Included() bool {
	return o == nil || o.Include == nil || *o.Include
}

// quantity is the quantity the override prices with: its own when set,
// otherwise the line's.
func quantity(l Line, o *LineOverride) int {
	if o != nil && o.Quantity != nil {
		return *o.Quantity
	}
	return l.Quantity
}

// BaseAmount derives a line's base amount. The first applicable rule wins; a
// line field applies as soon as it is present, even at zero, so a waived line
// stays waived:
//
//  1. unitPrice x quantity when quantity > 1, always from the live line
//  2. the baseAmount stored on the override, when non-zero
//  3. total
//  4. fee
//  5. basePrice
//  6. unitPrice x max(quantity, 1)
//  7. (officialFee + serviceFee) x max(quantity, 1), when both are present
//  8. zero
func BaseAmount(l Line, o *LineOverride) decimal.Decimal {
	qty := decimal.NewFromInt(int64(max(l.Quantity, 1)))

	if l.Quantity > 1 && l.UnitPrice != nil {
		return l.UnitPrice.Mul(qty)
	}
	if o != nil && !o.BaseAmount.IsZero() {
		return o.BaseAmount
	}
	for _, v := range []*decimal.Decimal{l.Total, l.Fee, l.BasePrice} {
		if v != nil {
			return *v
		}
	}
	if l.UnitPrice != nil {
		return l.UnitPrice.Mul(qty)
	}
	if l.OfficialFee != nil && l.ServiceFee != nil {
		return l.OfficialFee.Add(*l.ServiceFee).Mul(qty)
	}
	return decimal.Zero
}

// Resolve returns the amount a line contributes to the breakdown total.
//
// Excluded lines contribute zero whatever else is set. On a multi-unit line the
// unit price override is the only edit honoured; a plain amount override is
// used for single-unit lines.
func Resolve(l Line, o *LineOverride) decimal.Decimal {
	if !o.Included() {
		return decimal.Zero
	}
	if o != nil {
		if qty := quantity(l, o); o.OverrideUnitPrice != nil && qty > 1 {
			return o.OverrideUnitPrice.Mul(decimal.NewFromInt(int64(qty)))
		}
		if o.OverrideAmount != nil && quantity(l, o) <= 1 {
			return *o.OverrideAmount
		}
	}
	return BaseAmount(l, o)
}

// DefaultVAT is the VAT percentage for a line without an explicit rate:
// official and embassy fees carry none, service fees 25%.
func DefaultVAT(l Line) decimal.Decimal {
	if l.VATRate != nil {
		return *l.VATRate
	}
	if isOfficialFee(l) {
		return vatOfficial
	}
	return vatService
}

// VATPercent is the VAT shown for a line, preferring the override.
func VATPercent(l Line, o *LineOverride) decimal.Decimal {
	if o != nil && o.VATPercent != nil {
		return *o.VATPercent
	}
	return DefaultVAT(l)
}

func isOfficialFee(l Line) bool {
	s := strings.ToLower(l.Service)
	return s == ServiceEmbassyOfficial ||
		strings.HasSuffix(s, "_official") ||
		strings.Contains(s, "official_fee") ||
		strings.Contains(s, "embassy_fee")
}
