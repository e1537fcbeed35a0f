package pricing

import (
	"slices"
	"strings"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ServiceEmbassyOfficial marks the embassy fee line of a legalization breakdown.
const ServiceEmbassyOfficial = "embassy_official"

// Line is one breakdown line. Only the fields the pricing source filled in are
// set; the base amount is derived from whichever is present.
type Line struct {
	Description string           `json:"description"`
	Service     string           `json:"service,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unitPrice,omitempty"`
	Quantity    int              `json:"quantity,omitempty"`
	Total       *decimal.Decimal `json:"total,omitempty"`
	Fee         *decimal.Decimal `json:"fee,omitempty"`
	BasePrice   *decimal.Decimal `json:"basePrice,omitempty"`
	OfficialFee *decimal.Decimal `json:"officialFee,omitempty"`
	ServiceFee  *decimal.Decimal `json:"serviceFee,omitempty"`
	VATRate     *decimal.Decimal `json:"vatRate,omitempty"`
	IsTBC       bool             `json:"isTBC,omitempty"`
}

// Label is the text an override is shown under.
func (l Line) Label() string {
	if d := strings.TrimSpace(l.Description); d != "" {
		return d
	}
	return l.Service
}

// Breakdown is the base pricing of an order.
type Breakdown interface {
	// Lines returns a copy of the lines in their positional order.
	Lines() []Line
}

// LineList is the list-of-lines breakdown used by legalization orders.
type LineList []Line

func (l LineList) Lines() []Line {
	return slices.Clone(l)
}

// VisaFees is the fixed-key breakdown used by visa orders. The optional fees
// only become lines when they are positive.
type VisaFees struct {
	ServiceFee   decimal.Decimal `json:"serviceFee"`
	EmbassyFee   decimal.Decimal `json:"embassyFee"`
	EmbassyTBC   bool            `json:"embassyTBC,omitempty"`
	ShippingFee  decimal.Decimal `json:"shippingFee"`
	ExpeditedFee decimal.Decimal `json:"expeditedFee"`
	ExpressPrice decimal.Decimal `json:"expressPrice"`
	UrgentPrice  decimal.Decimal `json:"urgentPrice"`
}

func (v VisaFees) Lines() []Line {
	lines := []Line{
		feeLine("Visa service fee", "service_fee", v.ServiceFee, false),
		feeLine("Embassy official fee", ServiceEmbassyOfficial, v.EmbassyFee, v.EmbassyTBC),
	}
	optional := []struct {
		label, service string
		amount         decimal.Decimal
	}{
		{"Shipping fee", "shipping_fee", v.ShippingFee},
		{"Expedited fee", "expedited_fee", v.ExpeditedFee},
		{"Express processing", "express_price", v.ExpressPrice},
		{"Urgent processing", "urgent_price", v.UrgentPrice},
	}
	for _, o := range optional {
		if o.amount.IsPositive() {
			lines = append(lines, feeLine(o.label, o.service, o.amount, false))
		}
	}
	return lines
}

func feeLine(label, service string, amount decimal.Decimal, tbc bool) Line {
	total := amount
	unit := amount
	return Line{
		Description: label,
		Service:     service,
		UnitPrice:   &unit,
		Quantity:    1,
		Total:       &total,
		IsTBC:       tbc,
	}
}

// Source is the persisted form of a breakdown. At most one field is set.
type Source struct {
	Lines []Line    `json:"lines,omitempty"`
	Visa  *VisaFees `json:"visa,omitempty"`
}

// SourceOf converts a breakdown back into its persisted form.
func SourceOf(b Breakdown) Source {
	switch b := b.(type) {
	case VisaFees:
		return Source{Visa: &b}
	case LineList:
		return Source{Lines: slices.Clone([]Line(b))}
	case nil:
		return Source{}
	default:
		return Source{Lines: b.Lines()}
	}
}

// BreakdownFor picks the breakdown shape for an order type.
func BreakdownFor(t order.OrderType, src Source) (Breakdown, error) {
	switch t {
	case order.TypeVisa:
		if src.Visa != nil {
			return *src.Visa, nil
		}
		if len(src.Lines) == 0 {
			return nil, errs.NewValueIsRequiredError("pricingBreakdown.visa")
		}
		return LineList(src.Lines), nil
	case order.TypeLegalization:
		if src.Visa != nil {
			return nil, errs.NewValueIsInvalidError("pricingBreakdown.visa")
		}
		return LineList(src.Lines), nil
	}
	return nil, t.Validate()
}

// HasTBC reports whether any line still waits for a confirmed price.
func HasTBC(b Breakdown) bool {
	if b == nil {
		return false
	}
	return slices.ContainsFunc(b.Lines(), func(l Line) bool { return l.IsTBC })
}

// ConfirmedTotal sums the base amounts of every line that is not TBC.
func ConfirmedTotal(b Breakdown) decimal.Decimal {
	sum := decimal.Zero
	if b == nil {
		return sum
	}
	for _, l := range b.Lines() {
		if !l.IsTBC {
			sum = sum.Add(BaseAmount(l, nil))
		}
	}
	return sum
}

// ResolveEmbassyFee replaces the TBC embassy fee with a confirmed price. The
// bool is false when the breakdown has no TBC embassy line.
func ResolveEmbassyFee(b Breakdown, price decimal.Decimal) (Breakdown, bool) {
	switch b := b.(type) {
	case VisaFees:
		if !b.EmbassyTBC {
			return b, false
		}
		b.EmbassyFee = price
		b.EmbassyTBC = false
		return b, true
	case LineList:
		out := slices.Clone(b)
		for i, l := range out {
			if l.Service != ServiceEmbassyOfficial || !l.IsTBC {
				continue
			}
			qty := max(l.Quantity, 1)
			total := price
			unit := price.Div(decimal.NewFromInt(int64(qty)))
			l.Total = &total
			l.UnitPrice = &unit
			l.IsTBC = false
			out[i] = l
			return out, true
		}
		return b, false
	}
	return b, false
}
