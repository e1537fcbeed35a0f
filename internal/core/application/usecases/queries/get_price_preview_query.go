package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/pricing"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetPricePreviewQueryIsNotConstructed = errors.New(
		"GetPricePreviewQuery must be created via NewGetPricePreviewQuery constructor",
	)
	ErrGetEmbassyPricePreviewQueryIsNotConstructed = errors.New(
		"GetEmbassyPricePreviewQuery must be created via NewGetEmbassyPricePreviewQuery constructor",
	)
)

// PriceInput is unsaved admin price input.
type PriceInput struct {
	Overrides   []pricing.LineOverride
	Discount    pricing.Discount
	Adjustments []pricing.Adjustment
}

// GetPricePreviewQuery computes the totals the admin would save. Without
// input the stored price record is shown, or the plain breakdown when no price
// was saved yet.
type GetPricePreviewQuery struct {
	orderID kernel.UUID
	input   *PriceInput

	guard guard.ConstructorGuard
}

func NewGetPricePreviewQuery(orderID kernel.UUID, input *PriceInput) (GetPricePreviewQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetPricePreviewQuery{}, errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}
	return GetPricePreviewQuery{orderID: orderID, input: input, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPricePreviewQuery) Validate() error {
	return q.guard.Validate(ErrGetPricePreviewQueryIsNotConstructed)
}

func (q GetPricePreviewQuery) OrderID() kernel.UUID { return q.orderID }
func (q GetPricePreviewQuery) Input() *PriceInput   { return q.input }

// GetPricePreviewQueryResponse carries the computed totals and the saved
// record, if any.
type GetPricePreviewQueryResponse struct {
	Totals     pricing.Totals  `json:"totals"`
	Saved      *pricing.Record `json:"saved,omitempty"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// GetEmbassyPricePreviewQuery shows the order total the customer would pay
// if they accepted a proposed embassy fee.
type GetEmbassyPricePreviewQuery struct {
	orderID  kernel.UUID
	proposed decimal.Decimal

	guard guard.ConstructorGuard
}

func NewGetEmbassyPricePreviewQuery(orderID kernel.UUID, proposed decimal.Decimal) (GetEmbassyPricePreviewQuery, error) {
	var err error
	if verr := orderID.Validate(); verr != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("orderID", verr))
	}
	if !proposed.IsPositive() {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("proposedPrice", proposed, "0 exclusive", "unbounded"))
	}
	if err != nil {
		return GetEmbassyPricePreviewQuery{}, err
	}
	return GetEmbassyPricePreviewQuery{orderID: orderID, proposed: proposed, guard: guard.NewConstructorGuard()}, nil
}

func (q GetEmbassyPricePreviewQuery) Validate() error {
	return q.guard.Validate(ErrGetEmbassyPricePreviewQueryIsNotConstructed)
}

func (q GetEmbassyPricePreviewQuery) OrderID() kernel.UUID      { return q.orderID }
func (q GetEmbassyPricePreviewQuery) Proposed() decimal.Decimal { return q.proposed }

type GetEmbassyPricePreviewQueryResponse struct {
	ConfirmedTotal   decimal.Decimal `json:"confirmedTotal"`
	ProposedPrice    decimal.Decimal `json:"proposedPrice"`
	ProspectiveTotal decimal.Decimal `json:"prospectiveTotal"`
	// HasTBC is false once the embassy fee is known; the price can then no
	// longer be sent for confirmation.
	HasTBC bool `json:"hasTBC"`
}
