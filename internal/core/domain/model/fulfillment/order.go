package fulfillment

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/confirmation"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/pricing"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/model/step"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of the fulfillment core.
//
// Invariants:
//   - the snapshot is valid and never changes after construction
//   - steps are unique by id and keep their order between writes
//   - totalPrice is never negative
type Order struct {
	snapshot      order.Snapshot
	steps         []step.Step
	breakdown     pricing.Breakdown
	price         *pricing.Record
	totalPrice    decimal.Decimal
	confirmations confirmation.Set
	bookings      shipment.Bookings
	isConstructed bool
}

// NewOrder creates the fulfillment record for a freshly placed order. Steps
// are generated and the total is the plain breakdown total.
func NewOrder(s order.Snapshot, src pricing.Source) (*Order, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	b, err := pricing.BreakdownFor(s.OrderType, src)
	if err != nil {
		return nil, err
	}

	return &Order{
		snapshot:      s,
		steps:         step.Generate(s),
		breakdown:     b,
		totalPrice:    pricing.ComputeTotal(b, nil, pricing.Discount{}, nil).ComputedTotal,
		confirmations: confirmation.Set{},
		bookings:      shipment.Bookings{},
		isConstructed: true,
	}, nil
}

// RestoreOrder rebuilds an Order from storage without regenerating anything.
// Stored steps may be empty; EnsureSteps fills them in.
func RestoreOrder(
	s order.Snapshot,
	steps []step.Step,
	b pricing.Breakdown,
	price *pricing.Record,
	totalPrice decimal.Decimal,
	confirmations confirmation.Set,
	bookings shipment.Bookings,
) *Order {
	if confirmations == nil {
		confirmations = confirmation.Set{}
	}
	if bookings == nil {
		bookings = shipment.Bookings{}
	}
	if b == nil {
		b = pricing.LineList(nil)
	}
	return &Order{
		snapshot:      s,
		steps:         steps,
		breakdown:     b,
		price:         price,
		totalPrice:    totalPrice,
		confirmations: confirmations,
		bookings:      bookings,
		isConstructed: true,
	}
}

// Validate ensures the Order was built by one of the constructors.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID                 { return o.snapshot.ID }
func (o *Order) Snapshot() order.Snapshot        { return o.snapshot }
func (o *Order) Breakdown() pricing.Breakdown    { return o.breakdown }
func (o *Order) TotalPrice() decimal.Decimal     { return o.totalPrice }
func (o *Order) Confirmations() confirmation.Set { return o.confirmations }
func (o *Order) Bookings() shipment.Bookings     { return o.bookings }
func (o *Order) Confirmation(t confirmation.Type) confirmation.Request {
	return o.confirmations.Get(t)
}

// Steps returns a copy of the processing steps.
func (o *Order) Steps() []step.Step {
	out := make([]step.Step, len(o.steps))
	copy(out, o.steps)
	return out
}

// Price returns the saved admin price, nil when never saved.
func (o *Order) Price() *pricing.Record {
	if o.price == nil {
		return nil
	}
	p := *o.price
	return &p
}

// EnsureSteps synthesizes missing steps and applies the legacy migration.
// It reports whether the steps changed and need to be written back.
func (o *Order) EnsureSteps() bool {
	steps, changed := step.Ensure(o.steps, o.snapshot)
	if changed {
		o.steps = steps
	}
	return changed
}

// RegenerateSteps replaces all steps with a fresh derivation; every status is
// reset to pending.
func (o *Order) RegenerateSteps() {
	o.steps = step.Generate(o.snapshot)
}

// TransitionStep applies a status change. The returned warnings come from the
// completion guard.
func (o *Order) TransitionStep(id string, next step.Status, change step.Change) ([]string, error) {
	o.EnsureSteps()
	res, err := step.Transition(o.steps, id, next, change)
	if err != nil {
		return nil, err
	}
	o.steps = res.Steps
	return res.Warnings, nil
}

// UpdateStepMetadata edits a step's dates or notes.
func (o *Order) UpdateStepMetadata(id string, m step.Metadata) error {
	o.EnsureSteps()
	steps, err := step.ApplyMetadata(o.steps, id, m)
	if err != nil {
		return err
	}
	o.steps = steps
	return nil
}

// PricePreview computes totals for unsaved admin input.
func (o *Order) PricePreview(overrides []pricing.LineOverride, d pricing.Discount, adj []pricing.Adjustment) pricing.Totals {
	if overrides == nil {
		if o.price != nil {
			overrides = o.price.LineOverrides
		} else {
			overrides = pricing.DefaultOverrides(o.breakdown)
		}
	}
	return pricing.ComputeTotal(o.breakdown, overrides, d, adj)
}

// SavePrice stores a new admin price and makes its total the order total.
func (o *Order) SavePrice(
	overrides []pricing.LineOverride,
	d pricing.Discount,
	adj []pricing.Adjustment,
	actor string,
	now time.Time,
) (pricing.Record, error) {
	r, err := pricing.NewRecord(o.breakdown, overrides, d, adj, actor, now)
	if err != nil {
		return pricing.Record{}, err
	}
	o.price = &r
	o.totalPrice = r.ComputedTotal
	return r, nil
}

// ResetPrice drops every admin edit and restores the pristine total.
func (o *Order) ResetPrice(actor string, now time.Time) (pricing.Record, error) {
	var current pricing.Record
	if o.price != nil {
		current = *o.price
	}
	r, err := current.ResetToDefaults(o.breakdown, actor, now)
	if err != nil {
		return pricing.Record{}, err
	}
	o.price = &r
	o.totalPrice = r.ComputedTotal
	return r, nil
}

// IsBooked reports whether a carrier action was already booked.
func (o *Order) IsBooked(k shipment.Key) bool {
	return o.bookings.IsBooked(k)
}

// GuardBooking must be called before contacting a carrier.
func (o *Order) GuardBooking(k shipment.Key) error {
	return o.bookings.Guard(k)
}

// RecordBooking stores a successful carrier result.
func (o *Order) RecordBooking(k shipment.Key, res shipment.Result, now time.Time) error {
	b, err := o.bookings.Record(k, res, now)
	if err != nil {
		return err
	}
	o.bookings = b
	return nil
}

// ShippingAddress is the address a carrier should use for the direction: the
// customer-confirmed one when available, otherwise the one on the order.
func (o *Order) ShippingAddress(d shipment.Direction) (kernel.Address, error) {
	t, fallback := confirmation.AddressReturn, o.snapshot.ReturnAddress
	if d == shipment.Pickup {
		t, fallback = confirmation.AddressPickup, o.snapshot.PickupAddress
	}
	if addr, ok := o.confirmations.Get(t).ConfirmedAddress(); ok {
		return addr, nil
	}
	if err := fallback.Validate(); err != nil {
		return kernel.Address{}, errs.NewValueIsRequiredErrorWithCause(string(d)+"Address", err)
	}
	return fallback, nil
}
