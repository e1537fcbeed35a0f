package fulfillment

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/confirmation"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/pricing"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// SendConfirmation starts (or restarts) a confirmation round. Address
// requests default to the address on the order; price requests carry the
// prospective total.
func (o *Order) SendConfirmation(t confirmation.Type, p confirmation.Payload, now time.Time, ttl time.Duration) (confirmation.Request, error) {
	switch t {
	case confirmation.AddressPickup:
		if p.Address == nil {
			addr := o.snapshot.PickupAddress
			p.Address = &addr
		}
	case confirmation.AddressReturn:
		if p.Address == nil {
			addr := o.snapshot.ReturnAddress
			p.Address = &addr
		}
	case confirmation.EmbassyPrice:
		if !pricing.HasTBC(o.breakdown) {
			return confirmation.Request{}, errs.NewValueIsInvalidErrorWithCause("embassyPrice",
				errors.New("breakdown has no fee to be confirmed"))
		}
		if p.ProposedPrice != nil {
			total := confirmation.ProspectiveTotal(o.breakdown, *p.ProposedPrice)
			p.ProspectiveTotal = &total
		}
	}

	r, err := confirmation.Send(o.confirmations.Get(t), t, p, now, ttl)
	if err != nil {
		return confirmation.Request{}, err
	}
	o.confirmations = o.confirmations.With(r)
	return r, nil
}

// ConfirmByCustomer applies a customer acceptance. An accepted embassy price
// resolves the TBC breakdown line and the order total becomes the total the
// customer was shown. The saved admin record is left as it was.
func (o *Order) ConfirmByCustomer(t confirmation.Type, token string, submitted *kernel.Address, now time.Time) (confirmation.Request, error) {
	r, err := o.confirmations.Get(t).Confirm(token, submitted, now)
	if err != nil {
		return confirmation.Request{}, err
	}

	if t == confirmation.EmbassyPrice && r.Payload.ProposedPrice != nil {
		if b, ok := pricing.ResolveEmbassyFee(o.breakdown, *r.Payload.ProposedPrice); ok {
			o.breakdown = b
			if r.Payload.ProspectiveTotal != nil {
				o.totalPrice = *r.Payload.ProspectiveTotal
			} else {
				o.recomputeTotal()
			}
		}
	}

	o.confirmations = o.confirmations.With(r)
	return r, nil
}

// DeclineByCustomer applies a customer refusal.
func (o *Order) DeclineByCustomer(t confirmation.Type, token string, now time.Time) (confirmation.Request, error) {
	r, err := o.confirmations.Get(t).Decline(token, now)
	if err != nil {
		return confirmation.Request{}, err
	}
	o.confirmations = o.confirmations.With(r)
	return r, nil
}

func (o *Order) recomputeTotal() {
	if o.price == nil {
		o.totalPrice = pricing.ComputeTotal(o.breakdown, nil, pricing.Discount{}, nil).ComputedTotal
		return
	}
	p := *o.price
	totals := p.Totals(o.breakdown)
	p.ComputedTotal = totals.ComputedTotal
	p.BreakdownBase = decimal.Zero
	for _, l := range totals.Lines {
		p.BreakdownBase = p.BreakdownBase.Add(l.BaseAmount)
	}
	o.price = &p
	o.totalPrice = totals.ComputedTotal
}
