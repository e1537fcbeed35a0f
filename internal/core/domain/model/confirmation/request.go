package confirmation

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/pricing"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultTTL is how long a customer link stays valid.
const DefaultTTL = 14 * 24 * time.Hour

// Type names a confirmation workflow.
type Type string

const (
	AddressPickup Type = "address_pickup"
	AddressReturn Type = "address_return"
	EmbassyPrice  Type = "embassy_price"
)

func (t Type) Validate() error {
	switch t {
	case AddressPickup, AddressReturn, EmbassyPrice:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("confirmationType", fmt.Errorf("unknown type %q", t))
}

func (t Type) isAddress() bool {
	return t == AddressPickup || t == AddressReturn
}

// Status of a confirmation round.
type Status string

const (
	StatusNone      Status = "none"
	StatusSent      Status = "sent"
	StatusConfirmed Status = "confirmed"
	StatusDeclined  Status = "declined"
)

// Payload is what the customer is asked to confirm. Address types carry an
// address, the embassy price type a proposed fee.
type Payload struct {
	Address       *kernel.Address  `json:"address,omitempty"`
	ProposedPrice *decimal.Decimal `json:"proposedPrice,omitempty"`
	// ProspectiveTotal is the order total the customer will pay if they accept.
	ProspectiveTotal *decimal.Decimal `json:"prospectiveTotal,omitempty"`
}

// Request is one confirmation workflow of an order.
type Request struct {
	Type        Type       `json:"type"`
	Status      Status     `json:"status"`
	Token       string     `json:"token,omitempty"`
	SentAt      *time.Time `json:"sentAt,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
	DeclinedAt  *time.Time `json:"declinedAt,omitempty"`
	SendCount   int        `json:"sendCount"`
	Payload     Payload    `json:"payload"`

	// SubmittedAddress is the address the customer confirmed with, when it
	// differs from the one sent.
	SubmittedAddress         *kernel.Address `json:"submittedAddress,omitempty"`
	AddressUpdatedByCustomer bool            `json:"addressUpdatedByCustomer,omitempty"`
}

// Send starts a confirmation round. prev is the current request of the same
// type, or the zero Request.
func Send(prev Request, t Type, p Payload, now time.Time, ttl time.Duration) (Request, error) {
	if err := t.Validate(); err != nil {
		return prev, err
	}
	if err := validatePayload(t, p); err != nil {
		return prev, err
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	sentAt := now.UTC()
	expiresAt := sentAt.Add(ttl)
	return Request{
		Type:      t,
		Status:    StatusSent,
		Token:     uuid.NewString(),
		SentAt:    &sentAt,
		ExpiresAt: &expiresAt,
		SendCount: prev.SendCount + 1,
		Payload:   p,
	}, nil
}

// Confirm records the customer's acceptance. For address confirmations the
// customer may submit a corrected address; the request then flags the change.
func (r Request) Confirm(token string, submitted *kernel.Address, now time.Time) (Request, error) {
	if err := r.checkAnswerable(token, now); err != nil {
		return r, err
	}

	if submitted != nil {
		if !r.Type.isAddress() {
			return r, errs.NewValueIsInvalidErrorWithCause("address",
				fmt.Errorf("%s cannot be answered with an address", r.Type))
		}
		if err := submitted.Validate(); err != nil {
			return r, err
		}
		if r.Payload.Address == nil || !r.Payload.Address.IsEqual(*submitted) {
			addr := *submitted
			r.SubmittedAddress = &addr
			r.AddressUpdatedByCustomer = true
		}
	}

	at := now.UTC()
	r.Status = StatusConfirmed
	r.ConfirmedAt = &at
	return r, nil
}

// Decline records the customer's refusal.
func (r Request) Decline(token string, now time.Time) (Request, error) {
	if err := r.checkAnswerable(token, now); err != nil {
		return r, err
	}
	at := now.UTC()
	r.Status = StatusDeclined
	r.DeclinedAt = &at
	return r, nil
}

// ConfirmedAddress is the address to use once confirmed: the customer's
// correction when there is one, otherwise the address that was sent.
func (r Request) ConfirmedAddress() (kernel.Address, bool) {
	if r.Status != StatusConfirmed || !r.Type.isAddress() {
		return kernel.Address{}, false
	}
	if r.SubmittedAddress != nil {
		return *r.SubmittedAddress, true
	}
	if r.Payload.Address != nil {
		return *r.Payload.Address, true
	}
	return kernel.Address{}, false
}

func (r Request) checkAnswerable(token string, now time.Time) error {
	switch r.Status {
	case StatusSent:
	case StatusConfirmed, StatusDeclined:
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s confirmation already answered", r.Type))
	default:
		return errs.NewObjectNotFoundError("confirmation", string(r.Type))
	}
	if token == "" || token != r.Token {
		return errs.NewObjectNotFoundError("token", token)
	}
	if r.ExpiresAt != nil && now.After(*r.ExpiresAt) {
		return errs.NewValueIsInvalidErrorWithCause("token",
			fmt.Errorf("link expired at %s", r.ExpiresAt.Format(time.RFC3339)))
	}
	return nil
}

func validatePayload(t Type, p Payload) error {
	if t.isAddress() {
		if p.Address == nil {
			return errs.NewValueIsRequiredError("payload.address")
		}
		return p.Address.Validate()
	}
	if p.ProposedPrice == nil {
		return errs.NewValueIsRequiredError("payload.proposedPrice")
	}
	if !p.ProposedPrice.IsPositive() {
		return errs.NewValueIsOutOfRangeError("payload.proposedPrice", *p.ProposedPrice, "0 exclusive", "unbounded")
	}
	return nil
}

// ProspectiveTotal is the order total if the customer accepts the proposed
// embassy fee: every confirmed breakdown line plus the proposal.
func ProspectiveTotal(b pricing.Breakdown, proposed decimal.Decimal) decimal.Decimal {
	return pricing.ConfirmedTotal(b).Add(proposed).Round(2)
}
