// Package shipment guards carrier bookings against being made twice.
//
// A booking is recorded only from a successful carrier response, together with
// its tracking data. Once recorded, any further attempt for the same carrier
// and direction fails with a ConflictError carrying the existing Booking.
package shipment

import (
	"fmt"
	"maps"
	"strings"
	"time"

	"fulfillment/internal/pkg/errs"
)

type Carrier string

const (
	DHL      Carrier = "dhl"
	PostNord Carrier = "postnord"
)

type Direction string

const (
	Pickup Direction = "pickup"
	Return Direction = "return"
)

// Key identifies a bookable carrier action.
type Key struct {
	Carrier   Carrier
	Direction Direction
}

// Supported actions: DHL pickup label, DHL return shipment, PostNord REK return.
var supported = map[Key]struct{}{
	{DHL, Pickup}:      {},
	{DHL, Return}:      {},
	{PostNord, Return}: {},
}

// NewKey validates a carrier and direction pair.
func NewKey(c Carrier, d Direction) (Key, error) {
	k := Key{Carrier: Carrier(strings.ToLower(string(c))), Direction: Direction(strings.ToLower(string(d)))}
	if _, ok := supported[k]; !ok {
		return Key{}, errs.NewValueIsInvalidErrorWithCause("shipment",
			fmt.Errorf("%s %s booking is not supported", c, d))
	}
	return k, nil
}

func (k Key) String() string {
	return string(k.Carrier) + "_" + string(k.Direction)
}

func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Key) UnmarshalText(b []byte) error {
	c, d, ok := strings.Cut(string(b), "_")
	if !ok {
		return errs.NewValueIsInvalidError("shipment key " + string(b))
	}
	parsed, err := NewKey(Carrier(c), Direction(d))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Result is what a carrier returns for a successful booking.
type Result struct {
	TrackingNumber string
	TrackingURL    string
	// Label is the shipping label document, usually a PDF.
	Label []byte
}

// Booking is a recorded carrier booking.
type Booking struct {
	Booked         bool       `json:"booked"`
	TrackingNumber string     `json:"trackingNumber,omitempty"`
	TrackingURL    string     `json:"trackingUrl,omitempty"`
	Label          []byte     `json:"label,omitempty"`
	BookedAt       *time.Time `json:"bookedAt,omitempty"`
}

// Bookings holds the bookings of an order.
type Bookings map[Key]Booking

// IsBooked reports whether the action was already booked.
func (b Bookings) IsBooked(k Key) bool {
	return b[k].Booked
}

// Get returns the booking for k, zero when none.
func (b Bookings) Get(k Key) Booking {
	return b[k]
}

// Guard must be called before contacting the carrier. It fails with a
// ConflictError carrying the existing Booking when k is already booked.
func (b Bookings) Guard(k Key) error {
	if existing, ok := b[k]; ok && existing.Booked {
		return errs.NewConflictError(k.String()+" already booked", existing)
	}
	return nil
}

// Record stores a successful carrier result. The booked flag and tracking
// data are set together.
func (b Bookings) Record(k Key, res Result, now time.Time) (Bookings, error) {
	if err := b.Guard(k); err != nil {
		return b, err
	}
	if strings.TrimSpace(res.TrackingNumber) == "" {
		return b, errs.NewValueIsRequiredError("trackingNumber")
	}

	at := now.UTC()
	out := maps.Clone(b)
	if out == nil {
		out = make(Bookings, 1)
	}
	out[k] = Booking{
		Booked:         true,
		TrackingNumber: strings.TrimSpace(res.TrackingNumber),
		TrackingURL:    res.TrackingURL,
		Label:          res.Label,
		BookedAt:       &at,
	}
	return out, nil
}
