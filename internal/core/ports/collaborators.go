package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
)

// BookingRequest is what the carrier needs to book a shipment.
type BookingRequest struct {
	Key         shipment.Key
	OrderNumber string
	Address     kernel.Address
	// PickupDate is set for pickups.
	PickupDate *time.Time
}

// CarrierBooker books shipments with an external carrier. It either returns a
// complete result or an error; no partial bookings.
type CarrierBooker interface {
	Book(ctx context.Context, req BookingRequest) (shipment.Result, error)
}

// NotificationKind names a customer email template.
type NotificationKind string

const (
	NotifyAddressConfirmation NotificationKind = "address_confirmation"
	NotifyEmbassyPrice        NotificationKind = "embassy_price_confirmation"
	NotifyShipmentBooked      NotificationKind = "shipment_booked"
)

// Notification is a customer email to be composed and delivered elsewhere.
type Notification struct {
	OrderID     kernel.UUID
	OrderNumber string
	Kind        NotificationKind
	Recipient   string
	Locale      string
	Data        map[string]string
}

// Notifier queues customer notifications. Implementations that share the
// command's transaction deliver only what was committed.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
