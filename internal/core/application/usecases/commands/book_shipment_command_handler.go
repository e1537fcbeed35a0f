package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// BookShipmentCommandHandler books a shipment at most once per carrier and
// direction.
//
// The stored booking flag is checked before the carrier is contacted. A
// rejected re-booking returns the existing booking together with an
// errs.ConflictError, so the caller can still show the tracking number and
// label. A carrier failure returns errs.ExternalServiceError and leaves the
// order untouched, so the action can be retried. Once the carrier has
// accepted, the booking is committed before the customer email is queued.
type BookShipmentCommandHandler struct {
	uowFactory NotifyingUoWFactory
	carrier    ports.CarrierBooker
	logger     *slog.Logger
}

func NewBookShipmentCommandHandler(
	uowFactory NotifyingUoWFactory,
	carrier ports.CarrierBooker,
	logger *slog.Logger,
) BookShipmentCommandHandler {
	return BookShipmentCommandHandler{
		uowFactory: uowFactory,
		carrier:    carrier,
		logger:     logger.With("component", "BookShipmentCommandHandler"),
	}
}

func (h BookShipmentCommandHandler) Handle(ctx context.Context, cmd BookShipmentCommand) (shipment.Booking, error) {
	if err := cmd.Validate(); err != nil {
		return shipment.Booking{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return shipment.Booking{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return shipment.Booking{}, err
	}

	key := cmd.Key()
	if err = o.GuardBooking(key); err != nil {
		return o.Bookings().Get(key), err
	}

	addr, err := o.ShippingAddress(key.Direction)
	if err != nil {
		return shipment.Booking{}, err
	}

	s := o.Snapshot()
	req := ports.BookingRequest{
		Key:         key,
		OrderNumber: s.OrderNumber,
		Address:     addr,
	}
	if key.Direction == shipment.Pickup {
		req.PickupDate = s.PickupDate
	}

	res, err := h.carrier.Book(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "carrier booking failed",
			"order_id", o.ID().String(),
			"booking", key.String(),
			"error", err,
		)
		return shipment.Booking{}, errs.NewExternalServiceErrorWithCause(string(key.Carrier), err)
	}

	if err = o.RecordBooking(key, res, time.Now()); err != nil {
		return shipment.Booking{}, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return shipment.Booking{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return shipment.Booking{}, err
	}

	booking := o.Bookings().Get(key)
	h.logger.InfoContext(ctx, "shipment booked",
		"order_id", o.ID().String(),
		"booking", key.String(),
		"tracking_number", booking.TrackingNumber,
	)

	h.notifyBooked(ctx, o.ID(), s, key, booking)
	return booking, nil
}

// notifyBooked queues the tracking email in its own transaction. The booking
// is already committed, so a failure here is logged and not returned.
func (h BookShipmentCommandHandler) notifyBooked(
	ctx context.Context,
	orderID kernel.UUID,
	s order.Snapshot,
	key shipment.Key,
	booking shipment.Booking,
) {
	err := func() error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer func() {
			_ = uow.Rollback(ctx)
		}()

		if err := uow.Notifier().Notify(ctx, ports.Notification{
			OrderID:     orderID,
			OrderNumber: s.OrderNumber,
			Kind:        ports.NotifyShipmentBooked,
			Recipient:   s.CustomerEmail,
			Locale:      s.Locale,
			Data: map[string]string{
				"carrier":        string(key.Carrier),
				"direction":      string(key.Direction),
				"trackingNumber": booking.TrackingNumber,
				"trackingUrl":    booking.TrackingURL,
			},
		}); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}()
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to queue shipment email",
			"order_id", orderID.String(),
			"booking", key.String(),
			"error", err,
		)
	}
}
