package commands

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/confirmation"
	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// SendConfirmationCommandHandler records the new request on the order and
// queues the customer email in the same transaction.
type SendConfirmationCommandHandler struct {
	uowFactory    NotifyingUoWFactory
	ttl           time.Duration
	publicBaseURL string
	logger        *slog.Logger
}

func NewSendConfirmationCommandHandler(
	uowFactory NotifyingUoWFactory,
	ttl time.Duration,
	publicBaseURL string,
	logger *slog.Logger,
) SendConfirmationCommandHandler {
	if ttl <= 0 {
		ttl = confirmation.DefaultTTL
	}
	return SendConfirmationCommandHandler{
		uowFactory:    uowFactory,
		ttl:           ttl,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger.With("component", "SendConfirmationCommandHandler"),
	}
}

func (h SendConfirmationCommandHandler) Handle(ctx context.Context, cmd SendConfirmationCommand) (confirmation.Request, error) {
	if err := cmd.Validate(); err != nil {
		return confirmation.Request{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return confirmation.Request{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return confirmation.Request{}, err
	}

	req, err := o.SendConfirmation(cmd.Type(), cmd.Payload(), time.Now(), h.ttl)
	if err != nil {
		return confirmation.Request{}, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return confirmation.Request{}, err
	}

	if err = uow.Notifier().Notify(ctx, h.notification(o, req)); err != nil {
		return confirmation.Request{}, errs.NewExternalServiceErrorWithCause("email", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return confirmation.Request{}, err
	}

	h.logger.InfoContext(ctx, "confirmation sent",
		"order_id", o.ID().String(),
		"type", string(req.Type),
		"send_count", req.SendCount,
	)
	return req, nil
}

func (h SendConfirmationCommandHandler) notification(o *fulfillment.Order, req confirmation.Request) ports.Notification {
	s := o.Snapshot()
	n := ports.Notification{
		OrderID:     o.ID(),
		OrderNumber: s.OrderNumber,
		Kind:        ports.NotifyAddressConfirmation,
		Recipient:   s.CustomerEmail,
		Locale:      s.Locale,
		Data: map[string]string{
			"type":      string(req.Type),
			"link":      h.confirmationLink(o, req),
			"expiresAt": req.ExpiresAt.Format(time.RFC3339),
		},
	}

	if req.Type == confirmation.EmbassyPrice {
		n.Kind = ports.NotifyEmbassyPrice
		n.Data["proposedPrice"] = req.Payload.ProposedPrice.StringFixed(2)
		if req.Payload.ProspectiveTotal != nil {
			n.Data["prospectiveTotal"] = req.Payload.ProspectiveTotal.StringFixed(2)
		}
	}
	return n
}

// confirmationLink is the customer-facing URL carrying the one-time token.
func (h SendConfirmationCommandHandler) confirmationLink(o *fulfillment.Order, req confirmation.Request) string {
	q := url.Values{}
	q.Set("token", req.Token)
	return h.publicBaseURL + "/confirm/" + url.PathEscape(o.ID().String()) + "/" + string(req.Type) + "?" + q.Encode()
}
