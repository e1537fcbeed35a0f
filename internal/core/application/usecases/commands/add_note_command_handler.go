package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

type AddNoteCommandHandler struct {
	uowFactory NoteUoWFactory
}

func NewAddNoteCommandHandler(uowFactory NoteUoWFactory) AddNoteCommandHandler {
	return AddNoteCommandHandler{uowFactory: uowFactory}
}

func (h AddNoteCommandHandler) Handle(ctx context.Context, cmd AddNoteCommand) (order.Note, error) {
	if err := cmd.Validate(); err != nil {
		return order.Note{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.Note{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// notes may only be attached to existing orders
	if _, err := uow.OrderRepository().Get(ctx, cmd.OrderID()); err != nil {
		return order.Note{}, err
	}

	note, err := order.NewNote(cmd.OrderID(), cmd.NoteType(), cmd.Content(), cmd.CreatedBy(), time.Now())
	if err != nil {
		return order.Note{}, err
	}

	if err = uow.NoteRepository().Append(ctx, note); err != nil {
		return order.Note{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Note{}, err
	}
	return note, nil
}
