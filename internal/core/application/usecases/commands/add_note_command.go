package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrAddNoteCommandIsNotConstructed = errors.New(
		"AddNoteCommand must be created via NewAddNoteCommand constructor",
	)
)

// AddNoteCommand appends an internal note to an order. An empty note type
// defaults to general.
type AddNoteCommand struct {
	orderID   kernel.UUID
	noteType  order.NoteType
	content   string
	createdBy string

	guard guard.ConstructorGuard
}

func NewAddNoteCommand(orderID kernel.UUID, noteType order.NoteType, content, createdBy string) (AddNoteCommand, error) {
	var err error
	err = errors.Join(err, validateOrderID(orderID), validateActor(createdBy))
	if strings.TrimSpace(content) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("content"))
	}
	if noteType == "" {
		noteType = order.NoteGeneral
	}
	err = errors.Join(err, noteType.Validate())
	if err != nil {
		return AddNoteCommand{}, err
	}

	return AddNoteCommand{
		orderID:   orderID,
		noteType:  noteType,
		content:   content,
		createdBy: strings.TrimSpace(createdBy),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AddNoteCommand) Validate() error {
	return c.guard.Validate(ErrAddNoteCommandIsNotConstructed)
}

func (c AddNoteCommand) OrderID() kernel.UUID     { return c.orderID }
func (c AddNoteCommand) NoteType() order.NoteType { return c.noteType }
func (c AddNoteCommand) Content() string          { return c.content }
func (c AddNoteCommand) CreatedBy() string        { return c.createdBy }
