package order

import (
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// NoteType categorises internal notes.
type NoteType string

const (
	NoteGeneral    NoteType = "general"
	NoteProcessing NoteType = "processing"
	NoteCustomer   NoteType = "customer"
	NoteIssue      NoteType = "issue"
)

func (t NoteType) Validate() error {
	switch t {
	case NoteGeneral, NoteProcessing, NoteCustomer, NoteIssue:
		return nil
	}
	return errs.NewValueIsInvalidError("noteType")
}

// Note is an internal admin note. Notes are only ever appended.
type Note struct {
	ID        kernel.UUID
	OrderID   kernel.UUID
	Type      NoteType
	Content   string
	CreatedBy string
	CreatedAt time.Time
}

// NewNote validates and stamps a note.
func NewNote(orderID kernel.UUID, noteType NoteType, content, createdBy string, now time.Time) (Note, error) {
	if err := orderID.Validate(); err != nil {
		return Note{}, errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}
	if noteType == "" {
		noteType = NoteGeneral
	}
	if err := noteType.Validate(); err != nil {
		return Note{}, err
	}
	if strings.TrimSpace(content) == "" {
		return Note{}, errs.NewValueIsRequiredError("content")
	}
	if strings.TrimSpace(createdBy) == "" {
		return Note{}, errs.NewValueIsRequiredError("createdBy")
	}
	return Note{
		ID:        kernel.NewUUID(),
		OrderID:   orderID,
		Type:      noteType,
		Content:   strings.TrimSpace(content),
		CreatedBy: createdBy,
		CreatedAt: now.UTC(),
	}, nil
}
