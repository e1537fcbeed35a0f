package step

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/pkg/errs"
)

// ErrCompletionBlocked is returned when a CompletionGuard refuses completion
// and the change does not carry an override.
var ErrCompletionBlocked = errors.New("step completion is blocked")

// CompletionGuard is consulted whenever a step moves to Completed.
//
// A nil error with a non-empty warning lets completion proceed and reports the
// warning to the caller. A non-nil error blocks completion unless the change
// is an explicit admin override, in which case the error is downgraded to a
// warning.
type CompletionGuard interface {
	CheckCompletion(k Kind) (warning string, err error)
}

// Metadata carries optional edits to a step's dates and notes. Nil fields are
// left untouched.
type Metadata struct {
	SubmittedAt            *time.Time
	ExpectedCompletionDate *time.Time
	Notes                  *string
}

func (m Metadata) fields() Field {
	var f Field
	if m.SubmittedAt != nil {
		f |= FieldSubmittedAt
	}
	if m.ExpectedCompletionDate != nil {
		f |= FieldExpectedCompletionDate
	}
	if m.Notes != nil {
		f |= FieldNotes
	}
	return f
}

// Change describes one admin status change.
type Change struct {
	// Actor is the acting admin; required when completing.
	Actor string
	// At is the time of the change, recorded as completedAt on completion.
	At       time.Time
	Metadata Metadata
	Guard    CompletionGuard
	// Override lets the admin complete a step the guard blocks.
	Override bool
}

// Result is the outcome of a successful transition.
type Result struct {
	Steps    []Step
	Warnings []string
}

// Transition moves the step with the given id to status next.
//
// On any error the returned Result holds the input slice unchanged. A missing
// id yields an ObjectNotFoundError. Otherwise only the addressed step is
// replaced; all other steps and their order are kept.
//
// Moving into Completed records change.At and change.Actor as completedAt and
// completedBy and consults change.Guard.
func Transition(steps []Step, id string, next Status, change Change) (Result, error) {
	unchanged := Result{Steps: steps}

	idx := indexOf(steps, id)
	if idx < 0 {
		return unchanged, errs.NewObjectNotFoundError("stepId", id)
	}
	cur := steps[idx]

	if !cur.status.CanTransitionTo(next) {
		return unchanged, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("step %s cannot move from %s to %s", id, cur.status, next))
	}

	updated, err := cur.withMetadata(change.Metadata)
	if err != nil {
		return unchanged, err
	}

	var warnings []string
	if next == Completed {
		if strings.TrimSpace(change.Actor) == "" {
			return unchanged, errs.NewValueIsRequiredError("completedBy")
		}
		if change.At.IsZero() {
			return unchanged, errs.NewValueIsRequiredError("completedAt")
		}

		if change.Guard != nil {
			warning, gerr := change.Guard.CheckCompletion(cur.kind)
			switch {
			case gerr != nil && !change.Override:
				return unchanged, fmt.Errorf("%w: %s: %w", ErrCompletionBlocked, id, gerr)
			case gerr != nil:
				warnings = append(warnings, "completed with override: "+gerr.Error())
			case warning != "":
				warnings = append(warnings, warning)
			}
		}

		at := change.At.UTC()
		updated.completedAt = &at
		updated.completedBy = strings.TrimSpace(change.Actor)
	}
	updated.status = next

	out := make([]Step, len(steps))
	copy(out, steps)
	out[idx] = updated
	return Result{Steps: out, Warnings: warnings}, nil
}

// ApplyMetadata edits a step's dates or notes without touching its status.
func ApplyMetadata(steps []Step, id string, m Metadata) ([]Step, error) {
	idx := indexOf(steps, id)
	if idx < 0 {
		return steps, errs.NewObjectNotFoundError("stepId", id)
	}

	updated, err := steps[idx].withMetadata(m)
	if err != nil {
		return steps, err
	}

	out := make([]Step, len(steps))
	copy(out, steps)
	out[idx] = updated
	return out, nil
}

func (s Step) withMetadata(m Metadata) (Step, error) {
	allowed := EditableFields(s.kind)
	requested := m.fields()

	if requested.Has(FieldSubmittedAt) && !allowed.Has(FieldSubmittedAt) {
		return s, errs.NewValueIsInvalidErrorWithCause("submittedAt",
			fmt.Errorf("not editable on step %s", s.ID()))
	}
	if requested.Has(FieldExpectedCompletionDate) && !allowed.Has(FieldExpectedCompletionDate) {
		return s, errs.NewValueIsInvalidErrorWithCause("expectedCompletionDate",
			fmt.Errorf("not editable on step %s", s.ID()))
	}

	if m.SubmittedAt != nil {
		s.submittedAt = cloneTime(m.SubmittedAt)
	}
	if m.ExpectedCompletionDate != nil {
		s.expectedCompletionDate = cloneTime(m.ExpectedCompletionDate)
	}
	if m.Notes != nil {
		s.notes = *m.Notes
	}
	return s, nil
}
