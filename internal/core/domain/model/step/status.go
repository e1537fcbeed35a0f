package step

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status is the lifecycle state of a single processing step.
//
// State transitions:
//
//	Pending ──> InProgress ──> Completed
//	   │            │
//	   └────────────┴──> Skipped
//
// Pending may also jump straight to Completed when the admin records work that
// was done in one go. Completed and Skipped are final; only a regenerate of the
// whole list resets them.
type Status int

const (
	// Unknown catches uninitialised values.
	Unknown Status = iota
	Pending
	InProgress
	Completed
	Skipped
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		InProgress: "in_progress",
		Completed:  "completed",
		Skipped:    "skipped",
	}
}

// ParseStatus converts the persisted representation back into a Status.
func ParseStatus(s string) (Status, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == want {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid step status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Skipped {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid step status", s))
	}
	return nil
}

// String returns the persisted name, "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsFinal reports whether no transition leaves the status.
func (s Status) IsFinal() bool {
	return s == Completed || s == Skipped
}

// CanTransitionTo reports whether the state machine allows s -> next.
//
// Pending may go straight to Completed: admins tick off steps that happened
// outside the system without starting them first. Staying in Pending or
// InProgress is allowed so that a metadata edit can be submitted together
// with the unchanged status. InProgress never falls back to Pending.
func (s Status) CanTransitionTo(next Status) bool {
	if next.Validate() != nil {
		return false
	}
	switch s {
	case Pending:
		return true
	case InProgress:
		return next != Pending
	default:
		return false
	}
}

// MarshalText lets Status travel as its string form in JSON.
func (s Status) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	parsed, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
