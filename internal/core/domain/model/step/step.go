package step

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/pkg/errs"
)

// Step is one physical processing step of an order. Steps are values: every
// operation in this package returns modified copies.
type Step struct {
	kind                   Kind
	name                   string
	description            string
	status                 Status
	completedAt            *time.Time
	completedBy            string
	submittedAt            *time.Time
	expectedCompletionDate *time.Time
	notes                  string
}

// State is the flat, persistable form of a Step.
type State struct {
	ID                     string     `json:"id"`
	Name                   string     `json:"name"`
	Description            string     `json:"description"`
	Status                 Status     `json:"status"`
	CompletedAt            *time.Time `json:"completedAt,omitempty"`
	CompletedBy            string     `json:"completedBy,omitempty"`
	SubmittedAt            *time.Time `json:"submittedAt,omitempty"`
	ExpectedCompletionDate *time.Time `json:"expectedCompletionDate,omitempty"`
	Notes                  string     `json:"notes,omitempty"`
}

func newStep(k Kind, name, description string) Step {
	return Step{
		kind:        k,
		name:        name,
		description: description,
		status:      Pending,
	}
}

// Restore rebuilds a step from storage. The id is parsed into a Kind here and
// nowhere else.
func Restore(st State) (Step, error) {
	var err error
	if strings.TrimSpace(st.ID) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("step.id"))
	}
	if verr := st.Status.Validate(); verr != nil {
		err = errors.Join(err, verr)
	}
	if err != nil {
		return Step{}, err
	}

	return Step{
		kind:                   KindFromID(st.ID),
		name:                   st.Name,
		description:            st.Description,
		status:                 st.Status,
		completedAt:            cloneTime(st.CompletedAt),
		completedBy:            st.CompletedBy,
		submittedAt:            cloneTime(st.SubmittedAt),
		expectedCompletionDate: cloneTime(st.ExpectedCompletionDate),
		notes:                  st.Notes,
	}, nil
}

// RestoreAll restores a stored list, keeping its order.
func RestoreAll(states []State) ([]Step, error) {
	out := make([]Step, 0, len(states))
	seen := make(map[string]struct{}, len(states))
	for _, st := range states {
		if _, dup := seen[st.ID]; dup {
			return nil, errs.NewValueIsInvalidError("step.id " + st.ID)
		}
		seen[st.ID] = struct{}{}

		s, err := Restore(st)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// States flattens steps for storage.
func States(steps []Step) []State {
	out := make([]State, 0, len(steps))
	for _, s := range steps {
		out = append(out, s.State())
	}
	return out
}

func (s Step) State() State {
	return State{
		ID:                     s.ID(),
		Name:                   s.name,
		Description:            s.description,
		Status:                 s.status,
		CompletedAt:            cloneTime(s.completedAt),
		CompletedBy:            s.completedBy,
		SubmittedAt:            cloneTime(s.submittedAt),
		ExpectedCompletionDate: cloneTime(s.expectedCompletionDate),
		Notes:                  s.notes,
	}
}

func (s Step) ID() string                         { return s.kind.ID() }
func (s Step) Kind() Kind                         { return s.kind }
func (s Step) Name() string                       { return s.name }
func (s Step) Description() string                { return s.description }
func (s Step) Status() Status                     { return s.status }
func (s Step) CompletedAt() *time.Time            { return cloneTime(s.completedAt) }
func (s Step) CompletedBy() string                { return s.completedBy }
func (s Step) SubmittedAt() *time.Time            { return cloneTime(s.submittedAt) }
func (s Step) ExpectedCompletionDate() *time.Time { return cloneTime(s.expectedCompletionDate) }
func (s Step) Notes() string                      { return s.notes }

// IDs returns the step ids in list order.
func IDs(steps []Step) []string {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		out = append(out, s.ID())
	}
	return out
}

// Find returns the step with the given id.
func Find(steps []Step, id string) (Step, bool) {
	if i := indexOf(steps, id); i >= 0 {
		return steps[i], true
	}
	return Step{}, false
}

func indexOf(steps []Step, id string) int {
	for i, s := range steps {
		if s.ID() == id {
			return i
		}
	}
	return -1
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
