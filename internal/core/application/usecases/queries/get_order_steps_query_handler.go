package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/step"
)

type GetOrderStepsQueryHandler struct {
	orders OrderReader
}

func NewGetOrderStepsQueryHandler(orders OrderReader) GetOrderStepsQueryHandler {
	return GetOrderStepsQueryHandler{orders: orders}
}

func (h GetOrderStepsQueryHandler) Handle(ctx context.Context, query GetOrderStepsQuery) (GetOrderStepsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStepsQueryResponse{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderStepsQueryResponse{}, err
	}

	// display copy only
	unsaved := o.EnsureSteps()
	steps := o.Steps()

	views := make([]StepView, 0, len(steps))
	for _, s := range steps {
		views = append(views, StepView{
			State:          s.State(),
			EditableFields: fieldNames(step.EditableFields(s.Kind())),
		})
	}

	progress := step.Summarize(steps)
	return GetOrderStepsQueryResponse{
		OrderID:  o.ID(),
		Steps:    views,
		Progress: progress,
		Percent:  progress.Percent(),
		Unsaved:  unsaved,
	}, nil
}

func fieldNames(f step.Field) []string {
	names := make([]string, 0, 3)
	if f.Has(step.FieldSubmittedAt) {
		names = append(names, "submittedAt")
	}
	if f.Has(step.FieldExpectedCompletionDate) {
		names = append(names, "expectedCompletionDate")
	}
	if f.Has(step.FieldNotes) {
		names = append(names, "notes")
	}
	return names
}
