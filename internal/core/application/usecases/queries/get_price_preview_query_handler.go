package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/confirmation"
	"fulfillment/internal/core/domain/model/pricing"
)

type GetPricePreviewQueryHandler struct {
	orders OrderReader
}

func NewGetPricePreviewQueryHandler(orders OrderReader) GetPricePreviewQueryHandler {
	return GetPricePreviewQueryHandler{orders: orders}
}

func (h GetPricePreviewQueryHandler) Handle(ctx context.Context, query GetPricePreviewQuery) (GetPricePreviewQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPricePreviewQueryResponse{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return GetPricePreviewQueryResponse{}, err
	}

	saved := o.Price()
	var totals pricing.Totals
	switch in := query.Input(); {
	case in != nil:
		totals = o.PricePreview(in.Overrides, in.Discount, in.Adjustments)
	case saved != nil:
		totals = saved.Totals(o.Breakdown())
	default:
		totals = o.PricePreview(nil, pricing.Discount{}, nil)
	}

	return GetPricePreviewQueryResponse{
		Totals:     totals,
		Saved:      saved,
		TotalPrice: o.TotalPrice(),
	}, nil
}

type GetEmbassyPricePreviewQueryHandler struct {
	orders OrderReader
}

func NewGetEmbassyPricePreviewQueryHandler(orders OrderReader) GetEmbassyPricePreviewQueryHandler {
	return GetEmbassyPricePreviewQueryHandler{orders: orders}
}

func (h GetEmbassyPricePreviewQueryHandler) Handle(
	ctx context.Context,
	query GetEmbassyPricePreviewQuery,
) (GetEmbassyPricePreviewQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetEmbassyPricePreviewQueryResponse{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return GetEmbassyPricePreviewQueryResponse{}, err
	}

	b := o.Breakdown()
	return GetEmbassyPricePreviewQueryResponse{
		ConfirmedTotal:   pricing.ConfirmedTotal(b),
		ProposedPrice:    query.Proposed(),
		ProspectiveTotal: confirmation.ProspectiveTotal(b, query.Proposed()),
		HasTBC:           pricing.HasTBC(b),
	}, nil
}
