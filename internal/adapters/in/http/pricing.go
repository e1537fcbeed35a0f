package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/pricing"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"github.com/shopspring/decimal"
)

type priceInputRequest struct {
	LineOverrides []pricing.LineOverride `json:"lineOverrides"`
	Discount      pricing.Discount       `json:"discount"`
	Adjustments   []pricing.Adjustment   `json:"adjustments"`
}

type savePriceRequest struct {
	priceInputRequest
	Actor string `json:"actor"`
}

type actorRequest struct {
	Actor string `json:"actor"`
}

// GetPrice handles GET /api/v1/orders/{orderId}/price.
func (s *Server) GetPrice(c echo.Context) error {
	return s.pricePreview(c, nil)
}

// PreviewPrice handles POST /api/v1/orders/{orderId}/price/preview.
func (s *Server) PreviewPrice(c echo.Context) error {
	var req priceInputRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	return s.pricePreview(c, &queries.PriceInput{
		Overrides:   req.LineOverrides,
		Discount:    req.Discount,
		Adjustments: req.Adjustments,
	})
}

func (s *Server) pricePreview(c echo.Context, input *queries.PriceInput) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.writeError(c, err)
	}

	query, err := queries.NewGetPricePreviewQuery(orderID, input)
	if err != nil {
		return s.writeError(c, err)
	}

	resp, err := s.h.PricePreview(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// SavePrice handles PUT /api/v1/orders/{orderId}/price.
func (s *Server) SavePrice(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.writeError(c, err)
	}

	var req savePriceRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewSavePriceCommand(orderID, req.LineOverrides, req.Discount, req.Adjustments, req.Actor)
	if err != nil {
		return s.writeError(c, err)
	}

	record, err := s.h.SavePrice(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, record)
}

// ResetPrice handles POST /api/v1/orders/{orderId}/price/reset.
func (s *Server) ResetPrice(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.writeError(c, err)
	}

	var req actorRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewResetPriceCommand(orderID, req.Actor)
	if err != nil {
		return s.writeError(c, err)
	}

	record, err := s.h.ResetPrice(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, record)
}

// PreviewEmbassyPrice handles GET /api/v1/orders/{orderId}/embassy-price-preview.
func (s *Server) PreviewEmbassyPrice(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.writeError(c, err)
	}

	var raw string
	if err = runtime.BindQueryParameter("form", true, true, "proposedPrice", c.QueryParams(), &raw); err != nil {
		return s.writeError(c, errs.NewValueIsRequiredErrorWithCause("proposedPrice", err))
	}
	proposed, err := decimal.NewFromString(raw)
	if err != nil {
		return s.writeError(c, errs.NewValueIsInvalidErrorWithCause("proposedPrice", err))
	}

	query, err := queries.NewGetEmbassyPricePreviewQuery(orderID, proposed)
	if err != nil {
		return s.writeError(c, err)
	}

	resp, err := s.h.EmbassyPricePreview(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}
