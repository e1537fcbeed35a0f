package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/confirmation"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type sendConfirmationRequest struct {
	Address       *kernel.Address  `json:"address"`
	ProposedPrice *decimal.Decimal `json:"proposedPrice"`
}

type confirmationAnswerRequest struct {
	Token   string          `json:"token"`
	Accept  bool            `json:"accept"`
	Address *kernel.Address `json:"address"`
}

type confirmationStatusResponse struct {
	Type                     confirmation.Type   `json:"type"`
	Status                   confirmation.Status `json:"status"`
	AddressUpdatedByCustomer bool                `json:"addressUpdatedByCustomer"`
}

func confirmationTypeParam(c echo.Context) (confirmation.Type, error) {
	v, err := stringParam(c, "type")
	if err != nil {
		return "", err
	}
	t := confirmation.Type(v)
	return t, t.Validate()
}

// SendConfirmation handles POST /api/v1/orders/{orderId}/confirmations/{type}.
func (s *Server) SendConfirmation(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.writeError(c, err)
	}
	typ, err := confirmationTypeParam(c)
	if err != nil {
		return s.writeError(c, err)
	}

	var req sendConfirmationRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewSendConfirmationCommand(orderID, typ, confirmation.Payload{
		Address:       req.Address,
		ProposedPrice: req.ProposedPrice,
	})
	if err != nil {
		return s.writeError(c, err)
	}

	sent, err := s.h.SendConfirmation(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, sent)
}

// RespondToConfirmation handles POST /api/v1/confirmations/{orderId}/{type},
// the customer side of a confirmation link.
func (s *Server) RespondToConfirmation(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.writeError(c, err)
	}
	typ, err := confirmationTypeParam(c)
	if err != nil {
		return s.writeError(c, err)
	}

	var req confirmationAnswerRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewRespondToConfirmationCommand(orderID, typ, req.Token, req.Accept, req.Address)
	if err != nil {
		return s.writeError(c, err)
	}

	answered, err := s.h.RespondToConfirm(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, confirmationStatusResponse{
		Type:                     answered.Type,
		Status:                   answered.Status,
		AddressUpdatedByCustomer: answered.AddressUpdatedByCustomer,
	})
}
