package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/labstack/echo/v4"
)

// BookShipment handles POST /api/v1/orders/{orderId}/shipments/{carrier}/{direction}.
// A repeated booking answers 409 with the existing booking.
func (s *Server) BookShipment(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.writeError(c, err)
	}
	carrier, err := stringParam(c, "carrier")
	if err != nil {
		return s.writeError(c, err)
	}
	direction, err := stringParam(c, "direction")
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewBookShipmentCommand(orderID, shipment.Carrier(carrier), shipment.Direction(direction))
	if err != nil {
		return s.writeError(c, err)
	}

	booking, err := s.h.BookShipment(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, booking)
}
