package http

import (
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/pricing"

	"github.com/labstack/echo/v4"
)

type newOrderRequest struct {
	OrderNumber               string          `json:"orderNumber"`
	OrderType                 string          `json:"orderType"`
	Services                  []string        `json:"services"`
	PickupService             bool            `json:"pickupService"`
	PickupMethod              string          `json:"pickupMethod"`
	PickupDate                *time.Time      `json:"pickupDate"`
	ReturnService             string          `json:"returnService"`
	DocumentSource            string          `json:"documentSource"`
	ConfirmReturnAddressLater bool            `json:"confirmReturnAddressLater"`
	Country                   string          `json:"country"`
	PickupAddress             *kernel.Address `json:"pickupAddress"`
	ReturnAddress             *kernel.Address `json:"returnAddress"`
	CustomerEmail             string          `json:"customerEmail"`
	Locale                    string          `json:"locale"`
	Breakdown                 pricing.Source  `json:"breakdown"`
}

func (r newOrderRequest) snapshot() order.Snapshot {
	services := make([]order.ServiceID, 0, len(r.Services))
	for _, s := range r.Services {
		services = append(services, order.ServiceID(s))
	}

	s := order.Snapshot{
		ID:                        kernel.NewUUID(),
		OrderNumber:               r.OrderNumber,
		OrderType:                 order.OrderType(r.OrderType),
		Services:                  services,
		PickupService:             r.PickupService,
		PickupMethod:              r.PickupMethod,
		PickupDate:                r.PickupDate,
		ReturnService:             r.ReturnService,
		DocumentSource:            order.DocumentSource(r.DocumentSource),
		ConfirmReturnAddressLater: r.ConfirmReturnAddressLater,
		Country:                   r.Country,
		CustomerEmail:             r.CustomerEmail,
		Locale:                    r.Locale,
	}
	if r.PickupAddress != nil {
		s.PickupAddress = *r.PickupAddress
	}
	if r.ReturnAddress != nil {
		s.ReturnAddress = *r.ReturnAddress
	}
	return s
}

type createdResponse struct {
	ID kernel.UUID `json:"id"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req newOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	snapshot := req.snapshot()
	cmd, err := commands.NewCreateOrderCommand(snapshot, req.Breakdown)
	if err != nil {
		return s.writeError(c, err)
	}

	if err = s.h.CreateOrder(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, createdResponse{ID: snapshot.ID})
}

// ListOpenOrders handles GET /api/v1/orders.
func (s *Server) ListOpenOrders(c echo.Context) error {
	orders, err := s.h.OpenOrders(c.Request().Context(), queries.NewGetOpenOrdersQuery())
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}
