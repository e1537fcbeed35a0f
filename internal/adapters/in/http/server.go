package http

import (
	"context"
	"log/slog"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/confirmation"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/pricing"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/labstack/echo/v4"
)

// Handlers are the use cases the server exposes. The composition root fills
// them with the Handle methods of the command and query handlers.
type Handlers struct {
	CreateOrder        func(context.Context, commands.CreateOrderCommand) error
	RegenerateSteps    func(context.Context, commands.RegenerateStepsCommand) error
	TransitionStep     func(context.Context, commands.TransitionStepCommand) ([]string, error)
	UpdateStepMetadata func(context.Context, commands.UpdateStepMetadataCommand) error
	SendConfirmation   func(context.Context, commands.SendConfirmationCommand) (confirmation.Request, error)
	RespondToConfirm   func(context.Context, commands.RespondToConfirmationCommand) (confirmation.Request, error)
	SavePrice          func(context.Context, commands.SavePriceCommand) (pricing.Record, error)
	ResetPrice         func(context.Context, commands.ResetPriceCommand) (pricing.Record, error)
	BookShipment       func(context.Context, commands.BookShipmentCommand) (shipment.Booking, error)
	AddNote            func(context.Context, commands.AddNoteCommand) (order.Note, error)

	OpenOrders          func(context.Context, queries.GetOpenOrdersQuery) ([]queries.GetOpenOrdersQueryResponse, error)
	OrderSteps          func(context.Context, queries.GetOrderStepsQuery) (queries.GetOrderStepsQueryResponse, error)
	PricePreview        func(context.Context, queries.GetPricePreviewQuery) (queries.GetPricePreviewQueryResponse, error)
	EmbassyPricePreview func(context.Context, queries.GetEmbassyPricePreviewQuery) (queries.GetEmbassyPricePreviewQueryResponse, error)
	OrderNotes          func(context.Context, queries.GetOrderNotesQuery) ([]queries.GetOrderNotesQueryResponse, error)
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

func NewServer(h Handlers, logger *slog.Logger) *Server {
	return &Server{h: h, logger: logger.With("component", "http")}
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	v1 := e.Group("/api/v1")

	v1.GET("/orders", s.ListOpenOrders)
	v1.POST("/orders", s.CreateOrder)

	v1.GET("/orders/:orderId/steps", s.GetOrderSteps)
	v1.POST("/orders/:orderId/steps/regenerate", s.RegenerateSteps)
	v1.PATCH("/orders/:orderId/steps/:stepId", s.UpdateStepMetadata)
	v1.PUT("/orders/:orderId/steps/:stepId/status", s.TransitionStep)

	v1.POST("/orders/:orderId/confirmations/:type", s.SendConfirmation)
	v1.POST("/confirmations/:orderId/:type", s.RespondToConfirmation)

	v1.GET("/orders/:orderId/price", s.GetPrice)
	v1.PUT("/orders/:orderId/price", s.SavePrice)
	v1.POST("/orders/:orderId/price/preview", s.PreviewPrice)
	v1.POST("/orders/:orderId/price/reset", s.ResetPrice)
	v1.GET("/orders/:orderId/embassy-price-preview", s.PreviewEmbassyPrice)

	v1.POST("/orders/:orderId/shipments/:carrier/:direction", s.BookShipment)

	v1.GET("/orders/:orderId/notes", s.ListNotes)
	v1.POST("/orders/:orderId/notes", s.AddNote)
}
