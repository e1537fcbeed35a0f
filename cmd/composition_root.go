package cmd

import (
	"log/slog"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/carrier"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	carrier    ports.CarrierBooker
	logger     *slog.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		carrier:    newCarrierRouter(cfg),
		logger:     logger,
	}
}

func newCarrierRouter(cfg Config) *carrier.Router {
	var dhl *carrier.DHLClient
	if cfg.DHL.BaseURL != "" {
		dhl = carrier.NewDHLClient(cfg.DHL, cfg.Shipper, nil)
	}
	var postNord *carrier.PostNordClient
	if cfg.PostNord.BaseURL != "" {
		postNord = carrier.NewPostNordClient(cfg.PostNord, cfg.Shipper, nil)
	}
	return carrier.NewRouter(dhl, postNord)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) noteUoWFactory() commands.NoteUoWFactory {
	return FuncNoteUoWFactory(func() commands.NoteUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) notifyingUoWFactory() commands.NotifyingUoWFactory {
	return FuncNotifyingUoWFactory(func() commands.NotifyingUoW {
		return c.uowFactory.Create()
	})
}

// readRepository serves queries outside any transaction.
func (c *CompositionRoot) readRepository() *orderrepo.GormOrderRepository {
	return orderrepo.NewGormOrderRepository(c.gormDB, noopTracker{})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRegenerateStepsCommandHandler() commands.RegenerateStepsCommandHandler {
	return commands.NewRegenerateStepsCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateTransitionStepCommandHandler() commands.TransitionStepCommandHandler {
	return commands.NewTransitionStepCommandHandler(c.orderUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateUpdateStepMetadataCommandHandler() commands.UpdateStepMetadataCommandHandler {
	return commands.NewUpdateStepMetadataCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSendConfirmationCommandHandler() commands.SendConfirmationCommandHandler {
	return commands.NewSendConfirmationCommandHandler(c.notifyingUoWFactory(), c.cfg.ConfirmationTTL, c.cfg.PublicBaseURL, c.logger)
}

func (c *CompositionRoot) CreateRespondToConfirmationCommandHandler() commands.RespondToConfirmationCommandHandler {
	return commands.NewRespondToConfirmationCommandHandler(c.orderUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateSavePriceCommandHandler() commands.SavePriceCommandHandler {
	return commands.NewSavePriceCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateResetPriceCommandHandler() commands.ResetPriceCommandHandler {
	return commands.NewResetPriceCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateBookShipmentCommandHandler() commands.BookShipmentCommandHandler {
	return commands.NewBookShipmentCommandHandler(c.notifyingUoWFactory(), c.carrier, c.logger)
}

func (c *CompositionRoot) CreateAddNoteCommandHandler() commands.AddNoteCommandHandler {
	return commands.NewAddNoteCommandHandler(c.noteUoWFactory())
}

func (c *CompositionRoot) CreateBackfillStepsCommandHandler() commands.BackfillStepsCommandHandler {
	return commands.NewBackfillStepsCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetOpenOrdersQueryHandler() queries.GetOpenOrdersQueryHandler {
	return queries.NewGetOpenOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStepsQueryHandler() queries.GetOrderStepsQueryHandler {
	return queries.NewGetOrderStepsQueryHandler(c.readRepository())
}

func (c *CompositionRoot) CreateGetPricePreviewQueryHandler() queries.GetPricePreviewQueryHandler {
	return queries.NewGetPricePreviewQueryHandler(c.readRepository())
}

func (c *CompositionRoot) CreateGetEmbassyPricePreviewQueryHandler() queries.GetEmbassyPricePreviewQueryHandler {
	return queries.NewGetEmbassyPricePreviewQueryHandler(c.readRepository())
}

func (c *CompositionRoot) CreateGetOrderNotesQueryHandler() queries.GetOrderNotesQueryHandler {
	return queries.NewGetOrderNotesQueryHandler(c.gormDB)
}

// CreateHTTPHandlers binds every use case the HTTP server exposes.
func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateOrder:        c.CreateCreateOrderCommandHandler().Handle,
		RegenerateSteps:    c.CreateRegenerateStepsCommandHandler().Handle,
		TransitionStep:     c.CreateTransitionStepCommandHandler().Handle,
		UpdateStepMetadata: c.CreateUpdateStepMetadataCommandHandler().Handle,
		SendConfirmation:   c.CreateSendConfirmationCommandHandler().Handle,
		RespondToConfirm:   c.CreateRespondToConfirmationCommandHandler().Handle,
		SavePrice:          c.CreateSavePriceCommandHandler().Handle,
		ResetPrice:         c.CreateResetPriceCommandHandler().Handle,
		BookShipment:       c.CreateBookShipmentCommandHandler().Handle,
		AddNote:            c.CreateAddNoteCommandHandler().Handle,

		OpenOrders:          c.CreateGetOpenOrdersQueryHandler().Handle,
		OrderSteps:          c.CreateGetOrderStepsQueryHandler().Handle,
		PricePreview:        c.CreateGetPricePreviewQueryHandler().Handle,
		EmbassyPricePreview: c.CreateGetEmbassyPricePreviewQueryHandler().Handle,
		OrderNotes:          c.CreateGetOrderNotesQueryHandler().Handle,
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	backfill := jobs.NewStepBackfillJob(c.readRepository(), c.CreateBackfillStepsCommandHandler(), c.cfg.Backfill, c.logger)
	return jobs.NewJobManager(backfill)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncNoteUoWFactory func() commands.NoteUoW

func (f FuncNoteUoWFactory) Create() commands.NoteUoW {
	return f()
}

type FuncNotifyingUoWFactory func() commands.NotifyingUoW

func (f FuncNotifyingUoWFactory) Create() commands.NotifyingUoW {
	return f()
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}
