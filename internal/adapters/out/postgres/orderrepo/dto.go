// Package orderrepo maps the fulfillment Order aggregate to the orders table.
//
// The order attributes are stored as plain columns so they can be filtered on.
// Steps, the pricing breakdown, the admin price record, confirmations and
// bookings are jsonb documents, always written as a whole.
package orderrepo

import (
	"cmp"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/confirmation"
	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/pricing"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/model/step"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// OrderDTO is the database row of an order.
type OrderDTO struct {
	ID                        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OrderNumber               string         `gorm:"type:varchar(32);uniqueIndex;not null"`
	OrderType                 string         `gorm:"type:varchar(16);index;not null"`
	Services                  pq.StringArray `gorm:"type:text[]"`
	PickupService             bool
	PickupMethod              string
	PickupDate                *time.Time
	ReturnService             string
	DocumentSource            string `gorm:"type:varchar(16)"`
	ConfirmReturnAddressLater bool
	Country                   string         `gorm:"type:varchar(8)"`
	PickupAddress             kernel.Address `gorm:"type:jsonb;serializer:json"`
	ReturnAddress             kernel.Address `gorm:"type:jsonb;serializer:json"`
	CustomerEmail             string
	Locale                    string `gorm:"type:varchar(8)"`

	Steps         []step.State           `gorm:"type:jsonb;serializer:json"`
	Breakdown     pricing.Source         `gorm:"type:jsonb;serializer:json"`
	AdminPrice    *pricing.Record        `gorm:"type:jsonb;serializer:json"`
	TotalPrice    decimal.Decimal        `gorm:"type:numeric(12,2);not null"`
	Confirmations []confirmation.Request `gorm:"type:jsonb;serializer:json"`
	Bookings      []BookingDTO           `gorm:"type:jsonb;serializer:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

// BookingDTO is one entry of the bookings document.
type BookingDTO struct {
	Key shipment.Key `json:"key"`
	shipment.Booking
}

func fromDomain(o *fulfillment.Order) OrderDTO {
	s := o.Snapshot()

	services := make(pq.StringArray, 0, len(s.Services))
	for _, svc := range s.Services {
		services = append(services, string(svc))
	}

	steps := make([]step.State, 0)
	for _, st := range o.Steps() {
		steps = append(steps, st.State())
	}

	confirmations := make([]confirmation.Request, 0, len(o.Confirmations()))
	for _, r := range o.Confirmations() {
		confirmations = append(confirmations, r)
	}
	slices.SortFunc(confirmations, func(a, b confirmation.Request) int {
		return cmp.Compare(a.Type, b.Type)
	})

	bookings := make([]BookingDTO, 0, len(o.Bookings()))
	for k, b := range o.Bookings() {
		bookings = append(bookings, BookingDTO{Key: k, Booking: b})
	}
	slices.SortFunc(bookings, func(a, b BookingDTO) int {
		return cmp.Compare(a.Key.String(), b.Key.String())
	})

	return OrderDTO{
		ID:                        s.ID.Bytes(),
		OrderNumber:               s.OrderNumber,
		OrderType:                 string(s.OrderType),
		Services:                  services,
		PickupService:             s.PickupService,
		PickupMethod:              s.PickupMethod,
		PickupDate:                s.PickupDate,
		ReturnService:             s.ReturnService,
		DocumentSource:            string(s.DocumentSource),
		ConfirmReturnAddressLater: s.ConfirmReturnAddressLater,
		Country:                   s.Country,
		PickupAddress:             s.PickupAddress,
		ReturnAddress:             s.ReturnAddress,
		CustomerEmail:             s.CustomerEmail,
		Locale:                    s.Locale,
		Steps:                     steps,
		Breakdown:                 pricing.SourceOf(o.Breakdown()),
		AdminPrice:                o.Price(),
		TotalPrice:                o.TotalPrice(),
		Confirmations:             confirmations,
		Bookings:                  bookings,
	}
}

func toDomain(dto OrderDTO) (*fulfillment.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	services := make([]order.ServiceID, 0, len(dto.Services))
	for _, svc := range dto.Services {
		services = append(services, order.ServiceID(svc))
	}

	s := order.Snapshot{
		ID:                        id,
		OrderNumber:               dto.OrderNumber,
		OrderType:                 order.OrderType(dto.OrderType),
		Services:                  services,
		PickupService:             dto.PickupService,
		PickupMethod:              dto.PickupMethod,
		PickupDate:                dto.PickupDate,
		ReturnService:             dto.ReturnService,
		DocumentSource:            order.DocumentSource(dto.DocumentSource),
		ConfirmReturnAddressLater: dto.ConfirmReturnAddressLater,
		Country:                   dto.Country,
		PickupAddress:             dto.PickupAddress,
		ReturnAddress:             dto.ReturnAddress,
		CustomerEmail:             dto.CustomerEmail,
		Locale:                    dto.Locale,
	}

	steps, err := step.RestoreAll(dto.Steps)
	if err != nil {
		return nil, err
	}

	b, err := pricing.BreakdownFor(s.OrderType, dto.Breakdown)
	if err != nil {
		return nil, err
	}

	confirmations := make(confirmation.Set, len(dto.Confirmations))
	for _, r := range dto.Confirmations {
		confirmations[r.Type] = r
	}

	bookings := make(shipment.Bookings, len(dto.Bookings))
	for _, b := range dto.Bookings {
		bookings[b.Key] = b.Booking
	}

	return fulfillment.RestoreOrder(s, steps, b, dto.AdminPrice, dto.TotalPrice, confirmations, bookings), nil
}
