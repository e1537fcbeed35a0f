package order

import (
	"errors"
	"slices"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// OrderType selects the pricing breakdown shape and a few workflow details.
type OrderType string

const (
	TypeLegalization OrderType = "legalization"
	TypeVisa         OrderType = "visa"
)

func (t OrderType) Validate() error {
	switch t {
	case TypeLegalization, TypeVisa:
		return nil
	}
	return errs.NewValueIsInvalidError("orderType")
}

// DocumentSource tells whether originals are physically sent to the office.
type DocumentSource string

const (
	DocumentsOriginal DocumentSource = "original"
	DocumentsUpload   DocumentSource = "upload"
)

func (d DocumentSource) Validate() error {
	switch d {
	case DocumentsOriginal, DocumentsUpload:
		return nil
	}
	return errs.NewValueIsInvalidError("documentSource")
}

// courierPrefix marks the same-day city courier options, both for pickup
// methods (stockholm_courier, stockholm_sameday) and return services
// (stockholm-city, stockholm-express, stockholm-sameday).
const courierPrefix = "stockholm"

// Snapshot is the immutable set of order attributes the fulfillment core reads.
// It is never written back by the core.
type Snapshot struct {
	ID                        kernel.UUID
	OrderNumber               string
	OrderType                 OrderType
	Services                  []ServiceID
	PickupService             bool
	PickupMethod              string
	PickupDate                *time.Time
	ReturnService             string
	DocumentSource            DocumentSource
	ConfirmReturnAddressLater bool
	Country                   string
	PickupAddress             kernel.Address
	ReturnAddress             kernel.Address
	CustomerEmail             string
	Locale                    string
}

// Validate checks the fields every order must carry.
func (s Snapshot) Validate() error {
	var err error
	if verr := s.ID.Validate(); verr != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("id", verr))
	}
	if strings.TrimSpace(s.OrderNumber) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("orderNumber"))
	}
	if verr := s.OrderType.Validate(); verr != nil {
		err = errors.Join(err, verr)
	}
	if verr := s.DocumentSource.Validate(); verr != nil {
		err = errors.Join(err, verr)
	}
	for _, svc := range s.Services {
		if _, ok := knownServices[svc]; !ok {
			err = errors.Join(err, errs.NewValueIsInvalidError("services"))
			break
		}
	}
	return err
}

// HasService reports whether the customer selected id.
func (s Snapshot) HasService(id ServiceID) bool {
	return slices.Contains(s.Services, id)
}

// SelectedAuthorities returns the authority services of the order in catalog
// order, regardless of the order they were selected in.
func (s Snapshot) SelectedAuthorities() []ServiceID {
	var out []ServiceID
	for _, a := range Authorities {
		if s.HasService(a) {
			out = append(out, a)
		}
	}
	return out
}

// UsesCourierPickup reports whether documents are collected by the city courier.
func (s Snapshot) UsesCourierPickup() bool {
	return s.PickupService && isCourier(s.PickupMethod)
}

// UsesCourierReturn reports whether documents go back by the city courier.
func (s Snapshot) UsesCourierReturn() bool {
	return isCourier(s.ReturnService)
}

// DocumentsUploaded reports whether the customer supplied scans only.
func (s Snapshot) DocumentsUploaded() bool {
	return s.DocumentSource == DocumentsUpload
}

func isCourier(method string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(method)), courierPrefix)
}
