package step

import (
	"strings"

	"fulfillment/internal/core/domain/model/order"
)

// Kind says what a step is about. It is a closed set of variants; callers
// switch on the concrete type instead of inspecting step ids.
type Kind interface {
	// ID is the stable key the step is stored under.
	ID() string
	isKind()
}

type (
	// DocumentReceipt: original documents arrived at the office.
	DocumentReceipt struct{}
	// PickupBooking: collection from the customer has been booked.
	PickupBooking struct{}
	// CourierPickup: the city courier collects the documents.
	CourierPickup struct{}
	// AuthorityDelivery: documents are handed in at an authority.
	AuthorityDelivery struct{ Authority order.ServiceID }
	// AuthorityPickup: documents are collected back from an authority.
	AuthorityPickup struct{ Authority order.ServiceID }
	// ReturnShipping: documents are sent back to the customer.
	ReturnShipping struct{}
	// CourierDelivery: the city courier delivers the documents back.
	CourierDelivery struct{}
	// Legacy is a pre-split single step covering a whole authority visit.
	Legacy struct {
		Authority order.ServiceID
		Key       string
	}
	// Other is any id outside the catalog, kept as-is.
	Other struct{ Key string }
)

const (
	idDocumentReceipt = "document_receipt"
	idPickupBooking   = "pickup_booking"
	idCourierPickup   = "stockholm_courier_pickup"
	idReturnShipping  = "return_shipping"
	idCourierDelivery = "stockholm_courier_delivery"

	suffixDelivery   = "_delivery"
	suffixPickup     = "_pickup"
	suffixProcessing = "_processing"
)

func (DocumentReceipt) ID() string     { return idDocumentReceipt }
func (PickupBooking) ID() string       { return idPickupBooking }
func (CourierPickup) ID() string       { return idCourierPickup }
func (k AuthorityDelivery) ID() string { return string(k.Authority) + suffixDelivery }
func (k AuthorityPickup) ID() string   { return string(k.Authority) + suffixPickup }
func (ReturnShipping) ID() string      { return idReturnShipping }
func (CourierDelivery) ID() string     { return idCourierDelivery }
func (k Legacy) ID() string            { return k.Key }
func (k Other) ID() string             { return k.Key }

func (DocumentReceipt) isKind()   {}
func (PickupBooking) isKind()     {}
func (CourierPickup) isKind()     {}
func (AuthorityDelivery) isKind() {}
func (AuthorityPickup) isKind()   {}
func (ReturnShipping) isKind()    {}
func (CourierDelivery) isKind()   {}
func (Legacy) isKind()            {}
func (Other) isKind()             {}

// KindFromID parses a stored step id. It is meant to run once, when steps are
// loaded; unknown ids become Other.
func KindFromID(id string) Kind {
	switch id {
	case idDocumentReceipt:
		return DocumentReceipt{}
	case idPickupBooking:
		return PickupBooking{}
	case idCourierPickup:
		return CourierPickup{}
	case idReturnShipping:
		return ReturnShipping{}
	case idCourierDelivery:
		return CourierDelivery{}
	}

	if a, ok := authorityWithSuffix(id, suffixDelivery); ok {
		return AuthorityDelivery{Authority: a}
	}
	if a, ok := authorityWithSuffix(id, suffixPickup); ok {
		return AuthorityPickup{Authority: a}
	}
	if a, ok := authorityWithSuffix(id, suffixProcessing); ok {
		return Legacy{Authority: a, Key: id}
	}
	// Older records used the bare service id for a single authority step.
	if a := order.ServiceID(id); a.IsAuthority() {
		return Legacy{Authority: a, Key: id}
	}
	return Other{Key: id}
}

func authorityWithSuffix(id, suffix string) (order.ServiceID, bool) {
	prefix, found := strings.CutSuffix(id, suffix)
	if !found {
		return "", false
	}
	a := order.ServiceID(prefix)
	return a, a.IsAuthority()
}

// Field is a bit set of step metadata fields.
type Field uint8

const (
	FieldSubmittedAt Field = 1 << iota
	FieldExpectedCompletionDate
	FieldNotes
)

// Has reports whether every bit of f is set in fs.
func (fs Field) Has(f Field) bool {
	return fs&f == f
}

// EditableFields returns the metadata an admin may edit on a step of kind k.
// Drop-offs only record when the documents were handed in, authority pickups
// only when they are expected back; everything else accepts both dates.
// Notes are always editable.
func EditableFields(k Kind) Field {
	switch k.(type) {
	case AuthorityDelivery:
		return FieldSubmittedAt | FieldNotes
	case AuthorityPickup:
		return FieldExpectedCompletionDate | FieldNotes
	default:
		return FieldSubmittedAt | FieldExpectedCompletionDate | FieldNotes
	}
}
