package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// ServiceID identifies a service the customer selected.
type ServiceID string

const (
	ServiceNotarization ServiceID = "notarization"
	ServiceTranslation  ServiceID = "translation"
	ServiceChamber      ServiceID = "chamber"
	ServiceUD           ServiceID = "ud"
	ServiceApostille    ServiceID = "apostille"
	ServiceEmbassy      ServiceID = "embassy"

	// Services without a physical authority visit.
	ServiceScannedCopies ServiceID = "scanned_copies"
	ServiceExpress       ServiceID = "express"
	ServiceReturn        ServiceID = "return"
	ServicePickup        ServiceID = "pickup_service"
)

// Authorities lists the authority services in the order their steps are
// generated. The order is part of the contract and must not change.
var Authorities = []ServiceID{
	ServiceNotarization,
	ServiceTranslation,
	ServiceChamber,
	ServiceUD,
	ServiceApostille,
	ServiceEmbassy,
}

var knownServices = map[ServiceID]struct{}{
	ServiceNotarization:  {},
	ServiceTranslation:   {},
	ServiceChamber:       {},
	ServiceUD:            {},
	ServiceApostille:     {},
	ServiceEmbassy:       {},
	ServiceScannedCopies: {},
	ServiceExpress:       {},
	ServiceReturn:        {},
	ServicePickup:        {},
}

// ParseServiceID normalises s and checks it against the catalog.
func ParseServiceID(s string) (ServiceID, error) {
	id := ServiceID(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := knownServices[id]; !ok {
		return "", errs.NewValueIsInvalidErrorWithCause("service",
			fmt.Errorf("unknown service %q", s))
	}
	return id, nil
}

// IsAuthority reports whether the service requires documents to be dropped
// off at and collected from an external authority.
func (s ServiceID) IsAuthority() bool {
	for _, a := range Authorities {
		if a == s {
			return true
		}
	}
	return false
}

func (s ServiceID) String() string {
	return string(s)
}
