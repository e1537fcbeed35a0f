package step

import (
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/order"
)

type authorityText struct {
	label   string
	dropOff string
	pickUp  string
}

var authorityTexts = map[order.ServiceID]authorityText{
	order.ServiceNotarization: {"Notarization", "Drop off documents for notarization", "Collect notarized documents"},
	order.ServiceTranslation:  {"Translation", "Drop off documents for translation", "Collect translated documents"},
	order.ServiceChamber:      {"Chamber of Commerce", "Drop off documents at the Chamber of Commerce", "Collect legalized documents"},
	order.ServiceUD:           {"Ministry for Foreign Affairs", "Drop off documents at the Ministry for Foreign Affairs", "Collect legalized documents"},
	order.ServiceApostille:    {"Apostille", "Drop off documents for apostille", "Collect documents with apostille"},
	order.ServiceEmbassy:      {"Embassy", "Drop off documents at the embassy", "Collect consular legalized documents"},
}

// describe returns the display name and description for a generated step.
// The texts depend only on the kind and the snapshot, never on the clock.
func describe(k Kind, s order.Snapshot) (name, description string) {
	switch k := k.(type) {
	case DocumentReceipt:
		if s.PickupService {
			return "Documents received", "Original documents have been collected and registered"
		}
		return "Documents received", "Original documents have been received and registered"
	case PickupBooking:
		return "Pickup booked", "Collection of the documents from the customer has been booked"
	case CourierPickup:
		return "Stockholm courier - pickup", "City courier collects the documents from the customer"
	case AuthorityDelivery:
		t := authorityTexts[k.Authority]
		desc := t.dropOff
		if k.Authority == order.ServiceEmbassy && strings.TrimSpace(s.Country) != "" {
			desc = fmt.Sprintf("%s of %s", desc, strings.ToUpper(strings.TrimSpace(s.Country)))
		}
		return t.label + " - drop off", desc
	case AuthorityPickup:
		t := authorityTexts[k.Authority]
		return t.label + " - pick up", t.pickUp
	case ReturnShipping:
		return "Return shipped", "Documents returned to the customer"
	case CourierDelivery:
		return "Stockholm courier - delivery", "City courier delivers the documents to the customer"
	}
	return k.ID(), ""
}
