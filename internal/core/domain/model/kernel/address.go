package kernel

import (
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Address is a postal address snapshot. It is compared field by field after
// whitespace and case normalisation so that a customer re-typing the same
// address is not reported as a change.
type Address struct {
	ContactName string `json:"contactName,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	Street      string `json:"street"`
	PostalCode  string `json:"postalCode"`
	City        string `json:"city"`
	Country     string `json:"country,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

// Validate requires street, postal code and city.
func (a Address) Validate() error {
	switch {
	case strings.TrimSpace(a.Street) == "":
		return errs.NewValueIsRequiredError("address.street")
	case strings.TrimSpace(a.PostalCode) == "":
		return errs.NewValueIsRequiredError("address.postalCode")
	case strings.TrimSpace(a.City) == "":
		return errs.NewValueIsRequiredError("address.city")
	}
	return nil
}

// IsZero reports whether no address line is set.
func (a Address) IsZero() bool {
	return a == Address{}
}

// IsEqual compares the deliverable parts of two addresses.
func (a Address) IsEqual(other Address) bool {
	return normalize(a.Street) == normalize(other.Street) &&
		normalize(strings.ReplaceAll(a.PostalCode, " ", "")) == normalize(strings.ReplaceAll(other.PostalCode, " ", "")) &&
		normalize(a.City) == normalize(other.City) &&
		normalize(a.Country) == normalize(other.Country) &&
		normalize(a.CompanyName) == normalize(other.CompanyName) &&
		normalize(a.ContactName) == normalize(other.ContactName)
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
