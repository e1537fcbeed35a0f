package carrier

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
)

const dhlTrackingURL = "https://www.dhl.com/se-en/home/tracking/tracking-express.html?submit=1&tracking-id="

type DHLConfig struct {
	BaseURL       string
	APIKey        string
	APISecret     string
	AccountNumber string
}

// DHLClient talks to the MyDHL Express API. Pickups are booked through
// /pickups, returns as shipments with a label through /shipments.
type DHLClient struct {
	cfg     DHLConfig
	shipper Shipper
	http    *http.Client
	now     func() time.Time
}

func NewDHLClient(cfg DHLConfig, shipper Shipper, hc *http.Client) *DHLClient {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &DHLClient{cfg: cfg, shipper: shipper, http: httpClientOrDefault(hc), now: time.Now}
}

func (c *DHLClient) Book(ctx context.Context, req ports.BookingRequest) (shipment.Result, error) {
	switch req.Key.Direction {
	case shipment.Pickup:
		return c.bookPickup(ctx, req)
	case shipment.Return:
		return c.createShipment(ctx, req)
	default:
		return shipment.Result{}, fmt.Errorf("dhl: unsupported direction %q", req.Key.Direction)
	}
}

type dhlAddress struct {
	PostalCode   string `json:"postalCode"`
	CityName     string `json:"cityName"`
	CountryCode  string `json:"countryCode"`
	AddressLine1 string `json:"addressLine1"`
}

type dhlContact struct {
	CompanyName string `json:"companyName,omitempty"`
	FullName    string `json:"fullName"`
	Phone       string `json:"phone"`
	Email       string `json:"email,omitempty"`
}

type dhlParty struct {
	PostalAddress      dhlAddress `json:"postalAddress"`
	ContactInformation dhlContact `json:"contactInformation"`
}

type dhlPackage struct {
	Weight float64 `json:"weight"`
}

type dhlAccount struct {
	TypeCode string `json:"typeCode"`
	Number   string `json:"number"`
}

type dhlPickupRequest struct {
	PlannedPickupDateAndTime string       `json:"plannedPickupDateAndTime"`
	CloseTime                string       `json:"closeTime"`
	Location                 string       `json:"location"`
	Accounts                 []dhlAccount `json:"accounts"`
	CustomerDetails          struct {
		ShipperDetails dhlParty `json:"shipperDetails"`
	} `json:"customerDetails"`
	ShipmentDetails     []dhlShipmentDetail `json:"shipmentDetails"`
	SpecialInstructions []dhlInstruction    `json:"specialInstructions,omitempty"`
}

type dhlShipmentDetail struct {
	ProductCode string       `json:"productCode"`
	Packages    []dhlPackage `json:"packages"`
}

type dhlInstruction struct {
	Value string `json:"value"`
}

type dhlPickupResponse struct {
	DispatchConfirmationNumbers []string `json:"dispatchConfirmationNumbers"`
}

type dhlShipmentRequest struct {
	PlannedShippingDateAndTime string `json:"plannedShippingDateAndTime"`
	Pickup                     struct {
		IsRequested bool `json:"isRequested"`
	} `json:"pickup"`
	ProductCode     string       `json:"productCode"`
	Accounts        []dhlAccount `json:"accounts"`
	CustomerDetails struct {
		ShipperDetails  dhlParty `json:"shipperDetails"`
		ReceiverDetails dhlParty `json:"receiverDetails"`
	} `json:"customerDetails"`
	Content struct {
		Packages            []dhlPackage `json:"packages"`
		IsCustomsDeclarable bool         `json:"isCustomsDeclarable"`
		Description         string       `json:"description"`
	} `json:"content"`
	OutputImageProperties struct {
		EncodingFormat string `json:"encodingFormat"`
	} `json:"outputImageProperties"`
}

type dhlShipmentResponse struct {
	ShipmentTrackingNumber string `json:"shipmentTrackingNumber"`
	TrackingURL            string `json:"trackingUrl"`
	Documents              []struct {
		TypeCode string `json:"typeCode"`
		Content  string `json:"content"`
	} `json:"documents"`
}

func (c *DHLClient) bookPickup(ctx context.Context, req ports.BookingRequest) (shipment.Result, error) {
	pickupAt := c.now()
	if req.PickupDate != nil {
		pickupAt = *req.PickupDate
	}

	var body dhlPickupRequest
	body.PlannedPickupDateAndTime = time.Date(pickupAt.Year(), pickupAt.Month(), pickupAt.Day(), 10, 0, 0, 0, time.UTC).
		Format("2006-01-02T15:04:05 GMT+00:00")
	body.CloseTime = "18:00"
	body.Location = "reception"
	body.Accounts = []dhlAccount{{TypeCode: "shipper", Number: c.cfg.AccountNumber}}
	body.CustomerDetails.ShipperDetails = dhlPartyOf(req.Address, "")
	body.ShipmentDetails = []dhlShipmentDetail{{ProductCode: "N", Packages: []dhlPackage{{Weight: 0.5}}}}
	body.SpecialInstructions = []dhlInstruction{{Value: "Order " + req.OrderNumber}}

	var out dhlPickupResponse
	if err := postJSON(ctx, c.http, c.cfg.BaseURL+"/pickups", c.header(), body, &out); err != nil {
		return shipment.Result{}, fmt.Errorf("dhl pickup: %w", err)
	}
	if len(out.DispatchConfirmationNumbers) == 0 || out.DispatchConfirmationNumbers[0] == "" {
		return shipment.Result{}, errors.New("dhl pickup: response has no dispatch confirmation number")
	}

	number := out.DispatchConfirmationNumbers[0]
	return shipment.Result{TrackingNumber: number, TrackingURL: dhlTrackingURL + number}, nil
}

func (c *DHLClient) createShipment(ctx context.Context, req ports.BookingRequest) (shipment.Result, error) {
	var body dhlShipmentRequest
	body.PlannedShippingDateAndTime = c.now().UTC().Format("2006-01-02T15:04:05 GMT+00:00")
	body.ProductCode = "N"
	if countryOrSE(req.Address.Country) != "SE" {
		body.ProductCode = "P"
	}
	body.Accounts = []dhlAccount{{TypeCode: "shipper", Number: c.cfg.AccountNumber}}
	body.CustomerDetails.ShipperDetails = dhlPartyOf(c.shipper.Address, c.shipper.Name)
	body.CustomerDetails.ShipperDetails.ContactInformation.Email = c.shipper.Email
	body.CustomerDetails.ReceiverDetails = dhlPartyOf(req.Address, "")
	body.Content.Packages = []dhlPackage{{Weight: 0.5}}
	body.Content.Description = "Legalized documents - Order " + req.OrderNumber
	body.OutputImageProperties.EncodingFormat = "pdf"

	var out dhlShipmentResponse
	if err := postJSON(ctx, c.http, c.cfg.BaseURL+"/shipments", c.header(), body, &out); err != nil {
		return shipment.Result{}, fmt.Errorf("dhl shipment: %w", err)
	}
	if out.ShipmentTrackingNumber == "" {
		return shipment.Result{}, errors.New("dhl shipment: response has no tracking number")
	}

	res := shipment.Result{TrackingNumber: out.ShipmentTrackingNumber, TrackingURL: out.TrackingURL}
	if res.TrackingURL == "" {
		res.TrackingURL = dhlTrackingURL + out.ShipmentTrackingNumber
	}
	for _, d := range out.Documents {
		if d.TypeCode != "label" || d.Content == "" {
			continue
		}
		label, err := base64.StdEncoding.DecodeString(d.Content)
		if err != nil {
			return shipment.Result{}, fmt.Errorf("dhl shipment: decode label: %w", err)
		}
		res.Label = label
		break
	}
	return res, nil
}

func (c *DHLClient) header() http.Header {
	h := http.Header{}
	h.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(c.cfg.APIKey+":"+c.cfg.APISecret)))
	return h
}

func dhlPartyOf(a kernel.Address, company string) dhlParty {
	if company == "" {
		company = a.CompanyName
	}
	name := a.ContactName
	if name == "" {
		name = company
	}
	return dhlParty{
		PostalAddress: dhlAddress{
			PostalCode:   a.PostalCode,
			CityName:     a.City,
			CountryCode:  countryOrSE(a.Country),
			AddressLine1: a.Street,
		},
		ContactInformation: dhlContact{CompanyName: company, FullName: name, Phone: a.Phone},
	}
}
