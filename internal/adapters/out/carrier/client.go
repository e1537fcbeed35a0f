// Package carrier books shipments with the DHL Express and PostNord REST
// APIs.
package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const (
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 512
)

// Shipper is the office that receives pickups and sends returns.
type Shipper struct {
	Name    string
	Address kernel.Address
	Email   string
}

// Router dispatches a booking to the client of the requested carrier.
type Router struct {
	bookers map[shipment.Carrier]ports.CarrierBooker
}

var _ ports.CarrierBooker = (*Router)(nil)

func NewRouter(dhl *DHLClient, postNord *PostNordClient) *Router {
	r := &Router{bookers: map[shipment.Carrier]ports.CarrierBooker{}}
	if dhl != nil {
		r.bookers[shipment.DHL] = dhl
	}
	if postNord != nil {
		r.bookers[shipment.PostNord] = postNord
	}
	return r
}

func (r *Router) Book(ctx context.Context, req ports.BookingRequest) (shipment.Result, error) {
	b, ok := r.bookers[req.Key.Carrier]
	if !ok {
		return shipment.Result{}, errs.NewExternalServiceError(string(req.Key.Carrier) + " (not configured)")
	}
	return b.Book(ctx, req)
}

// postJSON sends body as JSON and decodes a 2xx response into out.
func postJSON(ctx context.Context, hc *http.Client, url string, header http.Header, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// StatusError is a non-2xx answer from a carrier API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

func httpClientOrDefault(hc *http.Client) *http.Client {
	if hc != nil {
		return hc
	}
	return &http.Client{Timeout: defaultTimeout}
}

func countryOrSE(c string) string {
	if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
		return c
	}
	return "SE"
}
