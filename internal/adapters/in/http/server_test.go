package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/confirmation"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/model/step"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEcho(t *testing.T, h httpadapter.Handlers) *echo.Echo {
	t.Helper()
	doc, err := httpadapter.LoadSpec(t.Context())
	require.NoError(t, err)

	e, err := httpadapter.NewEcho(httpadapter.NewServer(h, slog.New(slog.DiscardHandler)), doc)
	require.NoError(t, err)
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

const newOrderBody = `{
	"orderNumber": "SWE001234",
	"orderType": "legalization",
	"services": ["chamber", "embassy"],
	"pickupService": true,
	"pickupMethod": "dhl",
	"returnService": "dhl-sweden",
	"documentSource": "original",
	"country": "EG",
	"pickupAddress": {"street": "Kungsgatan 1", "postalCode": "111 43", "city": "Stockholm"},
	"returnAddress": {"street": "Storgatan 9", "postalCode": "411 38", "city": "Göteborg"},
	"customerEmail": "kund@example.se",
	"locale": "sv",
	"breakdown": {"lines": [
		{"description": "Chamber legalization", "service": "chamber", "unitPrice": "400", "quantity": 2},
		{"description": "Embassy official fee", "service": "embassy_official", "isTBC": true}
	]}
}`

func TestHealth(t *testing.T) {
	e := newTestEcho(t, httpadapter.Handlers{})

	rec := do(e, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestCreateOrder(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		var got commands.CreateOrderCommand
		e := newTestEcho(t, httpadapter.Handlers{
			CreateOrder: func(_ context.Context, cmd commands.CreateOrderCommand) error {
				got = cmd
				return nil
			},
		})

		rec := do(e, http.MethodPost, "/api/v1/orders", newOrderBody)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, "SWE001234", got.Snapshot().OrderNumber)
		assert.Equal(t, order.TypeLegalization, got.Snapshot().OrderType)
		assert.Equal(t, "Storgatan 9", got.Snapshot().ReturnAddress.Street)
		require.Len(t, got.Breakdown().Lines, 2)
		assert.True(t, got.Breakdown().Lines[1].IsTBC)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, got.Snapshot().ID.String(), body["id"])
	})

	t.Run("schema violation is rejected before the handler", func(t *testing.T) {
		called := false
		e := newTestEcho(t, httpadapter.Handlers{
			CreateOrder: func(context.Context, commands.CreateOrderCommand) error {
				called = true
				return nil
			},
		})

		rec := do(e, http.MethodPost, "/api/v1/orders", strings.Replace(newOrderBody, `"legalization"`, `"courier"`, 1))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, called)
	})

	t.Run("duplicate order number", func(t *testing.T) {
		e := newTestEcho(t, httpadapter.Handlers{
			CreateOrder: func(context.Context, commands.CreateOrderCommand) error {
				return errs.NewConflictError("orderNumber", "SWE001234")
			},
		})

		rec := do(e, http.MethodPost, "/api/v1/orders", newOrderBody)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestTransitionStep(t *testing.T) {
	orderID := kernel.NewUUID()
	target := "/api/v1/orders/" + orderID.String() + "/steps/embassy_delivery/status"

	t.Run("returns warnings", func(t *testing.T) {
		var got commands.TransitionStepCommand
		e := newTestEcho(t, httpadapter.Handlers{
			TransitionStep: func(_ context.Context, cmd commands.TransitionStepCommand) ([]string, error) {
				got = cmd
				return []string{"completed with override: embassy price declined"}, nil
			},
		})

		rec := do(e, http.MethodPut, target, `{"status":"completed","actor":"admin@example.se","override":true}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.True(t, got.OrderID().IsEqual(orderID))
		assert.Equal(t, "embassy_delivery", got.StepID())
		assert.Equal(t, step.Completed, got.Status())
		assert.True(t, got.Override())
		assert.Contains(t, rec.Body.String(), "embassy price declined")
	})

	t.Run("blocked completion is a conflict", func(t *testing.T) {
		e := newTestEcho(t, httpadapter.Handlers{
			TransitionStep: func(context.Context, commands.TransitionStepCommand) ([]string, error) {
				return nil, errors.Join(step.ErrCompletionBlocked, errs.NewValueIsInvalidError("embassy_price"))
			},
		})

		rec := do(e, http.MethodPut, target, `{"status":"completed","actor":"admin@example.se"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown step", func(t *testing.T) {
		e := newTestEcho(t, httpadapter.Handlers{
			TransitionStep: func(context.Context, commands.TransitionStepCommand) ([]string, error) {
				return nil, errs.NewObjectNotFoundError("stepId", "embassy_delivery")
			},
		})

		rec := do(e, http.MethodPut, target, `{"status":"in_progress","actor":"admin@example.se"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed order id", func(t *testing.T) {
		e := newTestEcho(t, httpadapter.Handlers{})

		rec := do(e, http.MethodPut, "/api/v1/orders/not-a-uuid/steps/embassy_delivery/status",
			`{"status":"completed","actor":"admin@example.se"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSendConfirmation_EmailFailure(t *testing.T) {
	e := newTestEcho(t, httpadapter.Handlers{
		SendConfirmation: func(context.Context, commands.SendConfirmationCommand) (confirmation.Request, error) {
			return confirmation.Request{}, errs.NewExternalServiceErrorWithCause("email", errors.New("smtp down"))
		},
	})

	rec := do(e, http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/confirmations/embassy_price",
		`{"proposedPrice": 750}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestRespondToConfirmation(t *testing.T) {
	var got commands.RespondToConfirmationCommand
	e := newTestEcho(t, httpadapter.Handlers{
		RespondToConfirm: func(_ context.Context, cmd commands.RespondToConfirmationCommand) (confirmation.Request, error) {
			got = cmd
			return confirmation.Request{
				Type:                     confirmation.AddressReturn,
				Status:                   confirmation.StatusConfirmed,
				Token:                    "secret",
				AddressUpdatedByCustomer: true,
			}, nil
		},
	})

	rec := do(e, http.MethodPost, "/api/v1/confirmations/"+kernel.NewUUID().String()+"/address_return",
		`{"token":"secret","accept":true,"address":{"street":"Nygatan 2","postalCode":"411 01","city":"Göteborg"}}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Nygatan 2", got.Address().Street)
	assert.NotContains(t, rec.Body.String(), "secret")
	assert.Contains(t, rec.Body.String(), `"addressUpdatedByCustomer":true`)
}

func TestBookShipment_ConflictCarriesExistingBooking(t *testing.T) {
	bookedAt := time.Date(2024, 11, 12, 9, 0, 0, 0, time.UTC)
	existing := shipment.Booking{Booked: true, TrackingNumber: "1234567890", BookedAt: &bookedAt}

	e := newTestEcho(t, httpadapter.Handlers{
		BookShipment: func(context.Context, commands.BookShipmentCommand) (shipment.Booking, error) {
			return existing, errs.NewConflictError("dhl return", existing)
		},
	})

	rec := do(e, http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/shipments/dhl/return", "")

	require.Equal(t, http.StatusConflict, rec.Code)
	body := decodeError(t, rec)
	existingBody, ok := body["existing"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "1234567890", existingBody["trackingNumber"])
}

func TestBookShipment_UnsupportedCarrier(t *testing.T) {
	e := newTestEcho(t, httpadapter.Handlers{})

	rec := do(e, http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/shipments/ups/return", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPreviewEmbassyPrice(t *testing.T) {
	var got queries.GetEmbassyPricePreviewQuery
	e := newTestEcho(t, httpadapter.Handlers{
		EmbassyPricePreview: func(_ context.Context, q queries.GetEmbassyPricePreviewQuery) (queries.GetEmbassyPricePreviewQueryResponse, error) {
			got = q
			return queries.GetEmbassyPricePreviewQueryResponse{
				ConfirmedTotal:   decimal.NewFromInt(1900),
				ProposedPrice:    q.Proposed(),
				ProspectiveTotal: decimal.NewFromInt(2650),
				HasTBC:           true,
			}, nil
		},
	})

	rec := do(e, http.MethodGet, "/api/v1/orders/"+kernel.NewUUID().String()+"/embassy-price-preview?proposedPrice=750", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, got.Proposed().Equal(decimal.NewFromInt(750)))
	assert.Contains(t, rec.Body.String(), `"prospectiveTotal":"2650"`)

	rec = do(e, http.MethodGet, "/api/v1/orders/"+kernel.NewUUID().String()+"/embassy-price-preview", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddNote(t *testing.T) {
	orderID := kernel.NewUUID()
	e := newTestEcho(t, httpadapter.Handlers{
		AddNote: func(_ context.Context, cmd commands.AddNoteCommand) (order.Note, error) {
			return order.NewNote(cmd.OrderID(), cmd.NoteType(), cmd.Content(), cmd.CreatedBy(), time.Now())
		},
	})

	rec := do(e, http.MethodPost, "/api/v1/orders/"+orderID.String()+"/notes",
		`{"type":"issue","content":"Embassy asked for a copy","createdBy":"admin@example.se"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"type":"issue"`)
}

func TestSwaggerServesSpec(t *testing.T) {
	e := newTestEcho(t, httpadapter.Handlers{})

	rec := do(e, http.MethodGet, "/swagger/doc.json", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Fulfillment API")
}
