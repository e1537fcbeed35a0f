package guard_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		// When
		g := guard.NewConstructorGuard()

		// Then
		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expectedError := errors.New("entity not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsageExample shows the guard embedded in a request value
// that must only be built through its constructor.
func TestConstructorGuardUsageExample(t *testing.T) {
	type noteRequest struct {
		orderNumber string
		content     string
		guard       guard.ConstructorGuard
	}

	errNoteRequestNotConstructed := errors.New("noteRequest must be created via newNoteRequest")

	newNoteRequest := func(orderNumber, content string) (noteRequest, error) {
		if orderNumber == "" {
			return noteRequest{}, errors.New("order number is required")
		}
		if content == "" {
			return noteRequest{}, errors.New("content is required")
		}
		return noteRequest{
			orderNumber: orderNumber,
			content:     content,
			guard:       guard.NewConstructorGuard(),
		}, nil
	}

	validate := func(r noteRequest) error {
		return r.guard.Validate(errNoteRequestNotConstructed)
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		req, err := newNoteRequest("SWE000042", "Customer called about embassy fee")

		require.NoError(t, err)
		require.NoError(t, validate(req))
		assert.Equal(t, "SWE000042", req.orderNumber)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var req noteRequest

		err := validate(req)

		require.Error(t, err)
		assert.Equal(t, errNoteRequestNotConstructed, err)
	})

	t.Run("constructor_validates_business_rules", func(t *testing.T) {
		_, err := newNoteRequest("", "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "order number is required")

		_, err = newNoteRequest("SWE000042", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "content is required")
	})
}
