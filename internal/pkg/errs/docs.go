// Package errs provides standardized error types for the fulfillment backend.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a numeric value falls outside its bounds
//   - ObjectNotFoundError: For when an object (order, step, override) cannot be found
//   - ConflictError: For when an action would repeat a side effect that already happened
//   - ExternalServiceError: For when a carrier, email or document collaborator fails
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify failures with errors.Is against the sentinels; the HTTP
// adapter maps them to 400, 404, 409 and 502 responses.
package errs
