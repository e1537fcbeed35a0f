// Package kernel provides the shared domain primitives of the fulfillment backend.
//
// The package includes:
//   - UUID: a value object for order, note and confirmation identifiers
//   - Address: a postal address snapshot used by pickup/return logistics and
//     address confirmation
//
// These primitives are immutable values; their zero values are invalid and are
// rejected by Validate.
package kernel
