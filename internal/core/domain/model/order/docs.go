// Package order holds the read-only order attributes the fulfillment core
// derives its work from.
//
// The package includes:
//   - Snapshot: an immutable copy of the customer order as placed
//   - ServiceID: the closed catalog of selectable services, with the fixed
//     authority order used when deriving processing steps
//   - OrderType and DocumentSource: small enums carried by the snapshot
//   - Note: an append-only internal admin note
//
// Nothing here mutates; the fulfillment aggregate and the pure step and pricing
// functions take these values as input.
package order
