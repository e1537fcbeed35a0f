// Package fulfillment provides the Order aggregate: the admin-side record of a
// customer order as it is walked through processing.
//
// The aggregate owns the processing steps, the pricing breakdown and the saved
// admin price, the confirmation requests, and the carrier bookings. Every
// method applies the result of a pure function from the step, pricing,
// confirmation or shipment packages and replaces the affected sub-structure as
// a whole. The customer Snapshot itself is never modified.
package fulfillment
