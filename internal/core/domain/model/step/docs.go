// Package step derives and drives the physical processing steps of an order.
//
// The package includes:
//   - Generate: a pure resolver that turns order attributes into an ordered,
//     deterministic list of pending steps
//   - MigrateLegacy: the one-time upgrade of single-step authority records into
//     the drop-off / pick-up pair
//   - Transition and ApplyMetadata: the status state machine and the per-kind
//     metadata rules
//   - Kind: a closed tagged variant describing what a step is about, so the
//     state machine never inspects id strings
//
// Key business rules:
//   - Step ids are unique within an order and the generated order is stable
//   - Status follows Pending -> InProgress -> Completed, and Pending/InProgress
//     -> Skipped; nothing leaves Completed or Skipped except a full regenerate
//   - A completed step always carries completedAt and completedBy
//   - Completion of confirmation-gated steps consults a CompletionGuard
//
// All operations return new slices and never mutate their input.
package step
