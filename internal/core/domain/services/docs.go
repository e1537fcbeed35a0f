// Package services provides domain services that span more than one model
// package of the fulfillment core.
//
// The package includes:
//   - ConfirmationGate: the step.CompletionGuard that ties step completion to
//     the state of the order's confirmation requests
//
// Domain services hold no state of their own and never write to the aggregate.
package services
