// Package guard provides the constructor guard used by commands, queries and
// value objects to reject zero-value instances that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate when no
// specific validation error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as created through its designated constructor.
// Embed it in a struct and call Validate from the struct's own Validate method;
// a zero-value struct fails validation.
//
// Example:
//
//	var ErrTransitionStepCommandIsNotConstructed = errors.New(
//	    "TransitionStepCommand must be created via NewTransitionStepCommand constructor")
//
//	type TransitionStepCommand struct {
//	    stepID string
//	    guard  guard.ConstructorGuard
//	}
//
//	func (c TransitionStepCommand) Validate() error {
//	    return c.guard.Validate(ErrTransitionStepCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
