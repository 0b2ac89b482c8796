// Package guard provides ConstructorGuard, a marker embedded in value objects,
// commands and queries so that zero values are rejected on Validate.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the owning struct was built by its constructor.
//
// Example usage:
//
//	var ErrStatusChangeNotConstructed = errors.New("StatusChange must be created via NewStatusChange")
//
//	type StatusChange struct {
//	    id     kernel.OrderID
//	    status order.Status
//	    guard  guard.ConstructorGuard
//	}
//
//	func (c StatusChange) Validate() error {
//	    return c.guard.Validate(ErrStatusChangeNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
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
