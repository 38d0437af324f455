// Package guard detects values that were built as zero values instead of
// through their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error
// is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in aggregates, commands and queries. Only
// NewConstructorGuard sets the flag, so a zero-value struct fails Validate.
//
// Example:
//
//	type Product struct {
//	    id    kernel.UUID
//	    guard guard.ConstructorGuard
//	}
//
//	func (p *Product) Validate() error {
//	    return p.guard.Validate(ErrProductIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is
// nil) if the owner was not built through its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
