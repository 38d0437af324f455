package errs

import (
	"errors"
	"fmt"
)

// Fulfillment error kinds. Every typed error below unwraps to one of these
// sentinels so callers can classify with errors.Is.
var (
	ErrInvalidTransition = errors.New("transition is invalid")
	ErrUnauthorized      = errors.New("actor is not authorized")
	ErrCapacityExceeded  = errors.New("capacity exceeded")
	ErrAlreadyBundled    = errors.New("product is already bundled")
	ErrOwnerMismatch     = errors.New("owner mismatch")
	ErrConflict          = errors.New("concurrent modification")
	ErrDispatchFailure   = errors.New("notification dispatch failed")
	ErrInternal          = errors.New("internal error")
)

// InvalidTransitionError reports that To is not reachable from From for the
// given entity kind, or that a precondition of the edge is not met.
type InvalidTransitionError struct {
	EntityType string
	From       string
	To         string
	Cause      error
}

func NewInvalidTransitionError(entityType, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{EntityType: entityType, From: from, To: to}
}

func NewInvalidTransitionErrorWithCause(entityType, from, to string, cause error) *InvalidTransitionError {
	return &InvalidTransitionError{EntityType: entityType, From: from, To: to, Cause: cause}
}

func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("%s: %s %s -> %s", ErrInvalidTransition, e.EntityType, e.From, e.To)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// UnauthorizedError reports an actor role that may not take an edge.
type UnauthorizedError struct {
	Role string
	From string
	To   string
}

func NewUnauthorizedError(role, from, to string) *UnauthorizedError {
	return &UnauthorizedError{Role: role, From: from, To: to}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("%s: role %s may not move %s -> %s", ErrUnauthorized, e.Role, e.From, e.To)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// CapacityExceededError reports a full storage location.
type CapacityExceededError struct {
	LocationID any
	Capacity   int
}

func NewCapacityExceededError(locationID any, capacity int) *CapacityExceededError {
	return &CapacityExceededError{LocationID: locationID, Capacity: capacity}
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%s: location %v is full at capacity %d", ErrCapacityExceeded, e.LocationID, e.Capacity)
}

func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}

// AlreadyBundledError reports a product that already belongs to an open
// shipment group.
type AlreadyBundledError struct {
	ProductID any
	GroupID   any
}

func NewAlreadyBundledError(productID, groupID any) *AlreadyBundledError {
	return &AlreadyBundledError{ProductID: productID, GroupID: groupID}
}

func (e *AlreadyBundledError) Error() string {
	if e.GroupID == nil {
		return fmt.Sprintf("%s: %s", ErrAlreadyBundled, e.ProductID)
	}
	return fmt.Sprintf("%s: %s is a member of group %s", ErrAlreadyBundled, e.ProductID, e.GroupID)
}

func (e *AlreadyBundledError) Unwrap() error {
	return ErrAlreadyBundled
}

// OwnerMismatchError reports candidates owned by different sellers.
type OwnerMismatchError struct {
	Expected any
	Actual   any
}

func NewOwnerMismatchError(expected, actual any) *OwnerMismatchError {
	return &OwnerMismatchError{Expected: expected, Actual: actual}
}

func (e *OwnerMismatchError) Error() string {
	return fmt.Sprintf("%s: expected owner %s, got %s", ErrOwnerMismatch, e.Expected, e.Actual)
}

func (e *OwnerMismatchError) Unwrap() error {
	return ErrOwnerMismatch
}

// ConflictError reports an optimistic concurrency failure. The caller should
// reload the entity and retry the whole command.
type ConflictError struct {
	EntityType string
	ID         any
	Version    int
}

func NewConflictError(entityType string, id any, version int) *ConflictError {
	return &ConflictError{EntityType: entityType, ID: id, Version: version}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s changed since version %d", ErrConflict, e.EntityType, e.ID, e.Version)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// DispatchFailureError is logged when a notification cannot be created. It is
// never returned to command callers.
type DispatchFailureError struct {
	Kind        string
	RecipientID any
	Cause       error
}

func NewDispatchFailureError(kind string, recipientID any, cause error) *DispatchFailureError {
	return &DispatchFailureError{Kind: kind, RecipientID: recipientID, Cause: cause}
}

func (e *DispatchFailureError) Error() string {
	msg := fmt.Sprintf("%s: %s to %s", ErrDispatchFailure, e.Kind, e.RecipientID)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *DispatchFailureError) Unwrap() error {
	return ErrDispatchFailure
}

// InternalError wraps an unexpected infrastructure failure so it is never
// mistaken for a domain rejection.
type InternalError struct {
	Cause error
}

func NewInternalError(cause error) *InternalError {
	return &InternalError{Cause: cause}
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", ErrInternal, e.Cause)
	}
	return ErrInternal.Error()
}

func (e *InternalError) Unwrap() []error {
	return []error{ErrInternal, e.Cause}
}

// IsDomain reports whether err belongs to the request-level taxonomy, as
// opposed to a system failure.
func IsDomain(err error) bool {
	for _, kind := range []error{
		ErrInvalidTransition, ErrUnauthorized, ErrCapacityExceeded,
		ErrAlreadyBundled, ErrOwnerMismatch, ErrConflict,
		ErrObjectNotFound, ErrValueIsInvalid, ErrValueIsOutOfRange, ErrValueIsRequired,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

// Internalize wraps err as an InternalError unless it is already a domain
// error or already internal.
func Internalize(err error) error {
	if err == nil || IsDomain(err) || errors.Is(err, ErrInternal) {
		return err
	}
	return NewInternalError(err)
}
