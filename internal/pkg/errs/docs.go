// Package errs provides the error types shared by every layer of the
// fulfillment service.
//
// Two families live here:
//   - validation kinds (ValueIsRequired, ValueIsInvalid, ValueIsOutOfRange)
//     and ObjectNotFound, used by aggregates and repositories
//   - the fulfillment taxonomy (InvalidTransition, Unauthorized,
//     CapacityExceeded, AlreadyBundled, OwnerMismatch, Conflict,
//     DispatchFailure) plus Internal for unexpected storage failures
//
// Each kind follows the same shape: a sentinel variable, a struct carrying
// details, New...Error constructors and an Unwrap method returning the
// sentinel. Callers classify with errors.Is and read details with errors.As.
package errs
