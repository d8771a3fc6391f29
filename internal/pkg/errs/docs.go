// Package errs provides standardized error types for the ordering
// application. It implements a consistent pattern for error creation,
// formatting, and unwrapping used throughout the codebase.
//
// Each error kind follows the same shape:
//   - A sentinel error variable (e.g. ErrObjectNotFound) for errors.Is checks
//   - A struct type carrying the error details
//   - Constructor functions with and without a cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// The kinds map onto the failure categories of the order pipeline:
// validation failures (ValueIsRequired, ValueIsInvalid, ValueIsOutOfRange),
// missing objects (ObjectNotFound), corrupt price data (InvalidPricing),
// rejected status changes (IllegalTransition), and an unreachable or timed
// out transactional backend (StoreUnavailable).
package errs
