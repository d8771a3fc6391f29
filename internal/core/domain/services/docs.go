// Package services provides domain services for the ordering system.
// It implements business logic that doesn't naturally belong to a single
// aggregate root.
//
// The package includes:
//   - PricingEngine: A pure domain service computing line and order totals
//     from price snapshots, exact to the minor currency unit
//
// Domain services are stateless and perform no I/O.
package services
