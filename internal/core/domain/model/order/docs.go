// Package order provides domain entities and business logic for customer
// orders in the coffee shop ordering system. It implements the Order
// aggregate root with lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root owning priced line items and a lifecycle status
//   - OrderItem: A line of the order with a price snapshot captured at order time
//   - OptionSnapshot: A copy of a selected menu option, immune to later catalog edits
//   - Status: A state machine that enforces valid order status transitions
//
// Key business rules:
//   - Orders must have a non-empty customer name and at least one item
//   - The order total always equals the sum of its item line totals
//   - Order status follows a fixed workflow: pending -> preparing -> completed,
//     with cancellation allowed only from pending
//   - Items and totals are immutable after creation; only status changes
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
