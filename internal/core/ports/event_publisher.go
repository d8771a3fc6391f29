package ports

import (
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/order"
)

// EventPublisher distributes order mutations to live staff sessions.
// Command handlers call it strictly after their transaction commits, so a
// subscriber can never observe a half-committed order. Delivery is
// best-effort and never returns an error to the mutating caller: a failed
// or slow subscriber only affects which sessions see the update live.
type EventPublisher interface {
	// PublishOrderCreated announces a newly committed order.
	PublishOrderCreated(aggregate *order.Order)

	// PublishOrderUpdated announces a committed status change, carrying
	// the full current snapshot rather than a diff.
	PublishOrderUpdated(aggregate *order.Order)

	// PublishOrderDeleted announces that an order left the live store,
	// e.g. through archival.
	PublishOrderDeleted(aggregate *order.Order)
}
