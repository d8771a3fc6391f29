package commands

import (
	"errors"
	"time"

	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/pkg/errs"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/pkg/guard"
)

var ErrArchiveStaleOrdersCommandIsNotConstructed = errors.New(
	"ArchiveStaleOrdersCommand must be created via NewArchiveStaleOrdersCommand constructor",
)

// ArchiveStaleOrdersCommand represents the end-of-day sweep: every live
// order created strictly before the cutoff is moved into history.
type ArchiveStaleOrdersCommand struct { //nolint:recvcheck //using for validation
	cutoff time.Time

	guard guard.ConstructorGuard
}

// NewArchiveStaleOrdersCommand creates a command to archive all orders
// older than the cutoff.
func NewArchiveStaleOrdersCommand(cutoff time.Time) (ArchiveStaleOrdersCommand, error) {
	if cutoff.IsZero() {
		return ArchiveStaleOrdersCommand{}, errs.NewValueIsRequiredError("cutoff")
	}

	return ArchiveStaleOrdersCommand{
		cutoff: cutoff,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ArchiveStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrArchiveStaleOrdersCommandIsNotConstructed)
}

// Cutoff returns the creation time bound. Orders created at or after it
// stay live.
func (c ArchiveStaleOrdersCommand) Cutoff() time.Time {
	return c.cutoff
}
