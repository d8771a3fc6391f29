package order_test

import (
	"fmt"
	"testing"

	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/order"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(order.Unknown))
		assert.Equal(t, 1, int(order.Pending))
		assert.Equal(t, 2, int(order.Preparing))
		assert.Equal(t, 3, int(order.Completed))
		assert.Equal(t, 4, int(order.Cancelled))
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate members of the status set", func(t *testing.T) {
		for _, status := range []order.Status{order.Pending, order.Preparing, order.Completed, order.Cancelled} {
			t.Run(status.String(), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject Unknown and out-of-set values", func(t *testing.T) {
		for _, status := range []order.Status{order.Unknown, order.Status(-1), order.Status(5), order.Status(99)} {
			t.Run(fmt.Sprintf("value_%d", int(status)), func(t *testing.T) {
				err := status.Validate()

				require.Error(t, err)
				assert.IsType(t, &errs.ValueIsInvalidError{}, err)
			})
		}
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "pending", order.Pending.String())
	assert.Equal(t, "preparing", order.Preparing.String())
	assert.Equal(t, "completed", order.Completed.String())
	assert.Equal(t, "cancelled", order.Cancelled.String())
	assert.Equal(t, "unknown", order.Unknown.String())
	assert.Equal(t, "unknown", order.Status(42).String())
}

func TestStatusFromString(t *testing.T) {
	t.Run("should parse canonical forms", func(t *testing.T) {
		for _, want := range []order.Status{order.Pending, order.Preparing, order.Completed, order.Cancelled} {
			got, err := order.StatusFromString(want.String())
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("should reject unknown and localized forms", func(t *testing.T) {
		for _, raw := range []string{"", "unknown", "Pending", "done", "รอดำเนินการ"} {
			_, err := order.StatusFromString(raw)
			require.Error(t, err, "input %q", raw)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestStatus_DisplayThai(t *testing.T) {
	assert.Equal(t, "รอดำเนินการ", order.Pending.DisplayThai())
	assert.Equal(t, "กำลังเตรียม", order.Preparing.DisplayThai())
	assert.Equal(t, "เสร็จสิ้น", order.Completed.DisplayThai())
	assert.Equal(t, "ยกเลิก", order.Cancelled.DisplayThai())
	assert.Equal(t, "ไม่ทราบสถานะ", order.Unknown.DisplayThai())
}

// TestStatus_TransitionTo exercises the full closure of the transition
// table: a request succeeds iff the target is one edge away or equals the
// current status; everything else is an illegal transition.
func TestStatus_TransitionTo(t *testing.T) {
	statuses := []order.Status{order.Pending, order.Preparing, order.Completed, order.Cancelled}
	allowed := map[order.Status][]order.Status{
		order.Pending:   {order.Preparing, order.Cancelled},
		order.Preparing: {order.Completed},
		order.Completed: {},
		order.Cancelled: {},
	}

	isAllowed := func(from, to order.Status) bool {
		for _, next := range allowed[from] {
			if next == to {
				return true
			}
		}
		return false
	}

	for _, from := range statuses {
		for _, to := range statuses {
			t.Run(fmt.Sprintf("%s_to_%s", from, to), func(t *testing.T) {
				got, err := from.TransitionTo(to)

				switch {
				case from == to:
					require.NoError(t, err)
					assert.Equal(t, from, got, "same-status request must be a no-op success")
				case isAllowed(from, to):
					require.NoError(t, err)
					assert.Equal(t, to, got)
				default:
					require.Error(t, err)
					assert.ErrorIs(t, err, errs.ErrIllegalTransition)
					assert.Equal(t, order.Unknown, got)
				}
			})
		}
	}

	t.Run("should reject invalid target status", func(t *testing.T) {
		_, err := order.Pending.TransitionTo(order.Unknown)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, order.Pending.IsTerminal())
	assert.False(t, order.Preparing.IsTerminal())
	assert.True(t, order.Completed.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
}
