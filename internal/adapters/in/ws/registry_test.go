package ws_test

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/adapters/in/ws"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/adapters/out/eventbus"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/kernel"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/order"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func satang(t *testing.T, v int64) kernel.Money {
	t.Helper()
	money, err := kernel.NewMoneyFromSatang(v)
	require.NoError(t, err)
	return money
}

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()

	iced, err := order.NewOptionSnapshot("temperature", "Iced", satang(t, 500))
	require.NoError(t, err)

	item, err := order.NewOrderItem(
		kernel.NewUUID(), "Latte", satang(t, 6000), 2,
		[]order.OptionSnapshot{iced}, "", satang(t, 13000),
	)
	require.NoError(t, err)

	aggregate, err := order.NewOrder(kernel.NewUUID(), "Somchai", []order.OrderItem{item}, satang(t, 13000))
	require.NoError(t, err)
	return aggregate
}

func startStream(t *testing.T, registry *ws.ConnectionRegistry) *httptest.Server {
	t.Helper()

	e := echo.New()
	e.GET("/api/v1/orders/stream", registry.Handle)

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)
	return server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/orders/stream"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestConnectionRegistry_DeliversOrderEvents(t *testing.T) {
	bus := eventbus.NewBus(8, discardLogger())
	registry := ws.NewConnectionRegistry(bus, discardLogger())
	server := startStream(t, registry)

	conn := dial(t, server)
	require.Eventually(t, func() bool {
		return bus.SubscriberCount() == 1
	}, time.Second, 10*time.Millisecond)

	aggregate := pendingOrder(t)
	bus.PublishOrderCreated(aggregate)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg ws.Message
	require.NoError(t, conn.ReadJSON(&msg))

	assert.Equal(t, eventbus.EventOrderCreated, msg.Event)
	assert.Equal(t, aggregate.ID().String(), msg.Payload.ID)
	assert.Equal(t, "Somchai", msg.Payload.CustomerName)
	assert.Equal(t, "pending", msg.Payload.Status)
	assert.Equal(t, "รอดำเนินการ", msg.Payload.StatusDisplay)
	assert.Equal(t, int64(13000), msg.Payload.TotalSatang)

	require.Len(t, msg.Payload.Items, 1)
	assert.Equal(t, "Latte", msg.Payload.Items[0].Name)
	assert.Equal(t, int64(13000), msg.Payload.Items[0].LineTotalSatang)
	require.Len(t, msg.Payload.Items[0].SelectedOptions, 1)
	assert.Equal(t, "Iced", msg.Payload.Items[0].SelectedOptions[0].Name)
	assert.Equal(t, int64(500), msg.Payload.Items[0].SelectedOptions[0].AdjustmentSatang)
}

func TestConnectionRegistry_FansOutToAllSessions(t *testing.T) {
	bus := eventbus.NewBus(8, discardLogger())
	registry := ws.NewConnectionRegistry(bus, discardLogger())
	server := startStream(t, registry)

	first := dial(t, server)
	second := dial(t, server)

	require.Eventually(t, func() bool {
		return bus.SubscriberCount() == 2 && registry.ConnectionCount() == 2
	}, time.Second, 10*time.Millisecond)

	bus.PublishOrderUpdated(pendingOrder(t))

	for _, conn := range []*websocket.Conn{first, second} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var msg ws.Message
		require.NoError(t, conn.ReadJSON(&msg))
		assert.Equal(t, eventbus.EventOrderUpdated, msg.Event)
	}
}

func TestConnectionRegistry_ClientDisconnectUnsubscribes(t *testing.T) {
	bus := eventbus.NewBus(8, discardLogger())
	registry := ws.NewConnectionRegistry(bus, discardLogger())
	server := startStream(t, registry)

	conn := dial(t, server)
	require.Eventually(t, func() bool {
		return registry.ConnectionCount() == 1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool {
		return registry.ConnectionCount() == 0 && bus.SubscriberCount() == 0
	}, time.Second, 10*time.Millisecond)

	// Publishing with no sessions left must not panic or block.
	bus.PublishOrderDeleted(pendingOrder(t))
}

func TestConnectionRegistry_CloseAllDropsSessions(t *testing.T) {
	bus := eventbus.NewBus(8, discardLogger())
	registry := ws.NewConnectionRegistry(bus, discardLogger())
	server := startStream(t, registry)

	dial(t, server)
	dial(t, server)

	require.Eventually(t, func() bool {
		return registry.ConnectionCount() == 2
	}, time.Second, 10*time.Millisecond)

	registry.CloseAll()

	require.Eventually(t, func() bool {
		return registry.ConnectionCount() == 0 && bus.SubscriberCount() == 0
	}, time.Second, 10*time.Millisecond)
}
