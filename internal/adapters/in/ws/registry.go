// Package ws exposes committed order events to staff browsers over
// websocket. Every connection is tracked by a registry instead of shared
// package state, so connection lifecycle is testable and shutdown can drop
// all sessions deterministically.
package ws

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/adapters/out/eventbus"
	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/order"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// writeWait bounds a single frame write so one stuck client cannot park
// its writer goroutine forever.
const writeWait = 10 * time.Second

// Message is the wire frame pushed to staff sessions. Payload always
// carries the full order snapshot of the moment the event was committed.
type Message struct {
	Event   string       `json:"event"`
	Payload OrderPayload `json:"payload"`
}

// OrderPayload is the JSON shape of an order on the websocket wire.
// Amounts are integer satang; status carries both the canonical value and
// the Thai display form.
type OrderPayload struct {
	ID            string        `json:"id"`
	CustomerName  string        `json:"customer_name"`
	Status        string        `json:"status"`
	StatusDisplay string        `json:"status_display"`
	TotalSatang   int64         `json:"total_satang"`
	CreatedAt     time.Time     `json:"created_at"`
	Items         []ItemPayload `json:"items"`
}

// ItemPayload is one order line on the wire.
type ItemPayload struct {
	Name            string          `json:"name"`
	UnitPriceSatang int64           `json:"unit_price_satang"`
	Quantity        int             `json:"quantity"`
	SelectedOptions []OptionPayload `json:"selected_options"`
	Note            string          `json:"note,omitempty"`
	LineTotalSatang int64           `json:"line_total_satang"`
}

// OptionPayload is one selected option on the wire.
type OptionPayload struct {
	Type             string `json:"type"`
	Name             string `json:"name"`
	AdjustmentSatang int64  `json:"price_adjustment_satang"`
}

// NewOrderPayload maps an order aggregate onto its wire shape.
func NewOrderPayload(aggregate *order.Order) OrderPayload {
	items := aggregate.Items()
	itemPayloads := make([]ItemPayload, 0, len(items))
	for _, item := range items {
		options := item.Options()
		optionPayloads := make([]OptionPayload, 0, len(options))
		for _, opt := range options {
			optionPayloads = append(optionPayloads, OptionPayload{
				Type:             opt.OptionType(),
				Name:             opt.Name(),
				AdjustmentSatang: opt.PriceAdjustment().Satang(),
			})
		}
		itemPayloads = append(itemPayloads, ItemPayload{
			Name:            item.Name(),
			UnitPriceSatang: item.UnitPrice().Satang(),
			Quantity:        item.Quantity(),
			SelectedOptions: optionPayloads,
			Note:            item.Note(),
			LineTotalSatang: item.LineTotal().Satang(),
		})
	}

	return OrderPayload{
		ID:            aggregate.ID().String(),
		CustomerName:  aggregate.CustomerName(),
		Status:        aggregate.Status().String(),
		StatusDisplay: aggregate.Status().DisplayThai(),
		TotalSatang:   aggregate.Total().Satang(),
		CreatedAt:     aggregate.CreatedAt(),
		Items:         itemPayloads,
	}
}

// ConnectionRegistry upgrades staff sessions to websocket and bridges each
// one to its own event bus subscription. A connection that cannot keep up,
// errors on write or closes from the client side is unsubscribed and
// dropped without affecting other sessions.
type ConnectionRegistry struct {
	bus      *eventbus.Bus
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewConnectionRegistry creates a registry bridging the event bus to
// websocket sessions.
func NewConnectionRegistry(bus *eventbus.Bus, logger *slog.Logger) *ConnectionRegistry {
	return &ConnectionRegistry{
		bus:    bus,
		logger: logger.With("component", "ws"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Staff boards are served from arbitrary shop-local origins.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Handle upgrades the request and streams order events until either side
// disconnects. Registered as GET /api/v1/orders/stream.
func (r *ConnectionRegistry) Handle(c echo.Context) error {
	conn, err := r.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	sub := r.bus.Subscribe()
	r.add(conn)
	r.logger.Info("session connected", "remote", conn.RemoteAddr().String())

	go r.writeLoop(conn, sub)
	go r.readLoop(conn, sub)

	return nil
}

// ConnectionCount returns the number of live sessions.
func (r *ConnectionRegistry) ConnectionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns)
}

// CloseAll drops every live session. Used on shutdown.
func (r *ConnectionRegistry) CloseAll() {
	r.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(r.conns))
	for conn := range r.conns {
		conns = append(conns, conn)
	}
	r.mu.Unlock()

	for _, conn := range conns {
		_ = conn.Close()
	}
}

// writeLoop pumps subscription events to the client. It exits when the
// subscription channel closes, either through Close from the read side or
// through bus teardown on overflow, or when a write fails.
func (r *ConnectionRegistry) writeLoop(conn *websocket.Conn, sub *eventbus.Subscription) {
	defer r.drop(conn, sub)

	for evt := range sub.Events() {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(Message{Event: evt.Type, Payload: NewOrderPayload(evt.Order)}); err != nil {
			r.logger.Info("session write failed, dropping", "error", err)
			return
		}
	}
}

// readLoop consumes incoming frames solely to notice the client going
// away. Closing the subscription unblocks the write loop.
func (r *ConnectionRegistry) readLoop(conn *websocket.Conn, sub *eventbus.Subscription) {
	defer r.drop(conn, sub)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (r *ConnectionRegistry) add(conn *websocket.Conn) {
	r.mu.Lock()
	r.conns[conn] = struct{}{}
	r.mu.Unlock()
}

// drop tears a session down. Idempotent across the two loop goroutines.
func (r *ConnectionRegistry) drop(conn *websocket.Conn, sub *eventbus.Subscription) {
	sub.Close()
	_ = conn.Close()

	r.mu.Lock()
	_, present := r.conns[conn]
	delete(r.conns, conn)
	r.mu.Unlock()

	if present {
		r.logger.Info("session disconnected")
	}
}
