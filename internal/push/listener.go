// Package push maintains the websocket channel that carries storefront
// push events (app uninstalls, order and product updates) and dispatches
// them to subscribers.
package push

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/restockly/restock-dashboard/internal/metrics"
)

// Well-known event names on the push channel.
const (
	EventAppUninstalled = "app/uninstalled"
	EventOrderCreated   = "orders/create"
	EventProductUpdated = "products/update"
)

// Reconnect policy: a fixed number of attempts with linear backoff
// capped at a maximum delay.
const (
	DefaultMaxReconnects  = 5
	DefaultReconnectDelay = 1 * time.Second
	MaxReconnectDelay     = 5 * time.Second
)

// Event is one decoded push-channel message.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Listener maintains the websocket connection and fans events out to
// subscribers. Subscriber channels are buffered and never closed by the
// listener; a slow subscriber drops events rather than blocking the
// read loop.
type Listener struct {
	url        string
	shopDomain string
	logger     *slog.Logger

	maxReconnects  int
	reconnectDelay time.Duration
	dialer         *websocket.Dialer

	mu   sync.Mutex
	subs map[string][]chan Event

	done chan struct{}
	once sync.Once
}

// ListenerOption configures the Listener.
type ListenerOption func(*Listener)

// WithListenerLogger sets the logger.
func WithListenerLogger(l *slog.Logger) ListenerOption {
	return func(li *Listener) {
		li.logger = l
	}
}

// WithReconnectPolicy overrides the reconnect attempt count and base delay.
func WithReconnectPolicy(attempts int, delay time.Duration) ListenerOption {
	return func(li *Listener) {
		li.maxReconnects = attempts
		li.reconnectDelay = delay
	}
}

// WithDialer overrides the websocket dialer.
func WithDialer(d *websocket.Dialer) ListenerOption {
	return func(li *Listener) {
		li.dialer = d
	}
}

// NewListener creates a push listener for the given endpoint and shop
// domain. Run must be called to start it.
func NewListener(endpoint, shopDomain string, opts ...ListenerOption) *Listener {
	l := &Listener{
		url:            endpoint,
		shopDomain:     shopDomain,
		logger:         slog.Default(),
		maxReconnects:  DefaultMaxReconnects,
		reconnectDelay: DefaultReconnectDelay,
		dialer:         websocket.DefaultDialer,
		subs:           make(map[string][]chan Event),
		done:           make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Listen returns a buffered channel that receives every event with the
// given name. The channel is never closed by the listener.
func (l *Listener) Listen(event string) <-chan Event {
	ch := make(chan Event, 16)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subs[event] = append(l.subs[event], ch)
	return ch
}

// Run connects and reads until the context is canceled or the reconnect
// budget is exhausted. It returns nil on context cancellation.
func (l *Listener) Run(ctx context.Context) error {
	defer l.once.Do(func() { close(l.done) })

	attempts := 0
	for {
		conn, err := l.dial(ctx)
		if err != nil {
			attempts++
			metrics.PushReconnectsTotal.Inc()
			if attempts > l.maxReconnects {
				return fmt.Errorf("push channel: giving up after %d attempts: %w", attempts-1, err)
			}
			l.logger.Warn("push channel connect failed",
				"attempt", attempts,
				"error", err)
			if err := sleepCtx(ctx, l.backoff(attempts)); err != nil {
				return nil
			}
			continue
		}

		attempts = 0
		l.logger.Info("push channel connected", "shop", l.shopDomain)

		err = l.readLoop(ctx, conn)
		conn.Close()
		if ctx.Err() != nil {
			return nil
		}

		attempts++
		metrics.PushReconnectsTotal.Inc()
		if attempts > l.maxReconnects {
			return fmt.Errorf("push channel: giving up after %d attempts: %w", attempts-1, err)
		}
		l.logger.Warn("push channel disconnected, reconnecting",
			"attempt", attempts,
			"error", err)
		if err := sleepCtx(ctx, l.backoff(attempts)); err != nil {
			return nil
		}
	}
}

// Done is closed once Run has returned.
func (l *Listener) Done() <-chan struct{} {
	return l.done
}

func (l *Listener) dial(ctx context.Context) (*websocket.Conn, error) {
	u, err := url.Parse(l.url)
	if err != nil {
		return nil, fmt.Errorf("parsing push endpoint: %w", err)
	}
	q := u.Query()
	q.Set("shop", l.shopDomain)
	u.RawQuery = q.Encode()

	conn, resp, err := l.dialer.DialContext(ctx, u.String(), nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", u.Host, err)
	}
	return conn, nil
}

func (l *Listener) readLoop(ctx context.Context, conn *websocket.Conn) error {
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("reading push message: %w", err)
		}

		var ev Event
		if err := json.Unmarshal(payload, &ev); err != nil {
			l.logger.Warn("discarding malformed push message", "error", err)
			continue
		}
		if ev.Event == "" {
			continue
		}

		metrics.PushEventsTotal.WithLabelValues(ev.Event).Inc()
		l.dispatch(ev)
	}
}

func (l *Listener) dispatch(ev Event) {
	l.mu.Lock()
	subs := l.subs[ev.Event]
	l.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- ev:
		default:
			l.logger.Warn("dropping push event for slow subscriber", "event", ev.Event)
		}
	}
}

// backoff grows linearly with the attempt number up to the cap.
func (l *Listener) backoff(attempt int) time.Duration {
	d := time.Duration(attempt) * l.reconnectDelay
	if d > MaxReconnectDelay {
		d = MaxReconnectDelay
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
