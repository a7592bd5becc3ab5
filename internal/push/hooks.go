package push

import (
	"context"
	"log/slog"
	"time"

	"github.com/restockly/restock-dashboard/internal/product"
	domain "github.com/restockly/restock-dashboard/pkg/types"
)

const refreshTimeout = time.Minute

// Refresher is the subset of the product orchestrator the hooks drive.
type Refresher interface {
	RefreshProducts(ctx context.Context, opts product.FetchOptions) ([]domain.ProductRecord, error)
	ClearCache()
}

// HookConfig selects which push events trigger a cache refresh. Both
// refresh hooks ship disabled: busy stores emit orders/create far too
// often to refetch on every one, so operators opt in deliberately.
type HookConfig struct {
	RefreshOnOrderCreated   bool
	RefreshOnProductUpdated bool
}

// Hooks wires push-channel events to cache actions: an app uninstall
// clears the cache and notifies the session layer, and (when enabled)
// order/product events trigger a debounced refresh.
type Hooks struct {
	listener  *Listener
	refresher Refresher
	cfg       HookConfig
	logger    *slog.Logger

	// onUninstall runs after the cache is cleared for an uninstall.
	onUninstall func()

	uninstalls <-chan Event
	orders     <-chan Event
	products   <-chan Event

	debouncer *product.Debouncer
}

// HookOption configures Hooks.
type HookOption func(*Hooks)

// WithHookLogger sets the logger.
func WithHookLogger(l *slog.Logger) HookOption {
	return func(h *Hooks) {
		h.logger = l
	}
}

// WithOnUninstall registers a callback invoked after an app-uninstall
// event clears the cache. The session layer uses it to revoke tokens.
func WithOnUninstall(fn func()) HookOption {
	return func(h *Hooks) {
		h.onUninstall = fn
	}
}

// NewHooks creates the hook dispatcher for a listener and refresher.
// Subscriptions are taken immediately, so events arriving between
// construction and Run are buffered rather than lost.
func NewHooks(listener *Listener, refresher Refresher, cfg HookConfig, opts ...HookOption) *Hooks {
	h := &Hooks{
		listener:  listener,
		refresher: refresher,
		cfg:       cfg,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}

	h.uninstalls = listener.Listen(EventAppUninstalled)
	h.orders = listener.Listen(EventOrderCreated)
	h.products = listener.Listen(EventProductUpdated)

	// Bursts of order/product events collapse into one refresh.
	h.debouncer = product.NewDebouncer(product.RangeDebounce, func() {
		rctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		if _, err := h.refresher.RefreshProducts(rctx, product.FetchOptions{}); err != nil {
			h.logger.Error("push-triggered refresh failed", "error", err)
		}
	})
	return h
}

// Run consumes push events until the context is canceled.
func (h *Hooks) Run(ctx context.Context) {
	defer h.debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-h.uninstalls:
			h.handleUninstall()
		case <-h.orders:
			h.maybeRefresh(h.cfg.RefreshOnOrderCreated, EventOrderCreated)
		case <-h.products:
			h.maybeRefresh(h.cfg.RefreshOnProductUpdated, EventProductUpdated)
		}
	}
}

func (h *Hooks) handleUninstall() {
	h.logger.Warn("app uninstalled, clearing cache and revoking session")
	h.refresher.ClearCache()
	if h.onUninstall != nil {
		h.onUninstall()
	}
}

func (h *Hooks) maybeRefresh(enabled bool, event string) {
	if !enabled {
		h.logger.Debug("push refresh hook disabled, ignoring event", "event", event)
		return
	}
	h.debouncer.Trigger()
}
