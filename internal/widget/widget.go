// Package widget implements the browser-side shopping cart simulation: a
// session-backed line list with quantity merging, full re-render on every
// mutation, and transient toast notifications. It is intentionally
// disconnected from the server cart; the two are independent carts.
package widget

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

// StorageKey is the session storage key holding the serialized cart.
const StorageKey = "cart"

// DefaultToastDelay is how long a toast stays visible before auto-dismiss.
const DefaultToastDelay = 3 * time.Second

// Storage is the session-scoped persistence the cart lives in. Entries span
// a single session; Set may fail when the session store is full.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Renderer receives the recomputed view after every mutation. There is no
// diffing; the whole view is rebuilt each time.
type Renderer interface {
	Render(view View)
}

// Notifier shows the transient add-to-cart toast.
type Notifier interface {
	Show(message string)
	Dismiss()
}

// View is the full widget render state.
type View struct {
	// BadgeCount is the sum of line quantities shown on the cart icon.
	BadgeCount int
	Empty      bool
	Lines      []LineView
	Total      float64
}

// LineView is one rendered cart row.
type LineView struct {
	UUID         string
	Title        string
	PricePerUnit float64
	Quantity     int
	Subtotal     float64
}

// ShoppingCart is the widget state machine. It is constructed once at page
// load and handed to the UI handlers explicitly; there is no package-level
// instance.
type ShoppingCart struct {
	mu         sync.Mutex
	storage    Storage
	renderer   Renderer
	notifier   Notifier
	logger     *slog.Logger
	toastDelay time.Duration
	toastTimer *time.Timer
	lines      []Line
}

// Option configures the cart.
type Option func(*ShoppingCart)

func WithRenderer(r Renderer) Option {
	return func(c *ShoppingCart) { c.renderer = r }
}

func WithNotifier(n Notifier) Option {
	return func(c *ShoppingCart) { c.notifier = n }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *ShoppingCart) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithToastDelay(d time.Duration) Option {
	return func(c *ShoppingCart) {
		if d > 0 {
			c.toastDelay = d
		}
	}
}

// New loads the cart from session storage (parse-or-empty) and renders the
// initial view.
func New(storage Storage, opts ...Option) *ShoppingCart {
	c := &ShoppingCart{
		storage:    storage,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		toastDelay: DefaultToastDelay,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.lines = c.load()
	c.render()
	return c
}

// Close stops any pending toast timer.
func (c *ShoppingCart) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.toastTimer != nil {
		c.toastTimer.Stop()
		c.toastTimer = nil
	}
}

// Add puts the product in the cart. A line with the same uuid has its
// quantity incremented instead of a duplicate being appended. Quantities
// below one count as one.
func (c *ShoppingCart) Add(product map[string]any, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	c.mu.Lock()
	line := NewLine(product, quantity)
	merged := false
	for i := range c.lines {
		if c.lines[i].UUID() == line.UUID() {
			c.lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		c.lines = append(c.lines, line)
	}
	err := c.save()
	c.render()
	c.mu.Unlock()
	if err != nil {
		return err
	}
	c.toast(fmt.Sprintf("%s added to cart (quantity: %d)", line.Title(), quantity))
	return nil
}

// UpdateQuantity sets a line's quantity, clamped to a minimum of 1. Unknown
// uuids are a no-op.
func (c *ShoppingCart) UpdateQuantity(uuid string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].UUID() == uuid {
			c.lines[i].Quantity = quantity
			err := c.save()
			c.render()
			return err
		}
	}
	return nil
}

// RemoveItem filters the line out. Persistence errors are logged and
// swallowed, never surfaced to the caller.
func (c *ShoppingCart) RemoveItem(uuid string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.lines[:0]
	for _, line := range c.lines {
		if line.UUID() != uuid {
			kept = append(kept, line)
		}
	}
	c.lines = kept
	if err := c.save(); err != nil {
		c.logger.Error("failed to remove cart item", slog.String("uuid", uuid), slog.String("error", err.Error()))
	}
	c.render()
}

// Clear empties the cart when the confirmation callback approves the
// destructive reset.
func (c *ShoppingCart) Clear(confirm func() bool) error {
	if confirm != nil && !confirm() {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	err := c.save()
	c.render()
	return err
}

// Total is the sum of pricePerUnit times quantity over all lines.
func (c *ShoppingCart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total()
}

// Lines returns a copy of the current line list.
func (c *ShoppingCart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, 0, len(c.lines))
	for _, line := range c.lines {
		out = append(out, line.Clone())
	}
	return out
}

// View recomputes the full render state.
func (c *ShoppingCart) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view()
}

func (c *ShoppingCart) load() []Line {
	raw, ok := c.storage.Get(StorageKey)
	if !ok || raw == "" {
		return nil
	}
	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		c.logger.Warn("ignoring unreadable stored cart", slog.String("error", err.Error()))
		return nil
	}
	return lines
}

func (c *ShoppingCart) save() error {
	data, err := json.Marshal(c.lines)
	if err != nil {
		return err
	}
	if c.lines == nil {
		data = []byte("[]")
	}
	return c.storage.Set(StorageKey, string(data))
}

func (c *ShoppingCart) total() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.PricePerUnit() * float64(line.Quantity)
	}
	return total
}

func (c *ShoppingCart) view() View {
	view := View{Empty: len(c.lines) == 0}
	for _, line := range c.lines {
		view.BadgeCount += line.Quantity
		view.Lines = append(view.Lines, LineView{
			UUID:         line.UUID(),
			Title:        line.Title(),
			PricePerUnit: line.PricePerUnit(),
			Quantity:     line.Quantity,
			Subtotal:     line.PricePerUnit() * float64(line.Quantity),
		})
	}
	view.Total = c.total()
	return view
}

func (c *ShoppingCart) render() {
	if c.renderer != nil {
		c.renderer.Render(c.view())
	}
}

func (c *ShoppingCart) toast(message string) {
	if c.notifier == nil {
		return
	}
	c.mu.Lock()
	if c.toastTimer != nil {
		c.toastTimer.Stop()
	}
	c.notifier.Show(message)
	c.toastTimer = time.AfterFunc(c.toastDelay, func() {
		c.notifier.Dismiss()
	})
	c.mu.Unlock()
}
