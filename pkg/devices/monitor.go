package devices

import (
	"context"
	"sync"
	"time"

	"github.com/agentstation/lessonmap/pkg/constants"
	"github.com/agentstation/lessonmap/pkg/errors"
	"github.com/agentstation/lessonmap/pkg/logging"
)

// EventType says whether a device appeared or went away.
type EventType int

const (
	// Connected is emitted when a device appears.
	Connected EventType = iota
	// Disconnected is emitted when a device goes away.
	Disconnected
)

// String returns a short name for the event type.
func (t EventType) String() string {
	if t == Connected {
		return "connected"
	}
	return "disconnected"
}

// Event is a change in device presence.
type Event struct {
	Type   EventType
	Device Device
}

// Monitor polls a provider and reports presence changes. It only reads
// device state.
type Monitor struct {
	provider Provider
	interval time.Duration

	mu       sync.Mutex
	known    map[string]Device
	order    []string
	handlers []func(Event)

	ticker *time.Ticker
	cancel context.CancelFunc
	stopCh chan struct{}
	done   chan struct{}
}

// MonitorOption configures a Monitor.
type MonitorOption func(*Monitor)

// WithInterval sets the polling interval.
func WithInterval(d time.Duration) MonitorOption {
	return func(m *Monitor) {
		m.interval = d
	}
}

// NewMonitor creates a monitor over provider polling every 2 seconds.
func NewMonitor(provider Provider, opts ...MonitorOption) *Monitor {
	m := &Monitor{
		provider: provider,
		interval: constants.DevicePollInterval,
		known:    make(map[string]Device),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// OnChange registers fn for every presence change. Handlers run on the
// polling goroutine.
func (m *Monitor) OnChange(fn func(Event)) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	m.handlers = append(m.handlers, fn)
	m.mu.Unlock()
}

// Devices returns the devices seen by the last poll, in discovery order.
func (m *Monitor) Devices() []Device {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Device, 0, len(m.order))
	for _, path := range m.order {
		out = append(out, m.known[path])
	}
	return out
}

// Primary returns the first known device.
func (m *Monitor) Primary() (Device, bool) {
	devices := m.Devices()
	if len(devices) == 0 {
		return Device{}, false
	}
	return devices[0], true
}

// Poll checks the provider once, updates the known set and notifies handlers.
func (m *Monitor) Poll(ctx context.Context) ([]Event, error) {
	current, err := m.provider.Removable(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	seen := make(map[string]Device, len(current))
	order := make([]string, 0, len(current))
	var events []Event
	for _, d := range current {
		if _, dup := seen[d.Path]; dup {
			continue
		}
		seen[d.Path] = d
		order = append(order, d.Path)
		if _, ok := m.known[d.Path]; !ok {
			events = append(events, Event{Type: Connected, Device: d})
		}
	}
	for _, path := range m.order {
		if _, ok := seen[path]; !ok {
			events = append(events, Event{Type: Disconnected, Device: m.known[path]})
		}
	}
	m.known = seen
	m.order = order
	handlers := make([]func(Event), len(m.handlers))
	copy(handlers, m.handlers)
	m.mu.Unlock()

	logger := logging.FromContext(ctx)
	for _, ev := range events {
		logger.Info().Str("device", ev.Device.Path).Str("event", ev.Type.String()).Msg("Device presence changed")
		for _, fn := range handlers {
			fn(ev)
		}
	}
	return events, nil
}

// Start polls once immediately and then on every tick until Stop or ctx ends.
func (m *Monitor) Start(ctx context.Context) error {
	if m.interval <= 0 {
		return &errors.ValidationError{
			Field:   "interval",
			Value:   m.interval,
			Message: "poll interval must be positive",
		}
	}

	m.Stop()

	m.mu.Lock()
	m.stopCh = make(chan struct{})
	m.done = make(chan struct{})
	m.ticker = time.NewTicker(m.interval)
	pollCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	ticker, stopCh, done := m.ticker, m.stopCh, m.done
	m.mu.Unlock()

	go func() {
		defer close(done)
		m.pollLogged(pollCtx)
		for {
			select {
			case <-ticker.C:
				m.pollLogged(pollCtx)
			case <-pollCtx.Done():
				return
			case <-stopCh:
				return
			}
		}
	}()
	return nil
}

// Stop ends polling and waits for the goroutine to exit. Safe to call twice,
// but not from a change handler.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if m.ticker != nil {
		m.ticker.Stop()
		m.ticker = nil
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.stopCh != nil {
		select {
		case <-m.stopCh:
		default:
			close(m.stopCh)
		}
	}
	done := m.done
	m.mu.Unlock()

	if done != nil {
		<-done
	}
}

func (m *Monitor) pollLogged(ctx context.Context) {
	if _, err := m.Poll(ctx); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return
		}
		logging.FromContext(ctx).Warn().Err(err).Msg("Device poll failed")
	}
}
