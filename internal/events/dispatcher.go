package events

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Dispatcher fans events out to the listeners of their category,
// synchronously and on the emitting goroutine.
//
// Registry slices are copy-on-write: every mutation installs a fresh slice,
// so the slice Emit captures under the lock is an immutable snapshot and
// listeners may subscribe, unsubscribe or emit from inside a delivery.
type Dispatcher struct {
	mu        sync.Mutex
	listeners map[Category][]*Listener

	debug   bool
	log     zerolog.Logger
	metrics *Metrics
	now     func() time.Time
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(l zerolog.Logger) Option { return func(d *Dispatcher) { d.log = l } }

// WithMetrics attaches prometheus collectors.
func WithMetrics(m *Metrics) Option { return func(d *Dispatcher) { d.metrics = m } }

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// New returns an empty dispatcher. debug only enables diagnostic logging; it
// never changes dispatch behavior.
func New(debug bool, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		listeners: make(map[Category][]*Listener),
		debug:     debug,
		log:       zerolog.Nop(),
		now:       time.Now,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Subscribe registers l under cat. Subscribing the same listener twice to
// the same category is a no-op.
func (d *Dispatcher) Subscribe(cat Category, l *Listener) {
	if !l.valid() {
		return
	}
	d.mu.Lock()
	cur := d.listeners[cat]
	if indexOf(cur, l) >= 0 {
		d.mu.Unlock()
		return
	}
	next := make([]*Listener, len(cur), len(cur)+1)
	copy(next, cur)
	next = append(next, l)
	d.listeners[cat] = next
	d.metrics.addListeners(cat, 1)
	d.mu.Unlock()

	if d.debug {
		d.log.Debug().Str("category", string(cat)).Str("listener", l.id).Msg("added listener")
	}
}

// On wraps fn in a new Listener, subscribes it and returns the handle.
func (d *Dispatcher) On(cat Category, fn Handler) *Listener {
	l := NewListener(fn)
	d.Subscribe(cat, l)
	return l
}

// Unsubscribe removes l from cat. Unknown categories and absent listeners
// are ignored.
func (d *Dispatcher) Unsubscribe(cat Category, l *Listener) {
	if l == nil {
		return
	}
	d.mu.Lock()
	cur := d.listeners[cat]
	i := indexOf(cur, l)
	if i < 0 {
		d.mu.Unlock()
		return
	}
	if len(cur) == 1 {
		delete(d.listeners, cat)
	} else {
		next := make([]*Listener, 0, len(cur)-1)
		next = append(next, cur[:i]...)
		next = append(next, cur[i+1:]...)
		d.listeners[cat] = next
	}
	d.metrics.addListeners(cat, -1)
	d.mu.Unlock()

	if d.debug {
		d.log.Debug().Str("category", string(cat)).Str("listener", l.id).Msg("removed listener")
	}
}

// SubscribeOnce registers a wrapper that invokes l for the first event of cat
// and then removes itself. l fires at most once per call, including under
// re-entrant or concurrent emits. The returned wrapper can be passed to
// Unsubscribe to cancel before it fires.
func (d *Dispatcher) SubscribeOnce(cat Category, l *Listener) *Listener {
	if !l.valid() {
		return nil
	}
	var fired atomic.Bool
	var wrapper *Listener
	wrapper = NewListener(func(e Event) {
		if !fired.CompareAndSwap(false, true) {
			return
		}
		defer d.Unsubscribe(cat, wrapper)
		l.fn(e)
	})
	d.Subscribe(cat, wrapper)
	return wrapper
}

// Emit delivers payload to every listener registered for cat when Emit is
// called, in subscription order. A panicking listener is recovered and does
// not stop delivery to the others.
func (d *Dispatcher) Emit(cat Category, payload any) {
	ev := Event{Category: cat, Payload: payload, Timestamp: d.now().UnixMilli()}

	d.mu.Lock()
	snapshot := d.listeners[cat]
	d.mu.Unlock()

	d.metrics.observeEmit(cat)
	if len(snapshot) == 0 {
		if d.debug {
			d.log.Debug().Str("category", string(cat)).Msg("no listeners")
		}
		return
	}
	if d.debug {
		d.log.Debug().Str("category", string(cat)).Int("listeners", len(snapshot)).Msg("emitting")
	}
	for _, l := range snapshot {
		err := d.invoke(l, ev)
		d.metrics.observeDelivery(cat, err != nil)
		if err != nil && d.debug {
			d.log.Error().Err(err).Str("category", string(cat)).Str("listener", l.id).Msg("listener failed")
		}
	}
}

func (d *Dispatcher) invoke(l *Listener, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("listener panic: %w", e)
				return
			}
			err = fmt.Errorf("listener panic: %v", r)
		}
	}()
	l.fn(ev)
	return nil
}

// RemoveAllListeners clears the given categories, or every category when
// called without arguments.
func (d *Dispatcher) RemoveAllListeners(cats ...Category) {
	d.mu.Lock()
	if len(cats) == 0 {
		for cat, ls := range d.listeners {
			d.metrics.addListeners(cat, -len(ls))
		}
		d.listeners = make(map[Category][]*Listener)
	} else {
		for _, cat := range cats {
			ls, ok := d.listeners[cat]
			if !ok {
				continue
			}
			delete(d.listeners, cat)
			d.metrics.addListeners(cat, -len(ls))
		}
	}
	d.mu.Unlock()

	if d.debug {
		if len(cats) == 0 {
			d.log.Debug().Msg("removed all listeners")
		} else {
			d.log.Debug().Interface("categories", cats).Msg("removed all listeners")
		}
	}
}

// ListenerCount returns the number of active listeners for cat.
func (d *Dispatcher) ListenerCount(cat Category) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners[cat])
}

// HasListeners reports whether cat has at least one listener.
func (d *Dispatcher) HasListeners(cat Category) bool {
	return d.ListenerCount(cat) > 0
}

// ActiveCategories returns the categories that currently have listeners,
// sorted by name.
func (d *Dispatcher) ActiveCategories() []Category {
	d.mu.Lock()
	out := make([]Category, 0, len(d.listeners))
	for cat, ls := range d.listeners {
		if len(ls) > 0 {
			out = append(out, cat)
		}
	}
	d.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func indexOf(ls []*Listener, l *Listener) int {
	for i, x := range ls {
		if x == l {
			return i
		}
	}
	return -1
}
