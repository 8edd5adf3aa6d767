package events

import (
	"sync"

	"github.com/sirupsen/logrus"
)

const subscriberBuffer = 16

// Dispatcher is what writers depend on.
type Dispatcher interface {
	Dispatch(vendorID uint, event Event)
}

// Bus fans events out to the subscribers of one vendor. A subscriber that falls
// behind loses events instead of blocking the writer.
type Bus struct {
	mu     sync.RWMutex
	subs   map[uint]map[chan Event]struct{}
	closed bool
}

func NewBus() *Bus {
	return &Bus{subs: make(map[uint]map[chan Event]struct{})}
}

// Subscribe registers a listener for vendorID. The returned cancel func must be
// called once the listener is done; it closes the channel.
func (b *Bus) Subscribe(vendorID uint) (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	if b.subs[vendorID] == nil {
		b.subs[vendorID] = make(map[chan Event]struct{})
	}
	b.subs[vendorID][ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[vendorID][ch]; !ok {
				return
			}
			delete(b.subs[vendorID], ch)
			if len(b.subs[vendorID]) == 0 {
				delete(b.subs, vendorID)
			}
			close(ch)
		})
	}
	return ch, cancel
}

func (b *Bus) Dispatch(vendorID uint, event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs[vendorID] {
		select {
		case ch <- event:
		default:
			logrus.WithFields(logrus.Fields{"vendor_id": vendorID, "event": event.Type()}).
				Warn("subscriber is full, dropping event")
		}
	}
}

// Subscribers returns the number of live subscriptions for vendorID.
func (b *Bus) Subscribers(vendorID uint) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[vendorID])
}

// Close ends every subscription.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for vendorID, set := range b.subs {
		for ch := range set {
			close(ch)
		}
		delete(b.subs, vendorID)
	}
}
