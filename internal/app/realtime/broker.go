package realtime

import (
	"context"
	"sync"
)

// Unsubscribe cancels a subscription; calling it more than once is safe
type Unsubscribe func()

// Broker fans events out to subscribers
type Broker interface {
	Publish(ctx context.Context, e Event) error
	Subscribe(filter Filter, onEvent func(Event)) Unsubscribe
}

type subscription struct {
	filter  Filter
	onEvent func(Event)
}

// MemoryBroker dispatches synchronously within the process
type MemoryBroker struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]subscription

	// OnCountChange observes the subscriber count, e.g. for a gauge
	OnCountChange func(n int)
}

// NewMemoryBroker creates an empty broker
func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[int]subscription)}
}

// Publish delivers e to every matching subscriber. Handlers run outside the lock.
func (b *MemoryBroker) Publish(_ context.Context, e Event) error {
	b.mu.RLock()
	matched := make([]func(Event), 0, len(b.subs))
	for _, s := range b.subs {
		if s.filter.Match(e) {
			matched = append(matched, s.onEvent)
		}
	}
	b.mu.RUnlock()

	for _, fn := range matched {
		fn(e)
	}
	return nil
}

// Subscribe registers onEvent for events matching filter
func (b *MemoryBroker) Subscribe(filter Filter, onEvent func(Event)) Unsubscribe {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[id] = subscription{filter: filter, onEvent: onEvent}
	n := len(b.subs)
	b.mu.Unlock()
	b.countChanged(n)

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			n := len(b.subs)
			b.mu.Unlock()
			b.countChanged(n)
		})
	}
}

// Len returns the number of live subscriptions
func (b *MemoryBroker) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func (b *MemoryBroker) countChanged(n int) {
	if b.OnCountChange != nil {
		b.OnCountChange(n)
	}
}
