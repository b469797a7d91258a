package fakeapi

import (
	"sync"
)

// Subscription receives batches published to a Broker
type Subscription[T any] struct {
	ID      string
	Batches chan []T
	Done    chan struct{}
}

// Broker fans batches out to every subscribed stream client. It keeps the
// last bufferLimit items and replays them as one batch to new subscribers.
type Broker[T any] struct {
	clients     map[string]*Subscription[T]
	buffer      []T
	bufferLimit int
	mu          sync.RWMutex
}

// NewBroker creates a broker. A bufferLimit of 0 disables replay.
func NewBroker[T any](bufferLimit int) *Broker[T] {
	return &Broker[T]{
		clients:     make(map[string]*Subscription[T]),
		buffer:      make([]T, 0, bufferLimit),
		bufferLimit: bufferLimit,
	}
}

// Subscribe registers a client. Buffered items are queued as the first batch.
func (b *Broker[T]) Subscribe(clientID string) *Subscription[T] {
	sub := &Subscription[T]{
		ID:      clientID,
		Batches: make(chan []T, 100),
		Done:    make(chan struct{}),
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.buffer) > 0 {
		replay := make([]T, len(b.buffer))
		copy(replay, b.buffer)
		sub.Batches <- replay
	}

	b.clients[clientID] = sub
	return sub
}

// Unsubscribe removes a client
func (b *Broker[T]) Unsubscribe(clientID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub, ok := b.clients[clientID]; ok {
		close(sub.Done)
		delete(b.clients, clientID)
	}
}

// Publish sends one batch to all subscribed clients
func (b *Broker[T]) Publish(batch ...T) {
	if len(batch) == 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.bufferLimit > 0 {
		b.buffer = append(b.buffer, batch...)
		if over := len(b.buffer) - b.bufferLimit; over > 0 {
			b.buffer = b.buffer[over:]
		}
	}

	for _, sub := range b.clients {
		select {
		case sub.Batches <- batch:
		default:
			// Client channel full, skip
		}
	}
}

// Subscribers returns the number of connected clients
func (b *Broker[T]) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// Disconnect drops every client, ending their streams
func (b *Broker[T]) Disconnect() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, sub := range b.clients {
		close(sub.Done)
		delete(b.clients, id)
	}
}
