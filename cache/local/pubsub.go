package local

import (
	"context"
	"sync"
)

// LocalMessage is an in-process pub/sub message.
type LocalMessage struct {
	Channel string
	Payload string
}

// LocalPubSub fans messages out to in-process subscribers. The data
// access layer publishes one notification per committed mutation and the
// live queries subscribe per entity channel. Delivery is best-effort: a
// subscriber that stops draining loses messages rather than blocking
// the publisher.
type LocalPubSub struct {
	mu      sync.RWMutex
	subs    map[string]map[int]chan *LocalMessage
	nextID  int
	bufSize int
}

// NewPubSub creates a LocalPubSub with the given per-subscriber buffer.
func NewPubSub(bufSize int) *LocalPubSub {
	if bufSize <= 0 {
		bufSize = 64
	}
	return &LocalPubSub{
		subs:    make(map[string]map[int]chan *LocalMessage),
		bufSize: bufSize,
	}
}

// Publish delivers the message to every current subscriber of channel.
func (ps *LocalPubSub) Publish(_ context.Context, channel, message string) error {
	msg := &LocalMessage{Channel: channel, Payload: message}
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	for _, ch := range ps.subs[channel] {
		select {
		case ch <- msg:
		default:
			// Subscriber buffer full; drop rather than block the mutation path.
		}
	}
	return nil
}

// Subscribe registers interest in one or more channels. The returned
// cancel function removes the registration and closes the message
// channel; it must be called exactly once.
func (ps *LocalPubSub) Subscribe(_ context.Context, channels ...string) (<-chan *LocalMessage, func(), error) {
	ch := make(chan *LocalMessage, ps.bufSize)

	ps.mu.Lock()
	id := ps.nextID
	ps.nextID++
	for _, name := range channels {
		if ps.subs[name] == nil {
			ps.subs[name] = make(map[int]chan *LocalMessage)
		}
		ps.subs[name][id] = ch
	}
	ps.mu.Unlock()

	cancel := func() {
		ps.mu.Lock()
		defer ps.mu.Unlock()
		for _, name := range channels {
			delete(ps.subs[name], id)
			if len(ps.subs[name]) == 0 {
				delete(ps.subs, name)
			}
		}
		close(ch)
	}
	return ch, cancel, nil
}
