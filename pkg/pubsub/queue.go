// Package pubsub broadcasts client events to in-process subscribers.
package pubsub

import "sync"

type Queue struct {
	sync.Mutex

	subscribers []chan Event
	closed      bool
}

// NewQueue creates a new event Queue.
func NewQueue() *Queue {
	return &Queue{
		subscribers: make([]chan Event, 0),
	}
}

// Publish an Event to all subscribers. Slow subscribers drop events rather
// than blocking the publisher.
func (q *Queue) Publish(event Event) {
	q.Lock()
	defer q.Unlock()

	if q.closed {
		return
	}

	for _, sub := range q.subscribers {
		select {
		case sub <- event:
		default:
		}
	}
}

// Subscribe returns a channel receiving all subsequently published events.
func (q *Queue) Subscribe() <-chan Event {
	q.Lock()
	defer q.Unlock()

	c := make(chan Event, 100)
	q.subscribers = append(q.subscribers, c)

	return c
}

// Close shuts down all subscriber channels.
func (q *Queue) Close() {
	q.Lock()
	defer q.Unlock()

	if q.closed {
		return
	}

	q.closed = true
	for _, sub := range q.subscribers {
		close(sub)
	}
}
