// Package tracking forwards client events to analytics backends.
package tracking

import (
	"log"

	"github.com/socialsphere/socialsphere/pkg/pubsub"
)

// Tracker is a interface for tracking Events
type Tracker interface {

	// CanTrack reports whether the tracker handles this event.
	CanTrack(event *pubsub.Event) bool

	// Track tracks an event, returns an error if failed.
	Track(event *pubsub.Event) error
}

// Start consumes events from the queue and fans them out to the trackers
// until the queue is closed.
func Start(queue *pubsub.Queue, trackers ...Tracker) {
	events := queue.Subscribe()

	go func() {
		for event := range events {
			for _, tracker := range trackers {
				if !tracker.CanTrack(&event) {
					continue
				}

				if err := tracker.Track(&event); err != nil {
					log.Printf("tracker.Track err: %v", err)
				}
			}
		}
	}()
}
