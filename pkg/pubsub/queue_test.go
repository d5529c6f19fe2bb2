package pubsub_test

import (
	"testing"
	"time"

	"github.com/socialsphere/socialsphere/pkg/pubsub"
)

func TestQueue_PublishReachesAllSubscribers(t *testing.T) {
	queue := pubsub.NewQueue()

	first := queue.Subscribe()
	second := queue.Subscribe()

	queue.Publish(pubsub.NewPostEvent(1, "p1"))

	for _, events := range []<-chan pubsub.Event{first, second} {
		select {
		case event := <-events:
			if event.Type != pubsub.EventTypeNewPost {
				t.Fatalf("unexpected event type %d", event.Type)
			}

			if event.Params["post"] != "p1" {
				t.Fatalf("unexpected params %v", event.Params)
			}
		case <-time.After(time.Second):
			t.Fatal("event not delivered")
		}
	}
}

func TestQueue_CloseEndsSubscriptions(t *testing.T) {
	queue := pubsub.NewQueue()
	events := queue.Subscribe()

	queue.Close()

	select {
	case _, ok := <-events:
		if ok {
			t.Fatal("expected channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed")
	}

	// Publishing after close is a no-op.
	queue.Publish(pubsub.NewPostEvent(1, "p1"))
}

func TestQueue_SlowSubscriberDoesNotBlockPublish(t *testing.T) {
	queue := pubsub.NewQueue()
	queue.Subscribe()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 500; i++ {
			queue.Publish(pubsub.NewProfileUpdateEvent(i))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher blocked on a slow subscriber")
	}
}
