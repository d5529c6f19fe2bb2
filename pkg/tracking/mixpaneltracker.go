package tracking

import (
	"fmt"
	"strconv"

	"github.com/dukex/mixpanel"

	"github.com/socialsphere/socialsphere/pkg/pubsub"
)

const (
	NewSession    = "new_session"
	NewPost       = "new_post"
	NewComment    = "new_comment"
	PostReaction  = "post_reaction"
	MessageSent   = "message_sent"
	ProfileUpdate = "profile_update"
)

type eventLog struct {
	ID         string
	Name       string
	Properties map[string]interface{}
}

type MixpanelTracker struct {
	client mixpanel.Mixpanel
}

func NewMixpanelTracker(client mixpanel.Mixpanel) *MixpanelTracker {
	return &MixpanelTracker{client: client}
}

func (m *MixpanelTracker) CanTrack(event *pubsub.Event) bool {
	return event.Type != pubsub.EventTypeSessionInvalidated &&
		event.Type != pubsub.EventTypeDemoMode
}

func (m *MixpanelTracker) Track(event *pubsub.Event) error {
	entry := transform(event)
	if entry == nil {
		return fmt.Errorf("invalid type for tracker: %d", event.Type)
	}

	err := m.client.Track(entry.ID, entry.Name, &mixpanel.Event{IP: "0", Properties: entry.Properties})
	if err != nil {
		return err
	}

	if entry.Name == NewSession || entry.Name == ProfileUpdate {
		err := m.client.Update(entry.ID, &mixpanel.Update{
			IP:         "0",
			Operation:  "$set",
			Properties: entry.Properties,
		})

		if err != nil {
			return err
		}
	}

	return nil
}

func transform(event *pubsub.Event) *eventLog {
	id, ok := event.Params["id"].(int)
	if !ok {
		return nil
	}

	entry := &eventLog{ID: strconv.Itoa(id), Properties: map[string]interface{}{"user_id": id}}

	switch event.Type {
	case pubsub.EventTypeNewSession:
		entry.Name = NewSession
		if name, ok := event.Params["name"].(string); ok {
			entry.Properties["name"] = name
		}
	case pubsub.EventTypeNewPost:
		entry.Name = NewPost
		entry.Properties["post"] = event.Params["post"]
	case pubsub.EventTypeNewComment:
		entry.Name = NewComment
		entry.Properties["post"] = event.Params["post"]
	case pubsub.EventTypeReaction:
		entry.Name = PostReaction
		entry.Properties["post"] = event.Params["post"]
		entry.Properties["kind"] = event.Params["kind"]
	case pubsub.EventTypeNewMessage:
		entry.Name = MessageSent
		entry.Properties["recipient"] = event.Params["recipient"]
	case pubsub.EventTypeProfileUpdate:
		entry.Name = ProfileUpdate
	default:
		return nil
	}

	return entry
}
