package pubsub

type EventType int

const (
	EventTypeSessionInvalidated EventType = iota
	EventTypeNewSession
	EventTypeNewPost
	EventTypeNewComment
	EventTypeReaction
	EventTypeNewMessage
	EventTypeProfileUpdate
	EventTypeDemoMode
)

type Event struct {
	Type   EventType              `json:"type"`
	Params map[string]interface{} `json:"params"`
}

func NewSessionInvalidatedEvent(reason string) Event {
	return Event{
		Type:   EventTypeSessionInvalidated,
		Params: map[string]interface{}{"reason": reason},
	}
}

func NewSessionEvent(id int, name string) Event {
	return Event{
		Type:   EventTypeNewSession,
		Params: map[string]interface{}{"id": id, "name": name},
	}
}

func NewPostEvent(user int, post string) Event {
	return Event{
		Type:   EventTypeNewPost,
		Params: map[string]interface{}{"id": user, "post": post},
	}
}

func NewCommentEvent(user int, post string) Event {
	return Event{
		Type:   EventTypeNewComment,
		Params: map[string]interface{}{"id": user, "post": post},
	}
}

func NewReactionEvent(user int, post, kind string) Event {
	return Event{
		Type:   EventTypeReaction,
		Params: map[string]interface{}{"id": user, "post": post, "kind": kind},
	}
}

func NewMessageEvent(user, recipient int) Event {
	return Event{
		Type:   EventTypeNewMessage,
		Params: map[string]interface{}{"id": user, "recipient": recipient},
	}
}

func NewProfileUpdateEvent(user int) Event {
	return Event{
		Type:   EventTypeProfileUpdate,
		Params: map[string]interface{}{"id": user},
	}
}

func NewDemoModeEvent(name string) Event {
	return Event{
		Type:   EventTypeDemoMode,
		Params: map[string]interface{}{"name": name},
	}
}
