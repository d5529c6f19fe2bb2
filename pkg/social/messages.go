package social

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"

	"github.com/socialsphere/socialsphere/pkg/pubsub"
	"github.com/socialsphere/socialsphere/pkg/users"
)

// FetchMessages retrieves messages created after the current cursor and
// merges them into the store. The merge is an idempotent upsert keyed by
// message id, preserving optimistic entries the server has not confirmed,
// and re-sorts the list ascending by creation time.
func (s *Store) FetchMessages(ctx context.Context) {
	s.Lock()
	since := s.messagesCursor
	s.Unlock()

	incoming, err := s.client.ListMessages(ctx, since)

	s.Lock()
	defer s.Unlock()

	if err != nil {
		log.Printf("message fetch failed, serving fallback: %v", err)
		s.messages = make([]Message, 0)
		return
	}

	merged := make(map[string]Message, len(s.messages)+len(incoming))
	for _, message := range s.messages {
		merged[message.ID] = message
	}

	for _, message := range incoming {
		if message.Sender == (users.User{}) {
			message.Sender = users.User{Name: "Teammate", Avatar: "https://i.pravatar.cc/100?img=32"}
		}
		message.Time = formatClock(message.CreatedAt)
		merged[message.ID] = message
	}

	next := make([]Message, 0, len(merged))
	for _, message := range merged {
		next = append(next, message)
	}

	sort.SliceStable(next, func(i, j int) bool {
		return next[i].CreatedAt.Before(next[j].CreatedAt)
	})

	s.messages = next
	if len(next) > 0 {
		s.messagesCursor = next[len(next)-1].CreatedAt
	}
}

// SendMessage prepends an optimistic message and issues the send. On success
// the optimistic entry is replaced, matched by its temporary id; on failure
// it is removed and the error returned.
func (s *Store) SendMessage(ctx context.Context, recipient users.User, body string) error {
	timestamp := time.Now()
	temp := uuid.NewString()

	s.Lock()
	sender := s.viewerOrSample()
	optimistic := Message{
		ID:          temp,
		Sender:      sender,
		Recipient:   recipient,
		RecipientID: recipient.ID,
		Body:        body,
		CreatedAt:   timestamp,
		Time:        formatClock(timestamp),
	}
	s.messages = append([]Message{optimistic}, s.messages...)
	s.Unlock()

	saved, err := s.client.SendMessage(ctx, recipient.ID, body)

	s.Lock()
	defer s.Unlock()

	if err != nil {
		result := make([]Message, 0, len(s.messages))
		for _, message := range s.messages {
			if message.ID == temp {
				continue
			}

			result = append(result, message)
		}
		s.messages = result

		return errors.Wrap(err, "send message")
	}

	confirmed := *saved
	if confirmed.Sender == (users.User{}) {
		confirmed.Sender = sender
	}
	if confirmed.Recipient == (users.User{}) {
		confirmed.Recipient = recipient
	}
	confirmed.Time = formatClock(confirmed.CreatedAt)

	for i := range s.messages {
		if s.messages[i].ID == temp {
			s.messages[i] = confirmed
			break
		}
	}

	s.publish(pubsub.NewMessageEvent(sender.ID, recipient.ID))

	return nil
}

// StartConversation seeds a local connect message from the target unless one
// already exists, and returns the conversation key.
func (s *Store) StartConversation(target users.User) string {
	if target == (users.User{}) {
		return ""
	}

	s.Lock()
	defer s.Unlock()

	viewer := s.viewerOrSample()

	for _, message := range s.messages {
		if message.Sender.ID == target.ID && message.Recipient.ID == viewer.ID {
			return ConversationKey(target)
		}
	}

	stamp := time.Now()
	s.messages = append([]Message{{
		ID:          ksuid.New().String(),
		Sender:      target,
		Recipient:   viewer,
		RecipientID: viewer.ID,
		Body:        "You connected with " + target.Name + ".",
		CreatedAt:   stamp,
		Time:        formatClock(stamp),
	}}, s.messages...)

	return ConversationKey(target)
}

// SetActiveConversation marks a conversation active and advances its
// last-read mark when a last-seen time is provided.
func (s *Store) SetActiveConversation(id string, lastSeenAt time.Time) {
	s.Lock()
	defer s.Unlock()

	s.activeConversation = id
	if id != "" && !lastSeenAt.IsZero() {
		s.conversationReads[id] = lastSeenAt
	}
}

// ActiveConversation returns the currently active conversation key.
func (s *Store) ActiveConversation() string {
	s.Lock()
	defer s.Unlock()

	return s.activeConversation
}

// Conversations derives conversations from the flat message list, grouping
// by the participant who is not the viewer. Messages within a conversation
// are sorted ascending by creation time; the unread count is the number of
// incoming messages strictly after the conversation's last-read mark, or all
// incoming messages when it was never read. Conversations are ordered by
// their latest message, newest first.
func (s *Store) Conversations() []Conversation {
	s.Lock()
	defer s.Unlock()

	viewer := s.viewerOrSample()

	grouped := make(map[string]*Conversation)
	order := make([]string, 0)

	for _, message := range s.messages {
		counterpart := message.Sender
		if message.Sender.ID == viewer.ID {
			counterpart = message.Recipient
		}

		key := ConversationKey(counterpart)
		conversation, ok := grouped[key]
		if !ok {
			conversation = &Conversation{
				ID:          key,
				Counterpart: counterpart,
				Messages:    make([]Message, 0),
				LastReadAt:  s.conversationReads[key],
			}
			grouped[key] = conversation
			order = append(order, key)
		}

		conversation.Messages = append(conversation.Messages, message)
	}

	result := make([]Conversation, 0, len(grouped))
	for _, key := range order {
		conversation := grouped[key]

		sort.SliceStable(conversation.Messages, func(i, j int) bool {
			return conversation.Messages[i].CreatedAt.Before(conversation.Messages[j].CreatedAt)
		})

		for _, message := range conversation.Messages {
			if message.Sender.ID == viewer.ID {
				continue
			}

			if conversation.LastReadAt.IsZero() || message.CreatedAt.After(conversation.LastReadAt) {
				conversation.Unread++
			}
		}

		result = append(result, *conversation)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return latestMessageTime(result[i]).After(latestMessageTime(result[j]))
	})

	return result
}

func latestMessageTime(conversation Conversation) time.Time {
	if len(conversation.Messages) == 0 {
		return time.Time{}
	}

	return conversation.Messages[len(conversation.Messages)-1].CreatedAt
}
