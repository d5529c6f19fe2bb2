// Package social contains the client-side data store for the SocialSphere
// feed, stories, notifications and direct messages. The store applies user
// actions optimistically and reconciles them with server responses, rolling
// back on failure.
package social

import (
	"context"
	"sync"
	"time"

	"github.com/socialsphere/socialsphere/pkg/pubsub"
	"github.com/socialsphere/socialsphere/pkg/users"
)

const defaultPageSize = 20

// RemoteClient issues the API requests backing store operations.
type RemoteClient interface {
	ListPosts(ctx context.Context, limit int, cursor string) ([]Post, error)
	CreatePost(ctx context.Context, content, media string) (*Post, error)
	AddComment(ctx context.Context, post, text string) (*Comment, error)
	ToggleReaction(ctx context.Context, post string, kind ReactionKind) (*Post, error)
	ListNotifications(ctx context.Context) ([]Notification, error)
	MarkNotificationRead(ctx context.Context, notification string) error
	ListMessages(ctx context.Context, since time.Time) ([]Message, error)
	SendMessage(ctx context.Context, recipient int, body string) (*Message, error)
}

// Config tunes store behaviour.
type Config struct {
	// PageSize is the feed page size requested per fetch.
	PageSize int

	// Offline skips the network entirely and serves seed data.
	Offline bool
}

// Store is the single source of truth for the client's social state. All
// state transitions happen under the mutex; network calls run unlocked so
// optimistic state is visible immediately.
type Store struct {
	sync.Mutex

	client RemoteClient
	queue  *pubsub.Queue
	cache  *CacheStorage

	pageSize int
	offline  bool

	viewer users.User

	feed        []Post
	searchTerm  string
	feedCursor  string
	hasMoreFeed bool
	loadingFeed bool

	stories       []Story
	notifications []Notification
	trends        []Trend

	messages           []Message
	messagesCursor     time.Time
	activeConversation string
	conversationReads  map[string]time.Time
}

// NewStore creates a store. The cache may be nil, in which case reads degrade
// straight to seed data.
func NewStore(client RemoteClient, queue *pubsub.Queue, cache *CacheStorage, config Config) *Store {
	pageSize := config.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	seeded := make([]Post, 0)
	for _, post := range seedPosts() {
		seeded = append(seeded, normalizePost(post))
	}

	return &Store{
		client:            client,
		queue:             queue,
		cache:             cache,
		pageSize:          pageSize,
		offline:           config.Offline,
		feed:              seeded,
		hasMoreFeed:       true,
		stories:           seedStories(),
		notifications:     seedNotifications(),
		trends:            seedTrends(),
		messages:          make([]Message, 0),
		conversationReads: make(map[string]time.Time),
	}
}

// SetViewer sets the identity used for optimistic authorship, conversation
// grouping and cache keys.
func (s *Store) SetViewer(user users.User) {
	s.Lock()
	defer s.Unlock()
	s.viewer = user
}

// SetOffline toggles offline mode.
func (s *Store) SetOffline(offline bool) {
	s.Lock()
	defer s.Unlock()
	s.offline = offline
}

// Feed returns a copy of the current feed.
func (s *Store) Feed() []Post {
	s.Lock()
	defer s.Unlock()

	return append([]Post(nil), s.feed...)
}

// Stories returns a copy of the current stories.
func (s *Store) Stories() []Story {
	s.Lock()
	defer s.Unlock()

	return append([]Story(nil), s.stories...)
}

// Notifications returns a copy of the current notifications.
func (s *Store) Notifications() []Notification {
	s.Lock()
	defer s.Unlock()

	return append([]Notification(nil), s.notifications...)
}

// Messages returns a copy of the flat message list.
func (s *Store) Messages() []Message {
	s.Lock()
	defer s.Unlock()

	return append([]Message(nil), s.messages...)
}

// Trends returns the current trending topics.
func (s *Store) Trends() []Trend {
	s.Lock()
	defer s.Unlock()

	return append([]Trend(nil), s.trends...)
}

// HasMoreFeed reports whether another feed page may be available.
func (s *Store) HasMoreFeed() bool {
	s.Lock()
	defer s.Unlock()

	return s.hasMoreFeed
}

// FeedCursor returns the pagination cursor after the last fetched page.
func (s *Store) FeedCursor() string {
	s.Lock()
	defer s.Unlock()

	return s.feedCursor
}

func (s *Store) viewerOrSample() users.User {
	if s.viewer == (users.User{}) {
		return sampleUsers[0]
	}

	return s.viewer
}

func (s *Store) publish(event pubsub.Event) {
	if s.queue == nil {
		return
	}

	s.queue.Publish(event)
}
