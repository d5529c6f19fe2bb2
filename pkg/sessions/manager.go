// Package sessions holds the current user identity and bearer token,
// persisting both across restarts.
package sessions

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/socialsphere/socialsphere/pkg/api"
	"github.com/socialsphere/socialsphere/pkg/pubsub"
	"github.com/socialsphere/socialsphere/pkg/users"
)

// Fixed storage keys, stable across versions so sessions survive upgrades.
const (
	userKey  = "socialsphere_user"
	tokenKey = "socialsphere_token"
)

// DemoToken marks a local-only session that never touches the server.
const DemoToken = "demo-token"

// ErrNoSession is returned when an operation requires an active session.
var ErrNoSession = errors.New("no active session")

// Client is the slice of the API the session holder needs.
type Client interface {
	Login(ctx context.Context, email, password string) (*api.Session, error)
	Register(ctx context.Context, name, email, password string) (*api.Session, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*users.User, error)
	UpdateProfile(ctx context.Context, update users.Update) (*users.User, error)
}

// Manager tracks the current identity and credential. It reacts to
// session-invalidated events by clearing the session and invoking the
// configured handler.
type Manager struct {
	sync.Mutex

	rdb    *redis.Client
	client Client
	queue  *pubsub.Queue

	user  *users.User
	token string

	onInvalidated func(reason string)
}

// NewManager creates a session manager and restores any persisted session.
func NewManager(rdb *redis.Client, client Client, queue *pubsub.Queue) *Manager {
	m := &Manager{
		rdb:    rdb,
		client: client,
		queue:  queue,
	}

	m.restore()

	return m
}

// OnInvalidated sets the handler invoked after a forced session teardown,
// typically a redirect to the login entry point.
func (m *Manager) OnInvalidated(handler func(reason string)) {
	m.Lock()
	defer m.Unlock()
	m.onInvalidated = handler
}

// Start listens for session-invalidated events until the queue closes.
func (m *Manager) Start() {
	if m.queue == nil {
		return
	}

	events := m.queue.Subscribe()

	go func() {
		for event := range events {
			if event.Type != pubsub.EventTypeSessionInvalidated {
				continue
			}

			reason, _ := event.Params["reason"].(string)
			m.Clear()

			m.Lock()
			handler := m.onInvalidated
			m.Unlock()

			if handler != nil {
				handler(reason)
			}
		}
	}()
}

// User returns the current user, if a session is active.
func (m *Manager) User() (users.User, bool) {
	m.Lock()
	defer m.Unlock()

	if m.user == nil {
		return users.User{}, false
	}

	return *m.user, true
}

// Token returns the current bearer token, empty when logged out. Satisfies
// api.TokenSource.
func (m *Manager) Token() string {
	m.Lock()
	defer m.Unlock()

	return m.token
}

// IsDemo reports whether the session is a local-only demo session.
func (m *Manager) IsDemo() bool {
	m.Lock()
	defer m.Unlock()

	return m.token == DemoToken
}

// Login authenticates against the server and persists the session.
func (m *Manager) Login(ctx context.Context, email, password string) (*users.User, error) {
	session, err := m.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	m.set(session.User, session.Token)

	if m.queue != nil {
		m.queue.Publish(pubsub.NewSessionEvent(session.User.ID, session.User.Name))
	}

	return &session.User, nil
}

// Register creates an account. When the server is unreachable it falls back
// to a local demo session so the product stays usable without a backend.
func (m *Manager) Register(ctx context.Context, name, email, password string) (*users.User, error) {
	session, err := m.client.Register(ctx, name, email, password)
	if err != nil {
		if api.IsTransport(err) {
			user := m.EnterDemoMode(name, email)
			return &user, nil
		}

		return nil, err
	}

	m.set(session.User, session.Token)

	if m.queue != nil {
		m.queue.Publish(pubsub.NewSessionEvent(session.User.ID, session.User.Name))
	}

	return &session.User, nil
}

// EnterDemoMode manufactures a local-only identity without any server round
// trip.
func (m *Manager) EnterDemoMode(name, email string) users.User {
	user := buildDemoUser(name, email)

	m.set(user, DemoToken)

	if m.queue != nil {
		m.queue.Publish(pubsub.NewDemoModeEvent(user.Name))
	}

	return user
}

// Logout ends the session. The server call is best effort; local state is
// cleared regardless.
func (m *Manager) Logout(ctx context.Context) {
	m.Lock()
	token := m.token
	m.Unlock()

	if token != "" && token != DemoToken {
		if err := m.client.Logout(ctx); err != nil {
			log.Printf("logout request failed: %v", err)
		}
	}

	m.Clear()
}

// Refresh re-fetches the profile for a persisted non-demo session.
func (m *Manager) Refresh(ctx context.Context) error {
	m.Lock()
	token := m.token
	m.Unlock()

	if token == "" {
		return ErrNoSession
	}

	if token == DemoToken {
		return nil
	}

	user, err := m.client.Me(ctx)
	if err != nil {
		return errors.Wrap(err, "refresh session")
	}

	m.set(*user, token)

	return nil
}

// UpdateProfile pushes profile changes and merges the result into the
// current user.
func (m *Manager) UpdateProfile(ctx context.Context, update users.Update) (*users.User, error) {
	m.Lock()
	if m.user == nil {
		m.Unlock()
		return nil, ErrNoSession
	}
	current := *m.user
	token := m.token
	m.Unlock()

	if token == DemoToken {
		update.Apply(&current)
		m.set(current, token)
		return &current, nil
	}

	updated, err := m.client.UpdateProfile(ctx, update)
	if err != nil {
		return nil, err
	}

	m.set(*updated, token)

	if m.queue != nil {
		m.queue.Publish(pubsub.NewProfileUpdateEvent(updated.ID))
	}

	return updated, nil
}

// Clear drops the session locally and removes the persisted copy.
func (m *Manager) Clear() {
	m.Lock()
	defer m.Unlock()

	m.user = nil
	m.token = ""

	if m.rdb != nil {
		m.rdb.Del(m.rdb.Context(), userKey, tokenKey)
	}
}

func (m *Manager) set(user users.User, token string) {
	m.Lock()
	defer m.Unlock()

	m.user = &user
	m.token = token

	if m.rdb == nil {
		return
	}

	data, err := json.Marshal(user)
	if err != nil {
		log.Printf("failed to encode session user: %v", err)
		return
	}

	if err := m.rdb.Set(m.rdb.Context(), userKey, string(data), 0).Err(); err != nil {
		log.Printf("failed to persist session user: %v", err)
	}

	if err := m.rdb.Set(m.rdb.Context(), tokenKey, token, 0).Err(); err != nil {
		log.Printf("failed to persist session token: %v", err)
	}
}

func (m *Manager) restore() {
	if m.rdb == nil {
		return
	}

	token, err := m.rdb.Get(m.rdb.Context(), tokenKey).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("failed to restore session token: %v", err)
		}
		return
	}

	data, err := m.rdb.Get(m.rdb.Context(), userKey).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("failed to restore session user: %v", err)
		}
		return
	}

	user := &users.User{}
	if err := json.Unmarshal([]byte(data), user); err != nil {
		log.Printf("failed to decode session user: %v", err)
		return
	}

	m.user = user
	m.token = token
}

func buildDemoUser(name, email string) users.User {
	if name == "" && email != "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	if name == "" {
		name = "Product Explorer"
	}

	if email == "" {
		email = "demo@social.app"
	}

	return users.User{
		Name:     name,
		Email:    email,
		Headline: "Exploring SocialSphere",
	}
}
