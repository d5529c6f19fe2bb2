package social_test

import (
	"context"
	"errors"
	"io/ioutil"
	"log"
	"os"
	"testing"
	"time"

	"github.com/socialsphere/socialsphere/pkg/social"
)

func TestMain(m *testing.M) {
	log.SetOutput(ioutil.Discard)
	os.Exit(m.Run())
}

var errNetwork = errors.New("connection refused")

// fakeClient implements social.RemoteClient with overridable behaviour.
// Unset operations fail, matching an unreachable server.
type fakeClient struct {
	listPosts            func(limit int, cursor string) ([]social.Post, error)
	createPost           func(content, media string) (*social.Post, error)
	addComment           func(post, text string) (*social.Comment, error)
	toggleReaction       func(post string, kind social.ReactionKind) (*social.Post, error)
	listNotifications    func() ([]social.Notification, error)
	markNotificationRead func(notification string) error
	listMessages         func(since time.Time) ([]social.Message, error)
	sendMessage          func(recipient int, body string) (*social.Message, error)
}

func (f *fakeClient) ListPosts(_ context.Context, limit int, cursor string) ([]social.Post, error) {
	if f.listPosts == nil {
		return nil, errNetwork
	}

	return f.listPosts(limit, cursor)
}

func (f *fakeClient) CreatePost(_ context.Context, content, media string) (*social.Post, error) {
	if f.createPost == nil {
		return nil, errNetwork
	}

	return f.createPost(content, media)
}

func (f *fakeClient) AddComment(_ context.Context, post, text string) (*social.Comment, error) {
	if f.addComment == nil {
		return nil, errNetwork
	}

	return f.addComment(post, text)
}

func (f *fakeClient) ToggleReaction(_ context.Context, post string, kind social.ReactionKind) (*social.Post, error) {
	if f.toggleReaction == nil {
		return nil, errNetwork
	}

	return f.toggleReaction(post, kind)
}

func (f *fakeClient) ListNotifications(_ context.Context) ([]social.Notification, error) {
	if f.listNotifications == nil {
		return nil, errNetwork
	}

	return f.listNotifications()
}

func (f *fakeClient) MarkNotificationRead(_ context.Context, notification string) error {
	if f.markNotificationRead == nil {
		return errNetwork
	}

	return f.markNotificationRead(notification)
}

func (f *fakeClient) ListMessages(_ context.Context, since time.Time) ([]social.Message, error) {
	if f.listMessages == nil {
		return nil, errNetwork
	}

	return f.listMessages(since)
}

func (f *fakeClient) SendMessage(_ context.Context, recipient int, body string) (*social.Message, error) {
	if f.sendMessage == nil {
		return nil, errNetwork
	}

	return f.sendMessage(recipient, body)
}

func feedIDs(store *social.Store) []string {
	ids := make([]string, 0)
	for _, post := range store.Feed() {
		ids = append(ids, post.ID)
	}

	return ids
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
