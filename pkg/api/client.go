// Package api contains the HTTP client for the SocialSphere API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/socialsphere/socialsphere/pkg/pubsub"
	"github.com/socialsphere/socialsphere/pkg/social"
	"github.com/socialsphere/socialsphere/pkg/users"
)

// TokenSource returns the current bearer token, or an empty string when no
// session is active.
type TokenSource func() string

// Client issues requests against the SocialSphere API. On a 401 response it
// publishes a session-invalidated event before returning the error, so the
// session holder can tear down independently of the caller.
type Client struct {
	baseURL string
	client  *http.Client
	tokens  TokenSource
	limiter *rate.Limiter
	queue   *pubsub.Queue
}

// NewClient creates an API client with default timeout and rate settings.
// The queue may be nil when no session teardown signal is wanted.
func NewClient(baseURL string, tokens TokenSource, queue *pubsub.Queue) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
		limiter: rate.NewLimiter(rate.Limit(10), 20),
		queue:   queue,
	}
}

// SetTimeout overrides the per-request timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.client.Timeout = timeout
}

// SetRate overrides the requests-per-second limit.
func (c *Client) SetRate(perSecond int) {
	c.limiter = rate.NewLimiter(rate.Limit(perSecond), 2*perSecond)
}

// ListPosts returns a feed page.
func (c *Client) ListPosts(ctx context.Context, limit int, cursor string) ([]social.Post, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	if cursor != "" {
		query.Set("cursor", cursor)
	}

	posts := make([]social.Post, 0)
	err := c.do(ctx, http.MethodGet, "/posts?"+query.Encode(), nil, &posts)
	if err != nil {
		return nil, err
	}

	return posts, nil
}

// CreatePost creates a post authored by the current user.
func (c *Client) CreatePost(ctx context.Context, content, media string) (*social.Post, error) {
	body := map[string]string{"content": content}
	if media != "" {
		body["media"] = media
	}

	post := &social.Post{}
	err := c.do(ctx, http.MethodPost, "/posts", body, post)
	if err != nil {
		return nil, err
	}

	return post, nil
}

// AddComment adds a comment to a post.
func (c *Client) AddComment(ctx context.Context, post, text string) (*social.Comment, error) {
	comment := &social.Comment{}
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/posts/%s/comments", post), map[string]string{"text": text}, comment)
	if err != nil {
		return nil, err
	}

	return comment, nil
}

// ToggleReaction submits a reaction kind for the server-side toggle-or-clear
// and returns the authoritative post.
func (c *Client) ToggleReaction(ctx context.Context, post string, kind social.ReactionKind) (*social.Post, error) {
	updated := &social.Post{}
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/posts/%s/reactions", post), map[string]string{"type": string(kind)}, updated)
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// ListNotifications returns the viewer's notifications.
func (c *Client) ListNotifications(ctx context.Context) ([]social.Notification, error) {
	notifications := make([]social.Notification, 0)
	err := c.do(ctx, http.MethodGet, "/notifications", nil, &notifications)
	if err != nil {
		return nil, err
	}

	return notifications, nil
}

// MarkNotificationRead marks a notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, notification string) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/notifications/%s/read", notification), nil, nil)
}

// ListMessages returns the viewer's messages, optionally only those created
// after since.
func (c *Client) ListMessages(ctx context.Context, since time.Time) ([]social.Message, error) {
	path := "/messages"
	if !since.IsZero() {
		query := url.Values{}
		query.Set("since", since.Format(time.RFC3339Nano))
		path += "?" + query.Encode()
	}

	messages := make([]social.Message, 0)
	err := c.do(ctx, http.MethodGet, path, nil, &messages)
	if err != nil {
		return nil, err
	}

	return messages, nil
}

// SendMessage sends a direct message.
func (c *Client) SendMessage(ctx context.Context, recipient int, body string) (*social.Message, error) {
	message := &social.Message{}
	err := c.do(ctx, http.MethodPost, "/messages", map[string]interface{}{"recipientId": recipient, "body": body}, message)
	if err != nil {
		return nil, err
	}

	return message, nil
}

// Session is the response to a successful login or registration.
type Session struct {
	User  users.User `json:"user"`
	Token string     `json:"token"`
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	session := &Session{}
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{"email": email, "password": password}, session)
	if err != nil {
		return nil, err
	}

	return session, nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, name, email, password string) (*Session, error) {
	session := &Session{}
	err := c.do(ctx, http.MethodPost, "/auth/register", map[string]string{"name": name, "email": email, "password": password}, session)
	if err != nil {
		return nil, err
	}

	return session, nil
}

// Logout invalidates the current session server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// Me returns the current user's profile.
func (c *Client) Me(ctx context.Context) (*users.User, error) {
	user := &users.User{}
	err := c.do(ctx, http.MethodGet, "/users/me", nil, user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetProfile returns another user's profile.
func (c *Client) GetProfile(ctx context.Context, id int) (*users.User, error) {
	user := &users.User{}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateProfile updates the current user's profile and returns it.
func (c *Client) UpdateProfile(ctx context.Context, update users.Update) (*users.User, error) {
	user := &users.User{}
	err := c.do(ctx, http.MethodPut, "/users/me", update, user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	err := c.limiter.Wait(ctx)
	if err != nil {
		return err
	}

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}

		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "build request")
	}

	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &Error{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
		}

		payload := struct {
			Message string       `json:"message"`
			Issues  []FieldIssue `json:"issues"`
		}{}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
			apiErr.Message = payload.Message
			apiErr.Issues = payload.Issues
		}

		if resp.StatusCode == http.StatusUnauthorized && c.queue != nil {
			c.queue.Publish(pubsub.NewSessionInvalidatedEvent(apiErr.Message))
		}

		return apiErr
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
