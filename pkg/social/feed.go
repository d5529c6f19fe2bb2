package social

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/socialsphere/socialsphere/pkg/pubsub"
	"github.com/socialsphere/socialsphere/pkg/users"
)

// ErrPostNotFound is returned when an operation targets a post that is not
// in the feed.
var ErrPostNotFound = errors.New("post not found")

// FeedRequest controls a feed fetch. A zero value fetches the first page.
type FeedRequest struct {
	// Cursor is the id of the last seen post when paginating.
	Cursor string

	// Reset clears pagination state before fetching.
	Reset bool
}

// FetchFeed retrieves a feed page and merges it into the store. Transport
// failures never surface: a fresh load falls back to the cached snapshot or
// the seed dataset, pagination failures leave the feed untouched.
func (s *Store) FetchFeed(ctx context.Context, req FeedRequest) {
	s.Lock()
	if req.Reset {
		s.feedCursor = ""
		s.hasMoreFeed = true
	}

	// An active search filters the already loaded set instead of fetching.
	if s.loadingFeed || (req.Cursor == "" && strings.TrimSpace(s.searchTerm) != "") {
		s.Unlock()
		return
	}

	if req.Cursor != "" && !s.hasMoreFeed {
		s.Unlock()
		return
	}

	if s.offline {
		s.feed = s.fallbackFeed()
		s.hasMoreFeed = false
		s.Unlock()
		return
	}

	s.loadingFeed = true
	limit := s.pageSize
	viewer := s.viewerOrSample()
	s.Unlock()

	posts, err := s.client.ListPosts(ctx, limit, req.Cursor)

	s.Lock()
	defer s.Unlock()
	s.loadingFeed = false

	if err != nil {
		log.Printf("feed fetch failed, serving fallback: %v", err)

		if req.Cursor == "" {
			s.feed = s.fallbackFeed()
			s.hasMoreFeed = false
		}

		return
	}

	normalized := make([]Post, 0, len(posts))
	for _, post := range posts {
		normalized = append(normalized, normalizePost(post))
	}

	if req.Cursor != "" {
		s.feed = uniqueByID(append(s.feed, normalized...))
	} else {
		s.feed = normalized
	}

	if len(posts) > 0 {
		s.feedCursor = posts[len(posts)-1].ID
	}
	s.hasMoreFeed = len(posts) == limit

	if s.cache != nil {
		if err := s.cache.StoreFeed(viewer.ID, s.feed); err != nil {
			log.Printf("feed cache store failed: %v", err)
		}
	}
}

// SetSearchTerm sets the local feed filter.
func (s *Store) SetSearchTerm(term string) {
	s.Lock()
	defer s.Unlock()
	s.searchTerm = term
}

// FilteredFeed returns the feed filtered by the active search term, matching
// post content and author name case-insensitively.
func (s *Store) FilteredFeed() []Post {
	s.Lock()
	defer s.Unlock()

	term := strings.ToLower(strings.TrimSpace(s.searchTerm))
	if term == "" {
		return append([]Post(nil), s.feed...)
	}

	filtered := make([]Post, 0)
	for _, post := range s.feed {
		if strings.Contains(strings.ToLower(post.Content), term) ||
			strings.Contains(strings.ToLower(post.Author.Name), term) {
			filtered = append(filtered, post)
		}
	}

	return filtered
}

// CreatePost prepends an optimistic post and issues the creation request.
// On success the optimistic entry is replaced by the confirmed post; on
// failure it is removed entirely and the error returned.
func (s *Store) CreatePost(ctx context.Context, content, media string) error {
	s.Lock()
	author := s.viewerOrSample()
	optimistic := Post{
		ID:        uuid.NewString(),
		Author:    author,
		Content:   content,
		Media:     media,
		CreatedAt: time.Now(),
		Comments:  make([]Comment, 0),
		Reactions: baseReactions(),
		LikedBy:   make([]Reactor, 0),
	}
	s.feed = append([]Post{optimistic}, s.feed...)
	s.Unlock()

	created, err := s.client.CreatePost(ctx, content, media)

	s.Lock()
	defer s.Unlock()

	if err != nil {
		s.feed = removeByID(s.feed, optimistic.ID)
		return errors.Wrap(err, "create post")
	}

	for i := range s.feed {
		if s.feed[i].ID == optimistic.ID {
			s.feed[i] = normalizePost(*created)
			break
		}
	}

	s.publish(pubsub.NewPostEvent(author.ID, created.ID))

	return nil
}

// AddComment appends an optimistic comment and syncs it fire-and-forget:
// the server's version of the comment is not reconciled and a failed sync
// leaves the optimistic entry standing.
func (s *Store) AddComment(ctx context.Context, post, text string, author users.User) {
	if strings.TrimSpace(text) == "" {
		return
	}

	if author == (users.User{}) {
		author = sampleUsers[1]
	}

	comment := Comment{
		ID:        uuid.NewString(),
		Author:    author,
		Text:      text,
		CreatedAt: "moments ago",
		Replies:   make([]Reply, 0),
	}

	s.Lock()
	for i := range s.feed {
		if s.feed[i].ID == post {
			s.feed[i].Comments = append(s.feed[i].Comments, comment)
			break
		}
	}
	s.Unlock()

	if _, err := s.client.AddComment(ctx, post, text); err != nil {
		log.Printf("comment sync failed: %v", err)
		return
	}

	s.publish(pubsub.NewCommentEvent(author.ID, post))
}

// AddReply records a local-only reply to a comment. Replies never reach the
// server.
func (s *Store) AddReply(post, comment, text string, author users.User) {
	if strings.TrimSpace(text) == "" {
		return
	}

	if author == (users.User{}) {
		author = sampleUsers[1]
	}

	reply := Reply{
		ID:        uuid.NewString(),
		Author:    author,
		Text:      text,
		CreatedAt: "moments ago",
	}

	s.Lock()
	defer s.Unlock()

	for i := range s.feed {
		if s.feed[i].ID != post {
			continue
		}

		for j := range s.feed[i].Comments {
			if s.feed[i].Comments[j].ID == comment {
				s.feed[i].Comments[j].Replies = append(s.feed[i].Comments[j].Replies, reply)
				return
			}
		}
	}
}

// ToggleReaction applies the viewer's reaction transition optimistically:
// any prior reaction is decremented, and unless removing or re-selecting the
// same kind the new one is recorded. The server receives the effective kind
// and returns the authoritative post, which replaces the local one wholesale.
// On failure the pre-mutation snapshot is restored verbatim.
func (s *Store) ToggleReaction(ctx context.Context, post string, kind ReactionKind, remove bool) error {
	if kind == "" {
		kind = ReactionLike
	}

	s.Lock()

	idx := -1
	for i := range s.feed {
		if s.feed[i].ID == post {
			idx = i
			break
		}
	}

	if idx < 0 {
		s.Unlock()
		return ErrPostNotFound
	}

	snapshot := s.feed[idx].Clone()
	viewer := s.viewerOrSample()

	apiKind := kind
	if remove && snapshot.ViewerReaction != "" {
		apiKind = snapshot.ViewerReaction
	}

	mutated := snapshot.Clone()
	if previous := mutated.ViewerReaction; previous != "" {
		key := previous.Key()
		if count, ok := mutated.Reactions[key]; ok && count > 0 {
			mutated.Reactions[key] = count - 1
		}
	}

	mutated.ViewerReaction = ""
	if !remove && kind != snapshot.ViewerReaction {
		mutated.Reactions[kind.Key()]++
		mutated.ViewerReaction = kind
	}

	s.feed[idx] = mutated
	s.Unlock()

	updated, err := s.client.ToggleReaction(ctx, post, apiKind)

	s.Lock()
	defer s.Unlock()

	if err != nil {
		for i := range s.feed {
			if s.feed[i].ID == post {
				s.feed[i] = snapshot
				break
			}
		}

		return errors.Wrap(err, "toggle reaction")
	}

	for i := range s.feed {
		if s.feed[i].ID == post {
			s.feed[i] = normalizePost(*updated)
			break
		}
	}

	s.publish(pubsub.NewReactionEvent(viewer.ID, post, string(apiKind)))

	return nil
}

// fallbackFeed returns the cached snapshot when available, otherwise the
// seed posts. Callers must hold the lock.
func (s *Store) fallbackFeed() []Post {
	if s.cache != nil {
		cached, err := s.cache.GetFeed(s.viewerOrSample().ID)
		if err == nil && len(cached) > 0 {
			posts := make([]Post, 0, len(cached))
			for _, post := range cached {
				posts = append(posts, normalizePost(post))
			}

			return posts
		}
	}

	posts := make([]Post, 0)
	for _, post := range seedPosts() {
		posts = append(posts, normalizePost(post))
	}

	return posts
}

func uniqueByID(posts []Post) []Post {
	seen := make(map[string]bool, len(posts))
	result := make([]Post, 0, len(posts))

	for _, post := range posts {
		if seen[post.ID] {
			continue
		}

		seen[post.ID] = true
		result = append(result, post)
	}

	return result
}

func removeByID(posts []Post, id string) []Post {
	result := make([]Post, 0, len(posts))
	for _, post := range posts {
		if post.ID == id {
			continue
		}

		result = append(result, post)
	}

	return result
}
