package social

import (
	"strconv"
	"strings"
	"time"

	"github.com/socialsphere/socialsphere/pkg/users"
)

// ReactionKind is one of the fixed set of reactions a user can attach to a
// post or story. A user holds at most one reaction per target.
type ReactionKind string

const (
	ReactionLike  ReactionKind = "LIKE"
	ReactionLove  ReactionKind = "LOVE"
	ReactionCare  ReactionKind = "CARE"
	ReactionHaha  ReactionKind = "HAHA"
	ReactionWow   ReactionKind = "WOW"
	ReactionAngry ReactionKind = "ANGRY"
)

// ReactionKinds returns the closed set of reaction kinds.
func ReactionKinds() []ReactionKind {
	return []ReactionKind{ReactionLike, ReactionLove, ReactionCare, ReactionHaha, ReactionWow, ReactionAngry}
}

// Key returns the lowercase key used in reaction-count maps.
func (k ReactionKind) Key() string {
	return strings.ToLower(string(k))
}

// ParseReactionKind returns the kind matching the input, case-insensitively.
func ParseReactionKind(val string) (ReactionKind, bool) {
	kind := ReactionKind(strings.ToUpper(val))
	for _, known := range ReactionKinds() {
		if kind == known {
			return kind, true
		}
	}

	return "", false
}

// Reactor is a user together with the reaction they placed on a post.
type Reactor struct {
	ID       int          `json:"id"`
	Name     string       `json:"name"`
	Avatar   string       `json:"avatar,omitempty"`
	Headline string       `json:"headline,omitempty"`
	Reaction ReactionKind `json:"reaction"`
}

// Reply is a local-only response to a comment.
type Reply struct {
	ID        string     `json:"id"`
	Author    users.User `json:"author"`
	Text      string     `json:"text"`
	CreatedAt string     `json:"createdAt"`
}

// Comment belongs to exactly one post. CreatedAt is a display marker, either
// the server timestamp or a relative placeholder for optimistic entries.
type Comment struct {
	ID        string     `json:"id"`
	Author    users.User `json:"author"`
	Text      string     `json:"text"`
	CreatedAt string     `json:"createdAt"`
	Replies   []Reply    `json:"replies"`
}

// Post is a feed entry. ViewerReaction is empty when the viewer has not
// reacted; when set, its key in Reactions holds a count of at least 1.
type Post struct {
	ID             string         `json:"id"`
	Author         users.User     `json:"author"`
	Content        string         `json:"content"`
	Media          string         `json:"media,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	Comments       []Comment      `json:"comments"`
	Reactions      map[string]int `json:"reactions"`
	ViewerReaction ReactionKind   `json:"viewerReaction,omitempty"`
	LikedBy        []Reactor      `json:"likedBy"`
}

// Clone returns a deep copy of the post, used for rollback snapshots.
func (p Post) Clone() Post {
	clone := p

	clone.Reactions = make(map[string]int, len(p.Reactions))
	for key, count := range p.Reactions {
		clone.Reactions[key] = count
	}

	clone.LikedBy = append([]Reactor(nil), p.LikedBy...)

	clone.Comments = make([]Comment, 0, len(p.Comments))
	for _, comment := range p.Comments {
		comment.Replies = append([]Reply(nil), comment.Replies...)
		clone.Comments = append(clone.Comments, comment)
	}

	return clone
}

// Message is a direct message between two users. Immutable once the server
// confirmed it; optimistic copies are replaced in place by identity.
type Message struct {
	ID          string     `json:"id"`
	Sender      users.User `json:"sender"`
	Recipient   users.User `json:"recipient"`
	RecipientID int        `json:"recipientId"`
	Body        string     `json:"body"`
	CreatedAt   time.Time  `json:"createdAt"`
	Time        string     `json:"time,omitempty"`
}

// Notification informs the viewer about activity on their content.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Kind      string    `json:"type,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	Time      string    `json:"time,omitempty"`
	PostID    string    `json:"postId,omitempty"`
}

// StoryViewer is a user who acknowledged a story.
type StoryViewer struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// StoryReaction is a single viewer's reaction to a story. Each viewer holds
// at most one, last write wins.
type StoryReaction struct {
	ID       int          `json:"id"`
	Name     string       `json:"name"`
	Avatar   string       `json:"avatar,omitempty"`
	Reaction ReactionKind `json:"reaction"`
}

// Story is an ephemeral media post.
type Story struct {
	ID        string          `json:"id"`
	User      users.User      `json:"user"`
	Media     string          `json:"media,omitempty"`
	Caption   string          `json:"caption,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	Views     []StoryViewer   `json:"views"`
	Reactions []StoryReaction `json:"reactions"`
}

// Trend is a lightweight trending topic shown next to the feed.
type Trend struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Count string `json:"count"`
}

// Conversation is a projection over the flat message list, grouped by the
// participant who is not the viewer. It is derived, never stored.
type Conversation struct {
	ID          string     `json:"id"`
	Counterpart users.User `json:"counterpart"`
	Messages    []Message  `json:"messages"`
	LastReadAt  time.Time  `json:"lastReadAt,omitempty"`
	Unread      int        `json:"unread"`
}

// ConversationKey returns the grouping key for a counterpart: the user id
// when present, otherwise email, otherwise name.
func ConversationKey(user users.User) string {
	if user.ID != 0 {
		return strconv.Itoa(user.ID)
	}

	if user.Email != "" {
		return user.Email
	}

	return user.Name
}

func baseReactions() map[string]int {
	reactions := make(map[string]int, len(ReactionKinds()))
	for _, kind := range ReactionKinds() {
		reactions[kind.Key()] = 0
	}

	return reactions
}

// normalizePost fills the defaults the server may omit: every known reaction
// key, non-nil comment and reactor slices, uppercased reactor kinds.
func normalizePost(post Post) Post {
	reactions := baseReactions()
	for key, count := range post.Reactions {
		reactions[strings.ToLower(key)] = count
	}
	post.Reactions = reactions

	if post.ViewerReaction != "" {
		post.ViewerReaction = ReactionKind(strings.ToUpper(string(post.ViewerReaction)))
	}

	likedBy := make([]Reactor, 0, len(post.LikedBy))
	for _, reactor := range post.LikedBy {
		if reactor.Reaction == "" {
			reactor.Reaction = ReactionLike
		}
		reactor.Reaction = ReactionKind(strings.ToUpper(string(reactor.Reaction)))
		likedBy = append(likedBy, reactor)
	}
	post.LikedBy = likedBy

	comments := make([]Comment, 0, len(post.Comments))
	for _, comment := range post.Comments {
		if comment.Replies == nil {
			comment.Replies = make([]Reply, 0)
		}
		comments = append(comments, comment)
	}
	post.Comments = comments

	return post
}

// formatClock renders a timestamp as a short wall-clock label.
func formatClock(timestamp time.Time) string {
	if timestamp.IsZero() {
		return "now"
	}

	return timestamp.Format("15:04")
}
