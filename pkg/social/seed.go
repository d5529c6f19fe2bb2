package social

import (
	"time"

	"github.com/socialsphere/socialsphere/pkg/users"
)

// Compiled-in seed content backing the offline mode and the read-path
// degradation when the API is unreachable.

var sampleUsers = []users.User{
	{
		ID:       1,
		Name:     "Jane Doe",
		Headline: "Product Designer @ Aurora Labs",
		Avatar:   "https://i.pravatar.cc/150?img=47",
		Cover:    "https://images.unsplash.com/photo-1500530855697-b586d89ba3ee",
		Location: "San Francisco, CA",
	},
	{
		ID:       2,
		Name:     "Marcus Li",
		Headline: "Software Engineer @ Orbit",
		Avatar:   "https://i.pravatar.cc/150?img=12",
		Location: "New York, NY",
	},
}

func seedPosts() []Post {
	return []Post{
		{
			ID:        "p1",
			Author:    sampleUsers[0],
			CreatedAt: time.Now().Add(-2 * time.Hour),
			Content:   "Thrilled to share a sneak peek of the new design system we have been building for Aurora Labs. Accessibility first, with a ton of delightful motion. Feedback welcome!",
			Media:     "https://images.unsplash.com/photo-1517048676732-d65bc937f952?auto=format&fit=crop&w=1200&q=60",
			Reactions: map[string]int{"like": 128, "celebrate": 9},
			LikedBy: []Reactor{
				{ID: sampleUsers[1].ID, Name: sampleUsers[1].Name, Avatar: sampleUsers[1].Avatar, Headline: sampleUsers[1].Headline, Reaction: ReactionLove},
				{Name: "You", Avatar: sampleUsers[0].Avatar, Reaction: ReactionWow},
			},
			Comments: []Comment{
				{
					ID:        "c1",
					Author:    sampleUsers[1],
					Text:      "This looks great Jane. Curious how you approached typography scaling?",
					CreatedAt: "1 hour ago",
					Replies: []Reply{
						{
							ID:        "r1",
							Author:    sampleUsers[0],
							Text:      "Thank you! Mixing a fluid type scale with clamp().",
							CreatedAt: "45 minutes ago",
						},
					},
				},
			},
		},
		{
			ID:        "p2",
			Author:    sampleUsers[1],
			CreatedAt: time.Now().Add(-4 * time.Hour),
			Content:   "Pair programmed a tiny AI agent that triages customer issues based on sentiment. Already saving our support team 6 hrs/week.",
			Reactions: map[string]int{"like": 89},
			LikedBy: []Reactor{
				{ID: sampleUsers[0].ID, Name: sampleUsers[0].Name, Avatar: sampleUsers[0].Avatar, Headline: sampleUsers[0].Headline, Reaction: ReactionLike},
			},
			Comments: []Comment{},
		},
	}
}

func seedStories() []Story {
	return []Story{
		{
			ID:        "story-1",
			User:      sampleUsers[0],
			Media:     "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?auto=format&fit=crop&w=800&q=60",
			Caption:   "Sneak peek of the new design system animations.",
			CreatedAt: time.Now().Add(-time.Hour),
			Views:     []StoryViewer{},
			Reactions: []StoryReaction{},
		},
		{
			ID:        "story-2",
			User:      sampleUsers[1],
			Media:     "https://images.unsplash.com/photo-1500534314209-a25ddb2bd429?auto=format&fit=crop&w=800&q=60",
			Caption:   "Pairing on some AI experiments today.",
			CreatedAt: time.Now().Add(-90 * time.Minute),
			Views:     []StoryViewer{},
			Reactions: []StoryReaction{},
		},
	}
}

func seedNotifications() []Notification {
	return []Notification{
		{ID: "n1", Message: "Nora Winters reacted to your update", Time: "10m ago", Read: false, Kind: "reaction", PostID: "p1"},
		{ID: "n2", Message: "Marcus Li commented on your photo", Time: "1h ago", Read: true, Kind: "comment", PostID: "p2"},
		{ID: "n3", Message: "Jane Doe shared your announcement", Time: "2h ago", Read: false, Kind: "share", PostID: "p1"},
	}
}

func seedTrends() []Trend {
	return []Trend{
		{ID: "t1", Label: "Generative UI", Count: "42k mentions"},
		{ID: "t2", Label: "#OSSFriday", Count: "12k mentions"},
		{ID: "t3", Label: "Product Market Fit", Count: "7k mentions"},
	}
}
