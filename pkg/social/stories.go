package social

import (
	"time"

	"github.com/segmentio/ksuid"

	"github.com/socialsphere/socialsphere/pkg/users"
)

// AddStory prepends a local story for the given user.
func (s *Store) AddStory(user users.User, media, caption string) Story {
	story := Story{
		ID:        ksuid.New().String(),
		User:      user,
		Media:     media,
		Caption:   caption,
		CreatedAt: time.Now(),
		Views:     make([]StoryViewer, 0),
		Reactions: make([]StoryReaction, 0),
	}

	s.Lock()
	defer s.Unlock()
	s.stories = append([]Story{story}, s.stories...)

	return story
}

// MarkStoryViewed adds the viewer to the story's viewer set. Idempotent:
// each viewer appears at most once.
func (s *Store) MarkStoryViewed(story string, viewer users.User) {
	if viewer.ID == 0 && viewer.Name == "" {
		return
	}

	s.Lock()
	defer s.Unlock()

	for i := range s.stories {
		if s.stories[i].ID != story {
			continue
		}

		for _, view := range s.stories[i].Views {
			if view.ID == viewer.ID {
				return
			}
		}

		s.stories[i].Views = append(s.stories[i].Views, StoryViewer{
			ID:     viewer.ID,
			Name:   viewer.Name,
			Avatar: viewer.Avatar,
		})

		return
	}
}

// ReactToStory records the viewer's reaction, replacing any prior reaction
// from the same viewer. Last write wins.
func (s *Store) ReactToStory(story string, viewer users.User, kind ReactionKind) {
	if viewer.ID == 0 && viewer.Name == "" {
		return
	}

	s.Lock()
	defer s.Unlock()

	for i := range s.stories {
		if s.stories[i].ID != story {
			continue
		}

		reactions := make([]StoryReaction, 0, len(s.stories[i].Reactions)+1)
		for _, reaction := range s.stories[i].Reactions {
			if reaction.ID == viewer.ID {
				continue
			}

			reactions = append(reactions, reaction)
		}

		s.stories[i].Reactions = append(reactions, StoryReaction{
			ID:       viewer.ID,
			Name:     viewer.Name,
			Avatar:   viewer.Avatar,
			Reaction: kind,
		})

		return
	}
}
