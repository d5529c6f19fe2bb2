package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/socialsphere/socialsphere/pkg/social"
)

var stories = &cobra.Command{
	Use:   "stories",
	Short: "prints stories, optionally marking one viewed or reacting",
	RunE:  runStories,
}

var (
	viewStory  string
	storyKind  string
	reactStory string
)

func init() {
	stories.Flags().StringVarP(&viewStory, "view", "v", "", "mark a story viewed")
	stories.Flags().StringVarP(&reactStory, "react", "r", "", "react to a story")
	stories.Flags().StringVarP(&storyKind, "kind", "k", "LIKE", "story reaction kind")
}

func runStories(*cobra.Command, []string) error {
	client, err := setup()
	if err != nil {
		return err
	}

	viewer, _ := client.sessions.User()

	if viewStory != "" {
		client.store.MarkStoryViewed(viewStory, viewer)
	}

	if reactStory != "" {
		kind, ok := social.ParseReactionKind(storyKind)
		if !ok {
			return fmt.Errorf("unknown reaction kind: %s", storyKind)
		}

		client.store.ReactToStory(reactStory, viewer, kind)
	}

	for _, story := range client.store.Stories() {
		fmt.Printf("%s  %s: %s (%d views, %d reactions)\n", story.ID, story.User.Name, story.Caption, len(story.Views), len(story.Reactions))
	}

	return nil
}
