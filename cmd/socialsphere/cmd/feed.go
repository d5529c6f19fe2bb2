package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/socialsphere/socialsphere/pkg/social"
)

var feed = &cobra.Command{
	Use:   "feed",
	Short: "fetches and prints the feed",
	RunE:  runFeed,
}

var post = &cobra.Command{
	Use:   "post",
	Short: "creates a post",
	RunE:  runPost,
}

var comment = &cobra.Command{
	Use:   "comment",
	Short: "comments on a post",
	RunE:  runComment,
}

var react = &cobra.Command{
	Use:   "react",
	Short: "toggles a reaction on a post",
	RunE:  runReact,
}

var (
	cursor  string
	search  string
	content string
	media   string
	postID  string
	text    string
	kind    string
	remove  bool
)

func init() {
	feed.Flags().StringVarP(&cursor, "cursor", "", "", "pagination cursor")
	feed.Flags().StringVarP(&search, "search", "s", "", "filter loaded posts")

	post.Flags().StringVarP(&content, "content", "", "", "post content")
	post.Flags().StringVarP(&media, "media", "m", "", "media url")

	comment.Flags().StringVarP(&postID, "post", "", "", "post id")
	comment.Flags().StringVarP(&text, "text", "t", "", "comment text")

	react.Flags().StringVarP(&postID, "post", "", "", "post id")
	react.Flags().StringVarP(&kind, "kind", "k", "LIKE", "reaction kind")
	react.Flags().BoolVarP(&remove, "remove", "r", false, "remove the current reaction")
}

func runFeed(*cobra.Command, []string) error {
	client, err := setup()
	if err != nil {
		return err
	}

	client.store.SetSearchTerm(search)
	client.store.FetchFeed(context.Background(), social.FeedRequest{Cursor: cursor, Reset: cursor == ""})

	for _, entry := range client.store.FilteredFeed() {
		fmt.Printf("%s  %s: %s\n", entry.ID, entry.Author.Name, entry.Content)

		for key, count := range entry.Reactions {
			if count > 0 {
				fmt.Printf("    %s %d\n", key, count)
			}
		}
	}

	if client.store.HasMoreFeed() {
		fmt.Printf("more available, next cursor: %s\n", client.store.FeedCursor())
	}

	return nil
}

func runPost(*cobra.Command, []string) error {
	if content == "" {
		return errors.New("content cannot be empty")
	}

	client, err := setup()
	if err != nil {
		return err
	}

	err = client.store.CreatePost(context.Background(), content, media)
	if err != nil {
		return err
	}

	fmt.Println("posted")

	return nil
}

func runComment(*cobra.Command, []string) error {
	if postID == "" || text == "" {
		return errors.New("post and text cannot be empty")
	}

	client, err := setup()
	if err != nil {
		return err
	}

	user, _ := client.sessions.User()
	client.store.AddComment(context.Background(), postID, text, user)

	fmt.Println("commented")

	return nil
}

func runReact(*cobra.Command, []string) error {
	if postID == "" {
		return errors.New("post cannot be empty")
	}

	reaction, ok := social.ParseReactionKind(kind)
	if !ok {
		return fmt.Errorf("unknown reaction kind: %s", kind)
	}

	client, err := setup()
	if err != nil {
		return err
	}

	client.store.FetchFeed(context.Background(), social.FeedRequest{Reset: true})

	err = client.store.ToggleReaction(context.Background(), postID, reaction, remove)
	if err != nil {
		return err
	}

	fmt.Println("reaction updated")

	return nil
}
