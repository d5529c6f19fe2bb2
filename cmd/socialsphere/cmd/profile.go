package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/socialsphere/socialsphere/pkg/users"
)

var profile = &cobra.Command{
	Use:   "profile",
	Short: "prints or updates the current profile",
	RunE:  runProfile,
}

var (
	headline string
	location string
)

func init() {
	profile.Flags().StringVarP(&headline, "headline", "", "", "new headline")
	profile.Flags().StringVarP(&location, "location", "l", "", "new location")
}

func runProfile(*cobra.Command, []string) error {
	client, err := setup()
	if err != nil {
		return err
	}

	if headline != "" || location != "" {
		update := users.Update{}
		if headline != "" {
			update.Headline = &headline
		}
		if location != "" {
			update.Location = &location
		}

		_, err := client.sessions.UpdateProfile(context.Background(), update)
		if err != nil {
			return err
		}
	}

	user, ok := client.sessions.User()
	if !ok {
		fmt.Println("not logged in")
		return nil
	}

	fmt.Printf("%s | %s (%s)\n", user.Name, user.Headline, user.Location)

	return nil
}
