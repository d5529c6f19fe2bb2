package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "fetches and prints notifications",
	RunE:  runNotifications,
}

var markRead string

func init() {
	notificationsCmd.Flags().StringVarP(&markRead, "read", "r", "", "mark a notification read")
}

func runNotifications(*cobra.Command, []string) error {
	client, err := setup()
	if err != nil {
		return err
	}

	client.store.FetchNotifications(context.Background())

	if markRead != "" {
		client.store.MarkNotificationRead(context.Background(), markRead)
	}

	for _, notification := range client.store.Notifications() {
		marker := " "
		if !notification.Read {
			marker = "*"
		}

		fmt.Printf("%s [%s] %s (%s)\n", marker, notification.Kind, notification.Message, notification.Time)
	}

	fmt.Printf("%d unread\n", client.store.UnreadNotifications())

	return nil
}
