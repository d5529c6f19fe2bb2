package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/socialsphere/socialsphere/pkg/users"
)

var messages = &cobra.Command{
	Use:   "messages",
	Short: "fetches messages and prints conversations",
	RunE:  runMessages,
}

var send = &cobra.Command{
	Use:   "send",
	Short: "sends a direct message",
	RunE:  runSend,
}

var (
	recipient int
	body      string
	open      string
)

func init() {
	messages.Flags().StringVarP(&open, "open", "o", "", "mark a conversation read")

	send.Flags().IntVarP(&recipient, "recipient", "r", 0, "recipient user id")
	send.Flags().StringVarP(&body, "body", "b", "", "message body")
}

func runMessages(*cobra.Command, []string) error {
	client, err := setup()
	if err != nil {
		return err
	}

	client.store.FetchMessages(context.Background())

	if open != "" {
		client.store.SetActiveConversation(open, time.Now())
	}

	for _, conversation := range client.store.Conversations() {
		fmt.Printf("%s (%d unread)\n", conversation.Counterpart.Name, conversation.Unread)

		for _, message := range conversation.Messages {
			fmt.Printf("    [%s] %s: %s\n", message.Time, message.Sender.Name, message.Body)
		}
	}

	return nil
}

func runSend(*cobra.Command, []string) error {
	if recipient == 0 {
		return errors.New("recipient cannot be empty")
	}

	if body == "" {
		return errors.New("body cannot be empty")
	}

	client, err := setup()
	if err != nil {
		return err
	}

	err = client.store.SendMessage(context.Background(), users.User{ID: recipient}, body)
	if err != nil {
		return err
	}

	fmt.Println("sent")

	return nil
}
