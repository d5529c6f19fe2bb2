package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var login = &cobra.Command{
	Use:   "login",
	Short: "logs in with email and password",
	RunE:  runLogin,
}

var register = &cobra.Command{
	Use:   "register",
	Short: "creates an account, falling back to demo mode when offline",
	RunE:  runRegister,
}

var logout = &cobra.Command{
	Use:   "logout",
	Short: "ends the current session",
	RunE:  runLogout,
}

var (
	name     string
	email    string
	password string
)

func init() {
	login.Flags().StringVarP(&email, "email", "e", "", "account email")
	login.Flags().StringVarP(&password, "password", "p", "", "account password")

	register.Flags().StringVarP(&name, "name", "n", "", "display name")
	register.Flags().StringVarP(&email, "email", "e", "", "account email")
	register.Flags().StringVarP(&password, "password", "p", "", "account password")
}

func runLogin(*cobra.Command, []string) error {
	if email == "" || password == "" {
		return errors.New("email and password cannot be empty")
	}

	client, err := setup()
	if err != nil {
		return err
	}

	user, err := client.sessions.Login(context.Background(), email, password)
	if err != nil {
		return err
	}

	fmt.Printf("logged in as %s (id %d)\n", user.Name, user.ID)

	return nil
}

func runRegister(*cobra.Command, []string) error {
	if email == "" || password == "" {
		return errors.New("email and password cannot be empty")
	}

	client, err := setup()
	if err != nil {
		return err
	}

	user, err := client.sessions.Register(context.Background(), name, email, password)
	if err != nil {
		return err
	}

	if client.sessions.IsDemo() {
		fmt.Printf("server unreachable, entered demo mode as %s\n", user.Name)
		return nil
	}

	fmt.Printf("registered as %s (id %d)\n", user.Name, user.ID)

	return nil
}

func runLogout(*cobra.Command, []string) error {
	client, err := setup()
	if err != nil {
		return err
	}

	client.sessions.Logout(context.Background())
	fmt.Println("logged out")

	return nil
}
