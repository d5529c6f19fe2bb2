package cmd

import (
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "socialsphere",
		Short: "SocialSphere Client",
		Long:  "",
	}
)

var file string

func init() {
	rootCmd.PersistentFlags().StringVarP(&file, "config", "c", "config.toml", "config file")

	rootCmd.AddCommand(login)
	rootCmd.AddCommand(register)
	rootCmd.AddCommand(logout)
	rootCmd.AddCommand(feed)
	rootCmd.AddCommand(post)
	rootCmd.AddCommand(comment)
	rootCmd.AddCommand(react)
	rootCmd.AddCommand(messages)
	rootCmd.AddCommand(send)
	rootCmd.AddCommand(notificationsCmd)
	rootCmd.AddCommand(stories)
	rootCmd.AddCommand(profile)
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}
