// Package cmd provides the CLI commands for quillctl.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillpress/quillctl/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "quillctl",
	Short: "quillctl - QuillPress command-line client",
	Long: `quillctl is the command-line client for the QuillPress publishing platform.

It maintains a token-backed session across invocations: log in once and
every later command is automatically authenticated, with expired access
tokens refreshed transparently.

Quick start:
  1. quillctl config init
  2. quillctl login --email you@example.com
  3. quillctl whoami

Configuration:
  Config is loaded from quillctl.yaml in the current directory or
  $HOME/.quillctl/.

  Environment variables can override config values with the QUILLCTL_ prefix.
  Example: QUILLCTL_SERVER_URL=https://quillpress.example.com

Commands:
  login       Log in and store the session credentials
  register    Create an account and log in
  logout      Discard the stored session
  whoami      Show the current user
  profile     Show or update your profile
  passwd      Change your password
  categories  Browse categories and their articles
  tags        Browse tags and their articles
  authors     Browse the author directory
  comments    Read and write article comments
  contact     Send and manage contact messages
  subscribers Manage newsletter subscriptions
  users       Manage user accounts (admin)
  config      Manage quillctl configuration
  version     Print version information`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./quillctl.yaml)")
}

func initConfig() {
	config.InitViper(cfgFile)
}
