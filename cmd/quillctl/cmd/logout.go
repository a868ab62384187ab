package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session",
	Long: `Log out by clearing the stored credential pair.

Logout is local and immediate: no server round-trip is needed for the
session to be over.`,
	RunE: runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	a.session.Logout()
	fmt.Println("Logged out.")
	return nil
}
