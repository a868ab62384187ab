package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillpress/quillctl/internal/domain/guard"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current user",
	Long: `Show the user behind the stored session.

This resolves the session exactly the way every authenticated command
does: the stored access token is presented to the server and silently
refreshed if it has expired.`,
	RunE: runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	user, err := a.guardAuth(cmd.Context(), guard.RouteProfile)
	if err != nil {
		return err
	}

	fmt.Printf("%s <%s>\n", user.Name, user.Email)
	fmt.Printf("  Role:   %s\n", user.Role)
	fmt.Printf("  Joined: %s\n", user.JoinDate.Format("2006-01-02"))
	if !user.IsActive {
		fmt.Println("  Status: deactivated")
	}
	return nil
}
