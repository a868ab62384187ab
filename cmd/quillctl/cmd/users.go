package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillpress/quillctl/internal/adapter/outbound/api"
	"github.com/quillpress/quillctl/internal/domain/auth"
	"github.com/quillpress/quillctl/internal/domain/guard"
)

var (
	userRole       string
	userDeactivate bool
	userActivate   bool
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts (admin)",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all accounts",
	RunE:  runUsersList,
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <user-id>",
	Short: "Change an account's role or active flag",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersUpdate,
}

func init() {
	usersUpdateCmd.Flags().StringVar(&userRole, "role", "", "new role: admin, author, or reader")
	usersUpdateCmd.Flags().BoolVar(&userDeactivate, "deactivate", false, "deactivate the account")
	usersUpdateCmd.Flags().BoolVar(&userActivate, "activate", false, "reactivate the account")
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersUpdateCmd)
	rootCmd.AddCommand(usersCmd)
}

func runUsersList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	// The admin dashboard is role-gated; a non-admin gets the
	// authorization redirect, not the login one.
	if _, err := a.guardAuth(cmd.Context(), guard.RouteAdmin, auth.RoleAdmin); err != nil {
		return err
	}

	users, err := a.client.Users(cmd.Context())
	if err != nil {
		return err
	}

	for _, u := range users {
		status := "active"
		if !u.IsActive {
			status = "deactivated"
		}
		fmt.Printf("%-6d %-8s %-12s %s <%s>\n", u.ID, u.Role, status, u.Name, u.Email)
	}
	return nil
}

func runUsersUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if _, err := a.guardAuth(cmd.Context(), guard.RouteAdmin, auth.RoleAdmin); err != nil {
		return err
	}

	if userDeactivate && userActivate {
		return fmt.Errorf("--activate and --deactivate are mutually exclusive")
	}

	update := api.UserUpdate{}
	if userRole != "" {
		role := auth.Role(userRole)
		update.Role = &role
	}
	if userDeactivate || userActivate {
		active := userActivate
		update.IsActive = &active
	}
	if update.Role == nil && update.IsActive == nil {
		return fmt.Errorf("nothing to update; pass --role, --activate, or --deactivate")
	}

	user, err := a.client.UpdateUser(cmd.Context(), args[0], update)
	if err != nil {
		return err
	}

	fmt.Printf("Updated %s: role=%s active=%t\n", user.Email, user.Role, user.IsActive)
	return nil
}
