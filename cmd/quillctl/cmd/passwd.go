package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillpress/quillctl/internal/domain/guard"
)

var (
	passwdResetEmail string
	passwdResetToken string
)

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change your password",
	Long: `Change the password of the logged-in account.

Use --reset-email to request a password reset link instead (no session
required), or --reset-token to complete a reset with a mailed token.`,
	RunE: runPasswd,
}

func init() {
	passwdCmd.Flags().StringVar(&passwdResetEmail, "reset-email", "", "request a password reset link for this email")
	passwdCmd.Flags().StringVar(&passwdResetToken, "reset-token", "", "complete a password reset with this token")
	rootCmd.AddCommand(passwdCmd)
}

func runPasswd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if passwdResetEmail != "" {
		if err := a.client.RequestPasswordReset(cmd.Context(), passwdResetEmail); err != nil {
			return err
		}
		fmt.Println("If that account exists, a reset link has been sent.")
		return nil
	}

	if passwdResetToken != "" {
		newPassword, err := promptPassword("New password: ")
		if err != nil {
			return err
		}
		if err := a.client.ResetPassword(cmd.Context(), passwdResetToken, newPassword); err != nil {
			return err
		}
		fmt.Println("Password reset. You can now log in with the new password.")
		return nil
	}

	if _, err := a.guardAuth(cmd.Context(), guard.RouteProfile); err != nil {
		return err
	}

	oldPassword, err := promptPassword("Current password: ")
	if err != nil {
		return err
	}
	newPassword, err := promptPassword("New password: ")
	if err != nil {
		return err
	}

	if err := a.client.ChangePassword(cmd.Context(), oldPassword, newPassword); err != nil {
		return err
	}
	fmt.Println("Password changed.")
	return nil
}
