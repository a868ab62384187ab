package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	registerName     string
	registerEmail    string
	registerPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	Long: `Create a QuillPress account.

Registration implies login: on success the credential pair is stored and
later commands run as the new user.`,
	RunE: runRegister,
}

func init() {
	registerCmd.Flags().StringVar(&registerName, "name", "", "display name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "account password (prompted if omitted)")
	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.guardPublic(cmd.Context()); err != nil {
		return err
	}

	name := registerName
	if name == "" {
		name, err = promptLine("Name: ")
		if err != nil {
			return err
		}
	}
	email := registerEmail
	if email == "" {
		email, err = promptLine("Email: ")
		if err != nil {
			return err
		}
	}
	password := registerPassword
	if password == "" {
		password, err = promptPassword("Password: ")
		if err != nil {
			return err
		}
	}

	result := a.session.Register(cmd.Context(), name, email, password)
	if !result.OK {
		printAuthError(result.Err)
		return fmt.Errorf("registration failed")
	}

	fmt.Printf("Welcome, %s! You are now logged in.\n", result.User.Name)
	return nil
}
