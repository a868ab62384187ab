package cmd

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/quillpress/quillctl/internal/service"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session credentials",
	Long: `Log in to the QuillPress server.

On success the access/refresh token pair is stored (per storage config) so
later commands run authenticated without logging in again.

The password is read from the terminal when --password is not given.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password (prompted if omitted)")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.guardPublic(cmd.Context()); err != nil {
		return err
	}

	email := loginEmail
	if email == "" {
		email, err = promptLine("Email: ")
		if err != nil {
			return err
		}
	}
	password := loginPassword
	if password == "" {
		password, err = promptPassword("Password: ")
		if err != nil {
			return err
		}
	}

	result := a.session.Login(cmd.Context(), email, password)
	if !result.OK {
		printAuthError(result.Err)
		return fmt.Errorf("login failed")
	}

	fmt.Printf("Logged in as %s (%s)\n", result.User.Name, result.User.Role)
	return nil
}

// printAuthError renders the discriminated auth failure: the overall
// message plus any field-level messages, the way a form would inline them.
func printAuthError(authErr *service.AuthError) {
	if authErr == nil {
		return
	}
	fmt.Fprintln(os.Stderr, authErr.Message)

	fields := make([]string, 0, len(authErr.Fields))
	for name := range authErr.Fields {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	for _, name := range fields {
		for _, msg := range authErr.Fields[name] {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", name, msg)
		}
	}
}

func promptLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
