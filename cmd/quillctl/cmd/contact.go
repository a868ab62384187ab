package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillpress/quillctl/internal/adapter/outbound/api"
	"github.com/quillpress/quillctl/internal/domain/auth"
	"github.com/quillpress/quillctl/internal/domain/guard"
)

var (
	contactName       string
	contactEmail      string
	contactSubject    string
	contactMessage    string
	contactNewsletter bool
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Send and manage contact messages",
}

var contactSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a message through the contact form",
	Long: `Send a message through the contact form.

No session is required; --newsletter additionally subscribes the sender
to the newsletter.`,
	RunE: runContactSend,
}

var contactListCmd = &cobra.Command{
	Use:   "list",
	Short: "List received contact messages (admin)",
	RunE:  runContactList,
}

var contactReplyCmd = &cobra.Command{
	Use:   "reply <message-id> <reply>",
	Short: "Reply to a contact message (admin)",
	Args:  cobra.ExactArgs(2),
	RunE:  runContactReply,
}

var contactDeleteCmd = &cobra.Command{
	Use:   "delete <message-id>",
	Short: "Delete a contact message (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactDelete,
}

func init() {
	contactSendCmd.Flags().StringVar(&contactName, "name", "", "your name")
	contactSendCmd.Flags().StringVar(&contactEmail, "email", "", "your email")
	contactSendCmd.Flags().StringVar(&contactSubject, "subject", "", "message subject")
	contactSendCmd.Flags().StringVar(&contactMessage, "message", "", "message body")
	contactSendCmd.Flags().BoolVar(&contactNewsletter, "newsletter", false, "also subscribe to the newsletter")
	contactCmd.AddCommand(contactSendCmd)
	contactCmd.AddCommand(contactListCmd)
	contactCmd.AddCommand(contactReplyCmd)
	contactCmd.AddCommand(contactDeleteCmd)
	rootCmd.AddCommand(contactCmd)
}

func runContactSend(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if contactName == "" || contactEmail == "" || contactSubject == "" || contactMessage == "" {
		return fmt.Errorf("all of --name, --email, --subject, and --message are required")
	}

	err = a.client.SubmitContact(cmd.Context(), api.ContactInput{
		Name:       contactName,
		Email:      contactEmail,
		Subject:    contactSubject,
		Message:    contactMessage,
		Newsletter: contactNewsletter,
	})
	if err != nil {
		return err
	}

	fmt.Println("Message sent.")
	return nil
}

func runContactList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if _, err := a.guardAuth(cmd.Context(), guard.RouteAdmin, auth.RoleAdmin); err != nil {
		return err
	}

	messages, err := a.client.ContactMessages(cmd.Context())
	if err != nil {
		return err
	}

	for _, m := range messages {
		status := " "
		if m.Replied {
			status = "R"
		}
		fmt.Printf("%s %-36s [%s] %s <%s>: %s\n",
			status, m.ID, m.CreatedAt.Format("2006-01-02"), m.Name, m.Email, m.Subject)
	}
	return nil
}

func runContactReply(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if _, err := a.guardAuth(cmd.Context(), guard.RouteAdmin, auth.RoleAdmin); err != nil {
		return err
	}

	if err := a.client.ReplyContact(cmd.Context(), args[0], args[1]); err != nil {
		return err
	}

	fmt.Println("Reply sent.")
	return nil
}

func runContactDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if _, err := a.guardAuth(cmd.Context(), guard.RouteAdmin, auth.RoleAdmin); err != nil {
		return err
	}

	if err := a.client.DeleteContact(cmd.Context(), args[0]); err != nil {
		return err
	}

	fmt.Println("Message deleted.")
	return nil
}
