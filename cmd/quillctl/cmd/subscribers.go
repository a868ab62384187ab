package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillpress/quillctl/internal/domain/auth"
	"github.com/quillpress/quillctl/internal/domain/guard"
)

var subscribersCmd = &cobra.Command{
	Use:   "subscribers",
	Short: "Manage newsletter subscriptions",
}

var subscribersAddCmd = &cobra.Command{
	Use:   "add <email>",
	Short: "Subscribe an email to the newsletter",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubscribersAdd,
}

var subscribersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List subscriptions (admin)",
	RunE:  runSubscribersList,
}

var subscribersToggleCmd = &cobra.Command{
	Use:   "toggle <subscriber-id>",
	Short: "Pause or resume a subscription (admin)",
	Long: `Pause an active subscription or resume a paused one.

The subscriber record is kept either way; use delete to remove it.`,
	Args: cobra.ExactArgs(1),
	RunE: runSubscribersToggle,
}

var subscribersDeleteCmd = &cobra.Command{
	Use:   "delete <subscriber-id>",
	Short: "Remove a subscription (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubscribersDelete,
}

func init() {
	subscribersCmd.AddCommand(subscribersAddCmd)
	subscribersCmd.AddCommand(subscribersListCmd)
	subscribersCmd.AddCommand(subscribersToggleCmd)
	subscribersCmd.AddCommand(subscribersDeleteCmd)
	rootCmd.AddCommand(subscribersCmd)
}

func runSubscribersAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.client.Subscribe(cmd.Context(), args[0]); err != nil {
		return err
	}

	fmt.Printf("%s is now subscribed.\n", args[0])
	return nil
}

func runSubscribersList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if _, err := a.guardAuth(cmd.Context(), guard.RouteAdmin, auth.RoleAdmin); err != nil {
		return err
	}

	subscribers, err := a.client.Subscribers(cmd.Context())
	if err != nil {
		return err
	}

	for _, s := range subscribers {
		status := "active"
		if !s.IsActive {
			status = "paused"
		}
		fmt.Printf("%-36s %-8s since %s  %s\n",
			s.ID, status, s.SubscribedAt.Format("2006-01-02"), s.Email)
	}
	return nil
}

func runSubscribersToggle(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if _, err := a.guardAuth(cmd.Context(), guard.RouteAdmin, auth.RoleAdmin); err != nil {
		return err
	}

	subscribers, err := a.client.Subscribers(cmd.Context())
	if err != nil {
		return err
	}
	for _, s := range subscribers {
		if s.ID != args[0] {
			continue
		}
		updated, err := a.client.SetSubscriberActive(cmd.Context(), s.ID, !s.IsActive)
		if err != nil {
			return err
		}
		state := "resumed"
		if !updated.IsActive {
			state = "paused"
		}
		fmt.Printf("Subscription for %s %s.\n", updated.Email, state)
		return nil
	}
	return fmt.Errorf("no subscriber with id %s", args[0])
}

func runSubscribersDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if _, err := a.guardAuth(cmd.Context(), guard.RouteAdmin, auth.RoleAdmin); err != nil {
		return err
	}

	if err := a.client.DeleteSubscriber(cmd.Context(), args[0]); err != nil {
		return err
	}

	fmt.Println("Subscription removed.")
	return nil
}
