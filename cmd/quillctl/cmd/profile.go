package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillpress/quillctl/internal/domain/auth"
	"github.com/quillpress/quillctl/internal/domain/guard"
)

var (
	profileName   string
	profileEmail  string
	profileAvatar string
	profileBio    string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE:  runProfileShow,
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	Long: `Update profile fields.

Only the flags you pass are changed. The update is persisted server-side
first; the local session then merges the same fields.`,
	RunE: runProfileUpdate,
}

func init() {
	profileUpdateCmd.Flags().StringVar(&profileName, "name", "", "display name")
	profileUpdateCmd.Flags().StringVar(&profileEmail, "email", "", "email address")
	profileUpdateCmd.Flags().StringVar(&profileAvatar, "avatar", "", "avatar URL")
	profileUpdateCmd.Flags().StringVar(&profileBio, "bio", "", "profile bio")
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUpdateCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, args []string) error {
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
	if user.Bio != "" {
		fmt.Printf("  Bio:    %s\n", user.Bio)
	}
	if user.Avatar != "" {
		fmt.Printf("  Avatar: %s\n", user.Avatar)
	}
	fmt.Printf("  Joined: %s\n", user.JoinDate.Format("2006-01-02"))
	return nil
}

func runProfileUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if _, err := a.guardAuth(cmd.Context(), guard.RouteProfile); err != nil {
		return err
	}

	update := auth.ProfileUpdate{}
	if cmd.Flags().Changed("name") {
		update.Name = &profileName
	}
	if cmd.Flags().Changed("email") {
		update.Email = &profileEmail
	}
	if cmd.Flags().Changed("avatar") {
		update.Avatar = &profileAvatar
	}
	if cmd.Flags().Changed("bio") {
		update.Bio = &profileBio
	}
	if update == (auth.ProfileUpdate{}) {
		return fmt.Errorf("nothing to update; pass at least one of --name, --email, --avatar, --bio")
	}

	user, err := a.client.UpdateProfile(cmd.Context(), update)
	if err != nil {
		return err
	}

	// Server persisted the change; merge the same fields locally.
	a.session.UpdateUser(update)

	fmt.Printf("Profile updated: %s <%s>\n", user.Name, user.Email)
	return nil
}
