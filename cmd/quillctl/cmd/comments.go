package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quillpress/quillctl/internal/adapter/outbound/api"
	"github.com/quillpress/quillctl/internal/domain/guard"
)

var (
	commentParent   string
	commentDislike  bool
	flagDescription string
)

var commentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "Read and write article comments",
}

var commentsListCmd = &cobra.Command{
	Use:   "list <article-id>",
	Short: "List an article's comments",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentsList,
}

var commentsAddCmd = &cobra.Command{
	Use:   "add <article-id> <content>",
	Short: "Comment on an article",
	Args:  cobra.ExactArgs(2),
	RunE:  runCommentsAdd,
}

var commentsLikeCmd = &cobra.Command{
	Use:   "like <comment-id>",
	Short: "Like (or with --dislike, dislike) a comment",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentsLike,
}

var commentsFlagCmd = &cobra.Command{
	Use:   "flag <comment-id> <reason>",
	Short: "Report a comment for moderation",
	Long: `Report a comment for moderation.

Reasons: spam, harassment, hate_speech, inappropriate, misinformation, other.`,
	Args: cobra.ExactArgs(2),
	RunE: runCommentsFlag,
}

func init() {
	commentsAddCmd.Flags().StringVar(&commentParent, "reply-to", "", "parent comment id for a reply")
	commentsLikeCmd.Flags().BoolVar(&commentDislike, "dislike", false, "record a dislike instead of a like")
	commentsFlagCmd.Flags().StringVar(&flagDescription, "description", "", "free-form details for the moderators")
	commentsCmd.AddCommand(commentsListCmd)
	commentsCmd.AddCommand(commentsAddCmd)
	commentsCmd.AddCommand(commentsLikeCmd)
	commentsCmd.AddCommand(commentsFlagCmd)
	rootCmd.AddCommand(commentsCmd)
}

func runCommentsList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	comments, err := a.client.ArticleComments(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	printComments(comments, 0)
	return nil
}

func printComments(comments []api.Comment, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, c := range comments {
		author := "anonymous"
		if c.User != nil {
			author = c.User.Name
		}
		fmt.Printf("%s[%s] %s (+%d/-%d): %s\n",
			indent, c.CreatedAt.Format("2006-01-02"), author, c.LikesCount, c.DislikesCount, c.Content)
		printComments(c.Replies, depth+1)
	}
}

func runCommentsAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if _, err := a.guardAuth(cmd.Context(), guard.RouteHome); err != nil {
		return err
	}

	comment, err := a.client.CreateComment(cmd.Context(), api.CreateCommentInput{
		ArticleID: args[0],
		Content:   args[1],
		Parent:    commentParent,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Comment %s posted.\n", comment.ID)
	return nil
}

func runCommentsLike(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if _, err := a.guardAuth(cmd.Context(), guard.RouteHome); err != nil {
		return err
	}

	comment, err := a.client.LikeComment(cmd.Context(), args[0], !commentDislike)
	if err != nil {
		return err
	}

	fmt.Printf("Recorded. Now +%d/-%d.\n", comment.LikesCount, comment.DislikesCount)
	return nil
}

func runCommentsFlag(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if _, err := a.guardAuth(cmd.Context(), guard.RouteHome); err != nil {
		return err
	}

	if err := a.client.FlagComment(cmd.Context(), args[0], api.FlagReason(args[1]), flagDescription); err != nil {
		return err
	}

	fmt.Println("Thanks, the comment has been reported.")
	return nil
}
