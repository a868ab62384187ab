package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var authorsPage int

var authorsCmd = &cobra.Command{
	Use:   "authors",
	Short: "Browse the author directory",
}

var authorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List authors",
	RunE:  runAuthorsList,
}

var authorsShowCmd = &cobra.Command{
	Use:   "show <author-id>",
	Short: "Show an author and their articles",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuthorsShow,
}

func init() {
	authorsListCmd.Flags().IntVar(&authorsPage, "page", 1, "result page")
	authorsCmd.AddCommand(authorsListCmd)
	authorsCmd.AddCommand(authorsShowCmd)
	rootCmd.AddCommand(authorsCmd)
}

func runAuthorsList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	page, err := a.client.Authors(cmd.Context(), authorsPage)
	if err != nil {
		return err
	}

	for _, author := range page.Results {
		fmt.Printf("%-36s %-24s %3d articles\n", author.ID, author.Name, author.ArticleCount)
	}
	fmt.Printf("page %d, %d authors total", authorsPage, page.Count)
	if page.Next != nil {
		fmt.Printf(" (more with --page %d)", authorsPage+1)
	}
	fmt.Println()
	return nil
}

func runAuthorsShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	author, err := a.client.AuthorByID(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s <%s>\n", author.Name, author.Email)
	if author.Bio != "" {
		fmt.Printf("  Bio:      %s\n", author.Bio)
	}
	fmt.Printf("  Articles: %d\n", author.ArticleCount)
	for _, article := range author.Articles {
		fmt.Printf("    %-32s %s\n", article.Slug, article.Title)
	}
	return nil
}
