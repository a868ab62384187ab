package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tagArticlesPage int

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Browse tags and their articles",
}

var tagsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tags",
	RunE:  runTagsList,
}

var tagsArticlesCmd = &cobra.Command{
	Use:   "articles <tag-id>",
	Short: "List a tag's articles",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagArticles,
}

func init() {
	tagsArticlesCmd.Flags().IntVar(&tagArticlesPage, "page", 1, "result page")
	tagsCmd.AddCommand(tagsListCmd)
	tagsCmd.AddCommand(tagsArticlesCmd)
	rootCmd.AddCommand(tagsCmd)
}

func runTagsList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	tags, err := a.client.Tags(cmd.Context())
	if err != nil {
		return err
	}

	for _, t := range tags {
		fmt.Printf("%-24s %s\n", t.Slug, t.Name)
	}
	return nil
}

func runTagArticles(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	page, err := a.client.TagArticles(cmd.Context(), args[0], tagArticlesPage)
	if err != nil {
		return err
	}

	printArticlePage(page, tagArticlesPage)
	return nil
}
