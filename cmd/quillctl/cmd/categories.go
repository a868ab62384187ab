package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillpress/quillctl/internal/adapter/outbound/api"
)

var categoryArticlesPage int

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Browse categories and their articles",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all categories",
	RunE:  runCategoriesList,
}

var categoriesArticlesCmd = &cobra.Command{
	Use:   "articles <category-id>",
	Short: "List a category's articles",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryArticles,
}

func init() {
	categoriesArticlesCmd.Flags().IntVar(&categoryArticlesPage, "page", 1, "result page")
	categoriesCmd.AddCommand(categoriesListCmd)
	categoriesCmd.AddCommand(categoriesArticlesCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func runCategoriesList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	categories, err := a.client.Categories(cmd.Context())
	if err != nil {
		return err
	}

	for _, c := range categories {
		fmt.Printf("%-24s %s\n", c.Slug, c.Name)
	}
	return nil
}

func runCategoryArticles(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	page, err := a.client.CategoryArticles(cmd.Context(), args[0], categoryArticlesPage)
	if err != nil {
		return err
	}

	printArticlePage(page, categoryArticlesPage)
	return nil
}

func printArticlePage(page *api.ArticlePage, pageNum int) {
	for _, article := range page.Results {
		fmt.Printf("%-32s %-28s %s\n", article.Slug, article.Author, article.Title)
	}
	fmt.Printf("page %d, %d articles total", pageNum, page.Count)
	if page.Next != nil {
		fmt.Printf(" (more with --page %d)", pageNum+1)
	}
	fmt.Println()
}
