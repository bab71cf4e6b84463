package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"blog_cms/internal/render"
)

var viewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one article",
	Args:  cobra.ExactArgs(1),
	RunE:  runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().Bool("json", false, "output as JSON")
	viewCmd.Flags().String("placeholder", "", "image shown when the article has none")
}

func runView(cmd *cobra.Command, args []string) error {
	article, err := api.GetArticle(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(article)
	}

	placeholder, _ := cmd.Flags().GetString("placeholder")
	if placeholder == "" && fileCfg != nil {
		placeholder = fileCfg.Content.PlaceholderImage
	}

	status := dim("draft")
	if article.IsPublished {
		status = green("published")
	}

	fmt.Printf("%s  %s\n", bold(article.Title), status)
	fmt.Printf("%s\n\n", dim(fmt.Sprintf("id: %s  slug: %s  created: %s",
		article.ID, article.Slug, render.Timestamp(article.CreatedAt))))

	if image := render.DisplayImage(article.CoverImage, article.Content, placeholder); image != "" {
		fmt.Printf("image:   %s\n", image)
	}
	if excerpt := render.Excerpt(article.Excerpt, article.Content, 30); excerpt != "" {
		fmt.Printf("excerpt: %s\n", excerpt)
	}

	fmt.Println()
	fmt.Println(article.Content)
	return nil
}
