package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"blog_cms/internal/client"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update fields of an article",
	Long: `Update an article. Only the flags you pass are sent; everything
else keeps its current value. Changing the title re-derives the slug.

Examples:
  blogctl edit <id> --title "New Title"
  blogctl edit <id> --publish
  blogctl edit <id> --content-file revised.html --unpublish`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().String("title", "", "new title")
	editCmd.Flags().String("content", "", "new body HTML")
	editCmd.Flags().String("content-file", "", "read the new body from a file")
	editCmd.Flags().String("excerpt", "", "new excerpt")
	editCmd.Flags().String("image", "", "upload a new cover image from this path")
	editCmd.Flags().Bool("publish", false, "publish the article")
	editCmd.Flags().Bool("unpublish", false, "revert the article to a draft")

	editCmd.MarkFlagsMutuallyExclusive("content", "content-file")
	editCmd.MarkFlagsMutuallyExclusive("publish", "unpublish")
}

func runEdit(cmd *cobra.Command, args []string) error {
	id := args[0]

	// Fetch first so a bad id fails before any upload happens and the
	// confirmation message can name the article.
	current, err := api.GetArticle(cmd.Context(), id)
	if err != nil {
		return err
	}

	var draft client.ArticleDraft

	if cmd.Flags().Changed("title") {
		title, _ := cmd.Flags().GetString("title")
		draft.Title = &title
	}
	if cmd.Flags().Changed("content") {
		content, _ := cmd.Flags().GetString("content")
		draft.Content = &content
	}
	if cmd.Flags().Changed("content-file") {
		path, _ := cmd.Flags().GetString("content-file")
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read content file: %w", err)
		}
		content := string(data)
		draft.Content = &content
	}
	if cmd.Flags().Changed("excerpt") {
		excerpt, _ := cmd.Flags().GetString("excerpt")
		draft.Excerpt = &excerpt
	}
	if cmd.Flags().Changed("image") {
		path, _ := cmd.Flags().GetString("image")
		url, err := uploadFromPath(cmd, path)
		if err != nil {
			return err
		}
		draft.CoverImage = &url
	}
	if cmd.Flags().Changed("publish") {
		published := true
		draft.IsPublished = &published
	}
	if cmd.Flags().Changed("unpublish") {
		published := false
		draft.IsPublished = &published
	}

	if draft == (client.ArticleDraft{}) {
		return fmt.Errorf("nothing to change for %q: pass at least one field flag", current.Title)
	}

	article, err := api.UpdateArticle(cmd.Context(), id, draft)
	if err != nil {
		return err
	}

	fmt.Printf("%s updated %s (slug %s)\n", green("✓"), bold(article.Title), article.Slug)
	return nil
}
