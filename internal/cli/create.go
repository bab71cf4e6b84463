package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"blog_cms/internal/client"
	"blog_cms/internal/imaging"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an article",
	Long: `Create an article. The slug is derived from the title by the server.

Examples:
  blogctl create --title "Hello" --content-file post.html
  blogctl create --title "Hello" --content "<p>hi</p>" --image cover.png --publish`,
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().String("title", "", "article title (required)")
	createCmd.Flags().String("content", "", "article body HTML")
	createCmd.Flags().String("content-file", "", "read the body from a file")
	createCmd.Flags().String("excerpt", "", "hand-written excerpt")
	createCmd.Flags().String("image", "", "upload a cover image from this path")
	createCmd.Flags().Bool("publish", false, "publish immediately instead of saving a draft")

	_ = createCmd.MarkFlagRequired("title")
	createCmd.MarkFlagsMutuallyExclusive("content", "content-file")
}

func runCreate(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	excerpt, _ := cmd.Flags().GetString("excerpt")
	publish, _ := cmd.Flags().GetBool("publish")

	content, err := resolveContent(cmd)
	if err != nil {
		return err
	}

	draft := client.ArticleDraft{
		Title:       &title,
		Content:     &content,
		IsPublished: &publish,
	}
	if excerpt != "" {
		draft.Excerpt = &excerpt
	}

	if imagePath, _ := cmd.Flags().GetString("image"); imagePath != "" {
		url, err := uploadFromPath(cmd, imagePath)
		if err != nil {
			return err
		}
		draft.CoverImage = &url
	}

	article, err := api.CreateArticle(cmd.Context(), draft)
	if err != nil {
		return err
	}

	fmt.Printf("%s created %s (id %s, slug %s)\n", green("✓"), bold(article.Title), article.ID, article.Slug)
	return nil
}

func resolveContent(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("content-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read content file: %w", err)
		}
		return string(data), nil
	}
	content, _ := cmd.Flags().GetString("content")
	return content, nil
}

// uploadFromPath downscales oversized images locally before sending, so
// a phone photo does not push megabytes over a slow link.
func uploadFromPath(cmd *cobra.Command, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	processed, err := imaging.NewProcessor(1600, 85).Process(data, "")
	if err != nil {
		return "", fmt.Errorf("process image: %w", err)
	}

	upload, err := api.UploadImage(cmd.Context(), filepath.Base(path), processed.Data)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return upload.URL, nil
}
