package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"blog_cms/internal/render"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List articles, newest first",
	Long: `List articles, newest first.

Examples:
  blogctl list                 # All articles
  blogctl list --limit 10      # Most recent ten
  blogctl list --json          # Output as JSON`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().Int("limit", 0, "maximum number of articles (0 means all)")
	listCmd.Flags().Bool("json", false, "output as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	articles, err := api.ListArticles(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(articles)
	}

	if len(articles) == 0 {
		fmt.Println(dim("no articles yet"))
		return nil
	}

	t := stdoutTable([]string{"ID", "TITLE", "SLUG", "PUBLISHED", "CREATED", "EXCERPT"})
	for _, a := range articles {
		published := dim("draft")
		if a.IsPublished {
			published = green("yes")
		}
		t.addRow([]string{
			a.ID,
			bold(a.Title),
			a.Slug,
			published,
			render.Timestamp(a.CreatedAt),
			render.Excerpt(a.Excerpt, a.Content, 12),
		})
	}
	t.render()
	return nil
}
