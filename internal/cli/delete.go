package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an article",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolP("force", "f", false, "skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	id := args[0]

	if force, _ := cmd.Flags().GetBool("force"); !force {
		article, err := api.GetArticle(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "Delete %s? [y/N] ", bold(article.Title))
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Fprintln(os.Stderr, yellow("aborted"))
			return nil
		}
	}

	if err := api.DeleteArticle(cmd.Context(), id); err != nil {
		return err
	}

	fmt.Printf("%s deleted %s\n", green("✓"), id)
	return nil
}
