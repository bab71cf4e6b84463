package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <path>",
	Short: "Upload an image",
	Long: `Upload an image and print the URL it is served under. The URL can
be used as a cover image or embedded in article content.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	url, err := uploadFromPath(cmd, args[0])
	if err != nil {
		return err
	}

	fmt.Println(url)
	return nil
}
