package cli

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Authenticate and store a session token",
	Long: `Authenticate against the API and store the session token in
~/.blogctl/token for later commands.

The password is read from the terminal unless --password is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password (prompted when omitted)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	username := args[0]

	password := loginPassword
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		password = string(raw)
	}

	token, err := api.Login(cmd.Context(), username, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	if err := saveToken(token); err != nil {
		return err
	}

	fmt.Printf("%s logged in as %s\n", green("✓"), bold(username))
	return nil
}
