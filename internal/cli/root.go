// Package cli contains the blogctl commands.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"blog_cms/internal/client"
	"blog_cms/internal/config"
)

var (
	cfgFile   string
	serverURL string
	tokenFlag string
	timeout   time.Duration
	verbose   bool

	api     *client.Client
	fileCfg *config.Config
	logger  *slog.Logger

	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "blogctl",
	Short: "Blog content management CLI",
	Long: `blogctl manages articles on a blog API deployment.

Example usage:
  blogctl login admin              # Obtain a session token
  blogctl list                     # List articles, newest first
  blogctl view <id>                # Show one article
  blogctl create --title "..."     # Create an article
  blogctl delete <id>              # Delete an article`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initClient()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file with a client section")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "API base URL (default http://localhost:8080, or BLOGCTL_SERVER)")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "session token (default from BLOGCTL_TOKEN or the token file)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initClient() error {
	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	clientCfg := client.Config{
		Timeout:     timeout,
		MaxAttempts: 3,
		Backoff:     2 * time.Second,
	}
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		fileCfg = cfg
		clientCfg.BaseURL = cfg.Client.BaseURL
		clientCfg.Timeout = cfg.Client.Timeout
		clientCfg.MaxAttempts = cfg.Client.Retry.MaxAttempts
		clientCfg.Backoff = cfg.Client.Retry.Backoff
	}

	if serverURL != "" {
		clientCfg.BaseURL = serverURL
	}
	if clientCfg.BaseURL == "" {
		clientCfg.BaseURL = os.Getenv("BLOGCTL_SERVER")
	}
	if clientCfg.BaseURL == "" {
		clientCfg.BaseURL = "http://localhost:8080"
	}
	clientCfg.BaseURL = strings.TrimRight(clientCfg.BaseURL, "/")

	api = client.New(clientCfg, logger)

	if token := resolveToken(); token != "" {
		api.SetToken(token)
	}
	return nil
}

func resolveToken() string {
	if tokenFlag != "" {
		return tokenFlag
	}
	if token := os.Getenv("BLOGCTL_TOKEN"); token != "" {
		return token
	}
	data, err := os.ReadFile(tokenPath())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func tokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".blogctl-token"
	}
	return filepath.Join(home, ".blogctl", "token")
}

func saveToken(token string) error {
	path := tokenPath()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}
