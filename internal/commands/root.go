package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roydza27/MindEaseLite-sub000/internal"
	"github.com/roydza27/MindEaseLite-sub000/internal/client"
	"github.com/roydza27/MindEaseLite-sub000/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "mindease",
	Short: "A mental-wellness companion in your terminal",
	Long: `mindease tracks your mood and focus sessions against a MindEase server.
Run it with no arguments to open the companion screens.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAuthedClient()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		user, err := api.Me(ctx)
		cancel()
		if err != nil {
			return fmt.Errorf("could not load your profile (token expired?): %w", err)
		}

		return tui.Run(api, user, tui.PostSubmitCompletion)
	},
}

// newAuthedClient builds an API client from the stored token.
func newAuthedClient() (*client.Client, error) {
	token, err := loadToken()
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, fmt.Errorf("not logged in, run 'mindease login' first")
	}
	return client.New(apiBaseURL(), token, internal.NopLogger{}), nil
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mindease %s (%s, built %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(versionCmd)
}
