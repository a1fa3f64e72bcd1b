package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"backend-sparnet/internal/feed"
	"backend-sparnet/internal/kv"

	"github.com/spf13/cobra"
)

var (
	dataDir   string
	serverURL string
	author    feed.Author
)

var rootCmd = &cobra.Command{
	Use:   "sparnet",
	Short: "Spar-net command line client",
	Long: `sparnet is the command line client for the Spar-net training network.

The feed commands work against a local slot file and need no server.
The auth and onboard commands talk to a running Spar-net API.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", ".", "directory holding the local slot file")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8787", "base URL of the Spar-net API")
	rootCmd.PersistentFlags().StringVar(&author.Name, "name", "Spar-net Member", "display name for new posts")
	rootCmd.PersistentFlags().StringVar(&author.Handle, "handle", "member", "handle for new posts")

	rootCmd.AddCommand(feedCmd, onboardCmd, catalogCmd, signupCmd, loginCmd)
}

// openViewModel loads the feed from the local sqlite slot.
func openViewModel(ctx context.Context) (*feed.ViewModel, func(), error) {
	slot, err := kv.OpenSQLite(filepath.Join(dataDir, "sparnet.db"))
	if err != nil {
		return nil, nil, fmt.Errorf("open slot: %w", err)
	}
	vm := feed.NewViewModel(ctx, feed.NewStore(slot), author, nil)
	return vm, func() { _ = slot.Close() }, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
