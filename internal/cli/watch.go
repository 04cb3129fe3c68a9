package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/docatlas/docatlas/internal/config"
	"github.com/docatlas/docatlas/internal/coordinator"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the catalog live and report changes until interrupted",
	Long: `Watch builds the catalog, subscribes to filesystem events, and keeps
the catalog current: descriptor and content create/delete events rebuild
it, while content edits only reset the affected file's cached bytes.

Runs until interrupted with Ctrl+C.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	rootDir, err := workspaceRoot()
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return err
	}
	cfg.Watch.Enabled = true

	c, err := coordinator.New(rootDir, cfg, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	cat, err := c.Catalog(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("watching %s (%d components)\n", rootDir, len(cat.Components()))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Println("\nstopping")
	return nil
}
