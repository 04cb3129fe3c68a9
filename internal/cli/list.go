package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docatlas/docatlas/internal/config"
	"github.com/docatlas/docatlas/internal/coordinator"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the components and content files in the workspace",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	rootDir, err := workspaceRoot()
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return err
	}
	cfg.Watch.Enabled = false

	c, err := coordinator.New(rootDir, cfg, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	cat, err := c.Catalog(cmd.Context())
	if err != nil {
		return err
	}

	components := cat.Components()
	if len(components) == 0 {
		fmt.Println("no components found")
		return nil
	}

	for _, comp := range components {
		fmt.Printf("%s@%s (%s)\n", comp.Name, comp.Version, comp.RootPath)
		for name, mod := range comp.Modules {
			total := 0
			for _, records := range mod.Families {
				total += len(records)
			}
			fmt.Printf("  %s: %d files\n", name, total)
			if verbose {
				for family, records := range mod.Families {
					for _, rec := range records {
						fmt.Printf("    [%s] %s\n", family, rec.RelPath)
					}
				}
			}
		}
	}
	return nil
}
