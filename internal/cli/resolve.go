package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docatlas/docatlas/internal/config"
	"github.com/docatlas/docatlas/internal/coordinator"
)

var resourceFlag string

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve <document>",
	Short: "Resolve a document to its owning component",
	Long: `Resolve locates the component descriptor owning a document and prints
its coordinates. With --resource, it additionally resolves a resource
reference (e.g. partial$snippet.adoc) from that document's point of view
and prints the target's contents.

Examples:
  # Which component owns this page?
  docatlas resolve docs/api/modules/auth/pages/sso.adoc

  # Resolve an include target from the page's context
  docatlas resolve docs/api/modules/auth/pages/sso.adoc --resource 'partial$note.adoc'
`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringVarP(&resourceFlag, "resource", "r", "", "resource id to resolve from the document's context")
}

func runResolve(cmd *cobra.Command, args []string) error {
	rootDir, err := workspaceRoot()
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return err
	}
	// One-shot command: no point subscribing to filesystem events.
	cfg.Watch.Enabled = false

	c, err := coordinator.New(rootDir, cfg, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	docPath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve document path: %w", err)
	}

	dc, err := c.GetDocumentContext(cmd.Context(), docPath)
	if err != nil {
		return err
	}
	if dc == nil {
		fmt.Printf("%s does not belong to any component\n", args[0])
		return nil
	}

	fmt.Printf("component: %s\n", dc.Descriptor.Name)
	fmt.Printf("version:   %s\n", dc.Descriptor.Version)
	fmt.Printf("root:      %s\n", dc.Descriptor.RootPath)
	if module := moduleFromPath(docPath, dc.Descriptor.RootPath); module != "" {
		fmt.Printf("module:    %s\n", module)
	}

	if resourceFlag == "" {
		return nil
	}

	res, err := dc.ResolveResource(resourceFlag, docPath)
	if err != nil {
		return err
	}
	if res == nil {
		fmt.Printf("resource %s not found\n", resourceFlag)
		return nil
	}
	fmt.Printf("resource:  %s\n", res.Path)
	fmt.Println(string(res.Contents))
	return nil
}

// moduleFromPath extracts the module segment for display purposes.
func moduleFromPath(docPath, root string) string {
	rel, err := filepath.Rel(root, docPath)
	if err != nil {
		return ""
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) >= 2 && parts[0] == "modules" {
		return parts[1]
	}
	return ""
}
