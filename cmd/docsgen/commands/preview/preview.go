package preview

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sampleprograms/docsgen/pkg/document"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:                   "preview FILE.md",
		Short:                 "Render a Markdown file as HTML on stdout",
		Args:                  cobra.ExactArgs(1),
		RunE:                  action,
		DisableFlagsInUseLine: true,
	}
	return cmd
}

func action(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	b, err := document.MarkdownToHTML(src)
	if err != nil {
		return fmt.Errorf("failed to render %q: %w", args[0], err)
	}
	_, err = cmd.OutOrStdout().Write(b)
	return err
}
