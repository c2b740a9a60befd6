package wiki

import (
	"github.com/spf13/cobra"

	"github.com/sampleprograms/docsgen/cmd/docsgen/cliutil"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:                   "wiki [flags] SOURCE",
		Short:                 "Build the alphabetical wiki",
		Args:                  cliutil.SourceArg,
		RunE:                  action,
		DisableFlagsInUseLine: true,
	}
	cliutil.AddGenerateFlags(cmd, "output directory (default \"wiki\")")
	return cmd
}

func action(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := cliutil.LoadConfig(cmd)
	if err != nil {
		return err
	}
	r, err := cliutil.LoadRepo(cfg, args[0])
	if err != nil {
		return err
	}
	g, err := cliutil.Generator(ctx, cfg)
	if err != nil {
		return err
	}
	_, err = g.Wiki(ctx, r)
	return err
}
