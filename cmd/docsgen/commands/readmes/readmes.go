package readmes

import (
	"github.com/spf13/cobra"

	"github.com/sampleprograms/docsgen/cmd/docsgen/cliutil"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:                   "readmes [flags] SOURCE",
		Short:                 "Build the README of every language",
		Long:                  "Build the README of every language.\nWithout --output, each README is written into its language directory.",
		Args:                  cliutil.SourceArg,
		RunE:                  action,
		DisableFlagsInUseLine: true,
	}
	cliutil.AddGenerateFlags(cmd, "output directory; READMEs go to OUTPUT/LETTER/LANGUAGE")
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
	_, err = g.Readmes(ctx, r)
	return err
}
