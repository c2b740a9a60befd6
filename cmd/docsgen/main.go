package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/sampleprograms/docsgen/cmd/docsgen/commands/howto"
	"github.com/sampleprograms/docsgen/cmd/docsgen/commands/preview"
	"github.com/sampleprograms/docsgen/cmd/docsgen/commands/readmes"
	"github.com/sampleprograms/docsgen/cmd/docsgen/commands/stats"
	"github.com/sampleprograms/docsgen/cmd/docsgen/commands/wiki"
	"github.com/sampleprograms/docsgen/cmd/docsgen/envutil"
	"github.com/sampleprograms/docsgen/cmd/docsgen/version"
)

var logLevel = new(slog.LevelVar)

func main() {
	logHandler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      logLevel,
		TimeFormat: time.Kitchen,
	})
	slog.SetDefault(slog.New(logHandler))
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		slog.Error("exiting with an error: " + err.Error())
		os.Exit(1)
	}
}

const example = `
  # Set the token if facing the GitHub API rate limit
  export GITHUB_TOKEN=...

  docsgen wiki ./sample-programs/archive

  docsgen readmes ./sample-programs/archive

  docsgen howto --output ./how-to-python-code
`

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "docsgen",
		Short:         "Documentation generator for the Sample Programs repository",
		Example:       example,
		Version:       version.GetVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.Bool("debug", envutil.Bool("DEBUG", false), "debug mode [$DEBUG]")
	flags.String("config", envutil.String("DOCSGEN_CONFIG", ""), "config file (default \".docsgen.yaml\") [$DOCSGEN_CONFIG]")
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if debug, _ := flags.GetBool("debug"); debug {
			logLevel.Set(slog.LevelDebug)
		}
		return nil
	}

	cmd.AddCommand(
		wiki.New(),
		readmes.New(),
		howto.New(),
		stats.New(),
		preview.New(),
	)
	return cmd
}
