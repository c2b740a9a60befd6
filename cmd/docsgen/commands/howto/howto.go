package howto

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sampleprograms/docsgen/cmd/docsgen/cliutil"
	"github.com/sampleprograms/docsgen/pkg/feed"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:                   "howto [flags]",
		Short:                 "Build the How to Python README from the series feed",
		Args:                  cobra.NoArgs,
		RunE:                  action,
		DisableFlagsInUseLine: true,
	}
	cliutil.AddGenerateFlags(cmd, "output directory (default \".\")")
	cmd.Flags().Int("max-pages", 0, "stop reading the feed after this many pages (0: no limit)")
	return cmd
}

func action(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := cliutil.LoadConfig(cmd)
	if err != nil {
		return err
	}
	maxPages := cfg.HowTo.MaxPages
	if flags := cmd.Flags(); flags.Changed("max-pages") {
		if maxPages, err = flags.GetInt("max-pages"); err != nil {
			return err
		}
	}
	onProgress := func(ctx context.Context, ev feed.ProgressEvent) {
		slog.InfoContext(ctx, "progress: read feed page", "page", ev.Page, "entries", ev.Entries)
	}
	f, err := feed.New(feed.WithMaxPages(maxPages), feed.WithProgressEventHandler(onProgress))
	if err != nil {
		return err
	}
	entries, err := f.FetchAll(ctx, cfg.HowTo.Feed)
	if err != nil {
		return err
	}
	g, err := cliutil.Generator(ctx, cfg)
	if err != nil {
		return err
	}
	_, err = g.HowTo(ctx, entries)
	return err
}
