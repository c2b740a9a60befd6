// Package cliutil holds the plumbing shared by the subcommands.
package cliutil

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sampleprograms/docsgen/cmd/docsgen/flagutil"
	"github.com/sampleprograms/docsgen/pkg/config"
	"github.com/sampleprograms/docsgen/pkg/generator"
	"github.com/sampleprograms/docsgen/pkg/howto"
	"github.com/sampleprograms/docsgen/pkg/netutil"
	"github.com/sampleprograms/docsgen/pkg/netutil/github"
	"github.com/sampleprograms/docsgen/pkg/reach"
	"github.com/sampleprograms/docsgen/pkg/repo"
)

// SourceArg requires exactly one positional argument, the source directory.
func SourceArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("please supply an input path (usage: %s)", cmd.UseLine())
	}
	return nil
}

// AddGenerateFlags adds the flags of the commands that write documents.
func AddGenerateFlags(cmd *cobra.Command, outputUsage string) {
	flags := cmd.Flags()
	flags.StringP("output", "o", "", outputUsage)
	flags.String("format", "markdown", "output format (markdown, html)")
	flags.Int("jobs", reach.DefaultJobs, "number of parallel URL checks")
	flags.Bool("offline", false, "do not check URLs; every link is treated as unreachable")
}

var flagKeys = map[string]string{
	"output":  config.KeyOutput,
	"format":  config.KeyFormat,
	"jobs":    config.KeyHTTPJobs,
	"offline": config.KeyOffline,
}

// LoadConfig loads the configuration with the flags of cmd applied.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	v := viper.New()
	keys := make(map[string]string)
	for name, key := range flagKeys {
		if flags.Lookup(name) != nil {
			keys[name] = key
		}
	}
	if err := flagutil.BindFlags(v, flags, keys); err != nil {
		return nil, err
	}
	var opts []config.Opt
	if configFile, _ := flags.GetString("config"); configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	return config.Load(v, opts...)
}

// LoadRepo loads the source tree with the link bases of cfg.
func LoadRepo(cfg *config.Config, dir string) (*repo.Repo, error) {
	r, err := repo.Load(dir, repo.WithURLs(cfg.RepoURLs()))
	if err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", dir, err)
	}
	slog.Debug("loaded", "dir", r.Dir(), "languages", r.TotalLanguages(), "programs", r.TotalPrograms())
	return r, nil
}

// Checker returns the reachability checker of cfg. GitHub URLs are checked
// through the contents API when a token is available.
func Checker(ctx context.Context, cfg *config.Config) (reach.Checker, error) {
	var opts []reach.Opt
	if token := netutil.GitHubToken(); token != "" {
		contents, err := github.NewContentsClient(ctx, http.DefaultClient, token, "")
		if err != nil {
			return nil, err
		}
		opts = append(opts, reach.WithGitHubContents(contents))
	}
	return cfg.Checker(opts...)
}

// Generator returns a generator configured by cfg that logs its progress.
func Generator(ctx context.Context, cfg *config.Config) (*generator.Generator, error) {
	checker, err := Checker(ctx, cfg)
	if err != nil {
		return nil, err
	}
	format, err := cfg.DocumentFormat()
	if err != nil {
		return nil, err
	}
	onProgress := func(ctx context.Context, ev generator.ProgressEvent) {
		if ev.Path != "" {
			slog.InfoContext(ctx, "progress: "+ev.Message, "path", ev.Path)
			return
		}
		slog.InfoContext(ctx, "progress: "+ev.Message)
	}
	return generator.New(
		generator.WithOutputDir(cfg.Output),
		generator.WithFormat(format),
		generator.WithChecker(checker),
		generator.WithWikiBaseURL(cfg.URLs.Wiki),
		generator.WithHowToOpts(
			howto.WithRepoURL(cfg.HowTo.Repo),
			howto.WithSeriesSuffix(cfg.HowTo.Suffix),
		),
		generator.WithProgressEventHandler(onProgress),
	)
}
