// Package config loads the generator configuration.
//
// Values are layered, lowest first: defaults, the config file
// (.docsgen.yaml in the working directory unless a file is given),
// DOCSGEN_* environment variables, and the command line flags bound onto
// the same [viper.Viper].
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/sampleprograms/docsgen/pkg/document"
	"github.com/sampleprograms/docsgen/pkg/feed"
	"github.com/sampleprograms/docsgen/pkg/howto"
	"github.com/sampleprograms/docsgen/pkg/reach"
	"github.com/sampleprograms/docsgen/pkg/repo"
	"github.com/sampleprograms/docsgen/pkg/wiki"
)

const (
	EnvPrefix      = "DOCSGEN"
	ConfigName     = ".docsgen"
	DefaultDotEnv  = ".env"
	configFileType = "yaml"
)

// Keys.
const (
	KeyURLsDocs     = "urls.docs"
	KeyURLsRepo     = "urls.repo"
	KeyURLsBranch   = "urls.branch"
	KeyURLsArchive  = "urls.archive"
	KeyURLsWiki     = "urls.wiki"
	KeyURLsIssues   = "urls.issues"
	KeyHowToFeed    = "howto.feed"
	KeyHowToRepo    = "howto.repo"
	KeyHowToSuffix  = "howto.suffix"
	KeyHTTPTimeout  = "http.timeout"
	KeyHTTPJobs     = "http.jobs"
	KeyHTTPCache    = "http.cache"
	KeyOutput       = "output"
	KeyFormat       = "format"
	KeyOffline      = "offline"
	KeyFeedMaxPages = "howto.maxPages"
)

type Config struct {
	URLs    URLs   `mapstructure:"urls"`
	HowTo   HowTo  `mapstructure:"howto"`
	HTTP    HTTP   `mapstructure:"http"`
	Output  string `mapstructure:"output"`
	Format  string `mapstructure:"format"`
	Offline bool   `mapstructure:"offline"`
}

type URLs struct {
	Docs    string `mapstructure:"docs"`
	Repo    string `mapstructure:"repo"`
	Branch  string `mapstructure:"branch"`
	Archive string `mapstructure:"archive"`
	Wiki    string `mapstructure:"wiki"`
	Issues  string `mapstructure:"issues"`
}

type HowTo struct {
	Feed     string `mapstructure:"feed"`
	Repo     string `mapstructure:"repo"`
	Suffix   string `mapstructure:"suffix"`
	MaxPages int    `mapstructure:"maxPages"`
}

type HTTP struct {
	Timeout time.Duration `mapstructure:"timeout"`
	Jobs    int           `mapstructure:"jobs"`
	Cache   int           `mapstructure:"cache"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	urls := repo.DefaultURLs()
	v.SetDefault(KeyURLsDocs, urls.Docs)
	v.SetDefault(KeyURLsRepo, urls.Repo)
	v.SetDefault(KeyURLsBranch, urls.Branch)
	v.SetDefault(KeyURLsArchive, urls.Archive)
	v.SetDefault(KeyURLsWiki, wiki.DefaultBaseURL)
	v.SetDefault(KeyURLsIssues, urls.Issues)
	v.SetDefault(KeyHowToFeed, feed.HowToPythonURL)
	v.SetDefault(KeyHowToRepo, howto.DefaultRepoURL)
	v.SetDefault(KeyHowToSuffix, howto.DefaultSeriesSuffix)
	v.SetDefault(KeyFeedMaxPages, 0)
	v.SetDefault(KeyHTTPTimeout, reach.DefaultTimeout)
	v.SetDefault(KeyHTTPJobs, reach.DefaultJobs)
	v.SetDefault(KeyHTTPCache, reach.DefaultCacheSize)
	v.SetDefault(KeyOutput, "")
	v.SetDefault(KeyFormat, string(document.FormatMarkdown))
	v.SetDefault(KeyOffline, false)
}

type opts struct {
	configFile string
	searchPath string
	dotEnv     string
}

type Opt func(*opts) error

// WithConfigFile reads file instead of searching for .docsgen.yaml.
// A missing file is an error.
func WithConfigFile(file string) Opt {
	return func(opts *opts) error {
		opts.configFile = file
		return nil
	}
}

// WithSearchPath sets the directory searched for .docsgen.yaml (default ".").
func WithSearchPath(dir string) Opt {
	return func(opts *opts) error {
		opts.searchPath = dir
		return nil
	}
}

// WithDotEnv sets the dotenv file loaded into the process environment (default ".env").
// A missing file is ignored.
func WithDotEnv(file string) Opt {
	return func(opts *opts) error {
		opts.dotEnv = file
		return nil
	}
}

// Load reads the configuration through v. Flags should be bound onto v beforehand.
func Load(v *viper.Viper, o ...Opt) (*Config, error) {
	opts := opts{
		searchPath: ".",
		dotEnv:     DefaultDotEnv,
	}
	for _, f := range o {
		if err := f(&opts); err != nil {
			return nil, err
		}
	}
	if opts.dotEnv != "" {
		// existing variables are not overridden
		if err := godotenv.Load(opts.dotEnv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %q: %w", opts.dotEnv, err)
		}
	}

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.configFile != "" {
		v.SetConfigFile(opts.configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(opts.searchPath)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if _, err := cfg.DocumentFormat(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// RepoURLs returns the link bases of the repository model.
func (c *Config) RepoURLs() repo.URLs {
	return repo.URLs{
		Docs:    c.URLs.Docs,
		Issues:  c.URLs.Issues,
		Repo:    c.URLs.Repo,
		Branch:  c.URLs.Branch,
		Archive: c.URLs.Archive,
	}
}

func (c *Config) DocumentFormat() (document.Format, error) {
	return document.ParseFormat(c.Format)
}

// Checker returns the reachability checker: [reach.Never] when offline,
// an [reach.HTTPChecker] otherwise.
func (c *Config) Checker(o ...reach.Opt) (reach.Checker, error) {
	if c.Offline {
		return reach.Never(), nil
	}
	o = append([]reach.Opt{
		reach.WithTimeout(c.HTTP.Timeout),
		reach.WithJobs(c.HTTP.Jobs),
		reach.WithCacheSize(c.HTTP.Cache),
	}, o...)
	checker, err := reach.New(o...)
	if err != nil {
		return nil, err
	}
	return checker, nil
}

