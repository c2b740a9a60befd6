package stats

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/sampleprograms/docsgen/cmd/docsgen/cliutil"
	"github.com/sampleprograms/docsgen/pkg/repo"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:                   "stats SOURCE",
		Short:                 "Print the statistics of every language as JSON lines",
		Args:                  cliutil.SourceArg,
		RunE:                  action,
		DisableFlagsInUseLine: true,
	}
	return cmd
}

type Language struct {
	Name     string `json:"name"`
	Readable string `json:"readable"`
	Snippets int    `json:"snippets"`
	Bytes    int64  `json:"bytes"`
	Tested   bool   `json:"tested"`
}

type Totals struct {
	Languages int `json:"languages"`
	Snippets  int `json:"snippets"`
	Tested    int `json:"tested"`
}

func action(cmd *cobra.Command, args []string) error {
	cfg, err := cliutil.LoadConfig(cmd)
	if err != nil {
		return err
	}
	r, err := cliutil.LoadRepo(cfg, args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	for _, lc := range r.Languages() {
		if err = enc.Encode(newLanguage(lc)); err != nil {
			return err
		}
	}
	return enc.Encode(map[string]Totals{
		"totals": {
			Languages: r.TotalLanguages(),
			Snippets:  r.TotalPrograms(),
			Tested:    r.TotalTested(),
		},
	})
}

func newLanguage(lc *repo.LanguageCollection) Language {
	return Language{
		Name:     lc.Name(),
		Readable: lc.ReadableName(),
		Snippets: lc.TotalPrograms(),
		Bytes:    lc.TotalBytes(),
		Tested:   lc.HasTests(),
	}
}
