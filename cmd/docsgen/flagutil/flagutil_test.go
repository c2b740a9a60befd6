package flagutil

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gotest.tools/v3/assert"
)

func TestBindFlags(t *testing.T) {
	pf := pflag.NewFlagSet("test", pflag.ContinueOnError)
	pf.String("output", "", "")
	pf.Int("jobs", 0, "")
	assert.NilError(t, pf.Parse([]string{"--output=out"}))

	v := viper.New()
	v.SetDefault("output", "default")
	v.SetDefault("http.jobs", 8)
	assert.NilError(t, BindFlags(v, pf, map[string]string{
		"output": "output",
		"jobs":   "http.jobs",
	}))
	assert.Equal(t, "out", v.GetString("output"))
	// unset flags keep the configured value
	assert.Equal(t, 8, v.GetInt("http.jobs"))
}

func TestBindFlagsUnknown(t *testing.T) {
	pf := pflag.NewFlagSet("test", pflag.ContinueOnError)
	err := BindFlags(viper.New(), pf, map[string]string{"nope": "nope"})
	assert.ErrorContains(t, err, `unknown flag "nope"`)
}
