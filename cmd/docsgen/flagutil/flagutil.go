package flagutil

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// BindFlags binds each flag of pf named in keys onto the corresponding config key of v.
// A flag that was not set on the command line does not override the config.
func BindFlags(v *viper.Viper, pf *pflag.FlagSet, keys map[string]string) error {
	for _, name := range slices.Sorted(maps.Keys(keys)) {
		f := pf.Lookup(name)
		if f == nil {
			return fmt.Errorf("unknown flag %q", name)
		}
		if !f.Changed {
			continue
		}
		if err := v.BindPFlag(keys[name], f); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", name, err)
		}
	}
	return nil
}
