package main

import (
	"fmt"
	"strings"
	"testing"

	"picotet/config"

	"github.com/spf13/pflag"
)

func TestFlagDefaults(t *testing.T) {
	v := config.New()
	keys := map[string]string{}
	for _, k := range v.AllKeys() {
		keys[strings.NewReplacer(".", "-", "_", "-").Replace(k)] = k
	}
	newRootCmd().Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := keys[f.Name]
		if !ok {
			return
		}
		if want := fmt.Sprint(v.Get(key)); f.DefValue != want {
			t.Errorf("flag --%s defaults to %q, config key %s to %q", f.Name, f.DefValue, key, want)
		}
	})
}
