package flags

import (
	"flag"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// TestUniqueFlags asserts that all flag names are unique, to avoid accidental conflicts between the many flags.
func TestUniqueFlags(t *testing.T) {
	seenCLI := make(map[string]struct{})
	for _, f := range Flags {
		for _, name := range f.Names() {
			if _, ok := seenCLI[name]; ok {
				t.Errorf("duplicate flag %s", name)
				continue
			}
			seenCLI[name] = struct{}{}
		}
	}
}

func TestHasEnvVar(t *testing.T) {
	for _, f := range Flags {
		flagName := f.Names()[0]

		t.Run(flagName, func(t *testing.T) {
			envFlag, ok := f.(interface {
				GetEnvVars() []string
			})
			require.True(t, ok, "must support env vars")
			envVars := envFlag.GetEnvVars()
			require.Len(t, envVars, 1, "must have exactly one env var")
			require.True(t, strings.HasPrefix(envVars[0], EnvVarPrefix+"_"))
		})
	}
}

func TestEnvVarFormat(t *testing.T) {
	for _, f := range Flags {
		flagName := f.Names()[0]

		t.Run(flagName, func(t *testing.T) {
			envFlag := f.(interface {
				GetEnvVars() []string
			})
			want := EnvVarPrefix + "_" + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
			require.Equal(t, want, envFlag.GetEnvVars()[0])
		})
	}
}

func TestCheckRequired(t *testing.T) {
	app := cli.NewApp()

	set := flag.NewFlagSet("test", flag.ContinueOnError)
	require.NoError(t, set.Parse(nil))
	require.Error(t, CheckRequired(cli.NewContext(app, set, nil)))

	set = flag.NewFlagSet("test", flag.ContinueOnError)
	require.NoError(t, set.Parse([]string{"results.json"}))
	require.NoError(t, CheckRequired(cli.NewContext(app, set, nil)))
}
