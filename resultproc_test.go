package resultproc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testworks-io/resultproc/exitcodes"
	"github.com/testworks-io/resultproc/process"
	"github.com/testworks-io/resultproc/result"
)

func writeInput(t *testing.T, dir, name string, res *result.Result) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, result.WriteFile(path, res))
	return path
}

func suiteWithTests(name string, tests ...*result.Test) *result.Result {
	s := result.NewSuite(name)
	for _, tc := range tests {
		s.AddTest(tc)
	}
	return result.NewResult(s)
}

func baseConfig(dir string, inputs ...string) *Config {
	return &Config{
		Inputs:     inputs,
		OutputDir:  dir,
		Output:     filepath.Join(dir, "out.json"),
		MonitorLog: filepath.Join(dir, "monitor.log"),
		Log:        log.New(),
	}
}

func TestRunMergeScenario(t *testing.T) {
	dir := t.TempDir()
	first := writeInput(t, dir, "a.json", suiteWithTests("Run",
		&result.Test{Name: "t1", Status: result.StatusPassed},
		&result.Test{Name: "t2", Status: result.StatusFailed},
	))
	second := writeInput(t, dir, "b.json", suiteWithTests("Run",
		&result.Test{Name: "t2", Status: result.StatusFailed, Message: "X"},
		&result.Test{Name: "t3", Status: result.StatusSkipped},
	))

	cfg := baseConfig(dir, first, second)
	cfg.Merge = true
	svc := NewService(cfg)

	rc, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, rc)

	merged, err := result.ReadFile(cfg.Output)
	require.NoError(t, err)
	stats := merged.Statistics()
	assert.Equal(t, result.Statistics{Total: 3, Passed: 1, Failed: 1, Skipped: 1}, stats)

	tests := merged.Suite.Tests()
	require.Len(t, tests, 3)
	assert.Equal(t, result.StatusFailed, tests[1].Status)
	assert.Equal(t, "X", tests[1].Message)

	data, err := os.ReadFile(cfg.MonitorLog)
	require.NoError(t, err)
	assert.Contains(t, string(data), "testsuite ")
	assert.Contains(t, string(data), `"name":"t3"`)
}

func TestRunCombineWrapsInputs(t *testing.T) {
	dir := t.TempDir()
	first := writeInput(t, dir, "a.json", suiteWithTests("A", &result.Test{Name: "t1", Status: result.StatusPassed}))
	second := writeInput(t, dir, "b.json", suiteWithTests("B", &result.Test{Name: "t2", Status: result.StatusPassed}))

	cfg := baseConfig(dir, first, second)
	cfg.Name = "Everything"
	svc := NewService(cfg)

	rc, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, exitcodes.Success, rc)

	combined, err := result.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.Equal(t, "Everything", combined.Suite.Name)
	require.Len(t, combined.Suite.Suites(), 2)
}

func TestRunNoArtifacts(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "a.json", suiteWithTests("A", &result.Test{Name: "t1", Status: result.StatusPassed}))

	cfg := &Config{Inputs: []string{input}, OutputDir: dir, Log: log.New()}
	svc := NewService(cfg)

	rc, err := svc.Run(context.Background())
	assert.Equal(t, exitcodes.RuntimeErr, rc)
	assert.True(t, IsNoArtifactsError(err))
}

func TestRunEmptyFilterResult(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "a.json", suiteWithTests("A", &result.Test{Name: "t1", Status: result.StatusPassed, Tags: []string{"smoke"}}))

	cfg := baseConfig(dir, input)
	cfg.Include = []string{"nonexistent"}
	svc := NewService(cfg)

	_, err := svc.Run(context.Background())
	var emptyErr *process.EmptyResultError
	require.ErrorAs(t, err, &emptyErr)

	// No reports are written on an empty result.
	_, statErr := os.Stat(cfg.Output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunProcessEmptySuite(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "a.json", suiteWithTests("A", &result.Test{Name: "t1", Status: result.StatusPassed, Tags: []string{"smoke"}}))

	cfg := baseConfig(dir, input)
	cfg.Include = []string{"nonexistent"}
	cfg.ProcessEmptySuite = true
	svc := NewService(cfg)

	rc, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, exitcodes.Success, rc)

	// Emitters still ran against the empty suite.
	_, statErr := os.Stat(cfg.MonitorLog)
	assert.NoError(t, statErr)
}

func TestRunNoStatusRC(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "a.json", suiteWithTests("A",
		&result.Test{Name: "t1", Status: result.StatusFailed},
	))

	cfg := baseConfig(dir, input)
	cfg.NoStatusRC = true
	svc := NewService(cfg)

	rc, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, exitcodes.Success, rc)
}

func TestRunStatusCapped(t *testing.T) {
	dir := t.TempDir()
	tests := make([]*result.Test, 0, 260)
	for i := 0; i < 260; i++ {
		tests = append(tests, &result.Test{Name: fmt.Sprintf("t%d", i), Status: result.StatusFailed})
	}
	input := writeInput(t, dir, "a.json", suiteWithTests("A", tests...))

	cfg := baseConfig(dir, input)
	svc := NewService(cfg)

	rc, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, exitcodes.MaxFailures, rc)
}

func TestRunSetTagsAndFilter(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "a.json", suiteWithTests("A",
		&result.Test{Name: "keep", Status: result.StatusPassed, Tags: []string{"smoke"}},
		&result.Test{Name: "drop", Status: result.StatusFailed, Tags: []string{"slow"}},
	))

	cfg := baseConfig(dir, input)
	cfg.Exclude = []string{"slow"}
	cfg.SetTags = []string{"nightly"}
	svc := NewService(cfg)

	rc, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, exitcodes.Success, rc)

	out, err := result.ReadFile(cfg.Output)
	require.NoError(t, err)
	tests := out.Suite.Tests()
	require.Len(t, tests, 1)
	assert.Equal(t, "keep", tests[0].Name)
	assert.True(t, tests[0].HasTag("nightly"))
}

func TestRunRemoveKeywords(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "a.json", suiteWithTests("A",
		&result.Test{Name: "t1", Status: result.StatusPassed, Keywords: []*result.Keyword{
			{Name: "kw", Messages: []result.Message{{Level: result.LevelInfo, Text: "noise"}}},
		}},
	))

	cfg := baseConfig(dir, input)
	cfg.RemoveKeywords = []string{"passed"}
	svc := NewService(cfg)

	_, err := svc.Run(context.Background())
	require.NoError(t, err)

	out, err := result.ReadFile(cfg.Output)
	require.NoError(t, err)
	kw := out.Suite.Tests()[0].Keywords[0]
	require.Len(t, kw.Messages, 1)
	assert.Contains(t, kw.Messages[0].Text, "removed using")
}

// Removal runs before flattening: a keyword flattened by name hoists the
// removal note left on its purged child, not the child's original messages.
func TestRunRemovalBeforeFlatten(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "a.json", suiteWithTests("A",
		&result.Test{Name: "t1", Status: result.StatusPassed, Keywords: []*result.Keyword{
			{Name: "wrapper", Status: result.StatusPassed, Keywords: []*result.Keyword{
				{Name: "step", Status: result.StatusPassed, Messages: []result.Message{
					{Level: result.LevelInfo, Text: "noise"},
				}},
			}},
		}},
	))

	cfg := baseConfig(dir, input)
	cfg.RemoveKeywords = []string{"name:step"}
	cfg.FlattenKeywords = []string{"name:wrapper"}
	svc := NewService(cfg)

	_, err := svc.Run(context.Background())
	require.NoError(t, err)

	out, err := result.ReadFile(cfg.Output)
	require.NoError(t, err)
	kw := out.Suite.Tests()[0].Keywords[0]
	assert.Empty(t, kw.Keywords)
	require.Len(t, kw.Messages, 1)
	assert.Contains(t, kw.Messages[0].Text, "removed using")
	assert.NotContains(t, kw.Messages[0].Text, "noise")
}

func TestRunExecutionModeFromLastInput(t *testing.T) {
	dir := t.TempDir()
	first := writeInput(t, dir, "a.json", suiteWithTests("Run", &result.Test{Name: "t1", Status: result.StatusPassed}))
	tasks := suiteWithTests("Run", &result.Test{Name: "t2", Status: result.StatusPassed})
	tasks.RPA = true
	second := writeInput(t, dir, "b.json", tasks)

	cfg := baseConfig(dir, first, second)
	cfg.Merge = true
	svc := NewService(cfg)

	_, err := svc.Run(context.Background())
	require.NoError(t, err)

	out, err := result.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.True(t, out.RPA)
}

func TestRunExecutionModeConfigOverride(t *testing.T) {
	dir := t.TempDir()
	tasks := suiteWithTests("Run", &result.Test{Name: "t1", Status: result.StatusPassed})
	tasks.RPA = true
	input := writeInput(t, dir, "a.json", tasks)

	override := false
	cfg := baseConfig(dir, input)
	cfg.RPA = &override
	svc := NewService(cfg)

	_, err := svc.Run(context.Background())
	require.NoError(t, err)

	out, err := result.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.False(t, out.RPA)
}

func TestRunTimestampOutputs(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "a.json", suiteWithTests("A", &result.Test{Name: "t1", Status: result.StatusPassed}))

	cfg := baseConfig(dir, input)
	cfg.MonitorLog = ""
	cfg.TimestampOutputs = true
	svc := NewService(cfg)

	_, err := svc.Run(context.Background())
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(dir, "out-*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	base := filepath.Base(matches[0])
	assert.True(t, strings.HasPrefix(base, "out-"))
	assert.True(t, strings.HasSuffix(base, ".json"))
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	cfg := baseConfig(dir, filepath.Join(dir, "nope.json"))
	svc := NewService(cfg)

	rc, err := svc.Run(context.Background())
	assert.Equal(t, exitcodes.RuntimeErr, rc)
	assert.Error(t, err)
}

func TestRunAppliesRootOverridesWhenMerging(t *testing.T) {
	dir := t.TempDir()
	first := writeInput(t, dir, "a.json", suiteWithTests("Run", &result.Test{Name: "t1", Status: result.StatusPassed}))
	second := writeInput(t, dir, "b.json", suiteWithTests("Run", &result.Test{Name: "t2", Status: result.StatusPassed}))

	cfg := baseConfig(dir, first, second)
	cfg.Merge = true
	cfg.Name = "Renamed"
	cfg.StartTime = "20240102030405000"
	svc := NewService(cfg)

	_, err := svc.Run(context.Background())
	require.NoError(t, err)

	out, err := result.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", out.Suite.Name)
	assert.Equal(t, "20240102030405000", out.Suite.StartTime)
}
