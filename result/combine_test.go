package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func input(name string, tests ...*Test) *Result {
	s := NewSuite(name)
	for _, tc := range tests {
		s.AddTest(tc)
	}
	return NewResult(s)
}

func TestCombineWrapsInputsUnderNewRoot(t *testing.T) {
	a := input("A", &Test{Name: "t1", Status: StatusPassed})
	b := input("B", &Test{Name: "t2", Status: StatusFailed})

	combined, err := Combine([]*Result{a, b}, CombineOptions{})
	require.NoError(t, err)

	root := combined.Suite
	assert.Equal(t, "A & B", root.Name)
	require.Len(t, root.Suites(), 2)
	assert.Same(t, a.Suite, root.Suites()[0])
	assert.Same(t, b.Suite, root.Suites()[1])
	assert.Same(t, root, a.Suite.Parent())
	assert.Equal(t, Statistics{Total: 2, Passed: 1, Failed: 1}, combined.Statistics())
}

func TestCombineExplicitName(t *testing.T) {
	a := input("A")
	b := input("B")

	combined, err := Combine([]*Result{a, b}, CombineOptions{Name: "All", Doc: "combined run"})
	require.NoError(t, err)
	assert.Equal(t, "All", combined.Suite.Name)
	assert.Equal(t, "combined run", combined.Suite.Doc)
}

func TestCombineSingleInputAppliesOverridesInPlace(t *testing.T) {
	a := input("A", &Test{Name: "t1", Status: StatusPassed})

	combined, err := Combine([]*Result{a}, CombineOptions{
		Name:      "Renamed",
		StartTime: "20240102030405000",
	})
	require.NoError(t, err)

	assert.Same(t, a, combined)
	assert.Equal(t, "Renamed", combined.Suite.Name)
	assert.Equal(t, "20240102030405000", combined.Suite.StartTime)
	assert.Empty(t, combined.Suite.Suites())
}

func TestCombineNoInputs(t *testing.T) {
	_, err := Combine(nil, CombineOptions{})
	assert.Error(t, err)
}

func TestCombineRootTimestampsStayAbsent(t *testing.T) {
	a := input("A")
	b := input("B")

	combined, err := Combine([]*Result{a, b}, CombineOptions{})
	require.NoError(t, err)
	assert.Empty(t, combined.Suite.StartTime)
	assert.Empty(t, combined.Suite.EndTime)
}

func TestCombineExecutionModeLastInputWins(t *testing.T) {
	a := input("A")
	a.RPA = true
	b := input("B")

	combined, err := Combine([]*Result{a, b}, CombineOptions{})
	require.NoError(t, err)
	assert.False(t, combined.RPA)

	b.RPA = true
	combined, err = Combine([]*Result{input("A"), b}, CombineOptions{})
	require.NoError(t, err)
	assert.True(t, combined.RPA)
}

func TestCombineConcatenatesErrors(t *testing.T) {
	a := input("A")
	a.Errors = []Message{{Level: LevelError, Text: "first"}}
	b := input("B")
	b.Errors = []Message{{Level: LevelWarn, Text: "second"}}

	combined, err := Combine([]*Result{a, b}, CombineOptions{})
	require.NoError(t, err)
	require.Len(t, combined.Errors, 2)
	assert.Equal(t, "first", combined.Errors[0].Text)
	assert.Equal(t, "second", combined.Errors[1].Text)
}
