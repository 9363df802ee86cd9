// Package process implements the in-place transforms applied to a result
// tree between merging and emission: name/tag based test selection and the
// keyword data reducer.
package process

import (
	"fmt"
	"strings"

	"github.com/testworks-io/resultproc/pattern"
	"github.com/testworks-io/resultproc/result"
)

// EmptyResultError is returned when filtering eliminated every test and
// processing empty suites was not permitted.
type EmptyResultError struct {
	Suite string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("suite %q contains no tests after filtering", e.Suite)
}

// Filter selects the tests to retain. The criteria are independent and
// jointly intersected: a test is retained only if its suite chain matches
// (or no suite filter is given), its name matches (or no name filter is
// given), at least one include expression matches (or none are given) and
// no exclude expression matches. Exclude always takes precedence over
// include.
type Filter struct {
	SuiteNames []string
	TestNames  []string
	Include    []string
	Exclude    []string

	// KeepEmpty retains suites left without tests and suppresses the
	// empty-result error.
	KeepEmpty bool
}

// Active reports whether any selection criterion is set.
func (f *Filter) Active() bool {
	return len(f.SuiteNames)+len(f.TestNames)+len(f.Include)+len(f.Exclude) > 0
}

// Apply prunes the tree in place. Applying the same filter twice yields an
// identical tree.
func (f *Filter) Apply(res *result.Result) error {
	if f.Active() {
		sel := newSelector(f)
		sel.filterSuite(res.Suite, false)
		if !f.KeepEmpty {
			pruneEmpty(res.Suite)
		}
	}
	if !f.KeepEmpty && !res.Suite.HasTests() {
		return &EmptyResultError{Suite: res.Suite.Name}
	}
	return nil
}

type selector struct {
	suiteNames pattern.Matchers
	suiteLongs pattern.Matchers
	testNames  pattern.Matchers
	testLongs  pattern.Matchers
	include    pattern.TagExprs
	exclude    pattern.TagExprs

	hasSuiteFilter bool
	hasNameFilter  bool
}

func newSelector(f *Filter) *selector {
	return &selector{
		suiteNames:     pattern.NewMatchers(f.SuiteNames),
		suiteLongs:     pattern.NewMatchers(dottedVariants(f.SuiteNames)),
		testNames:      pattern.NewMatchers(f.TestNames),
		testLongs:      pattern.NewMatchers(dottedVariants(f.TestNames)),
		include:        pattern.NewTagExprs(f.Include),
		exclude:        pattern.NewTagExprs(f.Exclude),
		hasSuiteFilter: len(f.SuiteNames) > 0,
		hasNameFilter:  len(f.TestNames) > 0,
	}
}

// dottedVariants produces the long-name forms of the given patterns: the
// pattern itself and, unless it is already anchored with a wildcard, a
// `*.pattern` variant so a dotted pattern may match any suffix of the
// parent chain.
func dottedVariants(patterns []string) []string {
	variants := make([]string, 0, len(patterns)*2)
	for _, p := range patterns {
		variants = append(variants, p)
		if !strings.HasPrefix(p, "*") {
			variants = append(variants, "*."+p)
		}
	}
	return variants
}

// filterSuite walks the tree retaining only matching tests. matched is true
// when this suite or one of its ancestors already satisfied the suite
// filter.
func (s *selector) filterSuite(suite *result.Suite, matched bool) {
	matched = matched || s.suiteMatches(suite)
	for _, child := range suite.Suites() {
		s.filterSuite(child, matched)
	}
	kept := suite.Tests()[:0:0]
	for _, t := range suite.Tests() {
		if s.retain(t, matched) {
			kept = append(kept, t)
		}
	}
	suite.SetTests(kept)
}

func (s *selector) suiteMatches(suite *result.Suite) bool {
	if !s.hasSuiteFilter {
		return false
	}
	return s.suiteNames.Match(suite.Name) || s.suiteLongs.Match(suite.LongName())
}

func (s *selector) retain(t *result.Test, suiteMatched bool) bool {
	if s.hasSuiteFilter && !suiteMatched {
		return false
	}
	if s.hasNameFilter && !s.testNames.Match(t.Name) && !s.testLongs.Match(t.LongName()) {
		return false
	}
	if len(s.exclude) > 0 && s.exclude.Matches(t.Tags) {
		return false
	}
	if len(s.include) > 0 && !s.include.Matches(t.Tags) {
		return false
	}
	return true
}

// pruneEmpty removes suites left with zero tests and zero descendant
// suites, cascading upward.
func pruneEmpty(suite *result.Suite) {
	kept := suite.Suites()[:0:0]
	for _, child := range suite.Suites() {
		pruneEmpty(child)
		if child.HasTests() {
			kept = append(kept, child)
		}
	}
	suite.SetSuites(kept)
}

// SetTags appends the given tags to every test currently in the tree.
func SetTags(res *result.Result, tags []string) {
	if len(tags) == 0 {
		return
	}
	addTags(res.Suite, tags)
}

func addTags(suite *result.Suite, tags []string) {
	for _, child := range suite.Suites() {
		addTags(child, tags)
	}
	for _, t := range suite.Tests() {
		t.AddTags(tags...)
	}
}
