package result

// Metadata is a single name/value pair attached to a suite. Order of the
// pairs is significant and preserved, which is why suites carry a slice
// instead of a map.
type Metadata struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Suite is a named grouping node owning child suites and tests. A suite is
// the sole owner of everything below it; tests hold a lookup-only reference
// back to their parent.
type Suite struct {
	Name     string
	Doc      string
	Metadata []Metadata

	// StartTime and EndTime are compact `YYYYMMDDHHMMSSmmm` digit strings.
	// The empty string means the timestamp is absent; it is never
	// fabricated from the wall clock.
	StartTime string
	EndTime   string

	parent *Suite
	suites []*Suite
	tests  []*Test
}

// NewSuite creates an empty suite with the given name.
func NewSuite(name string) *Suite {
	return &Suite{Name: name}
}

// Parent returns the owning suite, or nil for a root suite.
func (s *Suite) Parent() *Suite { return s.parent }

// Suites returns the child suites in stored order.
func (s *Suite) Suites() []*Suite { return s.suites }

// Tests returns the child tests in stored order.
func (s *Suite) Tests() []*Test { return s.tests }

// AddSuite appends a child suite and takes ownership of it.
func (s *Suite) AddSuite(child *Suite) {
	child.parent = s
	s.suites = append(s.suites, child)
}

// AddTest appends a test and takes ownership of it.
func (s *Suite) AddTest(t *Test) {
	t.parent = s
	s.tests = append(s.tests, t)
}

// SetSuites replaces the child suite list, re-linking parent references.
func (s *Suite) SetSuites(suites []*Suite) {
	for _, child := range suites {
		child.parent = s
	}
	s.suites = suites
}

// SetTests replaces the test list, re-linking parent references.
func (s *Suite) SetTests(tests []*Test) {
	for _, t := range tests {
		t.parent = s
	}
	s.tests = tests
}

// ReplaceTest swaps the test at index i, preserving its position.
func (s *Suite) ReplaceTest(i int, t *Test) {
	t.parent = s
	s.tests[i] = t
}

// LongName returns the dotted path from the root suite to this suite.
func (s *Suite) LongName() string {
	if s.parent == nil {
		return s.Name
	}
	return s.parent.LongName() + "." + s.Name
}

// SetMetadata sets a metadata value, overwriting an existing pair with the
// same name and otherwise appending to preserve insertion order.
func (s *Suite) SetMetadata(name, value string) {
	for i := range s.Metadata {
		if s.Metadata[i].Name == name {
			s.Metadata[i].Value = value
			return
		}
	}
	s.Metadata = append(s.Metadata, Metadata{Name: name, Value: value})
}

// ElapsedMillis returns the suite's elapsed time in milliseconds. When both
// timestamps are present it is computed from them, otherwise it is the sum
// of the children's elapsed times.
func (s *Suite) ElapsedMillis() int64 {
	if s.StartTime != "" && s.EndTime != "" {
		return ElapsedBetween(s.StartTime, s.EndTime)
	}
	var total int64
	for _, child := range s.suites {
		total += child.ElapsedMillis()
	}
	for _, t := range s.tests {
		total += t.Elapsed
	}
	return total
}

// Statistics derives pass/fail/skip counts from the tests currently present
// under this suite. It is always computed live and never cached, so the
// counts track every tree mutation.
func (s *Suite) Statistics() Statistics {
	var stats Statistics
	s.accumulate(&stats)
	return stats
}

func (s *Suite) accumulate(stats *Statistics) {
	for _, child := range s.suites {
		child.accumulate(stats)
	}
	for _, t := range s.tests {
		stats.Total++
		switch t.Status {
		case StatusPassed:
			stats.Passed++
		case StatusFailed:
			stats.Failed++
		case StatusSkipped:
			stats.Skipped++
		}
	}
}

// TestCount returns the number of tests under this suite, including nested
// suites.
func (s *Suite) TestCount() int {
	n := len(s.tests)
	for _, child := range s.suites {
		n += child.TestCount()
	}
	return n
}

// HasTests reports whether any test exists under this suite.
func (s *Suite) HasTests() bool {
	if len(s.tests) > 0 {
		return true
	}
	for _, child := range s.suites {
		if child.HasTests() {
			return true
		}
	}
	return false
}

// Statistics holds test counts derived from a tree. Total always equals the
// sum of the other three counters.
type Statistics struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
}
