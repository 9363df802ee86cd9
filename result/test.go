package result

// Status represents the possible outcomes of a test execution.
type Status string

const (
	StatusPassed  Status = "PASS"
	StatusFailed  Status = "FAIL"
	StatusSkipped Status = "SKIP"
)

// Test is a leaf execution record. It holds a non-owning back-reference to
// its parent suite that is used for lookups only; the suite tree is the sole
// owner of all nodes.
type Test struct {
	Name    string `json:"name"`
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`

	// Elapsed is the execution time in milliseconds. Never negative.
	Elapsed int64 `json:"elapsed"`

	Tags     []string   `json:"tags,omitempty"`
	Keywords []*Keyword `json:"keywords,omitempty"`

	parent *Suite
}

// Parent returns the suite this test belongs to, or nil if detached.
func (t *Test) Parent() *Suite { return t.parent }

// LongName returns the dotted path from the root suite down to this test.
// Long names are unique within a finalized tree.
func (t *Test) LongName() string {
	if t.parent == nil {
		return t.Name
	}
	return t.parent.LongName() + "." + t.Name
}

// Passed reports whether the test passed.
func (t *Test) Passed() bool { return t.Status == StatusPassed }

// Failed reports whether the test failed.
func (t *Test) Failed() bool { return t.Status == StatusFailed }

// Skipped reports whether the test was skipped.
func (t *Test) Skipped() bool { return t.Status == StatusSkipped }

// HasTag reports whether the test carries the given tag verbatim.
func (t *Test) HasTag(tag string) bool {
	for _, existing := range t.Tags {
		if existing == tag {
			return true
		}
	}
	return false
}

// AddTags appends the given tags, skipping ones already present.
func (t *Test) AddTags(tags ...string) {
	for _, tag := range tags {
		if !t.HasTag(tag) {
			t.Tags = append(t.Tags, tag)
		}
	}
}
