package result

import (
	"errors"
	"strings"
)

// CombineOptions controls the synthetic root suite created when multiple
// input trees are combined.
type CombineOptions struct {
	// Name of the new root suite. When empty, the input root names joined
	// with " & " are used.
	Name     string
	Doc      string
	Metadata []Metadata

	// Explicit root timestamps in compact form. When both are set the root
	// elapsed time is computed from them; otherwise the root timestamps
	// stay absent and elapsed time is the sum of the children's.
	StartTime string
	EndTime   string
}

// Combine wraps the input trees as direct children of a new synthetic root
// suite. With a single input no wrapping happens and the options are applied
// to the existing root instead.
func Combine(inputs []*Result, opts CombineOptions) (*Result, error) {
	if len(inputs) == 0 {
		return nil, errors.New("no input results to combine")
	}
	if len(inputs) == 1 {
		root := inputs[0].Suite
		applyOverrides(root, opts)
		return inputs[0], nil
	}

	name := opts.Name
	if name == "" {
		names := make([]string, 0, len(inputs))
		for _, in := range inputs {
			names = append(names, in.Suite.Name)
		}
		name = strings.Join(names, " & ")
	}

	root := NewSuite(name)
	root.Doc = opts.Doc
	root.Metadata = append(root.Metadata, opts.Metadata...)
	root.StartTime = opts.StartTime
	root.EndTime = opts.EndTime

	combined := NewResult(root)
	for _, in := range inputs {
		root.AddSuite(in.Suite)
		combined.Errors = append(combined.Errors, in.Errors...)
		combined.RPA = in.RPA
	}
	return combined, nil
}

func applyOverrides(root *Suite, opts CombineOptions) {
	if opts.Name != "" {
		root.Name = opts.Name
	}
	if opts.Doc != "" {
		root.Doc = opts.Doc
	}
	for _, m := range opts.Metadata {
		root.SetMetadata(m.Name, m.Value)
	}
	if opts.StartTime != "" {
		root.StartTime = opts.StartTime
	}
	if opts.EndTime != "" {
		root.EndTime = opts.EndTime
	}
}
