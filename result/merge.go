package result

import "errors"

// Merge unifies the input trees by long name. Inputs are processed in the
// given order: an entry whose long name already exists in the accumulating
// tree replaces the existing one in place, keeping its original position
// (last input wins); entries not yet present are appended in encounter
// order. Suite documentation, metadata and timestamps from later inputs with
// the same path overwrite earlier values. The resulting tree contains
// exactly one entry per long name.
func Merge(inputs []*Result) (*Result, error) {
	if len(inputs) == 0 {
		return nil, errors.New("no input results to merge")
	}
	base := inputs[0]
	for _, other := range inputs[1:] {
		mergeSuite(base.Suite, other.Suite)
		base.Errors = append(base.Errors, other.Errors...)
		base.RPA = other.RPA
	}
	return base, nil
}

// mergeSuite folds src into dst. The two suites are assumed to sit at the
// same long-name path.
func mergeSuite(dst, src *Suite) {
	if src.Doc != "" {
		dst.Doc = src.Doc
	}
	for _, m := range src.Metadata {
		dst.SetMetadata(m.Name, m.Value)
	}
	if src.StartTime != "" {
		dst.StartTime = src.StartTime
	}
	if src.EndTime != "" {
		dst.EndTime = src.EndTime
	}

	for _, childSrc := range src.Suites() {
		if childDst := findSuite(dst, childSrc.Name); childDst != nil {
			mergeSuite(childDst, childSrc)
		} else {
			dst.AddSuite(childSrc)
		}
	}
	for _, t := range src.Tests() {
		if i := findTest(dst, t.Name); i >= 0 {
			dst.ReplaceTest(i, t)
		} else {
			dst.AddTest(t)
		}
	}
}

func findSuite(parent *Suite, name string) *Suite {
	for _, child := range parent.Suites() {
		if child.Name == name {
			return child
		}
	}
	return nil
}

func findTest(parent *Suite, name string) int {
	for i, t := range parent.Tests() {
		if t.Name == name {
			return i
		}
	}
	return -1
}
