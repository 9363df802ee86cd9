package process

import (
	"fmt"
	"strings"

	"github.com/testworks-io/resultproc/pattern"
	"github.com/testworks-io/resultproc/result"
)

// Removal mode keywords accepted by ParseRemovalMode.
const (
	removeAll    = "all"
	removePassed = "passed"
	removeFor    = "for"
	removeWhile  = "while"
	removeWUKS   = "wuks"
)

// retryKeywordName is the retry-style construct the keep-last-failure mode
// targets.
const retryKeywordName = "BuiltIn.Wait Until Keyword Succeeds"

// removal is one parsed removekeywords mode.
type removal struct {
	mode string
	name *pattern.Matcher
	tags *pattern.TagExpr
}

// ValidateRemovalModes rejects removekeywords values that are not one of
// all, passed, for, while, wuks, name:<pattern> or tag:<pattern>.
func ValidateRemovalModes(values []string) error {
	for _, v := range values {
		if _, err := parseRemovalMode(v); err != nil {
			return err
		}
	}
	return nil
}

func parseRemovalMode(value string) (removal, error) {
	lower := strings.ToLower(value)
	switch {
	case lower == removeAll || lower == removePassed || lower == removeFor ||
		lower == removeWhile || lower == removeWUKS:
		return removal{mode: lower}, nil
	case strings.HasPrefix(lower, "name:"):
		return removal{mode: "name", name: pattern.NewMatcher(value[len("name:"):])}, nil
	case strings.HasPrefix(lower, "tag:"):
		return removal{mode: "tag", tags: pattern.NewTagExpr(value[len("tag:"):])}, nil
	default:
		return removal{}, fmt.Errorf("invalid removekeywords value %q", value)
	}
}

// RemoveKeywords applies the given removal modes to the tree, in the order
// they were configured. The transforms act only on data currently present
// and are idempotent. Keywords carrying warning-level messages are exempt
// in every mode except "all".
func RemoveKeywords(res *result.Result, modes []string) error {
	for _, value := range modes {
		r, err := parseRemovalMode(value)
		if err != nil {
			return err
		}
		r.apply(res)
	}
	return nil
}

func (r removal) apply(res *result.Result) {
	forEachTest(res.Suite, func(t *result.Test) {
		switch r.mode {
		case removeAll:
			for _, k := range t.Keywords {
				k.Purge(false)
			}
		case removePassed:
			if t.Passed() {
				for _, k := range t.Keywords {
					purgeUnlessWarnings(k)
				}
			}
		case removeFor:
			forEachKeyword(t.Keywords, func(k *result.Keyword) {
				if k.Kind() == result.KeywordTypeFor {
					purgePassedIterations(k)
				}
			})
		case removeWhile:
			forEachKeyword(t.Keywords, func(k *result.Keyword) {
				if k.Kind() == result.KeywordTypeWhile {
					purgePassedIterations(k)
				}
			})
		case removeWUKS:
			matcher := pattern.NewMatcher(retryKeywordName)
			forEachKeyword(t.Keywords, func(k *result.Keyword) {
				if matcher.Match(k.Name) {
					keepLastFailure(k)
				}
			})
		case "name":
			forEachKeyword(t.Keywords, func(k *result.Keyword) {
				if r.name.Match(k.Name) {
					purgeUnlessWarnings(k)
				}
			})
		case "tag":
			forEachKeyword(t.Keywords, func(k *result.Keyword) {
				if r.tags.Matches(k.Tags) {
					purgeUnlessWarnings(k)
				}
			})
		}
	})
}

func purgeUnlessWarnings(k *result.Keyword) {
	if k.HasWarnings() {
		return
	}
	k.Purge(true)
}

// purgePassedIterations removes the data of every passed iteration of a
// loop keyword.
func purgePassedIterations(loop *result.Keyword) {
	for _, it := range loop.Keywords {
		if it.Kind() == result.KeywordTypeIteration && it.Status == result.StatusPassed {
			purgeUnlessWarnings(it)
		}
	}
}

// keepLastFailure discards the data of every attempt inside a retry
// construct except the final failing one; when no attempt failed, the last
// attempt is kept instead.
func keepLastFailure(retry *result.Keyword) {
	keep := -1
	for i, attempt := range retry.Keywords {
		if attempt.Status == result.StatusFailed {
			keep = i
		}
	}
	if keep < 0 {
		keep = len(retry.Keywords) - 1
	}
	for i, attempt := range retry.Keywords {
		if i != keep {
			purgeUnlessWarnings(attempt)
		}
	}
}

func forEachTest(suite *result.Suite, fn func(*result.Test)) {
	for _, child := range suite.Suites() {
		forEachTest(child, fn)
	}
	for _, t := range suite.Tests() {
		fn(t)
	}
}

func forEachKeyword(kws []*result.Keyword, fn func(*result.Keyword)) {
	for _, k := range kws {
		fn(k)
		forEachKeyword(k.Keywords, fn)
	}
}
