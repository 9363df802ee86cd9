package process

import (
	"fmt"
	"strings"

	"github.com/testworks-io/resultproc/pattern"
	"github.com/testworks-io/resultproc/result"
)

// Flatten mode keywords accepted by parseFlattenMode.
const (
	flattenFor       = "for"
	flattenWhile     = "while"
	flattenIteration = "iteration"
	flattenForItem   = "foritem" // legacy alias for iteration
)

// flatten is one parsed flattenkeywords mode.
type flatten struct {
	mode string
	name *pattern.Matcher
	tags *pattern.TagExpr
}

// ValidateFlattenModes rejects flattenkeywords values that are not one of
// for, while, iteration, foritem, name:<pattern> or tag:<pattern>.
func ValidateFlattenModes(values []string) error {
	for _, v := range values {
		if _, err := parseFlattenMode(v); err != nil {
			return err
		}
	}
	return nil
}

func parseFlattenMode(value string) (flatten, error) {
	lower := strings.ToLower(value)
	switch {
	case lower == flattenFor || lower == flattenWhile || lower == flattenIteration:
		return flatten{mode: lower}, nil
	case lower == flattenForItem:
		return flatten{mode: flattenIteration}, nil
	case strings.HasPrefix(lower, "name:"):
		return flatten{mode: "name", name: pattern.NewMatcher(value[len("name:"):])}, nil
	case strings.HasPrefix(lower, "tag:"):
		return flatten{mode: "tag", tags: pattern.NewTagExpr(value[len("tag:"):])}, nil
	default:
		return flatten{}, fmt.Errorf("invalid flattenkeywords value %q", value)
	}
}

// FlattenKeywords collapses matching keywords in the tree: every descendant
// message is hoisted into the matching keyword and its nested structure is
// discarded. Flattening an already flat keyword is a no-op.
func FlattenKeywords(res *result.Result, modes []string) error {
	for _, value := range modes {
		f, err := parseFlattenMode(value)
		if err != nil {
			return err
		}
		f.apply(res)
	}
	return nil
}

func (f flatten) apply(res *result.Result) {
	forEachTest(res.Suite, func(t *result.Test) {
		forEachKeyword(t.Keywords, func(k *result.Keyword) {
			if f.selects(k) {
				k.Flatten()
			}
		})
	})
}

func (f flatten) selects(k *result.Keyword) bool {
	switch f.mode {
	case flattenFor:
		return k.Kind() == result.KeywordTypeFor
	case flattenWhile:
		return k.Kind() == result.KeywordTypeWhile
	case flattenIteration:
		return k.Kind() == result.KeywordTypeIteration
	case "name":
		return k.Kind() == result.KeywordTypeKeyword && f.name.Match(k.Name)
	case "tag":
		return k.Kind() == result.KeywordTypeKeyword && f.tags.Matches(k.Tags)
	default:
		return false
	}
}
