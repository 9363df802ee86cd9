// Package pattern implements the name and tag matching rules shared by the
// selection engine and the keyword reducer: case- and whitespace-insensitive
// globs with `*`, `?` and `[chars]` wildcards, and boolean tag expressions
// combining glob atoms with AND, OR and NOT.
package pattern

import (
	"regexp"
	"strings"
)

// Matcher matches names against a single glob pattern. Matching is case-
// and whitespace-insensitive. `*` matches any run of characters, `?` a
// single character and `[chars]` exactly one literal from the bracketed set;
// no ranges are implied unless a literal `-` is included in the set.
type Matcher struct {
	pattern string
	re      *regexp.Regexp
}

// NewMatcher compiles a glob pattern into a Matcher.
func NewMatcher(pattern string) *Matcher {
	return &Matcher{
		pattern: pattern,
		re:      regexp.MustCompile("^" + globToRegexp(normalize(pattern)) + "$"),
	}
}

// Pattern returns the original pattern text.
func (m *Matcher) Pattern() string { return m.pattern }

// Match reports whether the name matches the pattern.
func (m *Matcher) Match(name string) bool {
	return m.re.MatchString(normalize(name))
}

// Matchers is a set of patterns; a name matches when any pattern does.
type Matchers []*Matcher

// NewMatchers compiles each pattern in the list.
func NewMatchers(patterns []string) Matchers {
	ms := make(Matchers, 0, len(patterns))
	for _, p := range patterns {
		ms = append(ms, NewMatcher(p))
	}
	return ms
}

// Match reports whether any pattern in the set matches the name.
func (ms Matchers) Match(name string) bool {
	for _, m := range ms {
		if m.Match(name) {
			return true
		}
	}
	return false
}

// normalize lowercases the input and strips all whitespace, making both
// patterns and names insensitive to case and spacing.
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch r {
		case ' ', '\t', '\n', '\r':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// globToRegexp translates a normalized glob into a regular expression body.
// An unterminated bracket set is treated as literal characters.
func globToRegexp(glob string) string {
	var b strings.Builder
	runes := []rune(glob)
	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		case '[':
			end := -1
			for j := i + 1; j < len(runes); j++ {
				if runes[j] == ']' {
					end = j
					break
				}
			}
			if end < 0 || end == i+1 {
				b.WriteString(regexp.QuoteMeta(string(r)))
				continue
			}
			b.WriteString("[")
			for _, c := range runes[i+1 : end] {
				switch c {
				case '\\', ']', '^':
					b.WriteString(`\`)
					b.WriteRune(c)
				case '-':
					// a literal dash enables a character range
					b.WriteRune(c)
				default:
					b.WriteString(regexp.QuoteMeta(string(c)))
				}
			}
			b.WriteString("]")
			i = end
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return b.String()
}
