package pattern

import "strings"

// TagExpr is a boolean combination of tag-pattern atoms. The operators are
// the literal uppercase words NOT, OR and AND: NOT binds loosest, then OR,
// then AND. `a OR b NOT c` selects tags matching `a` or `b` as long as `c`
// does not match; `a NOT b NOT c` selects `a` but neither `b` nor `c`.
type TagExpr struct {
	source  string
	first   orExpr
	negated []orExpr
}

type orExpr struct {
	ors []andExpr
}

type andExpr struct {
	ands []*Matcher
}

// NewTagExpr parses a tag expression.
func NewTagExpr(expr string) *TagExpr {
	notParts := strings.Split(expr, "NOT")
	parsed := &TagExpr{source: expr, first: parseOr(notParts[0])}
	for _, neg := range notParts[1:] {
		parsed.negated = append(parsed.negated, parseOr(neg))
	}
	return parsed
}

func parseOr(expr string) orExpr {
	var or orExpr
	for _, orPart := range strings.Split(expr, "OR") {
		var and andExpr
		for _, atom := range strings.Split(orPart, "AND") {
			and.ands = append(and.ands, NewMatcher(atom))
		}
		or.ors = append(or.ors, and)
	}
	return or
}

// Source returns the original expression text.
func (e *TagExpr) Source() string { return e.source }

// Matches evaluates the expression against a tag set.
func (e *TagExpr) Matches(tags []string) bool {
	if !e.first.matches(tags) {
		return false
	}
	for _, neg := range e.negated {
		if neg.matches(tags) {
			return false
		}
	}
	return true
}

func (o orExpr) matches(tags []string) bool {
	for _, a := range o.ors {
		if a.matches(tags) {
			return true
		}
	}
	return false
}

func (a andExpr) matches(tags []string) bool {
	for _, m := range a.ands {
		if !matchesAny(m, tags) {
			return false
		}
	}
	return true
}

func matchesAny(m *Matcher, tags []string) bool {
	for _, tag := range tags {
		if m.Match(tag) {
			return true
		}
	}
	return false
}

// TagExprs is a list of alternative expressions; a tag set matches when any
// single expression does.
type TagExprs []*TagExpr

// NewTagExprs parses each expression in the list.
func NewTagExprs(exprs []string) TagExprs {
	parsed := make(TagExprs, 0, len(exprs))
	for _, e := range exprs {
		parsed = append(parsed, NewTagExpr(e))
	}
	return parsed
}

// Matches reports whether any expression in the list matches the tag set.
func (es TagExprs) Matches(tags []string) bool {
	for _, e := range es {
		if e.Matches(tags) {
			return true
		}
	}
	return false
}
