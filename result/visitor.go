package result

// Visitor is the capability set a report generator implements to traverse a
// finalized result tree. Traversal order is fixed depth-first: EnterSuite
// fires before descending, nested suites are visited before the suite's own
// tests, each in stored order, and LeaveSuite fires after all children.
// VisitStatistics and VisitErrors fire once at the whole-tree level, then
// EndResult closes the pass.
//
// Traversal is read-only: a visitor must not mutate the tree. Independent
// visitors may therefore walk the same finalized tree sequentially, each
// performing exactly one full pass.
type Visitor interface {
	EnterSuite(s *Suite)
	LeaveSuite(s *Suite)
	VisitTest(t *Test)
	VisitKeyword(k *Keyword)
	VisitStatistics(stats Statistics)
	VisitErrors(errors []Message)
	EndResult(r *Result)
}

// BaseVisitor is a no-op implementation of every Visitor hook. Concrete
// report generators embed it and override only the hooks they need.
type BaseVisitor struct{}

func (BaseVisitor) EnterSuite(*Suite) {}

func (BaseVisitor) LeaveSuite(*Suite) {}

func (BaseVisitor) VisitTest(*Test) {}

func (BaseVisitor) VisitKeyword(*Keyword) {}

func (BaseVisitor) VisitStatistics(Statistics) {}

func (BaseVisitor) VisitErrors([]Message) {}

func (BaseVisitor) EndResult(*Result) {}

var _ Visitor = BaseVisitor{}

// Visit performs one full traversal of the result tree with the given
// visitor.
func (r *Result) Visit(v Visitor) {
	if r.Suite != nil {
		visitSuite(r.Suite, v)
	}
	v.VisitStatistics(r.Statistics())
	v.VisitErrors(r.Errors)
	v.EndResult(r)
}

func visitSuite(s *Suite, v Visitor) {
	v.EnterSuite(s)
	for _, child := range s.Suites() {
		visitSuite(child, v)
	}
	for _, t := range s.Tests() {
		v.VisitTest(t)
		for _, k := range t.Keywords {
			visitKeyword(k, v)
		}
	}
	v.LeaveSuite(s)
}

func visitKeyword(k *Keyword, v Visitor) {
	v.VisitKeyword(k)
	for _, child := range k.Keywords {
		visitKeyword(child, v)
	}
}
