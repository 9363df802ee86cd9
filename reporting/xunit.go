// Package reporting contains the report emitters: single-pass visitors over
// a finalized result tree that produce the xUnit-style record log, the
// ingestion payloads and the console summary. Emitters run sequentially and
// never mutate the tree.
package reporting

import (
	"encoding/json"

	"github.com/testworks-io/resultproc/logging"
	"github.com/testworks-io/resultproc/result"
)

// xunitSuite is the record emitted for each suite. Timestamp is null when
// the suite carries no start time.
type xunitSuite struct {
	Name      string  `json:"name"`
	Tests     int     `json:"tests"`
	Errors    int     `json:"errors"`
	Failures  int     `json:"failures"`
	Skipped   int     `json:"skipped"`
	Time      string  `json:"time"`
	Timestamp *string `json:"timestamp"`
}

type xunitTest struct {
	Classname string `json:"classname"`
	Name      string `json:"name"`
	Time      string `json:"time"`
}

type xunitVerdict struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// XUnitLogWriter emits xUnit-style records as it walks the tree: a suite
// record on entering each suite and a testcase record per test, with
// failure and skipped sub-records where applicable. Records are appended to
// the sink as they are produced.
type XUnitLogWriter struct {
	result.BaseVisitor

	sink *logging.RecordWriter
	err  error
}

// NewXUnitLogWriter creates a writer emitting to the given sink.
func NewXUnitLogWriter(sink *logging.RecordWriter) *XUnitLogWriter {
	return &XUnitLogWriter{sink: sink}
}

// Err returns the first sink failure encountered during the pass.
func (w *XUnitLogWriter) Err() error {
	return w.err
}

func (w *XUnitLogWriter) EnterSuite(suite *result.Suite) {
	stats := suite.Statistics()
	rec := xunitSuite{
		Name:      suite.Name,
		Tests:     stats.Total,
		Errors:    0,
		Failures:  stats.Failed,
		Skipped:   stats.Skipped,
		Time:      result.SecondsFromMillis(suite.ElapsedMillis()),
		Timestamp: isoOrNil(suite.StartTime),
	}
	w.record("testsuite ", rec)
}

func (w *XUnitLogWriter) VisitTest(test *result.Test) {
	w.record("testcase: ", xunitTest{
		Classname: test.Parent().LongName(),
		Name:      test.Name,
		Time:      result.SecondsFromMillis(test.Elapsed),
	})
	if test.Failed() {
		w.record("failure: ", xunitVerdict{Message: test.Message, Type: "AssertionError"})
	}
	if test.Skipped() {
		w.record("skipped: ", xunitVerdict{Message: test.Message, Type: "SkipExecution"})
	}
}

func (w *XUnitLogWriter) record(label string, v any) {
	data, err := json.Marshal(v)
	if err == nil {
		err = w.sink.Info(label + string(data))
	}
	if err != nil && w.err == nil {
		w.err = err
	}
}

// isoOrNil converts a compact timestamp to ISO form, mapping an absent
// timestamp to nil rather than a fabricated value.
func isoOrNil(compact string) *string {
	iso := result.ISOFromCompact(compact)
	if iso == "" {
		return nil
	}
	return &iso
}
