package reporting

import (
	"context"
	"encoding/json"

	"github.com/testworks-io/resultproc/ingest"
	"github.com/testworks-io/resultproc/logging"
	"github.com/testworks-io/resultproc/result"
)

// ingestSuite is the payload posted for each suite. Unlike the xUnit record
// it carries the suite's testcases inline so the remote side receives a
// self-contained record per suite.
type ingestSuite struct {
	Name      string       `json:"name"`
	Tests     int          `json:"tests"`
	Failures  int          `json:"failures"`
	Skipped   int          `json:"skipped"`
	Time      string       `json:"time"`
	Timestamp *string      `json:"timestamp"`
	Testcases []ingestTest `json:"testcases"`
}

type ingestTest struct {
	Classname string `json:"classname"`
	Name      string `json:"name"`
	Time      string `json:"time"`
	Message   string `json:"message"`
}

// IngestLogWriter walks the tree buffering one record per test under its
// nearest enclosing suite; on leaving the suite it writes the assembled
// suite record to the local sink and posts it to the ingestion endpoint as
// a single-element array. The post is synchronous with the traversal.
// Submission failures are recorded but never abort the pass.
type IngestLogWriter struct {
	result.BaseVisitor

	ctx    context.Context
	sink   *logging.RecordWriter
	client *ingest.Client
	frames []*suiteFrame
	err    error
}

type suiteFrame struct {
	suite     *result.Suite
	testcases []ingestTest
}

// NewIngestLogWriter creates a writer posting through client and mirroring
// records to sink.
func NewIngestLogWriter(ctx context.Context, sink *logging.RecordWriter, client *ingest.Client) *IngestLogWriter {
	return &IngestLogWriter{ctx: ctx, sink: sink, client: client}
}

// Err returns the first failure encountered during the pass, either from
// the sink or from the ingestion endpoint.
func (w *IngestLogWriter) Err() error {
	return w.err
}

func (w *IngestLogWriter) EnterSuite(suite *result.Suite) {
	w.frames = append(w.frames, &suiteFrame{suite: suite, testcases: []ingestTest{}})
}

func (w *IngestLogWriter) VisitTest(test *result.Test) {
	tc := ingestTest{
		Classname: test.Parent().LongName(),
		Name:      test.Name,
		Time:      result.SecondsFromMillis(test.Elapsed),
		Message:   test.Message,
	}
	frame := w.frames[len(w.frames)-1]
	frame.testcases = append(frame.testcases, tc)
	w.log("", tc)
}

func (w *IngestLogWriter) LeaveSuite(suite *result.Suite) {
	frame := w.frames[len(w.frames)-1]
	w.frames = w.frames[:len(w.frames)-1]

	stats := suite.Statistics()
	rec := ingestSuite{
		Name:      suite.Name,
		Tests:     stats.Total,
		Failures:  stats.Failed,
		Skipped:   stats.Skipped,
		Time:      result.SecondsFromMillis(suite.ElapsedMillis()),
		Timestamp: isoOrNil(suite.StartTime),
		Testcases: frame.testcases,
	}
	w.log("testsuite ", rec)

	payload, err := json.Marshal([]ingestSuite{rec})
	if err != nil {
		w.fail(err)
		return
	}
	if err := w.client.Post(w.ctx, payload); err != nil {
		w.fail(err)
	}
}

func (w *IngestLogWriter) log(label string, v any) {
	data, err := json.Marshal(v)
	if err == nil {
		err = w.sink.Info(label + string(data))
	}
	if err != nil {
		w.fail(err)
	}
}

func (w *IngestLogWriter) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}
