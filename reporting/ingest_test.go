package reporting

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testworks-io/resultproc/ingest"
	"github.com/testworks-io/resultproc/logging"
)

type postRecorder struct {
	mu       sync.Mutex
	statuses []int
	payloads [][]byte
}

func (r *postRecorder) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		body, _ := io.ReadAll(req.Body)
		r.mu.Lock()
		r.payloads = append(r.payloads, body)
		status := http.StatusOK
		if len(r.statuses) > 0 {
			status = r.statuses[0]
			r.statuses = r.statuses[1:]
		}
		r.mu.Unlock()
		w.WriteHeader(status)
	}
}

func ingestClient(t *testing.T, endpoint string) *ingest.Client {
	t.Helper()
	settings := &ingest.Settings{
		CustomerID: "w1",
		SharedKey:  base64.StdEncoding.EncodeToString([]byte("secret-key-secret-key-secret-key")),
		LogType:    "TestResults",
		Timeout:    5 * time.Second,
		MaxRetries: 1,
	}
	require.NoError(t, settings.Validate())
	c := ingest.NewClient(log.New(), settings)
	c.SetEndpoint(endpoint)
	return c
}

func TestIngestOnePostPerSuite(t *testing.T) {
	rec := &postRecorder{}
	srv := httptest.NewServer(rec.handler())
	defer srv.Close()

	res := buildReportTree()
	sink := logging.NewRecordWriter(filepath.Join(t.TempDir(), "ingest.log"), nil)
	w := NewIngestLogWriter(context.Background(), sink, ingestClient(t, srv.URL))
	res.Visit(w)
	require.NoError(t, w.Err())

	// Child leaves first, then Root.
	require.Len(t, rec.payloads, 2)

	var childBatch []ingestSuite
	require.NoError(t, json.Unmarshal(rec.payloads[0], &childBatch))
	require.Len(t, childBatch, 1)
	assert.Equal(t, "Child", childBatch[0].Name)
	require.Len(t, childBatch[0].Testcases, 2)
	assert.Equal(t, "t1", childBatch[0].Testcases[0].Name)
	assert.Equal(t, "Root.Child", childBatch[0].Testcases[0].Classname)
	assert.Equal(t, "boom", childBatch[0].Testcases[1].Message)

	// The root record carries only its direct tests, not the child's.
	var rootBatch []ingestSuite
	require.NoError(t, json.Unmarshal(rec.payloads[1], &rootBatch))
	require.Len(t, rootBatch, 1)
	assert.Equal(t, "Root", rootBatch[0].Name)
	require.Len(t, rootBatch[0].Testcases, 1)
	assert.Equal(t, "t3", rootBatch[0].Testcases[0].Name)
}

func TestIngestSuiteRecordCounts(t *testing.T) {
	rec := &postRecorder{}
	srv := httptest.NewServer(rec.handler())
	defer srv.Close()

	res := buildReportTree()
	sink := logging.NewRecordWriter(filepath.Join(t.TempDir(), "ingest.log"), nil)
	w := NewIngestLogWriter(context.Background(), sink, ingestClient(t, srv.URL))
	res.Visit(w)
	require.NoError(t, w.Err())

	var rootBatch []ingestSuite
	require.NoError(t, json.Unmarshal(rec.payloads[1], &rootBatch))
	stats := res.Suite.Statistics()
	assert.Equal(t, stats.Total, rootBatch[0].Tests)
	assert.Equal(t, stats.Failed, rootBatch[0].Failures)
	assert.Equal(t, stats.Skipped, rootBatch[0].Skipped)
	require.NotNil(t, rootBatch[0].Timestamp)
	assert.Equal(t, "2024-01-02T03:04:05.123000", *rootBatch[0].Timestamp)
}

func TestIngestFailureDoesNotStopRemainingSuites(t *testing.T) {
	rec := &postRecorder{statuses: []int{http.StatusInternalServerError, http.StatusInternalServerError, http.StatusOK}}
	srv := httptest.NewServer(rec.handler())
	defer srv.Close()

	res := buildReportTree()
	sink := logging.NewRecordWriter(filepath.Join(t.TempDir(), "ingest.log"), nil)
	w := NewIngestLogWriter(context.Background(), sink, ingestClient(t, srv.URL))
	res.Visit(w)

	// The child's submission failed after its retry; the root still posted.
	assert.Error(t, w.Err())
	require.Len(t, rec.payloads, 3)
	var rootBatch []ingestSuite
	require.NoError(t, json.Unmarshal(rec.payloads[2], &rootBatch))
	assert.Equal(t, "Root", rootBatch[0].Name)
}
