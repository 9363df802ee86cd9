// Package resultproc post-processes test run result trees: it merges or
// combines inputs, filters and reduces the tree, and emits the configured
// report artifacts including remote ingestion.
package resultproc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"

	"github.com/testworks-io/resultproc/exitcodes"
	"github.com/testworks-io/resultproc/ingest"
	"github.com/testworks-io/resultproc/logging"
	"github.com/testworks-io/resultproc/metrics"
	"github.com/testworks-io/resultproc/process"
	"github.com/testworks-io/resultproc/reporting"
	"github.com/testworks-io/resultproc/result"
)

// Service processes result trees according to its configuration. A service
// processes one run and is not reused.
type Service struct {
	cfg    *Config
	logger log.Logger
	runID  string
	now    func() time.Time
}

// NewService creates a service for one processing run.
func NewService(cfg *Config) *Service {
	return &Service{
		cfg:    cfg,
		logger: cfg.Log,
		runID:  uuid.New().String(),
		now:    time.Now,
	}
}

// RunID returns the unique identifier of this processing run.
func (s *Service) RunID() string {
	return s.runID
}

// Run executes the full pipeline: load, merge or combine, filter, reduce,
// emit. It returns the process exit status derived from the failed test
// count, or an error for fatal conditions. Ingestion failures are logged
// and never change the returned status.
func (s *Service) Run(ctx context.Context) (int, error) {
	s.logger.Info("Processing results", "runID", s.runID, "inputs", len(s.cfg.Inputs))

	if !s.cfg.HasArtifacts() {
		return exitcodes.RuntimeErr, NewNoArtifactsError()
	}

	res, err := s.assemble()
	if err != nil {
		metrics.RecordErrorDetails("assemble", err)
		return exitcodes.RuntimeErr, err
	}

	if err := s.transform(res); err != nil {
		metrics.RecordErrorDetails("transform", err)
		return exitcodes.RuntimeErr, err
	}

	if err := s.emit(ctx, res); err != nil {
		metrics.RecordErrorDetails("emit", err)
		return exitcodes.RuntimeErr, err
	}

	reporting.WriteSummary(os.Stdout, res)

	stats := res.Statistics()
	outcome := "pass"
	if stats.Failed > 0 {
		outcome = "fail"
	}
	metrics.RecordRun(s.runID, outcome, stats.Total, stats.Failed)

	return s.statusRC(stats), nil
}

// assemble loads the input trees and unifies them under the configured
// policy.
func (s *Service) assemble() (*result.Result, error) {
	inputs := make([]*result.Result, 0, len(s.cfg.Inputs))
	for _, path := range s.cfg.Inputs {
		res, err := result.ReadFile(path)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, res)
	}

	var res *result.Result
	var err error
	if s.cfg.Merge {
		res, err = result.Merge(inputs)
		if err != nil {
			return nil, err
		}
		s.applyRootOverrides(res.Suite)
	} else {
		res, err = result.Combine(inputs, result.CombineOptions{
			Name:      s.cfg.Name,
			Doc:       s.cfg.Doc,
			Metadata:  s.cfg.Metadata,
			StartTime: s.cfg.StartTime,
			EndTime:   s.cfg.EndTime,
		})
		if err != nil {
			return nil, err
		}
	}

	if s.cfg.RPA != nil {
		res.RPA = *s.cfg.RPA
	}
	return res, nil
}

func (s *Service) applyRootOverrides(root *result.Suite) {
	if s.cfg.Name != "" {
		root.Name = s.cfg.Name
	}
	if s.cfg.Doc != "" {
		root.Doc = s.cfg.Doc
	}
	for _, m := range s.cfg.Metadata {
		root.SetMetadata(m.Name, m.Value)
	}
	if s.cfg.StartTime != "" {
		root.StartTime = s.cfg.StartTime
	}
	if s.cfg.EndTime != "" {
		root.EndTime = s.cfg.EndTime
	}
}

// transform applies selection and keyword reduction in place. The tree is
// final once transform returns; emitters never mutate it.
func (s *Service) transform(res *result.Result) error {
	filter := &process.Filter{
		SuiteNames: s.cfg.SuiteNames,
		TestNames:  s.cfg.TestNames,
		Include:    s.cfg.Include,
		Exclude:    s.cfg.Exclude,
		KeepEmpty:  s.cfg.ProcessEmptySuite,
	}
	if err := filter.Apply(res); err != nil {
		return err
	}
	process.SetTags(res, s.cfg.SetTags)
	if err := process.RemoveKeywords(res, s.cfg.RemoveKeywords); err != nil {
		return NewConfigurationError(err)
	}
	if err := process.FlattenKeywords(res, s.cfg.FlattenKeywords); err != nil {
		return NewConfigurationError(err)
	}
	return nil
}

// emit runs each enabled emitter as its own sequential pass over the
// finalized tree.
func (s *Service) emit(ctx context.Context, res *result.Result) error {
	stats := res.Statistics()
	suites := countSuites(res.Suite)

	for _, path := range []string{s.cfg.MonitorLog, s.cfg.XUnit} {
		if path == "" {
			continue
		}
		path = s.outputPath(path)
		s.logger.Info("Writing xUnit record log", "path", path)
		writer := reporting.NewXUnitLogWriter(logging.NewRecordWriter(path, os.Stdout))
		res.Visit(writer)
		if err := writer.Err(); err != nil {
			return err
		}
		metrics.RecordEmitted("xunit", s.runID, suites, stats.Total)
	}

	if s.cfg.IngestLog != "" {
		if err := s.emitIngest(ctx, res, suites, stats.Total); err != nil {
			return err
		}
	}

	if s.cfg.Output != "" {
		path := s.outputPath(s.cfg.Output)
		s.logger.Info("Writing result tree", "path", path)
		if err := result.WriteFile(path, res); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) emitIngest(ctx context.Context, res *result.Result, suites, tests int) error {
	// Settings were loaded and validated by NewConfig.
	settings := s.cfg.IngestSettings
	path := s.outputPath(s.cfg.IngestLog)
	s.logger.Info("Writing ingestion record log", "path", path, "workspace", settings.CustomerID)

	client := ingest.NewClient(s.logger, settings)
	writer := reporting.NewIngestLogWriter(ctx, logging.NewRecordWriter(path, os.Stdout), client)
	res.Visit(writer)
	metrics.RecordEmitted("ingest", s.runID, suites, tests)

	// Ingestion failures never decide the outcome of a run; they are logged
	// with full detail and processing continues.
	if err := writer.Err(); err != nil {
		s.logger.Error("Ingestion incomplete", "err", err)
		metrics.RecordIngestion(s.runID, false)
	} else {
		metrics.RecordIngestion(s.runID, true)
	}
	return nil
}

// outputPath applies the output timestamp suffix when configured.
func (s *Service) outputPath(path string) string {
	if !s.cfg.TimestampOutputs {
		return path
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return fmt.Sprintf("%s-%s%s", base, s.now().Format("20060102-150405"), ext)
}

// statusRC derives the exit status from the failed test count, capped so it
// never collides with the reserved error codes.
func (s *Service) statusRC(stats result.Statistics) int {
	if s.cfg.NoStatusRC {
		return exitcodes.Success
	}
	if stats.Failed > exitcodes.MaxFailures {
		return exitcodes.MaxFailures
	}
	return stats.Failed
}

func countSuites(suite *result.Suite) int {
	n := 1
	for _, child := range suite.Suites() {
		n += countSuites(child)
	}
	return n
}
