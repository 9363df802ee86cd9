package resultproc

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ethereum/go-ethereum/log"

	"github.com/testworks-io/resultproc/flags"
	"github.com/testworks-io/resultproc/ingest"
	"github.com/testworks-io/resultproc/process"
	"github.com/testworks-io/resultproc/result"
)

// disabled is the special artifact name that turns an output off.
const disabled = "NONE"

// Config holds the application configuration
type Config struct {
	Inputs []string // Input result files, in the order given

	Merge     bool              // Merge inputs by re-executed entry instead of combining
	Name      string            // Name for the top level suite
	Doc       string            // Documentation for the top level suite
	Metadata  []result.Metadata // Metadata for the top level suite
	SetTags   []string          // Tags added to every retained test
	StartTime string            // Top level suite start time override, compact form
	EndTime   string            // Top level suite end time override, compact form

	SuiteNames        []string // Suite name filters
	TestNames         []string // Test name filters
	Include           []string // Include tag expressions
	Exclude           []string // Exclude tag expressions
	ProcessEmptySuite bool     // Process the result even when filtering leaves no tests

	RemoveKeywords  []string // Keyword removal modes
	FlattenKeywords []string // Keyword flatten modes

	OutputDir        string           // Directory where output files are created
	Output           string           // Processed result tree file, empty when disabled
	MonitorLog       string           // xUnit-style record log file, empty when disabled
	XUnit            string           // xUnit record log file, empty when disabled
	IngestLog        string           // Ingestion record log file, empty when disabled
	IngestConfig     string           // Path to the ingestion settings file
	IngestSettings   *ingest.Settings // Parsed ingestion settings, set when IngestLog is enabled
	TimestampOutputs bool             // Add a timestamp to output file names

	NoStatusRC bool  // Return zero regardless of failures
	RPA        *bool // Execution mode override: tasks (true) or tests (false); nil keeps the inputs' mode

	Log log.Logger
}

// NewConfig creates a new Config from cli context
func NewConfig(ctx *cli.Context, logger log.Logger) (*Config, error) {
	if err := flags.CheckRequired(ctx); err != nil {
		return nil, NewConfigurationError(err)
	}

	metadata, err := parseMetadata(ctx.StringSlice(flags.Metadata.Name))
	if err != nil {
		return nil, NewConfigurationError(err)
	}

	startTime, err := normalizeTimeOption(flags.StartTime.Name, ctx.String(flags.StartTime.Name))
	if err != nil {
		return nil, NewConfigurationError(err)
	}
	endTime, err := normalizeTimeOption(flags.EndTime.Name, ctx.String(flags.EndTime.Name))
	if err != nil {
		return nil, NewConfigurationError(err)
	}

	removeModes := ctx.StringSlice(flags.RemoveKeywords.Name)
	if err := process.ValidateRemovalModes(removeModes); err != nil {
		return nil, NewConfigurationError(err)
	}
	flattenModes := ctx.StringSlice(flags.FlattenKeywords.Name)
	if err := process.ValidateFlattenModes(flattenModes); err != nil {
		return nil, NewConfigurationError(err)
	}

	outputDir, err := filepath.Abs(ctx.String(flags.OutputDir.Name))
	if err != nil {
		return nil, NewConfigurationError(fmt.Errorf("failed to resolve output directory: %w", err))
	}

	ingestLog := artifactPath(outputDir, ctx.String(flags.IngestLog.Name))
	ingestConfig := ctx.String(flags.IngestConfig.Name)
	if ingestLog != "" && ingestConfig == "" {
		return nil, NewConfigurationError(fmt.Errorf("--ingestlog requires --ingestconfig"))
	}

	// Settings problems are configuration errors and must surface before any
	// artifact is written, so the file is read and validated here rather than
	// at emission time.
	var ingestSettings *ingest.Settings
	if ingestLog != "" {
		ingestSettings, err = ingest.LoadSettings(ingestConfig)
		if err != nil {
			return nil, NewConfigurationError(err)
		}
	}

	var rpa *bool
	if ctx.IsSet(flags.RPA.Name) {
		v := ctx.Bool(flags.RPA.Name)
		rpa = &v
	}

	// HTML log and report generation belongs to a presentation layer this
	// tool does not carry; the options are accepted so existing invocations
	// keep working.
	for _, name := range []string{flags.Log.Name, flags.Report.Name} {
		if path := artifactPath(outputDir, ctx.String(name)); path != "" {
			logger.Warn("Option is accepted but its artifact is not generated", "option", name)
		}
	}

	return &Config{
		Inputs:            ctx.Args().Slice(),
		Merge:             ctx.Bool(flags.Merge.Name),
		Name:              ctx.String(flags.Name.Name),
		Doc:               ctx.String(flags.Doc.Name),
		Metadata:          metadata,
		SetTags:           ctx.StringSlice(flags.SetTag.Name),
		StartTime:         startTime,
		EndTime:           endTime,
		SuiteNames:        ctx.StringSlice(flags.Suite.Name),
		TestNames:         ctx.StringSlice(flags.Test.Name),
		Include:           ctx.StringSlice(flags.Include.Name),
		Exclude:           ctx.StringSlice(flags.Exclude.Name),
		ProcessEmptySuite: ctx.Bool(flags.ProcessEmptySuite.Name),
		RemoveKeywords:    removeModes,
		FlattenKeywords:   flattenModes,
		OutputDir:         outputDir,
		Output:            artifactPath(outputDir, ctx.String(flags.Output.Name)),
		MonitorLog:        artifactPath(outputDir, ctx.String(flags.MonitorLog.Name)),
		XUnit:             artifactPath(outputDir, ctx.String(flags.XUnit.Name)),
		IngestLog:         ingestLog,
		IngestConfig:      ingestConfig,
		IngestSettings:    ingestSettings,
		TimestampOutputs:  ctx.Bool(flags.TimestampOutputs.Name),
		NoStatusRC:        ctx.Bool(flags.NoStatusRC.Name),
		RPA:               rpa,
		Log:               logger,
	}, nil
}

// HasArtifacts reports whether any report output is enabled.
func (c *Config) HasArtifacts() bool {
	return c.Output != "" || c.MonitorLog != "" || c.XUnit != "" || c.IngestLog != ""
}

// artifactPath resolves an artifact option value against the output
// directory; the special value NONE (any case) disables the artifact.
func artifactPath(outputDir, value string) string {
	if value == "" || strings.EqualFold(value, disabled) {
		return ""
	}
	if filepath.IsAbs(value) {
		return value
	}
	return filepath.Join(outputDir, value)
}

func parseMetadata(values []string) ([]result.Metadata, error) {
	metadata := make([]result.Metadata, 0, len(values))
	for _, v := range values {
		name, value, ok := strings.Cut(v, ":")
		if !ok {
			return nil, fmt.Errorf("invalid metadata %q, expected 'name:value'", v)
		}
		metadata = append(metadata, result.Metadata{Name: name, Value: value})
	}
	return metadata, nil
}

func normalizeTimeOption(option, value string) (string, error) {
	if value == "" {
		return "", nil
	}
	normalized, err := result.NormalizeTimestamp(value)
	if err != nil {
		return "", fmt.Errorf("invalid --%s value %q: %w", option, value, err)
	}
	return normalized, nil
}
