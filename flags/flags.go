package flags

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

const EnvVarPrefix = "RESULTPROC"

func prefixEnvVars(name string) []string {
	return []string{EnvVarPrefix + "_" + name}
}

var (
	Merge = &cli.BoolFlag{
		Name:    "merge",
		Value:   false,
		EnvVars: prefixEnvVars("MERGE"),
		Usage:   "Merge inputs by re-executed entry instead of combining them under a new root suite",
	}
	Name = &cli.StringFlag{
		Name:    "name",
		Value:   "",
		EnvVars: prefixEnvVars("NAME"),
		Usage:   "Name for the top level suite",
	}
	Doc = &cli.StringFlag{
		Name:    "doc",
		Value:   "",
		EnvVars: prefixEnvVars("DOC"),
		Usage:   "Documentation for the top level suite",
	}
	Metadata = &cli.StringSliceFlag{
		Name:    "metadata",
		EnvVars: prefixEnvVars("METADATA"),
		Usage:   "Metadata for the top level suite as 'name:value'",
	}
	SetTag = &cli.StringSliceFlag{
		Name:    "settag",
		EnvVars: prefixEnvVars("SETTAG"),
		Usage:   "Tag added to every retained test",
	}
	Test = &cli.StringSliceFlag{
		Name:    "test",
		Aliases: []string{"task"},
		EnvVars: prefixEnvVars("TEST"),
		Usage:   "Select tests by name or long name (glob pattern)",
	}
	Suite = &cli.StringSliceFlag{
		Name:    "suite",
		EnvVars: prefixEnvVars("SUITE"),
		Usage:   "Select suites by name or long name (glob pattern)",
	}
	Include = &cli.StringSliceFlag{
		Name:    "include",
		EnvVars: prefixEnvVars("INCLUDE"),
		Usage:   "Select tests by tag expression",
	}
	Exclude = &cli.StringSliceFlag{
		Name:    "exclude",
		EnvVars: prefixEnvVars("EXCLUDE"),
		Usage:   "Deselect tests by tag expression; wins over --include",
	}
	ProcessEmptySuite = &cli.BoolFlag{
		Name:    "processemptysuite",
		Value:   false,
		EnvVars: prefixEnvVars("PROCESSEMPTYSUITE"),
		Usage:   "Process the result also when filtering leaves no tests",
	}
	OutputDir = &cli.StringFlag{
		Name:    "outputdir",
		Aliases: []string{"d"},
		Value:   ".",
		EnvVars: prefixEnvVars("OUTPUTDIR"),
		Usage:   "Directory where output files are created",
	}
	Output = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Value:   "NONE",
		EnvVars: prefixEnvVars("OUTPUT"),
		Usage:   "Processed result tree file; not created unless specified",
	}
	Log = &cli.StringFlag{
		Name:    "log",
		Aliases: []string{"l"},
		Value:   "NONE",
		EnvVars: prefixEnvVars("LOG"),
		Usage:   "HTML log file; disabled with NONE",
	}
	Report = &cli.StringFlag{
		Name:    "report",
		Aliases: []string{"r"},
		Value:   "NONE",
		EnvVars: prefixEnvVars("REPORT"),
		Usage:   "HTML report file; disabled with NONE",
	}
	MonitorLog = &cli.StringFlag{
		Name:    "monitorlog",
		Aliases: []string{"m"},
		Value:   "NONE",
		EnvVars: prefixEnvVars("MONITORLOG"),
		Usage:   "xUnit-style record log file; disabled with NONE",
	}
	XUnit = &cli.StringFlag{
		Name:    "xunit",
		Aliases: []string{"x"},
		Value:   "NONE",
		EnvVars: prefixEnvVars("XUNIT"),
		Usage:   "xUnit compatible record log file; disabled with NONE",
	}
	IngestLog = &cli.StringFlag{
		Name:    "ingestlog",
		Value:   "NONE",
		EnvVars: prefixEnvVars("INGESTLOG"),
		Usage:   "Ingestion record log file; enables remote submission together with --ingestconfig",
	}
	IngestConfig = &cli.StringFlag{
		Name:    "ingestconfig",
		Value:   "",
		EnvVars: prefixEnvVars("INGESTCONFIG"),
		Usage:   "Path to ingestion settings file (eg. 'ingest.yaml')",
	}
	TimestampOutputs = &cli.BoolFlag{
		Name:    "timestampoutputs",
		Aliases: []string{"T"},
		Value:   false,
		EnvVars: prefixEnvVars("TIMESTAMPOUTPUTS"),
		Usage:   "Add a timestamp between output file basenames and extensions",
	}
	RemoveKeywords = &cli.StringSliceFlag{
		Name:    "removekeywords",
		EnvVars: prefixEnvVars("REMOVEKEYWORDS"),
		Usage:   "Remove keyword data: all|passed|for|while|wuks|name:<pattern>|tag:<pattern>",
	}
	FlattenKeywords = &cli.StringSliceFlag{
		Name:    "flattenkeywords",
		EnvVars: prefixEnvVars("FLATTENKEYWORDS"),
		Usage:   "Flatten matching keywords: for|while|iteration|name:<pattern>|tag:<pattern>",
	}
	ExpandKeywords = &cli.StringSliceFlag{
		Name:    "expandkeywords",
		EnvVars: prefixEnvVars("EXPANDKEYWORDS"),
		Usage:   "Expand matching keywords in the log file: name:<pattern>|tag:<pattern>",
	}
	StartTime = &cli.StringFlag{
		Name:    "starttime",
		Value:   "",
		EnvVars: prefixEnvVars("STARTTIME"),
		Usage:   "Override the top level suite start time; separators in the timestamp are optional",
	}
	EndTime = &cli.StringFlag{
		Name:    "endtime",
		Value:   "",
		EnvVars: prefixEnvVars("ENDTIME"),
		Usage:   "Override the top level suite end time; separators in the timestamp are optional",
	}
	NoStatusRC = &cli.BoolFlag{
		Name:    "nostatusrc",
		Value:   false,
		EnvVars: prefixEnvVars("NOSTATUSRC"),
		Usage:   "Return zero regardless of failures; errors are returned normally",
	}
	RPA = &cli.BoolFlag{
		Name:    "rpa",
		Value:   false,
		EnvVars: prefixEnvVars("RPA"),
		Usage:   "Treat the results as tasks instead of tests",
	}
	LogLevel = &cli.StringFlag{
		Name:    "loglevel",
		Aliases: []string{"L"},
		Value:   "TRACE",
		EnvVars: prefixEnvVars("LOGLEVEL"),
		Usage:   "Threshold for selecting messages in the log file",
	}
	SuiteStatLevel = &cli.IntFlag{
		Name:    "suitestatlevel",
		Value:   0,
		EnvVars: prefixEnvVars("SUITESTATLEVEL"),
		Usage:   "How many suite levels to show in statistics; 0 shows all",
	}
	TagStatInclude = &cli.StringSliceFlag{
		Name:    "tagstatinclude",
		EnvVars: prefixEnvVars("TAGSTATINCLUDE"),
		Usage:   "Include only matching tags in tag statistics",
	}
	TagStatExclude = &cli.StringSliceFlag{
		Name:    "tagstatexclude",
		EnvVars: prefixEnvVars("TAGSTATEXCLUDE"),
		Usage:   "Exclude matching tags from tag statistics",
	}
	TagStatCombine = &cli.StringSliceFlag{
		Name:    "tagstatcombine",
		EnvVars: prefixEnvVars("TAGSTATCOMBINE"),
		Usage:   "Create combined tag statistics as 'tags:name'",
	}
	TagStatLink = &cli.StringSliceFlag{
		Name:    "tagstatlink",
		EnvVars: prefixEnvVars("TAGSTATLINK"),
		Usage:   "Add external links to tag statistics as 'pattern:link:title'",
	}
	TagDoc = &cli.StringSliceFlag{
		Name:    "tagdoc",
		EnvVars: prefixEnvVars("TAGDOC"),
		Usage:   "Add documentation to matching tags as 'pattern:doc'",
	}
)

var Flags = []cli.Flag{
	Merge,
	Name,
	Doc,
	Metadata,
	SetTag,
	Test,
	Suite,
	Include,
	Exclude,
	ProcessEmptySuite,
	OutputDir,
	Output,
	Log,
	Report,
	MonitorLog,
	XUnit,
	IngestLog,
	IngestConfig,
	TimestampOutputs,
	RemoveKeywords,
	FlattenKeywords,
	ExpandKeywords,
	StartTime,
	EndTime,
	NoStatusRC,
	RPA,
	LogLevel,
	SuiteStatLevel,
	TagStatInclude,
	TagStatExclude,
	TagStatCombine,
	TagStatLink,
	TagDoc,
}

// CheckRequired validates the positional arguments; at least one input file
// is required.
func CheckRequired(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return fmt.Errorf("at least one input file is required")
	}
	return nil
}
