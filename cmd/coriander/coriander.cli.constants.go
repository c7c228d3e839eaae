package main

// Command names
const (
	CmdNameCompile  = "compile"
	CmdNameMatch    = "match"
	CmdNameGenerate = "generate"
	CmdNameClassify = "classify"
	CmdNameVersion  = "version"
)

// Flag names - long form
const (
	FlagTemplateFile = "template-file"
	FlagData         = "data"
	FlagDataFile     = "data-file"
	FlagFormat       = "format"
	FlagSeed         = "seed"
	FlagCount        = "count"
	FlagCatalog      = "catalog"
	FlagBudget       = "budget"
	FlagVerbose      = "verbose"
	FlagQuiet        = "quiet"
)

// Flag names - short form
const (
	FlagTemplateFileShort = "t"
	FlagDataShort         = "d"
	FlagDataFileShort     = "f"
	FlagFormatShort       = "F"
	FlagSeedShort         = "s"
	FlagCountShort        = "n"
	FlagCatalogShort      = "c"
	FlagVerboseShort      = "v"
	FlagQuietShort        = "q"
)

// Flag default values
const (
	FlagDefaultFormat = OutputFormatText
	FlagDefaultCount  = 1
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// Exit codes
const (
	ExitCodeSuccess    = 0
	ExitCodeError      = 1
	ExitCodeUsageError = 2
	ExitCodeNoMatch    = 3
	ExitCodeInputError = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// Error messages
const (
	ErrMsgMissingTemplate    = "template required"
	ErrMsgMissingMessage     = "message required"
	ErrMsgMissingCatalog     = "catalog required"
	ErrMsgReadFileFailed     = "failed to read file"
	ErrMsgReadStdinFailed    = "failed to read from stdin"
	ErrMsgInvalidData        = "invalid data"
	ErrMsgInvalidFormat      = "invalid output format"
	ErrMsgInvalidCount       = "count must be positive"
	ErrMsgMatchFailed        = "match failed"
	ErrMsgLoadCatalogFailed  = "failed to load catalog"
	ErrMsgWriteOutputFailed  = "failed to write output"
	ErrMsgMarshalFailed      = "failed to encode output"
	ErrMsgTemplateFromTwoSrc = "template given both as argument and file"
)

// CLI metadata
const (
	CLIName        = "coriander"
	CLIDescription = "Match and generate messages from coriander templates"
	VersionUnknown = "unknown"
)

// Help text
const (
	HelpRootLong = `coriander compiles templates into patterns that both recognize and
produce messages.

Template syntax:
    *          any non-empty run of characters
    INT        a run of decimal digits
    (...)      optional group
    [a|b|c]    choice between branches
    ~name      capture name for the preceding token`

	HelpCompileExample = `  coriander compile "[hello|hi] my name is *~name"
  coriander compile -t greeting.tmpl --format json`

	HelpMatchExample = `  coriander match "INT~age years old" "25 years old"
  echo "hi my name is Ada" | coriander match "[hello|hi] my name is *~name" - --format yaml`

	HelpGenerateExample = `  coriander generate "INT~age years old" -d '{"age": 25}'
  coriander generate "[hello|hi] *" --seed 42 --count 5
  coriander generate "*~name says hi" -f data.yaml`

	HelpClassifyExample = `  coriander classify -c catalog.yaml "hi my name is Ada"
  coriander classify -c ./templates "25 years old" --format json`
)

// Text output
const (
	TextMatchSuccess  = "match"
	TextMatchFailure  = "no match"
	TextNoClassifier  = "no template matched"
	TextCaptureFormat = "  %s = %v\n"
	TextClassifyLine  = "%s\n"
	TextCaptureHeader = "captures:"
	TextTreeLabel     = "tree:     %s\n"
	TextTemplateLabel = "template: %s\n"
	TextCapturesLabel = "captures: %s\n"
	VersionTextFormat = "coriander %s\ncommit: %s\ngo: %s\n"
)

// Format string constants
const (
	FmtErrorWithCause = "%s: %v\n"
	FmtError          = "%s\n"
)
