package internal

// Reserved template symbols. None of them can be escaped.
const (
	SymWildcard     = '*'
	SymOptionalOpen = '('
	SymOptionalEnd  = ')'
	SymChoiceOpen   = '['
	SymChoiceEnd    = ']'
	SymChoiceSep    = '|'
	SymCaptureMark  = '~'
	KeywordInteger  = "INT"
)

// Generation constants
const (
	// RandomWildcardAlphabet is the character set used for unbound wildcards.
	RandomWildcardAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// RandomWildcardMinLen and RandomWildcardMaxLen bound unbound wildcard output.
	RandomWildcardMinLen = 1
	RandomWildcardMaxLen = 10
	// RandomIntegerMax is the inclusive upper bound of an unbound Integer.
	RandomIntegerMax = 100
)

// Matcher constants
const (
	// CancelCheckInterval is how many search steps run between context checks.
	CancelCheckInterval = 1024
)

// Log messages
const (
	LogMsgCompilerCreated  = "compiler created"
	LogMsgCompileStart     = "starting compile"
	LogMsgCompileEnd       = "compile complete"
	LogMsgFinderRejected   = "finder reported non-positive consumption, ignored"
	LogMsgMatcherCreated   = "matcher created"
	LogMsgMatchStart       = "starting match"
	LogMsgMatchEnd         = "match complete"
	LogMsgMatchAborted     = "match aborted"
	LogMsgGeneratorCreated = "generator created"
	LogMsgGenerateStart    = "starting generation"
	LogMsgGenerateEnd      = "generation complete"
)

// Log field names
const (
	LogFieldTemplate   = "template_length"
	LogFieldTokens     = "token_count"
	LogFieldFinder     = "finder"
	LogFieldFinders    = "finder_count"
	LogFieldMessage    = "message_length"
	LogFieldCandidates = "candidate_count"
	LogFieldSteps      = "steps"
	LogFieldOutput     = "output_length"
	LogFieldError      = "error"
)
