package coriander

import (
	"time"

	"github.com/itsatony/go-coriander/internal"
)

// Template grammar symbols. They are reserved and cannot be escaped.
const (
	SymbolWildcard     = string(internal.SymWildcard)
	SymbolOptionalOpen = string(internal.SymOptionalOpen)
	SymbolOptionalEnd  = string(internal.SymOptionalEnd)
	SymbolChoiceOpen   = string(internal.SymChoiceOpen)
	SymbolChoiceEnd    = string(internal.SymChoiceEnd)
	SymbolChoiceSep    = string(internal.SymChoiceSep)
	SymbolCaptureMark  = string(internal.SymCaptureMark)
	KeywordInteger     = internal.KeywordInteger
)

// Pattern cache defaults
const (
	DefaultCacheTTL        = 10 * time.Minute
	DefaultCacheMaxEntries = 1000
	// DefaultCacheMaxTemplateSize is the largest template (bytes) worth caching.
	DefaultCacheMaxTemplateSize = 64 << 10
)

// Suggestion defaults
const (
	// MaxSuggestions caps "did you mean" candidates in not-found errors.
	MaxSuggestions = 3
)

// Error metadata keys
const (
	MetaKeyTemplateName = "template_name"
	MetaKeySuggestions  = "suggestions"
	MetaKeySteps        = "steps"
	MetaKeyPath         = "path"
	MetaKeyDriver       = "driver"
	MetaKeyReason       = "reason"
)

// Log messages
const (
	LogMsgEngineCreated       = "engine created"
	LogMsgTemplateRegistered  = "template registered"
	LogMsgTemplateReplaced    = "template replaced"
	LogMsgTemplateRemoved     = "template removed"
	LogMsgStoreLoaded         = "templates loaded from store"
	LogMsgCacheHit            = "pattern cache hit"
	LogMsgCacheMiss           = "pattern cache miss"
	LogMsgClassifyComplete    = "classification complete"
	LogMsgWatchStarted        = "catalog watch started"
	LogMsgWatchReload         = "catalog reloaded"
	LogMsgWatchReloadFailed   = "catalog reload failed"
	LogMsgWatchStopped        = "catalog watch stopped"
	LogMsgMigrationsApplied   = "postgres migrations applied"
	LogMsgCatalogFileSkipped  = "catalog file skipped"
	LogMsgStoreTemplateLoaded = "stored template registered"
)

// Log field names
const (
	LogFieldTemplateName = "template_name"
	LogFieldTemplates    = "template_count"
	LogFieldMatches      = "match_count"
	LogFieldPath         = "path"
	LogFieldEvent        = "event"
	LogFieldError        = "error"
	LogFieldMigrations   = "migration_count"
)

// Storage driver names
const (
	StorageDriverNameMemory     = "memory"
	StorageDriverNameFilesystem = "filesystem"
	StorageDriverNamePostgres   = "postgres"
)

// Catalog file constants
const (
	CatalogFileExtYAML     = ".yaml"
	CatalogFileExtYML      = ".yml"
	CatalogFilePermissions = 0o644
	CatalogDirPermissions  = 0o755
	// CatalogDefaultFile is where FilesystemStore writes templates saved through Save.
	CatalogDefaultFile = "catalog.yaml"
)

// PostgreSQL store defaults
const (
	PostgresDefaultMaxOpenConns    = 10
	PostgresDefaultMaxIdleConns    = 2
	PostgresDefaultConnMaxLifetime = 5 * time.Minute
	PostgresDefaultQueryTimeout    = 30 * time.Second
	PostgresTablePrefix            = "coriander_"
)

// Catalog watch
const (
	// WatchDebounce is how long Watch waits for a burst of file events to settle.
	WatchDebounce = 100 * time.Millisecond
)
