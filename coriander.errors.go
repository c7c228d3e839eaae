package coriander

import (
	"errors"
	"strconv"
	"strings"

	"github.com/itsatony/go-cuserr"

	"github.com/itsatony/go-coriander/internal"
)

// Error message constants
const (
	// Registry errors
	ErrMsgEmptyTemplateName = "template name cannot be empty"
	ErrMsgTemplateExists    = "template already registered"
	ErrMsgTemplateNotFound  = "template not found"

	// Match errors
	ErrMsgMatchAborted        = "match aborted"
	ErrMsgMatchBudgetExceeded = internal.ErrMsgMatchBudgetExceeded

	// Catalog errors
	ErrMsgCatalogRead    = "failed to read catalog"
	ErrMsgCatalogParse   = "failed to parse catalog"
	ErrMsgCatalogInvalid = "invalid catalog entry"
	ErrMsgCatalogWrite   = "failed to write catalog"
	ErrMsgWatchFailed    = "failed to watch catalog directory"

	// Storage errors
	ErrMsgStorageClosed           = "storage is closed"
	ErrMsgStorageDriverNotFound   = "storage driver not found"
	ErrMsgNilStorageDriver        = "storage driver is nil"
	ErrMsgDriverAlreadyRegistered = "storage driver already registered"
	ErrMsgInvalidStorageRoot      = "storage root directory is empty"
	ErrMsgCreateStorageDir        = "failed to create storage directory"
	ErrMsgPostgresEmptyConnString = "postgres connection string is empty"
	ErrMsgPostgresConnectFailed   = "failed to connect to postgres"
	ErrMsgPostgresQueryFailed     = "postgres query failed"
	ErrMsgPostgresMigrationFailed = "postgres migration failed"
)

// Error code constants for categorization
const (
	ErrCodeRegistry = "CORIANDER_REGISTRY"
	ErrCodeMatch    = "CORIANDER_MATCH"
	ErrCodeCatalog  = "CORIANDER_CATALOG"
	ErrCodeStorage  = "CORIANDER_STORAGE"
)

// NewEmptyTemplateNameError creates an error for an empty template name
func NewEmptyTemplateNameError() error {
	return cuserr.NewValidationError(ErrCodeRegistry, ErrMsgEmptyTemplateName)
}

// NewTemplateExistsError creates a template name collision error
func NewTemplateExistsError(name string) error {
	return cuserr.NewValidationError(ErrCodeRegistry, ErrMsgTemplateExists).
		WithMetadata(MetaKeyTemplateName, name)
}

// NewTemplateNotFoundError creates a not-found error for a named template.
// Close names, if any, are attached as comma-separated suggestions.
func NewTemplateNotFoundError(name string, suggestions ...string) error {
	err := cuserr.NewNotFoundError(MetaKeyTemplateName, ErrMsgTemplateNotFound).
		WithMetadata(MetaKeyTemplateName, name)
	if len(suggestions) > 0 {
		err = err.WithMetadata(MetaKeySuggestions, strings.Join(suggestions, ","))
	}
	return err
}

// NewMatchError wraps an aborted search (step budget or cancellation). The
// cause names the reason; the reason and step count are also metadata.
func NewMatchError(cause error) error {
	err := cuserr.WrapStdError(cause, ErrCodeMatch, ErrMsgMatchAborted)
	var matchErr *internal.MatchError
	if !errors.As(cause, &matchErr) {
		return err.WithMetadata(MetaKeySteps, "0")
	}
	return err.
		WithMetadata(MetaKeySteps, strconv.Itoa(matchErr.Steps)).
		WithMetadata(MetaKeyReason, matchErr.Message)
}

// NewCatalogError creates a catalog loading or writing error
func NewCatalogError(msg, path string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeCatalog, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeCatalog, msg)
	}
	return err.WithMetadata(MetaKeyPath, path)
}

// NewCatalogEntryError creates an error for an invalid catalog entry
func NewCatalogEntryError(path, reason string) error {
	return cuserr.NewValidationError(ErrCodeCatalog, ErrMsgCatalogInvalid).
		WithMetadata(MetaKeyPath, path).
		WithMetadata(MetaKeyReason, reason)
}

// StorageError represents a storage-related error.
type StorageError struct {
	Message string
	Name    string
	Cause   error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	result := e.Message
	if e.Name != "" {
		result += ": " + e.Name
	}
	if e.Cause != nil {
		result += ": " + e.Cause.Error()
	}
	return result
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageClosedError creates an error for use after Close.
func NewStorageClosedError() error {
	return &StorageError{Message: ErrMsgStorageClosed}
}

// NewStorageDriverNotFoundError creates an error for an unknown driver.
func NewStorageDriverNotFoundError(name string) error {
	return &StorageError{Message: ErrMsgStorageDriverNotFound, Name: name}
}

// NewPostgresError wraps a database failure.
func NewPostgresError(msg string, cause error) error {
	return &StorageError{Message: msg, Cause: cause}
}

// IsNotFound reports whether err is a not-found error from the registry or a store.
func IsNotFound(err error) bool {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return false
	}
	_, ok := customErr.GetMetadata(MetaKeyTemplateName)
	return ok && strings.Contains(customErr.Error(), ErrMsgTemplateNotFound)
}
