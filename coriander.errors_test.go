package coriander

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsatony/go-coriander/internal"
)

func TestErrors(t *testing.T) {
	t.Run("NewTemplateExistsError", func(t *testing.T) {
		err := NewTemplateExistsError("greeting")
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgTemplateExists)

		var customErr *cuserr.CustomError
		require.True(t, errors.As(err, &customErr))
		name, ok := customErr.GetMetadata(MetaKeyTemplateName)
		assert.True(t, ok)
		assert.Equal(t, "greeting", name)
	})

	t.Run("NewTemplateNotFoundError without suggestions", func(t *testing.T) {
		err := NewTemplateNotFoundError("missing")
		assert.Contains(t, err.Error(), ErrMsgTemplateNotFound)
		assert.True(t, IsNotFound(err))

		var customErr *cuserr.CustomError
		require.True(t, errors.As(err, &customErr))
		_, ok := customErr.GetMetadata(MetaKeySuggestions)
		assert.False(t, ok)
	})

	t.Run("NewTemplateNotFoundError with suggestions", func(t *testing.T) {
		err := NewTemplateNotFoundError("grt", "greet", "great")

		var customErr *cuserr.CustomError
		require.True(t, errors.As(err, &customErr))
		suggestions, ok := customErr.GetMetadata(MetaKeySuggestions)
		assert.True(t, ok)
		assert.Equal(t, "greet,great", suggestions)
	})

	t.Run("NewMatchError", func(t *testing.T) {
		cause := &internal.MatchError{Message: internal.ErrMsgMatchBudgetExceeded, Steps: 11}
		err := NewMatchError(cause)
		assert.Contains(t, err.Error(), ErrMsgMatchBudgetExceeded)

		var customErr *cuserr.CustomError
		require.True(t, errors.As(err, &customErr))
		steps, ok := customErr.GetMetadata(MetaKeySteps)
		assert.True(t, ok)
		assert.Equal(t, "11", steps)
		reason, ok := customErr.GetMetadata(MetaKeyReason)
		assert.True(t, ok)
		assert.Equal(t, internal.ErrMsgMatchBudgetExceeded, reason)
	})

	t.Run("NewMatchError names the reason once", func(t *testing.T) {
		cause := &internal.MatchError{Message: internal.ErrMsgMatchCanceled, Steps: 1024, Cause: context.Canceled}
		err := NewMatchError(cause)

		msg := err.Error()
		assert.Contains(t, msg, ErrMsgMatchAborted)
		assert.Equal(t, 1, strings.Count(msg, internal.ErrMsgMatchCanceled), msg)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("NewMatchError with foreign cause", func(t *testing.T) {
		err := NewMatchError(errors.New("boom"))
		assert.Contains(t, err.Error(), ErrMsgMatchAborted)
	})

	t.Run("NewCatalogError", func(t *testing.T) {
		err := NewCatalogError(ErrMsgCatalogRead, "/tmp/x.yaml", os.ErrNotExist)
		assert.Contains(t, err.Error(), ErrMsgCatalogRead)

		var customErr *cuserr.CustomError
		require.True(t, errors.As(err, &customErr))
		path, ok := customErr.GetMetadata(MetaKeyPath)
		assert.True(t, ok)
		assert.Equal(t, "/tmp/x.yaml", path)
	})

	t.Run("NewCatalogEntryError", func(t *testing.T) {
		err := NewCatalogEntryError("c.yaml", "bad")
		assert.Contains(t, err.Error(), ErrMsgCatalogInvalid)

		var customErr *cuserr.CustomError
		require.True(t, errors.As(err, &customErr))
		reason, ok := customErr.GetMetadata(MetaKeyReason)
		assert.True(t, ok)
		assert.Equal(t, "bad", reason)
	})

	t.Run("IsNotFound rejects other errors", func(t *testing.T) {
		assert.False(t, IsNotFound(nil))
		assert.False(t, IsNotFound(errors.New(ErrMsgTemplateNotFound)))
		assert.False(t, IsNotFound(NewTemplateExistsError("x")))
	})
}

func TestStorageError(t *testing.T) {
	t.Run("message only", func(t *testing.T) {
		err := NewStorageClosedError()
		assert.Equal(t, ErrMsgStorageClosed, err.Error())
	})

	t.Run("with name", func(t *testing.T) {
		err := NewStorageDriverNotFoundError("redis")
		assert.Equal(t, ErrMsgStorageDriverNotFound+": redis", err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewPostgresError(ErrMsgPostgresConnectFailed, cause)
		assert.Equal(t, ErrMsgPostgresConnectFailed+": connection refused", err.Error())
		assert.ErrorIs(t, err, cause)

		var storageErr *StorageError
		require.ErrorAs(t, err, &storageErr)
		assert.Equal(t, ErrMsgPostgresConnectFailed, storageErr.Message)
	})
}
