package coriander

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPostgresConfig(t *testing.T) {
	cfg := DefaultPostgresConfig()

	assert.Equal(t, PostgresDefaultMaxOpenConns, cfg.MaxOpenConns)
	assert.Equal(t, PostgresDefaultMaxIdleConns, cfg.MaxIdleConns)
	assert.Equal(t, PostgresDefaultConnMaxLifetime, cfg.ConnMaxLifetime)
	assert.Equal(t, PostgresTablePrefix, cfg.TablePrefix)
	assert.Equal(t, PostgresDefaultQueryTimeout, cfg.QueryTimeout)
	assert.False(t, cfg.AutoMigrate)
	assert.Empty(t, cfg.ConnectionString)
}

func TestPostgresConfig_WithDefaults(t *testing.T) {
	cfg := PostgresConfig{ConnectionString: "postgres://localhost/test", TablePrefix: "custom_"}.withDefaults()

	assert.Equal(t, PostgresDefaultMaxOpenConns, cfg.MaxOpenConns)
	assert.Equal(t, PostgresDefaultQueryTimeout, cfg.QueryTimeout)
	assert.Equal(t, "custom_", cfg.TablePrefix)
	assert.NotNil(t, cfg.Logger)
}

func TestPostgresStore_EmptyConnectionString(t *testing.T) {
	_, err := NewPostgresStore(PostgresConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgPostgresEmptyConnString)
}

func TestPostgresStore_InvalidConnectionString(t *testing.T) {
	_, err := NewPostgresStore(PostgresConfig{
		ConnectionString: "invalid://not-a-valid-connection-string",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgPostgresConnectFailed)
}

func TestPostgresStorageDriver_OpenEmpty(t *testing.T) {
	_, err := OpenStorage(StorageDriverNamePostgres, "")
	require.Error(t, err)
}

func TestPostgresStore_TableNames(t *testing.T) {
	store := &PostgresStore{config: PostgresConfig{TablePrefix: "coriander_"}}

	assert.Equal(t, `"coriander_templates"`, store.tableName())
	assert.Equal(t, `"coriander_schema_migrations"`, store.migrationsTableName())

	migrations := store.migrations()
	require.Len(t, migrations, 2)
	for i, m := range migrations {
		assert.Equal(t, i+1, m.Version)
		assert.Contains(t, m.SQL, store.tableName())
	}
}

func TestPostgresStore_CurrentSchemaVersion_Closed(t *testing.T) {
	store := &PostgresStore{config: DefaultPostgresConfig(), closed: true}

	_, err := store.CurrentSchemaVersion(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgStorageClosed)
}

func TestPostgresStore_CurrentSchemaVersion_CanceledContext(t *testing.T) {
	store := &PostgresStore{config: DefaultPostgresConfig()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.CurrentSchemaVersion(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
