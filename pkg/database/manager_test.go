package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sample struct {
	ID   uint64 `gorm:"primaryKey"`
	Name string `gorm:"size:64;uniqueIndex"`
}

func TestNewManager_SQLiteMemory(t *testing.T) {
	manager, err := NewManager(Database{Driver: DriverSQLite, SQLite: SQLiteConfig{Path: ":memory:"}})
	require.NoError(t, err)
	defer manager.Close()

	db := NewDatabaseAdapter(manager)
	require.NoError(t, Migrate(db, &sample{}))

	require.NoError(t, db.Database().Create(&sample{Name: "a"}).Error)

	var count int64
	require.NoError(t, db.Database().Model(&sample{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	assert.True(t, db.Database().Migrator().HasTable("t_sample"))
}

func TestBuildDialector(t *testing.T) {
	_, err := buildDialector(Database{Driver: "oracle"})
	assert.Error(t, err)

	_, err = buildDialector(Database{Driver: DriverMySQL})
	assert.Error(t, err)

	d, err := buildDialector(Database{Driver: DriverPostgres, Postgres: PostgresConfig{Host: "db", User: "guild", DBName: "guild"}})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())
}

func TestSetDefaults(t *testing.T) {
	cfg := Database{Driver: DriverSQLite}
	cfg.SetDefaults()
	assert.Equal(t, 1, cfg.MaxOpenConns)

	cfg = Database{}
	cfg.SetDefaults()
	assert.Equal(t, DriverMySQL, cfg.Driver)
	assert.Equal(t, 50, cfg.MaxOpenConns)
}

func TestBuildPostgresDSN(t *testing.T) {
	dsn := buildPostgresDSN(PostgresConfig{Host: "db", User: "u", Password: "p", DBName: "guild"})
	assert.Contains(t, dsn, "port=5432")
	assert.Contains(t, dsn, "sslmode=disable")
}

func TestProvideManager(t *testing.T) {
	manager, cleanup, err := ProvideManager(Database{Driver: DriverSQLite, SQLite: SQLiteConfig{Path: ":memory:"}}, zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	assert.NoError(t, ProvideIDatabase(manager).Database().Exec("SELECT 1").Error)
}
