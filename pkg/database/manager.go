package database

import (
	"fmt"
	"time"

	"github.com/go-arcade/guild/pkg/log"
	"github.com/go-arcade/guild/pkg/trace"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

type Manager interface {
	// Primary returns the relational store connection
	Primary() *gorm.DB

	// Close closes all database connections
	Close() error
}

type managerImpl struct {
	primary *gorm.DB
	driver  string
}

func (m *managerImpl) Primary() *gorm.DB {
	return m.primary
}

func (m *managerImpl) Close() error {
	if m.primary == nil {
		return nil
	}
	sqlDB, err := m.primary.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", m.driver, err)
	}
	return nil
}

func NewManager(cfg Database) (Manager, error) {
	cfg.SetDefaults()

	dialector, err := buildDialector(cfg)
	if err != nil {
		return nil, err
	}

	logConfig := gormlogger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  gormlogger.Info,
		Colorful:                  false,
		IgnoreRecordNotFoundError: true,
		ParameterizedQueries:      true,
	}

	var gormLogger gormlogger.Interface
	if cfg.OutPut {
		gormLogger = NewGormLogger(logConfig, gormlogger.Info)
	} else {
		gormLogger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   dataTablePrefix,
			SingularTable: true,
		},
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", cfg.Driver, err)
	}

	if err := db.Use(trace.NewGormPlugin(cfg.OutPut)); err != nil {
		return nil, fmt.Errorf("failed to register trace plugin: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	if cfg.Driver == DriverSQLite && isMemorySQLite(cfg.SQLite.Path) {
		// recycling the only connection would drop the database
		sqlDB.SetConnMaxLifetime(0)
		sqlDB.SetConnMaxIdleTime(0)
	} else {
		sqlDB.SetConnMaxLifetime(GetConnMaxLifetime(cfg.MaxLifetime))
		sqlDB.SetConnMaxIdleTime(GetConnMaxIdleTime(cfg.MaxIdleTime))
	}

	log.Infow("database connected",
		"driver", cfg.Driver,
		"maxOpenConns", cfg.MaxOpenConns,
	)

	return &managerImpl{primary: db, driver: cfg.Driver}, nil
}

// Migrate creates or updates the tables of the given models
func Migrate(db IDatabase, models ...any) error {
	if err := db.Database().AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	return nil
}
