package database

import (
	"time"

	"blogicum/config"
	"blogicum/models"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// gormWriter routes gorm's query log through zap.
type gormWriter struct {
	log *zap.SugaredLogger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Infof(format, args...)
}

func newGormLogger(cfg *config.Config, log *zap.SugaredLogger) logger.Interface {
	level := logger.Info
	if cfg.IsProd() {
		level = logger.Warn
	}
	return logger.New(gormWriter{log: log.Named("gorm")}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

func Connect(cfg *config.Config, log *zap.SugaredLogger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		dialector = postgres.Open(cfg.DatabaseURL())
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGormLogger(cfg, log),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "connect %s", cfg.DBDriver)
	}

	log.Infow("Database connected successfully", "driver", cfg.DBDriver)
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Post{},
		&models.Comment{},
	)
	return errors.Wrap(err, "migrate")
}
