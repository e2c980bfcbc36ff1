package storage

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"quiz-service/internal/config"
	"quiz-service/internal/quiz"
	"quiz-service/internal/quiz/postgres"
	"quiz-service/internal/quiz/sqlite"
)

// Store is a quiz.Store that owns its connection pool.
type Store interface {
	quiz.Store
	Close() error
}

// Open returns the backend selected by cfg.DBDriver with its schema in place.
func Open(cfg config.Config) (Store, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		store, err := sqlite.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			return nil, errors.Wrapf(err, "open sqlite store %s", cfg.DBPath)
		}
		glog.Infof("using sqlite store at %s", cfg.DBPath)
		return store, nil
	case config.DriverPostgres:
		store, err := postgres.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			return nil, errors.Wrap(err, "open postgres store")
		}
		glog.Info("using postgres store")
		return store, nil
	default:
		return nil, errors.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
}
