// Package dbsession manages database connection pools and the
// request-scoped transaction each HTTP request runs in.
package dbsession

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"aurum/internal/config"
)

// SessionError marks a failure to establish or verify a database
// connection. It is infrastructure, not a user error.
type SessionError struct {
	Err error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("db session: %v", e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }

// Pools memoizes one *gorm.DB per database URL. The first caller for a URL
// opens and verifies the pool; concurrent callers for the same URL reuse it.
type Pools struct {
	mu    sync.Mutex
	cfg   config.DBConfig
	pools map[string]*gorm.DB
}

// NewPools creates an empty registry using the given pool tuning.
func NewPools(cfg config.DBConfig) *Pools {
	return &Pools{
		cfg:   cfg,
		pools: make(map[string]*gorm.DB),
	}
}

// Get returns the pool for url, opening it on first use. Opening includes a
// round-trip ping so a bad URL fails fast with a SessionError instead of
// surfacing lazily on the first query.
func (p *Pools) Get(url string) (*gorm.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if db, ok := p.pools[url]; ok {
		return db, nil
	}

	db, err := open(url, p.cfg)
	if err != nil {
		return nil, &SessionError{Err: err}
	}

	p.pools[url] = db
	return db, nil
}

// Close disposes every pool in the registry.
func (p *Pools) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for url, db := range p.pools {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logrus.Warnf("failed to close pool for %s: %v", url, err)
			}
		}
		delete(p.pools, url)
	}
	logrus.Info("session pools closed")
}

func open(url string, cfg config.DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		// Each request runs exactly one explicit transaction; gorm must not
		// nest its own around individual writes.
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	logrus.Info("database connection verified")

	return db, nil
}
