package gormdb

import (
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/ninja0404/pump-signal/pkg/logger"
)

const DEFAULT_DB = "default"

var (
	dbs   = make(map[string]*gorm.DB)
	dbsMu sync.RWMutex
)

// Setup 以name注册一个连接
func Setup(name string, config *Config) (*gorm.DB, error) {
	newDB, err := Open(config)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s database %s@%s:%d", config.Driver, config.Database, config.Host, config.Port)
	}

	dbsMu.Lock()
	dbs[name] = newDB
	dbsMu.Unlock()

	logger.Info(
		"📊 数据库已连接",
		logger.String("name", name),
		logger.String("driver", config.Driver),
		logger.String("host", config.Host),
		logger.Int("port", config.Port),
		logger.String("database", config.Database),
	)
	return newDB, nil
}

// Stop 关闭所有已注册的连接
func Stop() error {
	dbsMu.Lock()
	defer dbsMu.Unlock()

	var merr error
	for dname, db := range dbs {
		realDB, err := db.DB()
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		if err = realDB.Close(); err != nil {
			merr = multierror.Append(merr, err)
		}
		delete(dbs, dname)
		logger.Info("数据库连接已关闭", logger.String("name", dname))
	}
	return merr
}
