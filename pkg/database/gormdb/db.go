package gormdb

import (
	"fmt"
	"strings"
	"time"

	mysqlDriver "gorm.io/driver/mysql"
	postgresDriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ninja0404/pump-signal/pkg/logger"
)

const (
	DriverMysql    = "mysql"
	DriverPostgres = "postgres"
)

type Config struct {
	Driver   string `json:"driver"`
	User     string `json:"user"`
	Password string `json:"password"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	// postgres sslmode
	SSLMode string `json:"ssl_mode"`

	Timeout string `json:"timeout"` // connect timeout

	MaxPoolSize     int           `json:"max_pool_size"`
	MaxIdleSize     int           `json:"max_idle_size"`
	MaxIdleDuration time.Duration `json:"max_idle_ts"`
	SqlOpenDebug    bool          `json:"open_debug"`
	LogLevel        string        `json:"log_level"`
}

// Open 按配置的方言建立连接并设置连接池
func Open(srcConf *Config) (*gorm.DB, error) {
	cnf := validateConfig(srcConf)

	dialector, err := dialectorFor(cnf)
	if err != nil {
		return nil, err
	}

	gormConfig := gorm.Config{
		Logger: NewGormLogger(logger.DefaultL1().Named("gorm"), mappingLoggerLevel(cnf.LogLevel, cnf.SqlOpenDebug)),
	}

	db, err := gorm.Open(dialector, &gormConfig)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	sqlDB.SetMaxOpenConns(cnf.MaxPoolSize)
	sqlDB.SetMaxIdleConns(cnf.MaxIdleSize)
	sqlDB.SetConnMaxIdleTime(cnf.MaxIdleDuration)
	sqlDB.SetConnMaxLifetime(time.Minute * 30)

	return db, nil
}

func dialectorFor(cnf *Config) (gorm.Dialector, error) {
	switch strings.ToLower(cnf.Driver) {
	case DriverMysql:
		return mysqlDriver.Open(mysqlDsn(cnf)), nil
	case DriverPostgres, "postgresql", "pg":
		return postgresDriver.Open(postgresDsn(cnf)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cnf.Driver)
	}
}

func validateConfig(src *Config) *Config {
	dst := *src

	if src.MaxPoolSize == 0 {
		dst.MaxPoolSize = 20
	}
	if src.MaxIdleSize == 0 {
		dst.MaxIdleSize = 10
	}
	if src.MaxIdleDuration == 0 {
		dst.MaxIdleDuration = 10 * time.Minute
	}
	if src.Timeout == "" {
		dst.Timeout = "10s"
	}
	if src.SSLMode == "" {
		dst.SSLMode = "disable"
	}
	return &dst
}

func mysqlDsn(cnf *Config) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC&timeout=%s",
		cnf.User, cnf.Password, cnf.Host, cnf.Port, cnf.Database, cnf.Timeout)
}

func postgresDsn(cnf *Config) string {
	connectTimeout := 10
	if d, err := time.ParseDuration(cnf.Timeout); err == nil && d >= time.Second {
		connectTimeout = int(d / time.Second)
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d TimeZone=UTC",
		cnf.Host, cnf.Port, cnf.User, cnf.Password, cnf.Database, cnf.SSLMode, connectTimeout)
}
