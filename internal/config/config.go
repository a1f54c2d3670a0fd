package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ninja0404/pump-signal/pkg/config"
	"github.com/ninja0404/pump-signal/pkg/config/reader"
	"github.com/ninja0404/pump-signal/pkg/config/source"
	"github.com/ninja0404/pump-signal/pkg/config/source/file"
	"github.com/ninja0404/pump-signal/pkg/config/source/mse"
	"github.com/ninja0404/pump-signal/pkg/database/gormdb"
	"github.com/ninja0404/pump-signal/pkg/logger"
	"github.com/ninja0404/pump-signal/pkg/utils"
)

// ConfigError 配置文件不可读、格式错误或取值非法
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Manager 配置管理器
type Manager struct {
	values  config.Config
	config  *AppConfig
	path    string
	created bool
}

// NewManager 创建配置管理器
func NewManager() *Manager {
	return &Manager{values: config.NewConfig()}
}

// Load 加载配置，文件不存在时先写入默认配置
func (m *Manager) Load(configPath string) error {
	// .env 可选
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &ConfigError{Path: ".env", Err: err}
	}

	src, err := m.newSource(configPath)
	if err != nil {
		return err
	}

	if err := m.values.Load(src); err != nil {
		return &ConfigError{Path: m.path, Err: err}
	}

	appConfig := Default()
	if err := m.values.Scan(appConfig); err != nil {
		return &ConfigError{Path: m.path, Err: err}
	}
	if err := appConfig.Validate(); err != nil {
		return &ConfigError{Path: m.path, Err: err}
	}

	m.config = appConfig
	return nil
}

func (m *Manager) newSource(configPath string) (source.Source, error) {
	if utils.GetConfigType() == utils.CONFIG_MSE {
		m.path = "mse"
		src, err := mse.NewSource(mse.ConfigFromEnv())
		if err != nil {
			return nil, &ConfigError{Path: m.path, Err: err}
		}
		return src, nil
	}

	if p := utils.GetConfigFilePath(); p != "" {
		configPath = p
	}
	m.path = configPath

	src := file.NewSource(configPath)

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := WriteDefaults(src, configPath); err != nil {
			return nil, &ConfigError{Path: configPath, Err: err}
		}
		m.created = true
	} else if err != nil {
		return nil, &ConfigError{Path: configPath, Err: err}
	}
	return src, nil
}

// WriteDefaults 按文件扩展名编码默认配置并写入src
func WriteDefaults(src source.Source, path string) error {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if format == "" {
		format = file.DefaultFormat
	}
	codec, ok := reader.NewOptions().EncoderFor(format)
	if !ok {
		return fmt.Errorf("unsupported config format %q", format)
	}

	data, err := codec.Encode(Default())
	if err != nil {
		return err
	}
	return src.Write(&source.ChangeSet{Data: data, Format: format, Source: src.String()})
}

// Validate 汇总所有非法取值
func (c *AppConfig) Validate() error {
	var merr error
	if c.Scanner.ScanInterval <= 0 {
		merr = multierror.Append(merr, errors.New("scanner.scan_interval must be positive"))
	}
	if c.Scanner.ErrorBackoff <= 0 {
		merr = multierror.Append(merr, errors.New("scanner.error_backoff must be positive"))
	}
	if c.Scanner.MinLiquidity < 0 {
		merr = multierror.Append(merr, errors.New("scanner.min_liquidity must not be negative"))
	}
	if c.Scanner.MinVolume < 0 {
		merr = multierror.Append(merr, errors.New("scanner.min_volume must not be negative"))
	}
	if len(c.Scanner.Chains) == 0 {
		merr = multierror.Append(merr, errors.New("scanner.chains must not be empty"))
	}
	switch strings.ToLower(c.Database.Driver) {
	case DriverMemory, gormdb.DriverMysql, gormdb.DriverPostgres, "postgresql", "pg":
	default:
		merr = multierror.Append(merr, fmt.Errorf("database.driver %q is not supported", c.Database.Driver))
	}
	switch c.Dedup.Backend {
	case DedupBackendMemory, DedupBackendRedis, "":
	default:
		merr = multierror.Append(merr, fmt.Errorf("dedup.backend %q is not supported", c.Dedup.Backend))
	}
	if c.Dedup.Cooldown < 0 {
		merr = multierror.Append(merr, errors.New("dedup.cooldown must not be negative"))
	}
	if c.Upstream.BaseURL == "" {
		merr = multierror.Append(merr, errors.New("upstream.base_url must not be empty"))
	}
	return merr
}

// GetAppConfig 获取应用配置
func (m *Manager) GetAppConfig() *AppConfig {
	return m.config
}

// FilterConfig 不可变的过滤配置
func (m *Manager) FilterConfig() FilterConfig {
	return m.config.Scanner.FilterConfig()
}

// Path 实际加载的配置路径
func (m *Manager) Path() string {
	return m.path
}

// Created 本次启动是否写入了默认配置
func (m *Manager) Created() bool {
	return m.created
}

// InitLogger 初始化日志系统
func (m *Manager) InitLogger() error {
	loggerConfig, err := logger.FromConfig(m.values, "logger")
	if err != nil {
		return &ConfigError{Path: m.path, Err: err}
	}
	if m.config.Sentry.DSN != "" && loggerConfig.SentryLevel != "" {
		loggerConfig.DisableSentry = false
	}
	loggerInstance, err := loggerConfig.Build()
	if err != nil {
		return &ConfigError{Path: m.path, Err: err}
	}
	logger.SetDefault(loggerInstance)
	logger.SetDefaultL1(loggerInstance.WithOptions(zap.AddCallerSkip(1)))
	return nil
}

// Watch 配置在进程生命周期内不可变，文件变化只提示重启
func (m *Manager) Watch() error {
	return m.values.Watch(func(cs *source.ChangeSet) {
		logger.Warn("⚠️ 检测到配置变更，重启后生效",
			logger.String("source", cs.Source),
			logger.String("path", m.path),
			logger.String("checksum", cs.Checksum))
	})
}

// Close 停止配置监听
func (m *Manager) Close() error {
	return m.values.Close()
}
