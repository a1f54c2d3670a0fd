package logger

import (
	"path/filepath"
	"time"

	pconfig "github.com/ninja0404/pump-signal/pkg/config"
)

type Config struct {
	// 输出方式：stdout、file
	Output string `json:"output"`
	// 日志目录
	Dir string `json:"dir"`
	// 日志文件名
	Name  string `json:"name"`
	Level string `json:"level"`
	// 是否添加调用者信息
	AddCaller  bool `json:"add_caller"`
	CallerSkip int  `json:"caller_skip"`
	// 单文件最大长度(单位: mb)
	MaxSize int `json:"max_size"`
	// 日志文件最大保留时间(单位: 天)
	MaxAge    int  `json:"max_age"`
	MaxBackup int  `json:"max_backup"`
	Compress  bool `json:"compress"`
	// 异步刷盘
	Async           bool          `json:"async"`
	FlushBufferSize int           `json:"flush_buffer_size"`
	FlushInterval   time.Duration `json:"flush_interval"`
	// 调试模式使用彩色console输出
	Debug   bool `json:"debug"`
	Discard bool `json:"discard"`
	// 禁用Sentry
	DisableSentry bool   `json:"disable_sentry"`
	SentryLevel   string `json:"sentry_level"`
}

func (c *Config) Filename() string {
	return filepath.Join(c.Dir, c.Name+".log")
}

func (c *Config) Build() (*Logger, error) {
	return newLogger(c)
}

// FromConfig 读取key对应的日志配置，未配置的项使用默认值
func FromConfig(c pconfig.Config, key string) (*Config, error) {
	conf := DefaultConfig()
	if err := c.Get(key).Scan(conf); err != nil {
		return nil, err
	}
	return conf, nil
}

func DefaultConfig() *Config {
	return &Config{
		Name:            "pump-signal",
		Output:          "stdout",
		Dir:             "./logs/",
		Level:           "info",
		MaxSize:         500, // 500M
		MaxAge:          7,
		MaxBackup:       10,
		AddCaller:       true,
		FlushBufferSize: 256 * 1024,
		FlushInterval:   5 * time.Second,
		DisableSentry:   true,
		SentryLevel:     "error",
	}
}
