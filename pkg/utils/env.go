package utils

import (
	"os"
	"strings"
)

const (
	CONFIG_TYPE string = "CONFIG_TYPE"
	CONFIG_FILE string = "FILE"
	CONFIG_MSE  string = "MSE"

	CONFIG_FILE_PATH string = "CONFIG_FILE_PATH"
)

var envPrefix string

// SetEnvPrefix 环境变量名统一加前缀，pump_signal 会变成 PUMP_SIGNAL_
func SetEnvPrefix(prefix string) {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix != "" && !strings.HasSuffix(prefix, "_") {
		prefix += "_"
	}
	envPrefix = prefix
}

func getenv(key string) string {
	return os.Getenv(envPrefix + key)
}

// GetConfigType 配置来源，默认FILE
func GetConfigType() string {
	if configType := getenv(CONFIG_TYPE); configType != "" {
		return strings.ToUpper(configType)
	}
	return CONFIG_FILE
}

func GetConfigFilePath() string {
	return getenv(CONFIG_FILE_PATH)
}
