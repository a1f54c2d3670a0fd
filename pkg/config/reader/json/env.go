package json

import (
	"os"
	"regexp"
)

var envPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// ReplaceEnvVars 替换 ${VAR} 与 ${VAR:-default} 占位符
func ReplaceEnvVars(raw []byte) ([]byte, error) {
	return envPattern.ReplaceAllFunc(raw, func(m []byte) []byte {
		sub := envPattern.FindSubmatch(m)
		if v, ok := os.LookupEnv(string(sub[1])); ok {
			return []byte(v)
		}
		return sub[2]
	}), nil
}
