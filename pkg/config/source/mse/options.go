package mse

import "os"

// MseConfig 阿里云MSE(Nacos)配置中心连接信息
type MseConfig struct {
	ServerAddr  string
	NamespaceID string
	AccessKey   string
	SecretKey   string
	Group       string
	DataID      string
	LogDir      string
	CacheDir    string
}

// ConfigFromEnv 从 MSE_* 环境变量读取连接信息
func ConfigFromEnv() *MseConfig {
	conf := &MseConfig{
		ServerAddr:  os.Getenv("MSE_SERVER_ADDR"),
		NamespaceID: os.Getenv("MSE_NAMESPACE"),
		AccessKey:   os.Getenv("MSE_ACCESSKEY"),
		SecretKey:   os.Getenv("MSE_SECRETKEY"),
		Group:       os.Getenv("MSE_GROUP"),
		DataID:      os.Getenv("MSE_DATAID"),
		LogDir:      os.Getenv("MSE_LOG_DIR"),
		CacheDir:    os.Getenv("MSE_CACHE_DIR"),
	}
	if conf.Group == "" {
		conf.Group = DEFAULT_GROUP
	}
	return conf
}
