package mse

import (
	"net"
	"strconv"

	"github.com/nacos-group/nacos-sdk-go/clients"
	"github.com/nacos-group/nacos-sdk-go/clients/config_client"
	"github.com/nacos-group/nacos-sdk-go/common/constant"
	"github.com/nacos-group/nacos-sdk-go/vo"
)

const defaultPort uint64 = 8848

// splitServerAddr 支持 host 与 host:port 两种写法
func splitServerAddr(addr string) (string, uint64) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return addr, defaultPort
	}
	port, err := strconv.ParseUint(portStr, 10, 64)
	if err != nil {
		return host, defaultPort
	}
	return host, port
}

func createClient(conf *MseConfig) (config_client.IConfigClient, error) {
	host, port := splitServerAddr(conf.ServerAddr)
	serverCfg := []constant.ServerConfig{
		{
			IpAddr: host,
			Port:   port,
		},
	}
	clientCfg := constant.ClientConfig{
		NamespaceId:         conf.NamespaceID,
		AccessKey:           conf.AccessKey,
		SecretKey:           conf.SecretKey,
		TimeoutMs:           5 * 1000,
		NotLoadCacheAtStart: true,
		LogDir:              conf.LogDir,
		CacheDir:            conf.CacheDir,
	}
	return clients.NewConfigClient(vo.NacosClientParam{
		ClientConfig:  &clientCfg,
		ServerConfigs: serverCfg,
	})
}
