package mse

import (
	"errors"
	"time"

	"github.com/nacos-group/nacos-sdk-go/clients/config_client"
	"github.com/nacos-group/nacos-sdk-go/vo"

	"github.com/ninja0404/pump-signal/pkg/config/source"
)

const DEFAULT_GROUP string = "DEFAULT_GROUP"

// 远端配置统一使用yaml
const mseFormat = "yaml"

type mse struct {
	client config_client.IConfigClient
	config *MseConfig
}

func (s *mse) Read() (*source.ChangeSet, error) {
	configContent, err := s.client.GetConfig(vo.ConfigParam{
		Group:  s.config.Group,
		DataId: s.config.DataID,
	})
	if err != nil {
		return nil, err
	}

	cs := &source.ChangeSet{
		Format:    mseFormat,
		Source:    s.String(),
		Timestamp: time.Now(),
		Data:      []byte(configContent),
	}
	cs.Checksum = cs.Sum()

	return cs, nil
}

func (s *mse) String() string {
	return "mse"
}

func (s *mse) Watch() (source.Watcher, error) {
	return newWatcher(s)
}

// Write 远端配置只读
func (s *mse) Write(cs *source.ChangeSet) error {
	return errors.New("mse source is read-only")
}

// NewSource 创建MSE配置源，缺少连接信息时返回错误
func NewSource(conf *MseConfig) (source.Source, error) {
	if conf == nil || conf.ServerAddr == "" || conf.DataID == "" {
		return nil, errors.New("mse config not provided")
	}

	client, err := createClient(conf)
	if err != nil {
		return nil, err
	}

	return &mse{client: client, config: conf}, nil
}
