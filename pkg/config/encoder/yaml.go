package encoder

import "github.com/ghodss/yaml"

// yamlCodec 走json tag，配置结构体不需要yaml tag
type yamlCodec struct{}

func (yamlCodec) Encode(v interface{}) ([]byte, error) {
	return yaml.Marshal(v)
}

func (yamlCodec) Decode(d []byte, v interface{}) error {
	return yaml.Unmarshal(d, v)
}

func (yamlCodec) String() string { return "yaml" }
