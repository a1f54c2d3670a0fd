package encoder

// Encoder 配置格式的编解码器
type Encoder interface {
	Encode(interface{}) ([]byte, error)
	Decode([]byte, interface{}) error
	String() string
}

var (
	JSON Encoder = jsonCodec{}
	YAML Encoder = yamlCodec{}
	TOML Encoder = tomlCodec{}
)
