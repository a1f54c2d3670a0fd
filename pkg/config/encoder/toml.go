package encoder

import (
	"bytes"
	"encoding/json"

	"github.com/BurntSushi/toml"
)

type tomlCodec struct{}

// Encode 先转成通用map再编码，使json tag生效
func (tomlCodec) Encode(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var tree map[string]interface{}
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, err
	}

	var b bytes.Buffer
	if err := toml.NewEncoder(&b).Encode(tree); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func (tomlCodec) Decode(d []byte, v interface{}) error {
	_, err := toml.Decode(string(d), v)
	return err
}

func (tomlCodec) String() string { return "toml" }
