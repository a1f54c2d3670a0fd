package encoder

import "encoding/json"

type jsonCodec struct{}

// Encode 带缩进，写出的默认配置便于手改
func (jsonCodec) Encode(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func (jsonCodec) Decode(d []byte, v interface{}) error {
	return json.Unmarshal(d, v)
}

func (jsonCodec) String() string { return "json" }
