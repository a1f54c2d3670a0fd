package reader

import (
	"github.com/ninja0404/pump-signal/pkg/config/encoder"
)

type Options struct {
	Encoding map[string]encoder.Encoder
}

type Option func(o *Options)

func NewOptions(opts ...Option) Options {
	options := Options{
		Encoding: map[string]encoder.Encoder{
			"json": encoder.JSON,
			"yaml": encoder.YAML,
			"yml":  encoder.YAML,
			"toml": encoder.TOML,
		},
	}
	for _, o := range opts {
		o(&options)
	}
	return options
}

// EncoderFor 按格式名查找编解码器，未知格式返回false
func (o Options) EncoderFor(format string) (encoder.Encoder, bool) {
	e, ok := o.Encoding[format]
	return e, ok
}
