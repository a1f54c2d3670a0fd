package json

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"

	"github.com/ninja0404/pump-signal/pkg/config/encoder"
	"github.com/ninja0404/pump-signal/pkg/config/reader"
	"github.com/ninja0404/pump-signal/pkg/config/source"
)

type jsonReader struct {
	opts reader.Options
	json encoder.Encoder
}

// Merge 按顺序合并多个ChangeSet，后面的覆盖前面的
func (j *jsonReader) Merge(changes ...*source.ChangeSet) (*source.ChangeSet, error) {
	merged := map[string]interface{}{}

	for _, m := range changes {
		if m == nil || len(m.Data) == 0 {
			continue
		}

		codec, ok := j.opts.EncoderFor(m.Format)
		if !ok {
			return nil, fmt.Errorf("unsupported config format %q from %s", m.Format, m.Source)
		}

		data, err := ReplaceEnvVars(m.Data)
		if err != nil {
			return nil, err
		}

		var tree map[string]interface{}
		if err := codec.Decode(data, &tree); err != nil {
			return nil, fmt.Errorf("decode %s config from %s: %w", m.Format, m.Source, err)
		}
		if tree == nil {
			continue
		}
		if err := mergo.Merge(&merged, tree, mergo.WithOverride); err != nil {
			return nil, err
		}
	}

	b, err := j.json.Encode(merged)
	if err != nil {
		return nil, err
	}

	cs := &source.ChangeSet{
		Timestamp: time.Now(),
		Data:      b,
		Source:    "json",
		Format:    j.json.String(),
	}
	cs.Checksum = cs.Sum()

	return cs, nil
}

func (j *jsonReader) Values(ch *source.ChangeSet) (reader.Values, error) {
	if ch == nil {
		return nil, errors.New("changeset is nil")
	}
	if ch.Format != j.json.String() {
		return nil, fmt.Errorf("unsupported format %q, merge first", ch.Format)
	}
	return newValues(ch)
}

func (j *jsonReader) String() string {
	return "json"
}

// NewReader 创建json reader
func NewReader(opts ...reader.Option) reader.Reader {
	return &jsonReader{
		opts: reader.NewOptions(opts...),
		json: encoder.JSON,
	}
}
