package json

import (
	"encoding/json"
	"strconv"
	"strings"

	simple "github.com/bitly/go-simplejson"

	"github.com/ninja0404/pump-signal/pkg/config/reader"
	"github.com/ninja0404/pump-signal/pkg/config/source"
)

type jsonValues struct {
	sj *simple.Json
}

type jsonValue struct {
	*simple.Json
}

func newValues(ch *source.ChangeSet) (reader.Values, error) {
	sj := simple.New()
	if err := sj.UnmarshalJSON(ch.Data); err != nil {
		return nil, err
	}
	return &jsonValues{sj: sj}, nil
}

func (j *jsonValues) Get(path ...string) reader.Value {
	return &jsonValue{j.sj.GetPath(path...)}
}

func (j *jsonValues) Bytes() []byte {
	b, _ := j.sj.MarshalJSON()
	return b
}

func (j *jsonValues) Scan(v interface{}) error {
	return scan(j.sj, v)
}

func scan(sj *simple.Json, v interface{}) error {
	b, err := sj.MarshalJSON()
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// numeric 原生数值优先，其次尝试解析字符串
func numeric[T any](j *jsonValue, native func() (T, error), parse func(string) (T, error), def T) T {
	if v, err := native(); err == nil {
		return v
	}
	str, ok := j.Interface().(string)
	if !ok {
		return def
	}
	v, err := parse(strings.TrimSpace(str))
	if err != nil {
		return def
	}
	return v
}

func (j *jsonValue) Int(def int) int {
	return numeric(j, j.Json.Int, strconv.Atoi, def)
}

func (j *jsonValue) Float64(def float64) float64 {
	return numeric(j, j.Json.Float64, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	}, def)
}

func (j *jsonValue) String(def string) string {
	return j.Json.MustString(def)
}

// StringSlice 同时支持数组和逗号分隔的字符串
func (j *jsonValue) StringSlice(def []string) []string {
	if v, err := j.Json.String(); err == nil {
		if parts := strings.Split(v, ","); len(parts) > 1 {
			return parts
		}
	}
	return j.Json.MustStringArray(def)
}

func (j *jsonValue) Scan(v interface{}) error {
	return scan(j.Json, v)
}

func (j *jsonValue) Bytes() []byte {
	if b, err := j.Json.Bytes(); err == nil {
		return b
	}
	b, err := j.Json.MarshalJSON()
	if err != nil {
		return []byte{}
	}
	return b
}
