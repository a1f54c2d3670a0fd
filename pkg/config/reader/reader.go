package reader

import (
	"github.com/ninja0404/pump-signal/pkg/config/source"
)

// Reader 合并多个ChangeSet并提供取值能力
type Reader interface {
	Merge(...*source.ChangeSet) (*source.ChangeSet, error)
	Values(*source.ChangeSet) (Values, error)
	String() string
}

// Values 合并后的配置树
type Values interface {
	Bytes() []byte
	Get(path ...string) Value
	Scan(v interface{}) error
}

// Value 配置树上的单个节点，取值失败时返回def
// 数值也接受字符串形式，便于环境变量覆盖
type Value interface {
	Int(def int) int
	String(def string) string
	Float64(def float64) float64
	StringSlice(def []string) []string
	Scan(val interface{}) error
	Bytes() []byte
}
