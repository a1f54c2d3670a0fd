package logger

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// FieldErr ...
func FieldErr(err error) Field {
	return zap.Error(err)
}

// FieldPair 交易对地址
func FieldPair(addr string) Field {
	return String("pair_address", addr)
}

func FieldChain(chainID string) Field {
	return String("chain_id", chainID)
}

// FieldOp 出错的操作名
func FieldOp(op string) Field {
	return String("op", op)
}

func FieldKind(kind string) Field {
	return String("kind", kind)
}

func FieldCost(value time.Duration) Field {
	return String("cost", fmt.Sprintf("%.3f", float64(value.Round(time.Microsecond))/float64(time.Millisecond)))
}

// FieldStack ...
func FieldStack(value []byte) Field {
	return ByteString("stack", value)
}
