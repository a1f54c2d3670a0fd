package repo

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("pair not tracked")

// NotFoundError 引用的交易对没有Token记录，写入被拒绝
type NotFoundError struct {
	PairAddress string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("pair %s not tracked", e.PairAddress)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// PersistenceError 存储操作失败，写操作已回滚
type PersistenceError struct {
	Op          string
	PairAddress string
	Err         error
}

func (e *PersistenceError) Error() string {
	if e.PairAddress == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.PairAddress, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// wrapErr NotFoundError原样返回，其他错误包装成PersistenceError
func wrapErr(op, pairAddress string, err error) error {
	if err == nil {
		return nil
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf
	}
	return &PersistenceError{Op: op, PairAddress: pairAddress, Err: err}
}
