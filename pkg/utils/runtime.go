package utils

import (
	"runtime"
)

const maxStackSize = 64 << 10

// GetStack 当前协程的调用栈，超过64KB截断
func GetStack() []byte {
	buf := make([]byte, 4<<10)
	for {
		n := runtime.Stack(buf, false)
		if n < len(buf) || len(buf) >= maxStackSize {
			return buf[:n]
		}
		buf = make([]byte, len(buf)*2)
	}
}
