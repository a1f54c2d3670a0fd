package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// GetDisplayAddress 地址缩写，用于消息展示
func GetDisplayAddress(address string) string {
	if len(address) > 9 {
		return fmt.Sprintf("%s...%s", address[:6], address[len(address)-4:])
	}
	return address
}

// FormatUSD 金额缩写为k/M/B
func FormatUSD(amount decimal.Decimal) string {
	v, _ := amount.Float64()
	switch {
	case v >= 1_000_000_000:
		return fmt.Sprintf("$%.1fB", v/1_000_000_000)
	case v >= 1_000_000:
		return fmt.Sprintf("$%.1fM", v/1_000_000)
	case v >= 1000:
		return fmt.Sprintf("$%.1fk", v/1000)
	default:
		return fmt.Sprintf("$%.2f", v)
	}
}

// FormatPercent 带符号保留两位小数
func FormatPercent(pct decimal.Decimal) string {
	s := pct.StringFixed(2) + "%"
	if pct.IsPositive() {
		return "+" + s
	}
	return s
}

// FormatPrice 格式化价格，小数部分前导0较多时写成 0{n} 形式
func FormatPrice(raw string) string {
	if raw == "" {
		return ""
	}

	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	if val == 0 {
		return "$0"
	}

	s := fmt.Sprintf("%.20f", val)        // 形如  "2.00003456000000000000"
	intPart, decPart := splitOnce(s, ".") // decPart 至少 1 位

	if strings.TrimRight(decPart, "0") == "" {
		return fmt.Sprintf("$%s", intPart)
	}

	// 1️⃣ 统计前导 0 个数
	zeroPrefix := 0
	for zeroPrefix < len(decPart) && decPart[zeroPrefix] == '0' {
		zeroPrefix++
	}

	// 2️⃣ 取首个非零数字开始的 4 位十进制数（含 0）
	start := zeroPrefix
	end := start + 4
	if end > len(decPart) {
		end = len(decPart)
	}
	digits := decPart[start:end]

	// 3️⃣ 拼接小数部分
	var frac string
	if zeroPrefix > 3 {
		frac = fmt.Sprintf("0{%d}%s", zeroPrefix, digits)
	} else {
		frac = strings.Repeat("0", zeroPrefix) + digits
	}

	return fmt.Sprintf("$%s.%s", intPart, frac)
}

// TruncateRunes 按字符截断
func TruncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// splitOnce 把 s 按第一个 sep 切成两段，若不存在 sep，则 decPart 为空串
func splitOnce(s, sep string) (intPart, decPart string) {
	if idx := strings.Index(s, sep); idx != -1 {
		return s[:idx], s[idx+1:]
	}
	return s, ""
}
