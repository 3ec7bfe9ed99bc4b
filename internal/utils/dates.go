package utils

import (
	"time"

	"github.com/araddon/dateparse"
)

// ParseLooseDate 解析格式不定的日期字符串，归一化为日历日期。
// 解析失败返回 nil（调用方按缺失处理，不视为错误）。
func ParseLooseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

// TruncateName 按字符数截断名字。上游历史行为：过短的截断长度会把
// 前缀相同的不同作者合并成一条记录，长度由配置显式给出。
func TruncateName(name string, maxLen int) string {
	if maxLen <= 0 {
		return name
	}
	runes := []rune(name)
	if len(runes) <= maxLen {
		return name
	}
	return string(runes[:maxLen])
}
