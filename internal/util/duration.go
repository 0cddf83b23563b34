package util

import (
	"fmt"
	"strconv"
	"strings"
)

// parseClock 解析 HH:MM 格式，小时 0-23，分钟 0-59
func parseClock(s string) (int, int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h, m, nil
}

// CalculateDuration 计算同一天内两个时刻之间的分钟数。
// 不处理跨天：end 不晚于 start 时结果 <= 0，由调用方拒绝。
func CalculateDuration(startTime, endTime string) (int, error) {
	startH, startM, err := parseClock(startTime)
	if err != nil {
		return 0, err
	}
	endH, endM, err := parseClock(endTime)
	if err != nil {
		return 0, err
	}
	return (endH*60 + endM) - (startH*60 + startM), nil
}

// FormatDuration 把分钟数格式化成「X小时Y分钟」
func FormatDuration(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if h == 0 {
		return fmt.Sprintf("%d分钟", m)
	}
	if m == 0 {
		return fmt.Sprintf("%d小时", h)
	}
	return fmt.Sprintf("%d小时%d分钟", h, m)
}
