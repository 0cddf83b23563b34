package util

import (
	"fmt"
	"time"
)

// ValidateDate 验证日期格式（必须为 YYYY-MM-DD）
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is empty")
	}
	if _, err := time.Parse("2006-01-02", dateStr); err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	return nil
}

// ValidateMonth 验证月份格式（必须为 YYYY-MM）
func ValidateMonth(monthStr string) error {
	if monthStr == "" {
		return fmt.Errorf("month is empty")
	}
	if _, err := time.Parse("2006-01", monthStr); err != nil {
		return fmt.Errorf("invalid month format: %w", err)
	}
	return nil
}

// ValidateName 验证学生/课程名称（非空且长度合理）
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name is empty")
	}
	if len(name) > 64 {
		return fmt.Errorf("name too long, max 64 bytes")
	}
	return nil
}
