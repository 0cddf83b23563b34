package models

import "time"

// AuditLog records mutating operations for the history view.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey"`
	Path      string    `gorm:"size:255"`
	Method    string    `gorm:"size:16"`
	Action    string    `gorm:"size:2048"` // 方法 + 路径 + 请求体摘要
	IP        string    `gorm:"size:64"`
	UserAgent string    `gorm:"size:255"`
	CreatedAt time.Time
}
