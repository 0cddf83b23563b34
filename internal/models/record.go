package models

import "time"

// CourseRecord 表示一次上课记录
// 日期和时间都按原始字符串存储（YYYY-MM-DD / HH:MM），不做时区换算，
// 字符串本身零填充，按字典序排序即按时间排序
type CourseRecord struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	StudentName     string    `gorm:"size:64;index;not null" json:"studentName"`
	CourseName      string    `gorm:"size:64;index;not null" json:"courseName"`
	ClassDate       string    `gorm:"size:10;index;not null" json:"classDate"` // YYYY-MM-DD
	StartTime       string    `gorm:"size:5;not null" json:"startTime"`        // HH:MM
	EndTime         string    `gorm:"size:5;not null" json:"endTime"`          // HH:MM
	DurationMinutes int       `gorm:"not null" json:"durationMinutes"`         // 由起止时间推导，始终重算，不接受直接输入
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
