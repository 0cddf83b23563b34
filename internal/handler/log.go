package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mjinjiu/course-record-system/internal/models"
	"github.com/mjinjiu/course-record-system/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LogHandler 负责操作日志查询接口
type LogHandler struct {
	DB *gorm.DB
}

func NewLogHandler(db *gorm.DB) *LogHandler {
	return &LogHandler{DB: db}
}

type logResp struct {
	ID        uint      `json:"id"`
	Action    string    `json:"action"`
	Path      string    `json:"path"`
	Method    string    `json:"method"`
	IP        string    `json:"ip"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListLogs 列出操作日志（分页 + 时间范围 + 关键字）
func (h *LogHandler) ListLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	base := h.DB.Model(&models.AuditLog{})

	// 时间筛选：start / end（格式 YYYY-MM-DD）
	if startStr := c.Query("start"); startStr != "" {
		startTime, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, "开始日期格式错误")
			return
		}
		base = base.Where("created_at >= ?", startTime)
	}
	if endStr := c.Query("end"); endStr != "" {
		endTime, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, "结束日期格式错误")
			return
		}
		// 结束日期按当天结束处理
		base = base.Where("created_at < ?", endTime.Add(24*time.Hour))
	}

	// 关键字搜索：q（匹配 path / action）
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + q + "%"
		base = base.Where("path LIKE ? OR action LIKE ?", like, like)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "查询失败")
		return
	}

	var logs []models.AuditLog
	if err := base.
		Order("created_at DESC, id DESC").
		Limit(size).
		Offset(offset).
		Find(&logs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "查询失败")
		return
	}

	items := make([]logResp, 0, len(logs))
	for i := range logs {
		l := &logs[i]
		items = append(items, logResp{
			ID:        l.ID,
			Action:    l.Action,
			Path:      l.Path,
			Method:    l.Method,
			IP:        l.IP,
			CreatedAt: l.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": total,
		"page":  page,
		"size":  size,
	})
}
