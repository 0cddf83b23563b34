package handler

import (
	"net/http"

	"github.com/mjinjiu/course-record-system/internal/models"
	"github.com/mjinjiu/course-record-system/internal/stats"
	"github.com/mjinjiu/course-record-system/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StatsHandler 负责统计接口，汇总本身是纯函数（internal/stats），
// 这里只做查询和参数校验。统计每次现算，服务端不缓存。
type StatsHandler struct {
	DB *gorm.DB
}

func NewStatsHandler(db *gorm.DB) *StatsHandler {
	return &StatsHandler{DB: db}
}

// monthRecords 查询某个月（或全部）的记录，按日期、开始时间升序，
// 这个顺序决定了 byDay 里每天记录的相对顺序
func (h *StatsHandler) monthRecords(c *gin.Context) ([]models.CourseRecord, bool) {
	month := c.Query("month")
	if month != "" {
		if err := util.ValidateMonth(month); err != nil {
			util.Error(c, http.StatusBadRequest, "月份格式错误，应为 YYYY-MM")
			return nil, false
		}
	}

	query := h.DB.Model(&models.CourseRecord{})
	if month != "" {
		query = query.Where("class_date LIKE ?", month+"%")
	}

	var records []models.CourseRecord
	if err := query.
		Order("class_date ASC, start_time ASC").
		Find(&records).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "获取统计数据失败")
		return nil, false
	}
	return records, true
}

// GetStats 返回月度统计汇总
func (h *StatsHandler) GetStats(c *gin.Context) {
	records, ok := h.monthRecords(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, stats.Aggregate(records))
}

// GetCalendar 返回月历视图（周日开头的 7 列网格）
func (h *StatsHandler) GetCalendar(c *gin.Context) {
	month := c.Query("month")
	if err := util.ValidateMonth(month); err != nil {
		util.Error(c, http.StatusBadRequest, "月份格式错误，应为 YYYY-MM")
		return
	}

	records, ok := h.monthRecords(c)
	if !ok {
		return
	}

	summary := stats.Aggregate(records)
	cells, err := stats.MonthGrid(month, summary.ByDay)
	if err != nil {
		util.Error(c, http.StatusBadRequest, "月份格式错误，应为 YYYY-MM")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"month": month,
		"cells": cells,
	})
}
