package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/mjinjiu/course-record-system/internal/models"
	"github.com/mjinjiu/course-record-system/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler 把当前筛选条件下的记录导出为 CSV 或 XLSX
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

// 固定 8 列表头，和前端表格列一致
var exportHeaders = []string{
	"序号", "学生姓名", "课程名称", "上课日期", "开始时间", "结束时间", "时长(分钟)", "创建时间",
}

func exportRow(seq int, r *models.CourseRecord) []string {
	return []string{
		strconv.Itoa(seq),
		r.StudentName,
		r.CourseName,
		r.ClassDate,
		r.StartTime,
		r.EndTime,
		strconv.Itoa(r.DurationMinutes),
		r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// queryRecords 复用列表接口的筛选条件，导出什么取决于当前筛选
func (h *ExportHandler) queryRecords(c *gin.Context) ([]models.CourseRecord, bool) {
	var records []models.CourseRecord
	query := applyRecordFilters(h.DB.Model(&models.CourseRecord{}), c)
	if err := query.
		Order("class_date DESC, start_time DESC").
		Find(&records).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "导出失败")
		return nil, false
	}
	return records, true
}

// ExportCSV 导出 CSV，带 UTF-8 BOM，Excel 才能正确识别中文
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	records, ok := h.queryRecords(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"course-records-%s.csv\"",
		time.Now().Format("2006-01-02")))

	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for i := range records {
		writer.Write(exportRow(i+1, &records[i]))
	}
}

// ExportXLSX 导出 XLSX
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	records, ok := h.queryRecords(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	sheetName := "上课记录"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "导出失败")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, head := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, head)
	}

	for idx := range records {
		row := exportRow(idx+1, &records[idx])
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, idx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 6)
	f.SetColWidth(sheetName, "B", "C", 15)
	f.SetColWidth(sheetName, "D", "G", 12)
	f.SetColWidth(sheetName, "H", "H", 20)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"course-records-%s.xlsx\"",
		time.Now().Format("2006-01-02")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, "导出失败")
	}
}
