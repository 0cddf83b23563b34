package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/mjinjiu/course-record-system/internal/models"
	"github.com/mjinjiu/course-record-system/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RecordHandler 负责上课记录的增删改查
type RecordHandler struct {
	DB *gorm.DB
}

func NewRecordHandler(db *gorm.DB) *RecordHandler {
	return &RecordHandler{DB: db}
}

// recordReq 创建和修改共用，修改是整条字段覆盖，没有部分更新
type recordReq struct {
	StudentName string `json:"studentName"`
	CourseName  string `json:"courseName"`
	ClassDate   string `json:"classDate"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}

// validate 校验请求并返回推导出的时长。
// durationMinutes 永远由起止时间重算，不接受外部传入。
func (r *recordReq) validate() (int, string) {
	r.StudentName = strings.TrimSpace(r.StudentName)
	r.CourseName = strings.TrimSpace(r.CourseName)

	if r.StudentName == "" || r.CourseName == "" ||
		r.ClassDate == "" || r.StartTime == "" || r.EndTime == "" {
		return 0, "请填写所有必填字段"
	}
	if util.ValidateName(r.StudentName) != nil || util.ValidateName(r.CourseName) != nil {
		return 0, "名称过长"
	}
	if err := util.ValidateDate(r.ClassDate); err != nil {
		return 0, "日期格式错误，应为 YYYY-MM-DD"
	}

	duration, err := util.CalculateDuration(r.StartTime, r.EndTime)
	if err != nil {
		return 0, "时间格式错误，应为 HH:MM"
	}
	if duration <= 0 {
		return 0, "结束时间必须晚于开始时间"
	}
	return duration, ""
}

// applyRecordFilters 拼接三个可选筛选条件（AND 组合，缺省即不限制）：
// 学生名/课程名做区分大小写的子串匹配——SQLite 的 LIKE 对 ASCII
// 不区分大小写，所以用 instr；月份做 class_date 前缀匹配。
func applyRecordFilters(query *gorm.DB, c *gin.Context) *gorm.DB {
	if studentName := c.Query("studentName"); studentName != "" {
		query = query.Where("instr(student_name, ?) > 0", studentName)
	}
	if courseName := c.Query("courseName"); courseName != "" {
		query = query.Where("instr(course_name, ?) > 0", courseName)
	}
	if month := c.Query("month"); month != "" {
		query = query.Where("class_date LIKE ?", month+"%")
	}
	return query
}

// ListRecords 查询记录列表，按上课日期、开始时间倒序
func (h *RecordHandler) ListRecords(c *gin.Context) {
	records := make([]models.CourseRecord, 0)
	query := applyRecordFilters(h.DB.Model(&models.CourseRecord{}), c)
	if err := query.
		Order("class_date DESC, start_time DESC").
		Find(&records).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "获取记录失败")
		return
	}

	c.JSON(http.StatusOK, records)
}

// CreateRecord 新增一条上课记录
func (h *RecordHandler) CreateRecord(c *gin.Context) {
	var req recordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "请填写所有必填字段")
		return
	}

	duration, errMsg := req.validate()
	if errMsg != "" {
		util.Error(c, http.StatusBadRequest, errMsg)
		return
	}

	record := models.CourseRecord{
		StudentName:     req.StudentName,
		CourseName:      req.CourseName,
		ClassDate:       req.ClassDate,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DurationMinutes: duration,
	}
	if err := h.DB.Create(&record).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "创建记录失败")
		return
	}

	c.JSON(http.StatusCreated, record)
}

// UpdateRecord 整条覆盖修改一条记录
func (h *RecordHandler) UpdateRecord(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "ID 不合法")
		return
	}

	var req recordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "请填写所有必填字段")
		return
	}

	duration, errMsg := req.validate()
	if errMsg != "" {
		util.Error(c, http.StatusBadRequest, errMsg)
		return
	}

	var record models.CourseRecord
	if err := h.DB.First(&record, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "记录不存在")
		} else {
			util.Error(c, http.StatusInternalServerError, "更新记录失败")
		}
		return
	}

	record.StudentName = req.StudentName
	record.CourseName = req.CourseName
	record.ClassDate = req.ClassDate
	record.StartTime = req.StartTime
	record.EndTime = req.EndTime
	record.DurationMinutes = duration

	if err := h.DB.Save(&record).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "更新记录失败")
		return
	}

	c.JSON(http.StatusOK, record)
}

// DeleteRecord 删除一条记录，不存在返回 404
func (h *RecordHandler) DeleteRecord(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "ID 不合法")
		return
	}

	result := h.DB.Delete(&models.CourseRecord{}, id)
	if result.Error != nil {
		util.Error(c, http.StatusInternalServerError, "删除记录失败")
		return
	}
	if result.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, "记录不存在")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
