package handler

import (
	"net/http"

	"github.com/mjinjiu/course-record-system/internal/models"
	"github.com/mjinjiu/course-record-system/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListStudents 返回去重后的学生名列表（升序），给表单自动补全用
func ListStudents(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		students := make([]string, 0)
		if err := db.Model(&models.CourseRecord{}).
			Distinct("student_name").
			Order("student_name ASC").
			Pluck("student_name", &students).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, "获取学生列表失败")
			return
		}

		c.JSON(http.StatusOK, students)
	}
}
