package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/mjinjiu/course-record-system/internal/database"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 建一个临时 SQLite 库并跑迁移
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("迁移失败: %v", err)
	}
	return db
}

// setupAPI 只挂业务路由，不挂鉴权中间件（鉴权单独在 auth_test 里测）
func setupAPI(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	r := gin.New()

	recordHandler := NewRecordHandler(db)
	r.GET("/api/records", recordHandler.ListRecords)
	r.POST("/api/records", recordHandler.CreateRecord)
	r.PUT("/api/records/:id", recordHandler.UpdateRecord)
	r.DELETE("/api/records/:id", recordHandler.DeleteRecord)

	statsHandler := NewStatsHandler(db)
	r.GET("/api/stats", statsHandler.GetStats)
	r.GET("/api/stats/calendar", statsHandler.GetCalendar)

	r.GET("/api/students", ListStudents(db))

	exportHandler := NewExportHandler(db)
	r.GET("/api/export/csv", exportHandler.ExportCSV)

	return r, db
}

// doJSON 发一个 JSON 请求并返回 recorder
func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("序列化请求体失败: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("解析响应失败: %v, body=%s", err, w.Body.String())
	}
}

// mustCreate 通过接口写入一条记录
func mustCreate(t *testing.T, r *gin.Engine, student, course, date, start, end string) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/records", map[string]string{
		"studentName": student,
		"courseName":  course,
		"classDate":   date,
		"startTime":   start,
		"endTime":     end,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("创建记录失败: status=%d body=%s", w.Code, w.Body.String())
	}
}
