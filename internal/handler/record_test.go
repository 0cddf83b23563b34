package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/mjinjiu/course-record-system/internal/models"
)

func TestCreateRecord(t *testing.T) {
	r, _ := setupAPI(t)

	w := doJSON(t, r, http.MethodPost, "/api/records", map[string]string{
		"studentName": "小明",
		"courseName":  "数学",
		"classDate":   "2024-03-01",
		"startTime":   "09:00",
		"endTime":     "10:30",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body=%s", w.Code, w.Body.String())
	}

	var record models.CourseRecord
	decodeJSON(t, w, &record)

	if record.ID == 0 {
		t.Error("ID 应由数据库分配")
	}
	// 时长由起止时间推导
	if record.DurationMinutes != 90 {
		t.Errorf("DurationMinutes = %d, want 90", record.DurationMinutes)
	}
	if record.CreatedAt.IsZero() {
		t.Error("CreatedAt 应由数据库填充")
	}
}

// TestCreateRecord_Validation 必填字段缺失和非法时长都应 400
func TestCreateRecord_Validation(t *testing.T) {
	r, db := setupAPI(t)

	testCases := []struct {
		name string
		body map[string]string
	}{
		{"缺学生名", map[string]string{
			"courseName": "数学", "classDate": "2024-03-01", "startTime": "09:00", "endTime": "10:00"}},
		{"缺课程名", map[string]string{
			"studentName": "小明", "classDate": "2024-03-01", "startTime": "09:00", "endTime": "10:00"}},
		{"缺日期", map[string]string{
			"studentName": "小明", "courseName": "数学", "startTime": "09:00", "endTime": "10:00"}},
		{"结束早于开始", map[string]string{
			"studentName": "小明", "courseName": "数学", "classDate": "2024-03-01",
			"startTime": "10:00", "endTime": "09:00"}},
		{"起止相同", map[string]string{
			"studentName": "小明", "courseName": "数学", "classDate": "2024-03-01",
			"startTime": "10:00", "endTime": "10:00"}},
		{"日期格式错误", map[string]string{
			"studentName": "小明", "courseName": "数学", "classDate": "2024/03/01",
			"startTime": "09:00", "endTime": "10:00"}},
		{"时间格式错误", map[string]string{
			"studentName": "小明", "courseName": "数学", "classDate": "2024-03-01",
			"startTime": "9:00", "endTime": "10:00"}},
	}

	for _, tc := range testCases {
		w := doJSON(t, r, http.MethodPost, "/api/records", tc.body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, w.Code)
		}
	}

	// 非法请求不应落库
	var count int64
	db.Model(&models.CourseRecord{}).Count(&count)
	if count != 0 {
		t.Errorf("非法请求不应持久化, count = %d", count)
	}
}

func TestListRecords_FilterAndOrder(t *testing.T) {
	r, _ := setupAPI(t)

	mustCreate(t, r, "小明", "数学", "2024-03-01", "09:00", "10:00")
	mustCreate(t, r, "小明", "英语", "2024-03-05", "14:00", "15:00")
	mustCreate(t, r, "小红", "数学", "2024-04-02", "09:00", "10:00")
	mustCreate(t, r, "小红", "美术", "2024-03-05", "16:00", "17:00")

	// 不带筛选：全部返回，按日期、开始时间倒序
	w := doJSON(t, r, http.MethodGet, "/api/records", nil)
	var records []models.CourseRecord
	decodeJSON(t, w, &records)
	if len(records) != 4 {
		t.Fatalf("len = %d, want 4", len(records))
	}
	if records[0].ClassDate != "2024-04-02" {
		t.Errorf("records[0].ClassDate = %s, want 2024-04-02", records[0].ClassDate)
	}
	if records[1].ClassDate != "2024-03-05" || records[1].StartTime != "16:00" {
		t.Errorf("同一天应按开始时间倒序, records[1] = %s %s", records[1].ClassDate, records[1].StartTime)
	}

	// 学生名子串筛选
	w = doJSON(t, r, http.MethodGet, "/api/records?studentName=明", nil)
	decodeJSON(t, w, &records)
	if len(records) != 2 {
		t.Errorf("studentName=明 len = %d, want 2", len(records))
	}

	// 月份前缀筛选
	w = doJSON(t, r, http.MethodGet, "/api/records?month=2024-03", nil)
	decodeJSON(t, w, &records)
	if len(records) != 3 {
		t.Errorf("month=2024-03 len = %d, want 3", len(records))
	}

	// 组合筛选：AND 语义
	w = doJSON(t, r, http.MethodGet, "/api/records?month=2024-03&courseName=数学", nil)
	decodeJSON(t, w, &records)
	if len(records) != 1 || records[0].StudentName != "小明" {
		t.Errorf("组合筛选结果不对: %+v", records)
	}
}

func TestUpdateRecord(t *testing.T) {
	r, _ := setupAPI(t)
	mustCreate(t, r, "小明", "数学", "2024-03-01", "09:00", "10:00")

	w := doJSON(t, r, http.MethodPut, "/api/records/1", map[string]string{
		"studentName": "小明",
		"courseName":  "物理",
		"classDate":   "2024-03-02",
		"startTime":   "09:00",
		"endTime":     "09:45",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", w.Code, w.Body.String())
	}

	var record models.CourseRecord
	decodeJSON(t, w, &record)
	if record.CourseName != "物理" {
		t.Errorf("CourseName = %s, want 物理", record.CourseName)
	}
	// 修改后时长重算
	if record.DurationMinutes != 45 {
		t.Errorf("DurationMinutes = %d, want 45", record.DurationMinutes)
	}

	// 改不存在的记录：404
	w = doJSON(t, r, http.MethodPut, "/api/records/999", map[string]string{
		"studentName": "小明",
		"courseName":  "物理",
		"classDate":   "2024-03-02",
		"startTime":   "09:00",
		"endTime":     "09:45",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("不存在的 ID status = %d, want 404", w.Code)
	}
}

func TestDeleteRecord(t *testing.T) {
	r, _ := setupAPI(t)
	mustCreate(t, r, "小明", "数学", "2024-03-01", "09:00", "10:00")

	w := doJSON(t, r, http.MethodDelete, "/api/records/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	// 再删一次：404
	w = doJSON(t, r, http.MethodDelete, "/api/records/1", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("重复删除 status = %d, want 404", w.Code)
	}

	// 非法 ID
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/records/%s", "abc"), nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("非法 ID status = %d, want 400", w.Code)
	}
}

func TestListStudents(t *testing.T) {
	r, _ := setupAPI(t)

	mustCreate(t, r, "小明", "数学", "2024-03-01", "09:00", "10:00")
	mustCreate(t, r, "小红", "美术", "2024-03-02", "09:00", "10:00")
	mustCreate(t, r, "小明", "英语", "2024-03-03", "09:00", "10:00")

	w := doJSON(t, r, http.MethodGet, "/api/students", nil)
	var students []string
	decodeJSON(t, w, &students)

	// 去重 + 升序
	if len(students) != 2 {
		t.Fatalf("len = %d, want 2", len(students))
	}
	if students[0] != "小明" || students[1] != "小红" {
		t.Errorf("students = %v, want [小明 小红]", students)
	}
}
