// Package stats computes derived statistics over course records.
// All functions are pure: they take an already-filtered record set and
// never touch the database, so they cannot fail.
package stats

import (
	"sort"

	"github.com/mjinjiu/course-record-system/internal/models"
)

// NameTotal is one bar of the per-student / per-course breakdown.
type NameTotal struct {
	Name    string `json:"name"`
	Minutes int    `json:"minutes"`
}

// DayGroup carries all records of one calendar day plus their total.
type DayGroup struct {
	Date         string                `json:"date"` // YYYY-MM-DD
	TotalMinutes int                   `json:"totalMinutes"`
	Records      []models.CourseRecord `json:"records"`
}

// Summary is the dashboard payload for one (optionally month-filtered)
// record set.
type Summary struct {
	TotalMinutes   int         `json:"totalMinutes"`
	TotalRecords   int         `json:"totalRecords"`
	UniqueStudents int         `json:"uniqueStudents"`
	ByStudent      []NameTotal `json:"byStudent"`
	ByCourse       []NameTotal `json:"byCourse"`
	ByDay          []DayGroup  `json:"byDay"`
}

// Aggregate 汇总一组（已按月份筛好的）上课记录。
// byStudent/byCourse 按分钟数降序，分钟数相同按名称升序兜底；
// byDay 按日期升序（日期是零填充字符串，字典序即时间序），
// 每天内部保持输入顺序。空输入返回全零和空数组，不会出错。
func Aggregate(records []models.CourseRecord) Summary {
	s := Summary{
		ByStudent: []NameTotal{},
		ByCourse:  []NameTotal{},
		ByDay:     []DayGroup{},
	}

	studentMinutes := make(map[string]int)
	courseMinutes := make(map[string]int)
	dayIndex := make(map[string]int) // date -> ByDay 下标

	for i := range records {
		r := &records[i]
		s.TotalMinutes += r.DurationMinutes
		studentMinutes[r.StudentName] += r.DurationMinutes
		courseMinutes[r.CourseName] += r.DurationMinutes

		idx, ok := dayIndex[r.ClassDate]
		if !ok {
			idx = len(s.ByDay)
			dayIndex[r.ClassDate] = idx
			s.ByDay = append(s.ByDay, DayGroup{Date: r.ClassDate})
		}
		s.ByDay[idx].Records = append(s.ByDay[idx].Records, *r)
		s.ByDay[idx].TotalMinutes += r.DurationMinutes
	}

	s.TotalRecords = len(records)
	s.UniqueStudents = len(studentMinutes)
	s.ByStudent = sortedTotals(studentMinutes)
	s.ByCourse = sortedTotals(courseMinutes)

	sort.Slice(s.ByDay, func(i, j int) bool {
		return s.ByDay[i].Date < s.ByDay[j].Date
	})

	return s
}

func sortedTotals(m map[string]int) []NameTotal {
	list := make([]NameTotal, 0, len(m))
	for name, minutes := range m {
		list = append(list, NameTotal{Name: name, Minutes: minutes})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Minutes != list[j].Minutes {
			return list[i].Minutes > list[j].Minutes
		}
		return list[i].Name < list[j].Name
	})
	return list
}
