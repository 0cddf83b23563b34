package stats

import (
	"fmt"
	"time"
)

// Cell is one slot of the 7-column month grid. Leading cells before the
// first day of the month have Day == 0 and render empty.
type Cell struct {
	Day          int    `json:"day"`
	Date         string `json:"date,omitempty"` // YYYY-MM-DD, empty for padding cells
	TotalMinutes int    `json:"totalMinutes"`
	RecordCount  int    `json:"recordCount"`
}

// MonthGrid 根据月份和 byDay 汇总生成日历网格：
// 先按 1 号的星期（周日=0）补空格，再逐日生成单元格，
// 当天没有记录的格子保持全零。
func MonthGrid(month string, days []DayGroup) ([]Cell, error) {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, fmt.Errorf("invalid month %q: %w", month, err)
	}

	byDate := make(map[string]*DayGroup, len(days))
	for i := range days {
		byDate[days[i].Date] = &days[i]
	}

	lastDay := first.AddDate(0, 1, -1).Day()
	cells := make([]Cell, 0, int(first.Weekday())+lastDay)

	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, Cell{})
	}
	for day := 1; day <= lastDay; day++ {
		date := fmt.Sprintf("%s-%02d", month, day)
		cell := Cell{Day: day, Date: date}
		if g, ok := byDate[date]; ok {
			cell.TotalMinutes = g.TotalMinutes
			cell.RecordCount = len(g.Records)
		}
		cells = append(cells, cell)
	}
	return cells, nil
}
