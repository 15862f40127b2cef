package timetable

import "strings"

// weekdayNames 标准星期名，下标 +1 即 DayIndex
var weekdayNames = [7]string{"星期一", "星期二", "星期三", "星期四", "星期五", "星期六", "星期日"}

// 表头行至少包含 星期一~星期五 中的 3 个
const headerMarkerThreshold = 3

// DayColumn 星期列映射：列号 → (星期序号, 星期名)
type DayColumn struct {
	Column   int
	DayIndex int
	DayName  string
}

// DayName 返回 DayIndex 对应的星期名，越界时返回空字符串
func DayName(dayIndex int) string {
	if dayIndex < 1 || dayIndex > len(weekdayNames) {
		return ""
	}
	return weekdayNames[dayIndex-1]
}

// Locate 定位表头行与星期列。
// 返回的 DayColumn 按列号升序排列。
func Locate(sheet Sheet) (int, []DayColumn, error) {
	headerRow, ok := findHeaderRow(sheet)
	if !ok {
		return -1, nil, ErrHeaderNotFound
	}
	columns := findDayColumns(sheet, headerRow)
	if len(columns) == 0 {
		return headerRow, nil, ErrNoDayColumns
	}
	return headerRow, columns, nil
}

// findHeaderRow 自上而下寻找第一个包含足够多工作日名称的行（子串匹配）
func findHeaderRow(sheet Sheet) (int, bool) {
	markers := weekdayNames[:5]
	for row := 0; row < sheet.RowCount(); row++ {
		count := 0
		for _, marker := range markers {
			if rowContains(sheet, row, marker) {
				count++
			}
		}
		if count >= headerMarkerThreshold {
			return row, true
		}
	}
	return 0, false
}

// findDayColumns 表头行中去空白后与星期名完全相等的单元格即为星期列
func findDayColumns(sheet Sheet, headerRow int) []DayColumn {
	var columns []DayColumn
	for col := 0; col < sheet.ColumnCount(); col++ {
		title := strings.TrimSpace(sheet.CellText(headerRow, col))
		for i, name := range weekdayNames {
			if title == name {
				columns = append(columns, DayColumn{Column: col, DayIndex: i + 1, DayName: name})
				break
			}
		}
	}
	return columns
}

func rowContains(sheet Sheet, row int, marker string) bool {
	for col := 0; col < sheet.ColumnCount(); col++ {
		if strings.Contains(sheet.CellText(row, col), marker) {
			return true
		}
	}
	return false
}
