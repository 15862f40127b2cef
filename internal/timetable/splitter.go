package timetable

import "strings"

// CourseBlock 单元格中属于同一门课程的文本：课程名 + 明细行
type CourseBlock struct {
	Name    string
	Details []string
}

// CellSlot 单元格所在的星期与节次
type CellSlot struct {
	DayIndex     int
	DayName      string
	SectionLabel string
	SectionOrder int
}

// splitState 拆分扫描状态
type splitState int

const (
	awaitingCourseName splitState = iota
	collectingDetail
)

// ParseCell 将一个单元格解析为课程记录。
// 空白单元格返回空列表，非空单元格至少返回一条记录。
func ParseCell(slot CellSlot, raw string) []Course {
	blocks := SplitBlocks(raw)
	courses := make([]Course, 0, len(blocks))
	for _, b := range blocks {
		d := ParseDetails(b.Details)
		courses = append(courses, Course{
			DayIndex:     slot.DayIndex,
			DayName:      slot.DayName,
			SectionLabel: slot.SectionLabel,
			SectionOrder: slot.SectionOrder,
			CourseName:   b.Name,
			Teacher:      d.Teacher,
			WeekSpec:     d.WeekSpec,
			Location:     d.Location,
			RawCellText:  raw,
		})
	}
	return courses
}

// SplitBlocks 将单元格文本拆成课程块。
//
// 单次前向扫描，两个状态：
//   - awaitingCourseName: 普通行成为新课程名；含周次括号的行并入上一块（无上一块时丢弃）
//   - collectingDetail: 行并入当前块的明细，直到遇到「普通行 + 下一行含括号」，
//     此时该普通行是下一门课程的名称，切回 awaitingCourseName 且不消费该行
func SplitBlocks(raw string) []CourseBlock {
	lines := cellLines(raw)
	if len(lines) == 0 {
		return nil
	}

	var blocks []CourseBlock
	state := awaitingCourseName
	for i := 0; i < len(lines); {
		line := lines[i]
		switch state {
		case awaitingCourseName:
			if hasWeekBracket(line) {
				if n := len(blocks); n > 0 {
					blocks[n-1].Details = append(blocks[n-1].Details, line)
				}
				i++
				continue
			}
			blocks = append(blocks, CourseBlock{Name: line})
			state = collectingDetail
			i++
		case collectingDetail:
			if startsNextCourse(lines, i) {
				state = awaitingCourseName
				continue
			}
			last := &blocks[len(blocks)-1]
			last.Details = append(last.Details, line)
			i++
		}
	}

	// 全部为括号行时退化为仅含名称的一块
	if len(blocks) == 0 {
		blocks = append(blocks, CourseBlock{Name: lines[0], Details: lines[1:]})
	}
	return blocks
}

// startsNextCourse 普通行且下一行含周次括号
func startsNextCourse(lines []string, i int) bool {
	if hasWeekBracket(lines[i]) {
		return false
	}
	if i+1 >= len(lines) {
		return false
	}
	return hasWeekBracket(lines[i+1])
}

// cellLines 按行拆分，全角空格转半角，去空白并丢弃空行
func cellLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.ReplaceAll(line, "　", " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
