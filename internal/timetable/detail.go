package timetable

import (
	"regexp"
	"strings"
)

var (
	shortRoomPattern    = regexp.MustCompile(`^[A-Za-z]?\d{3,4}$`)
	buildingCodePattern = regexp.MustCompile(`^[LG]\d{3,4}$`)

	locationKeywords = []string{
		"正心", "致知", "格物", "成教楼", "活动中心", "主楼", "教学楼", "实验楼",
	}
)

// Detail 课程明细：教师、周次描述、地点
type Detail struct {
	Teacher  string
	WeekSpec string
	Location string
}

// ParseDetails 解析课程块的明细行，无可用内容时各字段为空
func ParseDetails(lines []string) Detail {
	if len(lines) == 0 {
		return Detail{}
	}

	// 情况 A：存在含周次括号的行
	if idx := indexOfBracketed(lines); idx >= 0 {
		if d, ok := parseStructuredLine(lines[idx]); ok {
			extra := make([]string, 0, len(lines)-1)
			for i, line := range lines {
				if i != idx {
					extra = append(extra, normalizeLine(line))
				}
			}
			d.Location = joinNonBlank(d.Location, strings.TrimSpace(strings.Join(extra, " ")))
			return d
		}
	}

	// 情况 B：无括号行但有多行，首行视为教师
	if len(lines) >= 2 {
		return Detail{
			Teacher:  strings.TrimSpace(lines[0]),
			Location: strings.TrimSpace(strings.Join(lines[1:], " ")),
		}
	}

	// 情况 C：仅一行，按地点特征归类
	only := strings.TrimSpace(lines[0])
	if isLikelyLocation(only) {
		return Detail{Location: only}
	}
	return Detail{Teacher: only}
}

func indexOfBracketed(lines []string) int {
	for i, line := range lines {
		if hasWeekBracket(line) {
			return i
		}
	}
	return -1
}

// parseStructuredLine 解析「教师[周次](单周|双周|周)?…地点」行。
// 括号前为空（无教师）时返回 false，交由情况 B/C 处理。
func parseStructuredLine(line string) (Detail, bool) {
	normalized := normalizeLine(line)
	first := strings.IndexByte(normalized, '[')
	if first < 0 {
		return Detail{}, false
	}

	teacher := strings.TrimSpace(normalized[:first])
	if teacher == "" {
		return Detail{}, false
	}

	rest := strings.TrimSpace(normalized[first:])
	var weeks []string
	for {
		rest = trimSeparators(rest)
		seg, remaining, ok := cutLeadingSegment(rest)
		if !ok {
			break
		}
		weeks = append(weeks, seg.String())
		rest = remaining
	}

	rest = trimSeparators(rest)
	if strings.HasPrefix(rest, markerEvery) {
		rest = trimSeparators(strings.TrimPrefix(rest, markerEvery))
	}

	return Detail{
		Teacher:  teacher,
		WeekSpec: strings.Join(weeks, weekSpecSeparator),
		Location: strings.TrimSpace(rest),
	}, true
}

func isLikelyLocation(line string) bool {
	text := normalizeLine(line)
	if text == "" {
		return false
	}
	for _, kw := range locationKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return shortRoomPattern.MatchString(text) || buildingCodePattern.MatchString(text)
}

func joinNonBlank(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.TrimSpace(strings.Join(kept, " "))
}
