package timetable

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// 周次标记
const (
	markerOdd   = "单周"
	markerEven  = "双周"
	markerEvery = "周"

	weekSpecSeparator = "，"
)

// WeekSegment 周次描述中的一个括号片段，如 [1-8]单周
type WeekSegment struct {
	Content string // 括号内文本，如 "1-8，10"
	Marker  string // 单周 | 双周 | 周 | 空
}

// String 还原为 [content]marker，无标记时补「周」
func (s WeekSegment) String() string {
	marker := s.Marker
	if marker == "" {
		marker = markerEvery
	}
	return "[" + s.Content + "]" + marker
}

// Contains 判断该片段是否覆盖指定周次（范围条件且单双周条件）
func (s WeekSegment) Contains(week int) bool {
	return s.rangeContains(week) && s.parityAllows(week)
}

func (s WeekSegment) rangeContains(week int) bool {
	tokens := strings.FieldsFunc(s.Content, func(r rune) bool {
		return r == '，' || r == ',' || r == '、'
	})
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if strings.Contains(token, "-") {
			parts := strings.Split(token, "-")
			if len(parts) != 2 {
				continue
			}
			start, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
			end, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
			if err1 != nil || err2 != nil {
				continue
			}
			if week >= start && week <= end {
				return true
			}
			continue
		}
		if n, err := strconv.Atoi(token); err == nil && n == week {
			return true
		}
	}
	return false
}

func (s WeekSegment) parityAllows(week int) bool {
	switch s.Marker {
	case markerOdd:
		return week%2 == 1
	case markerEven:
		return week%2 == 0
	default:
		return true
	}
}

// Matches 判断周次描述在指定周是否有课。
// 描述为空或不含括号片段时视为每周都有课；多个片段之间为「或」关系。
func Matches(weekSpec string, week int) bool {
	if strings.TrimSpace(weekSpec) == "" {
		return true
	}
	segments := ParseWeekSegments(weekSpec)
	if len(segments) == 0 {
		return true
	}
	for _, seg := range segments {
		if seg.Contains(week) {
			return true
		}
	}
	return false
}

// ParseWeekSegments 依次提取文本中所有 [content](单周|双周|周)? 片段
func ParseWeekSegments(text string) []WeekSegment {
	var segments []WeekSegment
	for {
		start := strings.IndexByte(text, '[')
		if start < 0 {
			return segments
		}
		seg, rest, ok := cutLeadingSegment(text[start:])
		if !ok {
			return segments
		}
		segments = append(segments, seg)
		text = rest
	}
}

// cutLeadingSegment 从文本开头切出一个片段，返回片段与剩余文本。
// 括号内至少一个字符，取其后最近的 ]。
func cutLeadingSegment(text string) (WeekSegment, string, bool) {
	if !strings.HasPrefix(text, "[") {
		return WeekSegment{}, text, false
	}
	body := text[1:]
	_, size := utf8.DecodeRuneInString(body)
	if size == 0 {
		return WeekSegment{}, text, false
	}
	end := strings.IndexByte(body[size:], ']')
	if end < 0 {
		return WeekSegment{}, text, false
	}
	end += size

	content := body[:end]
	rest := body[end+1:]
	marker := ""
	for _, m := range []string{markerOdd, markerEven, markerEvery} {
		if strings.HasPrefix(rest, m) {
			marker = m
			rest = rest[len(m):]
			break
		}
	}
	return WeekSegment{Content: strings.TrimSpace(content), Marker: marker}, rest, true
}
