package timetable

import "strings"

var lineNormalizer = strings.NewReplacer(
	"［", "[",
	"］", "]",
	"（", "(",
	"）", ")",
	",", "，",
)

// normalizeLine 全角括号转半角、逗号统一为全角、空白折叠
func normalizeLine(text string) string {
	return strings.Join(strings.Fields(lineNormalizer.Replace(text)), " ")
}

// hasWeekBracket 行内是否含周次括号（同时包含 [ 与 ]）
func hasWeekBracket(text string) bool {
	normalized := normalizeLine(text)
	return strings.Contains(normalized, "[") && strings.Contains(normalized, "]")
}

// trimSeparators 去掉片段之间的分隔符
func trimSeparators(text string) string {
	return strings.TrimLeft(text, " ，,、")
}
