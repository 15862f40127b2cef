package timetable

import "errors"

// ── 导入错误 ──
//
// 仅由导入入口（OpenWorkbook / Parser.Parse）返回；拆分、明细解析与周次匹配从不失败。

var (
	ErrHeaderNotFound   = errors.New("未识别到课表表头")
	ErrNoDayColumns     = errors.New("未识别到星期列")
	ErrSourceUnreadable = errors.New("无法读取课表文件")
)
