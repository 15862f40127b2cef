package timetable

import (
	"strings"
	"time"
)

// 节次标签默认位于第 2 列（第 1 列通常是上午/下午等合并单元格）
const DefaultSectionColumn = 1

// Parser 课表导入解析器，无状态，可并发使用
type Parser struct {
	sectionColumn int
	now           func() time.Time
}

// Option Parser 配置项
type Option func(*Parser)

// WithSectionColumn 指定节次标签所在列
func WithSectionColumn(col int) Option {
	return func(p *Parser) {
		if col >= 0 {
			p.sectionColumn = col
		}
	}
}

// WithClock 指定导入时间来源
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		if now != nil {
			p.now = now
		}
	}
}

// NewParser 创建 Parser
func NewParser(opts ...Option) *Parser {
	p := &Parser{sectionColumn: DefaultSectionColumn, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse 解析整张课表。
//
// 流程：
//  1. 读取 (0,0) 作为来源标题（在表头识别之前，无条件读取）
//  2. 定位表头行与星期列
//  3. 表头之后的每一行：节次标签为空则跳过，否则逐个星期列解析单元格
//
// 任一步失败整体返回错误，不返回部分结果。
func (p *Parser) Parse(sheet Sheet) (*Result, error) {
	if sheet == nil {
		return nil, ErrSourceUnreadable
	}

	title := strings.TrimSpace(sheet.CellText(0, 0))

	headerRow, dayColumns, err := Locate(sheet)
	if err != nil {
		return nil, err
	}

	courses := make([]Course, 0)
	for row := headerRow + 1; row < sheet.RowCount(); row++ {
		label := strings.TrimSpace(sheet.CellText(row, p.sectionColumn))
		if label == "" {
			continue
		}
		for _, dc := range dayColumns {
			text := strings.TrimSpace(sheet.CellText(row, dc.Column))
			if text == "" {
				continue
			}
			slot := CellSlot{
				DayIndex:     dc.DayIndex,
				DayName:      dc.DayName,
				SectionLabel: label,
				SectionOrder: row,
			}
			courses = append(courses, ParseCell(slot, text)...)
		}
	}

	return &Result{
		SourceTitle: title,
		ImportedAt:  p.now(),
		Courses:     courses,
	}, nil
}
