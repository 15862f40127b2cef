package timetable

import (
	"bytes"
	"fmt"
	"io"

	"github.com/extrame/xls"
	"github.com/h2non/filetype"
	"github.com/xuri/excelize/v2"
)

// ── 工作簿读取 ──────────────────────────────────────────────
//
// 教务系统导出的课表多为 .xls（BIFF8），也有另存为 .xlsx 的情况。
// 先按文件头识别格式，识别不出时依次尝试两种读取方式。
// 读取结果统一转成 GridSheet，解析器不感知底层格式。
// ─────────────────────────────────────────────────────────────

const xlsCharset = "utf-8"

// OpenWorkbook 读取工作簿中第 sheetIndex 个工作表
func OpenWorkbook(r io.Reader, sheetIndex int) (*GridSheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: 文件为空", ErrSourceUnreadable)
	}

	switch DetectFormat(data) {
	case "xlsx":
		return readXLSX(data, sheetIndex)
	case "xls":
		return readXLS(data, sheetIndex)
	}

	if sheet, err := readXLSX(data, sheetIndex); err == nil {
		return sheet, nil
	}
	if sheet, err := readXLS(data, sheetIndex); err == nil {
		return sheet, nil
	}
	return nil, fmt.Errorf("%w: 不支持的文件格式", ErrSourceUnreadable)
}

// DetectFormat 根据文件头识别表格格式，返回 "xlsx"、"xls" 或空字符串
func DetectFormat(data []byte) string {
	kind, err := filetype.Match(data)
	if err != nil {
		return ""
	}
	switch kind.Extension {
	case "xlsx", "xls":
		return kind.Extension
	}
	return ""
}

func readXLSX(data []byte, sheetIndex int) (*GridSheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	defer f.Close()

	names := f.GetSheetList()
	if sheetIndex < 0 || sheetIndex >= len(names) {
		return nil, fmt.Errorf("%w: 工作表 %d 不存在", ErrSourceUnreadable, sheetIndex)
	}
	rows, err := f.GetRows(names[sheetIndex])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	return NewGridSheet(rows), nil
}

func readXLS(data []byte, sheetIndex int) (sheet *GridSheet, err error) {
	// xls 库遇到损坏文件可能 panic
	defer func() {
		if r := recover(); r != nil {
			sheet = nil
			err = fmt.Errorf("%w: %v", ErrSourceUnreadable, r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), xlsCharset)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	if sheetIndex < 0 || sheetIndex >= wb.NumSheets() {
		return nil, fmt.Errorf("%w: 工作表 %d 不存在", ErrSourceUnreadable, sheetIndex)
	}
	ws := wb.GetSheet(sheetIndex)
	if ws == nil {
		return nil, fmt.Errorf("%w: 工作表 %d 不存在", ErrSourceUnreadable, sheetIndex)
	}

	rows := make([][]string, 0, int(ws.MaxRow)+1)
	for i := 0; i <= int(ws.MaxRow); i++ {
		row := ws.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for c := range cells {
			cells[c] = row.Col(c)
		}
		rows = append(rows, cells)
	}
	return NewGridSheet(rows), nil
}
