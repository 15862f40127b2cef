package timetable

// Sheet 表格只读访问接口（行列均从 0 开始）。
// 越界或空单元格返回空字符串，不返回错误。
type Sheet interface {
	RowCount() int
	ColumnCount() int
	CellText(row, col int) string
}

// GridSheet 基于内存二维数组的 Sheet 实现，行长度可以不一致
type GridSheet struct {
	rows    [][]string
	columns int
}

// NewGridSheet 创建 GridSheet，列数取最长行的长度
func NewGridSheet(rows [][]string) *GridSheet {
	columns := 0
	for _, r := range rows {
		if len(r) > columns {
			columns = len(r)
		}
	}
	return &GridSheet{rows: rows, columns: columns}
}

func (g *GridSheet) RowCount() int    { return len(g.rows) }
func (g *GridSheet) ColumnCount() int { return g.columns }

func (g *GridSheet) CellText(row, col int) string {
	if row < 0 || row >= len(g.rows) || col < 0 {
		return ""
	}
	r := g.rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}
