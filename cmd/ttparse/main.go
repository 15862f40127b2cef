// ttparse 离线解析课表文件并输出 JSON
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"hit-timetable/internal/timetable"
)

type options struct {
	week          int
	day           int
	pretty        bool
	sectionColumn int
	sheet         int
}

// dayView --week/--day 过滤后的输出
type dayView struct {
	SourceTitle string             `json:"source_title"`
	DayIndex    int                `json:"day_index"`
	DayName     string             `json:"day_name"`
	Week        int                `json:"week"`
	Courses     []timetable.Course `json:"courses"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "ttparse <file.xls|file.xlsx>",
		Short:        "解析教务系统导出的课表并输出 JSON",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.week, "week", 0, "周次（与 --day 同时指定时只输出当天课程）")
	cmd.Flags().IntVar(&opts.day, "day", 0, "星期 1-7")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "格式化 JSON 输出")
	cmd.Flags().IntVar(&opts.sectionColumn, "section-column", timetable.DefaultSectionColumn, "节次标签所在列（从 0 开始）")
	cmd.Flags().IntVar(&opts.sheet, "sheet", 0, "读取第几个工作表（从 0 开始）")

	return cmd
}

func run(out io.Writer, path string, opts *options) error {
	if (opts.week > 0) != (opts.day > 0) {
		return fmt.Errorf("--week 与 --day 需要同时指定")
	}
	if opts.day < 0 || opts.day > 7 || opts.week < 0 {
		return fmt.Errorf("--day 必须在 1-7 之间，--week 必须为正整数")
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("打开文件失败: %w", err)
	}
	defer f.Close()

	sheet, err := timetable.OpenWorkbook(f, opts.sheet)
	if err != nil {
		return err
	}

	result, err := timetable.NewParser(timetable.WithSectionColumn(opts.sectionColumn)).Parse(sheet)
	if err != nil {
		return err
	}

	var payload interface{} = result
	if opts.week > 0 {
		payload = dayView{
			SourceTitle: result.SourceTitle,
			DayIndex:    opts.day,
			DayName:     timetable.DayName(opts.day),
			Week:        opts.week,
			Courses:     timetable.CoursesForWeek(result.Courses, opts.day, opts.week),
		}
	}

	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	if opts.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(payload)
}
