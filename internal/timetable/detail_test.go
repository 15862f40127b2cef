package timetable

import "testing"

func TestParseDetails(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  Detail
	}{
		{
			name:  "无明细",
			lines: nil,
			want:  Detail{},
		},
		{
			name:  "教师+周次+地点",
			lines: []string{"张老师[1-16]主楼203"},
			want:  Detail{Teacher: "张老师", WeekSpec: "[1-16]周", Location: "主楼203"},
		},
		{
			name:  "单周+地点在下一行",
			lines: []string{"李老师[1-8]单周", "格物楼305"},
			want:  Detail{Teacher: "李老师", WeekSpec: "[1-8]单周", Location: "格物楼305"},
		},
		{
			name:  "多段周次",
			lines: []string{"王老师[1-4]单周，[6-8]双周，[10]周 致知楼101"},
			want:  Detail{Teacher: "王老师", WeekSpec: "[1-4]单周，[6-8]双周，[10]周", Location: "致知楼101"},
		},
		{
			name:  "全角括号与半角逗号",
			lines: []string{"赵老师［1,3,5］周G305"},
			want:  Detail{Teacher: "赵老师", WeekSpec: "[1，3，5]周", Location: "G305"},
		},
		{
			name:  "周次后的独立「周」被去掉",
			lines: []string{"钱老师[1-16] 周 L203"},
			want:  Detail{Teacher: "钱老师", WeekSpec: "[1-16]周", Location: "L203"},
		},
		{
			name:  "括号前无教师退化为情况 B",
			lines: []string{"[1-16]周", "正心楼101"},
			want:  Detail{Teacher: "[1-16]周", Location: "正心楼101"},
		},
		{
			name:  "情况 B 多行无括号",
			lines: []string{"孙老师", "正心楼", "101"},
			want:  Detail{Teacher: "孙老师", Location: "正心楼 101"},
		},
		{
			name:  "情况 C 关键字地点",
			lines: []string{"正心楼101"},
			want:  Detail{Location: "正心楼101"},
		},
		{
			name:  "情况 C 短教室号",
			lines: []string{"A1203"},
			want:  Detail{Location: "A1203"},
		},
		{
			name:  "情况 C 楼宇代码",
			lines: []string{"L203"},
			want:  Detail{Location: "L203"},
		},
		{
			name:  "情况 C 其他视为教师",
			lines: []string{"周老师"},
			want:  Detail{Teacher: "周老师"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDetails(tt.lines)
			if got != tt.want {
				t.Errorf("ParseDetails(%q) = %+v, 期望 %+v", tt.lines, got, tt.want)
			}
		})
	}
}

func TestNormalizeLine(t *testing.T) {
	got := normalizeLine("  张老师［1,2］（实验）   主楼 ")
	want := "张老师[1，2](实验) 主楼"
	if got != want {
		t.Errorf("normalizeLine = %q, 期望 %q", got, want)
	}
}
