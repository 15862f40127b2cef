package timetable

// sampleRows 模拟教务系统导出的课表：标题行、说明行、表头行、若干节次行
func sampleRows() [][]string {
	return [][]string{
		{"  2025春季学期 计算机学院 张三 个人课表  "},
		{"打印时间：2025-02-20"},
		{"", "节次", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六", "星期日"},
		{"上午", "第1,2节",
			"高等数学\n张老师[1-16]主楼203",
			"",
			"课程A\n老师甲[1-16]L203\n课程B\n老师乙[1-16]G305",
			"", "", "", ""},
		{"", "第3,4节",
			"",
			"大学物理\n李老师[1-8]单周\n格物楼305",
			"", "", "体育\n正心楼101", "", ""},
		{"", "", "被忽略的课程\n无节次标签"},
		{"下午", "第5,6节",
			"高等数学\n张老师[1-16]主楼203",
			"", "", "", "", "", "社会实践"},
	}
}
