package domain

// DayEntry 表示某天课表中的一个学员条目
type DayEntry struct {
	StudentID   int64  `json:"studentID"`
	FullName    string `json:"fullName"`
	DaysPerWeek int32  `json:"daysPerWeek"`
	IsLocked    bool   `json:"isLocked"`
}

// UnallocatedEntry 表示学员还未分配到具体星期的一个名额
// Key 的格式为 "<studentID>#<ordinal>"，对同一份数据是稳定的
type UnallocatedEntry struct {
	Key         string `json:"key"`
	StudentID   int64  `json:"studentID"`
	FullName    string `json:"fullName"`
	DaysPerWeek int32  `json:"daysPerWeek"`
}

// Distribution 是每周分布页面所需要的全部数据
type Distribution struct {
	Students            []*Student             `json:"students"`
	DaySchedule         map[Weekday][]DayEntry `json:"daySchedule"`
	UnallocatedStudents []UnallocatedEntry     `json:"unallocatedStudents"`
}
