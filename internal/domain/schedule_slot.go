package domain

import "time"

type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
)

// Weekdays 返回所有可排课的星期，顺序固定
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}
}

func IsValidWeekday(day Weekday) bool {
	switch day {
	case Monday, Tuesday, Wednesday, Thursday, Friday:
		return true
	default:
		return false
	}
}

// ScheduleSlot 表示某个学员在某个星期的一次排课，(student, day) 组合唯一
type ScheduleSlot struct {
	ID        int64     `json:"id"`
	StudentID int64     `json:"studentID"`
	DayOfWeek Weekday   `json:"dayOfWeek"`
	IsLocked  bool      `json:"isLocked"`
	CreatedAt time.Time `json:"createdAt"`
}
