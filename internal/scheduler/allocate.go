package scheduler

import (
	"math/rand"

	"github.com/sysu-ecnc-dev/tutoring-center/backend/internal/domain"
)

// SelectAutoAllocationTargets 选出参与自动分配的学员
// 只要学员存在任何一条锁定的排课记录，整个学员都不参与自动分配
func SelectAutoAllocationTargets(students []*domain.Student, slots []*domain.ScheduleSlot) []*domain.Student {
	lockedStudents := make(map[int64]bool)
	for _, slot := range slots {
		if slot.IsLocked {
			lockedStudents[slot.StudentID] = true
		}
	}

	targets := make([]*domain.Student, 0)
	for _, student := range students {
		if student.Plan == nil {
			continue
		}
		if lockedStudents[student.ID] {
			continue
		}
		targets = append(targets, student)
	}

	return targets
}

// RandomWeekdays 用 Fisher-Yates 洗牌算法随机选出 n 个互不相同的星期
func RandomWeekdays(n int) []domain.Weekday {
	days := domain.Weekdays()

	for i := len(days) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		days[i], days[j] = days[j], days[i]
	}

	if n > len(days) {
		n = len(days)
	}

	return days[:n]
}

// BuildAutoAllocation 为每个目标学员随机生成一整周的排课记录
// 每个学员的候选星期独立，不做跨学员的负载均衡
func BuildAutoAllocation(targets []*domain.Student) []*domain.ScheduleSlot {
	slots := make([]*domain.ScheduleSlot, 0)

	for _, target := range targets {
		for _, day := range RandomWeekdays(requiredSlots(target)) {
			slots = append(slots, &domain.ScheduleSlot{
				StudentID: target.ID,
				DayOfWeek: day,
				IsLocked:  false,
			})
		}
	}

	return slots
}
