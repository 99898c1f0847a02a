package scheduler

import (
	"fmt"

	"github.com/sysu-ecnc-dev/tutoring-center/backend/internal/domain"
)

// requiredSlots 返回学员每周需要分配的名额数
// 会员计划最多允许 7 天，但是课表只有周一到周五，所以需要截断
func requiredSlots(student *domain.Student) int {
	required := int(student.Plan.DaysPerWeek)
	if required > len(domain.Weekdays()) {
		required = len(domain.Weekdays())
	}
	return required
}

// BuildDistribution 根据学员名单和已有的排课记录组装每周分布
// students 应该只包含启用中并且有有效会员计划的学员，slots 按照创建顺序传入
func BuildDistribution(students []*domain.Student, slots []*domain.ScheduleSlot) (*domain.Distribution, error) {
	dist := &domain.Distribution{
		Students:            students,
		DaySchedule:         make(map[domain.Weekday][]domain.DayEntry),
		UnallocatedStudents: make([]domain.UnallocatedEntry, 0),
	}

	for _, day := range domain.Weekdays() {
		dist.DaySchedule[day] = make([]domain.DayEntry, 0)
	}

	studentsMap := make(map[int64]*domain.Student)
	for _, student := range students {
		if student.Plan == nil {
			return nil, fmt.Errorf("学员 %d 没有关联会员计划", student.ID)
		}
		studentsMap[student.ID] = student
	}

	// 统计每个学员已分配的天数，同时把排课记录放进对应的星期
	allocatedCount := make(map[int64]int)
	for _, slot := range slots {
		student, exists := studentsMap[slot.StudentID]
		if !exists {
			// 排课记录属于已停用的学员时直接跳过，不在分布中展示
			continue
		}
		if !domain.IsValidWeekday(slot.DayOfWeek) {
			return nil, fmt.Errorf("学员 %d 的排课记录中存在无效的星期 %s", slot.StudentID, slot.DayOfWeek)
		}

		dist.DaySchedule[slot.DayOfWeek] = append(dist.DaySchedule[slot.DayOfWeek], domain.DayEntry{
			StudentID:   student.ID,
			FullName:    student.FullName,
			DaysPerWeek: student.Plan.DaysPerWeek,
			IsLocked:    slot.IsLocked,
		})
		allocatedCount[slot.StudentID]++
	}

	// 为每个分配不足的学员按照缺口数量生成未分配名额
	for _, student := range students {
		required := requiredSlots(student)
		allocated := allocatedCount[student.ID]

		for ordinal := allocated; ordinal < required; ordinal++ {
			dist.UnallocatedStudents = append(dist.UnallocatedStudents, domain.UnallocatedEntry{
				Key:         UnallocatedKey(student.ID, ordinal),
				StudentID:   student.ID,
				FullName:    student.FullName,
				DaysPerWeek: student.Plan.DaysPerWeek,
			})
		}
	}

	return dist, nil
}

// UnallocatedKey 生成未分配名额的稳定展示键
func UnallocatedKey(studentID int64, ordinal int) string {
	return fmt.Sprintf("%d#%d", studentID, ordinal)
}
