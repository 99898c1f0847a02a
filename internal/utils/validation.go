package utils

import (
	"fmt"

	"github.com/sysu-ecnc-dev/tutoring-center/backend/internal/domain"
)

// ValidateDistributionDays 检查分布中的星期是否都是合法的周一到周五
func ValidateDistributionDays(daySchedule map[domain.Weekday][]domain.DayEntry) error {
	for day := range daySchedule {
		if !domain.IsValidWeekday(day) {
			return fmt.Errorf("课表中存在无效的星期 %s", day)
		}
	}
	return nil
}

// ValidateDistributionStudents 检查分布中引用的学员是否都在学员名单中
func ValidateDistributionStudents(daySchedule map[domain.Weekday][]domain.DayEntry, students []*domain.Student) error {
	studentsMap := make(map[int64]bool)
	for _, student := range students {
		studentsMap[student.ID] = true
	}

	for day, entries := range daySchedule {
		for _, entry := range entries {
			if !studentsMap[entry.StudentID] {
				return fmt.Errorf("%s 中 id 为 %d 的学员不在学员名单中", day, entry.StudentID)
			}
		}
	}

	return nil
}

// ValidIfExistsDuplicateStudent 检查是否有学员在同一天中出现了两次
func ValidIfExistsDuplicateStudent(daySchedule map[domain.Weekday][]domain.DayEntry) error {
	for day, entries := range daySchedule {
		seen := make(map[int64]bool)
		for _, entry := range entries {
			if seen[entry.StudentID] {
				return fmt.Errorf("学员 %s 在 %s 中出现了两次", entry.FullName, day)
			}
			seen[entry.StudentID] = true
		}
	}
	return nil
}

// ValidateDistribution 对提交保存的分布做全部校验
func ValidateDistribution(daySchedule map[domain.Weekday][]domain.DayEntry, students []*domain.Student) error {
	if err := ValidateDistributionDays(daySchedule); err != nil {
		return err
	}
	if err := ValidateDistributionStudents(daySchedule, students); err != nil {
		return err
	}
	if err := ValidIfExistsDuplicateStudent(daySchedule); err != nil {
		return err
	}
	return nil
}
