package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/tutoring-center/backend/internal/domain"
)

func newTestStudent(id int64, fullName string, daysPerWeek int32) *domain.Student {
	return &domain.Student{
		ID:               id,
		FullName:         fullName,
		MembershipPlanID: int64(daysPerWeek),
		IsActive:         true,
		Plan: &domain.MembershipPlan{
			ID:          int64(daysPerWeek),
			DaysPerWeek: daysPerWeek,
			IsActive:    true,
		},
	}
}

func countStudentInDays(dist *domain.Distribution, studentID int64) int {
	count := 0
	for _, entries := range dist.DaySchedule {
		for _, entry := range entries {
			if entry.StudentID == studentID {
				count++
			}
		}
	}
	return count
}

func countStudentInUnallocated(dist *domain.Distribution, studentID int64) int {
	count := 0
	for _, entry := range dist.UnallocatedStudents {
		if entry.StudentID == studentID {
			count++
		}
	}
	return count
}

func TestBuildDistributionQuota(t *testing.T) {
	students := []*domain.Student{
		newTestStudent(1, "王小明", 3),
		newTestStudent(2, "李思", 5),
		newTestStudent(3, "张伟", 1),
	}
	slots := []*domain.ScheduleSlot{
		{ID: 1, StudentID: 1, DayOfWeek: domain.Monday},
		{ID: 2, StudentID: 2, DayOfWeek: domain.Monday},
		{ID: 3, StudentID: 2, DayOfWeek: domain.Friday, IsLocked: true},
	}

	dist, err := BuildDistribution(students, slots)
	require.NoError(t, err)

	// 每个学员已分配天数加未分配名额数必须等于每周需要的天数
	for _, student := range students {
		total := countStudentInDays(dist, student.ID) + countStudentInUnallocated(dist, student.ID)
		require.Equal(t, int(student.Plan.DaysPerWeek), total, "学员 %d 的名额数不对", student.ID)
	}

	require.Len(t, dist.DaySchedule[domain.Monday], 2)
	require.True(t, dist.DaySchedule[domain.Friday][0].IsLocked)
}

func TestBuildDistributionQuotaCappedByWeekdays(t *testing.T) {
	// 每周 7 天的计划最多也只能分配周一到周五
	students := []*domain.Student{newTestStudent(1, "王小明", 7)}

	dist, err := BuildDistribution(students, nil)
	require.NoError(t, err)
	require.Len(t, dist.UnallocatedStudents, 5)
}

func TestBuildDistributionUnallocatedKeys(t *testing.T) {
	students := []*domain.Student{newTestStudent(1, "王小明", 3)}
	slots := []*domain.ScheduleSlot{
		{ID: 1, StudentID: 1, DayOfWeek: domain.Tuesday},
	}

	dist, err := BuildDistribution(students, slots)
	require.NoError(t, err)

	// 未分配名额的键只跟学员和序号有关，与加载顺序无关
	require.Len(t, dist.UnallocatedStudents, 2)
	require.Equal(t, "1#1", dist.UnallocatedStudents[0].Key)
	require.Equal(t, "1#2", dist.UnallocatedStudents[1].Key)
}

func TestBuildDistributionIgnoresUnknownStudentSlots(t *testing.T) {
	students := []*domain.Student{newTestStudent(1, "王小明", 2)}
	slots := []*domain.ScheduleSlot{
		{ID: 1, StudentID: 99, DayOfWeek: domain.Monday},
	}

	dist, err := BuildDistribution(students, slots)
	require.NoError(t, err)
	require.Empty(t, dist.DaySchedule[domain.Monday])
	require.Len(t, dist.UnallocatedStudents, 2)
}

func TestBuildDistributionRejectsMissingPlan(t *testing.T) {
	students := []*domain.Student{{ID: 1, FullName: "王小明", IsActive: true}}

	_, err := BuildDistribution(students, nil)
	require.Error(t, err)
}

func TestBuildDistributionRejectsInvalidWeekday(t *testing.T) {
	students := []*domain.Student{newTestStudent(1, "王小明", 2)}
	slots := []*domain.ScheduleSlot{
		{ID: 1, StudentID: 1, DayOfWeek: domain.Weekday("SUNDAY")},
	}

	_, err := BuildDistribution(students, slots)
	require.Error(t, err)
}
