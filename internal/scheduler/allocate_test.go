package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/tutoring-center/backend/internal/domain"
)

func TestSelectAutoAllocationTargets(t *testing.T) {
	students := []*domain.Student{
		newTestStudent(1, "王小明", 3),
		newTestStudent(2, "李思", 2),
		newTestStudent(3, "张伟", 4),
	}
	slots := []*domain.ScheduleSlot{
		{ID: 1, StudentID: 1, DayOfWeek: domain.Monday, IsLocked: true},
		{ID: 2, StudentID: 1, DayOfWeek: domain.Tuesday},
		{ID: 3, StudentID: 2, DayOfWeek: domain.Monday},
	}

	targets := SelectAutoAllocationTargets(students, slots)

	// 学员 1 有锁定的排课记录，整个学员都不参与自动分配
	require.Len(t, targets, 2)
	require.Equal(t, int64(2), targets[0].ID)
	require.Equal(t, int64(3), targets[1].ID)
}

func TestSelectAutoAllocationTargetsSkipsMissingPlan(t *testing.T) {
	students := []*domain.Student{
		{ID: 1, FullName: "王小明", IsActive: true},
		newTestStudent(2, "李思", 2),
	}

	targets := SelectAutoAllocationTargets(students, nil)
	require.Len(t, targets, 1)
	require.Equal(t, int64(2), targets[0].ID)
}

func TestRandomWeekdays(t *testing.T) {
	for i := 0; i < 50; i++ {
		days := RandomWeekdays(3)
		require.Len(t, days, 3)

		seen := make(map[domain.Weekday]bool)
		for _, day := range days {
			require.True(t, domain.IsValidWeekday(day))
			require.False(t, seen[day], "同一个星期被选中了两次")
			seen[day] = true
		}
	}
}

func TestRandomWeekdaysCapped(t *testing.T) {
	require.Len(t, RandomWeekdays(7), 5)
}

func TestBuildAutoAllocation(t *testing.T) {
	targets := []*domain.Student{
		newTestStudent(1, "王小明", 3),
		newTestStudent(2, "李思", 5),
		newTestStudent(3, "张伟", 7),
	}

	for i := 0; i < 20; i++ {
		slots := BuildAutoAllocation(targets)

		perStudent := make(map[int64]map[domain.Weekday]bool)
		for _, slot := range slots {
			require.False(t, slot.IsLocked, "自动分配只生成未锁定的排课记录")
			require.True(t, domain.IsValidWeekday(slot.DayOfWeek))

			if perStudent[slot.StudentID] == nil {
				perStudent[slot.StudentID] = make(map[domain.Weekday]bool)
			}
			require.False(t, perStudent[slot.StudentID][slot.DayOfWeek], "学员 %d 在同一天被分配了两次", slot.StudentID)
			perStudent[slot.StudentID][slot.DayOfWeek] = true
		}

		// 每个学员分配到的天数正好等于计划要求，超过 5 天的截断到 5 天
		require.Len(t, perStudent[1], 3)
		require.Len(t, perStudent[2], 5)
		require.Len(t, perStudent[3], 5)
	}
}
